package entity

import (
	"fmt"
	"time"
)

// DeploymentOutcome é o resultado de um deployment simulado. Nenhuma chamada
// de escrita é feita na AWS; os números existem para as lições de erro e
// concorrência terem algo realista para mastigar.
type DeploymentOutcome struct {
	ID        string        `json:"id"`
	Target    string        `json:"target"`
	Succeeded bool          `json:"succeeded"`
	Latency   time.Duration `json:"latency"`
	Message   string        `json:"message,omitempty"`
}

// DeploymentError is the typed error returned when a simulated deployment
// fails. Lessons extract it with errors.As to read the deployment ID.
type DeploymentError struct {
	DeploymentID string
	Target       string
	Reason       string
}

func (e *DeploymentError) Error() string {
	return fmt.Sprintf("deployment %s to %s failed: %s", e.DeploymentID, e.Target, e.Reason)
}

// SimulatedWritePlan descreve passo a passo uma operação de escrita que o
// workshop apenas narra, sem executar.
type SimulatedWritePlan struct {
	Action string   `json:"action"`
	Target string   `json:"target"`
	Region string   `json:"region"`
	Steps  []string `json:"steps"`
}
