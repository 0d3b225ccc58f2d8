package entity

import "time"

// ToolInfo describes an external command-line tool found on PATH.
type ToolInfo struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Version string `json:"version,omitempty"`
}

// RuntimeInfo descreve o runtime Go por trás do binário do workshop.
type RuntimeInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
	Module    string `json:"module,omitempty"`
}

// ProcessResult é o resultado de um processo filho disparado pelas lições.
type ProcessResult struct {
	PID      int           `json:"pid"`
	ExitCode int           `json:"exit_code"`
	Output   string        `json:"output"`
	Elapsed  time.Duration `json:"elapsed"`
}
