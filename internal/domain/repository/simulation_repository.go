package repository

import (
	"context"

	"github.com/diillson/aws-workshop-go/internal/domain/entity"
)

// SimulationRepository produces the fake deployments, flaky calls and cost
// records the lessons use instead of touching real infrastructure. With the
// same seed the output is reproducible run after run.
type SimulationRepository interface {
	Reseed(seed int64)
	Seed() int64

	Deploy(ctx context.Context, target string) (entity.DeploymentOutcome, error)
	FlakyOperation(name string, succeedOn int) func(ctx context.Context) error

	CostReport(profile, accountID string, months int, budget float64) entity.CostReport
	SampleInventory(n int) []entity.ResourceSummary

	BucketPlan(name, region string) entity.SimulatedWritePlan
	StopInstancePlan(instanceID, region string) entity.SimulatedWritePlan
}
