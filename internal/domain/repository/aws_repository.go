package repository

import (
	"context"

	"github.com/diillson/aws-workshop-go/internal/domain/entity"
)

// AWSRepository defines the interface for AWS API interactions. Every method
// is read-only: the workshop never writes to an account.
type AWSRepository interface {
	// Profile discovery
	GetAWSProfiles() []string
	GetAccountContext(ctx context.Context, profile string) (entity.AccountContext, error)

	// Region discovery
	GetRegions(ctx context.Context, profile string) ([]entity.RegionInfo, error)
	GetAccessibleRegions(ctx context.Context, profile string) ([]string, error)

	// Inventory Operations
	GetEC2Summary(ctx context.Context, profile string, regions []string) (entity.EC2Summary, error)
	GetInstances(ctx context.Context, profile string, regions []string) ([]entity.ResourceSummary, error)
	GetStoppedInstances(ctx context.Context, profile string, regions []string) (entity.StoppedEC2Instances, error)
	GetUnusedVolumes(ctx context.Context, profile string, regions []string) (entity.UnusedVolumes, error)
	GetUnusedEIPs(ctx context.Context, profile string, regions []string) (entity.UnusedEIPs, error)
	GetUntaggedResources(ctx context.Context, profile string, regions []string) (entity.UntaggedResources, error)
	GetIdleLoadBalancers(ctx context.Context, profile string, regions []string) (entity.IdleLoadBalancers, error)
	GetBuckets(ctx context.Context, profile string) ([]entity.BucketSummary, error)

	// CloudWatch Logs Retention
	GetCloudWatchLogGroups(ctx context.Context, profile string, regions []string) ([]entity.CloudWatchLogGroupInfo, error)

	// Cost Operations (capstone --live)
	GetLiveCostReport(ctx context.Context, profile string, months int) (entity.CostReport, error)
	GetBudgets(ctx context.Context, profile string) ([]entity.BudgetInfo, error)
}
