package repository

import (
	"context"

	"github.com/diillson/aws-workshop-go/internal/domain/entity"
)

// GitRepository defines the interface for the git operations the gitops
// lesson walks through. All commands run against the given directory.
type GitRepository interface {
	Version(ctx context.Context) (string, error)
	IsRepository(ctx context.Context, dir string) bool
	InitScratch(ctx context.Context, dir string) error
	Status(ctx context.Context, dir string) (entity.GitStatus, error)
	Snapshot(ctx context.Context, dir string, message string) error
	RecentCommits(ctx context.Context, dir string, limit int) ([]entity.GitCommit, error)
	Remotes(ctx context.Context, dir string) (map[string]string, error)
}
