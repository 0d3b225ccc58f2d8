package repository

import (
	"context"

	"github.com/diillson/aws-workshop-go/internal/domain/entity"
)

// SystemRepository defines the interface for inspecting the host machine:
// locating external tools and spawning child processes for the lessons.
type SystemRepository interface {
	FindTool(ctx context.Context, name string) (entity.ToolInfo, error)
	RuntimeInfo() entity.RuntimeInfo
	RunProcess(ctx context.Context, name string, args ...string) (entity.ProcessResult, error)
}
