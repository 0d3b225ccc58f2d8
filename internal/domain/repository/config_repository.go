package repository

import (
	"github.com/diillson/aws-workshop-go/internal/shared/types"
)

// ConfigRepository carrega a configuração do workshop a partir de um arquivo.
type ConfigRepository interface {
	LoadConfigFile(path string) (*types.Config, error)
}
