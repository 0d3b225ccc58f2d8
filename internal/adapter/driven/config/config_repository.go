package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/diillson/aws-workshop-go/internal/domain/repository"
	"github.com/diillson/aws-workshop-go/internal/shared/types"
)

// decoder amarra o nome do formato ao unmarshaler; o nome entra na
// mensagem de erro para o aluno saber qual parser reclamou.
type decoder struct {
	format    string
	unmarshal func(data []byte, v interface{}) error
}

// A extensão do arquivo escolhe o decoder. Extensão desconhecida é erro,
// nunca adivinhação de formato.
var decoders = map[string]decoder{
	".toml": {"TOML", toml.Unmarshal},
	".yaml": {"YAML", yaml.Unmarshal},
	".yml":  {"YAML", yaml.Unmarshal},
	".json": {"JSON", json.Unmarshal},
}

// ConfigRepositoryImpl carrega os arquivos de configuração do workshop.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria o adaptador de configuração.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile decodifica um arquivo TOML, YAML ou JSON para a struct
// de configuração compartilhada com as flags.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	dec, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg types.Config
	if err := dec.unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing %s file: %w", dec.format, err)
	}
	return &cfg, nil
}
