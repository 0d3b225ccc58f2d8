package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/diillson/aws-workshop-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigFile(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		content  string
		want     *types.Config
	}{
		{
			name:     "toml",
			fileName: "workshop.toml",
			content: `profile = "training"
regions = ["us-east-1", "eu-west-1"]
non_interactive = true
seed = 42
budget = 250.0
months = 3
`,
			want: &types.Config{
				Profile:        "training",
				Regions:        []string{"us-east-1", "eu-west-1"},
				NonInteractive: true,
				Seed:           42,
				Budget:         250,
				Months:         3,
			},
		},
		{
			name:     "yaml",
			fileName: "workshop.yaml",
			content: `profile: training
regions:
  - us-east-1
report_name: monthly
report_type: [csv, json]
`,
			want: &types.Config{
				Profile:    "training",
				Regions:    []string{"us-east-1"},
				ReportName: "monthly",
				ReportType: []string{"csv", "json"},
			},
		},
		{
			name:     "yml extension",
			fileName: "workshop.yml",
			content:  "profile: training\n",
			want:     &types.Config{Profile: "training"},
		},
		{
			name:     "json",
			fileName: "workshop.json",
			content:  `{"profile": "training", "budget": 250, "dir": "/tmp/reports"}`,
			want: &types.Config{
				Profile: "training",
				Budget:  250,
				Dir:     "/tmp/reports",
			},
		},
	}

	repo := NewConfigRepository()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.fileName)
			assert.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			got, err := repo.LoadConfigFile(path)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	repo := NewConfigRepository()
	dir := t.TempDir()

	iniPath := filepath.Join(dir, "workshop.ini")
	assert.NoError(t, os.WriteFile(iniPath, []byte("profile=training\n"), 0o644))

	badToml := filepath.Join(dir, "broken.toml")
	assert.NoError(t, os.WriteFile(badToml, []byte("profile = [unclosed\n"), 0o644))

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{
			name:    "missing file",
			path:    filepath.Join(dir, "nope.toml"),
			wantErr: "error accessing config file",
		},
		{
			name:    "directory instead of file",
			path:    dir,
			wantErr: "is a directory",
		},
		{
			name:    "unsupported extension",
			path:    iniPath,
			wantErr: "unsupported config file format",
		},
		{
			name:    "malformed toml",
			path:    badToml,
			wantErr: "error parsing TOML file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := repo.LoadConfigFile(tt.path)
			assert.Nil(t, cfg)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
