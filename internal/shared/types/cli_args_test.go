package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyConfig(t *testing.T) {
	tests := []struct {
		name string
		args CLIArgs
		cfg  *Config
		want CLIArgs
	}{
		{
			name: "nil config changes nothing",
			args: CLIArgs{Profile: "dev"},
			cfg:  nil,
			want: CLIArgs{Profile: "dev"},
		},
		{
			name: "file fills everything the flags left empty",
			args: CLIArgs{},
			cfg: &Config{
				Profile:        "training",
				Regions:        []string{"us-east-1", "eu-west-1"},
				NonInteractive: true,
				Seed:           42,
				ReportName:     "monthly",
				ReportType:     []string{"csv", "pdf"},
				Dir:            "/tmp/reports",
				Budget:         250,
				Months:         3,
			},
			want: CLIArgs{
				Profile:        "training",
				Regions:        []string{"us-east-1", "eu-west-1"},
				NonInteractive: true,
				Seed:           42,
				ReportName:     "monthly",
				ReportType:     []string{"csv", "pdf"},
				Dir:            "/tmp/reports",
				Budget:         250,
				Months:         3,
			},
		},
		{
			name: "explicit flags win over the file",
			args: CLIArgs{
				Profile: "from-flag",
				Regions: []string{"sa-east-1"},
				Seed:    7,
				Budget:  100,
			},
			cfg: &Config{
				Profile: "from-file",
				Regions: []string{"us-east-1"},
				Seed:    42,
				Budget:  500,
				Months:  6,
			},
			want: CLIArgs{
				Profile: "from-flag",
				Regions: []string{"sa-east-1"},
				Seed:    7,
				Budget:  100,
				Months:  6,
			},
		},
		{
			name: "non interactive from the file is adopted",
			args: CLIArgs{},
			cfg:  &Config{NonInteractive: true},
			want: CLIArgs{NonInteractive: true},
		},
		{
			name: "verbose and live never come from the file",
			args: CLIArgs{Verbose: true, Live: true},
			cfg:  &Config{Profile: "training"},
			want: CLIArgs{Verbose: true, Live: true, Profile: "training"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.args
			got.ApplyConfig(tt.cfg)
			assert.Equal(t, tt.want, got)
		})
	}
}
