package types

// CLIArgs represents the command-line arguments shared by every lesson.
type CLIArgs struct {
	ConfigFile     string
	Profile        string
	Regions        []string
	NonInteractive bool
	Verbose        bool
	Seed           int64

	// Capstone report options
	ReportName string
	ReportType []string
	Dir        string
	Budget     float64
	Months     int
	Live       bool
}

// ApplyConfig preenche argumentos não informados na linha de comando com os
// valores do arquivo de configuração. Flags explícitas sempre vencem.
func (a *CLIArgs) ApplyConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	if a.Profile == "" {
		a.Profile = cfg.Profile
	}
	if len(a.Regions) == 0 {
		a.Regions = cfg.Regions
	}
	if !a.NonInteractive {
		a.NonInteractive = cfg.NonInteractive
	}
	if a.Seed == 0 {
		a.Seed = cfg.Seed
	}
	if a.ReportName == "" {
		a.ReportName = cfg.ReportName
	}
	if len(a.ReportType) == 0 {
		a.ReportType = cfg.ReportType
	}
	if a.Dir == "" {
		a.Dir = cfg.Dir
	}
	if a.Budget == 0 {
		a.Budget = cfg.Budget
	}
	if a.Months == 0 {
		a.Months = cfg.Months
	}
}
