package types

// Config é a configuração do workshop carregável de arquivo TOML/YAML/JSON.
type Config struct {
	Profile        string   `json:"profile" yaml:"profile" toml:"profile"`
	Regions        []string `json:"regions" yaml:"regions" toml:"regions"`
	NonInteractive bool     `json:"non_interactive" yaml:"non_interactive" toml:"non_interactive"`
	Seed           int64    `json:"seed" yaml:"seed" toml:"seed"`
	ReportName     string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType     []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir            string   `json:"dir" yaml:"dir" toml:"dir"`
	Budget         float64  `json:"budget" yaml:"budget" toml:"budget"`
	Months         int      `json:"months" yaml:"months" toml:"months"`
}
