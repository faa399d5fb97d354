package domain

// Config mirrors ~/.painpoint/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Server              ServerSettings    `yaml:"server"`
	Models              []ModelDefinition `yaml:"models"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultModel   string `yaml:"default_model"`
	TimeoutSeconds int    `yaml:"timeout"`
	ShowReasoning  bool   `yaml:"show_reasoning"`
}

// ServerSettings configures the web form surface.
type ServerSettings struct {
	ListenAddr string `yaml:"listen_addr"`
}
