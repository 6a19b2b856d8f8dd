package ingest

import (
	"embed"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed config/harvester.yaml
var configYAML embed.FS

// FetchConfig tunes the monthly archive download.
type FetchConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"` // Default: 120
	MaxRetries     int `yaml:"max_retries,omitempty"`     // Default: 3
}

// Config holds the harvester settings: where to fetch monthly exports,
// which language variant to extract, and where results land.
type Config struct {
	Endpoint  string `yaml:"endpoint"`
	Format    string `yaml:"format,omitempty"`   // archive format parameter, default "eforms.zip"
	Language  string `yaml:"language,omitempty"` // languageID tag for localized fields, default "DEU"
	DataDir   string `yaml:"data_dir,omitempty"`
	OutputDir string `yaml:"output_dir,omitempty"`

	Fetch FetchConfig `yaml:"fetch,omitempty"`
}

// LoadConfig reads the embedded default configuration, falling back to the
// given path on the filesystem for local overrides. Environment variable
// references in the YAML are expanded before parsing.
func LoadConfig(path string) (*Config, error) {
	data, err := configYAML.ReadFile("config/harvester.yaml")
	if path != "" {
		if fileData, fileErr := os.ReadFile(path); fileErr == nil {
			data, err = fileData, nil
		}
	}
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Format == "" {
		c.Format = "eforms.zip"
	}
	if c.Language == "" {
		c.Language = "DEU"
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.OutputDir == "" {
		c.OutputDir = "data/notices"
	}
	if c.Fetch.TimeoutSeconds == 0 {
		c.Fetch.TimeoutSeconds = 120
	}
	if c.Fetch.MaxRetries == 0 {
		c.Fetch.MaxRetries = 3
	}
}
