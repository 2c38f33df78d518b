package engine

import (
	"os"

	"gopkg.in/yaml.v3"
)

// EngineConfig is optional host configuration: which sheets to provision
// up front and whether diagnostic logging is on. Nothing in the evaluator
// itself requires a config file — this exists for hosts (a CLI, a server)
// that want to describe a starting workbook declaratively.
type EngineConfig struct {
	Sheets  []string `yaml:"sheets"`
	Verbose bool     `yaml:"verbose"`
}

// LoadConfig reads and parses a YAML config file at path.
func LoadConfig(path string) (EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EngineConfig{}, NewAPIError(CodeInvalidArgument, "reading config %q: %v", path, err)
	}
	var cfg EngineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EngineConfig{}, NewAPIError(CodeInvalidArgument, "parsing config %q: %v", path, err)
	}
	return cfg, nil
}

// Apply provisions every sheet named in the config onto wb.
func (cfg EngineConfig) Apply(wb *Workbook) {
	for _, name := range cfg.Sheets {
		wb.AddSheet(name)
	}
}
