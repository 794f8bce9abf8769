package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds defaults read from a YAML file. Flags given on the command
// line take precedence.
type Config struct {
	Format  string `yaml:"format"`
	Verbose bool   `yaml:"verbose"`
	Addr    string `yaml:"addr"`
	Verify  bool   `yaml:"verify"`
}

// LoadConfig reads the config file at path. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}
