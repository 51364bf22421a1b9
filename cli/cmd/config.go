package cmd

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// CliConfig is hoconc's own settings file, loaded from .hoconc.yaml in the
// current directory, mirroring the teacher's
// sqlcode.yaml/LoadConfig pattern (cli/cmd/config.go) but carrying hoconc's
// own concerns instead of database connection strings.
type CliConfig struct {
	BaseDir string `yaml:"basedir"`
	Socks   string `yaml:"socks"`
}

func (c CliConfig) IncludeBaseDir(inputPath string) string {
	if c.BaseDir != "" {
		return c.BaseDir
	}
	if inputPath != "" {
		return filepath.Dir(inputPath)
	}
	return "."
}

// LoadConfig reads .hoconc.yaml from the current directory. A missing file
// is not an error: the CLI falls back to its flag defaults.
func LoadConfig() (CliConfig, error) {
	data, err := os.ReadFile(".hoconc.yaml")
	if err != nil {
		if os.IsNotExist(err) {
			return CliConfig{}, nil
		}
		return CliConfig{}, errors.Wrap(err, "hoconc: reading .hoconc.yaml")
	}
	var result CliConfig
	if err := yaml.Unmarshal(data, &result); err != nil {
		return CliConfig{}, errors.Wrap(err, "hoconc: parsing .hoconc.yaml")
	}
	return result, nil
}
