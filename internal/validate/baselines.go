package validate

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed baselines.yaml
var baselinesFS embed.FS

const baselinesEnv = "AVALA_BASELINES_YAML"

// Baselines are the expected record counts the coverage check compares
// against. They track the published size of the upstream registry and are
// updated by hand when the registry grows.
type Baselines struct {
	Expected struct {
		Sectors        int64 `yaml:"sectors"`
		Committees     int64 `yaml:"committees"`
		Standards      int64 `yaml:"standards"`
		Certifiers     int64 `yaml:"certifiers"`
		Centers        int64 `yaml:"centers"`
		Occupations    int64 `yaml:"occupations"`
		Accreditations int64 `yaml:"accreditations"`
		Offerings      int64 `yaml:"offerings"`
	} `yaml:"expected"`
}

// LoadBaselines resolves baselines in precedence order: explicit path,
// AVALA_BASELINES_YAML, then the embedded defaults.
func LoadBaselines(path string) (Baselines, error) {
	var b Baselines

	if path == "" {
		path = strings.TrimSpace(os.Getenv(baselinesEnv))
	}
	var raw []byte
	var err error
	if path != "" {
		raw, err = os.ReadFile(path)
		if err != nil {
			return b, fmt.Errorf("read baselines %s: %w", path, err)
		}
	} else {
		raw, err = baselinesFS.ReadFile("baselines.yaml")
		if err != nil {
			return b, fmt.Errorf("read embedded baselines: %w", err)
		}
	}

	if err := yaml.Unmarshal(raw, &b); err != nil {
		return b, fmt.Errorf("parse baselines: %w", err)
	}
	return b, nil
}
