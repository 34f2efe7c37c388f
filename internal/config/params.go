package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/greenh2/site-optimizer/internal/domain"
)

// LoadCostParameters returns the built-in cost model assumptions, overridden
// by the YAML file at path when one is configured. The file may set any
// subset of fields; unset fields keep their defaults. An empty path means
// defaults only.
func LoadCostParameters(path string) (domain.Parameters, error) {
	params := domain.DefaultParameters()
	if path == "" {
		return params, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Parameters{}, fmt.Errorf("read cost parameters: %w", err)
	}
	if err := yaml.Unmarshal(raw, &params); err != nil {
		return domain.Parameters{}, fmt.Errorf("parse cost parameters %s: %w", path, err)
	}
	if err := params.Validate(); err != nil {
		return domain.Parameters{}, fmt.Errorf("cost parameters %s: %w", path, err)
	}
	return params, nil
}
