package rule

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// CatalogConfig is the YAML form of the achievement table.
//
//	rules:
//	  - id: frequent_visitor
//	    name: Pravidelný návštěvník
//	    threshold: 10
//	    period: monthly
//	    theme: {background: bg-blue-50, text: text-blue-500, border: border-blue-300, hover: "hover:bg-blue-100"}
type CatalogConfig struct {
	Rules []RuleConfig `yaml:"rules" validate:"required,min=1,dive"`
}

// RuleConfig is a single catalog entry.
type RuleConfig struct {
	ID          string    `yaml:"id" validate:"required"`
	Name        string    `yaml:"name" validate:"required"`
	Description string    `yaml:"description"`
	Icon        string    `yaml:"icon"`
	Threshold   *int      `yaml:"threshold,omitempty" validate:"omitempty,gte=0"`
	Period      string    `yaml:"period" validate:"omitempty,oneof=none monthly"`
	DeviceScope string    `yaml:"device_scope" validate:"omitempty,oneof=any mobile desktop"`
	Theme       ThemeSpec `yaml:"theme"`
}

// LoadCatalog reads a catalog from a YAML file.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, err
	}

	logrus.Infof("loaded %d achievement rules from %s", catalog.Len(), path)
	return catalog, nil
}

// ParseCatalog builds a catalog from YAML bytes.
func ParseCatalog(data []byte) (*Catalog, error) {
	expanded := expandEnvVars(string(data))

	var cfg CatalogConfig
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", ErrConfig, err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	return NewCatalog(cfg.toRules()...)
}

func (c CatalogConfig) toRules() []AchievementRule {
	rules := make([]AchievementRule, len(c.Rules))
	for i, rc := range c.Rules {
		rules[i] = AchievementRule{
			ID:          rc.ID,
			Name:        rc.Name,
			Description: rc.Description,
			Icon:        rc.Icon,
			Threshold:   rc.Threshold,
			Period:      Period(rc.Period),
			DeviceScope: DeviceScope(rc.DeviceScope),
			Theme:       rc.Theme,
		}
	}
	return rules
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		parts := strings.SplitN(key, ":", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}
