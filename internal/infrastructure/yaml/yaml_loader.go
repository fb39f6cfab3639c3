package yaml

import (
	"fmt"
	"os"

	"github.com/Victor-armando18/vinyl-store/internal/domain"

	"gopkg.in/yaml.v3"
)

func LoadRulePack(path string) (domain.RulePackDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.RulePackDefinition{}, err
	}
	return DecodeRulePack(data)
}

func DecodeRulePack(data []byte) (domain.RulePackDefinition, error) {
	var pack domain.RulePackDefinition
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return domain.RulePackDefinition{}, fmt.Errorf("%w: %v", domain.ErrInvalidRulePack, err)
	}
	return pack, nil
}

// LoadValues reads a flat field -> value document, as used by the diagnostic tool.
func LoadValues(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}
