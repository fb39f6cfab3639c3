package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Victor-armando18/vinyl-store/internal/domain"
	"github.com/Victor-armando18/vinyl-store/internal/infrastructure/yaml"
	"github.com/Victor-armando18/vinyl-store/internal/interfaces"
	"github.com/goccy/go-json"
)

type FileRuleLoader struct {
	BasePath string
}

func NewFileRuleLoader(basePath string) interfaces.RulePackLoader {
	return &FileRuleLoader{BasePath: basePath}
}

// Load looks for <version>_forms.yaml, .yml or .json under BasePath.
func (l *FileRuleLoader) Load(ctx context.Context, version string) (*domain.RulePackDefinition, error) {
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		path := filepath.Join(l.BasePath, version+"_forms"+ext)
		def, err := LoadRulePackFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if def.Version == "" {
			def.Version = version
		}
		return def, nil
	}
	return nil, fmt.Errorf("rule pack %s not found in %s: %w", version, l.BasePath, fs.ErrNotExist)
}

// LoadRulePackFile decodes a rule pack, choosing the format by extension.
func LoadRulePackFile(path string) (*domain.RulePackDefinition, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		def, err := yaml.LoadRulePack(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load rule file %s: %w", path, err)
		}
		return &def, nil
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read rule file %s: %w", path, err)
		}
		var def domain.RulePackDefinition
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidRulePack, path, err)
		}
		return &def, nil
	default:
		return nil, fmt.Errorf("%w: unsupported extension %q", domain.ErrInvalidRulePack, filepath.Ext(path))
	}
}
