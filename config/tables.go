package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aluiziolira/go-catalog-sync/title"
)

type aliasFile struct {
	Aliases []title.Alias `yaml:"aliases"`
}

type exemptionFile struct {
	Exemptions []title.Override `yaml:"exemptions"`
}

// LoadAliases reads the alias table from a YAML file. A missing file
// is not an error: the sync then runs on direct title matching only.
func LoadAliases(path string) ([]title.Alias, error) {
	data, err := readOptional(path)
	if err != nil || data == nil {
		return nil, err
	}

	var parsed aliasFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse alias table %q: %w", path, err)
	}
	return parsed.Aliases, nil
}

// LoadExemptions reads the exemption list from a YAML file. A missing
// file is not an error: no removals are suppressed.
func LoadExemptions(path string) ([]title.Override, error) {
	data, err := readOptional(path)
	if err != nil || data == nil {
		return nil, err
	}

	var parsed exemptionFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse exemption list %q: %w", path, err)
	}
	return parsed.Exemptions, nil
}

func readOptional(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return data, nil
}
