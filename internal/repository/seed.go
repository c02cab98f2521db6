package repository

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"activity-signup/internal/model"
)

//go:embed seed.yaml
var defaultSeed []byte

// LoadSeed читает стартовый набор кружков из YAML-файла.
// Пустой путь означает встроенный набор.
func LoadSeed(path string) ([]model.Activity, error) {
	data := defaultSeed
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	}
	return ParseSeed(data)
}

// ParseSeed разбирает YAML-список кружков и проверяет уникальность имён.
func ParseSeed(data []byte) ([]model.Activity, error) {
	var activities []model.Activity
	if err := yaml.Unmarshal(data, &activities); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	seen := make(map[string]struct{}, len(activities))
	for i, a := range activities {
		if a.Name == "" {
			return nil, fmt.Errorf("seed[%d]: name is required", i)
		}
		if _, ok := seen[a.Name]; ok {
			return nil, fmt.Errorf("seed[%d]: duplicate activity %q", i, a.Name)
		}
		if a.MaxParticipants < 0 {
			return nil, fmt.Errorf("seed[%d]: max_participants must not be negative", i)
		}
		seen[a.Name] = struct{}{}
	}
	return activities, nil
}
