// Package dak holds the dak-level question modules. Each module is a pair of
// a YAML definition artifact (embedded) and an executor, registered at init.
package dak

import (
	"context"
	"fmt"

	"dakfaq/internal/storage"

	"gopkg.in/yaml.v3"
)

// sushiConfigPath is where a SMART guidelines DAK declares its metadata.
const sushiConfigPath = "sushi-config.yaml"

type sushiConfig struct {
	ID          string `yaml:"id"`
	Canonical   string `yaml:"canonical"`
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	Version     string `yaml:"version"`
	Status      string `yaml:"status"`
	Description string `yaml:"description"`
}

func readSushiConfig(ctx context.Context, s storage.Storage) (*sushiConfig, error) {
	exists, err := s.FileExists(ctx, sushiConfigPath)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	data, err := s.ReadFile(ctx, sushiConfigPath)
	if err != nil {
		return nil, err
	}
	var cfg sushiConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", sushiConfigPath, err)
	}
	return &cfg, nil
}
