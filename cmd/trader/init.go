package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	schemaFileName       = "trader-config.schema.json"
	sampleConfigFileName = "trader-config.yaml"
)

// generateSchemaFile writes the config JSON schema to path.
func generateSchemaFile(path string) error {
	schema, err := types.GetConfigSchema()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(schema), 0644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}

	return nil
}

// generateSampleConfig writes cfg as YAML with a yaml-language-server
// header pointing at schemaName. An existing file is left untouched.
func generateSampleConfig(cfg types.Config, path, schemaName string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return false, fmt.Errorf("failed to marshal sample config: %w", err)
	}

	data = append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), data...)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, fmt.Errorf("failed to write sample config: %w", err)
	}

	return true, nil
}

func initAction(_ context.Context, cmd *cli.Command) error {
	dir := cmd.String("dir")

	schemaPath := filepath.Join(dir, schemaFileName)
	if err := generateSchemaFile(schemaPath); err != nil {
		return err
	}

	fmt.Printf("schema written to %s\n", schemaPath)

	samplePath := filepath.Join(dir, sampleConfigFileName)

	written, err := generateSampleConfig(types.DefaultConfig(), samplePath, schemaFileName)
	if err != nil {
		return err
	}

	if written {
		fmt.Printf("sample config written to %s\n", samplePath)
	}

	return nil
}
