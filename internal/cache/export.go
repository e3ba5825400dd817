// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes every cached entry to dir/export.yaml and returns the path.
func (s *SQLite) ExportYAML(ctx context.Context) (string, error) {
	entries, err := s.Entries(ctx, 0)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.dir, exportBase+".yaml")
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes every cached entry to dir/export.json and returns the path.
func (s *SQLite) ExportJSON(ctx context.Context) (string, error) {
	entries, err := s.Entries(ctx, 0)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(s.dir, exportBase+".json")
	return path, os.WriteFile(path, data, 0o644)
}
