package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arnavshah/shift-roster-go/pkg/models"
)

// loadInput reads a schedule input file. Files ending in .json are decoded as
// JSON, everything else as YAML.
func loadInput(path string) (*models.ScheduleInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var input models.ScheduleInput
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return &input, nil
}
