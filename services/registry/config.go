// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MaxConfigFileSize is the maximum allowed config file size (1MB).
// Prevents memory issues from accidentally pointing at a large file.
const MaxConfigFileSize = 1024 * 1024

// fileConfig mirrors Config with YAML tags. Kept separate so the wire
// format of the config file is independent of the in-process type.
type fileConfig struct {
	Port         int    `yaml:"port"`
	DataFile     string `yaml:"data_file"`
	OTelEndpoint string `yaml:"otel_endpoint"`
	GinMode      string `yaml:"gin_mode"`
	WatchSource  bool   `yaml:"watch_source"`
}

// LoadConfigFile reads service configuration from a YAML file.
//
// # Description
//
// Unset fields come back as zero values so the entry point can layer
// environment variables and defaults on top. The file size is capped at
// MaxConfigFileSize.
//
// # Inputs
//
//   - path: Path to the YAML config file.
//
// # Outputs
//
//   - Config: Parsed configuration, zero-valued where the file is silent.
//   - error: Non-nil if the file is missing, oversized, or malformed.
func LoadConfigFile(path string) (Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to stat config file %s: %w", path, err)
	}
	if info.Size() > MaxConfigFileSize {
		return Config{}, fmt.Errorf("config file %s exceeds %d bytes", path, MaxConfigFileSize)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return Config{
		Port:         fc.Port,
		DataFile:     fc.DataFile,
		OTelEndpoint: fc.OTelEndpoint,
		GinMode:      fc.GinMode,
		WatchSource:  fc.WatchSource,
	}, nil
}
