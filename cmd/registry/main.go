// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command registry starts the Aleutian document review registry HTTP server.
//
// It reads configuration from an optional YAML file and environment
// variables (environment wins) and starts the server.
//
// # Environment Variables
//
//   - REGISTRY_PORT: HTTP server port (default: 12240)
//   - REGISTRY_DATA_FILE: Path of the CSV document source (default: ./documents.csv)
//   - REGISTRY_CONFIG: Optional YAML config file path
//   - REGISTRY_WATCH_SOURCE: Warn when the source file changes on disk ("true"/"false")
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OpenTelemetry collector (default: aleutian-otel-collector:4317)
//
// # Usage
//
//	# Build
//	go build -o registry ./cmd/registry
//
//	# Run
//	REGISTRY_DATA_FILE=./documents.csv ./registry
package main

import (
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/AleutianAI/AleutianRegistry/services/registry"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Optional YAML config file, overridden by environment variables below
	var cfg registry.Config
	if path := os.Getenv("REGISTRY_CONFIG"); path != "" {
		loaded, err := registry.LoadConfigFile(path)
		if err != nil {
			log.Fatalf("Failed to load config file: %v", err)
		}
		cfg = loaded
		slog.Info("Loaded configuration file", "path", path)
	}

	cfg.Port = getEnvInt("REGISTRY_PORT", cfg.Port)
	cfg.DataFile = getEnvString("REGISTRY_DATA_FILE", cfg.DataFile)
	cfg.OTelEndpoint = getEnvString("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTelEndpoint)
	cfg.WatchSource = getEnvBool("REGISTRY_WATCH_SOURCE", cfg.WatchSource)

	slog.Info("Starting registry",
		"port", cfg.Port,
		"data_file", cfg.DataFile,
		"watch_source", cfg.WatchSource,
	)

	svc, err := registry.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create registry: %v", err)
	}

	// Run the server (blocks until shutdown)
	if err := svc.Run(); err != nil {
		log.Fatalf("Registry error: %v", err)
	}
}

// getEnvString returns the environment variable value or a default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as int or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvBool returns the environment variable as bool or a default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
