// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command registryctl is the CLI client for the registry service.
//
// # Examples
//
//	registryctl health
//	registryctl documents list --status NEEDS_REVIEW
//	registryctl documents duplicates
//	registryctl documents review 42 --status SUCCEEDED
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// serverURL is the base URL of the registry service, settable via the
// persistent --server flag on every command.
var serverURL string

var rootCmd = &cobra.Command{
	Use:   "registryctl",
	Short: "Client for the Aleutian document review registry",
	Long: `registryctl talks to a running registry service over HTTP.

Examples:
  registryctl health
  registryctl documents list --status NEEDS_REVIEW
  registryctl documents duplicates
  registryctl documents review 42 --status SUCCEEDED`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server",
		"http://localhost:12240", "Base URL of the registry service")

	rootCmd.AddCommand(documentsCmd)
	rootCmd.AddCommand(healthCmd)
}
