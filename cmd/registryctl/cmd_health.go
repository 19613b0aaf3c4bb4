// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianRegistry/pkg/ux"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check registry service health",
	Run:   runHealthCommand,
}

func runHealthCommand(_ *cobra.Command, _ []string) {
	client := NewClient(serverURL)

	payload, err := client.Health()
	if err != nil {
		ux.Error(fmt.Sprintf("Registry is unreachable: %v", err))
		return
	}

	ux.Success(fmt.Sprintf("Registry at %s is healthy", serverURL))
	if stale, ok := payload["source_stale"].(bool); ok && stale {
		ux.Warning("Source file has changed on disk; restart to reload")
	}
}
