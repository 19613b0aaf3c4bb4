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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianRegistry/pkg/ux"
	"github.com/AleutianAI/AleutianRegistry/services/registry/datatypes"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	listStatus   string // Status bucket to list
	reviewStatus string // Target status for the review command
)

// =============================================================================
// COMMAND DEFINITIONS
// =============================================================================

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Inspect and update registry documents",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents in a status bucket",
	Run:   runListCommand,
}

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates",
	Short: "List documents that share a pdf_path",
	Run:   runDuplicatesCommand,
}

var reviewCmd = &cobra.Command{
	Use:   "review <id>",
	Short: "Set a document's review status",
	Args:  cobra.ExactArgs(1),
	Run:   runReviewCommand,
}

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "NEEDS_REVIEW",
		"Status bucket to list (SUCCEEDED or NEEDS_REVIEW)")
	reviewCmd.Flags().StringVarP(&reviewStatus, "status", "s", "",
		"New status (SUCCEEDED or NEEDS_REVIEW)")
	_ = reviewCmd.MarkFlagRequired("status")

	documentsCmd.AddCommand(listCmd)
	documentsCmd.AddCommand(duplicatesCmd)
	documentsCmd.AddCommand(reviewCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATIONS
// =============================================================================

func runListCommand(_ *cobra.Command, _ []string) {
	client := NewClient(serverURL)

	docs, err := client.ListByStatus(listStatus)
	if err != nil {
		ux.Error(fmt.Sprintf("Failed to list documents: %v", err))
		return
	}

	ux.Title(fmt.Sprintf("Documents with status %s (%d)", listStatus, len(docs)))
	for _, doc := range docs {
		printDocument(doc)
	}
}

func runDuplicatesCommand(_ *cobra.Command, _ []string) {
	client := NewClient(serverURL)

	groups, err := client.Duplicates()
	if err != nil {
		ux.Error(fmt.Sprintf("Failed to list duplicates: %v", err))
		return
	}

	if len(groups) == 0 {
		ux.Success("No duplicate paths in the registry")
		return
	}

	ux.Title(fmt.Sprintf("Duplicate paths (%d)", len(groups)))
	for path, docs := range groups {
		ux.Warning(path)
		for _, doc := range docs {
			printDocument(doc)
		}
	}
}

func runReviewCommand(_ *cobra.Command, args []string) {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		ux.Error(fmt.Sprintf("Document id must be an integer, got %q", args[0]))
		return
	}

	client := NewClient(serverURL)
	doc, err := client.Review(id, reviewStatus)
	if err != nil {
		ux.Error(fmt.Sprintf("Failed to update document %d: %v", id, err))
		return
	}

	ux.Success(fmt.Sprintf("Document %d is now %s", doc.ID, doc.Status))
}

// printDocument renders one document as an indented bullet line.
func printDocument(doc datatypes.Document) {
	fmt.Printf("  %s %s  %s\n",
		ux.IconBullet.Render(),
		ux.KeyValue("id", strconv.Itoa(doc.ID)),
		ux.KeyValue("path", doc.PDFPath))
}
