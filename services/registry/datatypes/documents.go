// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes defines the wire-level contracts for the registry service.
package datatypes

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidStatus is returned when a status value is outside the enumeration.
var ErrInvalidStatus = errors.New("invalid document status")

// DocumentStatus is the review state of a document.
//
// Exactly two values exist: a document either passed automated processing
// (SUCCEEDED) or was flagged for a human pass (NEEDS_REVIEW).
type DocumentStatus string

const (
	// StatusSucceeded marks a document that processed cleanly.
	StatusSucceeded DocumentStatus = "SUCCEEDED"

	// StatusNeedsReview marks a document waiting on a human reviewer.
	StatusNeedsReview DocumentStatus = "NEEDS_REVIEW"
)

// Valid reports whether s is one of the two known status values.
func (s DocumentStatus) Valid() bool {
	return s == StatusSucceeded || s == StatusNeedsReview
}

// ParseDocumentStatus converts a raw string into a DocumentStatus.
//
// # Inputs
//
//   - raw: Candidate status string, case-sensitive.
//
// # Outputs
//
//   - DocumentStatus: The parsed status.
//   - error: Wraps ErrInvalidStatus if raw is not a known value.
func ParseDocumentStatus(raw string) (DocumentStatus, error) {
	s := DocumentStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// Document is a single entry in the review registry.
//
// Documents are created once at load time from the source file. The only
// mutable field is Status; ID and PDFPath are fixed for the process lifetime.
type Document struct {
	// ID is the unique identifier assigned by the source data.
	ID int `json:"id"`

	// PDFPath is the filesystem path of the underlying PDF. Not unique:
	// two documents sharing a path is the duplicate-ingest signal.
	PDFPath string `json:"pdf_path"`

	// Status is the current review state.
	Status DocumentStatus `json:"status"`
}

// DocumentUpdate is the request body for PATCH /documents/:id.
//
// Only fields a caller may change are listed here; the pointer distinguishes
// "field absent" (no change requested) from an explicitly supplied value.
type DocumentUpdate struct {
	Status *DocumentStatus `json:"status" binding:"omitempty,docstatus"`
}

// DocumentsResponse is the envelope for status-bucket listings.
type DocumentsResponse struct {
	Success   bool       `json:"success"`
	Documents []Document `json:"documents"`
}

// GroupedDocumentsResponse is the envelope for the duplicates listing,
// grouped by pdf_path.
type GroupedDocumentsResponse struct {
	Success   bool                  `json:"success"`
	Documents map[string][]Document `json:"documents"`
}

// DocumentResponse is the envelope for single-document results.
type DocumentResponse struct {
	Success  bool     `json:"success"`
	Document Document `json:"document"`
}

func init() {
	// Register the status enum check with Gin's binding engine so invalid
	// values are rejected at the boundary and never reach the index layer.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("docstatus", func(fl validator.FieldLevel) bool {
			return DocumentStatus(fl.Field().String()).Valid()
		})
	}
}
