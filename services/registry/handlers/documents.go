// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/AleutianRegistry/services/registry/datatypes"
	"github.com/AleutianAI/AleutianRegistry/services/registry/index"
	"github.com/AleutianAI/AleutianRegistry/services/registry/observability"
)

// GetDocumentsByStatus lists the documents currently holding the status
// given in the path segment. An invalid status value is rejected with 422
// before the registry is consulted.
func GetDocumentsByStatus(reg *index.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, err := datatypes.ParseDocumentStatus(c.Param("status"))
		if err != nil {
			recordRequest(observability.EndpointListByStatus, false)
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid status value"})
			return
		}

		docs := reg.ByStatus(status)
		recordRequest(observability.EndpointListByStatus, true)
		c.JSON(http.StatusOK, datatypes.DocumentsResponse{
			Success:   true,
			Documents: docs,
		})
	}
}

// GetDuplicateDocuments lists the documents sharing a pdf_path with at
// least one other document, grouped by path.
func GetDuplicateDocuments(reg *index.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		recordRequest(observability.EndpointDuplicates, true)
		c.JSON(http.StatusOK, datatypes.GroupedDocumentsResponse{
			Success:   true,
			Documents: reg.Duplicates(),
		})
	}
}

// UpdateDocument applies a partial update to one document.
//
// The body is a JSON object with an optional status field; an absent field
// is an explicit no-op. Invalid enum values and non-integer ids never reach
// the registry - binding rejects them here with 422, matching the boundary
// validation contract. An unknown id yields 404.
func UpdateDocument(reg *index.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			recordUpdateError(observability.ReasonValidation)
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "document id must be an integer"})
			return
		}

		var req datatypes.DocumentUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			recordUpdateError(observability.ReasonValidation)
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
			return
		}

		// Pre-update snapshot, only used to label the move counter.
		prev, _ := reg.Get(id)

		doc, err := reg.UpdateStatus(id, req.Status)
		switch {
		case errors.Is(err, index.ErrNotFound):
			recordUpdateError(observability.ReasonNotFound)
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
			return
		case errors.Is(err, datatypes.ErrInvalidStatus):
			// Defensive: binding already rejects these.
			recordUpdateError(observability.ReasonValidation)
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid status value"})
			return
		case err != nil:
			slog.Error("document update failed", "id", id, "error", err)
			recordRequest(observability.EndpointUpdate, false)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update document"})
			return
		}

		if prev.Status != doc.Status {
			slog.Info("document status updated",
				"id", id, "from", prev.Status, "to", doc.Status)
			if m := observability.DefaultMetrics; m != nil {
				m.RecordStatusUpdate(prev.Status, doc.Status)
			}
		}
		recordRequest(observability.EndpointUpdate, true)
		refreshDocumentGauge(reg)

		c.JSON(http.StatusOK, datatypes.DocumentResponse{
			Success:  true,
			Document: doc,
		})
	}
}

// recordRequest is a nil-safe wrapper around the metrics singleton; tests
// run handlers without initializing metrics.
func recordRequest(endpoint observability.Endpoint, success bool) {
	if m := observability.DefaultMetrics; m != nil {
		m.RecordRequest(endpoint, success)
	}
}

func recordUpdateError(reason observability.ErrorReason) {
	if m := observability.DefaultMetrics; m != nil {
		m.RecordUpdateError(reason)
		m.RecordRequest(observability.EndpointUpdate, false)
	}
}

func refreshDocumentGauge(reg *index.Registry) {
	if m := observability.DefaultMetrics; m != nil {
		m.SetDocumentCounts(reg.CountByStatus())
	}
}
