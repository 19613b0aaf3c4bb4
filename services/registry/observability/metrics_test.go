// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/AleutianAI/AleutianRegistry/services/registry/datatypes"
)

// ============================================================================
// Test Helper: Create isolated metrics for testing
// ============================================================================

// newTestMetrics creates a RegistryMetrics instance with a custom registry.
// This avoids conflicts with the global Prometheus registry and allows
// parallel testing.
func newTestMetrics(t *testing.T) *RegistryMetrics {
	t.Helper()

	reg := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: registrySubsystem,
			Name:      "requests_total",
			Help:      "Total number of registry API requests by endpoint and outcome",
		},
		[]string{"endpoint", "status"},
	)

	documents := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: registrySubsystem,
			Name:      "documents",
			Help:      "Current number of documents per status bucket",
		},
		[]string{"status"},
	)

	statusUpdatesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: registrySubsystem,
			Name:      "status_updates_total",
			Help:      "Total applied status moves by source and target status",
		},
		[]string{"from", "to"},
	)

	updateErrorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: registrySubsystem,
			Name:      "update_errors_total",
			Help:      "Total rejected document updates by reason",
		},
		[]string{"reason"},
	)

	reg.MustRegister(requestsTotal, documents, statusUpdatesTotal, updateErrorsTotal)

	return &RegistryMetrics{
		RequestsTotal:      requestsTotal,
		Documents:          documents,
		StatusUpdatesTotal: statusUpdatesTotal,
		UpdateErrorsTotal:  updateErrorsTotal,
	}
}

// ============================================================================
// Helper Method Tests
// ============================================================================

func TestRecordRequest_LabelsOutcome(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordRequest(EndpointListByStatus, true)
	m.RecordRequest(EndpointListByStatus, true)
	m.RecordRequest(EndpointListByStatus, false)
	m.RecordRequest(EndpointUpdate, false)

	assert.Equal(t, float64(2), testutil.ToFloat64(
		m.RequestsTotal.WithLabelValues("list_by_status", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.RequestsTotal.WithLabelValues("list_by_status", "error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.RequestsTotal.WithLabelValues("update", "error")))
}

func TestRecordStatusUpdate_LabelsMove(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordStatusUpdate(datatypes.StatusNeedsReview, datatypes.StatusSucceeded)
	m.RecordStatusUpdate(datatypes.StatusNeedsReview, datatypes.StatusSucceeded)

	assert.Equal(t, float64(2), testutil.ToFloat64(
		m.StatusUpdatesTotal.WithLabelValues("NEEDS_REVIEW", "SUCCEEDED")))
	assert.Equal(t, float64(0), testutil.ToFloat64(
		m.StatusUpdatesTotal.WithLabelValues("SUCCEEDED", "NEEDS_REVIEW")))
}

func TestRecordUpdateError_LabelsReason(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordUpdateError(ReasonNotFound)
	m.RecordUpdateError(ReasonValidation)
	m.RecordUpdateError(ReasonValidation)

	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.UpdateErrorsTotal.WithLabelValues("not_found")))
	assert.Equal(t, float64(2), testutil.ToFloat64(
		m.UpdateErrorsTotal.WithLabelValues("validation")))
}

func TestSetDocumentCounts_TracksBucketSizes(t *testing.T) {
	m := newTestMetrics(t)

	m.SetDocumentCounts(map[datatypes.DocumentStatus]int{
		datatypes.StatusSucceeded:   5,
		datatypes.StatusNeedsReview: 2,
	})

	assert.Equal(t, float64(5), testutil.ToFloat64(
		m.Documents.WithLabelValues("SUCCEEDED")))
	assert.Equal(t, float64(2), testutil.ToFloat64(
		m.Documents.WithLabelValues("NEEDS_REVIEW")))

	// A gauge set, not incremented: later counts replace earlier ones.
	m.SetDocumentCounts(map[datatypes.DocumentStatus]int{
		datatypes.StatusSucceeded:   4,
		datatypes.StatusNeedsReview: 3,
	})

	assert.Equal(t, float64(4), testutil.ToFloat64(
		m.Documents.WithLabelValues("SUCCEEDED")))
}

// ============================================================================
// InitMetrics Tests
// ============================================================================

func TestInitMetrics_Idempotent(t *testing.T) {
	first := InitMetrics()
	second := InitMetrics()

	assert.NotNil(t, first)
	assert.Same(t, first, second)
	assert.Same(t, first, DefaultMetrics)
}
