// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package observability provides Prometheus metrics for the registry service.
//
// Metrics are exposed via the /metrics endpoint. All operations are
// thread-safe via Prometheus's internal locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AleutianAI/AleutianRegistry/services/registry/datatypes"
)

// Namespace for all metrics
const metricsNamespace = "aleutian"

// Subsystem for registry metrics
const registrySubsystem = "registry"

// RegistryMetrics holds all Prometheus metrics for registry operations.
//
// Initialize once at startup via InitMetrics().
type RegistryMetrics struct {
	// RequestsTotal counts API requests by endpoint and outcome.
	// Labels: endpoint (list_by_status, duplicates, update), status (success, error)
	RequestsTotal *prometheus.CounterVec

	// Documents tracks the current number of documents per status bucket.
	// Labels: status (SUCCEEDED, NEEDS_REVIEW)
	Documents *prometheus.GaugeVec

	// StatusUpdatesTotal counts applied status moves.
	// Labels: from, to
	StatusUpdatesTotal *prometheus.CounterVec

	// UpdateErrorsTotal counts rejected updates by reason.
	// Labels: reason (not_found, validation)
	UpdateErrorsTotal *prometheus.CounterVec
}

// DefaultMetrics is the singleton instance of RegistryMetrics.
// Initialized by InitMetrics(); nil when metrics are disabled.
var DefaultMetrics *RegistryMetrics

// InitMetrics initializes the default metrics instance.
//
// # Description
//
// Creates and registers all Prometheus metrics on the default registry.
// Safe to call more than once: repeated calls return the existing instance
// instead of re-registering.
//
// # Outputs
//
//   - *RegistryMetrics: The initialized metrics instance.
func InitMetrics() *RegistryMetrics {
	if DefaultMetrics != nil {
		return DefaultMetrics
	}

	DefaultMetrics = &RegistryMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: registrySubsystem,
				Name:      "requests_total",
				Help:      "Total number of registry API requests by endpoint and outcome",
			},
			[]string{"endpoint", "status"},
		),

		Documents: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: registrySubsystem,
				Name:      "documents",
				Help:      "Current number of documents per status bucket",
			},
			[]string{"status"},
		),

		StatusUpdatesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: registrySubsystem,
				Name:      "status_updates_total",
				Help:      "Total applied status moves by source and target status",
			},
			[]string{"from", "to"},
		),

		UpdateErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: registrySubsystem,
				Name:      "update_errors_total",
				Help:      "Total rejected document updates by reason",
			},
			[]string{"reason"},
		),
	}

	return DefaultMetrics
}

// =============================================================================
// Endpoint Names
// =============================================================================

// Endpoint represents a registry endpoint for metrics labeling.
type Endpoint string

const (
	// EndpointListByStatus is the status-bucket listing endpoint.
	EndpointListByStatus Endpoint = "list_by_status"

	// EndpointDuplicates is the duplicate-path listing endpoint.
	EndpointDuplicates Endpoint = "duplicates"

	// EndpointUpdate is the document patch endpoint.
	EndpointUpdate Endpoint = "update"
)

// =============================================================================
// Error Reasons
// =============================================================================

// ErrorReason categorizes rejected updates for metrics.
type ErrorReason string

const (
	// ReasonNotFound indicates the referenced id was not in the registry.
	ReasonNotFound ErrorReason = "not_found"

	// ReasonValidation indicates a request that failed boundary validation.
	ReasonValidation ErrorReason = "validation"
)

// =============================================================================
// Helper Methods
// =============================================================================

// RecordRequest records a completed API request.
func (m *RegistryMetrics) RecordRequest(endpoint Endpoint, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.RequestsTotal.WithLabelValues(string(endpoint), status).Inc()
}

// RecordStatusUpdate records one applied status move.
func (m *RegistryMetrics) RecordStatusUpdate(from, to datatypes.DocumentStatus) {
	m.StatusUpdatesTotal.WithLabelValues(string(from), string(to)).Inc()
}

// RecordUpdateError records a rejected update.
func (m *RegistryMetrics) RecordUpdateError(reason ErrorReason) {
	m.UpdateErrorsTotal.WithLabelValues(string(reason)).Inc()
}

// SetDocumentCounts updates the per-status document gauge.
func (m *RegistryMetrics) SetDocumentCounts(counts map[datatypes.DocumentStatus]int) {
	for status, count := range counts {
		m.Documents.WithLabelValues(string(status)).Set(float64(count))
	}
}
