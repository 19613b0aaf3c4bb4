// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package index maintains the derived lookup structures over the loaded
// document collection and owns the single mutation path through them.
//
// # Description
//
// Three indexes are built from the record store in one pass: by unique id,
// by status (one-to-many) and by pdf_path (one-to-many). Paths never change
// after load, so the duplicates view (paths with more than one document) is
// computed once at construction and cached. All four structures share the
// same *Document values; a status update mutates exactly one place and is
// visible through every index at once.
//
// # Thread Safety
//
// A single RWMutex guards all index structures. Readers take the read lock
// and return value snapshots, so serialization of a response never races
// with a concurrent update. UpdateStatus holds the write lock across the
// whole remove/mutate/append sequence, so no reader can observe a document
// in both buckets or in neither.
package index

import (
	"fmt"
	"sync"

	"github.com/AleutianAI/AleutianRegistry/services/registry/datatypes"
)

// Registry is the in-memory document registry: the canonical record store
// plus its derived indexes.
//
// The shape of the collection is immutable after New returns - no document
// is ever inserted or deleted. The only mutation is UpdateStatus.
type Registry struct {
	mu sync.RWMutex

	// documents holds the canonical records in load order.
	documents []*datatypes.Document

	// byID maps each unique id to its document.
	byID map[int]*datatypes.Document

	// byStatus groups documents by current status. Bucket order is load
	// order; a moved document is appended to the end of its new bucket.
	byStatus map[datatypes.DocumentStatus][]*datatypes.Document

	// byPath groups documents by pdf_path. Fixed after construction since
	// paths are never mutated.
	byPath map[string][]*datatypes.Document

	// duplicates caches the byPath buckets with more than one member.
	duplicates map[string][]*datatypes.Document
}

// New builds a Registry from the loaded document sequence.
//
// # Description
//
// Performs a single pass over docs, building all indexes in load order and
// caching the duplicates view. A duplicate id fails the build: silently
// overwriting the earlier record would leave the status and path buckets
// referencing a document no longer reachable by id.
//
// # Inputs
//
//   - docs: Documents in load order. The registry takes ownership; callers
//     must not mutate them afterwards.
//
// # Outputs
//
//   - *Registry: Ready-to-serve registry.
//   - error: Wraps ErrDuplicateID with the offending id.
func New(docs []*datatypes.Document) (*Registry, error) {
	r := &Registry{
		documents:  docs,
		byID:       make(map[int]*datatypes.Document, len(docs)),
		byStatus:   make(map[datatypes.DocumentStatus][]*datatypes.Document),
		byPath:     make(map[string][]*datatypes.Document),
		duplicates: make(map[string][]*datatypes.Document),
	}

	for _, doc := range docs {
		if _, exists := r.byID[doc.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, doc.ID)
		}
		r.byID[doc.ID] = doc
		r.byStatus[doc.Status] = append(r.byStatus[doc.Status], doc)
		r.byPath[doc.PDFPath] = append(r.byPath[doc.PDFPath], doc)
	}

	// Paths are immutable, so this view never needs recomputing.
	for path, bucket := range r.byPath {
		if len(bucket) > 1 {
			r.duplicates[path] = bucket
		}
	}

	return r, nil
}

// Len returns the total number of documents in the registry.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.documents)
}

// Get returns a snapshot of the document with the given id.
func (r *Registry) Get(id int) (datatypes.Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.byID[id]
	if !ok {
		return datatypes.Document{}, false
	}
	return *doc, true
}

// ByStatus returns a snapshot of the bucket for the given status.
//
// A status that no document currently holds yields an empty slice, not an
// error. The returned slice is always non-nil so it serializes as a JSON
// array.
func (r *Registry) ByStatus(status datatypes.DocumentStatus) []datatypes.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return snapshot(r.byStatus[status])
}

// Duplicates returns a snapshot of the paths shared by more than one
// document, each mapped to its documents in load order.
func (r *Registry) Duplicates() map[string][]datatypes.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string][]datatypes.Document, len(r.duplicates))
	for path, bucket := range r.duplicates {
		out[path] = snapshot(bucket)
	}
	return out
}

// CountByStatus returns the current bucket sizes for both status values,
// including zero-sized buckets. Used for the document gauge and the CLI.
func (r *Registry) CountByStatus() map[datatypes.DocumentStatus]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return map[datatypes.DocumentStatus]int{
		datatypes.StatusSucceeded:   len(r.byStatus[datatypes.StatusSucceeded]),
		datatypes.StatusNeedsReview: len(r.byStatus[datatypes.StatusNeedsReview]),
	}
}

// UpdateStatus applies a partial update to one document and keeps the id
// and status indexes consistent.
//
// # Description
//
// The single mutation path of the registry. With a nil status (caller
// supplied no change) or a status equal to the current one, this is a pure
// read: the current document is returned and no index is touched. With a
// differing status, the document is removed from its old status bucket,
// mutated in place, and appended to the end of the new bucket - all under
// the write lock.
//
// # Inputs
//
//   - id: Document id. Must exist in the registry.
//   - status: Requested status, or nil for no change. Enumeration validity
//     is enforced at the HTTP boundary; this method re-checks defensively
//     for direct callers.
//
// # Outputs
//
//   - datatypes.Document: Snapshot of the document after the update.
//   - error: ErrNotFound for an unknown id, datatypes.ErrInvalidStatus for
//     a value outside the enumeration. Indexes are untouched on error.
func (r *Registry) UpdateStatus(id int, status *datatypes.DocumentStatus) (datatypes.Document, error) {
	if status != nil && !status.Valid() {
		return datatypes.Document{}, fmt.Errorf("%w: %q", datatypes.ErrInvalidStatus, *status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.byID[id]
	if !ok {
		return datatypes.Document{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	// Absent and explicit-same-value both collapse to a no-op; neither may
	// churn the status index.
	if status == nil || *status == doc.Status {
		return *doc, nil
	}

	r.byStatus[doc.Status] = remove(r.byStatus[doc.Status], doc)
	doc.Status = *status
	r.byStatus[doc.Status] = append(r.byStatus[doc.Status], doc)

	return *doc, nil
}

// snapshot copies a bucket into caller-owned values.
func snapshot(bucket []*datatypes.Document) []datatypes.Document {
	out := make([]datatypes.Document, 0, len(bucket))
	for _, doc := range bucket {
		out = append(out, *doc)
	}
	return out
}

// remove deletes doc from a bucket by identity, preserving order.
func remove(bucket []*datatypes.Document, doc *datatypes.Document) []*datatypes.Document {
	for i, d := range bucket {
		if d == doc {
			return append(bucket[:i], bucket[i+1:]...)
		}
	}
	return bucket
}
