// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package index

import "errors"

// Sentinel errors for registry operations.
var (
	// ErrNotFound is returned when a referenced document id is not in the
	// registry. This is the only request-scoped error the index layer
	// signals; everything else is a startup failure.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicateID is returned at build time when two rows share an id.
	// Duplicate ids are a data-integrity violation in the source file, not
	// a runtime case to tolerate silently.
	ErrDuplicateID = errors.New("duplicate document id")
)
