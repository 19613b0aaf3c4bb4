// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package store loads the document record store from its CSV source.
//
// The source file is read exactly once, at startup. Every error in this
// package is a fatal startup error: a registry built from a partially
// parsed source would silently drop documents, so malformed input aborts
// the load instead.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AleutianAI/AleutianRegistry/services/registry/datatypes"
)

// Required column names in the source header row. Column order is free and
// extra columns are ignored.
const (
	columnID     = "id"
	columnPath   = "pdf_path"
	columnStatus = "status"
)

// Sentinel errors for load failures.
var (
	// ErrMissingColumn is returned when the header row lacks a required column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrMissingField is returned when a row has an empty required field.
	ErrMissingField = errors.New("missing required field")

	// ErrBadID is returned when an id field does not parse as an integer.
	ErrBadID = errors.New("id is not an integer")

	// ErrBadStatus is returned when a status field is outside the enumeration.
	ErrBadStatus = errors.New("status outside enumeration")
)

// Load parses the tabular document source from r.
//
// # Description
//
// Reads a CSV stream with a header row and returns the documents in file
// order. Rows may carry more than the three required columns; the extras
// are ignored. The first malformed row aborts the load.
//
// # Inputs
//
//   - r: CSV source. Must include a header row.
//
// # Outputs
//
//   - []*datatypes.Document: Documents in file order.
//   - error: Non-nil on any malformed header or row. Wraps the sentinel
//     errors above with row context for errors.Is checks.
func Load(r io.Reader) ([]*datatypes.Document, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty source", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var docs []*datatypes.Document
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", row+1, err)
		}
		row++

		doc, err := parseRow(record, columns)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

// LoadFile opens path and loads the document source from it.
func LoadFile(path string) ([]*datatypes.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document source %s: %w", path, err)
	}
	defer f.Close()

	docs, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return docs, nil
}

// columnIndexes holds the position of each required column in the header.
type columnIndexes struct {
	id     int
	path   int
	status int
}

// mapColumns locates the required columns in the header row.
func mapColumns(header []string) (columnIndexes, error) {
	idx := columnIndexes{id: -1, path: -1, status: -1}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case columnID:
			idx.id = i
		case columnPath:
			idx.path = i
		case columnStatus:
			idx.status = i
		}
	}

	for name, pos := range map[string]int{
		columnID:     idx.id,
		columnPath:   idx.path,
		columnStatus: idx.status,
	} {
		if pos < 0 {
			return idx, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	return idx, nil
}

// parseRow converts one CSV record into a Document.
func parseRow(record []string, columns columnIndexes) (*datatypes.Document, error) {
	rawID, err := field(record, columns.id, columnID)
	if err != nil {
		return nil, err
	}
	rawPath, err := field(record, columns.path, columnPath)
	if err != nil {
		return nil, err
	}
	rawStatus, err := field(record, columns.status, columnStatus)
	if err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadID, rawID)
	}

	status, err := datatypes.ParseDocumentStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadStatus, rawStatus)
	}

	return &datatypes.Document{
		ID:      id,
		PDFPath: rawPath,
		Status:  status,
	}, nil
}

// field extracts a required field from a record, rejecting short rows and
// empty values alike.
func field(record []string, pos int, name string) (string, error) {
	if pos >= len(record) {
		return "", fmt.Errorf("%w: %s", ErrMissingField, name)
	}
	value := strings.TrimSpace(record[pos])
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingField, name)
	}
	return value, nil
}
