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
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AleutianAI/AleutianRegistry/services/registry/datatypes"
)

// Client is a thin HTTP client for the registry API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the registry at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ListByStatus fetches the documents currently holding the given status.
func (c *Client) ListByStatus(status string) ([]datatypes.Document, error) {
	var resp datatypes.DocumentsResponse
	if err := c.get("/documents/status/"+status, &resp); err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

// Duplicates fetches the documents sharing a pdf_path, grouped by path.
func (c *Client) Duplicates() (map[string][]datatypes.Document, error) {
	var resp datatypes.GroupedDocumentsResponse
	if err := c.get("/documents/duplicates", &resp); err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

// Review patches a document's review status.
func (c *Client) Review(id int, status string) (datatypes.Document, error) {
	body, err := json.Marshal(map[string]string{"status": status})
	if err != nil {
		return datatypes.Document{}, err
	}

	req, err := http.NewRequest(http.MethodPatch,
		fmt.Sprintf("%s/documents/%d", c.baseURL, id), bytes.NewReader(body))
	if err != nil {
		return datatypes.Document{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return datatypes.Document{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return datatypes.Document{}, apiError(res)
	}

	var resp datatypes.DocumentResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return datatypes.Document{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.Document, nil
}

// Health checks service liveness and returns the raw health payload.
func (c *Client) Health() (map[string]any, error) {
	var payload map[string]any
	if err := c.get("/health", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// get performs a GET request and decodes the JSON response into out.
func (c *Client) get(path string, out any) error {
	res, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return apiError(res)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// apiError extracts the server's error message from a non-200 response.
func apiError(res *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(res.Body)
	if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		return fmt.Errorf("server returned %d: %s", res.StatusCode, payload.Error)
	}
	return fmt.Errorf("server returned %d", res.StatusCode)
}
