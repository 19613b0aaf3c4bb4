// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package handlers maps registry HTTP requests to index operations.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/AleutianRegistry/services/registry/watch"
)

// landingHTML is the root page served at GET /. Plain inline HTML; the
// service has no static asset pipeline.
const landingHTML = `<html>
  <head>
    <style type="text/css">
      body {
        font-family: sans-serif;
      }
      main {
        width: 300px;
        height: 100vh;
        margin: 0 auto;
        display: flex;
        flex-direction: column;
        justify-content: center;
        align-items: stretch;
        gap: 32px;
      }
      a {
        padding: 10px;
        text-decoration: none;
        background: #2b3245;
        color: #c2c8cc;
        border-radius: 10px;
        text-align: center;
      }
    </style>
  </head>
  <body>
    <main>
      <a href="/documents/status/NEEDS_REVIEW">Review Queue</a>
      <a href="/documents/duplicates">Duplicate Paths</a>
      <a href="/health">Health</a>
      <a href="/metrics">Metrics</a>
    </main>
  </body>
</html>
`

// LandingPage serves the HTML index with links into the API.
func LandingPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(landingHTML))
}

// Health reports service liveness.
//
// When a source watcher is attached, the response also reports whether the
// source file has changed on disk since load (updates are memory-only, so
// a changed file means disk and memory have diverged until restart).
func Health(watcher *watch.SourceWatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload := gin.H{"status": "ok"}
		if watcher != nil {
			payload["source_stale"] = watcher.Stale()
		}
		c.JSON(http.StatusOK, payload)
	}
}
