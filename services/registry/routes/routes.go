// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AleutianAI/AleutianRegistry/services/registry/handlers"
	"github.com/AleutianAI/AleutianRegistry/services/registry/index"
	"github.com/AleutianAI/AleutianRegistry/services/registry/watch"
)

// SetupRoutes registers all registry routes on the router.
//
// The watcher may be nil; health then omits the source_stale field.
func SetupRoutes(router *gin.Engine, reg *index.Registry, watcher *watch.SourceWatcher) {
	router.GET("/", handlers.LandingPage)
	router.GET("/health", handlers.Health(watcher))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	documents := router.Group("/documents")
	{
		documents.GET("/status/:status", handlers.GetDocumentsByStatus(reg))
		documents.GET("/duplicates", handlers.GetDuplicateDocuments(reg))
		documents.PATCH("/:id", handlers.UpdateDocument(reg))
	}
}
