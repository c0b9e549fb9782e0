// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/repofleet/coordinator/pkg/config"
	"github.com/repofleet/coordinator/pkg/logger/log"
	"github.com/repofleet/coordinator/pkg/metrics"
	"github.com/repofleet/coordinator/pkg/router/middleware"
)

var groupRegisters []GroupRegister

// RegisterGroup queues a route group to be mounted under /v1 the next
// time InitRouter runs. Callers (cmd/coordinator and tests) call this
// before InitRouter.
func RegisterGroup(group GroupRegister) {
	groupRegisters = append(groupRegisters, group)
}

// InitRouter wires the middleware chain described by cfg.Middleware
// onto engine and mounts every registered group under /v1.
func InitRouter(engine *gin.Engine, cfg *config.Config) error {
	if cfg.Middleware.EnableMetrics {
		engine.Use(middleware.HandleMetrics())
		engine.GET("/metrics", handleMetricsScrape)
	}

	g := engine.Group("/v1")

	if cfg.Middleware.EnableLogging {
		log.Info("HTTP request logging middleware enabled")
		g.Use(middleware.HandleLogging())
	} else {
		log.Info("HTTP request logging middleware disabled")
	}

	// Error handling middleware is always enabled: it is the single
	// place a handler's c.Error(err) is translated into a rest envelope.
	g.Use(middleware.HandleErrors())

	if cfg.Middleware.EnableCORS {
		g.Use(middleware.CorsMiddleware())
	}

	for _, group := range groupRegisters {
		if err := group(g); err != nil {
			return err
		}
	}
	return nil
}

type RouterRegister func(engine *gin.Engine) error

type GroupRegister func(group *gin.RouterGroup) error

// handleMetricsScrape serves the metrics HandleMetrics records, in
// Prometheus text exposition format, for a scraper to pull.
func handleMetricsScrape(c *gin.Context) {
	text, err := metrics.GetPromethuesAsFmtText()
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to gather metrics: %v", err)
		return
	}
	c.String(http.StatusOK, text)
}
