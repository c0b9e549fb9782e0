// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/repofleet/coordinator/pkg/metrics"
)

var (
	// httpRequestsTotal counts total HTTP requests
	httpRequestsTotal = metrics.NewCounterVec(
		"http_requests_total",
		"Total number of HTTP requests",
		[]string{"method", "path", "status"},
		metrics.WithoutSuffix(),
	)

	// httpRequestErrorsTotal counts HTTP requests that resulted in errors (4xx and 5xx)
	httpRequestErrorsTotal = metrics.NewCounterVec(
		"http_request_errors_total",
		"Total number of HTTP request errors (4xx and 5xx status codes)",
		[]string{"method", "path", "status"},
		metrics.WithoutSuffix(),
	)

	// httpRequestDuration measures HTTP request duration in seconds
	httpRequestDuration = metrics.NewHistogramVec(
		"http_request_duration_seconds",
		"HTTP request duration in seconds",
		[]string{"method", "path"},
		metrics.WithBuckets([]float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}),
		metrics.WithoutSuffix(),
	)

	// httpRequestsInFlight tracks the number of in-flight HTTP requests
	httpRequestsInFlight = metrics.NewGaugeVec(
		"http_requests_in_flight",
		"Number of HTTP requests currently being processed",
		[]string{"method"},
		metrics.WithoutSuffix(),
	)
)

// HandleMetrics returns a gin middleware that records HTTP metrics
func HandleMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip metrics endpoint to avoid self-referential metrics
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		startTime := time.Now()
		method := c.Request.Method

		// Use FullPath for better grouping (e.g., /api/users/:id instead of /api/users/123)
		// Fall back to URL.Path if FullPath is empty (for unmatched routes)
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		// Track in-flight requests
		httpRequestsInFlight.Inc(method)
		defer httpRequestsInFlight.Dec(method)

		// Process request
		c.Next()

		// Calculate duration
		duration := time.Since(startTime).Seconds()

		// Get status code
		statusCode := c.Writer.Status()
		statusStr := strconv.Itoa(statusCode)

		// Record request count
		httpRequestsTotal.Inc(method, path, statusStr)

		// Record error count for 4xx and 5xx status codes
		if statusCode >= 400 {
			httpRequestErrorsTotal.Inc(method, path, statusStr)
		}

		// Record request duration
		httpRequestDuration.Observe(duration, method, path)
	}
}
