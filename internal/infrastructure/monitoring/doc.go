/*
Package monitoring provides metrics collection for the integration service.

# Overview

Prometheus metrics on a per-instance registry: HTTP traffic, service calls,
integrations by method (outcome, integrand evaluations, wall time), busy
expression runtimes and batch job outcomes.

# Usage

	metrics := monitoring.NewMetrics()
	defer metrics.Close()

	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "integration", "integration.quad")
	res, err := q.Integrate(f, a, b)
	timer.Stop("success")
	metrics.RecordIntegration("quad", res.Evaluations, elapsed, err)
*/
package monitoring
