package system

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/engine"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/types"
)

// StatsSource reports runtime pool usage
type StatsSource interface {
	Stats() map[string]interface{}
}

// Provider reports on the running integrator: process info, configured
// integration limits, runtime pool usage and metric totals
type Provider struct {
	startTime time.Time
	engine    *engine.Engine
	pool      StatsSource
	metrics   *monitoring.Metrics
}

// NewProvider creates a system provider. pool and metrics may be nil.
func NewProvider(e *engine.Engine, pool StatsSource, metrics *monitoring.Metrics) *Provider {
	return &Provider{
		startTime: time.Now(),
		engine:    e,
		pool:      pool,
		metrics:   metrics,
	}
}

// Definition returns service metadata
func (s *Provider) Definition() types.Service {
	return types.Service{
		ID:          "system",
		Name:        "System Service",
		Description: "System information, integration limits and runtime statistics",
		Category:    types.CategorySystem,
		Capabilities: []string{
			"info",
			"limits",
			"monitoring",
		},
		Tools: []types.Tool{
			{
				ID:          "system.info",
				Name:        "System Info",
				Description: "Get system information",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "system.time",
				Name:        "Current Time",
				Description: "Get current server time",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "system.limits",
				Name:        "Integration Limits",
				Description: "Get default tolerances, budgets and supported methods",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "system.stats",
				Name:        "Runtime Statistics",
				Description: "Get expression runtime pool usage and integration totals",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "system.ping",
				Name:        "Ping",
				Description: "Test service availability",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
		},
	}
}

// Execute runs a system operation
func (s *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "system.info":
		return s.info()
	case "system.time":
		return s.currentTime()
	case "system.limits":
		return s.limits()
	case "system.stats":
		return s.stats()
	case "system.ping":
		return s.ping(appCtx)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (s *Provider) info() (*types.Result, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return success(map[string]interface{}{
		"go_version":     runtime.Version(),
		"os":             runtime.GOOS,
		"arch":           runtime.GOARCH,
		"cpus":           runtime.NumCPU(),
		"goroutines":     runtime.NumGoroutine(),
		"memory_alloc":   m.Alloc / 1024 / 1024,      // MB
		"memory_total":   m.TotalAlloc / 1024 / 1024, // MB
		"memory_sys":     m.Sys / 1024 / 1024,        // MB
		"uptime_seconds": time.Since(s.startTime).Seconds(),
	})
}

func (s *Provider) currentTime() (*types.Result, error) {
	now := time.Now()
	return success(map[string]interface{}{
		"timestamp": now.Unix(),
		"iso":       now.Format(time.RFC3339),
		"unix_ms":   now.UnixMilli(),
	})
}

func (s *Provider) limits() (*types.Result, error) {
	if s.engine == nil {
		return failure("integration engine not configured")
	}
	limits := s.engine.Limits()

	methods := make([]string, len(engine.Methods))
	for i, m := range engine.Methods {
		methods[i] = string(m)
	}

	return success(map[string]interface{}{
		"abs_tolerance":   limits.AbsTolerance,
		"rel_tolerance":   limits.RelTolerance,
		"max_depth":       limits.MaxDepth,
		"max_evaluations": limits.MaxEvaluations,
		"max_samples":     limits.MaxSamples,
		"timeout_ms":      limits.Timeout.Milliseconds(),
		"methods":         methods,
		"samplers":        []string{string(engine.SamplerWyrand), string(engine.SamplerMT19937)},
	})
}

func (s *Provider) stats() (*types.Result, error) {
	data := map[string]interface{}{
		"uptime_seconds": time.Since(s.startTime).Seconds(),
	}
	if s.pool != nil {
		data["pool"] = s.pool.Stats()
	}
	if s.metrics != nil {
		snap := s.metrics.Snapshot()
		data["integrations"] = snap.Integrations
		data["failed_integrations"] = snap.FailedIntegrations
		data["evaluations"] = snap.Evaluations
	}
	return success(data)
}

func (s *Provider) ping(appCtx *types.Context) (*types.Result, error) {
	data := map[string]interface{}{
		"pong":      true,
		"timestamp": time.Now().Unix(),
	}
	if appCtx != nil && appCtx.RequestID != "" {
		data["request_id"] = appCtx.RequestID
	}
	return success(data)
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}
