package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/api/middleware"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/service"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/shared/utils"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/types"
)

// Version is reported by the root endpoint
const Version = "0.3.0"

// StatsSource reports component statistics for the health endpoint
type StatsSource interface {
	Stats() map[string]interface{}
}

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	pool     StatsSource
	metrics  *monitoring.Metrics
}

// NewHandlers creates a new handler set. pool and metrics may be nil.
func NewHandlers(registry *service.Registry, pool StatsSource, metrics *monitoring.Metrics) *Handlers {
	return &Handlers{
		registry: registry,
		pool:     pool,
		metrics:  metrics,
	}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Integrator",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	resp := gin.H{
		"status":           "healthy",
		"service_registry": h.registry.Stats(),
	}
	if h.pool != nil {
		resp["runtime_pool"] = h.pool.Stats()
	}
	if h.metrics != nil {
		resp["uptime_seconds"] = h.metrics.UptimeDuration().Seconds()
	}
	c.JSON(http.StatusOK, resp)
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	categoryStr := c.Query("category")

	if categoryStr != "" {
		if err := utils.ValidateCategory(categoryStr, false); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var category *types.Category
	if categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// DiscoverServices discovers relevant services for a query
func (h *Handlers) DiscoverServices(c *gin.Context) {
	var req types.DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := utils.ValidateQuery(req.Query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":    req.Query,
		"services": h.registry.Discover(req.Query, req.Limit),
	})
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := utils.ValidateToolID(req.ToolID, "tool_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.execute(c, req.ToolID, req.Params, req.Caller)
}

// Integrate runs one integration method. The method comes from the path and
// the JSON body holds the tool parameters.
func (h *Handlers) Integrate(c *gin.Context) {
	var params map[string]interface{}
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	toolID := "integration." + c.Param("method")
	if err := utils.ValidateToolID(toolID, "method", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.execute(c, toolID, params, nil)
}

func (h *Handlers) execute(c *gin.Context, toolID string, params map[string]interface{}, caller *string) {
	appCtx := &types.Context{
		RequestID: middleware.GetRequestID(c),
		Caller:    caller,
	}

	serviceID, _, _ := types.SplitToolID(toolID)
	timer := monitoring.NewTimer(h.metrics, serviceID, toolID)

	result, err := h.registry.Execute(c.Request.Context(), toolID, params, appCtx)
	timer.StopResult(err == nil && result.Success, err)

	if err != nil {
		code, kind := http.StatusInternalServerError, "internal"
		switch {
		case errors.Is(err, service.ErrServiceNotFound):
			code, kind = http.StatusNotFound, "not_found"
		case errors.Is(err, service.ErrInvalidToolID):
			code, kind = http.StatusBadRequest, "invalid_tool_id"
		}
		if h.metrics != nil {
			h.metrics.RecordServiceError(serviceID, toolID, kind)
		}
		c.JSON(code, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
