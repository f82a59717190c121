package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/flowgrid/flowfs/internal/batch"
	"github.com/flowgrid/flowfs/internal/monitoring"
	"github.com/flowgrid/flowfs/internal/service"
	"github.com/flowgrid/flowfs/internal/types"
	"github.com/flowgrid/flowfs/internal/ws"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	runner   *batch.Runner
	hub      *ws.Hub
	metrics  *monitoring.Metrics
	log      *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(
	registry *service.Registry,
	runner *batch.Runner,
	hub *ws.Hub,
	metrics *monitoring.Metrics,
	log *zap.Logger,
) *Handlers {
	return &Handlers{
		registry: registry,
		runner:   runner,
		hub:      hub,
		metrics:  metrics,
		log:      log,
	}
}

// DiscoverRequest asks for tools relevant to a free-text query.
type DiscoverRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit"`
}

// ExecuteRequest invokes one tool with one parameter set.
type ExecuteRequest struct {
	ToolID  string                 `json:"tool_id" binding:"required"`
	Params  map[string]interface{} `json:"params"`
	WorkDir string                 `json:"work_dir"`
}

// BatchRequest runs one tool across an ordered batch of input items.
type BatchRequest struct {
	ToolID         string                   `json:"tool_id" binding:"required"`
	Items          []batch.Item             `json:"items"`
	Params         map[string]interface{}   `json:"params"`
	ItemParams     []map[string]interface{} `json:"item_params"`
	ContinueOnFail bool                     `json:"continue_on_fail"`
	WorkDir        string                   `json:"work_dir"`
	WorkflowID     string                   `json:"workflow_id"`
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "FlowFS Service (Go)",
		"version": "0.1.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"service_registry": h.registry.Stats(),
		"stream_clients":   h.hub.ClientCount(),
		"metrics":          h.metrics.GetSnapshot(),
	})
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	categoryStr := c.Query("category")

	var category *types.Category
	if categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	services := h.registry.List(category)
	stats := h.registry.Stats()

	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"stats":    stats,
	})
}

// DiscoverServices discovers relevant services for a query
func (h *Handlers) DiscoverServices(c *gin.Context) {
	var req DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 5
	}

	services := h.registry.Discover(req.Query, limit)

	c.JSON(http.StatusOK, gin.H{
		"query":    req.Query,
		"services": services,
	})
}

// ExecuteService executes a single tool call
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var runCtx *types.Context
	if req.WorkDir != "" {
		runCtx = &types.Context{WorkDir: &req.WorkDir}
	}

	timer := monitoring.NewTimer(h.metrics, req.ToolID)
	result, err := h.registry.Execute(req.ToolID, req.Params, runCtx)
	if err != nil {
		timer.Stop("failure")
		h.log.Warn("execute failed", zap.String("tool", req.ToolID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := "failure"
	if result.Success {
		status = "success"
	}
	timer.Stop(status)

	c.JSON(http.StatusOK, result)
}

// ExecuteBatch runs a tool across a batch of items
func (h *Handlers) ExecuteBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := req.Items
	if len(items) == 0 {
		// A run without items still executes once, against an empty item.
		items = []batch.Item{{}}
	}

	source := batch.StaticParams(req.Params)
	if len(req.ItemParams) > 0 {
		source = batch.LayeredParams(req.Params, req.ItemParams)
	}

	opts := batch.Options{
		ContinueOnFail: req.ContinueOnFail,
		WorkDir:        req.WorkDir,
		WorkflowID:     req.WorkflowID,
	}

	h.metrics.IncBatchInFlight()
	summary, err := h.runner.Run(req.ToolID, items, source, opts)
	h.metrics.DecBatchInFlight()

	if err != nil {
		h.log.Warn("batch run aborted",
			zap.String("tool", req.ToolID),
			zap.String("run_id", summary.RunID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    err.Error(),
			"run_id":   summary.RunID,
			"tool_id":  summary.ToolID,
			"failures": summary.Failures,
			"outputs":  summary.Outputs,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":     summary.RunID,
		"tool_id":    summary.ToolID,
		"items":      summary.Items,
		"failures":   summary.Failures,
		"outputs":    summary.Outputs,
		"elapsed_ms": summary.Elapsed.Milliseconds(),
	})
}
