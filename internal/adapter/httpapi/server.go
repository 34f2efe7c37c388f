// Package httpapi exposes the optimization engine over HTTP: the two
// optimization endpoints, the engine status document, and the operational
// health, readiness, and metrics routes.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/greenh2/site-optimizer/internal/domain"
	"github.com/greenh2/site-optimizer/internal/engine"
)

// Optimizer is the engine surface the API depends on.
type Optimizer interface {
	Optimize(ctx context.Context, criteria domain.Criteria) (domain.FeatureCollection, error)
	Status(ctx context.Context) engine.Status
}

// statusProbeTimeout bounds the database ping behind /readyz and
// /optimizer/status so a hung connection cannot stall the probe.
const statusProbeTimeout = 2 * time.Second

// Server exposes the optimization API plus health, readiness, and metrics
// HTTP endpoints.
type Server struct {
	httpServer *http.Server
	optimizer  Optimizer
	logger     *slog.Logger
}

// NewServer wires all routes onto a gin engine.
func NewServer(addr string, optimizer Optimizer, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger), corsMiddleware())

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		optimizer: optimizer,
		logger:    logger,
	}

	router.GET("/", s.handleRoot)
	router.GET("/health", s.handleHealth)
	router.GET("/readyz", s.handleReady)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/optimize", s.handleOptimize)
	router.POST("/api/optimize", s.handleAPIOptimize)
	router.GET("/optimizer/status", s.handleStatus)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// optimizeRequest is the request body for both optimization endpoints.
// Pointer fields distinguish absent values, which take the documented
// defaults, from explicit values, which validation checks.
type optimizeRequest struct {
	Region             string         `json:"region"`
	MaxCost            *float64       `json:"max_cost"`
	MinProduction      *float64       `json:"min_production"`
	ProximityToGrid    *bool          `json:"proximity_to_grid"`
	AdditionalCriteria map[string]any `json:"additional_criteria"`
}

func (r optimizeRequest) validate() error {
	if strings.TrimSpace(r.Region) == "" {
		return errors.New("region must not be blank")
	}
	if r.MaxCost != nil && *r.MaxCost <= 0 {
		return errors.New("max_cost must be positive")
	}
	if r.MinProduction != nil && *r.MinProduction < 0 {
		return errors.New("min_production must not be negative")
	}
	return nil
}

func (r optimizeRequest) criteria() domain.Criteria {
	c := domain.DefaultCriteria(r.Region)
	if r.MaxCost != nil {
		c.MaxCost = *r.MaxCost
	}
	if r.MinProduction != nil {
		c.MinProduction = *r.MinProduction
	}
	if r.ProximityToGrid != nil {
		c.ProximityToGrid = *r.ProximityToGrid
	}
	if len(r.AdditionalCriteria) > 0 {
		c.Extra = r.AdditionalCriteria
	}
	return c
}

// handleOptimize serves the wrapped form of the optimization response.
func (s *Server) handleOptimize(c *gin.Context) {
	fc, ok := s.runOptimization(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Optimization completed successfully",
		"data":    fc,
	})
}

// handleAPIOptimize serves the bare feature collection.
func (s *Server) handleAPIOptimize(c *gin.Context) {
	fc, ok := s.runOptimization(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, fc)
}

// runOptimization binds, validates, and runs a request. On failure it writes
// the error response and reports ok=false.
func (s *Server) runOptimization(c *gin.Context) (domain.FeatureCollection, bool) {
	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return domain.FeatureCollection{}, false
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return domain.FeatureCollection{}, false
	}

	fc, err := s.optimizer.Optimize(c.Request.Context(), req.criteria())
	if err != nil {
		s.logger.Error("optimization failed", "region", req.Region, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Optimization failed: %v", err)})
		return domain.FeatureCollection{}, false
	}
	return fc, true
}

func (s *Server) handleStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), statusProbeTimeout)
	defer cancel()

	c.JSON(http.StatusOK, s.optimizer.Status(ctx))
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "API is running"})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "GreenH2 API is operational"})
}

// handleReady always reports ready (the simulator covers a down database)
// but exposes which mode a request would be served in.
func (s *Server) handleReady(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), statusProbeTimeout)
	defer cancel()

	st := s.optimizer.Status(ctx)
	mode := "primary"
	if !st.DatabaseConnected {
		mode = "fallback"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":             "ready",
		"mode":               mode,
		"database_connected": st.DatabaseConnected,
	})
}
