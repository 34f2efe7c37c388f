// Package engine orchestrates optimization runs: it drives the primary
// data-backed pipeline and falls back to the simulation engine when the
// primary cannot serve.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/greenh2/site-optimizer/internal/domain"
	"github.com/greenh2/site-optimizer/internal/observability"
)

// SiteSource supplies real site and facility records and persists run
// results. The Postgres store implements it in production; tests swap in
// fakes.
type SiteSource interface {
	FetchSites(ctx context.Context, region string) ([]domain.Site, error)
	FetchFacilities(ctx context.Context, region string) ([]domain.Facility, error)
	SaveResults(ctx context.Context, runID string, criteria domain.Criteria, ranked []domain.Site) error
	Ping(ctx context.Context) error
}

// ErrSourceUnavailable marks data source failures. It is one of the two
// conditions that route a run to the simulation fallback; the other is
// domain.ErrInvalidRecord.
var ErrSourceUnavailable = errors.New("site data source unavailable")

// Engine runs optimizations. One Engine serves many concurrent requests; it
// holds no per-run state.
type Engine struct {
	source    SiteSource
	simulator *Simulator
	params    domain.Parameters
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates an Engine over the given data source and fallback simulator.
func New(source SiteSource, simulator *Simulator, params domain.Parameters, logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{
		source:    source,
		simulator: simulator,
		params:    params,
		logger:    logger,
		metrics:   metrics,
	}
}

// Optimize runs one optimization for the given criteria and always produces
// a feature collection: the primary pipeline when the data source cooperates,
// simulated results otherwise. Recovery is one level deep; the simulator has
// no further fallback and cannot fail. The only error returned is a cancelled
// or expired context.
//
// Regions outside the supported registry never reach the data source; they go
// straight to the simulator's synthetic branch.
func (e *Engine) Optimize(ctx context.Context, criteria domain.Criteria) (domain.FeatureCollection, error) {
	region := domain.RegionKey(criteria.Region)

	if !domain.IsKnownRegion(region) {
		e.logger.Info("region not in registry, serving simulated results", "region", criteria.Region)
		e.metrics.FallbacksTotal.WithLabelValues("unknown_region").Inc()
		return e.finish("fallback", e.simulator.Run(criteria)), nil
	}

	fc, err := e.runPrimary(ctx, region, criteria)
	if err == nil {
		return e.finish("primary", fc), nil
	}
	if ctx.Err() != nil {
		return domain.FeatureCollection{}, ctx.Err()
	}

	reason := "fetch_error"
	if errors.Is(err, domain.ErrInvalidRecord) {
		reason = "invalid_data"
	}
	e.logger.Warn("primary optimization failed, serving simulated results",
		"region", region, "reason", reason, "error", err)
	e.metrics.FallbacksTotal.WithLabelValues(reason).Inc()

	return e.finish("fallback", e.simulator.Run(criteria)), nil
}

// runPrimary executes the data-backed pipeline: fetch, validate, score,
// proximity, cost, rank, format, persist. A returned error means the run
// should be served by the simulator instead.
func (e *Engine) runPrimary(ctx context.Context, region string, criteria domain.Criteria) (domain.FeatureCollection, error) {
	start := time.Now()

	sites, err := e.source.FetchSites(ctx, region)
	if err != nil {
		e.metrics.DataSourceUp.Set(0)
		return domain.FeatureCollection{}, fmt.Errorf("%w: fetch sites for %q: %v", ErrSourceUnavailable, region, err)
	}
	if err := domain.ValidateSites(sites); err != nil {
		return domain.FeatureCollection{}, fmt.Errorf("validate site records for %q: %w", region, err)
	}

	facilities, err := e.source.FetchFacilities(ctx, region)
	if err != nil {
		e.metrics.DataSourceUp.Set(0)
		return domain.FeatureCollection{}, fmt.Errorf("%w: fetch facilities for %q: %v", ErrSourceUnavailable, region, err)
	}
	e.metrics.DataSourceUp.Set(1)

	for i := range sites {
		sites[i] = domain.ScoreRenewables(sites[i])
		sites[i] = domain.AnalyzeProximity(sites[i], facilities)
		sites[i] = domain.ApplyCostModel(sites[i], e.params, criteria.MaxCost)
	}

	ranked := domain.FilterAndRank(sites, criteria)

	runID := uuid.NewString()
	if err := e.source.SaveResults(ctx, runID, criteria, ranked); err != nil {
		// Persistence is best-effort; the run already succeeded.
		e.logger.Warn("persist run results failed", "run_id", runID, "error", err)
		e.metrics.PersistErrors.Inc()
	}

	fc := domain.BuildFeatureCollection(ranked, criteria, e.params, time.Since(start))
	fc.Metadata.RunID = runID

	e.logger.Info("optimization complete",
		"region", region,
		"candidates", len(sites),
		"recommended", len(ranked),
		"run_id", runID,
	)
	return fc, nil
}

// finish records end-of-run metrics regardless of which engine served it.
func (e *Engine) finish(origin string, fc domain.FeatureCollection) domain.FeatureCollection {
	e.metrics.RunsTotal.WithLabelValues(origin).Inc()
	e.metrics.RunDuration.Observe(fc.Metadata.ProcessingTimeSeconds)
	e.metrics.SitesReturned.Observe(float64(fc.Metadata.TotalSitesFound))
	return fc
}

// Status reports the engine's identity, capabilities, and data source health.
type Status struct {
	Status            string   `json:"status"`
	Engine            string   `json:"engine"`
	Version           string   `json:"version"`
	DatabaseConnected bool     `json:"database_connected"`
	Capabilities      []string `json:"capabilities"`
	SupportedRegions  []string `json:"supported_regions"`
}

// Status probes the data source and assembles the capability report. The
// service is "operational" even when the database is down (the simulator
// covers that), so only DatabaseConnected varies.
func (e *Engine) Status(ctx context.Context) Status {
	connected := true
	if err := e.source.Ping(ctx); err != nil {
		connected = false
		e.logger.Warn("data source ping failed", "error", err)
		e.metrics.DataSourceUp.Set(0)
	} else {
		e.metrics.DataSourceUp.Set(1)
	}

	return Status{
		Status:            "operational",
		Engine:            domain.AlgorithmPrimary,
		Version:           domain.EngineVersion,
		DatabaseConnected: connected,
		Capabilities: []string{
			"Real geospatial data analysis",
			"LCOH calculation with actual costs",
			"Infrastructure proximity analysis",
			"Multi-criteria optimization",
			"Site suitability assessment",
			"Cost-benefit analysis",
			"Risk assessment modeling",
		},
		SupportedRegions: domain.RegionDisplayNames(),
	}
}
