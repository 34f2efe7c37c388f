package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/greenh2/site-optimizer/internal/adapter/postgres"
	"github.com/greenh2/site-optimizer/internal/config"
	"github.com/greenh2/site-optimizer/internal/domain"
	"github.com/greenh2/site-optimizer/internal/engine"
	"github.com/greenh2/site-optimizer/internal/observability"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "greenh2",
		Short: "Green hydrogen site optimization for Indian states",
		Long: `greenh2 ranks candidate green hydrogen production sites by their
levelized cost of hydrogen (LCOH), computed from renewable resource quality,
infrastructure proximity, and land suitability.

The serve command runs the HTTP API. The remaining commands are one-shot
operational tools that read the same configuration environment; they log to
stderr so their stdout can be piped.`,
		Version:      domain.EngineVersion,
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newOptimizeCommand())
	cmd.AddCommand(newStatusCommand())
	cmd.AddCommand(newSeedCommand())
	cmd.AddCommand(newImportCommand())
	cmd.AddCommand(newGendataCommand())
	cmd.AddCommand(newValidateCommand())

	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}

// app bundles the components every command builds from the environment.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *postgres.Store
}

// newApp loads config and prepares the store. logWriter receives log output;
// one-shot commands pass stderr so piped stdout stays clean.
func newApp(logWriter io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(logWriter, cfg)

	store, err := postgres.New(cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, store: store}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error("store close error", "error", err)
	}
}

// newEngine assembles the optimization engine over the app's store.
func (a *app) newEngine(metrics *observability.Metrics) (*engine.Engine, error) {
	params, err := config.LoadCostParameters(a.cfg.CostParamsFile)
	if err != nil {
		return nil, err
	}
	return engine.New(a.store, engine.NewSimulator(a.cfg.FallbackSeed), params, a.logger, metrics), nil
}
