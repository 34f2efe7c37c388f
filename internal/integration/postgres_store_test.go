//go:build integration

package integration_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/greenh2/site-optimizer/internal/adapter/postgres"
	"github.com/greenh2/site-optimizer/internal/domain"
	"github.com/greenh2/site-optimizer/internal/engine"
	"github.com/greenh2/site-optimizer/internal/observability"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startPostgres launches a disposable Postgres container and returns its
// connection string.
func startPostgres(ctx context.Context, t *testing.T) string {
	t.Helper()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("greenh2_test"),
		tcpostgres.WithUsername("greenh2"),
		tcpostgres.WithPassword("greenh2_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err, "start postgres container")

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "postgres connection string")
	return connStr
}

// newSeededStore applies the schema and sample data to a fresh container.
func newSeededStore(ctx context.Context, t *testing.T, connStr string) *postgres.Store {
	t.Helper()

	store, err := postgres.New(connStr, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.EnsureSchema(ctx))
	sites, facilities, err := store.SeedSampleData(ctx)
	require.NoError(t, err)
	require.Equal(t, 12, sites, "seeded site count")
	require.Equal(t, 6, facilities, "seeded facility count")
	return store
}

// TestStoreSchemaAndSeed verifies that schema creation and seeding are both
// idempotent: a second pass must neither fail nor duplicate rows.
func TestStoreSchemaAndSeed(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	connStr := startPostgres(ctx, t)
	store := newSeededStore(ctx, t, connStr)

	require.NoError(t, store.EnsureSchema(ctx), "second schema pass")

	sites, facilities, err := store.SeedSampleData(ctx)
	require.NoError(t, err)
	assert.Zero(t, sites, "re-seed should skip existing data")
	assert.Zero(t, facilities, "re-seed should skip existing data")

	all, err := store.FetchSites(ctx, "india")
	require.NoError(t, err)
	assert.Len(t, all, 12)

	require.NoError(t, store.Ping(ctx))
}

// TestStoreFetchByRegion exercises the state filter, the aggregate "india"
// region, and the underscore-to-space mapping for two-word states.
func TestStoreFetchByRegion(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store := newSeededStore(ctx, t, startPostgres(ctx, t))

	gujarat, err := store.FetchSites(ctx, "gujarat")
	require.NoError(t, err)
	require.Len(t, gujarat, 2)
	// Ordered by solar irradiance, best first.
	assert.Equal(t, "Bhuj Solar Park", gujarat[0].Name)
	assert.Equal(t, 6.2, gujarat[0].SolarIrradiance)
	assert.Equal(t, "Kutch Wind Farm", gujarat[1].Name)

	india, err := store.FetchSites(ctx, "india")
	require.NoError(t, err)
	require.Len(t, india, 12)
	assert.Equal(t, "Jaisalmer Solar", india[0].Name, "best solar resource nationwide")

	// "tamil_nadu" must match rows stored with state "Tamil Nadu".
	tamilNadu, err := store.FetchSites(ctx, "tamil_nadu")
	require.NoError(t, err)
	require.Len(t, tamilNadu, 2)
	for _, site := range tamilNadu {
		assert.Equal(t, "Tamil Nadu", site.State)
	}

	// A state with no rows is an empty result, not an error.
	empty, err := store.FetchSites(ctx, "kerala")
	require.NoError(t, err)
	assert.Empty(t, empty)

	facilities, err := store.FetchFacilities(ctx, "gujarat")
	require.NoError(t, err)
	require.Len(t, facilities, 2)
	names := []string{facilities[0].Name, facilities[1].Name}
	assert.Contains(t, names, "Jamnagar Port")
	assert.Contains(t, names, "Ahmedabad Industrial Zone")
	for _, f := range facilities {
		assert.Contains(t, []domain.FacilityType{domain.FacilityPort, domain.FacilityIndustrialPark}, f.Type)
	}

	allFacilities, err := store.FetchFacilities(ctx, "india")
	require.NoError(t, err)
	assert.Len(t, allFacilities, 6)
}

// TestStoreSaveResults writes a ranked run and reads the rows back through a
// raw connection to verify the persisted shape.
func TestStoreSaveResults(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	connStr := startPostgres(ctx, t)
	store := newSeededStore(ctx, t, connStr)

	criteria := domain.DefaultCriteria("gujarat")
	ranked := []domain.Site{
		{
			Name: "Bhuj Solar Park", State: "Gujarat", Lat: 23.241, Lon: 69.669,
			SolarScore: 0.6, WindScore: 0.4,
			AnnualProductionKg: 16_790_000,
			LCOH:               2.31, ProductionCost: 1.74, TransportCost: 0.58,
		},
		{
			Name: "Kutch Wind Farm", State: "Gujarat", Lat: 23.733, Lon: 68.867,
			SolarScore: 0.45, WindScore: 0.55,
			AnnualProductionKg: 15_200_000,
			LCOH:               2.58, ProductionCost: 1.94, TransportCost: 0.65,
		},
	}
	const runID = "11111111-2222-3333-4444-555555555555"
	require.NoError(t, store.SaveResults(ctx, runID, criteria, ranked))

	// Saving an empty run is a no-op, not an error.
	require.NoError(t, store.SaveResults(ctx, "empty-run", criteria, nil))

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var count int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM optimization_results WHERE run_id = $1`, runID).Scan(&count))
	assert.Equal(t, 2, count)

	var (
		siteName string
		lcoh     float64
		capacity float64
		mixJSON  []byte
		critJSON []byte
	)
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT site_name, lcoh_usd_kg, total_capacity_tonnes_year, renewable_mix, criteria_used
		 FROM optimization_results WHERE run_id = $1 AND rank = 1`, runID).
		Scan(&siteName, &lcoh, &capacity, &mixJSON, &critJSON))

	assert.Equal(t, "Bhuj Solar Park", siteName)
	assert.Equal(t, 2.31, lcoh)
	assert.InDelta(t, 16790.0, capacity, 0.001, "capacity stored in tonnes")

	var mix map[string]float64
	require.NoError(t, json.Unmarshal(mixJSON, &mix))
	assert.InDelta(t, 0.6, mix["solar"], 1e-9)
	assert.InDelta(t, 0.4, mix["wind"], 1e-9)

	var crit map[string]any
	require.NoError(t, json.Unmarshal(critJSON, &crit))
	assert.Equal(t, "gujarat", crit["region"])
	assert.Equal(t, 6.0, crit["max_cost"])
	assert.Equal(t, true, crit["proximity_to_grid"])
}

// TestOptimizeEndToEnd runs the full engine against a real database: fetch,
// score, rank, and persist in one pass.
func TestOptimizeEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	connStr := startPostgres(ctx, t)
	store := newSeededStore(ctx, t, connStr)

	eng := engine.New(store, engine.NewSimulator(42), domain.DefaultParameters(),
		discardLogger(), observability.NewMetricsForTesting())

	fc, err := eng.Optimize(ctx, domain.DefaultCriteria("gujarat"))
	require.NoError(t, err)

	assert.Equal(t, domain.AlgorithmPrimary, fc.Metadata.Algorithm)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, "Bhuj Solar Park", fc.Features[0].Properties.SiteName)
	assert.Equal(t, 1, fc.Features[0].Properties.Rank)
	assert.Equal(t, "Kutch Wind Farm", fc.Features[1].Properties.SiteName)
	assert.Less(t, fc.Features[0].Properties.LCOH, fc.Features[1].Properties.LCOH)
	require.NotEmpty(t, fc.Metadata.RunID)

	// The run must be on disk under the returned id.
	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var count int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM optimization_results WHERE run_id = $1`, fc.Metadata.RunID).Scan(&count))
	assert.Equal(t, 2, count)

	status := eng.Status(ctx)
	assert.True(t, status.DatabaseConnected)
	assert.Equal(t, "operational", status.Status)
}
