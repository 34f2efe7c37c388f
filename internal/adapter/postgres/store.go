// Package postgres implements the site data source over a PostgreSQL
// database: candidate site and facility lookups, run result persistence, and
// schema management for the supporting tables.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/greenh2/site-optimizer/internal/domain"
)

// Connection pool sizing. The service runs a handful of concurrent
// optimizations at most; idle connections are cheap to keep around.
const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
)

// Store is the Postgres-backed SiteSource.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// New prepares a Store over the given connection string. The connection is
// lazy: the service must start (and serve simulated results) even when the
// database is down, so reachability is probed per request via Ping, never
// here.
func New(databaseURL string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	return &Store{db: db, logger: logger}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping verifies database reachability.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

const sitesQuery = `
	SELECT location_name, state, latitude, longitude,
	       solar_irradiance_kwh_m2_day, wind_speed_ms,
	       land_suitability_score, grid_distance_km
	FROM renewable_potential
	WHERE lower(state) = $1 OR $1 = 'india'
	ORDER BY solar_irradiance_kwh_m2_day DESC`

// FetchSites returns the candidate sites for a region, best solar resource
// first. The aggregate "india" region returns every row.
func (s *Store) FetchSites(ctx context.Context, region string) ([]domain.Site, error) {
	rows, err := s.db.QueryContext(ctx, sitesQuery, stateFilter(region))
	if err != nil {
		return nil, fmt.Errorf("query renewable potential: %w", err)
	}
	defer rows.Close()

	var sites []domain.Site
	for rows.Next() {
		var site domain.Site
		if err := rows.Scan(
			&site.Name, &site.State, &site.Lat, &site.Lon,
			&site.SolarIrradiance, &site.WindSpeed,
			&site.LandSuitability, &site.GridDistanceKm,
		); err != nil {
			return nil, fmt.Errorf("scan renewable potential row: %w", err)
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate renewable potential rows: %w", err)
	}
	return sites, nil
}

const facilitiesQuery = `
	SELECT facility_type, facility_name, state, latitude, longitude,
	       capacity_mw, status
	FROM infrastructure
	WHERE lower(state) = $1 OR $1 = 'india'`

// FetchFacilities returns the infrastructure reference points for a region.
func (s *Store) FetchFacilities(ctx context.Context, region string) ([]domain.Facility, error) {
	rows, err := s.db.QueryContext(ctx, facilitiesQuery, stateFilter(region))
	if err != nil {
		return nil, fmt.Errorf("query infrastructure: %w", err)
	}
	defer rows.Close()

	var facilities []domain.Facility
	for rows.Next() {
		var (
			facility     domain.Facility
			facilityType string
		)
		if err := rows.Scan(
			&facilityType, &facility.Name, &facility.State,
			&facility.Lat, &facility.Lon, &facility.CapacityMW, &facility.Status,
		); err != nil {
			return nil, fmt.Errorf("scan infrastructure row: %w", err)
		}
		facility.Type = domain.FacilityType(facilityType)
		facilities = append(facilities, facility)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate infrastructure rows: %w", err)
	}
	return facilities, nil
}

const insertResultQuery = `
	INSERT INTO optimization_results (
		run_id, site_name, state, latitude, longitude,
		lcoh_usd_kg, production_cost_usd_kg, transport_cost_usd_kg,
		total_capacity_tonnes_year, renewable_mix, criteria_used, rank
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

// SaveResults records one run's ranked sites. All rows share the run id and
// the criteria snapshot; everything lands in one transaction so a run is
// either fully recorded or absent.
func (s *Store) SaveResults(ctx context.Context, runID string, criteria domain.Criteria, ranked []domain.Site) error {
	if len(ranked) == 0 {
		return nil
	}

	criteriaJSON, err := json.Marshal(domain.EchoCriteria(criteria))
	if err != nil {
		return fmt.Errorf("marshal criteria: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin results transaction: %w", err)
	}
	defer tx.Rollback()

	for i, site := range ranked {
		solar := domain.SolarFraction(site)
		mixJSON, err := json.Marshal(map[string]float64{"solar": solar, "wind": 1 - solar})
		if err != nil {
			return fmt.Errorf("marshal renewable mix: %w", err)
		}

		if _, err := tx.ExecContext(ctx, insertResultQuery,
			runID, site.Name, site.State, site.Lat, site.Lon,
			site.LCOH, site.ProductionCost, site.TransportCost,
			site.AnnualProductionKg/1000, mixJSON, criteriaJSON, i+1,
		); err != nil {
			return fmt.Errorf("insert result row for %q: %w", site.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit results: %w", err)
	}
	return nil
}

const insertSiteQuery = `
	INSERT INTO renewable_potential (
		location_name, state, latitude, longitude,
		solar_irradiance_kwh_m2_day, wind_speed_ms,
		land_suitability_score, grid_distance_km
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// InsertSites bulk-loads candidate site records, returning how many were
// written. Used by the seed and import commands.
func (s *Store) InsertSites(ctx context.Context, sites []domain.Site) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin site insert transaction: %w", err)
	}
	defer tx.Rollback()

	for _, site := range sites {
		if _, err := tx.ExecContext(ctx, insertSiteQuery,
			site.Name, site.State, site.Lat, site.Lon,
			site.SolarIrradiance, site.WindSpeed,
			site.LandSuitability, site.GridDistanceKm,
		); err != nil {
			return 0, fmt.Errorf("insert site %q: %w", site.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit site inserts: %w", err)
	}
	return len(sites), nil
}

const insertFacilityQuery = `
	INSERT INTO infrastructure (
		facility_type, facility_name, state, latitude, longitude,
		capacity_mw, status
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

// InsertFacilities bulk-loads infrastructure records, returning how many
// were written.
func (s *Store) InsertFacilities(ctx context.Context, facilities []domain.Facility) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin facility insert transaction: %w", err)
	}
	defer tx.Rollback()

	for _, facility := range facilities {
		if _, err := tx.ExecContext(ctx, insertFacilityQuery,
			string(facility.Type), facility.Name, facility.State,
			facility.Lat, facility.Lon, facility.CapacityMW, facility.Status,
		); err != nil {
			return 0, fmt.Errorf("insert facility %q: %w", facility.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit facility inserts: %w", err)
	}
	return len(facilities), nil
}

const insertSegmentQuery = `
	INSERT INTO transportation_network (
		network_type, segment_name, state,
		start_latitude, start_longitude, end_latitude, end_longitude,
		capacity_tonnes_year, status
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// InsertSegments bulk-loads transport network records, returning how many
// were written.
func (s *Store) InsertSegments(ctx context.Context, segments []domain.Segment) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin segment insert transaction: %w", err)
	}
	defer tx.Rollback()

	for _, segment := range segments {
		if _, err := tx.ExecContext(ctx, insertSegmentQuery,
			segment.NetworkType, segment.Name, segment.State,
			segment.StartLat, segment.StartLon, segment.EndLat, segment.EndLon,
			segment.CapacityTonnesYear, segment.Status,
		); err != nil {
			return 0, fmt.Errorf("insert segment %q: %w", segment.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit segment inserts: %w", err)
	}
	return len(segments), nil
}

// stateFilter converts a region key to the lowercase state name stored in
// the database ("tamil_nadu" matches rows with state "Tamil Nadu").
func stateFilter(region string) string {
	return strings.ReplaceAll(domain.RegionKey(region), "_", " ")
}
