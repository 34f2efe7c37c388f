package postgres

import (
	"context"
	"fmt"

	"github.com/greenh2/site-optimizer/internal/domain"
)

// The geospatial math lives in the application (haversine over plain
// coordinates), so the schema stores latitude/longitude as columns rather
// than PostGIS geometries and indexes the state filter instead.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS renewable_potential (
		id SERIAL PRIMARY KEY,
		location_name VARCHAR(255) NOT NULL,
		state VARCHAR(100) NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		solar_irradiance_kwh_m2_day DOUBLE PRECISION NOT NULL,
		wind_speed_ms DOUBLE PRECISION NOT NULL,
		land_suitability_score DOUBLE PRECISION NOT NULL,
		grid_distance_km DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS infrastructure (
		id SERIAL PRIMARY KEY,
		facility_type VARCHAR(100) NOT NULL,
		facility_name VARCHAR(255) NOT NULL,
		state VARCHAR(100) NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		capacity_mw DOUBLE PRECISION,
		status VARCHAR(50),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS transportation_network (
		id SERIAL PRIMARY KEY,
		network_type VARCHAR(100) NOT NULL,
		segment_name VARCHAR(255),
		state VARCHAR(100),
		start_latitude DOUBLE PRECISION NOT NULL,
		start_longitude DOUBLE PRECISION NOT NULL,
		end_latitude DOUBLE PRECISION NOT NULL,
		end_longitude DOUBLE PRECISION NOT NULL,
		capacity_tonnes_year DOUBLE PRECISION,
		status VARCHAR(50),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS optimization_results (
		id SERIAL PRIMARY KEY,
		run_id VARCHAR(100) NOT NULL,
		site_name VARCHAR(255) NOT NULL,
		state VARCHAR(100),
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		lcoh_usd_kg DOUBLE PRECISION NOT NULL,
		production_cost_usd_kg DOUBLE PRECISION,
		transport_cost_usd_kg DOUBLE PRECISION,
		total_capacity_tonnes_year DOUBLE PRECISION,
		renewable_mix JSONB,
		criteria_used JSONB,
		rank INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_renewable_potential_state ON renewable_potential (lower(state))`,
	`CREATE INDEX IF NOT EXISTS idx_infrastructure_state ON infrastructure (lower(state))`,
	`CREATE INDEX IF NOT EXISTS idx_optimization_results_run ON optimization_results (run_id)`,
}

// EnsureSchema creates the tables and indexes if they do not exist. Safe to
// run on every startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}

// sampleSites covers the six supported states with measured renewable
// figures for well-known locations.
var sampleSites = []domain.Site{
	{Name: "Bhuj Solar Park", State: "Gujarat", Lat: 23.241, Lon: 69.669, SolarIrradiance: 6.2, WindSpeed: 7.8, LandSuitability: 0.85, GridDistanceKm: 15.2},
	{Name: "Kutch Wind Farm", State: "Gujarat", Lat: 23.733, Lon: 68.867, SolarIrradiance: 5.8, WindSpeed: 8.5, LandSuitability: 0.90, GridDistanceKm: 8.5},
	{Name: "Jaisalmer Solar", State: "Rajasthan", Lat: 26.915, Lon: 70.908, SolarIrradiance: 6.8, WindSpeed: 6.2, LandSuitability: 0.95, GridDistanceKm: 25.0},
	{Name: "Bikaner Wind", State: "Rajasthan", Lat: 28.022, Lon: 73.311, SolarIrradiance: 5.5, WindSpeed: 7.1, LandSuitability: 0.88, GridDistanceKm: 18.3},
	{Name: "Dhule Solar", State: "Maharashtra", Lat: 20.902, Lon: 74.774, SolarIrradiance: 5.9, WindSpeed: 6.8, LandSuitability: 0.82, GridDistanceKm: 12.1},
	{Name: "Pune Wind", State: "Maharashtra", Lat: 18.520, Lon: 73.856, SolarIrradiance: 5.2, WindSpeed: 5.9, LandSuitability: 0.75, GridDistanceKm: 22.4},
	{Name: "Bengaluru Solar", State: "Karnataka", Lat: 12.971, Lon: 77.594, SolarIrradiance: 5.6, WindSpeed: 5.2, LandSuitability: 0.78, GridDistanceKm: 8.9},
	{Name: "Mangalore Wind", State: "Karnataka", Lat: 12.914, Lon: 74.856, SolarIrradiance: 5.1, WindSpeed: 6.1, LandSuitability: 0.85, GridDistanceKm: 5.2},
	{Name: "Chennai Solar", State: "Tamil Nadu", Lat: 13.082, Lon: 80.270, SolarIrradiance: 5.7, WindSpeed: 5.8, LandSuitability: 0.80, GridDistanceKm: 14.7},
	{Name: "Coimbatore Wind", State: "Tamil Nadu", Lat: 11.016, Lon: 76.955, SolarIrradiance: 5.3, WindSpeed: 6.5, LandSuitability: 0.83, GridDistanceKm: 9.3},
	{Name: "Visakhapatnam Solar", State: "Andhra Pradesh", Lat: 17.686, Lon: 83.218, SolarIrradiance: 5.8, WindSpeed: 6.2, LandSuitability: 0.87, GridDistanceKm: 11.8},
	{Name: "Tirupati Wind", State: "Andhra Pradesh", Lat: 13.628, Lon: 79.419, SolarIrradiance: 5.4, WindSpeed: 5.7, LandSuitability: 0.84, GridDistanceKm: 16.2},
}

var sampleFacilities = []domain.Facility{
	{Type: domain.FacilityPort, Name: "Jamnagar Port", State: "Gujarat", Lat: 22.470, Lon: 70.057, CapacityMW: 50000, Status: "existing"},
	{Type: domain.FacilityIndustrialPark, Name: "Ahmedabad Industrial Zone", State: "Gujarat", Lat: 23.022, Lon: 72.571, CapacityMW: 25000, Status: "existing"},
	{Type: domain.FacilityPort, Name: "Mumbai Port", State: "Maharashtra", Lat: 18.922, Lon: 72.834, CapacityMW: 75000, Status: "existing"},
	{Type: domain.FacilityIndustrialPark, Name: "Pune IT Park", State: "Maharashtra", Lat: 18.520, Lon: 73.856, CapacityMW: 30000, Status: "existing"},
	{Type: domain.FacilityPort, Name: "Chennai Port", State: "Tamil Nadu", Lat: 13.082, Lon: 80.270, CapacityMW: 65000, Status: "existing"},
	{Type: domain.FacilityIndustrialPark, Name: "Bengaluru Tech Park", State: "Karnataka", Lat: 12.971, Lon: 77.594, CapacityMW: 35000, Status: "existing"},
}

// SeedSampleData loads the bundled sample sites and facilities. Seeding is
// skipped when renewable_potential already has rows, so repeated runs do not
// duplicate data.
func (s *Store) SeedSampleData(ctx context.Context) (sitesInserted, facilitiesInserted int, err error) {
	var existing int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM renewable_potential`).Scan(&existing); err != nil {
		return 0, 0, fmt.Errorf("count existing sites: %w", err)
	}
	if existing > 0 {
		s.logger.Info("sample data already present, skipping seed", "existing_sites", existing)
		return 0, 0, nil
	}

	sitesInserted, err = s.InsertSites(ctx, sampleSites)
	if err != nil {
		return 0, 0, fmt.Errorf("seed sites: %w", err)
	}
	facilitiesInserted, err = s.InsertFacilities(ctx, sampleFacilities)
	if err != nil {
		return sitesInserted, 0, fmt.Errorf("seed facilities: %w", err)
	}

	s.logger.Info("sample data seeded",
		"sites", sitesInserted,
		"facilities", facilitiesInserted,
	)
	return sitesInserted, facilitiesInserted, nil
}
