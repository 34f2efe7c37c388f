// Package ingest parses the India geospatial data exports into domain
// records for bulk loading. Each reader expects the header layout produced
// by the upstream data downloader and reports the first malformed value with
// its row number.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/greenh2/site-optimizer/internal/domain"
)

// ReadSitesCSV parses the renewable potential layout: site_name, state,
// latitude, longitude, solar_irradiance, wind_speed, land_suitability,
// grid_distance_km.
func ReadSitesCSV(r io.Reader) ([]domain.Site, error) {
	rows, colIdx, err := readTable(r)
	if err != nil {
		return nil, err
	}

	sites := make([]domain.Site, 0, len(rows))
	for i, row := range rows {
		site := domain.Site{
			Name:  get(row, colIdx, "site_name"),
			State: get(row, colIdx, "state"),
		}
		rowNum := i + 2 // 1-based, after the header
		if site.Lat, err = getFloat(row, colIdx, rowNum, "latitude"); err != nil {
			return nil, err
		}
		if site.Lon, err = getFloat(row, colIdx, rowNum, "longitude"); err != nil {
			return nil, err
		}
		if site.SolarIrradiance, err = getFloat(row, colIdx, rowNum, "solar_irradiance"); err != nil {
			return nil, err
		}
		if site.WindSpeed, err = getFloat(row, colIdx, rowNum, "wind_speed"); err != nil {
			return nil, err
		}
		if site.LandSuitability, err = getFloat(row, colIdx, rowNum, "land_suitability"); err != nil {
			return nil, err
		}
		if site.GridDistanceKm, err = getFloat(row, colIdx, rowNum, "grid_distance_km"); err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, nil
}

// ReadFacilitiesCSV parses the infrastructure layout: facility_name,
// facility_type, state, latitude, longitude, capacity_mw, status.
func ReadFacilitiesCSV(r io.Reader) ([]domain.Facility, error) {
	rows, colIdx, err := readTable(r)
	if err != nil {
		return nil, err
	}

	facilities := make([]domain.Facility, 0, len(rows))
	for i, row := range rows {
		facility := domain.Facility{
			Type:   parseFacilityType(get(row, colIdx, "facility_type")),
			Name:   get(row, colIdx, "facility_name"),
			State:  get(row, colIdx, "state"),
			Status: get(row, colIdx, "status"),
		}
		rowNum := i + 2
		if facility.Lat, err = getFloat(row, colIdx, rowNum, "latitude"); err != nil {
			return nil, err
		}
		if facility.Lon, err = getFloat(row, colIdx, rowNum, "longitude"); err != nil {
			return nil, err
		}
		if facility.CapacityMW, err = getFloat(row, colIdx, rowNum, "capacity_mw"); err != nil {
			return nil, err
		}
		facilities = append(facilities, facility)
	}
	return facilities, nil
}

// segmentHalfSpan expands a transport reference point into a short
// line segment, the same stand-in geometry the upstream import used while
// real line data was pending.
const segmentHalfSpan = 0.01

// ReadSegmentsCSV parses the transportation layout: network_name,
// network_type, state, latitude, longitude, capacity_tonnes_year, status.
// Each point row becomes a short segment centered on the point.
func ReadSegmentsCSV(r io.Reader) ([]domain.Segment, error) {
	rows, colIdx, err := readTable(r)
	if err != nil {
		return nil, err
	}

	segments := make([]domain.Segment, 0, len(rows))
	for i, row := range rows {
		segment := domain.Segment{
			NetworkType: get(row, colIdx, "network_type"),
			Name:        get(row, colIdx, "network_name"),
			State:       get(row, colIdx, "state"),
			Status:      get(row, colIdx, "status"),
		}
		rowNum := i + 2
		lat, err := getFloat(row, colIdx, rowNum, "latitude")
		if err != nil {
			return nil, err
		}
		lon, err := getFloat(row, colIdx, rowNum, "longitude")
		if err != nil {
			return nil, err
		}
		if segment.CapacityTonnesYear, err = getFloat(row, colIdx, rowNum, "capacity_tonnes_year"); err != nil {
			return nil, err
		}
		segment.StartLat = lat - segmentHalfSpan
		segment.StartLon = lon - segmentHalfSpan
		segment.EndLat = lat + segmentHalfSpan
		segment.EndLon = lon + segmentHalfSpan
		segments = append(segments, segment)
	}
	return segments, nil
}

// readTable reads the whole CSV, returning the data rows and a header
// column-index map. Ragged rows surface as csv parse errors with their line
// number.
func readTable(r io.Reader) ([][]string, map[string]int, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, errors.New("no data rows")
	}

	header := rows[0]
	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.TrimSpace(h)] = i
	}
	return rows[1:], colIdx, nil
}

func get(row []string, colIdx map[string]int, col string) string {
	i, ok := colIdx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func getFloat(row []string, colIdx map[string]int, rowNum int, col string) (float64, error) {
	raw := get(row, colIdx, col)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: column %q: %w", rowNum, col, err)
	}
	return v, nil
}

// parseFacilityType normalizes the CSV facility type to a known kind.
// Unrecognized kinds are kept as "other" rather than rejected.
func parseFacilityType(s string) domain.FacilityType {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	switch domain.FacilityType(key) {
	case domain.FacilityPort, domain.FacilityIndustrialPark, domain.FacilitySubstation:
		return domain.FacilityType(key)
	default:
		return domain.FacilityOther
	}
}
