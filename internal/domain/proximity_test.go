package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeProximity(t *testing.T) {
	site := Site{Name: "Bhuj Solar Park", Lat: 23.241, Lon: 69.669}

	t.Run("picks the nearest of several facilities", func(t *testing.T) {
		facilities := []Facility{
			{Type: FacilityPort, Name: "Mumbai Port", Lat: 18.922, Lon: 72.834},
			{Type: FacilityPort, Name: "Jamnagar Port", Lat: 22.470, Lon: 70.057},
			{Type: FacilityIndustrialPark, Name: "Ahmedabad Industrial Zone", Lat: 23.022, Lon: 72.571},
		}

		result := AnalyzeProximity(site, facilities)

		require.NotNil(t, result.NearestFacility)
		assert.Equal(t, "Jamnagar Port", result.NearestFacility.Name)
		assert.InDelta(t, Haversine(site.Lat, site.Lon, 22.470, 70.057), result.NearestDistanceKm, 1e-9)
	})

	t.Run("single facility", func(t *testing.T) {
		facilities := []Facility{
			{Type: FacilitySubstation, Name: "Kutch Substation", Lat: 23.733, Lon: 68.867},
		}

		result := AnalyzeProximity(site, facilities)

		require.NotNil(t, result.NearestFacility)
		assert.Equal(t, "Kutch Substation", result.NearestFacility.Name)
		assert.Greater(t, result.NearestDistanceKm, 0.0)
	})

	t.Run("empty facility list is a valid outcome", func(t *testing.T) {
		result := AnalyzeProximity(site, nil)

		assert.Nil(t, result.NearestFacility)
		assert.True(t, math.IsInf(result.NearestDistanceKm, 1))
	})

	t.Run("facility at the site itself", func(t *testing.T) {
		facilities := []Facility{
			{Type: FacilityPort, Name: "On Site", Lat: site.Lat, Lon: site.Lon},
		}

		result := AnalyzeProximity(site, facilities)

		assert.Equal(t, 0.0, result.NearestDistanceKm)
	})

	t.Run("does not mutate the facility list", func(t *testing.T) {
		facilities := []Facility{
			{Type: FacilityPort, Name: "Jamnagar Port", Lat: 22.470, Lon: 70.057},
		}
		original := facilities[0]

		result := AnalyzeProximity(site, facilities)
		result.NearestFacility.Name = "changed"

		assert.Equal(t, original, facilities[0])
	})
}
