package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSite() Site {
	return Site{
		Name:            "Bhuj Solar Park",
		State:           "gujarat",
		Lat:             23.241,
		Lon:             69.669,
		SolarIrradiance: 6.2,
		WindSpeed:       7.8,
		LandSuitability: 0.85,
		GridDistanceKm:  15.2,
	}
}

func TestValidateSites(t *testing.T) {
	t.Run("accepts a clean set", func(t *testing.T) {
		assert.NoError(t, ValidateSites([]Site{validSite(), validSite()}))
	})

	t.Run("accepts an empty set", func(t *testing.T) {
		assert.NoError(t, ValidateSites(nil))
	})

	t.Run("rejects bad records", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*Site)
		}{
			{"missing name", func(s *Site) { s.Name = "" }},
			{"latitude below range", func(s *Site) { s.Lat = -90.5 }},
			{"latitude above range", func(s *Site) { s.Lat = 91 }},
			{"latitude NaN", func(s *Site) { s.Lat = math.NaN() }},
			{"longitude out of range", func(s *Site) { s.Lon = 181 }},
			{"longitude infinite", func(s *Site) { s.Lon = math.Inf(1) }},
			{"negative irradiance", func(s *Site) { s.SolarIrradiance = -0.1 }},
			{"irradiance NaN", func(s *Site) { s.SolarIrradiance = math.NaN() }},
			{"negative wind speed", func(s *Site) { s.WindSpeed = -1 }},
			{"wind speed infinite", func(s *Site) { s.WindSpeed = math.Inf(1) }},
			{"land suitability below zero", func(s *Site) { s.LandSuitability = -0.01 }},
			{"land suitability above one", func(s *Site) { s.LandSuitability = 1.01 }},
			{"land suitability NaN", func(s *Site) { s.LandSuitability = math.NaN() }},
			{"zero solar and wind", func(s *Site) {
				s.SolarIrradiance = 0
				s.WindSpeed = 0
			}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				site := validSite()
				tt.mutate(&site)

				err := ValidateSites([]Site{site})

				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidRecord)
			})
		}
	})

	t.Run("one bad record rejects the whole set", func(t *testing.T) {
		bad := validSite()
		bad.WindSpeed = -3

		err := ValidateSites([]Site{validSite(), bad, validSite()})

		assert.ErrorIs(t, err, ErrInvalidRecord)
	})

	t.Run("boundary coordinates are allowed", func(t *testing.T) {
		site := validSite()
		site.Lat = 90
		site.Lon = -180
		site.LandSuitability = 0

		assert.NoError(t, ValidateSites([]Site{site}))
	})

	t.Run("solar-only and wind-only sites are valid", func(t *testing.T) {
		solarOnly := validSite()
		solarOnly.WindSpeed = 0
		windOnly := validSite()
		windOnly.SolarIrradiance = 0

		assert.NoError(t, ValidateSites([]Site{solarOnly, windOnly}))
	})
}
