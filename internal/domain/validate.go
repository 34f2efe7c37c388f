package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRecord marks a site record that fails pre-scoring validation.
var ErrInvalidRecord = errors.New("invalid site record")

// ValidateSites checks every record fetched from the data source before the
// pipeline runs. A single bad record rejects the whole set: the caller falls
// back to simulated data rather than optimizing over partially garbage input.
func ValidateSites(sites []Site) error {
	for _, site := range sites {
		if err := validateSite(site); err != nil {
			return err
		}
	}
	return nil
}

func validateSite(site Site) error {
	switch {
	case site.Name == "":
		return fmt.Errorf("%w: missing site name", ErrInvalidRecord)
	case !isFinite(site.Lat) || site.Lat < -90 || site.Lat > 90:
		return fmt.Errorf("%w: site %q latitude %v out of range", ErrInvalidRecord, site.Name, site.Lat)
	case !isFinite(site.Lon) || site.Lon < -180 || site.Lon > 180:
		return fmt.Errorf("%w: site %q longitude %v out of range", ErrInvalidRecord, site.Name, site.Lon)
	case !isFinite(site.SolarIrradiance) || site.SolarIrradiance < 0:
		return fmt.Errorf("%w: site %q solar irradiance %v", ErrInvalidRecord, site.Name, site.SolarIrradiance)
	case !isFinite(site.WindSpeed) || site.WindSpeed < 0:
		return fmt.Errorf("%w: site %q wind speed %v", ErrInvalidRecord, site.Name, site.WindSpeed)
	case !isFinite(site.LandSuitability) || site.LandSuitability < 0 || site.LandSuitability > 1:
		return fmt.Errorf("%w: site %q land suitability %v outside [0,1]", ErrInvalidRecord, site.Name, site.LandSuitability)
	case site.SolarIrradiance == 0 && site.WindSpeed == 0:
		// A site with no renewable resource at all cannot be sized; the
		// cost model's 50/50 split guard exists only as a backstop.
		return fmt.Errorf("%w: site %q has zero solar and wind input", ErrInvalidRecord, site.Name)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
