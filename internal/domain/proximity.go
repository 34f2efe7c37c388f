package domain

import "math"

// AnalyzeProximity finds the nearest infrastructure facility to the site and
// records the haversine distance to it. An empty facility list is a valid
// outcome: the distance is +Inf and NearestFacility stays nil, which the cost
// model treats as the maximum distance penalty.
func AnalyzeProximity(site Site, facilities []Facility) Site {
	minDistance := math.Inf(1)
	var nearest *Facility

	for _, facility := range facilities {
		distance := Haversine(site.Lat, site.Lon, facility.Lat, facility.Lon)
		if distance < minDistance {
			minDistance = distance
			f := facility
			nearest = &f
		}
	}

	site.NearestFacility = nearest
	site.NearestDistanceKm = minDistance
	return site
}
