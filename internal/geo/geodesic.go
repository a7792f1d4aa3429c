// Package geo provides the geodesic math used by the pairing and
// line-of-sight components: WGS84 inverse distance and elevation-grid
// coordinate snapping.
package geo

import (
	"fmt"
	"math"
)

// WGS84 ellipsoid parameters.
const (
	semiMajorAxisM = 6378137.0
	flattening     = 1.0 / 298.257223563
	semiMinorAxisM = semiMajorAxisM * (1 - flattening)
)

const (
	convergenceEps = 1e-12
	maxIterations  = 200
)

// DistanceKM returns the geodesic distance in kilometers between two
// points on the WGS84 ellipsoid, computed with Vincenty's inverse formula.
//
// For coincident points the result is exactly 0. Near-antipodal point
// pairs, where Vincenty's iteration fails to converge, fall back to the
// spherical great-circle distance; for the sub-1000 km separations this
// application works with the iteration always converges.
func DistanceKM(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}

	phi1 := radians(lat1)
	phi2 := radians(lat2)
	L := radians(lon2 - lon1)

	u1 := math.Atan((1 - flattening) * math.Tan(phi1))
	u2 := math.Atan((1 - flattening) * math.Tan(phi2))
	sinU1, cosU1 := math.Sincos(u1)
	sinU2, cosU2 := math.Sincos(u2)

	lambda := L
	var sinSigma, cosSigma, sigma, sinAlpha, cosSqAlpha, cos2SigmaM float64

	converged := false
	for i := 0; i < maxIterations; i++ {
		sinLambda, cosLambda := math.Sincos(lambda)

		sinSigma = math.Sqrt(
			(cosU2*sinLambda)*(cosU2*sinLambda) +
				(cosU1*sinU2-sinU1*cosU2*cosLambda)*(cosU1*sinU2-sinU1*cosU2*cosLambda))
		if sinSigma == 0 {
			return 0 // coincident points
		}

		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)

		sinAlpha = cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha

		if cosSqAlpha == 0 {
			cos2SigmaM = 0 // equatorial line
		} else {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		}

		c := flattening / 16 * cosSqAlpha * (4 + flattening*(4-3*cosSqAlpha))
		lambdaPrev := lambda
		lambda = L + (1-c)*flattening*sinAlpha*
			(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))

		if math.Abs(lambda-lambdaPrev) < convergenceEps {
			converged = true
			break
		}
	}

	if !converged {
		return greatCircleKM(lat1, lon1, lat2, lon2)
	}

	uSq := cosSqAlpha * (semiMajorAxisM*semiMajorAxisM - semiMinorAxisM*semiMinorAxisM) / (semiMinorAxisM * semiMinorAxisM)
	a := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	b := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))

	deltaSigma := b * sinSigma * (cos2SigmaM + b/4*
		(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
			b/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	distanceM := semiMinorAxisM * a * (sigma - deltaSigma)

	return distanceM / 1000
}

// greatCircleKM is the spherical fallback used when Vincenty's iteration
// does not converge (near-antipodal points).
func greatCircleKM(lat1, lon1, lat2, lon2 float64) float64 {
	const meanRadiusKM = 6371.0088

	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dPhi := radians(lat2 - lat1)
	dLambda := radians(lon2 - lon1)

	sinDPhi := math.Sin(dPhi / 2)
	sinDLambda := math.Sin(dLambda / 2)

	h := sinDPhi*sinDPhi + math.Cos(phi1)*math.Cos(phi2)*sinDLambda*sinDLambda
	return 2 * meanRadiusKM * math.Asin(math.Sqrt(h))
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// SnapToGrid rounds a coordinate to the nearest multiple of the grid
// resolution, matching the lattice produced by the elevation prefetcher.
func SnapToGrid(value, resolution float64) float64 {
	return math.Round(value/resolution) * resolution
}

// GridKey formats a coordinate pair as the canonical 6-decimal cache key
// (e.g. "38.840000,-105.040000") shared by the database cache and the JSON
// snapshot format.
func GridKey(lat, lon float64) string {
	return fmt.Sprintf("%.6f,%.6f", lat, lon)
}

// ParseGridKey is the inverse of [GridKey]. It returns an error for inputs
// that are not a "lat,lon" decimal pair.
func ParseGridKey(key string) (lat, lon float64, err error) {
	if _, err = fmt.Sscanf(key, "%f,%f", &lat, &lon); err != nil {
		return 0, 0, fmt.Errorf("malformed grid key %q: %w", key, err)
	}

	return lat, lon, nil
}
