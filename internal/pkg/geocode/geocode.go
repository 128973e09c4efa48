// Package geocode derives approximate coordinates from a street address.
//
// There is no geocoding provider behind this: the pair is a stable hash of
// the normalized address, spread over inhabited latitudes. Reports only need
// a plausible, repeatable map pin; accuracy is out of scope.
package geocode

import (
	"hash/fnv"
	"math"
	"strings"

	"siaga-bencana/internal/domain"
)

const (
	minLat = -55.0
	maxLat = 70.0
	minLng = -180.0
	maxLng = 180.0
)

// Approximate returns a deterministic coordinate pair for the address. The
// same address always maps to the same pair. Coordinates are rounded to
// three decimals, roughly neighborhood precision.
func Approximate(address string) domain.Coordinates {
	normalized := normalize(address)

	h := fnv.New64a()
	_, _ = h.Write([]byte(normalized))
	latSeed := h.Sum64()

	_, _ = h.Write([]byte("|lng"))
	lngSeed := h.Sum64()

	return domain.Coordinates{
		Lat: round3(spread(latSeed, minLat, maxLat)),
		Lng: round3(spread(lngSeed, minLng, maxLng)),
	}
}

func normalize(address string) string {
	return strings.Join(strings.Fields(strings.ToLower(address)), " ")
}

func spread(seed uint64, min, max float64) float64 {
	frac := float64(seed%1_000_000) / 1_000_000
	return min + frac*(max-min)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
