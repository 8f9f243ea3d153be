// ABOUTME: Viewpoint equality and near-duplicate detection
// ABOUTME: Pure functions used for history membership and push deduplication

package history

import (
	"math"

	"github.com/harper/vantage/internal/models"
)

const (
	// EqualityEpsilon is the per-axis tolerance in degrees for exact viewpoint identity.
	EqualityEpsilon = 1e-6

	// SimilarDegrees is the lat/lon delta below which two focal points count as the same
	// place, roughly 111 m at the equator. No latitude correction is applied.
	SimilarDegrees = 0.001

	// SimilarRangeRatio is the largest relative range difference still considered similar.
	SimilarRangeRatio = 0.10
)

// ViewpointsEqual reports whether a and b identify the same viewpoint.
// Names must match (including presence) and focal points must match in presence and,
// when both are set, in longitude and latitude. Altitude, heading, pitch and range are ignored.
func ViewpointsEqual(a, b models.Viewpoint) bool {
	if !namesEqual(a.Name, b.Name) {
		return false
	}

	fa, okA := a.Focal.Get()
	fb, okB := b.Focal.Get()
	if okA != okB {
		return false
	}
	if !okA {
		return true
	}
	return math.Abs(fa.Lon-fb.Lon) <= EqualityEpsilon &&
		math.Abs(fa.Lat-fb.Lat) <= EqualityEpsilon
}

func namesEqual(a, b models.Optional[string]) bool {
	na, okA := a.Get()
	nb, okB := b.Get()
	if okA != okB {
		return false
	}
	return na == nb
}

// IsSimilar reports whether candidate is close enough to last that recording it would
// add a near-duplicate. Both focal points must be set, otherwise nothing is similar.
// A missing range on either side cannot disprove similarity.
func IsSimilar(candidate, last models.Viewpoint) bool {
	fc, okC := candidate.Focal.Get()
	fl, okL := last.Focal.Get()
	if !okC || !okL {
		return false
	}

	latDiff := math.Abs(fc.Lat - fl.Lat)
	lonDiff := math.Abs(fc.Lon - fl.Lon)

	rangeSimilar := true
	r1, ok1 := candidate.Range.Get()
	r2, ok2 := last.Range.Get()
	if ok1 && ok2 {
		rangeSimilar = rangeRatioSimilar(r1, r2)
	}

	return latDiff < SimilarDegrees && lonDiff < SimilarDegrees && rangeSimilar
}

// rangeRatioSimilar compares |r1-r2| / max(r1,r2) against SimilarRangeRatio.
func rangeRatioSimilar(r1, r2 float64) bool {
	larger := math.Max(r1, r2)
	if larger <= 0 {
		// Both ranges zero (or degenerate): identical distances.
		return r1 == r2
	}
	return math.Abs(r1-r2)/larger <= SimilarRangeRatio
}
