// Package assign picks the hospital a report should be routed to.
package assign

import (
	"math"

	"herdsos/entities"
	"herdsos/pkg/geo"
)

// SelectNearest returns the hospital closest to loc by great-circle distance,
// skipping any hospital in excluded. Equal distances resolve to the lowest ID.
// Hospitals with invalid coordinates are never chosen.
// ok is false when loc is nil or every hospital is excluded.
func SelectNearest(hospitals []entities.Hospital, loc *geo.Point, excluded []uint) (id uint, ok bool) {
	if loc == nil {
		return 0, false
	}
	skip := make(map[uint]struct{}, len(excluded))
	for _, e := range excluded {
		skip[e] = struct{}{}
	}

	var best float64
	for _, h := range hospitals {
		if _, tried := skip[h.ID]; tried {
			continue
		}
		p := geo.Point{Lat: h.Lat, Lon: h.Lon}
		if !p.Valid() {
			continue
		}
		d := geo.DistanceKm(*loc, p)
		if math.IsNaN(d) || math.IsInf(d, 0) {
			continue
		}
		if !ok || d < best || (d == best && h.ID < id) {
			id, best, ok = h.ID, d, true
		}
	}
	return id, ok
}
