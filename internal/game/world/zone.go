package world

import "fmt"

// Zone is a rectangle inside a spawnable region's map that, when occupied,
// reveals its parent region as a connected region.
//
// Invariant: the zone lies entirely within the owning map; parent is a single region.
type Zone struct {
	id       string
	owner    RegionID
	parent   RegionID
	location Point
	size     Dimensions
}

// NewZone builds a zone on a map of mapSize, clamping it to fit.
//
// An axis of size <= 0 takes the DefaultZoneSize value. Each axis is capped to
// the map, and the origin is shifted back so the far edge does not pass
// mapSize-1. Negative suggested coordinates are moved to 0.
//
// Precondition: parent must be a named single region; the reserved slot is rejected.
// Postcondition: Returns an in-bounds zone, or an error wrapping ErrInvalidRegion.
func NewZone(id string, owner, parent RegionID, suggested Point, mapSize, size Dimensions) (*Zone, error) {
	if !isNamedRegion(parent) {
		return nil, fmt.Errorf("zone parent %s: %w", parent, ErrInvalidRegion)
	}
	if size.Width <= 0 {
		size.Width = DefaultZoneSize.Width
	}
	if size.Length <= 0 {
		size.Length = DefaultZoneSize.Length
	}
	size.Width = min(size.Width, mapSize.Width)
	size.Length = min(size.Length, mapSize.Length)

	return &Zone{
		id:     id,
		owner:  owner,
		parent: parent,
		location: Point{
			X: clampOrigin(suggested.X, size.Width, mapSize.Width),
			Y: clampOrigin(suggested.Y, size.Length, mapSize.Length),
		},
		size: size,
	}, nil
}

// clampOrigin places a span of extent cells starting at want inside [0, limit-1].
func clampOrigin(want, extent, limit int) int {
	if want < 0 {
		return 0
	}
	if want+(extent-1) > limit-1 {
		return limit - extent
	}
	return want
}

// ID returns the registry key of the zone.
func (z *Zone) ID() string { return z.id }

// Owner returns the region whose map contains the zone.
func (z *Zone) Owner() RegionID { return z.owner }

// Parent returns the region revealed by the zone.
func (z *Zone) Parent() RegionID { return z.parent }

// Location returns the top-left corner of the zone.
func (z *Zone) Location() Point { return z.location }

// Size returns the zone's width and length.
func (z *Zone) Size() Dimensions { return z.size }

// InArea reports whether p lies inside the zone.
//
// The y bound is measured with the zone's width, not its length. Zones are
// square by default so the two agree; rectangular zones keep this behavior
// until content relying on it is audited.
func (z *Zone) InArea(p Point) bool {
	return p.X >= z.location.X && p.X <= z.location.X+z.size.Width-1 &&
		p.Y >= z.location.Y && p.Y <= z.location.Y+z.size.Width-1
}
