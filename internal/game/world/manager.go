package world

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrUnknownRegion is returned when a region is not part of the world.
	ErrUnknownRegion = errors.New("unknown region")
	// ErrNotConnected is returned when movement targets a region that is neither
	// connected nor unlocked by a zone.
	ErrNotConnected = errors.New("region not connected")
)

// Manager provides thread-safe access to the constructed world graph.
// It indexes regions by their single-region ID.
type Manager struct {
	mu      sync.RWMutex
	regions map[RegionID]*Region
	order   []RegionID
	start   RegionID
}

// NewManager creates a Manager from the given regions.
//
// Precondition: regions must be non-nil entries.
// Postcondition: Returns a Manager with every region indexed by ID, or an
// error on duplicate IDs. The start region is the lowest-ID town, or the
// lowest-ID region when the world has no town.
func NewManager(regions []*Region) (*Manager, error) {
	m := &Manager{
		regions: make(map[RegionID]*Region, len(regions)),
	}
	for _, r := range regions {
		if r == nil {
			return nil, errors.New("nil region")
		}
		if _, exists := m.regions[r.ID()]; exists {
			return nil, fmt.Errorf("duplicate region ID: %s", r.ID())
		}
		m.regions[r.ID()] = r
		m.order = append(m.order, r.ID())
	}
	sort.Slice(m.order, func(i, j int) bool { return m.order[i] < m.order[j] })

	for _, id := range m.order {
		if m.regions[id].IsTown() {
			m.start = id
			break
		}
	}
	if m.start == RegionNone && len(m.order) > 0 {
		m.start = m.order[0]
	}
	return m, nil
}

// ValidateConnections checks that every connection of every region resolves to
// a region in the world.
//
// Postcondition: Returns nil if all connections resolve, or an error naming the
// first dangling connection.
func (m *Manager) ValidateConnections() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.order {
		for _, c := range m.regions[id].Connections().Regions() {
			if _, ok := m.regions[c]; !ok {
				return fmt.Errorf("region %s: connection %s: %w", id, c, ErrUnknownRegion)
			}
		}
	}
	return nil
}

// GetRegion returns the region with the given ID.
//
// Postcondition: Returns (region, true) if found, or (nil, false) otherwise.
func (m *Manager) GetRegion(id RegionID) (*Region, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.regions[id]
	return r, ok
}

// RegionByName returns the region whose canonical name matches name, ignoring case.
//
// Postcondition: Returns (region, true) if found, or (nil, false) otherwise.
func (m *Manager) RegionByName(name string) (*Region, bool) {
	id, err := ParseRegion(name)
	if err != nil {
		return nil, false
	}
	return m.GetRegion(id)
}

// Navigate resolves movement from one region to another by a player standing
// at pos on the source map. Movement is allowed over a direct connection or
// through a zone on the source map that unlocks the target at pos. Zones on
// other regions' maps never apply, and pos off the source map unlocks nothing.
//
// Precondition: from must exist in the world; to must be a named single region.
// Postcondition: Returns the destination region, or an error wrapping
// ErrInvalidRegion, ErrUnknownRegion, or ErrNotConnected.
func (m *Manager) Navigate(from, to RegionID, pos Point) (*Region, error) {
	if !isNamedRegion(to) {
		return nil, fmt.Errorf("navigate to %s: %w", to, ErrInvalidRegion)
	}
	src, ok := m.GetRegion(from)
	if !ok {
		return nil, fmt.Errorf("navigate from %s: %w", from, ErrUnknownRegion)
	}
	dst, ok := m.GetRegion(to)
	if !ok {
		return nil, fmt.Errorf("navigate to %s: %w", to, ErrUnknownRegion)
	}
	if src.HasConnection(to) || src.unlockedOnMap(pos).Contains(to) {
		return dst, nil
	}
	return nil, fmt.Errorf("navigate %s to %s: %w", from, to, ErrNotConnected)
}

// Discover returns the regions unlocked by zones on from's own map at pos
// that are not already connected to from.
//
// Postcondition: Returns RegionNone when from is unknown, has no map, or pos
// lies off its map.
func (m *Manager) Discover(from RegionID, pos Point) RegionID {
	src, ok := m.GetRegion(from)
	if !ok {
		return RegionNone
	}
	return src.unlockedOnMap(pos).Exclude(src.Connections() | from)
}

// StartRegion returns the region new players enter.
//
// Postcondition: Returns nil if the world is empty.
func (m *Manager) StartRegion() *Region {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.start == RegionNone {
		return nil
	}
	return m.regions[m.start]
}

// RegionCount returns the number of regions in the world.
func (m *Manager) RegionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.regions)
}

// AllRegions returns every region ordered by ID.
//
// Postcondition: Returns a non-nil slice; may be empty.
func (m *Manager) AllRegions() []*Region {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Region, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.regions[id])
	}
	return out
}

// Summary returns a one-line description of each region, for logs and tools.
func (m *Manager) Summary() []string {
	var lines []string
	for _, r := range m.AllRegions() {
		lines = append(lines, fmt.Sprintf("%-10s type=%s map=%s connections=%s spawners=%d zones=%d services=%d",
			r.Name(), r.Type(), r.Dimensions(), r.Connections(),
			len(r.Spawners()), len(r.Zones()), len(r.LocalServices())))
	}
	return lines
}
