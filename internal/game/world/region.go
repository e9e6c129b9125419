package world

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cory-johannsen/realm/internal/game/npc"
)

// startPolicy selects how StartingLocation picks an entry point.
type startPolicy int

const (
	startAtCenter startPolicy = iota
	startAtEntry
)

// spatialMap is the payload carried only by spawnable regions.
type spatialMap struct {
	dims     Dimensions
	registry *Registry
	start    startPolicy
	// creatures is guarded by Region.mu.
	creatures CreatureMask
}

// Region is a node of the world graph.
//
// Invariant: id is a named single region; connections never contains id and holds
// only named single regions. id, typ and description never change after
// construction. connections and services are guarded by mu.
type Region struct {
	id          RegionID
	typ         RegionType
	description string

	mu          sync.RWMutex
	connections RegionID
	services    map[npc.ServiceType]npc.Service

	spatial *spatialMap
}

// NewRegion creates a region without a map.
//
// Precondition: id must be a named single region; the reserved slot is rejected.
// Postcondition: Returns a Region with no connections, or an error wrapping ErrInvalidRegion.
func NewRegion(typ RegionType, id RegionID, description string) (*Region, error) {
	if !isNamedRegion(id) {
		return nil, fmt.Errorf("new region %s: %w", id, ErrInvalidRegion)
	}
	return &Region{
		id:          id,
		typ:         typ,
		description: strings.TrimSpace(description),
		services:    make(map[npc.ServiceType]npc.Service),
	}, nil
}

// NewSpawnableRegion creates a region with a map of width x length whose
// spawners and zones are stored in reg. Each axis is raised to MinMapAxis.
//
// Precondition: id must be a named single region; reg must be non-nil.
// Postcondition: Returns a spawnable Region starting at its map center.
func NewSpawnableRegion(typ RegionType, id RegionID, description string, width, length int, reg *Registry) (*Region, error) {
	return newSpawnableRegion(typ, id, description, width, length, reg, startAtCenter)
}

// NewTownRegion creates a spawnable town. Towns have no open-world entry
// point: StartingLocation returns InvalidPoint and callers use the town's
// fixed entry instead.
//
// Precondition: id must be a named single region; reg must be non-nil.
func NewTownRegion(id RegionID, description string, width, length int, reg *Registry) (*Region, error) {
	return newSpawnableRegion(TypeTown, id, description, width, length, reg, startAtEntry)
}

func newSpawnableRegion(typ RegionType, id RegionID, description string, width, length int, reg *Registry, start startPolicy) (*Region, error) {
	if reg == nil {
		return nil, fmt.Errorf("new spawnable region %s: registry must not be nil", id)
	}
	r, err := NewRegion(typ, id, description)
	if err != nil {
		return nil, err
	}
	r.spatial = &spatialMap{
		dims:     mapDimensions(width, length),
		registry: reg,
		start:    start,
	}
	return r, nil
}

// ID returns the region's single-region flag.
func (r *Region) ID() RegionID { return r.id }

// Type returns the region's type flags.
func (r *Region) Type() RegionType { return r.typ }

// Name returns the canonical region name.
func (r *Region) Name() string { return r.id.String() }

// Description returns the text shown on entering the region.
func (r *Region) Description() string { return r.description }

// Spawnable reports whether the region has a map for spawners and zones.
func (r *Region) Spawnable() bool { return r.spatial != nil }

// IsTown reports whether the region is a town.
func (r *Region) IsTown() bool { return r.typ.Has(TypeTown) }

// Connections returns the mask of directly connected regions.
func (r *Region) Connections() RegionID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.connections
}

// AddConnection merges mask into the region's connections. The region's own
// bit and any unnamed bits are stripped first.
//
// Postcondition: No-op when mask is RegionNone or equals the region's ID;
// repeated calls with the same mask leave connections unchanged.
func (r *Region) AddConnection(mask RegionID) {
	if mask == RegionNone || mask == r.id {
		return
	}
	mask = mask.Exclude(r.id) & RegionAll
	if mask == RegionNone {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connections |= mask
}

// HasConnection reports whether every region in mask is connected.
//
// Postcondition: Returns false for RegionNone.
func (r *Region) HasConnection(mask RegionID) bool {
	return r.Connections().Contains(mask)
}

// StringToConnection returns the connected single region named name, ignoring
// case. Only regions already connected to r are matched.
//
// Postcondition: Returns RegionNone when name is empty, unknown, names a
// combination, or names a region that is not connected.
func (r *Region) StringToConnection(name string) RegionID {
	name = strings.TrimSpace(name)
	if name == "" {
		return RegionNone
	}
	conns := r.Connections()
	for _, single := range SingleRegions {
		if strings.EqualFold(name, single.String()) && conns.Contains(single) {
			return single
		}
	}
	return RegionNone
}

// TotalConnectedCount returns the number of named single regions connected to r.
func (r *Region) TotalConnectedCount() int {
	return r.Connections().Count()
}

// FindLocalService returns the stationary NPC offering t.
//
// Postcondition: Returns (service, true) if found, or (nil, false) otherwise.
func (r *Region) FindLocalService(t npc.ServiceType) (npc.Service, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.services[t]
	return s, ok
}

// AddLocalService attaches s under its service type.
//
// Postcondition: Returns false, leaving the region unchanged, when s is nil or
// its service type is already taken.
func (r *Region) AddLocalService(s npc.Service) bool {
	if s == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.services[s.ServiceType()]; exists {
		return false
	}
	r.services[s.ServiceType()] = s
	return true
}

// LocalServices returns the region's stationary NPCs ordered by service type.
//
// Postcondition: Returns a non-nil slice; may be empty.
func (r *Region) LocalServices() []npc.Service {
	r.mu.RLock()
	out := make([]npc.Service, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, s)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ServiceType() < out[j].ServiceType() })
	return out
}

// Dimensions returns the map size, or the zero value for regions without a map.
func (r *Region) Dimensions() Dimensions {
	if r.spatial == nil {
		return Dimensions{}
	}
	return r.spatial.dims
}

// MaxX returns the largest x coordinate of the map, or -1 without a map.
func (r *Region) MaxX() int { return r.Dimensions().MaxX() }

// MaxY returns the largest y coordinate of the map, or -1 without a map.
func (r *Region) MaxY() int { return r.Dimensions().MaxY() }

// StartingLocation returns where a player entering from the open world is
// placed.
//
// Postcondition: Returns the map center for spawnable regions and InvalidPoint
// for towns and regions without a map.
func (r *Region) StartingLocation() Point {
	if r.spatial == nil || r.spatial.start == startAtEntry {
		return InvalidPoint
	}
	return r.spatial.dims.Center()
}

// SetDefaultCreatures sets the creature kinds used by AddSpawner when called
// with CreatureNone. No-op on regions without a map.
func (r *Region) SetDefaultCreatures(m CreatureMask) {
	if r.spatial == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spatial.creatures = m
}

// DefaultCreatures returns the creature kinds used when a spawner names none.
func (r *Region) DefaultCreatures() CreatureMask {
	if r.spatial == nil {
		return CreatureNone
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.spatial.creatures
}

// AddSpawner registers a spawner anchored at (x, y) with the given roam range
// and population limit. When creatures is CreatureNone the region's default
// creatures are used.
//
// Postcondition: Returns (nil, false) without touching the registry when the
// region has no map or the effective creature mask is empty; otherwise the
// spawner is stored under a fresh key and the registry's notifier is called.
func (r *Region) AddSpawner(x, y, roam, limit int, creatures CreatureMask) (Spawner, bool) {
	if r.spatial == nil {
		return nil, false
	}
	if creatures == CreatureNone {
		creatures = r.DefaultCreatures()
	}
	if creatures == CreatureNone {
		return nil, false
	}
	return r.spatial.registry.addSpawner(r.Name(), SpawnerParams{
		Region:    r.id,
		Creatures: creatures,
		X:         x,
		Y:         y,
		Range:     roam,
		Limit:     limit,
		MaxX:      r.spatial.dims.MaxX(),
		MaxY:      r.spatial.dims.MaxY(),
	})
}

// AddZone registers a zone of width x length near suggested that reveals
// parent. Several zones may reveal the same parent.
//
// Precondition: the region must have a map; parent must be a named single region.
// Postcondition: Returns the clamped zone, or a non-nil error.
func (r *Region) AddZone(parent RegionID, suggested Point, width, length int) (*Zone, error) {
	if r.spatial == nil {
		return nil, fmt.Errorf("region %s: zones require a spawnable region", r.Name())
	}
	reg := r.spatial.registry
	z, err := NewZone(reg.newID(), r.id, parent, suggested, r.spatial.dims, Dimensions{Width: width, Length: length})
	if err != nil {
		return nil, fmt.Errorf("region %s: %w", r.Name(), err)
	}
	if !reg.addZone(z) {
		return nil, fmt.Errorf("region %s: zone id %q already registered", r.Name(), z.id)
	}
	return z, nil
}

// ResolveUnlockedRegions returns the union of the parents of every registered
// zone containing p. All zones in the shared registry are tested, not only
// this region's own, so the cost is linear in the total zone count.
//
// Postcondition: Returns RegionNone for regions without a map.
func (r *Region) ResolveUnlockedRegions(p Point) RegionID {
	if r.spatial == nil {
		return RegionNone
	}
	return r.spatial.registry.unlockedAt(p)
}

// unlockedOnMap returns the parents of this region's own zones containing p.
//
// Postcondition: Returns RegionNone when the region has no map or p lies off it.
func (r *Region) unlockedOnMap(p Point) RegionID {
	if r.spatial == nil || !r.spatial.dims.Contains(p) {
		return RegionNone
	}
	var out RegionID
	r.spatial.registry.RangeZones(func(z *Zone) bool {
		if z.owner == r.id && z.InArea(p) {
			out |= z.parent
		}
		return true
	})
	return out
}

// Spawners returns the spawners registered for this region ordered by ID.
//
// Postcondition: Returns a non-nil slice; may be empty.
func (r *Region) Spawners() []Spawner {
	out := []Spawner{}
	if r.spatial == nil {
		return out
	}
	r.spatial.registry.RangeSpawners(func(s Spawner) bool {
		if s.Region() == r.id {
			out = append(out, s)
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Zones returns the zones placed on this region's map ordered by ID.
//
// Postcondition: Returns a non-nil slice; may be empty.
func (r *Region) Zones() []*Zone {
	out := []*Zone{}
	if r.spatial == nil {
		return out
	}
	r.spatial.registry.RangeZones(func(z *Zone) bool {
		if z.owner == r.id {
			out = append(out, z)
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}
