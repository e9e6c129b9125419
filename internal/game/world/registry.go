package world

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Spawner is a bounded-population creature generator anchored to a home point
// in a spawnable region. Implementations live with the creature subsystem.
type Spawner interface {
	// ID returns the registry key assigned at construction.
	ID() string
	// Region returns the owning region.
	Region() RegionID
	// Creatures returns the creature kinds this spawner may produce.
	Creatures() CreatureMask
	// Home returns the in-bounds anchor point.
	Home() Point
	// Range returns the roam radius around Home.
	Range() int
	// Limit returns the population cap.
	Limit() int
	// Contains reports whether p lies within the spawner's roam area.
	Contains(p Point) bool
}

// SpawnerParams carries everything a SpawnerFactory needs to build a spawner.
type SpawnerParams struct {
	ID        string
	Region    RegionID
	Creatures CreatureMask
	X         int
	Y         int
	Range     int
	Limit     int
	MaxX      int
	MaxY      int
}

// SpawnerFactory builds a Spawner from its fixed attributes.
type SpawnerFactory func(SpawnerParams) Spawner

// SpawnNotifier receives a notification each time a spawner is registered.
// Implementations must not block.
type SpawnNotifier interface {
	SpawnerCreated(region, spawnerID string, homeX, homeY int)
}

type nopNotifier struct{}

func (nopNotifier) SpawnerCreated(string, string, int, int) {}

// Registry holds every spawner and zone in the world, keyed by generated IDs.
// It is insert-only and safe for concurrent use without external locking.
type Registry struct {
	spawners sync.Map // spawnerID → Spawner
	zones    sync.Map // zoneID → *Zone

	spawnerCount atomic.Int64
	zoneCount    atomic.Int64

	newID    func() string
	factory  SpawnerFactory
	notifier SpawnNotifier
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithIDGenerator replaces the default UUID key generator.
func WithIDGenerator(fn func() string) RegistryOption {
	return func(r *Registry) { r.newID = fn }
}

// WithNotifier sets the sink notified of spawner creation.
func WithNotifier(n SpawnNotifier) RegistryOption {
	return func(r *Registry) { r.notifier = n }
}

// NewRegistry creates an empty Registry that builds spawners with factory.
//
// Precondition: factory must be non-nil.
// Postcondition: Returns a Registry generating UUID keys and discarding
// notifications unless overridden by opts.
func NewRegistry(factory SpawnerFactory, opts ...RegistryOption) *Registry {
	if factory == nil {
		panic("world.NewRegistry: factory must not be nil")
	}
	r := &Registry{
		newID:    uuid.NewString,
		factory:  factory,
		notifier: nopNotifier{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SpawnerCount returns the number of registered spawners.
func (r *Registry) SpawnerCount() int { return int(r.spawnerCount.Load()) }

// ZoneCount returns the number of registered zones.
func (r *Registry) ZoneCount() int { return int(r.zoneCount.Load()) }

// Spawner returns the spawner registered under id.
//
// Postcondition: Returns (spawner, true) if found, or (nil, false) otherwise.
func (r *Registry) Spawner(id string) (Spawner, bool) {
	v, ok := r.spawners.Load(id)
	if !ok {
		return nil, false
	}
	return v.(Spawner), true
}

// Zone returns the zone registered under id.
//
// Postcondition: Returns (zone, true) if found, or (nil, false) otherwise.
func (r *Registry) Zone(id string) (*Zone, bool) {
	v, ok := r.zones.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*Zone), true
}

// RangeSpawners calls fn for each spawner until fn returns false.
func (r *Registry) RangeSpawners(fn func(Spawner) bool) {
	r.spawners.Range(func(_, v any) bool {
		return fn(v.(Spawner))
	})
}

// RangeZones calls fn for each zone until fn returns false.
func (r *Registry) RangeZones(fn func(*Zone) bool) {
	r.zones.Range(func(_, v any) bool {
		return fn(v.(*Zone))
	})
}

// addSpawner builds and stores a spawner under a fresh key.
//
// Postcondition: Returns (spawner, true) when stored; an occupied key is never
// overwritten and yields (nil, false).
func (r *Registry) addSpawner(regionName string, p SpawnerParams) (Spawner, bool) {
	p.ID = r.newID()
	sp := r.factory(p)
	if _, loaded := r.spawners.LoadOrStore(p.ID, sp); loaded {
		return nil, false
	}
	r.spawnerCount.Add(1)
	home := sp.Home()
	r.notifier.SpawnerCreated(regionName, p.ID, home.X, home.Y)
	return sp, true
}

// addZone stores z under its own ID.
//
// Postcondition: Returns false when the key is already occupied.
func (r *Registry) addZone(z *Zone) bool {
	if _, loaded := r.zones.LoadOrStore(z.id, z); loaded {
		return false
	}
	r.zoneCount.Add(1)
	return true
}

// unlockedAt returns the parents of every registered zone whose area holds p.
func (r *Registry) unlockedAt(p Point) RegionID {
	var out RegionID
	r.zones.Range(func(_, v any) bool {
		z := v.(*Zone)
		if z.InArea(p) {
			out |= z.parent
		}
		return true
	})
	return out
}
