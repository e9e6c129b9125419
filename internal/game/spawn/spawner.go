// Package spawn provides the concrete creature spawner registered by
// spawnable regions and the periodic tick that keeps spawner populations at
// their caps.
package spawn

import (
	"sync/atomic"

	"github.com/cory-johannsen/realm/internal/game/world"
)

// Spawner is a population pocket anchored to a home point on a region map.
//
// Invariant: home lies within [0, maxX] x [0, maxY]; 0 <= live.
type Spawner struct {
	id        string
	region    world.RegionID
	creatures world.CreatureMask
	home      world.Point
	roam      int
	limit     int
	bounds    world.Dimensions

	live atomic.Int32
}

// New builds a Spawner from p. The home point is clamped onto the map; a
// negative range or limit is treated as zero.
//
// Postcondition: Returns a Spawner with no live creatures.
func New(p world.SpawnerParams) *Spawner {
	return &Spawner{
		id:        p.ID,
		region:    p.Region,
		creatures: p.Creatures,
		home: world.Point{
			X: clamp(p.X, 0, p.MaxX),
			Y: clamp(p.Y, 0, p.MaxY),
		},
		roam:   max(p.Range, 0),
		limit:  max(p.Limit, 0),
		bounds: world.Dimensions{Width: p.MaxX + 1, Length: p.MaxY + 1},
	}
}

// Factory adapts New to world.SpawnerFactory.
func Factory(p world.SpawnerParams) world.Spawner {
	return New(p)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// ID returns the registry key.
func (s *Spawner) ID() string { return s.id }

// Region returns the owning region.
func (s *Spawner) Region() world.RegionID { return s.region }

// Creatures returns the eligible creature kinds.
func (s *Spawner) Creatures() world.CreatureMask { return s.creatures }

// Home returns the anchor point.
func (s *Spawner) Home() world.Point { return s.home }

// Range returns the roam radius.
func (s *Spawner) Range() int { return s.roam }

// Limit returns the population cap.
func (s *Spawner) Limit() int { return s.limit }

// Contains reports whether p is on the map and within Range of Home on both axes.
func (s *Spawner) Contains(p world.Point) bool {
	if !s.bounds.Contains(p) {
		return false
	}
	return abs(p.X-s.home.X) <= s.roam && abs(p.Y-s.home.Y) <= s.roam
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Live returns the number of creatures currently alive from this spawner.
func (s *Spawner) Live() int { return int(s.live.Load()) }

// Deficit returns how many creatures are needed to reach Limit.
//
// Postcondition: Returns >= 0.
func (s *Spawner) Deficit() int {
	return max(s.limit-s.Live(), 0)
}

// Spawned records n new live creatures.
func (s *Spawner) Spawned(n int) {
	if n > 0 {
		s.live.Add(int32(n))
	}
}

// Despawned records the death or removal of one creature.
//
// Postcondition: Live never drops below zero.
func (s *Spawner) Despawned() {
	for {
		cur := s.live.Load()
		if cur <= 0 {
			return
		}
		if s.live.CompareAndSwap(cur, cur-1) {
			return
		}
	}
}
