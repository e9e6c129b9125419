package world

import (
	"fmt"
	"strings"
)

// RegionType classifies a region. Types are flags and may be combined.
type RegionType uint8

const (
	// TypeTown marks a settlement with stationary vendors.
	TypeTown RegionType = 1 << iota
	// TypeOpenWorld marks an outdoor area.
	TypeOpenWorld
	// TypeDungeon marks an enclosed hostile area.
	TypeDungeon
	// TypePvP marks an area where players may attack each other.
	TypePvP
)

var regionTypeNames = []struct {
	t    RegionType
	name string
}{
	{TypeTown, "town"},
	{TypeOpenWorld, "open_world"},
	{TypeDungeon, "dungeon"},
	{TypePvP, "pvp"},
}

// Has reports whether every flag of f is set in t.
func (t RegionType) Has(f RegionType) bool {
	return f != 0 && t&f == f
}

// String returns the "|"-joined flag names, or "none".
func (t RegionType) String() string {
	var parts []string
	for _, n := range regionTypeNames {
		if t.Has(n.t) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// ParseRegionType returns the union of the named region types.
//
// Postcondition: Returns an error on the first unknown name.
func ParseRegionType(names []string) (RegionType, error) {
	var out RegionType
	for _, raw := range names {
		found := false
		for _, n := range regionTypeNames {
			if strings.EqualFold(strings.TrimSpace(raw), n.name) {
				out |= n.t
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown region type %q", raw)
		}
	}
	return out, nil
}

// CreatureMask is the set of creature kinds a spawner may produce.
type CreatureMask uint32

// Creature kinds.
const (
	CreatureNone CreatureMask = 0
	CreatureRat  CreatureMask = 1 << (iota - 1)
	CreatureBat
	CreatureSkeleton
	CreatureZombie
	CreatureGhoul
	CreatureWolf
	CreatureBandit
	CreatureGoblin
	CreatureOrc
	CreatureDemon
	CreatureGladiator
)

// CreatureUndead groups the creatures raised from the dead.
const CreatureUndead = CreatureSkeleton | CreatureZombie | CreatureGhoul

var creatureNames = []struct {
	c    CreatureMask
	name string
}{
	{CreatureRat, "rat"},
	{CreatureBat, "bat"},
	{CreatureSkeleton, "skeleton"},
	{CreatureZombie, "zombie"},
	{CreatureGhoul, "ghoul"},
	{CreatureWolf, "wolf"},
	{CreatureBandit, "bandit"},
	{CreatureGoblin, "goblin"},
	{CreatureOrc, "orc"},
	{CreatureDemon, "demon"},
	{CreatureGladiator, "gladiator"},
}

// Contains reports whether every kind in c is present in m.
func (m CreatureMask) Contains(c CreatureMask) bool {
	return c != CreatureNone && m&c == c
}

// String returns the "|"-joined creature names, or "none".
func (m CreatureMask) String() string {
	var parts []string
	for _, n := range creatureNames {
		if m.Contains(n.c) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// ParseCreatures returns the union of the named creature kinds. The name
// "undead" expands to CreatureUndead.
//
// Postcondition: Returns an error on the first unknown name.
func ParseCreatures(names []string) (CreatureMask, error) {
	var out CreatureMask
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "undead" {
			out |= CreatureUndead
			continue
		}
		found := false
		for _, n := range creatureNames {
			if name == n.name {
				out |= n.c
				found = true
				break
			}
		}
		if !found {
			return CreatureNone, fmt.Errorf("unknown creature %q", raw)
		}
	}
	return out, nil
}
