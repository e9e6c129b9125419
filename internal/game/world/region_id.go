// Package world provides the game world graph: regions, their connectivity
// masks, spawnable maps, discoverable zones, and the shared spawner and zone
// registries.
package world

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRegion is returned when a value that must identify exactly one
// region is zero or a combination of regions.
var ErrInvalidRegion = errors.New("invalid single region")

// RegionID is a set of region flags. A single region is identified by exactly
// one bit; connectivity values are any OR-combination of single regions.
type RegionID uint32

// Region flags. Bit values are stable and must never be renumbered.
const (
	// RegionNone is the empty set. It is never a valid single region.
	RegionNone RegionID = 0
	// RegionTown is the walled starting town.
	RegionTown RegionID = 1 << 0
	// RegionGraveyard is the burial ground outside the town gate.
	RegionGraveyard RegionID = 1 << 1
	// RegionSewers is the tunnel network beneath the town.
	RegionSewers RegionID = 1 << 2
	// regionReserved is a historical slot that is kept so later bits keep their values.
	regionReserved RegionID = 1 << 3
	// RegionWilderness is the open world surrounding the town.
	RegionWilderness RegionID = 1 << 4
	// RegionDespise is the dungeon reached from the wilderness.
	RegionDespise RegionID = 1 << 5
	// RegionCrypt is the dungeon beneath the graveyard.
	RegionCrypt RegionID = 1 << 6
	// RegionArena is the player-versus-player pit.
	RegionArena RegionID = 1 << 7
)

// Combination masks. These are never single regions and are not counted by
// RegionID.Count.
const (
	// RegionDungeons groups every dungeon region.
	RegionDungeons = RegionSewers | RegionDespise | RegionCrypt
	// RegionAll groups every named single region.
	RegionAll = RegionTown | RegionGraveyard | RegionSewers | RegionWilderness |
		RegionDespise | RegionCrypt | RegionArena
)

// SingleRegions lists every named single region in bit order.
var SingleRegions = []RegionID{
	RegionTown,
	RegionGraveyard,
	RegionSewers,
	RegionWilderness,
	RegionDespise,
	RegionCrypt,
	RegionArena,
}

var regionNames = map[RegionID]string{
	RegionTown:       "Town",
	RegionGraveyard:  "Graveyard",
	RegionSewers:     "Sewers",
	regionReserved:   "Unused",
	RegionWilderness: "Wilderness",
	RegionDespise:    "Despise",
	RegionCrypt:      "Crypt",
	RegionArena:      "Arena",
}

// IsSingleRegion reports whether v is exactly one region flag.
//
// Postcondition: Returns false for RegionNone and for any combination.
func IsSingleRegion(v RegionID) bool {
	return v != RegionNone && v&(v-1) == 0
}

// isNamedRegion reports whether v is a single region other than the reserved
// slot. Region and zone constructors accept only named regions.
func isNamedRegion(v RegionID) bool {
	return IsSingleRegion(v) && v&RegionAll == v
}

// Union returns the OR-combination of all masks.
func Union(masks ...RegionID) RegionID {
	var out RegionID
	for _, m := range masks {
		out |= m
	}
	return out
}

// Contains reports whether every bit of bit is set in m.
//
// Postcondition: Returns false when bit is RegionNone.
func (m RegionID) Contains(bit RegionID) bool {
	return bit != RegionNone && m&bit == bit
}

// Exclude returns m with every bit of bits cleared.
func (m RegionID) Exclude(bits RegionID) RegionID {
	return m &^ bits
}

// Count returns the number of named single regions present in m.
func (m RegionID) Count() int {
	n := 0
	for _, r := range SingleRegions {
		if m.Contains(r) {
			n++
		}
	}
	return n
}

// Regions returns the named single regions present in m, in bit order.
func (m RegionID) Regions() []RegionID {
	var out []RegionID
	for _, r := range SingleRegions {
		if m.Contains(r) {
			out = append(out, r)
		}
	}
	return out
}

// String returns the canonical name of a single region, a "|"-joined list for
// combinations, or "None".
func (m RegionID) String() string {
	if m == RegionNone {
		return "None"
	}
	if name, ok := regionNames[m]; ok {
		return name
	}
	var parts []string
	for i := 0; i < 32; i++ {
		bit := RegionID(1) << i
		if m&bit == 0 {
			continue
		}
		if name, ok := regionNames[bit]; ok {
			parts = append(parts, name)
		} else {
			parts = append(parts, fmt.Sprintf("0x%x", uint32(bit)))
		}
	}
	return strings.Join(parts, "|")
}

// ParseRegion returns the named single region matching name, ignoring case.
//
// Postcondition: Returns (RegionNone, error wrapping ErrInvalidRegion) when name
// does not name a single region.
func ParseRegion(name string) (RegionID, error) {
	for _, r := range SingleRegions {
		if strings.EqualFold(strings.TrimSpace(name), regionNames[r]) {
			return r, nil
		}
	}
	return RegionNone, fmt.Errorf("region %q: %w", name, ErrInvalidRegion)
}

// ParseRegionList returns the union of every named region in names.
//
// Postcondition: Returns an error on the first unknown name.
func ParseRegionList(names []string) (RegionID, error) {
	var out RegionID
	for _, n := range names {
		r, err := ParseRegion(n)
		if err != nil {
			return RegionNone, err
		}
		out |= r
	}
	return out, nil
}
