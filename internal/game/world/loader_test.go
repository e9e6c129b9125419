package world

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/realm/internal/game/npc"
)

const shippedRegionsDir = "../../../content/regions"

const tavernYAML = `
region:
  id: town
  types: [town]
  description: A quiet market town.
  map:
    width: 20
    length: 8
  connections: [Wilderness, Sewers]
  creatures: [rat]
  spawners:
    - {x: 1, y: 1, range: 1, limit: 2}
    - {x: 4, y: 4, range: 1, limit: 1, creatures: [bat]}
  zones:
    - {parent: Sewers, x: 19, y: 0}
  services:
    - {type: blacksmith, name: Hadrik}
    - {type: innkeeper, name: Mara}
`

func TestLoadRecipeFromBytes(t *testing.T) {
	rc, err := LoadRecipeFromBytes([]byte(tavernYAML))
	require.NoError(t, err)
	assert.Equal(t, "town", rc.ID)
	assert.Equal(t, []string{"town"}, rc.Types)
	require.NotNil(t, rc.Map)
	assert.Equal(t, 20, rc.Map.Width)
	assert.Len(t, rc.Spawners, 2)
	assert.Len(t, rc.Zones, 1)
	assert.Len(t, rc.Services, 2)
}

func TestLoadRecipeFromBytes_Errors(t *testing.T) {
	_, err := LoadRecipeFromBytes([]byte("region: [unclosed"))
	assert.Error(t, err)

	_, err = LoadRecipeFromBytes([]byte("region:\n  id: Atlantis\n"))
	assert.ErrorIs(t, err, ErrInvalidRegion)
}

func TestRecipeBuild(t *testing.T) {
	rc, err := LoadRecipeFromBytes([]byte(tavernYAML))
	require.NoError(t, err)
	reg, rec := newTestRegistry()

	r, err := rc.Build(reg)
	require.NoError(t, err)

	assert.Equal(t, RegionTown, r.ID())
	assert.True(t, r.IsTown())
	assert.Equal(t, "A quiet market town.", r.Description())
	assert.Equal(t, Dimensions{Width: 20, Length: 10}, r.Dimensions())
	assert.Equal(t, InvalidPoint, r.StartingLocation())
	assert.Equal(t, RegionWilderness|RegionSewers, r.Connections())
	assert.Equal(t, CreatureRat, r.DefaultCreatures())

	spawners := r.Spawners()
	require.Len(t, spawners, 2)
	assert.Equal(t, CreatureRat, spawners[0].Creatures())
	assert.Equal(t, CreatureBat, spawners[1].Creatures())
	assert.Len(t, rec.Events(), 2)

	zones := r.Zones()
	require.Len(t, zones, 1)
	assert.Equal(t, Point{X: 18, Y: 0}, zones[0].Location())
	assert.Equal(t, DefaultZoneSize, zones[0].Size())
	assert.Equal(t, RegionSewers, r.ResolveUnlockedRegions(Point{X: 19, Y: 1}))

	smith, ok := r.FindLocalService(npc.ServiceBlacksmith)
	require.True(t, ok)
	assert.Equal(t, "Hadrik", smith.Name())
}

func TestRecipeBuild_PlainRegion(t *testing.T) {
	rc := &Recipe{ID: "Arena", Types: []string{"pvp"}, Connections: []string{"Town"}}
	r, err := rc.Build(nil)
	require.NoError(t, err)
	assert.False(t, r.Spawnable())
	assert.True(t, r.Type().Has(TypePvP))
	assert.Equal(t, RegionTown, r.Connections())
}

func TestRecipeBuild_OpenWorldStartsAtCenter(t *testing.T) {
	rc := &Recipe{ID: "Wilderness", Types: []string{"open_world"}, Map: &yamlMap{Width: 31, Length: 31}}
	reg, _ := newTestRegistry()
	r, err := rc.Build(reg)
	require.NoError(t, err)
	assert.Equal(t, Point{X: 15, Y: 15}, r.StartingLocation())
}

func TestRecipeBuild_Errors(t *testing.T) {
	reg, _ := newTestRegistry()
	cases := map[string]*Recipe{
		"bad id":           {ID: "Atlantis"},
		"bad type":         {ID: "Town", Types: []string{"castle"}},
		"bad connection":   {ID: "Town", Connections: []string{"Moon"}},
		"spawner no map":   {ID: "Town", Spawners: []yamlSpawner{{X: 1, Y: 1, Limit: 1, Creatures: []string{"rat"}}}},
		"zone no map":      {ID: "Town", Zones: []yamlZone{{Parent: "Sewers"}}},
		"bad creature":     {ID: "Crypt", Map: &yamlMap{}, Creatures: []string{"dragon"}},
		"bad zone parent":  {ID: "Crypt", Map: &yamlMap{}, Zones: []yamlZone{{Parent: "Nowhere"}}},
		"bad service":      {ID: "Town", Services: []yamlService{{Type: "jester", Name: "Pip"}}},
		"unnamed service":  {ID: "Town", Services: []yamlService{{Type: "priest"}}},
		"duplicate vendor": {ID: "Town", Services: []yamlService{{Type: "priest", Name: "A"}, {Type: "priest", Name: "B"}}},
	}
	for name, rc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := rc.Build(reg)
			assert.Error(t, err)
		})
	}
}

func TestLoadRecipesFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "town.yaml"), []byte(tavernYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755))

	recipes, err := LoadRecipesFromDir(dir)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "town", recipes[0].ID)
}

func TestLoadRecipesFromDir_Errors(t *testing.T) {
	_, err := LoadRecipesFromDir(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	_, err = LoadRecipesFromDir(t.TempDir())
	assert.Error(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yml"), []byte("region:\n  id: Moon\n"), 0o644))
	_, err = LoadRecipesFromDir(dir)
	assert.Error(t, err)
}

func TestBuildWorld_RejectsDanglingConnection(t *testing.T) {
	reg, _ := newTestRegistry()
	recipes := []*Recipe{
		{ID: "Town", Types: []string{"town"}, Connections: []string{"Graveyard"}},
	}
	_, err := BuildWorld(context.Background(), recipes, reg, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, ErrUnknownRegion)
}

func TestBuildWorld_RejectsDuplicateRegions(t *testing.T) {
	reg, _ := newTestRegistry()
	recipes := []*Recipe{{ID: "Town"}, {ID: "town"}}
	_, err := BuildWorld(context.Background(), recipes, reg, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestBuildWorld_PropagatesRecipeError(t *testing.T) {
	reg, _ := newTestRegistry()
	recipes := []*Recipe{{ID: "Town"}, {ID: "Crypt", Types: []string{"castle"}}}
	_, err := BuildWorld(context.Background(), recipes, reg, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Crypt")
}

func TestBuildWorld_ShippedContent(t *testing.T) {
	recipes, err := LoadRecipesFromDir(shippedRegionsDir)
	require.NoError(t, err)

	reg, rec := newTestRegistry()
	m, err := BuildWorld(context.Background(), recipes, reg, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, len(SingleRegions), m.RegionCount())
	assert.Equal(t, RegionTown, m.StartRegion().ID())
	assert.Equal(t, reg.SpawnerCount(), len(rec.Events()))
	assert.Positive(t, reg.ZoneCount())

	// Every connection is reciprocated, directly or through a zone.
	for _, r := range m.AllRegions() {
		for _, c := range r.Connections().Regions() {
			other, ok := m.GetRegion(c)
			require.True(t, ok)
			back := other.HasConnection(r.ID())
			for _, z := range other.Zones() {
				back = back || z.Parent() == r.ID()
			}
			assert.True(t, back, "%s -> %s is one-way", r.Name(), other.Name())
		}
	}

	town, _ := m.GetRegion(RegionTown)
	assert.Len(t, town.LocalServices(), 6)

	// The sewer grate and the crypt door are hidden entrances.
	sewers := m.Discover(RegionTown, Point{X: 3, Y: 26})
	assert.Equal(t, RegionSewers, sewers)
	_, err = m.Navigate(RegionTown, RegionSewers, Point{X: 3, Y: 26})
	assert.NoError(t, err)
	_, err = m.Navigate(RegionTown, RegionSewers, Point{X: 15, Y: 15})
	assert.ErrorIs(t, err, ErrNotConnected)

	assert.Equal(t, RegionCrypt, m.Discover(RegionGraveyard, Point{X: 36, Y: 36}))
	assert.Equal(t, RegionDespise, m.Discover(RegionWilderness, Point{X: 93, Y: 93}))

	// A hidden entrance opens only from the map it is drawn on.
	_, err = m.Navigate(RegionWilderness, RegionSewers, Point{X: 2, Y: 25})
	assert.ErrorIs(t, err, ErrNotConnected)
	_, err = m.Navigate(RegionGraveyard, RegionSewers, Point{X: 3, Y: 26})
	assert.ErrorIs(t, err, ErrNotConnected)
	_, err = m.Navigate(RegionArena, RegionCrypt, Point{X: 35, Y: 35})
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Equal(t, RegionNone, m.Discover(RegionWilderness, Point{X: 3, Y: 26}))

	arena, _ := m.GetRegion(RegionArena)
	assert.True(t, arena.Type().Has(TypePvP))
}

func TestBuildWorld_FailureLeavesRegistryPopulated(t *testing.T) {
	reg, _ := newTestRegistry()
	recipes := []*Recipe{{
		ID:          "Graveyard",
		Types:       []string{"open_world"},
		Map:         &yamlMap{Width: 10, Length: 10},
		Connections: []string{"Crypt"},
		Spawners:    []yamlSpawner{{X: 1, Y: 1, Limit: 2, Creatures: []string{"undead"}}},
		Zones:       []yamlZone{{Parent: "Crypt", X: 5, Y: 5}},
	}}

	m, err := BuildWorld(context.Background(), recipes, reg, zaptest.NewLogger(t))
	require.ErrorIs(t, err, ErrUnknownRegion)
	assert.Nil(t, m)
	assert.Equal(t, 1, reg.SpawnerCount(), "inserts are not rolled back")
	assert.Equal(t, 1, reg.ZoneCount())
}
