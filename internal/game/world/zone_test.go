package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var tenByTen = Dimensions{Width: 10, Length: 10}

func TestNewZone_ShiftsOriginBackInsideMap(t *testing.T) {
	z, err := NewZone("z", RegionTown, RegionSewers, Point{X: 8, Y: 1}, tenByTen, Dimensions{Width: 5, Length: 5})
	require.NoError(t, err)
	assert.Equal(t, Point{X: 5, Y: 1}, z.Location())
	assert.Equal(t, Dimensions{Width: 5, Length: 5}, z.Size())
}

func TestNewZone_ClampsYAxis(t *testing.T) {
	z, err := NewZone("z", RegionTown, RegionSewers, Point{X: 0, Y: 9}, tenByTen, Dimensions{Width: 3, Length: 4})
	require.NoError(t, err)
	assert.Equal(t, Point{X: 0, Y: 6}, z.Location())
}

func TestNewZone_CapsOversizedZoneToMap(t *testing.T) {
	z, err := NewZone("z", RegionTown, RegionSewers, Point{X: 3, Y: 3}, tenByTen, Dimensions{Width: 12, Length: 2})
	require.NoError(t, err)
	assert.Equal(t, 10, z.Size().Width)
	assert.Equal(t, 0, z.Location().X)
}

func TestNewZone_DefaultsNonPositiveSize(t *testing.T) {
	z, err := NewZone("z", RegionTown, RegionSewers, Point{X: 1, Y: 1}, tenByTen, Dimensions{})
	require.NoError(t, err)
	assert.Equal(t, DefaultZoneSize, z.Size())
}

func TestNewZone_NegativeSuggestionMovesToOrigin(t *testing.T) {
	z, err := NewZone("z", RegionTown, RegionSewers, Point{X: -4, Y: -1}, tenByTen, Dimensions{Width: 2, Length: 2})
	require.NoError(t, err)
	assert.Equal(t, Point{}, z.Location())
}

func TestNewZone_RejectsCombinedParent(t *testing.T) {
	_, err := NewZone("z", RegionTown, RegionDungeons, Point{}, tenByTen, DefaultZoneSize)
	assert.ErrorIs(t, err, ErrInvalidRegion)

	_, err = NewZone("z", RegionTown, RegionNone, Point{}, tenByTen, DefaultZoneSize)
	assert.ErrorIs(t, err, ErrInvalidRegion)
}

func TestZone_Accessors(t *testing.T) {
	z, err := NewZone("zone-1", RegionWilderness, RegionDespise, Point{X: 2, Y: 2}, tenByTen, DefaultZoneSize)
	require.NoError(t, err)
	assert.Equal(t, "zone-1", z.ID())
	assert.Equal(t, RegionWilderness, z.Owner())
	assert.Equal(t, RegionDespise, z.Parent())
}

func TestZone_InArea(t *testing.T) {
	z, err := NewZone("z", RegionTown, RegionSewers, Point{X: 2, Y: 2}, tenByTen, Dimensions{Width: 3, Length: 3})
	require.NoError(t, err)
	assert.True(t, z.InArea(Point{X: 2, Y: 2}))
	assert.True(t, z.InArea(Point{X: 4, Y: 4}))
	assert.False(t, z.InArea(Point{X: 5, Y: 4}))
	assert.False(t, z.InArea(Point{X: 1, Y: 3}))
}

// The y bound uses the zone's width. A wide, short zone therefore covers rows
// past its length.
func TestZone_InAreaMeasuresYWithWidth(t *testing.T) {
	z, err := NewZone("z", RegionTown, RegionSewers, Point{X: 0, Y: 0}, tenByTen, Dimensions{Width: 4, Length: 2})
	require.NoError(t, err)
	assert.True(t, z.InArea(Point{X: 0, Y: 3}))
	assert.False(t, z.InArea(Point{X: 0, Y: 4}))
}

func TestPropertyZoneAlwaysInsideMap(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		mapSize := mapDimensions(
			rapid.IntRange(0, 64).Draw(t, "mapW"),
			rapid.IntRange(0, 64).Draw(t, "mapL"),
		)
		suggested := Point{
			X: rapid.IntRange(-10, 100).Draw(t, "x"),
			Y: rapid.IntRange(-10, 100).Draw(t, "y"),
		}
		size := Dimensions{
			Width:  rapid.IntRange(-2, 80).Draw(t, "w"),
			Length: rapid.IntRange(-2, 80).Draw(t, "l"),
		}

		z, err := NewZone("z", RegionWilderness, RegionDespise, suggested, mapSize, size)
		require.NoError(t, err)

		loc, sz := z.Location(), z.Size()
		assert.True(t, mapSize.Contains(loc), "origin %s outside %s", loc, mapSize)
		assert.True(t, mapSize.Contains(Point{X: loc.X + sz.Width - 1, Y: loc.Y + sz.Length - 1}),
			"far corner outside %s for zone at %s size %s", mapSize, loc, sz)
	})
}

func TestNewZone_RejectsReservedParent(t *testing.T) {
	_, err := NewZone("z", RegionTown, regionReserved, Point{}, tenByTen, DefaultZoneSize)
	assert.ErrorIs(t, err, ErrInvalidRegion)
}
