package world

import "fmt"

// MinMapAxis is the smallest width or length a spawnable map may have.
const MinMapAxis = 10

// DefaultZoneSize is the zone size used when none is requested.
var DefaultZoneSize = Dimensions{Width: 2, Length: 2}

// InvalidPoint signals that a region has no open-world entry point.
var InvalidPoint = Point{X: -1, Y: -1}

// Point is an integer map coordinate.
type Point struct {
	X int
	Y int
}

// IsValid reports whether both coordinates are non-negative.
func (p Point) IsValid() bool {
	return p.X >= 0 && p.Y >= 0
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Dimensions is a 2-D integer size.
type Dimensions struct {
	Width  int
	Length int
}

// MaxX returns the largest valid x coordinate.
func (d Dimensions) MaxX() int { return d.Width - 1 }

// MaxY returns the largest valid y coordinate.
func (d Dimensions) MaxY() int { return d.Length - 1 }

// Contains reports whether p lies within [0, MaxX] x [0, MaxY].
func (d Dimensions) Contains(p Point) bool {
	return p.X >= 0 && p.X <= d.MaxX() && p.Y >= 0 && p.Y <= d.MaxY()
}

// Center returns the midpoint of the map.
func (d Dimensions) Center() Point {
	return Point{X: d.MaxX() / 2, Y: d.MaxY() / 2}
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Length)
}

// mapDimensions returns width and length raised to MinMapAxis.
func mapDimensions(width, length int) Dimensions {
	return Dimensions{Width: max(width, MinMapAxis), Length: max(length, MinMapAxis)}
}
