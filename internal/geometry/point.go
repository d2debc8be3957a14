package geometry

import (
	"fmt"
	"math"
)

// MaxCoord bounds the absolute value of every input coordinate. Doubled
// coordinates stay within 2^29, so coordinate differences stay within 2^30
// and every cross product fits in an int64 without overflow.
const MaxCoord = 1 << 28

// Point is a position in input coordinates
type Point struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// InRange reports whether both coordinates lie within ±MaxCoord
func (p Point) InRange() bool {
	return p.X >= -MaxCoord && p.X <= MaxCoord && p.Y >= -MaxCoord && p.Y <= MaxCoord
}

// Distance calculates Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	dx := float64(p.X - other.X)
	dy := float64(p.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

func (p Point) sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

func (p Point) double() Point {
	return Point{X: 2 * p.X, Y: 2 * p.Y}
}

// Orientation is the turn direction of an ordered point triple
type Orientation int

const (
	Collinear Orientation = iota
	CounterClockwise
	Clockwise
)

func (o Orientation) String() string {
	switch o {
	case CounterClockwise:
		return "counter-clockwise"
	case Clockwise:
		return "clockwise"
	default:
		return "collinear"
	}
}

// Cross returns the z component of (q-p) x (r-p)
func Cross(p, q, r Point) int64 {
	return (q.X-p.X)*(r.Y-p.Y) - (q.Y-p.Y)*(r.X-p.X)
}

// Orient classifies the turn p -> q -> r
func Orient(p, q, r Point) Orientation {
	switch c := Cross(p, q, r); {
	case c > 0:
		return CounterClockwise
	case c < 0:
		return Clockwise
	default:
		return Collinear
	}
}

func dot(a, b Point) int64 {
	return a.X*b.X + a.Y*b.Y
}
