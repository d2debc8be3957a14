package geometry

import (
	"errors"
	"fmt"
)

var (
	ErrTooFewCorners   = errors.New("obstacle needs at least 3 corners")
	ErrDuplicateCorner = errors.New("obstacle repeats a corner")
	ErrCoordinateRange = fmt.Errorf("coordinate outside ±%d", MaxCoord)
)

// InputError pinpoints which part of a scene failed validation
type InputError struct {
	Subject  string // "start", "goal" or "obstacle"
	Obstacle int
	Corner   int // -1 when the error concerns the whole obstacle
	Err      error
}

func (e *InputError) Error() string {
	switch {
	case e.Subject != "obstacle":
		return fmt.Sprintf("%s: %v", e.Subject, e.Err)
	case e.Corner < 0:
		return fmt.Sprintf("obstacle %d: %v", e.Obstacle, e.Err)
	default:
		return fmt.Sprintf("obstacle %d corner %d: %v", e.Obstacle, e.Corner, e.Err)
	}
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Obstacle is a simple polygon given by its corners in traversal order.
// Consecutive corners, including last -> first, form the boundary.
type Obstacle struct {
	Corners []Point `json:"corners"`
}

// Len returns the number of corners
func (o Obstacle) Len() int {
	return len(o.Corners)
}

// Edge returns the boundary edge from corner i to corner i+1 (mod Len)
func (o Obstacle) Edge(i int) Segment {
	n := len(o.Corners)
	return Segment{P1: o.Corners[i], P2: o.Corners[(i+1)%n]}
}

// Edges returns the closed boundary cycle
func (o Obstacle) Edges() []Segment {
	edges := make([]Segment, len(o.Corners))
	for i := range o.Corners {
		edges[i] = o.Edge(i)
	}
	return edges
}

// Bounds computes the axis-aligned bounding box of the corners
func (o Obstacle) Bounds() Rect {
	if len(o.Corners) == 0 {
		return Rect{}
	}

	first := o.Corners[0]
	r := Rect{MinX: first.X, MinY: first.Y, MaxX: first.X, MaxY: first.Y}
	for _, v := range o.Corners[1:] {
		r.MinX = min(r.MinX, v.X)
		r.MinY = min(r.MinY, v.Y)
		r.MaxX = max(r.MaxX, v.X)
		r.MaxY = max(r.MaxY, v.Y)
	}
	return r
}

// ContainsStrict reports whether p lies in the open interior of the obstacle
func (o Obstacle) ContainsStrict(p Point) bool {
	return o.ContainsDoubled(p.double())
}

// ContainsDoubled is ContainsStrict for a point given in doubled coordinates,
// which lets callers test half-integer points such as segment midpoints
// exactly. Points on the boundary are outside.
func (o Obstacle) ContainsDoubled(p Point) bool {
	n := len(o.Corners)
	if n < 3 || !o.Bounds().double().Contains(p) {
		return false
	}

	count := 0
	for i := 0; i < n; i++ {
		v1 := o.Corners[i].double()
		v2 := o.Corners[(i+1)%n].double()

		if OnSegment(Segment{P1: v1, P2: v2}, p) {
			return false
		}

		// Ray cast towards -X
		if (v1.Y > p.Y) != (v2.Y > p.Y) {
			side := -Cross(v1, v2, p)
			if v2.Y > v1.Y {
				if side > 0 {
					count++
				}
			} else if side < 0 {
				count++
			}
		}
	}

	return count%2 == 1
}

// ValidateObstacle checks the corner-count, distinctness and range invariants
// of the obstacle at position index in a scene.
func ValidateObstacle(index int, o Obstacle) error {
	if len(o.Corners) < 3 {
		return &InputError{Subject: "obstacle", Obstacle: index, Corner: -1, Err: ErrTooFewCorners}
	}

	seen := make(map[Point]int, len(o.Corners))
	for i, c := range o.Corners {
		if !c.InRange() {
			return &InputError{Subject: "obstacle", Obstacle: index, Corner: i, Err: ErrCoordinateRange}
		}
		if first, dup := seen[c]; dup {
			return &InputError{
				Subject:  "obstacle",
				Obstacle: index,
				Corner:   i,
				Err:      fmt.Errorf("%w: %v already used by corner %d", ErrDuplicateCorner, c, first),
			}
		}
		seen[c] = i
	}

	return nil
}

// ValidateScene checks start, goal and every obstacle, stopping at the first problem
func ValidateScene(start, goal Point, obstacles []Obstacle) error {
	if !start.InRange() {
		return &InputError{Subject: "start", Corner: -1, Err: ErrCoordinateRange}
	}
	if !goal.InRange() {
		return &InputError{Subject: "goal", Corner: -1, Err: ErrCoordinateRange}
	}
	for i, o := range obstacles {
		if err := ValidateObstacle(i, o); err != nil {
			return err
		}
	}
	return nil
}
