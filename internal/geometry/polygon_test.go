package geometry

import (
	"errors"
	"testing"
)

func square(x, y, size int64) Obstacle {
	return Obstacle{Corners: []Point{pt(x, y), pt(x+size, y), pt(x+size, y+size), pt(x, y+size)}}
}

func TestObstacleEdges_ClosedCycle(t *testing.T) {
	o := square(4, 4, 2)

	edges := o.Edges()

	if len(edges) != 4 {
		t.Fatalf("expected 4 edges, got %d", len(edges))
	}
	for i, e := range edges {
		next := edges[(i+1)%len(edges)]
		if e.P2 != next.P1 {
			t.Errorf("edge %d ends at %v but edge %d starts at %v", i, e.P2, (i+1)%len(edges), next.P1)
		}
	}
	if edges[3].P2 != o.Corners[0] {
		t.Errorf("last edge should wrap to the first corner, got %v", edges[3].P2)
	}
}

func TestObstacleBounds(t *testing.T) {
	o := Obstacle{Corners: []Point{pt(3, -1), pt(7, 2), pt(-2, 5)}}

	got := o.Bounds()

	want := Rect{MinX: -2, MinY: -1, MaxX: 7, MaxY: 5}
	if got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
}

func TestContainsStrict(t *testing.T) {
	// L-shaped, concave at (2,2)
	l := Obstacle{Corners: []Point{pt(0, 0), pt(4, 0), pt(4, 2), pt(2, 2), pt(2, 4), pt(0, 4)}}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside lower arm", pt(3, 1), true},
		{"inside upper arm", pt(1, 3), true},
		{"in the notch", pt(3, 3), false},
		{"on an edge", pt(2, 0), false},
		{"on a corner", pt(4, 2), false},
		{"far outside", pt(10, 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.ContainsStrict(tt.p); got != tt.want {
				t.Errorf("ContainsStrict(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestContainsDoubled_Midpoints(t *testing.T) {
	o := square(4, 4, 2)

	// midpoint of the diagonal (4,4)-(6,6) is (5,5)
	if !o.ContainsDoubled(Point{X: 10, Y: 10}) {
		t.Error("expected the diagonal midpoint to be inside")
	}
	// midpoint of the boundary edge (4,4)-(6,4) is (5,4)
	if o.ContainsDoubled(Point{X: 10, Y: 8}) {
		t.Error("expected a boundary midpoint to be outside")
	}
	// half-integer point just inside the corner
	if !o.ContainsDoubled(Point{X: 9, Y: 9}) {
		t.Error("expected (4.5,4.5) to be inside")
	}
}

func TestValidateScene(t *testing.T) {
	tests := []struct {
		name      string
		start     Point
		obstacles []Obstacle
		wantErr   error
		wantObs   int
		wantCorn  int
	}{
		{
			name:      "valid",
			obstacles: []Obstacle{square(4, 4, 2)},
		},
		{
			name:      "too few corners",
			obstacles: []Obstacle{square(4, 4, 2), {Corners: []Point{pt(0, 0), pt(1, 1)}}},
			wantErr:   ErrTooFewCorners,
			wantObs:   1,
			wantCorn:  -1,
		},
		{
			name:      "duplicate corner",
			obstacles: []Obstacle{{Corners: []Point{pt(0, 0), pt(1, 0), pt(1, 1), pt(1, 0)}}},
			wantErr:   ErrDuplicateCorner,
			wantObs:   0,
			wantCorn:  3,
		},
		{
			name:      "corner out of range",
			obstacles: []Obstacle{{Corners: []Point{pt(0, 0), pt(MaxCoord+1, 0), pt(1, 1)}}},
			wantErr:   ErrCoordinateRange,
			wantObs:   0,
			wantCorn:  1,
		},
		{
			name:     "start out of range",
			start:    pt(0, -MaxCoord-1),
			wantErr:  ErrCoordinateRange,
			wantCorn: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScene(tt.start, pt(10, 10), tt.obstacles)

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			var inputErr *InputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("expected *InputError, got %T", err)
			}
			if inputErr.Obstacle != tt.wantObs || inputErr.Corner != tt.wantCorn {
				t.Errorf("error located at obstacle %d corner %d, want %d/%d",
					inputErr.Obstacle, inputErr.Corner, tt.wantObs, tt.wantCorn)
			}
		})
	}
}
