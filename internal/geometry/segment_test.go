package geometry

import "testing"

func pt(x, y int64) Point { return Point{X: x, Y: y} }

func seg(x1, y1, x2, y2 int64) Segment { return Segment{P1: pt(x1, y1), P2: pt(x2, y2)} }

func TestOrient(t *testing.T) {
	tests := []struct {
		name    string
		p, q, r Point
		want    Orientation
	}{
		{"left turn", pt(0, 0), pt(4, 0), pt(4, 4), CounterClockwise},
		{"right turn", pt(0, 0), pt(4, 0), pt(4, -4), Clockwise},
		{"straight", pt(0, 0), pt(2, 2), pt(5, 5), Collinear},
		{"backtrack", pt(0, 0), pt(2, 2), pt(-1, -1), Collinear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Orient(tt.p, tt.q, tt.r); got != tt.want {
				t.Errorf("Orient(%v, %v, %v) = %v, want %v", tt.p, tt.q, tt.r, got, tt.want)
			}
		})
	}
}

func TestCross_LargeCoordinatesDoNotOverflow(t *testing.T) {
	p := pt(-MaxCoord, -MaxCoord)
	q := pt(MaxCoord, -MaxCoord)
	r := pt(MaxCoord, MaxCoord)

	// (2M)*(2M) - 0
	want := int64(4) * MaxCoord * MaxCoord
	if got := Cross(p, q, r); got != want {
		t.Fatalf("Cross = %d, want %d", got, want)
	}
}

func TestBoundingBoxesOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b Segment
		want bool
	}{
		{"disjoint on x", seg(0, 0, 1, 1), seg(2, 0, 3, 1), false},
		{"disjoint on y", seg(0, 0, 1, 1), seg(0, 2, 1, 3), false},
		{"touching corner", seg(0, 0, 1, 1), seg(1, 1, 2, 5), true},
		{"touching side", seg(0, 0, 0, 4), seg(0, 2, 3, 2), true},
		{"crossing", seg(0, 0, 4, 4), seg(0, 4, 4, 0), true},
		{"boxes overlap but segments do not", seg(0, 0, 4, 4), seg(3, 0, 4, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BoundingBoxesOverlap(tt.a, tt.b); got != tt.want {
				t.Errorf("BoundingBoxesOverlap = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Segment
		want bool
	}{
		{"proper crossing", seg(0, 0, 4, 4), seg(0, 4, 4, 0), true},
		{"shared endpoint", seg(0, 0, 2, 0), seg(2, 0, 2, 2), true},
		{"t-junction", seg(0, 0, 4, 0), seg(2, 0, 2, 3), true},
		{"near miss", seg(0, 0, 4, 0), seg(2, 1, 2, 3), false},
		{"boxes overlap but no contact", seg(0, 0, 4, 4), seg(3, 0, 4, 1), false},
		{"parallel apart", seg(0, 0, 4, 0), seg(0, 1, 4, 1), false},
		{"parallel diagonal apart", seg(0, 0, 4, 4), seg(1, 0, 5, 4), false},
		{"collinear overlap", seg(0, 0, 4, 0), seg(2, 0, 6, 0), true},
		{"collinear contained", seg(0, 0, 6, 6), seg(2, 2, 3, 3), true},
		{"collinear touching ends", seg(0, 0, 2, 2), seg(2, 2, 5, 5), true},
		{"collinear gap", seg(0, 0, 2, 2), seg(3, 3, 5, 5), false},
		{"vertical collinear overlap", seg(1, 0, 1, 5), seg(1, 4, 1, 9), true},
		{"point on segment", seg(3, 3, 3, 3), seg(0, 0, 6, 6), true},
		{"point off segment", seg(3, 4, 3, 4), seg(0, 0, 6, 6), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("%v x %v = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// order of arguments and of endpoints must not matter
			if got := tt.b.Reversed().Intersects(tt.a.Reversed()); got != tt.want {
				t.Errorf("reversed %v x %v = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestBlocks(t *testing.T) {
	tests := []struct {
		name      string
		candidate Segment
		edge      Segment
		want      bool
	}{
		{"proper crossing", seg(0, 0, 4, 4), seg(0, 4, 4, 0), true},
		{"no contact", seg(0, 0, 1, 0), seg(5, 5, 6, 6), false},
		{"shared endpoint only", seg(4, 4, 0, 0), seg(4, 4, 6, 4), false},
		{"same segment", seg(4, 4, 6, 4), seg(4, 4, 6, 4), false},
		{"same segment reversed", seg(6, 4, 4, 4), seg(4, 4, 6, 4), false},
		{"touches edge endpoint that is not shared", seg(0, 0, 10, 10), seg(4, 4, 6, 4), true},
		{"passes through edge interior at candidate end", seg(0, 2, 2, 2), seg(2, 0, 2, 4), true},
		{"collinear continuation away", seg(0, 0, 2, 0), seg(2, 0, 4, 0), false},
		{"collinear overlap past shared endpoint", seg(0, 0, 4, 0), seg(0, 0, 2, 0), true},
		{"collinear overlap, other orientation", seg(4, 0, 0, 0), seg(2, 0, 4, 0), true},
		{"collinear overlap without shared endpoint", seg(0, 0, 5, 0), seg(2, 0, 3, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Blocks(tt.candidate, tt.edge); got != tt.want {
				t.Errorf("Blocks(%v, %v) = %v, want %v", tt.candidate, tt.edge, got, tt.want)
			}
			if got := Blocks(tt.candidate.Reversed(), tt.edge); got != tt.want {
				t.Errorf("Blocks(reversed %v, %v) = %v, want %v", tt.candidate, tt.edge, got, tt.want)
			}
		})
	}
}
