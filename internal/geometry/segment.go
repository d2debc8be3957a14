package geometry

// Segment is a closed line segment between two points
type Segment struct {
	P1, P2 Point
}

// Rect is an axis-aligned bounding box, inclusive on every side
type Rect struct {
	MinX, MinY, MaxX, MaxY int64
}

// Bounds returns the segment's bounding box
func (s Segment) Bounds() Rect {
	return Rect{
		MinX: min(s.P1.X, s.P2.X),
		MinY: min(s.P1.Y, s.P2.Y),
		MaxX: max(s.P1.X, s.P2.X),
		MaxY: max(s.P1.Y, s.P2.Y),
	}
}

// Degenerate reports whether both endpoints coincide
func (s Segment) Degenerate() bool {
	return s.P1 == s.P2
}

// Reversed returns the segment with its endpoints swapped
func (s Segment) Reversed() Segment {
	return Segment{P1: s.P2, P2: s.P1}
}

// Intersects reports whether s and other share at least one point
func (s Segment) Intersects(other Segment) bool {
	return SegmentsIntersect(s.P1, s.P2, other.P1, other.P2)
}

// Overlaps reports whether two boxes share at least one point
func (r Rect) Overlaps(other Rect) bool {
	return r.MinX <= other.MaxX && other.MinX <= r.MaxX &&
		r.MinY <= other.MaxY && other.MinY <= r.MaxY
}

// Contains reports whether p lies inside or on the box
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

func (r Rect) double() Rect {
	return Rect{MinX: 2 * r.MinX, MinY: 2 * r.MinY, MaxX: 2 * r.MaxX, MaxY: 2 * r.MaxY}
}

// BoundingBoxesOverlap is the cheap pre-filter run before the exact test.
// Touching boxes overlap.
func BoundingBoxesOverlap(a, b Segment) bool {
	return a.Bounds().Overlaps(b.Bounds())
}

// OnSegment checks if point q lies on segment s
func OnSegment(s Segment, q Point) bool {
	return Cross(s.P1, s.P2, q) == 0 && s.Bounds().Contains(q)
}

// SegmentsIntersect checks if the closed segments a1-a2 and b1-b2 intersect.
// Shared endpoints and collinear overlaps count as intersections.
func SegmentsIntersect(a1, a2, b1, b2 Point) bool {
	a := Segment{P1: a1, P2: a2}
	b := Segment{P1: b1, P2: b2}

	if !BoundingBoxesOverlap(a, b) {
		return false
	}

	if a.Degenerate() {
		return OnSegment(b, a1)
	}
	if b.Degenerate() {
		return OnSegment(a, b1)
	}

	da := a2.sub(a1)
	db := b2.sub(b1)
	det := da.X*db.Y - da.Y*db.X

	if det != 0 {
		// a1 + t*da = b1 + u*db, solved by Cramer's rule; t and u are compared
		// as numerators over det so nothing is divided.
		w := b1.sub(a1)
		tNum := w.X*db.Y - w.Y*db.X
		uNum := w.X*da.Y - w.Y*da.X
		return unitInterval(tNum, det) && unitInterval(uNum, det)
	}

	// Parallel: only collinear segments can meet
	if Cross(a1, a2, b1) != 0 || Cross(a1, a2, b2) != 0 {
		return false
	}

	// Collinear ranges overlap iff their boxes overlap, which already holds
	return true
}

// unitInterval reports whether num/den lies in [0, 1]; den must be non-zero
func unitInterval(num, den int64) bool {
	if den > 0 {
		return num >= 0 && num <= den
	}
	return num <= 0 && num >= den
}

// Blocks reports whether edge obstructs the line of sight along candidate.
// Touching at an endpoint the two segments share does not block; any other
// common point does, including a collinear overlap that runs past the shared
// endpoint. An edge identical to the candidate never blocks it.
func Blocks(candidate, edge Segment) bool {
	if !candidate.Intersects(edge) {
		return false
	}

	if candidate == edge || candidate == edge.Reversed() {
		return false
	}

	var shared, cOther, eOther Point
	switch {
	case candidate.P1 == edge.P1:
		shared, cOther, eOther = candidate.P1, candidate.P2, edge.P2
	case candidate.P1 == edge.P2:
		shared, cOther, eOther = candidate.P1, candidate.P2, edge.P1
	case candidate.P2 == edge.P1:
		shared, cOther, eOther = candidate.P2, candidate.P1, edge.P2
	case candidate.P2 == edge.P2:
		shared, cOther, eOther = candidate.P2, candidate.P1, edge.P1
	default:
		return true
	}

	// Non-collinear segments sharing an endpoint meet only there
	if Cross(shared, cOther, eOther) != 0 {
		return false
	}

	return dot(cOther.sub(shared), eOther.sub(shared)) > 0
}
