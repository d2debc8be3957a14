package geometry

import "testing"

func TestEdgeIndex_CandidatesCoverExactHits(t *testing.T) {
	obstacles := []Obstacle{
		square(0, 0, 2),
		square(10, 0, 3),
		{Corners: []Point{pt(5, 5), pt(9, 6), pt(6, 9)}},
		square(-8, -8, 1),
	}
	idx := NewEdgeIndex(obstacles)

	if idx.Len() != 4+4+3+4 {
		t.Fatalf("expected 15 indexed edges, got %d", idx.Len())
	}

	queries := []Segment{
		seg(0, 0, 13, 3),
		seg(2, 2, 10, 0),
		seg(-8, -8, 6, 9),
		seg(1, 5, 1, 5),
		seg(2, 0, 10, 0), // horizontal, touching two squares
		seg(100, 100, 200, 200),
	}

	for _, q := range queries {
		candidates := make(map[IndexedEdge]bool)
		for _, e := range idx.Candidates(q) {
			candidates[e] = true
		}
		for _, e := range idx.All() {
			if BoundingBoxesOverlap(q, e.Segment) && !candidates[e] {
				t.Errorf("query %v: edge %d/%d overlaps but was not returned", q, e.Obstacle, e.Index)
			}
		}
	}
}

func TestEdgeIndex_CandidatesInInsertionOrder(t *testing.T) {
	obstacles := []Obstacle{square(0, 0, 4), square(5, 0, 4)}
	idx := NewEdgeIndex(obstacles)

	got := idx.Candidates(seg(-1, 2, 10, 2))

	if len(got) == 0 {
		t.Fatal("expected candidates")
	}
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		if prev.Obstacle > cur.Obstacle || (prev.Obstacle == cur.Obstacle && prev.Index >= cur.Index) {
			t.Fatalf("candidates out of order at %d: %+v then %+v", i, prev, cur)
		}
	}
}

func TestEdgeIndex_Empty(t *testing.T) {
	idx := NewEdgeIndex(nil)

	if got := idx.Candidates(seg(0, 0, 1, 1)); len(got) != 0 {
		t.Errorf("expected no candidates, got %d", len(got))
	}
}
