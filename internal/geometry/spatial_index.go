package geometry

import (
	"slices"

	"github.com/dhconnelly/rtreego"
)

// IndexedEdge is one boundary edge together with where it came from
type IndexedEdge struct {
	Obstacle int
	Index    int
	Segment  Segment
}

// edgeEntry wraps an edge for R-tree storage
type edgeEntry struct {
	seq  int
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *edgeEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// EdgeIndex answers "which boundary edges could touch this segment" queries
type EdgeIndex struct {
	tree  *rtreego.Rtree
	edges []IndexedEdge
}

// NewEdgeIndex indexes every boundary edge of every obstacle
func NewEdgeIndex(obstacles []Obstacle) *EdgeIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node
	idx := &EdgeIndex{tree: tree}

	for oi, o := range obstacles {
		for i, seg := range o.Edges() {
			idx.edges = append(idx.edges, IndexedEdge{Obstacle: oi, Index: i, Segment: seg})
			tree.Insert(&edgeEntry{seq: len(idx.edges) - 1, bbox: toRect(seg.Bounds())})
		}
	}

	return idx
}

// Len returns the number of indexed edges
func (idx *EdgeIndex) Len() int {
	return len(idx.edges)
}

// All returns every edge in obstacle/edge order
func (idx *EdgeIndex) All() []IndexedEdge {
	return idx.edges
}

// Candidates returns the edges whose bounding box may overlap the segment's,
// in obstacle/edge order. The result is a superset of the edges for which
// BoundingBoxesOverlap holds.
func (idx *EdgeIndex) Candidates(seg Segment) []IndexedEdge {
	results := idx.tree.SearchIntersect(toRect(seg.Bounds()))

	seqs := make([]int, 0, len(results))
	for _, item := range results {
		seqs = append(seqs, item.(*edgeEntry).seq)
	}
	slices.Sort(seqs)

	edges := make([]IndexedEdge, len(seqs))
	for i, s := range seqs {
		edges[i] = idx.edges[s]
	}
	return edges
}

// toRect pads an integer box by half a unit on every side, so axis-parallel
// edges get a non-zero extent and boxes that merely touch still intersect.
func toRect(r Rect) rtreego.Rect {
	rect, err := rtreego.NewRect(
		rtreego.Point{float64(r.MinX) - 0.5, float64(r.MinY) - 0.5},
		[]float64{float64(r.MaxX-r.MinX) + 1, float64(r.MaxY-r.MinY) + 1},
	)
	if err != nil {
		// lengths are at least 1
		panic(err)
	}
	return rect
}
