package visgraph

import (
	"errors"
	"fmt"
	"time"

	"visibility-planner/internal/geometry"
)

// ErrNodeConflict is returned when a node id is registered twice at different positions
var ErrNodeConflict = errors.New("node already registered at a different position")

// Class tags why an edge exists
type Class uint8

const (
	Boundary Class = iota + 1
	Visibility
)

func (c Class) String() string {
	switch c {
	case Boundary:
		return "boundary"
	case Visibility:
		return "visibility"
	default:
		return fmt.Sprintf("class(%d)", uint8(c))
	}
}

// MarshalText encodes the class by name
func (c Class) MarshalText() ([]byte, error) {
	switch c {
	case Boundary, Visibility:
		return []byte(c.String()), nil
	}
	return nil, fmt.Errorf("unknown edge class %d", uint8(c))
}

// UnmarshalText accepts "boundary" or "visibility"
func (c *Class) UnmarshalText(text []byte) error {
	switch string(text) {
	case "boundary":
		*c = Boundary
	case "visibility":
		*c = Visibility
	default:
		return fmt.Errorf("unknown edge class %q", text)
	}
	return nil
}

// Edge is an undirected connection. A always sorts before B.
type Edge struct {
	A, B  NodeID
	Class Class
}

type edgeKey struct {
	a, b NodeID
}

func keyOf(a, b NodeID) edgeKey {
	if b.Less(a) {
		a, b = b, a
	}
	return edgeKey{a: a, b: b}
}

// Stats records the work done while building a graph
type Stats struct {
	Corners         int
	BoundaryEdges   int
	PairsTested     int
	SegmentTests    int64
	VisibilityEdges int
	Elapsed         time.Duration
}

// Graph holds node positions and classified undirected edges.
// It is populated once by Build and read-only afterwards.
type Graph struct {
	positions map[NodeID]geometry.Point
	nodes     []NodeID
	edges     []Edge
	edgeIndex map[edgeKey]int
	adjacency map[NodeID][]NodeID
	stats     Stats
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		positions: make(map[NodeID]geometry.Point),
		edgeIndex: make(map[edgeKey]int),
		adjacency: make(map[NodeID][]NodeID),
	}
}

// AddNode registers id at position p. Registering the same id at the same
// position again is a no-op.
func (g *Graph) AddNode(id NodeID, p geometry.Point) error {
	if existing, ok := g.positions[id]; ok {
		if existing != p {
			return fmt.Errorf("%w: %v at %v, requested %v", ErrNodeConflict, id, existing, p)
		}
		return nil
	}
	g.positions[id] = p
	g.nodes = append(g.nodes, id)
	return nil
}

// AddEdge connects a and b. It reports false and changes nothing when either
// endpoint is unknown, when a == b, or when the pair is already connected.
// An existing edge keeps its original class.
func (g *Graph) AddEdge(a, b NodeID, class Class) bool {
	if a == b || !g.HasNode(a) || !g.HasNode(b) {
		return false
	}
	key := keyOf(a, b)
	if _, exists := g.edgeIndex[key]; exists {
		return false
	}

	g.edgeIndex[key] = len(g.edges)
	g.edges = append(g.edges, Edge{A: key.a, B: key.b, Class: class})
	g.adjacency[a] = append(g.adjacency[a], b)
	g.adjacency[b] = append(g.adjacency[b], a)
	return true
}

// HasNode reports whether id is registered
func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.positions[id]
	return ok
}

// Position returns the position of id
func (g *Graph) Position(id NodeID) (geometry.Point, bool) {
	p, ok := g.positions[id]
	return p, ok
}

// MustPosition is Position for ids the caller registered itself; an unknown
// id is a programming error and panics.
func (g *Graph) MustPosition(id NodeID) geometry.Point {
	p, ok := g.positions[id]
	if !ok {
		panic(fmt.Sprintf("visgraph: node %v is not registered", id))
	}
	return p
}

// HasEdge reports whether a and b are connected, in either order
func (g *Graph) HasEdge(a, b NodeID) bool {
	_, ok := g.edgeIndex[keyOf(a, b)]
	return ok
}

// EdgeClass returns the class of the edge between a and b
func (g *Graph) EdgeClass(a, b NodeID) (Class, bool) {
	i, ok := g.edgeIndex[keyOf(a, b)]
	if !ok {
		return 0, false
	}
	return g.edges[i].Class, true
}

// Nodes returns node ids in registration order
func (g *Graph) Nodes() []NodeID {
	return append([]NodeID(nil), g.nodes...)
}

// Edges returns edges in insertion order
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// EdgeSet returns the edges keyed by endpoint pair, for order-independent comparison
func (g *Graph) EdgeSet() map[[2]NodeID]Class {
	set := make(map[[2]NodeID]Class, len(g.edges))
	for _, e := range g.edges {
		set[[2]NodeID{e.A, e.B}] = e.Class
	}
	return set
}

// Neighbors returns the nodes connected to id, in edge insertion order
func (g *Graph) Neighbors(id NodeID) []NodeID {
	return append([]NodeID(nil), g.adjacency[id]...)
}

// NodeCount returns the number of registered nodes
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges of both classes
func (g *Graph) EdgeCount() int { return len(g.edges) }

// CountByClass returns how many edges carry the given class
func (g *Graph) CountByClass(class Class) int {
	n := 0
	for _, e := range g.edges {
		if e.Class == class {
			n++
		}
	}
	return n
}

// Stats returns the build statistics; zero for graphs not made by Build
func (g *Graph) Stats() Stats {
	return g.stats
}
