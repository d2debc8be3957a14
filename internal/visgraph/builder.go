package visgraph

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"visibility-planner/internal/geometry"
)

// ErrSceneTooLarge is returned when the corner count exceeds Options.MaxCorners
var ErrSceneTooLarge = errors.New("too many obstacle corners")

// Options tunes Build. The zero value connects start and goal, rejects lines
// through obstacle interiors, uses the edge index and runs on one goroutine.
type Options struct {
	// SkipEndpoints leaves start and goal out of the visibility pass, so
	// only corners are tested against each other.
	SkipEndpoints bool

	// AllowInterior turns off the interior test: two corners of the same
	// obstacle may then see each other through it when no edge is crossed.
	AllowInterior bool

	// NoIndex tests every boundary edge instead of querying the R-tree.
	NoIndex bool

	// Workers > 1 spreads the visibility pass over that many goroutines.
	Workers int

	// MaxCorners rejects larger scenes with ErrSceneTooLarge; 0 means no limit.
	MaxCorners int

	// Logger receives progress lines; nil keeps Build quiet.
	Logger *log.Logger
}

// Builder owns a graph under construction
type Builder struct {
	obstacles []geometry.Obstacle
	index     *geometry.EdgeIndex
	graph     *Graph
	opts      Options

	segmentTests atomic.Int64
}

// Build constructs the visibility graph for a scene. Invalid input yields an
// error and no graph.
func Build(start, goal geometry.Point, obstacles []geometry.Obstacle, opts Options) (*Graph, error) {
	startTime := time.Now()

	b, err := NewBuilder(start, goal, obstacles, opts)
	if err != nil {
		return nil, err
	}
	b.ConnectVisible()

	b.graph.stats.Elapsed = time.Since(startTime)
	b.logf("   ⏱️  Build time: %.3f seconds", b.graph.stats.Elapsed.Seconds())
	return b.graph, nil
}

// NewBuilder validates the scene, registers start, goal and every corner,
// and adds each obstacle's boundary cycle.
func NewBuilder(start, goal geometry.Point, obstacles []geometry.Obstacle, opts Options) (*Builder, error) {
	if err := geometry.ValidateScene(start, goal, obstacles); err != nil {
		return nil, err
	}

	totalCorners := 0
	for _, o := range obstacles {
		totalCorners += o.Len()
	}
	if opts.MaxCorners > 0 && totalCorners > opts.MaxCorners {
		return nil, fmt.Errorf("%w: %d corners, limit %d", ErrSceneTooLarge, totalCorners, opts.MaxCorners)
	}

	b := &Builder{
		obstacles: obstacles,
		index:     geometry.NewEdgeIndex(obstacles),
		graph:     NewGraph(),
		opts:      opts,
	}
	b.logf("🗺️  Building visibility graph: %d obstacles, %d corners", len(obstacles), totalCorners)

	if err := b.registerNodes(start, goal); err != nil {
		return nil, err
	}
	b.connectBoundaries()

	b.graph.stats.Corners = totalCorners
	return b, nil
}

func (b *Builder) registerNodes(start, goal geometry.Point) error {
	if err := b.graph.AddNode(StartID, start); err != nil {
		return err
	}
	if err := b.graph.AddNode(GoalID, goal); err != nil {
		return err
	}
	for oi, o := range b.obstacles {
		for ci, c := range o.Corners {
			if err := b.graph.AddNode(CornerID(oi, ci), c); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Builder) connectBoundaries() {
	added := 0
	for oi, o := range b.obstacles {
		n := o.Len()
		for i := 0; i < n; i++ {
			if b.graph.AddEdge(CornerID(oi, i), CornerID(oi, (i+1)%n), Boundary) {
				added++
			}
		}
	}
	b.graph.stats.BoundaryEdges = added
	b.logf("   Boundary edges: %d", added)
}

// Graph returns the graph being built
func (b *Builder) Graph() *Graph {
	return b.graph
}

// Visible reports whether the straight line between two registered nodes is
// clear of every boundary edge and, unless AllowInterior is set, does not run
// through an obstacle's interior. It panics if either id is unregistered.
func (b *Builder) Visible(u, v NodeID) bool {
	pu := b.graph.MustPosition(u)
	pv := b.graph.MustPosition(v)
	candidate := geometry.Segment{P1: pu, P2: pv}

	var edges []geometry.IndexedEdge
	if b.opts.NoIndex {
		edges = b.index.All()
	} else {
		edges = b.index.Candidates(candidate)
	}

	tests := int64(0)
	defer func() { b.segmentTests.Add(tests) }()

	for _, e := range edges {
		tests++
		if geometry.Blocks(candidate, e.Segment) {
			return false
		}
	}

	if !b.opts.AllowInterior {
		mid := geometry.Point{X: pu.X + pv.X, Y: pu.Y + pv.Y}
		for _, o := range b.obstacles {
			if o.ContainsDoubled(mid) {
				return false
			}
		}
	}

	return true
}

// participants lists the nodes that take part in the visibility pass, in
// registration order.
func (b *Builder) participants() []NodeID {
	var nodes []NodeID
	if !b.opts.SkipEndpoints {
		nodes = append(nodes, StartID, GoalID)
	}
	for oi, o := range b.obstacles {
		for ci := range o.Corners {
			nodes = append(nodes, CornerID(oi, ci))
		}
	}
	return nodes
}

// ConnectVisible tests every pair of participants and adds a visibility edge
// for each clear pair. Edges are inserted by the calling goroutine in pair
// enumeration order regardless of Options.Workers.
func (b *Builder) ConnectVisible() {
	nodes := b.participants()
	totalPairs := len(nodes) * (len(nodes) - 1) / 2
	b.logf("   Checking %d candidate pairs against %d boundary edges...", totalPairs, b.index.Len())

	if totalPairs > 100000 {
		b.logf("⚠️  WARNING: %d pair checks may take a while", totalPairs)
	}

	rows := make([][]int, len(nodes))
	if b.opts.Workers > 1 {
		b.scanParallel(nodes, rows)
	} else {
		checked := 0
		for i := range nodes {
			rows[i] = b.scanRow(nodes, i)
			checked += len(nodes) - 1 - i
			if b.opts.Logger != nil && i > 0 && i%100 == 0 {
				b.logf("   Progress: %d/%d pairs checked...", checked, totalPairs)
			}
		}
	}

	added := 0
	for i, row := range rows {
		for _, j := range row {
			if b.graph.AddEdge(nodes[i], nodes[j], Visibility) {
				added++
			}
		}
	}

	b.graph.stats.PairsTested = totalPairs
	b.graph.stats.VisibilityEdges = added
	b.graph.stats.SegmentTests = b.segmentTests.Load()
	b.logf("   Visibility edges added: %d", added)
}

// scanRow returns the indices j > i whose node is visible from nodes[i]
func (b *Builder) scanRow(nodes []NodeID, i int) []int {
	var visible []int
	for j := i + 1; j < len(nodes); j++ {
		if b.Visible(nodes[i], nodes[j]) {
			visible = append(visible, j)
		}
	}
	return visible
}

// scanParallel fills rows using a pool of workers. Each worker writes only
// the rows it took from the channel; the graph is only read meanwhile.
func (b *Builder) scanParallel(nodes []NodeID, rows [][]int) {
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < b.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rows[i] = b.scanRow(nodes, i)
			}
		}()
	}

	for i := range nodes {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	b.logf("   %d workers finished", b.opts.Workers)
}

func (b *Builder) logf(format string, args ...any) {
	if b.opts.Logger != nil {
		b.opts.Logger.Printf(format, args...)
	}
}
