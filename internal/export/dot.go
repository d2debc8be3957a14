package export

import (
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"

	"visibility-planner/internal/visgraph"
)

// dotNode carries a visibility-graph node through gonum's DOT encoder
type dotNode struct {
	id    int64
	name  string
	attrs []encoding.Attribute
}

func (n dotNode) ID() int64                        { return n.id }
func (n dotNode) DOTID() string                    { return n.name }
func (n dotNode) Attributes() []encoding.Attribute { return n.attrs }

// dotEdge keeps the edge class for the renderer's styling
type dotEdge struct {
	from, to graph.Node
	class    visgraph.Class
}

func (e dotEdge) From() graph.Node         { return e.from }
func (e dotEdge) To() graph.Node           { return e.to }
func (e dotEdge) ReversedEdge() graph.Edge { return dotEdge{from: e.to, to: e.from, class: e.class} }
func (e dotEdge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "class", Value: e.class.String()}}
}

// DOT encodes the graph in Graphviz format. Nodes carry kind and pos
// attributes and edges carry their class; styling is left to the renderer.
func DOT(g *visgraph.Graph, name string) ([]byte, error) {
	ug := simple.NewUndirectedGraph()
	nodes := make(map[visgraph.NodeID]dotNode, g.NodeCount())

	for i, id := range g.Nodes() {
		p := g.MustPosition(id)
		n := dotNode{
			id:   int64(i),
			name: id.String(),
			attrs: []encoding.Attribute{
				{Key: "kind", Value: id.Kind.String()},
				{Key: "pos", Value: strconv.Quote(fmt.Sprintf("%d,%d!", p.X, p.Y))},
			},
		}
		nodes[id] = n
		ug.AddNode(n)
	}

	for _, e := range g.Edges() {
		ug.SetEdge(dotEdge{from: nodes[e.A], to: nodes[e.B], class: e.Class})
	}

	data, err := dot.Marshal(ug, name, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal dot: %w", err)
	}
	return data, nil
}

// WriteDOT writes DOT(g, name)
func WriteDOT(w io.Writer, g *visgraph.Graph, name string) error {
	data, err := DOT(g, name)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write dot: %w", err)
	}
	return nil
}
