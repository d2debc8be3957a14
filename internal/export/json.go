package export

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"visibility-planner/internal/geometry"
	"visibility-planner/internal/visgraph"
)

// NodeDoc is the serialized form of one node
type NodeDoc struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Obstacle *int   `json:"obstacle,omitempty"`
	Corner   *int   `json:"corner,omitempty"`
	X        int64  `json:"x"`
	Y        int64  `json:"y"`
}

// EdgeDoc is the serialized form of one edge
type EdgeDoc struct {
	From  string         `json:"from"`
	To    string         `json:"to"`
	Class visgraph.Class `json:"class"`
	Cost  float64        `json:"cost"` // Euclidean length
}

// Document is the JSON representation of a visibility graph
type Document struct {
	Nodes []NodeDoc `json:"nodes"`
	Edges []EdgeDoc `json:"edges"`
}

// NewDocument converts a graph into its JSON representation
func NewDocument(g *visgraph.Graph) Document {
	doc := Document{
		Nodes: make([]NodeDoc, 0, g.NodeCount()),
		Edges: make([]EdgeDoc, 0, g.EdgeCount()),
	}

	for _, id := range g.Nodes() {
		p := g.MustPosition(id)
		node := NodeDoc{ID: id.String(), Kind: id.Kind.String(), X: p.X, Y: p.Y}
		if id.Kind == visgraph.KindCorner {
			obstacle, corner := id.Obstacle, id.Corner
			node.Obstacle, node.Corner = &obstacle, &corner
		}
		doc.Nodes = append(doc.Nodes, node)
	}

	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, EdgeDoc{
			From:  e.A.String(),
			To:    e.B.String(),
			Class: e.Class,
			Cost:  g.MustPosition(e.A).Distance(g.MustPosition(e.B)),
		})
	}

	return doc
}

// Graph rebuilds a graph from the document. Node identity comes from the
// kind/obstacle/corner fields; the id strings only link edges to nodes.
func (doc Document) Graph() (*visgraph.Graph, error) {
	g := visgraph.NewGraph()
	ids := make(map[string]visgraph.NodeID, len(doc.Nodes))

	for i, n := range doc.Nodes {
		var id visgraph.NodeID
		switch n.Kind {
		case "start":
			id = visgraph.StartID
		case "goal":
			id = visgraph.GoalID
		case "corner":
			if n.Obstacle == nil || n.Corner == nil {
				return nil, fmt.Errorf("node %d: corner without obstacle/corner index", i)
			}
			id = visgraph.CornerID(*n.Obstacle, *n.Corner)
		default:
			return nil, fmt.Errorf("node %d: unknown kind %q", i, n.Kind)
		}

		if err := g.AddNode(id, geometry.Point{X: n.X, Y: n.Y}); err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		ids[n.ID] = id
	}

	for i, e := range doc.Edges {
		from, ok := ids[e.From]
		if !ok {
			return nil, fmt.Errorf("edge %d: unknown node %q", i, e.From)
		}
		to, ok := ids[e.To]
		if !ok {
			return nil, fmt.Errorf("edge %d: unknown node %q", i, e.To)
		}
		g.AddEdge(from, to, e.Class)
	}

	return g, nil
}

// WriteJSON encodes the graph as an indented JSON document
func WriteJSON(w io.Writer, g *visgraph.Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(g)); err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	return nil
}

// ReadJSON decodes a document written by WriteJSON
func ReadJSON(r io.Reader) (*visgraph.Graph, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode graph: %w", err)
	}
	return doc.Graph()
}

// SaveGraph serializes and saves the graph to a JSON file
func SaveGraph(g *visgraph.Graph, filename string) error {
	log.Printf("💾 Saving visibility graph to %s...\n", filename)

	data, err := json.MarshalIndent(NewDocument(g), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal graph: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	log.Printf("   ✅ Graph saved (%d bytes)\n", len(data))
	return nil
}

// LoadGraph deserializes and loads the graph from a JSON file
func LoadGraph(filename string) (*visgraph.Graph, error) {
	log.Printf("📂 Loading visibility graph from %s...\n", filename)

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()

	g, err := ReadJSON(f)
	if err != nil {
		return nil, err
	}

	log.Printf("   ✅ Graph loaded: %d nodes, %d edges\n", g.NodeCount(), g.EdgeCount())
	return g, nil
}
