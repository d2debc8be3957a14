package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"runtime"
	"sync"

	"github.com/invopop/jsonschema"

	"visibility-planner/internal/export"
	"visibility-planner/internal/geometry"
	"visibility-planner/internal/visgraph"
)

// defaultMaxCorners keeps a single request from tying up the server
const defaultMaxCorners = 1000

type BuildRequest struct {
	Start     geometry.Point     `json:"start" jsonschema:"required"`
	Goal      geometry.Point     `json:"goal" jsonschema:"required"`
	Obstacles [][]geometry.Point `json:"obstacles" jsonschema:"description=Obstacle corners in traversal order"`
	Options   RequestOptions     `json:"options,omitempty"`
}

type RequestOptions struct {
	SkipEndpoints bool `json:"skipEndpoints,omitempty"`
	AllowInterior bool `json:"allowInterior,omitempty"`
	Workers       int  `json:"workers,omitempty"`
	MaxCorners    int  `json:"maxCorners,omitempty"`
}

// build turns request options into builder options. The corner limit and
// worker count stay within the server's bounds whatever the client asks for.
func (o RequestOptions) build() visgraph.Options {
	maxCorners := defaultMaxCorners
	if o.MaxCorners > 0 {
		maxCorners = min(o.MaxCorners, defaultMaxCorners)
	}
	workers := max(1, min(o.Workers, runtime.GOMAXPROCS(0)))

	return visgraph.Options{
		SkipEndpoints: o.SkipEndpoints,
		AllowInterior: o.AllowInterior,
		Workers:       workers,
		MaxCorners:    maxCorners,
		Logger:        log.Default(),
	}
}

type errorResponse struct {
	Success  bool   `json:"success"`
	Error    string `json:"error"`
	Obstacle *int   `json:"obstacle,omitempty"`
	Corner   *int   `json:"corner,omitempty"`
}

type server struct {
	mu   sync.RWMutex
	last *visgraph.Graph
}

func newServer() *server {
	return &server{}
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/graph", corsMiddleware(s.graphHandler))
	mux.HandleFunc("/graph/lines", corsMiddleware(s.linesHandler))
	mux.HandleFunc("/schema", corsMiddleware(schemaHandler))
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	return mux
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// POST /graph builds a graph, GET /graph returns the last one built.
// ?format=json|geojson|dot selects the encoding.
func (s *server) graphHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.RLock()
		g := s.last
		s.mu.RUnlock()

		if g == nil {
			http.Error(w, "No graph built yet. POST /graph first", http.StatusNotFound)
			return
		}
		writeGraph(w, r, g)

	case http.MethodPost:
		s.buildGraph(w, r)

	default:
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *server) buildGraph(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("🗺️  Visibility graph request received")
	defer log.Println("========================================")

	var req BuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	log.Printf("   Start: (%d, %d)\n", req.Start.X, req.Start.Y)
	log.Printf("   Goal:  (%d, %d)\n", req.Goal.X, req.Goal.Y)
	log.Printf("   Obstacles: %d\n", len(req.Obstacles))

	obstacles := make([]geometry.Obstacle, len(req.Obstacles))
	for i, corners := range req.Obstacles {
		obstacles[i] = geometry.Obstacle{Corners: corners}
	}

	g, err := visgraph.Build(req.Start, req.Goal, obstacles, req.Options.build())
	if err != nil {
		log.Printf("❌ Build failed: %v\n", err)
		writeBuildError(w, err)
		return
	}

	s.mu.Lock()
	s.last = g
	s.mu.Unlock()

	stats := g.Stats()
	log.Printf("✅ Graph built: %d nodes, %d boundary + %d visibility edges\n",
		g.NodeCount(), stats.BoundaryEdges, stats.VisibilityEdges)

	writeGraph(w, r, g)
}

func writeBuildError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}
	status := http.StatusInternalServerError

	var inputErr *geometry.InputError
	switch {
	case errors.As(err, &inputErr):
		status = http.StatusBadRequest
		if inputErr.Subject == "obstacle" {
			obstacle := inputErr.Obstacle
			resp.Obstacle = &obstacle
			if inputErr.Corner >= 0 {
				corner := inputErr.Corner
				resp.Corner = &corner
			}
		}
	case errors.Is(err, visgraph.ErrSceneTooLarge):
		status = http.StatusUnprocessableEntity
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func writeGraph(w http.ResponseWriter, r *http.Request, g *visgraph.Graph) {
	var (
		buf         bytes.Buffer
		err         error
		contentType string
	)

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		contentType = "application/json"
		err = export.WriteJSON(&buf, g)
	case "geojson":
		contentType = "application/geo+json"
		err = export.WriteGeoJSON(&buf, g)
	case "dot":
		contentType = "text/vnd.graphviz"
		err = export.WriteDOT(&buf, g, "visibility")
	default:
		http.Error(w, "Unknown format "+format, http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Printf("❌ Failed to encode graph: %v\n", err)
		http.Error(w, "Failed to encode graph", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(buf.Bytes())
}

// GET /graph/lines - Get graph edges as line segments for visualization
func (s *server) linesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	g := s.last
	s.mu.RUnlock()

	if g == nil {
		http.Error(w, "No graph built yet. POST /graph first", http.StatusNotFound)
		return
	}

	type line struct {
		Points [2]geometry.Point `json:"points"`
		Class  visgraph.Class    `json:"class"`
	}
	lines := make([]line, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		lines = append(lines, line{
			Points: [2]geometry.Point{g.MustPosition(e.A), g.MustPosition(e.B)},
			Class:  e.Class,
		})
	}

	log.Printf("   Returning %d line segments\n", len(lines))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":  true,
		"lines":    lines,
		"numNodes": g.NodeCount(),
		"numEdges": len(lines),
	})
}

// GET /schema - JSON Schema of the POST /graph body
func schemaHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/schema+json")
	json.NewEncoder(w).Encode(buildSchema())
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
	}
	schema := reflector.Reflect(new(BuildRequest))
	schema.Title = "Visibility graph request"
	schema.Description = "Start, goal and polygonal obstacles with integer coordinates"
	return schema
}

// GET /health - Health check endpoint
func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	g := s.last
	s.mu.RUnlock()

	numNodes, numEdges := 0, 0
	if g != nil {
		numNodes, numEdges = g.NodeCount(), g.EdgeCount()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":   "ready",
		"hasGraph": g != nil,
		"numNodes": numNodes,
		"numEdges": numEdges,
	})
}
