package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"visibility-planner/internal/geometry"
)

var (
	ErrMalformedPoint = errors.New("malformed point, expected (x,y)")
	ErrMissingHeader  = errors.New("missing start or goal line")
	ErrNonIntegral    = errors.New("coordinate is not an integer")
	ErrMissingRole    = errors.New("scene has no start or goal point")
)

// Scene is the parsed input of one planning problem
type Scene struct {
	Start     geometry.Point      `json:"start"`
	Goal      geometry.Point      `json:"goal"`
	Obstacles []geometry.Obstacle `json:"obstacles"`
}

// Validate checks the scene invariants before any graph is built
func (s Scene) Validate() error {
	return geometry.ValidateScene(s.Start, s.Goal, s.Obstacles)
}

// ParseError locates a problem in a text scene
type ParseError struct {
	File string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads a scene file, choosing the format by extension: .geojson and
// .json are GeoJSON, anything else is the text format.
func Load(path string) (Scene, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return LoadGeoJSON(path)
	default:
		return LoadText(path)
	}
}
