package loader

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"visibility-planner/internal/geometry"
)

// LoadGeoJSON reads a GeoJSON scene from disk
func LoadGeoJSON(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("failed to read file: %w", err)
	}

	scene, err := ParseGeoJSON(data)
	if err != nil {
		return Scene{}, fmt.Errorf("%s: %w", path, err)
	}

	log.Printf("   ✅ Loaded %d obstacles from %s\n", len(scene.Obstacles), path)
	return scene, nil
}

// ParseGeoJSON converts a FeatureCollection into a scene. Point features
// with a "role" property of "start" or "goal" give the endpoints; every
// Polygon and MultiPolygon feature contributes its outer rings as obstacles.
func ParseGeoJSON(data []byte) (Scene, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return Scene{}, fmt.Errorf("failed to parse feature collection: %w", err)
	}

	var (
		scene             Scene
		hasStart, hasGoal bool
	)

	for i, feature := range fc.Features {
		switch geom := feature.Geometry.(type) {
		case nil:
			continue

		case orb.Point:
			p, err := toPoint(geom)
			if err != nil {
				return Scene{}, fmt.Errorf("feature %d: %w", i, err)
			}
			switch role := feature.Properties.MustString("role", ""); role {
			case "start":
				scene.Start, hasStart = p, true
			case "goal":
				scene.Goal, hasGoal = p, true
			default:
				log.Printf("⚠️  Ignoring point feature %d with role %q\n", i, role)
			}

		case orb.Polygon:
			o, err := ringToObstacle(geom)
			if err != nil {
				return Scene{}, fmt.Errorf("feature %d: %w", i, err)
			}
			scene.Obstacles = append(scene.Obstacles, o)

		case orb.MultiPolygon:
			for j, poly := range geom {
				o, err := ringToObstacle(poly)
				if err != nil {
					return Scene{}, fmt.Errorf("feature %d polygon %d: %w", i, j, err)
				}
				scene.Obstacles = append(scene.Obstacles, o)
			}

		default:
			log.Printf("⚠️  Ignoring feature %d of type %s\n", i, feature.Geometry.GeoJSONType())
		}
	}

	if !hasStart || !hasGoal {
		return Scene{}, ErrMissingRole
	}
	return scene, nil
}

// ringToObstacle keeps the outer ring of a polygon and drops its closing point
func ringToObstacle(poly orb.Polygon) (geometry.Obstacle, error) {
	if len(poly) == 0 {
		return geometry.Obstacle{}, nil
	}

	if holes := len(poly) - 1; holes > 0 {
		log.Printf("⚠️  Ignoring %d hole(s) in polygon, only the outer ring is an obstacle\n", holes)
	}

	ring := poly[0]
	if n := len(ring); n > 1 && ring[0] == ring[n-1] {
		ring = ring[:n-1]
	}

	o := geometry.Obstacle{Corners: make([]geometry.Point, 0, len(ring))}
	for _, c := range ring {
		p, err := toPoint(c)
		if err != nil {
			return geometry.Obstacle{}, err
		}
		o.Corners = append(o.Corners, p)
	}
	return o, nil
}

func toPoint(p orb.Point) (geometry.Point, error) {
	x, y := p.X(), p.Y()
	if x != math.Trunc(x) || y != math.Trunc(y) {
		return geometry.Point{}, fmt.Errorf("%w: [%g, %g]", ErrNonIntegral, x, y)
	}
	if math.Abs(x) > geometry.MaxCoord || math.Abs(y) > geometry.MaxCoord {
		return geometry.Point{}, fmt.Errorf("%w: [%g, %g]", geometry.ErrCoordinateRange, x, y)
	}
	return geometry.Point{X: int64(x), Y: int64(y)}, nil
}
