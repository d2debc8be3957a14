package export

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"visibility-planner/internal/geometry"
	"visibility-planner/internal/visgraph"
)

// GeoJSON returns one Point feature per node and one LineString feature per
// edge, in input coordinates.
func GeoJSON(g *visgraph.Graph) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, id := range g.Nodes() {
		f := geojson.NewFeature(toOrb(g.MustPosition(id)))
		f.Properties["id"] = id.String()
		f.Properties["kind"] = id.Kind.String()
		fc.Append(f)
	}

	for _, e := range g.Edges() {
		line := orb.LineString{toOrb(g.MustPosition(e.A)), toOrb(g.MustPosition(e.B))}
		f := geojson.NewFeature(line)
		f.Properties["from"] = e.A.String()
		f.Properties["to"] = e.B.String()
		f.Properties["class"] = e.Class.String()
		fc.Append(f)
	}

	return fc
}

// WriteGeoJSON encodes GeoJSON(g)
func WriteGeoJSON(w io.Writer, g *visgraph.Graph) error {
	data, err := GeoJSON(g).MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal feature collection: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write feature collection: %w", err)
	}
	return nil
}

func toOrb(p geometry.Point) orb.Point {
	return orb.Point{float64(p.X), float64(p.Y)}
}
