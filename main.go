// Command visibility-planner builds visibility graphs for 2D motion planning,
// either once from a scene file or as an HTTP service.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"visibility-planner/internal/export"
	"visibility-planner/internal/loader"
	"visibility-planner/internal/visgraph"
)

func main() {
	scenePath := flag.String("scene", "", "Scene file: text (x,y) format or .geojson")
	format := flag.String("format", "json", "Output format: json, geojson or dot")
	outPath := flag.String("out", "", "Write the graph here instead of stdout")
	addr := flag.String("serve", "", "Run the HTTP API on this address, e.g. :8080")
	workers := flag.Int("workers", 1, "Goroutines for the visibility pass")
	skipEndpoints := flag.Bool("skip-endpoints", false, "Do not connect start and goal to the corners")
	allowInterior := flag.Bool("allow-interior", false, "Allow lines through obstacle interiors")
	maxCorners := flag.Int("max-corners", 0, "Reject scenes with more corners (0 = no limit)")
	flag.Parse()

	if *addr != "" {
		serve(*addr)
		return
	}

	if *scenePath == "" {
		fmt.Println("Usage: visibility-planner -scene <file> [-format json|geojson|dot] [-out file]")
		fmt.Println("       visibility-planner -serve :8080")
		os.Exit(1)
	}

	opts := visgraph.Options{
		SkipEndpoints: *skipEndpoints,
		AllowInterior: *allowInterior,
		Workers:       *workers,
		MaxCorners:    *maxCorners,
		Logger:        log.Default(),
	}
	if err := run(*scenePath, *format, *outPath, opts); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(scenePath, format, outPath string, opts visgraph.Options) error {
	scene, err := loader.Load(scenePath)
	if err != nil {
		return err
	}

	g, err := visgraph.Build(scene.Start, scene.Goal, scene.Obstacles, opts)
	if err != nil {
		return fmt.Errorf("invalid scene: %w", err)
	}

	if format == "json" && outPath != "" {
		return export.SaveGraph(g, outPath)
	}

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	return writeFormat(w, g, format)
}

func writeFormat(w io.Writer, g *visgraph.Graph, format string) error {
	switch format {
	case "json":
		return export.WriteJSON(w, g)
	case "geojson":
		return export.WriteGeoJSON(w, g)
	case "dot":
		return export.WriteDOT(w, g, "visibility")
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func serve(addr string) {
	log.Println("========================================")
	log.Println("🚀 Visibility Graph Server")
	log.Println("========================================")
	log.Printf("Server starting on %s\n", addr)
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  POST /graph        - Build a visibility graph (?format=json|geojson|dot)")
	log.Println("  GET  /graph        - Last graph built")
	log.Println("  GET  /graph/lines  - Last graph's edges as line segments")
	log.Println("  GET  /schema       - JSON Schema of the POST /graph body")
	log.Println("  GET  /health       - Check server status")
	log.Println("")
	log.Println("CORS enabled for all origins")
	log.Println("========================================")

	if err := http.ListenAndServe(addr, newServer().routes()); err != nil {
		log.Fatal(err)
	}
}
