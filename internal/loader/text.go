package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"visibility-planner/internal/geometry"
)

// maxLineBytes bounds a single scene line, i.e. one obstacle
var maxLineBytes = 16 * 1024 * 1024

// LoadText reads a text scene from disk
func LoadText(path string) (Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scene{}, fmt.Errorf("failed to open scene: %w", err)
	}
	defer f.Close()

	scene, err := ParseText(f)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.File = path
		}
		return Scene{}, err
	}

	log.Printf("   ✅ Loaded %d obstacles from %s\n", len(scene.Obstacles), path)
	return scene, nil
}

// ParseText reads the line-oriented scene format:
//
//	(x,y)                 start
//	(x,y)                 goal
//	(x,y);(x,y);(x,y)...  one obstacle per line
//
// Blank lines and lines starting with # are ignored.
func ParseText(r io.Reader) (Scene, error) {
	var (
		scene  Scene
		header int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, maxLineBytes)), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if header < 2 {
			p, err := parsePoint(line)
			if err != nil {
				return Scene{}, &ParseError{Line: lineNo, Err: err}
			}
			if header == 0 {
				scene.Start = p
			} else {
				scene.Goal = p
			}
			header++
			continue
		}

		fields := strings.Split(strings.TrimSuffix(line, ";"), ";")
		obstacle := geometry.Obstacle{Corners: make([]geometry.Point, 0, len(fields))}
		for _, field := range fields {
			p, err := parsePoint(field)
			if err != nil {
				return Scene{}, &ParseError{Line: lineNo, Err: err}
			}
			obstacle.Corners = append(obstacle.Corners, p)
		}
		scene.Obstacles = append(scene.Obstacles, obstacle)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return Scene{}, &ParseError{Line: lineNo + 1, Err: err}
		}
		return Scene{}, fmt.Errorf("failed to read scene: %w", err)
	}

	if header < 2 {
		return Scene{}, &ParseError{Line: lineNo, Err: ErrMissingHeader}
	}
	return scene, nil
}

func parsePoint(s string) (geometry.Point, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return geometry.Point{}, fmt.Errorf("%w: %q", ErrMalformedPoint, s)
	}

	parts := strings.Split(s[1:len(s)-1], ",")
	if len(parts) != 2 {
		return geometry.Point{}, fmt.Errorf("%w: %q", ErrMalformedPoint, s)
	}

	x, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("%w: %q: %v", ErrMalformedPoint, s, err)
	}
	y, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("%w: %q: %v", ErrMalformedPoint, s, err)
	}

	return geometry.Point{X: x, Y: y}, nil
}
