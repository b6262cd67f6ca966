// xrquery runs containment, collider and ray queries against a scene file
// without opening a window.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/Faultbox/midgard-xr/internal/assets"
	"github.com/Faultbox/midgard-xr/internal/engine/collider"
	"github.com/Faultbox/midgard-xr/internal/engine/model"
	"github.com/Faultbox/midgard-xr/internal/engine/picking"
	"github.com/Faultbox/midgard-xr/internal/engine/scene"
	"github.com/Faultbox/midgard-xr/internal/logger"
	"github.com/Faultbox/midgard-xr/internal/scenefile"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `xrquery - scene query utility

Usage:
  xrquery <command> [options] <scene.yaml> [args]

Commands:
  info <scene>                          List objects with position and bounds
  point <scene> <x,y,z>                 Objects containing a world point
  capsule <scene> <x,y,z> <x,y,z> <r>   Objects overlapping a capsule
  ray <scene> <x,y,z> <dx,dy,dz>        Nearest object hit by a ray
  collisions <scene>                    Pairs of objects whose colliders overlap

Options:
  -assets dir   Additional asset search directory (repeatable)
  -debug        Enable debug logging

Examples:
  xrquery point lab.yaml 1.1,0,0
  xrquery capsule lab.yaml 0,0,0 0,1,0 0.1
  xrquery ray -assets ./meshes lab.yaml 0,1,5 0,0,-1`)
}

type dirList []string

func (d *dirList) String() string     { return strings.Join(*d, ",") }
func (d *dirList) Set(v string) error { *d = append(*d, v); return nil }

// query is a loaded scene plus the names of its objects.
type query struct {
	scene *scene.Scene
	names map[scene.ID]string
	out   io.Writer
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command := args[0]
	if command == "help" || command == "-h" || command == "--help" {
		printUsage(stdout)
		return 0
	}

	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var dirs dirList
	fs.Var(&dirs, "assets", "asset search directory")
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args[1:]); err != nil {
		return 1
	}
	rest := fs.Args()

	if *debug {
		if err := logger.Init("debug", ""); err != nil {
			fmt.Fprintf(stderr, "Logger error: %v\n", err)
			return 1
		}
		defer logger.Sync()
	}

	handlers := map[string]struct {
		nargs int
		fn    func(q *query, args []string) error
	}{
		"info":       {0, cmdInfo},
		"point":      {1, cmdPoint},
		"capsule":    {3, cmdCapsule},
		"ray":        {2, cmdRay},
		"collisions": {0, cmdCollisions},
	}
	h, ok := handlers[command]
	if !ok {
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}
	if len(rest) != h.nargs+1 {
		fmt.Fprintf(stderr, "%s: expected a scene file and %d argument(s)\n", command, h.nargs)
		return 1
	}

	q, err := loadQuery(rest[0], dirs, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := h.fn(q, rest[1:]); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func loadQuery(path string, dirs []string, out io.Writer) (*query, error) {
	f, err := scenefile.Load(path)
	if err != nil {
		return nil, err
	}

	mgr := assets.NewManager()
	defer mgr.Close()
	for _, d := range dirs {
		if err := mgr.AddSearchDir(d); err != nil {
			return nil, err
		}
	}

	s, ids, err := f.Build(mgr)
	if err != nil {
		return nil, err
	}
	names := make(map[scene.ID]string, len(ids))
	for name, id := range ids {
		names[id] = name
	}
	return &query{scene: s, names: names, out: out}, nil
}

func (q *query) name(id scene.ID) string {
	if n, ok := q.names[id]; ok {
		return n
	}
	return id.String()
}

func (q *query) printIDs(ids []scene.ID) {
	if len(ids) == 0 {
		fmt.Fprintln(q.out, "no objects")
		return
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = q.name(id)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintln(q.out, n)
	}
}

func cmdInfo(q *query, _ []string) error {
	fmt.Fprintf(q.out, "%d objects\n", q.scene.Len())
	q.scene.Each(func(id scene.ID, m *model.Model) bool {
		p := m.PosVec()
		b := m.Bounds()
		fmt.Fprintf(q.out, "%-16s pos=(%g, %g, %g) size=(%g, %g, %g) layer=%v collider=%t\n",
			q.name(id), p.X, p.Y, p.Z,
			b.Dimensions.X, b.Dimensions.Y, b.Dimensions.Z,
			m.Layer, m.HasCollider())
		return true
	})
	return nil
}

func cmdPoint(q *query, args []string) error {
	p, err := parseVec3(args[0])
	if err != nil {
		return err
	}
	q.printIDs(q.scene.PickPoint(p))
	return nil
}

func cmdCapsule(q *query, args []string) error {
	p1, err := parseVec3(args[0])
	if err != nil {
		return err
	}
	p2, err := parseVec3(args[1])
	if err != nil {
		return err
	}
	r, err := strconv.ParseFloat(args[2], 32)
	if err != nil {
		return fmt.Errorf("radius %q: %w", args[2], err)
	}
	if r < 0 {
		return fmt.Errorf("radius %q is negative", args[2])
	}
	q.printIDs(q.scene.PickCollider(collider.Capsule{Point1: p1, Point2: p2, Radius: float32(r)}))
	return nil
}

func cmdRay(q *query, args []string) error {
	origin, err := parseVec3(args[0])
	if err != nil {
		return err
	}
	dir, err := parseVec3(args[1])
	if err != nil {
		return err
	}
	if dir.LengthSq() == 0 {
		return fmt.Errorf("ray direction is zero")
	}
	id, t, ok := q.scene.PickRay(picking.NewRay(origin, dir))
	if !ok {
		fmt.Fprintln(q.out, "no hit")
		return nil
	}
	fmt.Fprintf(q.out, "%s at %.4g\n", q.name(id), t)
	return nil
}

func cmdCollisions(q *query, _ []string) error {
	pairs := q.scene.Collisions()
	if len(pairs) == 0 {
		fmt.Fprintln(q.out, "no collisions")
		return nil
	}
	for _, p := range pairs {
		fmt.Fprintf(q.out, "%s <-> %s\n", q.name(p.A), q.name(p.B))
	}
	return nil
}

// parseVec3 parses "x,y,z".
func parseVec3(s string) (math.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math.Vec3{}, fmt.Errorf("vector %q: want x,y,z", s)
	}
	var v [3]float32
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("vector %q: %w", s, err)
		}
		v[i] = float32(f)
	}
	return math.V3(v[0], v[1], v[2]), nil
}
