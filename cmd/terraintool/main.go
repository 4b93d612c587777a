// terraintool inspects heightmap images and exports the terrain mesh.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Faultbox/terrain-flythrough/internal/engine/terrain"
)

const usage = `terraintool - heightmap terrain utility

Usage:
  terraintool <command> [options]

Commands:
  info <image>                 Show grid size, vertex count and bounds
  export <image> <out.glb>     Write the terrain mesh as binary glTF
  height <image> <x> <z>       Print the height sample at (x, z)

Options:
  -divisor <n>                 Height scale divisor (default 4)

Examples:
  terraintool info heightmap.png
  terraintool export -divisor 2 heightmap.png terrain.glb
  terraintool height heightmap.png 256 256`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, usage)
		return 1
	}

	commands := map[string]func([]string, io.Writer, io.Writer) error{
		"info":   cmdInfo,
		"export": cmdExport,
		"height": cmdHeight,
	}

	name := args[0]
	switch name {
	case "help", "-h", "--help":
		fmt.Fprintln(stdout, usage)
		return 0
	}
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "Unknown command: %s\n%s\n", name, usage)
		return 1
	}

	err := cmd(args[1:], stdout, stderr)
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

// parse handles the shared -divisor flag, checks the positional count and
// loads the heightmap named by the first positional argument.
func parse(name string, args []string, want int, stderr io.Writer) (*terrain.Heightmap, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	divisor := fs.Float64("divisor", float64(terrain.DefaultHeightDivisor), "Height scale divisor")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() != want {
		return nil, nil, fmt.Errorf("%s: expected %d arguments, got %d", name, want, fs.NArg())
	}

	hm, err := terrain.LoadHeightmap(fs.Arg(0), float32(*divisor))
	if err != nil {
		return nil, nil, err
	}
	return hm, fs.Args(), nil
}

func cmdInfo(args []string, stdout, stderr io.Writer) error {
	hm, rest, err := parse("info", args, 1, stderr)
	if err != nil {
		return err
	}

	mesh := terrain.BuildMesh(hm)
	fmt.Fprintf(stdout, "Heightmap: %s\n", rest[0])
	fmt.Fprintf(stdout, "Grid:      %d x %d\n", hm.Width, hm.Depth)
	fmt.Fprintf(stdout, "Divisor:   %g\n", hm.Divisor)
	fmt.Fprintf(stdout, "Quads:     %d\n", hm.QuadCount())
	fmt.Fprintf(stdout, "Triangles: %d\n", mesh.TriangleCount())
	fmt.Fprintf(stdout, "Vertices:  %d (%d bytes)\n", mesh.VertexCount(), mesh.VertexCount()*terrain.VertexSize)
	fmt.Fprintf(stdout, "Bounds:    min %v max %v\n", mesh.Bounds.Min, mesh.Bounds.Max)
	return nil
}

func cmdExport(args []string, stdout, stderr io.Writer) error {
	hm, rest, err := parse("export", args, 2, stderr)
	if err != nil {
		return err
	}

	out := rest[1]
	if !strings.EqualFold(filepath.Ext(out), ".glb") {
		out += ".glb"
	}

	name := strings.TrimSuffix(filepath.Base(rest[0]), filepath.Ext(rest[0]))
	mesh := terrain.BuildMesh(hm)
	if err := mesh.ExportGLB(out, name); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Exported %d triangles to %s\n", mesh.TriangleCount(), out)
	return nil
}

func cmdHeight(args []string, stdout, stderr io.Writer) error {
	hm, rest, err := parse("height", args, 3, stderr)
	if err != nil {
		return err
	}

	x, err := strconv.Atoi(rest[1])
	if err != nil {
		return fmt.Errorf("invalid x %q: %w", rest[1], err)
	}
	z, err := strconv.Atoi(rest[2])
	if err != nil {
		return fmt.Errorf("invalid z %q: %w", rest[2], err)
	}

	h, err := hm.HeightAt(x, z)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%g\n", h)
	return nil
}
