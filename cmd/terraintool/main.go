// terraintool inspects the terrain tessellator without a GPU.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/seamless-terrain/internal/config"
	"github.com/Faultbox/seamless-terrain/internal/engine/terrain"
	"github.com/Faultbox/seamless-terrain/internal/logger"
	"github.com/Faultbox/seamless-terrain/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "traverse", "t":
		err = cmdTraverse(args, os.Stdout)
	case "tiles":
		err = cmdTiles(args, os.Stdout)
	case "config":
		err = cmdConfig(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`terraintool - adaptive terrain tessellation utility

Usage:
  terraintool <command> [options]

Commands:
  traverse [-x X -y Y -z Z]   Tessellate for one viewpoint and report
  tiles                       List the tile library meshes
  config [-validate] [-save] [-out F]
                              Print, check or write the effective configuration

Common options:
  -config <file>   Load settings from a YAML file
  -debug           Log at debug level

Examples:
  terraintool traverse -x 0 -y 50 -z 0 -depth 4
  terraintool traverse -config terrain.yaml -yaml
  terraintool tiles -resolutions 3,8,18
  terraintool config -config terrain.yaml -validate
  terraintool config -config terrain.yaml -save`)
}

// commonFlags are shared by every subcommand.
type commonFlags struct {
	configPath string
	debug      bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "Path to config file")
	fs.BoolVar(&c.debug, "debug", false, "Enable debug logging")
}

func (c *commonFlags) load() (*config.Config, error) {
	if c.configPath == "" {
		return config.Default(), nil
	}
	return config.LoadFrom(c.configPath)
}

func (c *commonFlags) newLogger() (*zap.Logger, error) {
	if !c.debug {
		return zap.NewNop(), nil
	}
	return logger.New("debug", logger.FileConfig{}, true)
}

// report is what traverse prints.
type report struct {
	Viewpoint math.Vec3      `yaml:"viewpoint"`
	Stats     terrain.Stats  `yaml:"stats"`
	Meshes    map[string]int `yaml:"meshes"`
	Patches   []patchInfo    `yaml:"patches,omitempty"`
}

type patchInfo struct {
	Position math.Vec2 `yaml:"position"`
	Size     math.Vec2 `yaml:"size"`
	Depth    int       `yaml:"depth"`
	Tiers    [4]int    `yaml:"tiers,flow"`
}

func cmdTraverse(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("traverse", flag.ContinueOnError)
	var common commonFlags
	common.register(fs)
	x := fs.Float64("x", 0, "Viewpoint X")
	y := fs.Float64("y", 100, "Viewpoint height")
	z := fs.Float64("z", 0, "Viewpoint Z")
	depth := fs.Int("depth", 0, "Override maximum depth")
	precision := fs.Float64("precision", 0, "Override precision")
	stitching := fs.Bool("stitching", false, "Queue corner stitch strips")
	listPatches := fs.Bool("patches", false, "List every emitted patch")
	asYAML := fs.Bool("yaml", false, "Print the report as YAML")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}
	if *depth > 0 {
		cfg.Terrain.MaxDepth = *depth
	}
	if *precision > 0 {
		cfg.Terrain.Precision = float32(*precision)
	}
	if *stitching {
		cfg.Terrain.Stitching = true
	}

	log, err := common.newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	view := math.Vec3{X: float32(*x), Y: float32(*y), Z: float32(*z)}
	r, err := traverse(cfg, view, *listPatches, log)
	if err != nil {
		return err
	}

	if *asYAML {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	}
	printReport(out, r)
	return nil
}

// traverse runs one frame for the world-space viewpoint view and collects
// what was submitted. Patches are reported in terrain space.
func traverse(cfg *config.Config, view math.Vec3, listPatches bool, log *zap.Logger) (*report, error) {
	driver, err := terrain.NewDriver(cfg.Terrain, log)
	if err != nil {
		return nil, err
	}
	driver.SetTransform(cfg.Placement.Transform())

	r := &report{Viewpoint: view, Meshes: make(map[string]int)}
	if listPatches {
		driver.Subdivider().OnPatch = func(p terrain.Patch) {
			r.Patches = append(r.Patches, patchInfo{Position: p.Position, Size: p.Size, Depth: p.Depth, Tiers: p.Tiers})
		}
	}

	meshes := driver.Library().Meshes()
	r.Stats = driver.Frame(view, terrain.SubmitFunc(func(mesh terrain.MeshID, _ terrain.Material, _ []math.Mat4, count int) {
		r.Meshes[meshes[mesh].Name] += count
	}))
	return r, nil
}

func printReport(out io.Writer, r *report) {
	fmt.Fprintf(out, "Viewpoint:   (%g, %g, %g)\n", r.Viewpoint.X, r.Viewpoint.Y, r.Viewpoint.Z)
	fmt.Fprintf(out, "Patches:     %d\n", r.Stats.Patches)
	fmt.Fprintf(out, "Max depth:   %d\n", r.Stats.MaxDepthReached)
	fmt.Fprintf(out, "Instances:   %d\n", r.Stats.Instances)
	fmt.Fprintf(out, "Dropped:     %d\n", r.Stats.Dropped)
	fmt.Fprintf(out, "Submissions: %d\n", r.Stats.Submissions)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Instances by mesh:")
	for _, name := range sortedKeys(r.Meshes) {
		fmt.Fprintf(out, "  %-14s %d\n", name, r.Meshes[name])
	}

	if len(r.Patches) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Patches (N E S W tiers):")
		for _, p := range r.Patches {
			fmt.Fprintf(out, "  d%-2d (%g, %g) %gx%g  %v\n",
				p.Depth, p.Position.X, p.Position.Y, p.Size.X, p.Size.Y, p.Tiers)
		}
	}
}

func cmdTiles(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("tiles", flag.ContinueOnError)
	var common commonFlags
	common.register(fs)
	var tiers tierList
	fs.Var(&tiers, "resolutions", "Comma-separated tiers, e.g. 3,8,18")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}
	if len(tiers) > 0 {
		cfg.Terrain.Resolutions = tiers
	}

	lib, err := terrain.NewLibrary(cfg.Terrain.Resolutions)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Tiers: %v (max %d), %d meshes\n\n", lib.Tiers(), lib.MaxResolution(), lib.MeshCount())
	fmt.Fprintf(out, "  %-4s %-14s %8s %9s\n", "ID", "Name", "Vertices", "Triangles")
	for _, m := range lib.Meshes() {
		fmt.Fprintf(out, "  %-4d %-14s %8d %9d\n", m.ID, m.Name, len(m.Vertices), m.TriangleCount())
	}
	return nil
}

func cmdConfig(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	var common commonFlags
	common.register(fs)
	validate := fs.Bool("validate", false, "Only validate, print nothing on success")
	save := fs.Bool("save", false, "Write the configuration to the user config directory")
	outPath := fs.String("out", "", "Write the configuration to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *validate && common.configPath == "" {
		return errors.New("-validate needs -config")
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}
	if *validate {
		fmt.Fprintf(out, "%s: ok\n", common.configPath)
		return nil
	}

	switch {
	case *save:
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintf(out, "saved %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
		return nil
	case *outPath != "":
		if err := cfg.SaveTo(*outPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "saved %s\n", *outPath)
		return nil
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
