package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/smasonuk/polytri"
	"github.com/spf13/cobra"
)

type triangulateFlags struct {
	output    string
	format    string
	uv        bool
	config    string
	workers   int
	onError   string
	reference bool
	planarity float64
	verbose   bool
}

func main() {
	log.SetFlags(0)
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "polytri",
		Short:        "Triangulate polygon meshes for triangle-only renderers",
		SilenceUsage: true,
	}
	root.AddCommand(newTriangulateCmd(), newStatsCmd())
	return root
}

func newTriangulateCmd() *cobra.Command {
	var flags triangulateFlags
	cmd := &cobra.Command{
		Use:   "triangulate <mesh>",
		Short: "Triangulate a PLY, OBJ or DXF mesh and write a pbrt shape or PLY file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			return runTriangulate(cmd.Context(), args[0], flags, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.output, "output", "o", "", "output file (default stdout)")
	f.StringVar(&flags.format, "format", "pbrt", "output format: pbrt or ply")
	f.BoolVar(&flags.uv, "uv", false, "unweld vertices so every corner keeps its own normal and UV")
	f.StringVar(&flags.config, "config", "", "YAML options file")
	f.IntVar(&flags.workers, "workers", 0, "worker goroutines, 0 for one per CPU")
	f.StringVar(&flags.onError, "on-error", string(polytri.PolicyAbort), "failing face policy: abort, skip or fan")
	f.BoolVar(&flags.reference, "reference", false, "use the reference exporter's ear tests")
	f.Float64Var(&flags.planarity, "planarity", 0, "warn about n-gons further than this from planar")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "log debug output")
	return cmd
}

// options layers command line flags that were set explicitly over the
// options file, if any.
func (tf triangulateFlags) options(cmd *cobra.Command) (polytri.Options, error) {
	opts := polytri.DefaultOptions()
	if tf.config != "" {
		var err error
		if opts, err = polytri.LoadOptions(tf.config); err != nil {
			return opts, err
		}
	}

	f := cmd.Flags()
	if f.Changed("workers") {
		opts.Workers = tf.workers
	}
	if f.Changed("on-error") {
		opts.OnFaceError = polytri.FacePolicy(tf.onError)
	}
	if f.Changed("reference") {
		opts.ReferencePredicates = tf.reference
	}
	if f.Changed("planarity") {
		opts.PlanarityTolerance = tf.planarity
	}

	level := slog.LevelInfo
	if tf.verbose {
		level = slog.LevelDebug
	}
	opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return opts, opts.Validate()
}

func runTriangulate(ctx context.Context, fileName string, flags triangulateFlags, opts polytri.Options) (err error) {
	if flags.format != "pbrt" && flags.format != "ply" {
		return fmt.Errorf("unknown output format %q", flags.format)
	}
	if flags.uv && flags.format == "ply" {
		return fmt.Errorf("unwelded output is only written as pbrt")
	}

	m, uvs, err := polytri.Load(fileName)
	if err != nil {
		return err
	}
	log.Printf("Loaded %s: %d vertices, %d faces", fileName, len(m.Positions), len(m.Faces))

	out := io.Writer(os.Stdout)
	if flags.output != "" {
		file, createErr := os.Create(flags.output)
		if createErr != nil {
			return fmt.Errorf("could not create output file %s: %w", flags.output, createErr)
		}
		defer func() {
			if closeErr := file.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("could not close output file %s: %w", flags.output, closeErr)
			}
		}()
		out = file
	}

	if flags.uv {
		u, err := polytri.TriangulateMeshWithUVParallel(ctx, m, uvs, polytri.WithOptions(opts))
		if err != nil {
			return err
		}
		log.Printf("Triangles: %d, skipped faces: %d", u.TriangleCount(), len(u.Skipped))
		return polytri.WriteTriangleMesh(out, u)
	}

	x, err := polytri.TriangulateMeshParallel(ctx, m, polytri.WithOptions(opts))
	if err != nil {
		return err
	}
	log.Printf("Triangles: %d, skipped faces: %d", len(x.Triangles), len(x.Skipped))
	if flags.format == "ply" {
		return polytri.WritePLY(out, x)
	}
	return polytri.WriteIndexedTriangleMesh(out, x)
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <mesh>",
		Short: "Report face shapes, expected triangle count and planarity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, uvs, err := polytri.Load(args[0])
			if err != nil {
				return err
			}
			s := polytri.MeshStats(m)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "vertices:           %d\n", s.Vertices)
			fmt.Fprintf(w, "faces:              %d\n", s.Faces)
			fmt.Fprintf(w, "  triangles:        %d\n", s.Triangles)
			fmt.Fprintf(w, "  quads:            %d\n", s.Quads)
			fmt.Fprintf(w, "  n-gons:           %d\n", s.Ngons)
			fmt.Fprintf(w, "  invalid:          %d\n", s.Invalid)
			fmt.Fprintf(w, "  degenerate:       %d\n", s.Degenerate)
			fmt.Fprintf(w, "expected triangles: %d\n", s.ExpectedTriangles)
			fmt.Fprintf(w, "uv layer:           %t\n", uvs != nil)
			if s.WorstFace >= 0 {
				fmt.Fprintf(w, "worst planarity:    %g (face %d)\n", s.WorstPlanarity, s.WorstFace)
			}
			return nil
		},
	}
}
