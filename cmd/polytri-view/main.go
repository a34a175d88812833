package main

import (
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/smasonuk/polytri"
	"github.com/spf13/cobra"
)

const (
	screenWidth  = 640
	screenHeight = 480
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var reference bool
	cmd := &cobra.Command{
		Use:          "polytri-view <mesh>",
		Short:        "Preview the triangulation of a PLY, OBJ or DXF mesh",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], reference)
		},
	}
	cmd.Flags().BoolVar(&reference, "reference", false, "use the reference exporter's ear tests")
	return cmd
}

func run(fileName string, reference bool) error {
	log.Printf("Loading %s...", fileName)
	m, _, err := polytri.Load(fileName)
	if err != nil {
		return err
	}

	opts := []polytri.Option{polytri.WithFacePolicy(polytri.PolicySkip)}
	if reference {
		opts = append(opts, polytri.WithReferencePredicates())
	}
	x, err := polytri.TriangulateMesh(m, opts...)
	if err != nil {
		return err
	}
	log.Printf("Triangles: %d, skipped faces: %d", len(x.Triangles), len(x.Skipped))

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("polytri - " + fileName)
	return ebiten.RunGame(NewGame(m, x))
}
