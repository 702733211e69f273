package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/philipparndt/modelview/pkg/analysis"
	"github.com/philipparndt/modelview/pkg/loader"
)

var infoEdges int

var infoCmd = &cobra.Command{
	Use:   "info model...",
	Short: "Print geometry statistics for models",
	Long: `Load every model concurrently and print triangle and edge counts,
surface area, bounds and the scale the viewer would normalize it with.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reports, err := inspect(cmd.Context(), loader.New(), args)
		if err != nil {
			return err
		}
		for i, r := range reports {
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			r.write(cmd.OutOrStdout(), infoEdges)
		}
		return nil
	},
}

func init() {
	infoCmd.Flags().IntVar(&infoEdges, "edges", 0, "also list the N longest edges")
	rootCmd.AddCommand(infoCmd)
}

// report is the info output for one source
type report struct {
	Source string
	Name   string
	Stats  *analysis.Stats
	Scale  float64
}

// inspect loads all sources in parallel; the first failure cancels the rest
func inspect(ctx context.Context, l *loader.Loader, sources []string) ([]report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	reports := make([]report, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, src := range sources {
		g.Go(func() error {
			m, err := l.Load(ctx, src)
			if err != nil {
				return err
			}
			stats := analysis.Analyze(m.Root)
			norm, err := loader.Normalize(m.Root, 0)
			if err != nil {
				return fmt.Errorf("%s: %w", src, err)
			}
			reports[i] = report{Source: src, Name: m.Name, Stats: stats, Scale: norm.Scale}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func (r report) write(w io.Writer, edges int) {
	s := r.Stats
	fmt.Fprintln(w, "Model Information")
	fmt.Fprintln(w, "=================")
	fmt.Fprintf(w, "Name: %s\n", r.Name)
	fmt.Fprintf(w, "Source: %s\n\n", r.Source)

	fmt.Fprintln(w, "Model Statistics:")
	fmt.Fprintf(w, "  Meshes: %d\n", s.MeshCount)
	fmt.Fprintf(w, "  Vertices: %d\n", s.VertexCount)
	fmt.Fprintf(w, "  Triangles: %d\n", s.TriangleCount)
	fmt.Fprintf(w, "  Edges: %d\n", s.EdgeCount)
	fmt.Fprintf(w, "  Surface Area: %.6f square units\n\n", s.SurfaceArea)

	fmt.Fprintln(w, "Bounding Box:")
	fmt.Fprintf(w, "  Min: %s\n", analysis.FormatVector(s.BoundingBox.Min))
	fmt.Fprintf(w, "  Max: %s\n", analysis.FormatVector(s.BoundingBox.Max))
	fmt.Fprintf(w, "  Center: %s\n", analysis.FormatVector(s.BoundingBox.Center()))
	fmt.Fprintf(w, "  Size: %s\n\n", analysis.FormatVector(s.Dimensions))

	fmt.Fprintln(w, "Edge Lengths:")
	fmt.Fprintf(w, "  Minimum: %.6f units\n", s.MinEdgeLength)
	fmt.Fprintf(w, "  Maximum: %.6f units\n", s.MaxEdgeLength)
	fmt.Fprintf(w, "  Average: %.6f units\n\n", s.AvgEdgeLength)

	fmt.Fprintf(w, "Viewer Scale: %.6f (largest dimension -> %g units)\n", r.Scale, loader.TargetSize)

	if edges > 0 {
		fmt.Fprintf(w, "\nLongest %d Edges:\n", edges)
		for i, e := range analysis.FindLongestEdges(s, edges) {
			fmt.Fprintf(w, "  %d. %.6f units %s -> %s\n", i+1, e.Length, analysis.FormatVector(e.Start), analysis.FormatVector(e.End))
		}
	}
}
