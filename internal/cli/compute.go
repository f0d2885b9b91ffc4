package cli

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	disimaging "github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-gradient-mcp/internal/gradient"
	"github.com/ironsheep/image-gradient-mcp/internal/imaging"
)

type computeFlags struct {
	dims         int
	axis         string
	noBoundaries bool
	workers      int
	spacingX     float64
	spacingY     float64
	blur         float64
	roi          string
	colormap     string
	ceiling      float64
	scale        float64
	grid         int
	gridColor    string
	edges        float64
}

func newComputeCmd() *cobra.Command {
	var f computeFlags

	cmd := &cobra.Command{
		Use:   "compute <input> <output.png>",
		Short: "Compute the gradient magnitude of an image file",
		Long: `Compute loads an image, computes its gradient magnitude and writes it as a
colorized image. The output format follows the output file's extension.

With --edges the output is a binary edge map of the pixels whose magnitude
is at or above the given threshold.

Flags that are not given fall back to the config file.`,
		Example: `  image-gradient-mcp compute photo.png grad.png
  image-gradient-mcp compute --colormap heat --blur 1.5 photo.jpg grad.png
  image-gradient-mcp compute --dims 1 --axis y --no-boundaries scan.png dy.png
  image-gradient-mcp compute --roi 10,10,200,120 --edges 64 photo.png edges.png
  image-gradient-mcp compute --grid 50 --scale 2 photo.png grad.png`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(cmd, &f, args[0], args[1])
		},
	}

	cmd.Flags().IntVar(&f.dims, "dims", 0, "gradient dimensionality, 1 or 2 (default from config)")
	cmd.Flags().StringVar(&f.axis, "axis", "x", "axis to differentiate when --dims is 1 (x or y)")
	cmd.Flags().BoolVar(&f.noBoundaries, "no-boundaries", false, "drop the outer pixel ring instead of replicating edges")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "goroutines used by the filter (default from config)")
	cmd.Flags().Float64Var(&f.spacingX, "spacing-x", 0, "physical pixel width (default from config)")
	cmd.Flags().Float64Var(&f.spacingY, "spacing-y", 0, "physical pixel height (default from config)")
	cmd.Flags().Float64Var(&f.blur, "blur", 0, "Gaussian blur radius applied first (default from config)")
	cmd.Flags().StringVar(&f.roi, "roi", "", "output region as x1,y1,x2,y2 (x2,y2 exclusive)")
	cmd.Flags().StringVar(&f.colormap, "colormap", "", "gray or heat (default from config)")
	cmd.Flags().Float64Var(&f.ceiling, "ceiling", 0, "magnitude drawn at full intensity (default: the maximum)")
	cmd.Flags().Float64Var(&f.scale, "scale", 1.0, "output scale factor")
	cmd.Flags().IntVar(&f.grid, "grid", 0, "draw grid lines every N image pixels")
	cmd.Flags().StringVar(&f.gridColor, "grid-color", "", "grid line color as #RRGGBB")
	cmd.Flags().Float64Var(&f.edges, "edges", 0, "write an edge map at this magnitude threshold instead")

	return cmd
}

func runCompute(cmd *cobra.Command, f *computeFlags, inPath, outPath string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	opts, err := f.gradientOptions(cmd, cfg.Gradient, cfg.Image.SpacingX, cfg.Image.SpacingY, cfg.Image.BlurRadius)
	if err != nil {
		return err
	}
	logger.Debug("options", "config", opts.Config.String(), "blur", opts.BlurRadius,
		"spacing_x", opts.SpacingX, "spacing_y", opts.SpacingY)

	cache := imaging.NewImageCache()
	img, err := cache.Load(inPath)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	res, err := imaging.ComputeGradient(ctx, img, opts)
	if err != nil {
		return err
	}
	stats := gradient.Summarize(res.Output)
	prog.done("Computed gradient", "output", res.OutputExtent, "max", stats.Max, "mean", stats.Mean)

	var out image.Image
	if f.edges > 0 {
		var n int
		if out, n, err = imaging.EdgeImage(res.Output, f.edges); err != nil {
			return err
		}
		logger.Info("Edge map", "threshold", f.edges, "edge_pixels", n)
	} else {
		colormap := f.colormap
		if colormap == "" {
			colormap = cfg.Render.Colormap
		}
		if out, _, err = imaging.RenderImage(res.Output, imaging.RenderOptions{
			Colormap:    colormap,
			HeatStops:   cfg.Render.HeatStops,
			Ceiling:     f.ceiling,
			Scale:       f.scale,
			GridSpacing: f.grid,
			GridColor:   f.gridColor,
		}); err != nil {
			return err
		}
	}

	if err := disimaging.Save(out, outPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	logger.Info("Wrote image", "path", outPath, "width", out.Bounds().Dx(), "height", out.Bounds().Dy())
	return nil
}

// gradientOptions applies the flags the user set over the config defaults.
func (f *computeFlags) gradientOptions(cmd *cobra.Command, base gradient.Config, spacingX, spacingY, blurRadius float64) (imaging.GradientOptions, error) {
	cfg := base
	cfg.Axes = append([]int(nil), base.Axes...)
	changed := cmd.Flags().Changed

	if changed("dims") {
		switch f.dims {
		case 1:
			switch f.axis {
			case "x":
				cfg.Axes = []int{0}
			case "y":
				cfg.Axes = []int{1}
			default:
				return imaging.GradientOptions{}, fmt.Errorf("--axis must be x or y, got %q", f.axis)
			}
		case 2:
			cfg.Axes = []int{0, 1}
		default:
			return imaging.GradientOptions{}, fmt.Errorf("--dims must be 1 or 2, got %d", f.dims)
		}
		cfg.Dimensionality = f.dims
	}
	if changed("no-boundaries") {
		cfg.HandleBoundaries = !f.noBoundaries
	}
	if changed("workers") {
		cfg.Workers = f.workers
	}

	opts := imaging.GradientOptions{
		Config:     cfg,
		SpacingX:   spacingX,
		SpacingY:   spacingY,
		BlurRadius: blurRadius,
	}
	if changed("spacing-x") {
		opts.SpacingX = f.spacingX
	}
	if changed("spacing-y") {
		opts.SpacingY = f.spacingY
	}
	if opts.SpacingX <= 0 || opts.SpacingY <= 0 {
		return imaging.GradientOptions{}, fmt.Errorf("spacing must be positive, got %g x %g", opts.SpacingX, opts.SpacingY)
	}
	if changed("blur") {
		if f.blur < 0 {
			return imaging.GradientOptions{}, fmt.Errorf("--blur must not be negative, got %g", f.blur)
		}
		opts.BlurRadius = f.blur
	}
	if f.roi != "" {
		roi, err := parseROI(f.roi)
		if err != nil {
			return imaging.GradientOptions{}, err
		}
		opts.ROI = &roi
	}
	return opts, nil
}

// parseROI parses "x1,y1,x2,y2" into a rectangle with x2,y2 exclusive.
func parseROI(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("invalid roi %q: want x1,y1,x2,y2", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("invalid roi %q: %w", s, err)
		}
		v[i] = n
	}
	if v[0] >= v[2] || v[1] >= v[3] {
		return image.Rectangle{}, fmt.Errorf("invalid roi %q: x1 must be < x2, y1 must be < y2", s)
	}
	return image.Rect(v[0], v[1], v[2], v[3]), nil
}
