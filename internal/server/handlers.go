package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"time"

	"github.com/ironsheep/image-gradient-mcp/internal/gradient"
	"github.com/ironsheep/image-gradient-mcp/internal/imaging"
	"github.com/ironsheep/image-gradient-mcp/internal/region"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_gradient_magnitude").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "err", err)
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}
	s.logger.Debug("tool done", "tool", params.Name, "elapsed", time.Since(start).Round(time.Millisecond))

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_gradient_magnitude":
		return s.handleGradientMagnitude(ctx, args)
	case "image_gradient_stats":
		return s.handleGradientStats(ctx, args)
	case "image_gradient_sample":
		return s.handleGradientSample(ctx, args)
	case "image_gradient_extents":
		return s.handleGradientExtents(args)
	case "image_edge_map":
		return s.handleEdgeMap(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Image Information ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Gradient Handlers ===

type roiArgs struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

type gradientArgs struct {
	Path             string   `json:"path"`
	Dimensionality   int      `json:"dimensionality"`
	Axis             string   `json:"axis"`
	HandleBoundaries *bool    `json:"handle_boundaries"`
	SpacingX         float64  `json:"spacing_x"`
	SpacingY         float64  `json:"spacing_y"`
	BlurRadius       *float64 `json:"blur_radius"`
	ROI              *roiArgs `json:"roi"`
}

// gradientResult is returned by the magnitude, stats and edge map tools.
type gradientResult struct {
	Config       string                    `json:"config"`
	OutputExtent string                    `json:"output_extent"`
	InputExtent  string                    `json:"input_extent"`
	Width        int                       `json:"width"`
	Height       int                       `json:"height"`
	Stats        gradient.Stats            `json:"stats"`
	Image        *imaging.RenderResult     `json:"image,omitempty"`
	Edges        *imaging.EdgeMapResult    `json:"edges,omitempty"`
	Samples      []imaging.MagnitudeSample `json:"samples,omitempty"`
}

// options merges request arguments over the server defaults.
func (s *Server) options(a gradientArgs) (imaging.GradientOptions, error) {
	cfg := s.cfg.Gradient
	cfg.Axes = append([]int(nil), cfg.Axes...)

	switch a.Dimensionality {
	case 0:
	case 1:
		cfg.Dimensionality = 1
		switch a.Axis {
		case "", "x":
			cfg.Axes = []int{0}
		case "y":
			cfg.Axes = []int{1}
		default:
			return imaging.GradientOptions{}, fmt.Errorf("axis must be x or y, got %q", a.Axis)
		}
	case 2:
		cfg.Dimensionality = 2
		cfg.Axes = []int{0, 1}
	default:
		return imaging.GradientOptions{}, fmt.Errorf("dimensionality must be 1 or 2 for images, got %d", a.Dimensionality)
	}
	if a.HandleBoundaries != nil {
		cfg.HandleBoundaries = *a.HandleBoundaries
	}

	opts := imaging.GradientOptions{
		Config:     cfg,
		SpacingX:   s.cfg.Image.SpacingX,
		SpacingY:   s.cfg.Image.SpacingY,
		BlurRadius: s.cfg.Image.BlurRadius,
	}
	if a.SpacingX != 0 {
		opts.SpacingX = a.SpacingX
	}
	if a.SpacingY != 0 {
		opts.SpacingY = a.SpacingY
	}
	if opts.SpacingX < 0 || opts.SpacingY < 0 {
		return imaging.GradientOptions{}, fmt.Errorf("spacing must be positive, got %g x %g", opts.SpacingX, opts.SpacingY)
	}
	if a.BlurRadius != nil {
		if *a.BlurRadius < 0 {
			return imaging.GradientOptions{}, fmt.Errorf("blur_radius must not be negative, got %g", *a.BlurRadius)
		}
		opts.BlurRadius = *a.BlurRadius
	}
	if a.ROI != nil {
		roi := image.Rect(a.ROI.X1, a.ROI.Y1, a.ROI.X2, a.ROI.Y2)
		if a.ROI.X1 >= a.ROI.X2 || a.ROI.Y1 >= a.ROI.Y2 {
			return imaging.GradientOptions{}, fmt.Errorf("invalid roi: x1 must be < x2, y1 must be < y2")
		}
		opts.ROI = &roi
	}
	return opts, nil
}

// runGradient loads the image named in a and runs the filter on it.
func (s *Server) runGradient(ctx context.Context, a gradientArgs) (*gradient.Result, *gradientResult, error) {
	opts, err := s.options(a)
	if err != nil {
		return nil, nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, nil, err
	}

	res, err := imaging.ComputeGradient(ctx, img, opts)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Debug("gradient computed", "path", a.Path, "output", res.OutputExtent, "input", res.InputExtent)

	return res, &gradientResult{
		Config:       opts.Config.String(),
		OutputExtent: res.OutputExtent.String(),
		InputExtent:  res.InputExtent.String(),
		Width:        res.OutputExtent[0].Len(),
		Height:       res.OutputExtent[1].Len(),
		Stats:        gradient.Summarize(res.Output),
	}, nil
}

type gradientMagnitudeArgs struct {
	gradientArgs
	Colormap    string  `json:"colormap"`
	Ceiling     float64 `json:"ceiling"`
	Scale       float64 `json:"scale"`
	GridSpacing int     `json:"grid_spacing"`
	GridColor   string  `json:"grid_color"`
}

func (s *Server) handleGradientMagnitude(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a gradientMagnitudeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	if a.Colormap == "" {
		a.Colormap = s.cfg.Render.Colormap
	}
	if a.GridSpacing < 0 {
		return nil, fmt.Errorf("grid_spacing must not be negative, got %d", a.GridSpacing)
	}

	res, out, err := s.runGradient(ctx, a.gradientArgs)
	if err != nil {
		return nil, err
	}
	out.Image, err = imaging.RenderMagnitude(res.Output, imaging.RenderOptions{
		Colormap:    a.Colormap,
		HeatStops:   s.cfg.Render.HeatStops,
		Ceiling:     a.Ceiling,
		Scale:       a.Scale,
		GridSpacing: a.GridSpacing,
		GridColor:   a.GridColor,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Server) handleGradientStats(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a gradientArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, out, err := s.runGradient(ctx, a)
	return out, err
}

type gradientSampleArgs struct {
	gradientArgs
	Points []imaging.LabeledPoint `json:"points"`
}

func (s *Server) handleGradientSample(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a gradientSampleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Points) == 0 {
		return nil, fmt.Errorf("points must not be empty")
	}

	res, out, err := s.runGradient(ctx, a.gradientArgs)
	if err != nil {
		return nil, err
	}
	samples, err := imaging.SampleMagnitude(res.Output, a.Points)
	if err != nil {
		return nil, err
	}
	out.Samples = samples.Samples
	return out, nil
}

type edgeMapArgs struct {
	gradientArgs
	Threshold float64 `json:"threshold"`
}

func (s *Server) handleEdgeMap(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a edgeMapArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Threshold == 0 {
		a.Threshold = 64
	}

	res, out, err := s.runGradient(ctx, a.gradientArgs)
	if err != nil {
		return nil, err
	}
	out.Edges, err = imaging.EdgeMap(res.Output, a.Threshold)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// === Extent Negotiation ===

type gradientExtentsArgs struct {
	ImageExtent      [][]int `json:"image_extent"`
	OutputExtent     [][]int `json:"output_extent"`
	Dimensionality   int     `json:"dimensionality"`
	Axes             []int   `json:"axes"`
	HandleBoundaries *bool   `json:"handle_boundaries"`
}

// gradientExtentsResult lists extents as [min, max] pairs per axis.
type gradientExtentsResult struct {
	Config              string   `json:"config"`
	ActiveAxes          []int    `json:"active_axes"`
	ProducibleExtent    [][2]int `json:"producible_extent"`
	OutputExtent        [][2]int `json:"output_extent"`
	RequiredInputExtent [][2]int `json:"required_input_extent"`
}

func parseExtent(pairs [][]int, name string) (region.Extent, error) {
	var ext region.Extent
	if len(pairs) > region.MaxAxes {
		return ext, fmt.Errorf("%s: at most %d axes, got %d", name, region.MaxAxes, len(pairs))
	}
	for a, p := range pairs {
		if len(p) != 2 {
			return ext, fmt.Errorf("%s: axis %d needs [min, max], got %v", name, a, p)
		}
		ext[a] = region.Range{Min: p[0], Max: p[1]}
	}
	return ext, nil
}

func extentPairs(ext region.Extent) [][2]int {
	pairs := make([][2]int, region.MaxAxes)
	for a, r := range ext {
		pairs[a] = [2]int{r.Min, r.Max}
	}
	return pairs
}

func (s *Server) handleGradientExtents(args json.RawMessage) (interface{}, error) {
	var a gradientExtentsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	cfg := gradient.DefaultConfig()
	if a.Dimensionality != 0 {
		cfg.Dimensionality = a.Dimensionality
		cfg.Axes = nil
	}
	if a.Axes != nil {
		cfg.Axes = a.Axes
	}
	if a.HandleBoundaries != nil {
		cfg.HandleBoundaries = *a.HandleBoundaries
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	img, err := parseExtent(a.ImageExtent, "image_extent")
	if err != nil {
		return nil, err
	}
	producible := gradient.ComputeOutputExtent(img, cfg)
	out := producible
	if a.OutputExtent != nil {
		if out, err = parseExtent(a.OutputExtent, "output_extent"); err != nil {
			return nil, err
		}
	}
	required := gradient.ComputeRequiredInputExtent(out, img, cfg)

	perm := cfg.Permutation()
	return &gradientExtentsResult{
		Config:              cfg.String(),
		ActiveAxes:          append([]int(nil), perm[:cfg.ActiveDims()]...),
		ProducibleExtent:    extentPairs(producible),
		OutputExtent:        extentPairs(out),
		RequiredInputExtent: extentPairs(required),
	}, nil
}
