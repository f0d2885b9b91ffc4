package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// gradientProperties are the filter arguments shared by every gradient tool.
func gradientProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty(),
		"dimensionality": map[string]interface{}{
			"type":        "integer",
			"description": "Number of axes in the gradient: 1 (X only, or the axis given by 'axis') or 2 (X and Y). Default from server config (2)",
			"enum":        []int{1, 2},
		},
		"axis": map[string]interface{}{
			"type":        "string",
			"description": "For dimensionality 1: which image axis to differentiate. Default x",
			"enum":        []string{"x", "y"},
		},
		"handle_boundaries": map[string]interface{}{
			"type":        "boolean",
			"description": "Keep the full image size by replicating edge pixels (true), or drop the outer pixel ring (false). Default true",
		},
		"spacing_x": map[string]interface{}{
			"type":        "number",
			"description": "Physical width of one pixel. Gradients are divided by it. Default 1",
		},
		"spacing_y": map[string]interface{}{
			"type":        "number",
			"description": "Physical height of one pixel. Default 1",
		},
		"blur_radius": map[string]interface{}{
			"type":        "number",
			"description": "Gaussian blur radius applied before differentiating, to suppress noise. 0 disables. Default 0",
		},
		"roi": map[string]interface{}{
			"type":        "object",
			"description": "Optional output region (x1,y1 inclusive; x2,y2 exclusive). Only pixels needed for it are processed",
			"properties": map[string]interface{}{
				"x1": map[string]interface{}{"type": "integer"},
				"y1": map[string]interface{}{"type": "integer"},
				"x2": map[string]interface{}{"type": "integer"},
				"y2": map[string]interface{}{"type": "integer"},
			},
			"required": []string{"x1", "y1", "x2", "y2"},
		},
	}
}

func withProperties(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

func extentSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": description,
		"maxItems":    4,
		"items": map[string]interface{}{
			"type":        "array",
			"description": "Inclusive [min, max] index range for one axis",
			"items":       map[string]interface{}{"type": "integer"},
			"minItems":    2,
			"maxItems":    2,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, sample type and region extent.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_gradient_magnitude",
			Description: "Compute the gradient magnitude (central differences, scaled by pixel spacing) of an image and return it as a colorized base64 PNG with statistics. Bright pixels mark strong intensity changes.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(gradientProperties(), map[string]interface{}{
					"colormap": map[string]interface{}{
						"type":        "string",
						"description": "Output coloring. Default from server config (gray)",
						"enum":        []string{"gray", "heat"},
					},
					"ceiling": map[string]interface{}{
						"type":        "number",
						"description": "Magnitude shown at full intensity. Default: the maximum magnitude",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional output scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
					"grid_spacing": map[string]interface{}{
						"type":        "integer",
						"description": "Draw coordinate grid lines every N image pixels. 0 disables. Default 0",
					},
					"grid_color": map[string]interface{}{
						"type":        "string",
						"description": "Grid line color as hex '#RRGGBB'. Default #00c8ff",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_gradient_stats",
			Description: "Compute the gradient magnitude of an image and return only min/max/mean statistics and the negotiated extents. Cheaper than image_gradient_magnitude when no picture is needed.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": gradientProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_gradient_sample",
			Description: "Compute the gradient magnitude of an image and return its value at specific pixel coordinates. Use it to check how sharp a particular edge is.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(gradientProperties(), map[string]interface{}{
					"points": map[string]interface{}{
						"type":        "array",
						"description": "Pixel coordinates to sample",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string", "description": "Optional name echoed in the result"},
							},
							"required": []string{"x", "y"},
						},
						"minItems": 1,
					},
				}),
				"required": []string{"path", "points"},
			},
		},
		{
			Name:        "image_gradient_extents",
			Description: "Without reading any image, report the output extent a gradient filter produces from an input extent and the input extent it needs for a requested output. Works on up to 4 axes.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_extent": extentSchema("Whole image bounds per axis"),
					"output_extent": extentSchema("Requested output extent. Default: everything the image can produce"),
					"dimensionality": map[string]interface{}{
						"type":        "integer",
						"description": "Number of active axes (1-4). Default 2",
						"minimum":     1,
						"maximum":     4,
					},
					"axes": map[string]interface{}{
						"type":        "array",
						"description": "Active axes in order. Default [0, 1]",
						"items":       map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 3},
					},
					"handle_boundaries": map[string]interface{}{
						"type":        "boolean",
						"description": "Replicate edges (true) or shrink the output (false). Default true",
					},
				},
				"required": []string{"image_extent"},
			},
		},
		{
			Name:        "image_edge_map",
			Description: "Threshold the gradient magnitude of an image into a binary edge map (white = magnitude at or above threshold) returned as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(gradientProperties(), map[string]interface{}{
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Magnitude cut-off in intensity per unit spacing. A hard black-to-white step in an 8-bit image is 255. Default 64",
						"default":     64,
					},
				}),
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
