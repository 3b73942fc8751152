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

func densityProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"minimum":     0,
		"description": "Rectangles per unit of darkness (one fully black pixel). Defaults to the server setting",
	}
}

func preprocessProperties(props map[string]interface{}) map[string]interface{} {
	props["blur_sigma"] = map[string]interface{}{
		"type":        "number",
		"minimum":     0,
		"description": "Gaussian blur radius applied before measuring darkness. 0 disables. Defaults to the server setting",
	}
	props["max_size"] = map[string]interface{}{
		"type":        "integer",
		"minimum":     0,
		"description": "Downscale so the longest side is at most this many pixels. 0 disables. Defaults to the server setting",
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and total darkness.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_analyze",
			Description: "Measure the darkness of an image and report how many rectangles it would be divided into at a given density, without rendering.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": preprocessProperties(map[string]interface{}{
					"path":            pathProperty(),
					"rects_per_pixel": densityProperty(),
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_rectanglify",
			Description: "Redraw an image as black-bordered rectangles on white, with more and smaller rectangles where the image is darker. Returns base64 PNG, or writes to output_path when given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": preprocessProperties(map[string]interface{}{
					"path":            pathProperty(),
					"rects_per_pixel": densityProperty(),
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to write the result to. The format follows the extension",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "settings_get",
			Description: "Return the server's default density and preprocessing options.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "settings_set",
			Description: "Change the server's default density. Calls already running keep the value they started with.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"rects_per_pixel": map[string]interface{}{
						"type":        "number",
						"minimum":     0,
						"description": "New default rectangles per unit of darkness",
					},
				},
				"required": []string{"rects_per_pixel"},
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
