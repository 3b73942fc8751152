package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/rectanglify/internal/imaging"
	"github.com/ironsheep/rectanglify/internal/rects"
)

// errInvalidArgs marks argument errors so they are reported as -32602.
var errInvalidArgs = errors.New("invalid arguments")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_rectanglify").
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
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if errors.Is(err, errInvalidArgs) {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}
	if err != nil {
		s.logger.Warn("Tool failed", "tool", params.Name, "err", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_analyze":
		return s.handleImageAnalyze(args)
	case "image_rectanglify":
		return s.handleImageRectanglify(args)

	case "settings_get":
		return s.handleSettingsGet()
	case "settings_set":
		return s.handleSettingsSet(args)

	default:
		return nil, fmt.Errorf("%w: unknown tool: %s", errInvalidArgs, name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArgs, err)
	}
	return nil
}

func checkDensity(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: rects_per_pixel must be finite and >= 0, got %v", errInvalidArgs, v)
	}
	return nil
}

// styleArgs are the per-call overrides shared by image_analyze and
// image_rectanglify. Nil fields fall back to the server defaults.
type styleArgs struct {
	Path          string   `json:"path"`
	RectsPerPixel *float64 `json:"rects_per_pixel"`
	BlurSigma     *float64 `json:"blur_sigma"`
	MaxSize       *int     `json:"max_size"`
}

// resolve validates a and merges it over one snapshot of the server defaults.
func (s *Server) resolve(a styleArgs) (rects.Settings, imaging.PreprocessOptions, error) {
	settings := s.settings.Snapshot()
	opts := s.preproc

	if a.Path == "" {
		return settings, opts, fmt.Errorf("%w: path is required", errInvalidArgs)
	}
	if a.RectsPerPixel != nil {
		if err := checkDensity(*a.RectsPerPixel); err != nil {
			return settings, opts, err
		}
		settings.RectsPerPixel = *a.RectsPerPixel
	}
	if a.BlurSigma != nil {
		if *a.BlurSigma < 0 {
			return settings, opts, fmt.Errorf("%w: blur_sigma must be >= 0", errInvalidArgs)
		}
		opts.BlurSigma = *a.BlurSigma
	}
	if a.MaxSize != nil {
		if *a.MaxSize < 0 {
			return settings, opts, fmt.Errorf("%w: max_size must be >= 0", errInvalidArgs)
		}
		opts.MaxSize = *a.MaxSize
	}
	return settings, opts, nil
}

// === Image Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("%w: path is required", errInvalidArgs)
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageAnalyze(args json.RawMessage) (interface{}, error) {
	var a styleArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	settings, opts, err := s.resolve(a)
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Analyze(imaging.Preprocess(img, opts), settings), nil
}

type imageRectanglifyArgs struct {
	styleArgs
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageRectanglify(args json.RawMessage) (interface{}, error) {
	var a imageRectanglifyArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	settings, opts, err := s.resolve(a.styleArgs)
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	out, res := imaging.Stylize(img, settings, opts)
	s.logger.Debug("Stylized", "path", a.Path, "rects", res.Rects, "darkness", res.Darkness)

	if a.OutputPath == "" {
		return imaging.EncodeResult(out, res)
	}

	if err := imaging.Save(out, a.OutputPath); err != nil {
		return nil, err
	}
	s.cache.Evict(a.OutputPath)
	return &imaging.RenderResult{
		Width:      out.Bounds().Dx(),
		Height:     out.Bounds().Dy(),
		OutputPath: a.OutputPath,
		Stats:      res,
	}, nil
}

// === Settings Handlers ===

// SettingsInfo reports the server defaults.
type SettingsInfo struct {
	RectsPerPixel float64 `json:"rects_per_pixel"`
	BlurSigma     float64 `json:"blur_sigma"`
	MaxSize       int     `json:"max_size"`
}

func (s *Server) handleSettingsGet() (interface{}, error) {
	return &SettingsInfo{
		RectsPerPixel: s.settings.Snapshot().RectsPerPixel,
		BlurSigma:     s.preproc.BlurSigma,
		MaxSize:       s.preproc.MaxSize,
	}, nil
}

type settingsSetArgs struct {
	RectsPerPixel *float64 `json:"rects_per_pixel"`
}

// SettingsChange reports a density update.
type SettingsChange struct {
	Previous      float64 `json:"previous"`
	RectsPerPixel float64 `json:"rects_per_pixel"`
}

func (s *Server) handleSettingsSet(args json.RawMessage) (interface{}, error) {
	var a settingsSetArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.RectsPerPixel == nil {
		return nil, fmt.Errorf("%w: rects_per_pixel is required", errInvalidArgs)
	}
	if err := checkDensity(*a.RectsPerPixel); err != nil {
		return nil, err
	}

	old := s.settings.SetRectsPerPixel(*a.RectsPerPixel)
	s.logger.Infof("Changing rects-per-pixel from %g to %g", old, *a.RectsPerPixel)
	return &SettingsChange{Previous: old, RectsPerPixel: *a.RectsPerPixel}, nil
}
