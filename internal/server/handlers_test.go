package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ironsheep/rectanglify/internal/imaging"
	"github.com/ironsheep/rectanglify/internal/rects"
)

// createTestImageFile writes a PNG that is dark on the left half and white
// on the right, and returns its path.
func createTestImageFile(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				img.Set(x, y, color.RGBA{30, 30, 30, 255})
			} else {
				img.Set(x, y, color.White)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "input.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// callTool sends a tools/call request and returns the response.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	params, err := json.Marshal(map[string]interface{}{
		"name":      name,
		"arguments": args,
	})
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  params,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeContent unmarshals the text content of a successful tool response into v.
func decodeContent(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("unexpected content: %v", result["content"])
	}
	text, _ := content[0]["text"].(string)
	if err := json.Unmarshal([]byte(text), v); err != nil {
		t.Fatalf("failed to decode tool result %q: %v", text, err)
	}
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := newTestServer(t)
	path := createTestImageFile(t, 100, 80)

	var info imaging.ImageInfo
	decodeContent(t, callTool(t, s, "image_load", map[string]interface{}{"path": path}), &info)

	if info.Width != 100 || info.Height != 80 {
		t.Errorf("size = %dx%d, want 100x80", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format = %q, want png", info.Format)
	}
	if info.TotalDarkness <= 0 {
		t.Errorf("TotalDarkness = %v, want > 0", info.TotalDarkness)
	}
}

func TestHandleToolsCall_ImageAnalyze(t *testing.T) {
	s := newTestServer(t)
	path := createTestImageFile(t, 40, 20)

	var report imaging.DarknessReport
	decodeContent(t, callTool(t, s, "image_analyze", map[string]interface{}{
		"path":            path,
		"rects_per_pixel": 0.5,
	}), &report)

	if report.RectsPerPixel != 0.5 {
		t.Errorf("RectsPerPixel = %v, want 0.5", report.RectsPerPixel)
	}
	if report.MaxRects != 800 {
		t.Errorf("MaxRects = %d, want 800", report.MaxRects)
	}
	if report.Rects == 0 || report.Rects > report.MaxRects {
		t.Errorf("Rects = %d", report.Rects)
	}
}

func TestHandleToolsCall_ImageAnalyzeMaxSize(t *testing.T) {
	s := newTestServer(t)
	path := createTestImageFile(t, 40, 20)

	var report imaging.DarknessReport
	decodeContent(t, callTool(t, s, "image_analyze", map[string]interface{}{
		"path":     path,
		"max_size": 10,
	}), &report)

	if report.Width != 10 || report.Height != 5 {
		t.Errorf("size = %dx%d, want 10x5", report.Width, report.Height)
	}
}

func TestHandleToolsCall_ImageRectanglify(t *testing.T) {
	s := newTestServer(t)
	path := createTestImageFile(t, 32, 24)

	var res imaging.RenderResult
	decodeContent(t, callTool(t, s, "image_rectanglify", map[string]interface{}{
		"path":            path,
		"rects_per_pixel": 0.2,
	}), &res)

	if res.Width != 32 || res.Height != 24 {
		t.Errorf("size = %dx%d", res.Width, res.Height)
	}
	if res.MimeType != "image/png" || res.ImageBase64 == "" {
		t.Fatalf("expected inline PNG, got mime %q", res.MimeType)
	}
	if res.Stats.Rects == 0 {
		t.Error("expected rectangles")
	}
	if res.Stats.Leaves+res.Stats.Dropped != res.Stats.Rects {
		t.Errorf("Leaves %d + Dropped %d != Rects %d", res.Stats.Leaves, res.Stats.Dropped, res.Stats.Rects)
	}
}

func TestHandleToolsCall_ImageRectanglifyToFile(t *testing.T) {
	s := newTestServer(t)
	path := createTestImageFile(t, 32, 24)
	outPath := filepath.Join(t.TempDir(), "out.png")

	var res imaging.RenderResult
	decodeContent(t, callTool(t, s, "image_rectanglify", map[string]interface{}{
		"path":        path,
		"output_path": outPath,
	}), &res)

	if res.OutputPath != outPath {
		t.Errorf("OutputPath = %q, want %q", res.OutputPath, outPath)
	}
	if res.ImageBase64 != "" {
		t.Error("expected no inline image when writing to a file")
	}

	// The written file is loadable and grayscale.
	var info imaging.ImageInfo
	decodeContent(t, callTool(t, s, "image_load", map[string]interface{}{"path": outPath}), &info)
	if !info.Grayscale || info.Width != 32 || info.Height != 24 {
		t.Errorf("unexpected output info: %+v", info)
	}
}

func TestHandleToolsCall_Settings(t *testing.T) {
	var logs bytes.Buffer
	s := New(log.New(&logs), rects.DefaultSettings(), imaging.PreprocessOptions{BlurSigma: 1.5})

	var got SettingsInfo
	decodeContent(t, callTool(t, s, "settings_get", nil), &got)
	if got.RectsPerPixel != rects.DefaultRectsPerPixel || got.BlurSigma != 1.5 {
		t.Errorf("settings_get = %+v", got)
	}

	var change SettingsChange
	decodeContent(t, callTool(t, s, "settings_set", map[string]interface{}{"rects_per_pixel": 0.3}), &change)
	if change.Previous != rects.DefaultRectsPerPixel || change.RectsPerPixel != 0.3 {
		t.Errorf("settings_set = %+v", change)
	}
	if !strings.Contains(logs.String(), "Changing rects-per-pixel") {
		t.Errorf("expected change to be logged, got %q", logs.String())
	}

	decodeContent(t, callTool(t, s, "settings_get", nil), &got)
	if got.RectsPerPixel != 0.3 {
		t.Errorf("RectsPerPixel after set = %v, want 0.3", got.RectsPerPixel)
	}

	// Later calls without an override use the new default.
	var report imaging.DarknessReport
	decodeContent(t, callTool(t, s, "image_analyze", map[string]interface{}{
		"path": createTestImageFile(t, 8, 8),
	}), &report)
	if report.RectsPerPixel != 0.3 {
		t.Errorf("analyze used %v, want 0.3", report.RectsPerPixel)
	}
}

func TestHandleToolsCall_InvalidArguments(t *testing.T) {
	path := createTestImageFile(t, 8, 8)

	tests := []struct {
		name string
		tool string
		args map[string]interface{}
	}{
		{"missing path", "image_rectanglify", map[string]interface{}{}},
		{"negative density", "image_rectanglify", map[string]interface{}{"path": path, "rects_per_pixel": -1}},
		{"negative blur", "image_analyze", map[string]interface{}{"path": path, "blur_sigma": -2}},
		{"negative size", "image_analyze", map[string]interface{}{"path": path, "max_size": -1}},
		{"wrong type", "image_load", map[string]interface{}{"path": 42}},
		{"missing density", "settings_set", map[string]interface{}{}},
		{"negative setting", "settings_set", map[string]interface{}{"rects_per_pixel": -0.5}},
		{"unknown tool", "image_crop", map[string]interface{}{"path": path}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, newTestServer(t), tt.tool, tt.args)
			if resp.Error == nil {
				t.Fatal("expected error")
			}
			if resp.Error.Code != -32602 {
				t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
			}
		})
	}
}

func TestHandleToolsCall_ToolFailure(t *testing.T) {
	s := newTestServer(t)
	resp := callTool(t, s, "image_rectanglify", map[string]interface{}{
		"path": "/nonexistent/image.png",
	})

	if resp.Error == nil {
		t.Fatal("expected error for a missing image")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})

	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("expected -32602, got %+v", resp.Error)
	}
}
