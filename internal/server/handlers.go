package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/floorsight/floorplan-mcp/internal/calibrate"
	"github.com/floorsight/floorplan-mcp/internal/engine"
	"github.com/floorsight/floorplan-mcp/internal/export"
	"github.com/floorsight/floorplan-mcp/internal/floorplan"
	"github.com/floorsight/floorplan-mcp/internal/geometry"
	"github.com/floorsight/floorplan-mcp/internal/imaging"
	"github.com/floorsight/floorplan-mcp/internal/render"
	"github.com/floorsight/floorplan-mcp/internal/synth"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "floorplan_detect").
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
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Calls into the engine, store, export, or render packages
//  4. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "floorplan_detect":
		return s.handleDetect(args)
	case "floorplan_get_result":
		return s.handleGetResult(args)
	case "floorplan_list_results":
		return s.handleListResults(args)
	case "floorplan_export_3d":
		return s.handleExport3D(args)
	case "floorplan_render_overlay":
		return s.handleRenderOverlay(args)
	case "floorplan_calibrate":
		return s.handleCalibrate(args)
	case "floorplan_register_reference":
		return s.handleRegisterReference(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Detection ===

type detectArgs struct {
	Path          string  `json:"path"`
	Strategy      string  `json:"strategy"`
	Enhance       bool    `json:"enhance"`
	MaxDimension  int     `json:"max_dimension"`
	ScaleFactor   float64 `json:"scale_factor"`
	KnownPixels   float64 `json:"known_pixels"`
	KnownFeet     float64 `json:"known_feet"`
	AssumeWidthFt float64 `json:"assume_width_ft"`
}

// detectResponse is a stored detection result together with the id it was
// saved under. Embedding flattens the result fields into the response.
type detectResponse struct {
	ResultID string `json:"result_id"`
	*floorplan.DetectionResult
}

func (s *Server) handleDetect(args json.RawMessage) (interface{}, error) {
	var a detectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}

	opts, err := s.engineOptions(a)
	if err != nil {
		return nil, err
	}

	res, err := engine.New(opts).DetectFile(a.Path)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	if err := s.store.Save(id, res); err != nil {
		return nil, err
	}
	return detectResponse{ResultID: id, DetectionResult: res}, nil
}

// engineOptions resolves the per-call calibration: an explicit reference
// length wins, then a direct scale factor, then an assumed plan width, and
// only then the session calibration. Per-request settings deliberately
// override the session scale rather than combining with it.
func (s *Server) engineOptions(a detectArgs) (engine.Options, error) {
	opts := engine.Options{
		Strategy: a.Strategy,
		Normalize: imaging.NormalizeOptions{
			MaxDimension: a.MaxDimension,
			Enhance:      a.Enhance,
		},
		Synth: s.synth,
	}

	switch {
	case a.KnownPixels != 0 || a.KnownFeet != 0:
		cal, err := calibrate.Manual(a.KnownPixels, a.KnownFeet)
		if err != nil {
			return engine.Options{}, err
		}
		opts.Calibration = cal
	case a.ScaleFactor > 0:
		opts.Calibration = calibrate.Calibration{
			FeetPerPixel: a.ScaleFactor,
			Source:       calibrate.SourceManual,
			Verified:     true,
		}
	case a.AssumeWidthFt > 0:
		opts.AssumeWidthFt = a.AssumeWidthFt
	default:
		opts.Calibration = s.calibration()
	}
	return opts, nil
}

// === Result retrieval ===

type getResultArgs struct {
	ResultID string `json:"result_id"`
}

func (s *Server) handleGetResult(args json.RawMessage) (interface{}, error) {
	var a getResultArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	res, ok := s.store.Get(a.ResultID)
	if !ok {
		return nil, fmt.Errorf("no result with id %q", a.ResultID)
	}
	return detectResponse{ResultID: a.ResultID, DetectionResult: res}, nil
}

type listResultsResponse struct {
	ResultIDs []string `json:"result_ids"`
	Count     int      `json:"count"`
}

func (s *Server) handleListResults(_ json.RawMessage) (interface{}, error) {
	ids := s.store.List()
	return listResultsResponse{ResultIDs: ids, Count: len(ids)}, nil
}

// === 3D export ===

type export3DArgs struct {
	ResultID      string      `json:"result_id"`
	CeilingHeight float64     `json:"ceiling_height"`
	AddedWalls    []addedWall `json:"added_walls"`
	RemovedWalls  []string    `json:"removed_walls"`
}

type addedWall struct {
	Start     geometry.Point2D `json:"start"`
	End       geometry.Point2D `json:"end"`
	Thickness float64          `json:"thickness"`
	Type      string           `json:"type"`
}

func (s *Server) handleExport3D(args json.RawMessage) (interface{}, error) {
	var a export3DArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	res, ok := s.store.Get(a.ResultID)
	if !ok {
		return nil, fmt.Errorf("no result with id %q", a.ResultID)
	}

	overlay := export.Overlay{Removed: a.RemovedWalls}
	for _, w := range a.AddedWalls {
		thickness := w.Thickness
		if thickness <= 0 {
			thickness = floorplan.DefaultWallThickness
		}
		wallType := floorplan.WallType(w.Type)
		if w.Type == "" {
			wallType = floorplan.WallInterior
		}
		overlay.Added = append(overlay.Added, floorplan.NewWall(w.Start, w.End, thickness, wallType))
	}

	return export.Extrude(res, export.ExtrudeOptions{
		CeilingHeight: a.CeilingHeight,
		Overlay:       overlay,
	})
}

// === Overlay rendering ===

type renderOverlayArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
	Strategy   string `json:"strategy"`
}

type renderOverlayResponse struct {
	OutputPath    string `json:"output_path"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	RoomsDetected int    `json:"rooms_detected"`
	WallCount     int    `json:"wall_count"`
	Method        string `json:"method"`
	Fallback      bool   `json:"fallback"`
}

func (s *Server) handleRenderOverlay(args json.RawMessage) (interface{}, error) {
	var a renderOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" || a.OutputPath == "" {
		return nil, errors.New("path and output_path are required")
	}

	img, raw, err := imaging.LoadFile(a.Path)
	if err != nil {
		return nil, err
	}

	eng := engine.New(engine.Options{
		Strategy:    a.Strategy,
		Calibration: s.calibration(),
		Synth:       s.synth,
	})
	res, err := eng.Detect(img, synth.Fingerprint(raw))
	if err != nil {
		return nil, err
	}

	// Annotate the original image, not the downscaled working buffer;
	// normalized coordinates land correctly on either.
	annotated := render.Overlay(img, res, render.Options{})
	if err := imaging.Save(a.OutputPath, annotated); err != nil {
		return nil, err
	}

	b := annotated.Bounds()
	return renderOverlayResponse{
		OutputPath:    a.OutputPath,
		Width:         b.Dx(),
		Height:        b.Dy(),
		RoomsDetected: res.RoomsDetected,
		WallCount:     res.WallCount,
		Method:        res.Method,
		Fallback:      res.Fallback,
	}, nil
}

// === Calibration ===

type calibrateArgs struct {
	KnownPixels float64 `json:"known_pixels"`
	KnownFeet   float64 `json:"known_feet"`
}

func (s *Server) handleCalibrate(args json.RawMessage) (interface{}, error) {
	var a calibrateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	cal, err := calibrate.Manual(a.KnownPixels, a.KnownFeet)
	if err != nil {
		return nil, err
	}
	s.setCalibration(cal)
	return cal, nil
}

// === Reference layouts ===

type registerReferenceArgs struct {
	Path   string       `json:"path"`
	Layout synth.Layout `json:"layout"`
}

type registerReferenceResponse struct {
	Fingerprint string `json:"fingerprint"`
	Rooms       int    `json:"rooms"`
}

func (s *Server) handleRegisterReference(args json.RawMessage) (interface{}, error) {
	var a registerReferenceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Layout.Rooms) == 0 {
		return nil, errors.New("layout needs at least one room")
	}
	for i, room := range a.Layout.Rooms {
		if !room.Type.Valid() {
			return nil, fmt.Errorf("room %d: unknown type %q", i, room.Type)
		}
		if len(room.Boundary) < 3 {
			return nil, fmt.Errorf("room %d: boundary needs at least 3 points", i)
		}
	}

	_, raw, err := imaging.LoadFile(a.Path)
	if err != nil {
		return nil, err
	}

	fp := synth.Fingerprint(raw)
	s.synth.RegisterReferenceLayout(fp, a.Layout)
	return registerReferenceResponse{Fingerprint: fp, Rooms: len(a.Layout.Rooms)}, nil
}
