package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/floorsight/floorplan-mcp/internal/calibrate"
	"github.com/floorsight/floorplan-mcp/internal/export"
	"github.com/floorsight/floorplan-mcp/internal/floorplan"
	"github.com/floorsight/floorplan-mcp/internal/geometry"
	"github.com/floorsight/floorplan-mcp/internal/imaging"
	"github.com/floorsight/floorplan-mcp/internal/store"
	"github.com/floorsight/floorplan-mcp/internal/synth"
)

// sheet builds a uniform grayscale image.
func sheet(width, height int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func inkRect(img *image.Gray, x1, y1, x2, y2 int) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			img.SetGray(x, y, color.Gray{})
		}
	}
}

// quadrantSheet draws the canonical four-room test plan: an 800x600 white
// sheet with a 3px border rectangle from (50,50) to (750,550) and 3px
// divider strokes at x=400 and y=300.
func quadrantSheet() *image.Gray {
	img := sheet(800, 600, 255)
	inkRect(img, 50, 50, 750, 53)
	inkRect(img, 50, 547, 750, 550)
	inkRect(img, 50, 50, 53, 550)
	inkRect(img, 747, 50, 750, 550)
	inkRect(img, 399, 50, 402, 550)
	inkRect(img, 50, 299, 750, 302)
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding %s: %v", path, err)
	}
}

func argsJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshaling args: %v", err)
	}
	return b
}

func TestExecuteTool_Detect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.png")
	writePNG(t, path, sheet(800, 600, 255))

	st := store.NewMemory()
	s := New(st)

	out, err := s.executeTool("floorplan_detect", argsJSON(t, map[string]interface{}{
		"path": path,
	}))
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}

	resp, ok := out.(detectResponse)
	if !ok {
		t.Fatalf("result type = %T, want detectResponse", out)
	}
	if len(resp.ResultID) != 36 {
		t.Errorf("result id %q does not look like a UUID", resp.ResultID)
	}
	if resp.RoomsDetected != 1 {
		t.Errorf("rooms: got %d, want 1", resp.RoomsDetected)
	}
	if resp.Fallback {
		t.Error("blank sheet triggered fallback; want a measured region")
	}

	stored, ok := st.Get(resp.ResultID)
	if !ok {
		t.Fatalf("result not saved under %q", resp.ResultID)
	}
	if stored != resp.DetectionResult {
		t.Error("stored result is not the returned result")
	}
}

func TestExecuteTool_Detect_SavesEachCall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.png")
	writePNG(t, path, sheet(800, 600, 255))

	st := store.NewMemory()
	s := New(st)

	args := argsJSON(t, map[string]interface{}{"path": path})
	for i := 0; i < 2; i++ {
		if _, err := s.executeTool("floorplan_detect", args); err != nil {
			t.Fatalf("detect %d failed: %v", i, err)
		}
	}

	if ids := st.List(); len(ids) != 2 {
		t.Errorf("stored %d results, want 2 (one per call)", len(ids))
	}
}

func TestExecuteTool_Detect_InputErrors(t *testing.T) {
	s := New(nil)

	if _, err := s.executeTool("floorplan_detect", []byte(`{}`)); err == nil {
		t.Error("missing path should fail")
	}
	if _, err := s.executeTool("floorplan_detect", []byte(`{"path":"/no/such/plan.png"}`)); err == nil {
		t.Error("unreadable file should fail")
	}
	if _, err := s.executeTool("floorplan_detect", []byte(`{"path":42}`)); err == nil {
		t.Error("mistyped arguments should fail")
	}
}

func TestExecuteTool_Detect_UnknownStrategy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.png")
	writePNG(t, path, sheet(800, 600, 255))

	s := New(nil)
	_, err := s.executeTool("floorplan_detect", argsJSON(t, map[string]interface{}{
		"path":     path,
		"strategy": "neural",
	}))
	if err == nil || !strings.Contains(err.Error(), "neural") {
		t.Errorf("unknown strategy error = %v, want mention of the bad name", err)
	}
}

func TestExecuteTool_Detect_ScaleFactor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.png")
	writePNG(t, path, sheet(800, 600, 255))

	s := New(nil)
	out, err := s.executeTool("floorplan_detect", argsJSON(t, map[string]interface{}{
		"path":         path,
		"scale_factor": 0.05,
	}))
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}

	resp := out.(detectResponse)
	if resp.ScaleFactor != 0.05 {
		t.Errorf("scale factor: got %g, want 0.05", resp.ScaleFactor)
	}
	if !resp.ScaleVerified {
		t.Error("explicit scale factor should be verified")
	}
	// 480000 px^2 at 0.0025 sqft per px^2
	if resp.TotalSqft != 1200 {
		t.Errorf("total sqft: got %.1f, want 1200", resp.TotalSqft)
	}
}

func TestExecuteTool_Detect_KnownReference(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.png")
	writePNG(t, path, sheet(800, 600, 255))

	s := New(nil)
	out, err := s.executeTool("floorplan_detect", argsJSON(t, map[string]interface{}{
		"path":         path,
		"known_pixels": 20,
		"known_feet":   1,
	}))
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}

	resp := out.(detectResponse)
	if resp.ScaleFactor != 0.05 || !resp.ScaleVerified {
		t.Errorf("calibration: scale %g verified %v, want 0.05 verified",
			resp.ScaleFactor, resp.ScaleVerified)
	}

	// A reference needs both halves.
	_, err = s.executeTool("floorplan_detect", argsJSON(t, map[string]interface{}{
		"path":         path,
		"known_pixels": 20,
	}))
	if err == nil {
		t.Error("known_pixels without known_feet should fail")
	}
}

func TestExecuteTool_Detect_AssumedWidth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.png")
	writePNG(t, path, sheet(800, 600, 255))

	s := New(nil)
	out, err := s.executeTool("floorplan_detect", argsJSON(t, map[string]interface{}{
		"path":            path,
		"assume_width_ft": 36,
	}))
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}

	resp := out.(detectResponse)
	// 36 ft across 90% of 800 px.
	if resp.ScaleFactor != 0.05 {
		t.Errorf("scale factor: got %g, want 0.05", resp.ScaleFactor)
	}
	if resp.ScaleVerified {
		t.Error("assumed-width estimate must stay unverified")
	}
}

func TestExecuteTool_GetResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.png")
	writePNG(t, path, sheet(800, 600, 255))

	s := New(nil)
	out, err := s.executeTool("floorplan_detect", argsJSON(t, map[string]interface{}{
		"path": path,
	}))
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	id := out.(detectResponse).ResultID

	got, err := s.executeTool("floorplan_get_result", argsJSON(t, map[string]interface{}{
		"result_id": id,
	}))
	if err != nil {
		t.Fatalf("get_result failed: %v", err)
	}
	resp := got.(detectResponse)
	if resp.ResultID != id {
		t.Errorf("result id: got %q, want %q", resp.ResultID, id)
	}
	if resp.RoomsDetected != 1 {
		t.Errorf("rooms: got %d, want 1", resp.RoomsDetected)
	}

	if _, err := s.executeTool("floorplan_get_result", []byte(`{"result_id":"missing"}`)); err == nil {
		t.Error("unknown result id should fail")
	}
}

func TestExecuteTool_ListResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.png")
	writePNG(t, path, sheet(800, 600, 255))

	s := New(nil)

	out, err := s.executeTool("floorplan_list_results", []byte(`{}`))
	if err != nil {
		t.Fatalf("list_results failed: %v", err)
	}
	if resp := out.(listResultsResponse); resp.Count != 0 || len(resp.ResultIDs) != 0 {
		t.Errorf("fresh server list = %+v, want empty", resp)
	}

	args := argsJSON(t, map[string]interface{}{"path": path})
	for i := 0; i < 2; i++ {
		if _, err := s.executeTool("floorplan_detect", args); err != nil {
			t.Fatalf("detect %d failed: %v", i, err)
		}
	}

	out, err = s.executeTool("floorplan_list_results", []byte(`{}`))
	if err != nil {
		t.Fatalf("list_results failed: %v", err)
	}
	resp := out.(listResultsResponse)
	if resp.Count != 2 || len(resp.ResultIDs) != 2 {
		t.Errorf("list after two detects = %+v", resp)
	}
	if resp.Count == 2 && resp.ResultIDs[0] == resp.ResultIDs[1] {
		t.Error("detect calls reused a result id")
	}
}

func TestExecuteTool_Calibrate(t *testing.T) {
	s := New(nil)

	out, err := s.executeTool("floorplan_calibrate", []byte(`{"known_pixels":20,"known_feet":1}`))
	if err != nil {
		t.Fatalf("calibrate failed: %v", err)
	}

	cal, ok := out.(calibrate.Calibration)
	if !ok {
		t.Fatalf("result type = %T, want calibrate.Calibration", out)
	}
	if cal.FeetPerPixel != 0.05 || cal.Source != calibrate.SourceManual || !cal.Verified {
		t.Errorf("calibration = %+v", cal)
	}

	// The session scale now applies to detections with no per-call scale.
	path := filepath.Join(t.TempDir(), "plan.png")
	writePNG(t, path, sheet(800, 600, 255))
	res, err := s.executeTool("floorplan_detect", argsJSON(t, map[string]interface{}{
		"path": path,
	}))
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	if got := res.(detectResponse).TotalSqft; got != 1200 {
		t.Errorf("total sqft under session calibration: got %.1f, want 1200", got)
	}

	if _, err := s.executeTool("floorplan_calibrate", []byte(`{"known_pixels":0,"known_feet":1}`)); err == nil {
		t.Error("zero reference should fail")
	}
}

func exportFixture() *floorplan.DetectionResult {
	return &floorplan.DetectionResult{
		ImageWidth:  800,
		ImageHeight: 600,
		ScaleFactor: 0.05,
		DetailedRooms: []floorplan.Room{{
			Type:     floorplan.RoomLiving,
			Boundary: geometry.RectRing(0, 0, 0.5, 0.5),
		}},
		DetailedWalls: []floorplan.Wall{
			floorplan.NewWall(
				geometry.Point2D{X: 0.25, Y: 0.5},
				geometry.Point2D{X: 0.75, Y: 0.5},
				6, floorplan.WallInterior),
		},
	}
}

func TestExecuteTool_Export3D(t *testing.T) {
	st := store.NewMemory()
	s := New(st)
	if err := st.Save("known", exportFixture()); err != nil {
		t.Fatalf("seeding store: %v", err)
	}

	out, err := s.executeTool("floorplan_export_3d", []byte(`{"result_id":"known"}`))
	if err != nil {
		t.Fatalf("export_3d failed: %v", err)
	}

	model, ok := out.(*export.Model)
	if !ok {
		t.Fatalf("result type = %T, want *export.Model", out)
	}
	// Floor and ceiling slabs plus one wall quad.
	if model.FaceCount != 3 {
		t.Errorf("faces: got %d, want 3", model.FaceCount)
	}
	if model.Format != "custom" {
		t.Errorf("format: got %q, want custom", model.Format)
	}
	if model.Metadata.CeilingHeight != export.DefaultCeilingHeight {
		t.Errorf("ceiling: got %g, want %g", model.Metadata.CeilingHeight, export.DefaultCeilingHeight)
	}

	if _, err := s.executeTool("floorplan_export_3d", []byte(`{"result_id":"missing"}`)); err == nil {
		t.Error("unknown result id should fail")
	}
}

func TestExecuteTool_Export3D_Options(t *testing.T) {
	st := store.NewMemory()
	s := New(st)
	fixture := exportFixture()
	if err := st.Save("known", fixture); err != nil {
		t.Fatalf("seeding store: %v", err)
	}

	out, err := s.executeTool("floorplan_export_3d", argsJSON(t, map[string]interface{}{
		"result_id":      "known",
		"ceiling_height": 12,
		"removed_walls":  []string{fixture.DetailedWalls[0].Key()},
		"added_walls": []map[string]interface{}{{
			"start": map[string]float64{"x": 0, "y": 0.5},
			"end":   map[string]float64{"x": 1, "y": 0.5},
			"type":  "exterior",
		}},
	}))
	if err != nil {
		t.Fatalf("export_3d failed: %v", err)
	}

	model := out.(*export.Model)
	// Slabs plus the added wall; the detected wall was removed.
	if model.FaceCount != 3 {
		t.Errorf("faces: got %d, want 3", model.FaceCount)
	}
	if model.Metadata.CeilingHeight != 12 {
		t.Errorf("ceiling: got %g, want 12", model.Metadata.CeilingHeight)
	}

	// The added wall extrudes to the exterior height.
	sawExteriorTop := false
	for _, v := range model.Vertices {
		if v[1] == export.ExteriorWallHeight {
			sawExteriorTop = true
		}
	}
	if !sawExteriorTop {
		t.Errorf("no vertex at the exterior wall height %g", export.ExteriorWallHeight)
	}
}

func TestExecuteTool_RenderOverlay(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "plan.png")
	outPath := filepath.Join(dir, "annotated.png")
	writePNG(t, in, quadrantSheet())

	s := New(nil)
	out, err := s.executeTool("floorplan_render_overlay", argsJSON(t, map[string]interface{}{
		"path":        in,
		"output_path": outPath,
	}))
	if err != nil {
		t.Fatalf("render_overlay failed: %v", err)
	}

	resp, ok := out.(renderOverlayResponse)
	if !ok {
		t.Fatalf("result type = %T, want renderOverlayResponse", out)
	}
	if resp.OutputPath != outPath {
		t.Errorf("output path: got %q, want %q", resp.OutputPath, outPath)
	}
	if resp.Width != 800 || resp.Height != 600 {
		t.Errorf("dims: got %dx%d, want 800x600", resp.Width, resp.Height)
	}
	if resp.RoomsDetected != 5 {
		t.Errorf("rooms: got %d, want 5", resp.RoomsDetected)
	}
	if resp.Method != "structural" {
		t.Errorf("method: got %q, want structural", resp.Method)
	}

	img, _, err := imaging.LoadFile(outPath)
	if err != nil {
		t.Fatalf("annotated output unreadable: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 600 {
		t.Errorf("annotated dims = %v", b)
	}
}

func TestExecuteTool_RenderOverlay_InputErrors(t *testing.T) {
	s := New(nil)

	if _, err := s.executeTool("floorplan_render_overlay", []byte(`{"path":"/plan.png"}`)); err == nil {
		t.Error("missing output_path should fail")
	}
	if _, err := s.executeTool("floorplan_render_overlay", []byte(`{"path":"/no/such.png","output_path":"/tmp/out.png"}`)); err == nil {
		t.Error("unreadable input should fail")
	}
}

func TestExecuteTool_RegisterReference(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.png")
	// A dark sheet defeats every strategy, forcing the fallback tier.
	writePNG(t, path, sheet(800, 600, 0))

	s := New(nil)
	out, err := s.executeTool("floorplan_register_reference", argsJSON(t, registerReferenceArgs{
		Path:   path,
		Layout: synth.DemoQuadrantLayout(),
	}))
	if err != nil {
		t.Fatalf("register_reference failed: %v", err)
	}

	reg, ok := out.(registerReferenceResponse)
	if !ok {
		t.Fatalf("result type = %T, want registerReferenceResponse", out)
	}
	if len(reg.Fingerprint) != 64 {
		t.Errorf("fingerprint %q is not a sha256 hex digest", reg.Fingerprint)
	}
	if reg.Rooms != 4 {
		t.Errorf("rooms registered: got %d, want 4", reg.Rooms)
	}

	// Detection of the same bytes now serves the curated layout.
	det, err := s.executeTool("floorplan_detect", argsJSON(t, map[string]interface{}{
		"path": path,
	}))
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	resp := det.(detectResponse)
	if !resp.Fallback {
		t.Error("dark sheet should report fallback")
	}
	if resp.RoomsDetected != 4 {
		t.Errorf("rooms: got %d, want the registered 4", resp.RoomsDetected)
	}
	for i, room := range resp.DetailedRooms {
		if room.Label == "" {
			t.Errorf("room %d lost its curated label", i)
		}
	}
}

func TestExecuteTool_RegisterReference_Validation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.png")
	writePNG(t, path, sheet(100, 100, 0))

	s := New(nil)

	if _, err := s.executeTool("floorplan_register_reference", argsJSON(t, registerReferenceArgs{
		Path: path,
	})); err == nil {
		t.Error("empty layout should fail")
	}

	bad := synth.Layout{Rooms: []floorplan.Room{{
		Type:     floorplan.RoomType("atrium"),
		Boundary: geometry.RectRing(0, 0, 1, 1),
	}}}
	if _, err := s.executeTool("floorplan_register_reference", argsJSON(t, registerReferenceArgs{
		Path:   path,
		Layout: bad,
	})); err == nil {
		t.Error("unknown room type should fail")
	}

	degenerate := synth.Layout{Rooms: []floorplan.Room{{
		Type:     floorplan.RoomLiving,
		Boundary: []geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 1}},
	}}}
	if _, err := s.executeTool("floorplan_register_reference", argsJSON(t, registerReferenceArgs{
		Path:   path,
		Layout: degenerate,
	})); err == nil {
		t.Error("two-point boundary should fail")
	}
}

func TestExecuteTool_Unknown(t *testing.T) {
	s := New(nil)
	if _, err := s.executeTool("floorplan_teleport", []byte(`{}`)); err == nil {
		t.Error("unknown tool should fail")
	}
}

func TestHandleToolsCall(t *testing.T) {
	s := New(nil)

	params, _ := json.Marshal(ToolCallParams{
		Name:      "floorplan_list_results",
		Arguments: []byte(`{}`),
	})
	resp := s.handleToolsCall(&MCPRequest{JSONRPC: "2.0", ID: 1, Params: params})

	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("content = %v", result["content"])
	}
	text, _ := content[0]["text"].(string)
	var decoded listResultsResponse
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		t.Fatalf("content text is not the tool's JSON: %v", err)
	}
}

func TestHandleToolsCall_Errors(t *testing.T) {
	s := New(nil)

	resp := s.handleToolsCall(&MCPRequest{JSONRPC: "2.0", ID: 1, Params: []byte(`{bad json`)})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("malformed params: got %+v, want -32602", resp.Error)
	}

	params, _ := json.Marshal(ToolCallParams{Name: "floorplan_teleport", Arguments: []byte(`{}`)})
	resp = s.handleToolsCall(&MCPRequest{JSONRPC: "2.0", ID: 2, Params: params})
	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Errorf("unknown tool: got %+v, want -32000", resp.Error)
	}
}
