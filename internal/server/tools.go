package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Detection
		{
			Name:        "floorplan_detect",
			Description: "Analyze a floor plan image: detect rooms, walls, doors, and windows. Returns the full detection result plus a result_id for later export or retrieval. Detection degrades through multiple strategies and always produces a result for a decodable image; check the 'fallback' flag to see whether the layout was measured or synthesized.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the floor plan image (PNG, JPEG, GIF, BMP, or TIFF)",
					},
					"strategy": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"auto", "structural", "contour", "adaptive", "simple"},
						"description": "Detection strategy. 'auto' (default) tries each in order until one finds rooms",
						"default":     "auto",
					},
					"enhance": map[string]interface{}{
						"type":        "boolean",
						"description": "Apply denoise/sharpen/contrast preprocessing. Helps photographed or hand-drawn plans; clean CAD exports do not need it",
						"default":     false,
					},
					"max_dimension": map[string]interface{}{
						"type":        "integer",
						"description": "Cap on the longer image side before detection; larger inputs are downscaled (default 1024)",
						"default":     1024,
					},
					"scale_factor": map[string]interface{}{
						"type":        "number",
						"description": "Explicit feet-per-pixel scale. Overrides the session calibration for this call",
					},
					"known_pixels": map[string]interface{}{
						"type":        "number",
						"description": "Reference length in pixels; use together with known_feet to calibrate this call",
					},
					"known_feet": map[string]interface{}{
						"type":        "number",
						"description": "Real-world feet corresponding to known_pixels",
					},
					"assume_width_ft": map[string]interface{}{
						"type":        "number",
						"description": "Estimate the scale by assuming the drawn plan is this many feet wide (unverified estimate)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "floorplan_get_result",
			Description: "Retrieve a previously stored detection result by its result_id.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"result_id": map[string]interface{}{
						"type":        "string",
						"description": "Id returned by floorplan_detect",
					},
				},
				"required": []string{"result_id"},
			},
		},
		{
			Name:        "floorplan_list_results",
			Description: "List the ids of all detection results stored in this session.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Derived outputs
		{
			Name:        "floorplan_export_3d",
			Description: "Extrude a stored detection result into a simple 3D model: floor and ceiling slabs per room plus a vertical quad per wall, with height by wall type (interior 8 ft, load-bearing 9 ft, exterior 10 ft). Coordinates are in feet, Y up. Walls can be added or removed before extrusion to correct the detection.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"result_id": map[string]interface{}{
						"type":        "string",
						"description": "Id returned by floorplan_detect",
					},
					"ceiling_height": map[string]interface{}{
						"type":        "number",
						"description": "Room ceiling height in feet (default 10)",
						"default":     10,
					},
					"added_walls": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"start": map[string]interface{}{
									"type": "object",
									"properties": map[string]interface{}{
										"x": map[string]interface{}{"type": "number"},
										"y": map[string]interface{}{"type": "number"},
									},
									"required": []string{"x", "y"},
								},
								"end": map[string]interface{}{
									"type": "object",
									"properties": map[string]interface{}{
										"x": map[string]interface{}{"type": "number"},
										"y": map[string]interface{}{"type": "number"},
									},
									"required": []string{"x", "y"},
								},
								"thickness": map[string]interface{}{
									"type":        "number",
									"description": "Wall thickness in pixels (default 6)",
								},
								"type": map[string]interface{}{
									"type":        "string",
									"enum":        []string{"interior", "exterior", "load_bearing"},
									"description": "Wall classification (default interior)",
								},
							},
							"required": []string{"start", "end"},
						},
						"description": "Walls to add before extrusion, endpoints in normalized [0,1] coordinates",
					},
					"removed_walls": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "string",
						},
						"description": "Keys of detected walls to drop, as reported in the result's detailed_walls",
					},
				},
				"required": []string{"result_id"},
			},
		},
		{
			Name:        "floorplan_render_overlay",
			Description: "Run detection and write an annotated copy of the image: translucent room fills, room labels, and wall strokes colored by type. Output format follows the output_path extension (PNG, JPEG, GIF, BMP, or TIFF).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the floor plan image",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Where to write the annotated image",
					},
					"strategy": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"auto", "structural", "contour", "adaptive", "simple"},
						"description": "Detection strategy (default auto)",
						"default":     "auto",
					},
				},
				"required": []string{"path", "output_path"},
			},
		},

		// Calibration and references
		{
			Name:        "floorplan_calibrate",
			Description: "Set the session's pixel-to-feet scale from a known reference: a feature measuring known_pixels in the image is known_feet in the real world. Subsequent detections use this scale and report scale_verified=true.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"known_pixels": map[string]interface{}{
						"type":        "number",
						"description": "Reference length in pixels",
					},
					"known_feet": map[string]interface{}{
						"type":        "number",
						"description": "The same length in feet",
					},
				},
				"required": []string{"known_pixels", "known_feet"},
			},
		},
		{
			Name:        "floorplan_register_reference",
			Description: "Pin a curated layout to an exact image file. The file is fingerprinted by content; when detection finds nothing in a byte-identical image, the fallback tier serves this layout instead of a synthesized grid. Room boundaries are closed rings in normalized [0,1] coordinates.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image to pin the layout to",
					},
					"layout": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"rooms": map[string]interface{}{
								"type": "array",
								"items": map[string]interface{}{
									"type": "object",
									"properties": map[string]interface{}{
										"type": map[string]interface{}{
											"type": "string",
											"enum": []string{"bedroom", "bathroom", "kitchen", "living", "hallway", "closet", "storage", "laundry", "office", "deck", "dining", "other"},
										},
										"label": map[string]interface{}{
											"type":        "string",
											"description": "Optional display name",
										},
										"boundary": map[string]interface{}{
											"type": "array",
											"items": map[string]interface{}{
												"type": "object",
												"properties": map[string]interface{}{
													"x": map[string]interface{}{"type": "number"},
													"y": map[string]interface{}{"type": "number"},
												},
												"required": []string{"x", "y"},
											},
											"description": "Closed ring in normalized [0,1] coordinates",
										},
									},
									"required": []string{"type", "boundary"},
								},
							},
							"walls": map[string]interface{}{
								"type":        "array",
								"description": "Optional wall list; omitted walls are derived from the room boundaries",
							},
							"door_count":   map[string]interface{}{"type": "integer"},
							"window_count": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"rooms"},
					},
				},
				"required": []string{"path", "layout"},
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
