package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// sessionProperty is shared by every tool that acts on an open session.
var sessionProperty = map[string]interface{}{
	"type":        "string",
	"description": "Session id returned by grouper_open or grouper_open_gt",
}

// indexProperty addresses one candidate of a session.
var indexProperty = map[string]interface{}{
	"type":        "integer",
	"description": "Candidate index (0-based, see grouper_candidates)",
}

// optionsProperty overrides grouper options for a new session.
var optionsProperty = map[string]interface{}{
	"type":        "object",
	"description": "Grouper option overrides by name: maxrange, maxdist, maxaspect, maxwidth, fullheight, checkorder. Values are strings.",
	"additionalProperties": map[string]interface{}{
		"type": "string",
	},
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Segmentation utilities
		{
			Name:        "segmentation_label",
			Description: "Binarize a page image and label its connected components left to right. Returns the component boxes and optionally writes the segmentation as a packed-RGB PNG (label = R<<16|G<<8|B, white background).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the page image",
					},
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Luminance below which a pixel is ink (0-255). Default 128",
						"default":     128,
					},
					"invert": map[string]interface{}{
						"type":        "boolean",
						"description": "Treat light pixels as ink (light text on dark background)",
						"default":     false,
					},
					"connectivity": map[string]interface{}{
						"type":        "integer",
						"description": "Pixel connectivity, 4 or 8. Default 8",
						"enum":        []int{4, 8},
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to write the segmentation PNG",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "segmentation_recolor",
			Description: "Render a segmentation image with one distinct color per label for inspection. Returns a base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the segmentation image",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "segmentation_evaluate",
			Description: "Compare a segmentation against a ground-truth segmentation and count over-segmentations, under-segmentations and minor stray overlaps.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"model_path": map[string]interface{}{
						"type":        "string",
						"description": "Ground-truth segmentation image",
					},
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Segmentation image to evaluate",
					},
					"tolerance": map[string]interface{}{
						"type":        "number",
						"description": "Fraction of a component that a secondary overlap must exceed to count as an error. Default 0.1",
						"default":     0.1,
					},
				},
				"required": []string{"model_path", "image_path"},
			},
		},
		{
			Name:        "segmentation_charseg",
			Description: "Build a character segmentation from character boxes: each component goes to the box holding most of its pixels and is labelled with the box index + 1.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Component segmentation image",
					},
					"boxes": map[string]interface{}{
						"type":        "array",
						"description": "Character boxes in reading order, half-open pixel rectangles",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x0": map[string]interface{}{"type": "integer"},
								"y0": map[string]interface{}{"type": "integer"},
								"x1": map[string]interface{}{"type": "integer"},
								"y1": map[string]interface{}{"type": "integer"},
							},
							"required": []string{"x0", "y0", "x1", "y1"},
						},
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to write the character segmentation PNG",
					},
				},
				"required": []string{"path", "boxes"},
			},
		},

		// Grouper sessions
		{
			Name:        "grouper_open",
			Description: "Open a grouper session on a line segmentation and enumerate candidate character groups. Returns a session id.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"segmentation_path": map[string]interface{}{
						"type":        "string",
						"description": "Segmentation image (packed RGB labels, white background)",
					},
					"page_path": map[string]interface{}{
						"type":        "string",
						"description": "Page image of the same size, needed by grouper_extract and grouper_classify",
					},
					"grouper": map[string]interface{}{
						"type":        "string",
						"description": "Grouping strategy: simplegrouper (default) or standardgrouper",
					},
					"options": optionsProperty,
					"characters": map[string]interface{}{
						"type":        "boolean",
						"description": "Treat the segmentation as one label per character (no merging)",
						"default":     false,
					},
				},
				"required": []string{"segmentation_path"},
			},
		},
		{
			Name:        "grouper_open_gt",
			Description: "Open a grouper session with ground truth: a character segmentation whose label k is the k-th character of the transcript.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"segmentation_path": map[string]interface{}{
						"type":        "string",
						"description": "Segmentation image",
					},
					"character_segmentation_path": map[string]interface{}{
						"type":        "string",
						"description": "Character segmentation image of the same size",
					},
					"transcript": map[string]interface{}{
						"type":        "string",
						"description": "Ground-truth text; cut at the first newline",
					},
					"page_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional page image of the same size",
					},
					"grouper": map[string]interface{}{
						"type":        "string",
						"description": "Grouping strategy: simplegrouper (default) or standardgrouper",
					},
					"options": optionsProperty,
				},
				"required": []string{"segmentation_path", "character_segmentation_path", "transcript"},
			},
		},
		{
			Name:        "grouper_candidates",
			Description: "List candidate groups of a session: bounding box, member labels, gap to the next label and, with ground truth, the matching character.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session": sessionProperty,
					"offset": map[string]interface{}{
						"type":        "integer",
						"description": "First candidate to return. Default 0",
					},
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of candidates; 0 returns all",
					},
				},
				"required": []string{"session"},
			},
		},
		{
			Name:        "grouper_extract",
			Description: "Render one candidate: its mask, or the page pixels under the mask, as a base64-encoded grayscale PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session": sessionProperty,
					"index":   indexProperty,
					"grow": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels to grow the box and dilate the mask by. Default 0",
					},
					"mode": map[string]interface{}{
						"type":        "string",
						"description": "mask, masked (box-sized crop, default), sliced (full page height) or crop (unmasked page region)",
						"enum":        []string{"mask", "masked", "sliced", "crop"},
					},
					"background": map[string]interface{}{
						"type":        "integer",
						"description": "Gray value outside the mask (0-255). Default 0",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"session", "index"},
			},
		},
		{
			Name:        "grouper_classify",
			Description: "Classify every candidate of a session with Tesseract and store the results as class hypotheses with costs -ln(confidence).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session": sessionProperty,
					"grow": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels to grow each candidate crop by. Default 1",
					},
					"mode": map[string]interface{}{
						"type":        "string",
						"description": "char (single character, default) or word",
						"enum":        []string{"char", "word"},
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code. Defaults to the server configuration",
					},
				},
				"required": []string{"session"},
			},
		},
		{
			Name:        "grouper_set_class",
			Description: "Add a class hypothesis for a candidate. Repeated calls add alternatives; a class may span several characters.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session": sessionProperty,
					"index":   indexProperty,
					"class": map[string]interface{}{
						"type":        "string",
						"description": "Recognised text for the candidate",
					},
					"cost": map[string]interface{}{
						"type":        "number",
						"description": "Additive cost, lower is better; costs of 1000 or more are dropped from the lattice",
					},
				},
				"required": []string{"session", "index", "class", "cost"},
			},
		},
		{
			Name:        "grouper_set_space_cost",
			Description: "Set the cost of a space (yes) and of no space (no) after a candidate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session": sessionProperty,
					"index":   indexProperty,
					"yes": map[string]interface{}{
						"type":        "number",
						"description": "Cost of a space after the candidate",
					},
					"no": map[string]interface{}{
						"type":        "number",
						"description": "Cost of no space after the candidate",
					},
				},
				"required": []string{"session", "index", "yes", "no"},
			},
		},
		{
			Name:        "grouper_clear_lattice",
			Description: "Drop all class hypotheses and space costs of a session, keeping its candidates.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session": sessionProperty,
				},
				"required": []string{"session"},
			},
		},
		{
			Name:        "grouper_lattice",
			Description: "Compile the session's hypotheses into a recognition lattice. Arc outputs encode the label range as start<<16|end; space arcs output 0.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session": sessionProperty,
				},
				"required": []string{"session"},
			},
		},
		{
			Name:        "grouper_close",
			Description: "Close a session and free its state.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session": sessionProperty,
				},
				"required": []string{"session"},
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
