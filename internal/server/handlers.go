package server

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/lattice-grouper/internal/imaging"
	"github.com/ironsheep/lattice-grouper/internal/segmentation"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "grouper_open", "segmentation_label").
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
		s.log.Error("tool failed", "tool", params.Name, "error", err)
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
	// Segmentation utilities
	case "segmentation_label":
		return s.handleSegmentationLabel(args)
	case "segmentation_recolor":
		return s.handleSegmentationRecolor(args)
	case "segmentation_evaluate":
		return s.handleSegmentationEvaluate(args)
	case "segmentation_charseg":
		return s.handleSegmentationCharSeg(args)

	// Grouper sessions
	case "grouper_open":
		return s.handleGrouperOpen(args)
	case "grouper_open_gt":
		return s.handleGrouperOpenGT(args)
	case "grouper_candidates":
		return s.handleGrouperCandidates(args)
	case "grouper_extract":
		return s.handleGrouperExtract(args)
	case "grouper_classify":
		return s.handleGrouperClassify(args)
	case "grouper_set_class":
		return s.handleGrouperSetClass(args)
	case "grouper_set_space_cost":
		return s.handleGrouperSetSpaceCost(args)
	case "grouper_clear_lattice":
		return s.handleGrouperClearLattice(args)
	case "grouper_lattice":
		return s.handleGrouperLattice(args)
	case "grouper_close":
		return s.handleGrouperClose(args)

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
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// Box is a half-open pixel rectangle in tool arguments and results.
type Box struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

func toBox(r image.Rectangle) Box {
	return Box{X0: r.Min.X, Y0: r.Min.Y, X1: r.Max.X, Y1: r.Max.Y}
}

func (b Box) rect() image.Rectangle {
	return image.Rect(b.X0, b.Y0, b.X1, b.Y1)
}

// === Segmentation Handlers ===

type segmentationLabelArgs struct {
	Path         string `json:"path"`
	Threshold    *int   `json:"threshold"`
	Invert       bool   `json:"invert"`
	Connectivity int    `json:"connectivity"`
	OutputPath   string `json:"output_path"`
}

// LabelResult describes a segmentation produced by segmentation_label.
type LabelResult struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Components int    `json:"components"`
	Boxes      []Box  `json:"boxes"`
	OutputPath string `json:"output_path,omitempty"`
}

func (s *Server) handleSegmentationLabel(args json.RawMessage) (interface{}, error) {
	var a segmentationLabelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	threshold := 128
	if a.Threshold != nil {
		threshold = *a.Threshold
	}
	if threshold < 0 || threshold > 255 {
		return nil, fmt.Errorf("threshold must be in 0..255, got %d", threshold)
	}
	conn := segmentation.Conn8
	switch a.Connectivity {
	case 0, 8:
	case 4:
		conn = segmentation.Conn4
	default:
		return nil, fmt.Errorf("connectivity must be 4 or 8, got %d", a.Connectivity)
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	labels, _ := segmentation.Label(imaging.Binarize(img, uint8(threshold), a.Invert), conn)
	if err := segmentation.SortByXCenter(labels); err != nil {
		return nil, err
	}

	boxes := segmentation.BoundingBoxes(labels)
	res := &LabelResult{
		Width:      labels.Width,
		Height:     labels.Height,
		Components: len(boxes) - 1,
		Boxes:      make([]Box, 0, len(boxes)-1),
	}
	for _, b := range boxes[1:] {
		res.Boxes = append(res.Boxes, toBox(b))
	}
	if a.OutputPath != "" {
		if err := s.cache.Save(segmentation.Encode(labels), a.OutputPath); err != nil {
			return nil, err
		}
		res.OutputPath = a.OutputPath
	}
	return res, nil
}

type segmentationRecolorArgs struct {
	Path  string  `json:"path"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleSegmentationRecolor(args json.RawMessage) (interface{}, error) {
	var a segmentationRecolorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	labels, err := s.cache.LoadLabels(a.Path)
	if err != nil {
		return nil, err
	}
	segmentation.MakeLineSegmentationBlack(labels)
	return imaging.Encode(segmentation.Recolor(labels), a.Scale)
}

type segmentationEvaluateArgs struct {
	ModelPath string   `json:"model_path"`
	ImagePath string   `json:"image_path"`
	Tolerance *float64 `json:"tolerance"`
}

func (s *Server) handleSegmentationEvaluate(args json.RawMessage) (interface{}, error) {
	var a segmentationEvaluateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	tolerance := 0.1
	if a.Tolerance != nil {
		tolerance = *a.Tolerance
	}
	model, err := s.cache.LoadLabels(a.ModelPath)
	if err != nil {
		return nil, err
	}
	produced, err := s.cache.LoadLabels(a.ImagePath)
	if err != nil {
		return nil, err
	}
	return segmentation.Evaluate(model, produced, tolerance)
}

type segmentationCharSegArgs struct {
	Path       string `json:"path"`
	Boxes      []Box  `json:"boxes"`
	OutputPath string `json:"output_path"`
}

// CharSegResult describes a character segmentation built from boxes.
type CharSegResult struct {
	Characters int    `json:"characters"`
	Boxes      []Box  `json:"boxes"`
	OutputPath string `json:"output_path,omitempty"`
}

func (s *Server) handleSegmentationCharSeg(args json.RawMessage) (interface{}, error) {
	var a segmentationCharSegArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	seg, err := s.cache.LoadLabels(a.Path)
	if err != nil {
		return nil, err
	}
	rects := make([]image.Rectangle, len(a.Boxes))
	for i, b := range a.Boxes {
		rects[i] = b.rect()
	}
	cseg, err := segmentation.BoxesToCharSeg(seg, rects)
	if err != nil {
		return nil, err
	}

	boxes := segmentation.BoundingBoxes(cseg)
	res := &CharSegResult{
		Characters: len(boxes) - 1,
		Boxes:      make([]Box, 0, len(boxes)-1),
	}
	for _, b := range boxes[1:] {
		res.Boxes = append(res.Boxes, toBox(b))
	}
	if a.OutputPath != "" {
		if err := s.cache.Save(segmentation.Encode(cseg), a.OutputPath); err != nil {
			return nil, err
		}
		res.OutputPath = a.OutputPath
	}
	return res, nil
}
