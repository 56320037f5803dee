package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"segmentation_label",
		"segmentation_recolor",
		"segmentation_evaluate",
		"segmentation_charseg",
		"grouper_open",
		"grouper_open_gt",
		"grouper_candidates",
		"grouper_extract",
		"grouper_classify",
		"grouper_set_class",
		"grouper_set_space_cost",
		"grouper_clear_lattice",
		"grouper_lattice",
		"grouper_close",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("Tool count: got %d, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Name == "" {
				t.Error("Tool name is empty")
			}
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema == nil {
				t.Fatal("Tool InputSchema is nil")
			}
			if schemaType := tool.InputSchema["type"]; schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}

			// every required argument must be declared
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required argument %s is not a property", r)
				}
			}
		})
	}
}

func TestToolDefinitions_SessionTools(t *testing.T) {
	sessionTools := []string{
		"grouper_candidates",
		"grouper_extract",
		"grouper_classify",
		"grouper_set_class",
		"grouper_set_space_cost",
		"grouper_clear_lattice",
		"grouper_lattice",
		"grouper_close",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for _, name := range sessionTools {
		t.Run(name, func(t *testing.T) {
			required := toolMap[name].InputSchema["required"].([]string)
			hasSession := false
			for _, r := range required {
				if r == "session" {
					hasSession = true
					break
				}
			}
			if !hasSession {
				t.Errorf("tool %s should require 'session'", name)
			}
		})
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	tests := []struct {
		tool, param string
		want        interface{}
	}{
		{"segmentation_label", "threshold", 128},
		{"segmentation_recolor", "scale", 1.0},
		{"segmentation_evaluate", "tolerance", 0.1},
		{"grouper_extract", "scale", 1.0},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for _, tt := range tests {
		t.Run(tt.tool+"/"+tt.param, func(t *testing.T) {
			props := toolMap[tt.tool].InputSchema["properties"].(map[string]interface{})
			param, ok := props[tt.param].(map[string]interface{})
			if !ok {
				t.Fatalf("parameter %s not found", tt.param)
			}
			if param["default"] != tt.want {
				t.Errorf("default: got %v, want %v", param["default"], tt.want)
			}
		})
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New(nil, nil)
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}

	expected := GetToolDefinitions()
	if len(toolsList) != len(expected) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(expected))
	}
}
