package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ironsheep/lattice-grouper/internal/config"
	"github.com/ironsheep/lattice-grouper/internal/grouper"
)

func TestNew(t *testing.T) {
	s := New(nil, nil)
	if s.cache == nil || s.sessions == nil || s.log == nil {
		t.Fatal("New() left the server partially initialised")
	}
	if s.cfg.OCRLanguage != "eng" {
		t.Errorf("default OCR language: got %q", s.cfg.OCRLanguage)
	}
	if s.cfg.Grouper != grouper.DefaultOptions() {
		t.Errorf("default grouper options: got %+v", s.cfg.Grouper)
	}

	opts := grouper.DefaultOptions()
	opts.MaxRange = 2
	cfg := &config.Config{LogLevel: "debug", Grouper: opts, OCRLanguage: "deu"}
	if got := New(cfg, nil).cfg; got != cfg {
		t.Errorf("New() should keep the given config")
	}
}

func TestHandleRequest(t *testing.T) {
	s := New(nil, nil)

	tests := []struct {
		name     string
		req      MCPRequest
		wantNil  bool
		wantCode int
	}{
		{"initialize", MCPRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"}, false, 0},
		{"ping", MCPRequest{JSONRPC: "2.0", ID: "ping-1", Method: "ping"}, false, 0},
		{"tools/list", MCPRequest{JSONRPC: "2.0", ID: 2, Method: "tools/list"}, false, 0},
		{"notification", MCPRequest{JSONRPC: "2.0", Method: "notifications/initialized"}, true, 0},
		{"unknown method", MCPRequest{JSONRPC: "2.0", ID: 3, Method: "nonexistent/method"}, false, -32601},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			resp := s.handleRequest(&req)
			if tt.wantNil {
				if resp != nil {
					t.Errorf("expected no response, got %+v", resp)
				}
				return
			}
			if resp == nil {
				t.Fatal("handleRequest returned nil")
			}
			if resp.ID != tt.req.ID {
				t.Errorf("ID: got %v, want %v", resp.ID, tt.req.ID)
			}
			if tt.wantCode == 0 && resp.Error != nil {
				t.Errorf("unexpected error: %+v", resp.Error)
			}
			if tt.wantCode != 0 && (resp.Error == nil || resp.Error.Code != tt.wantCode) {
				t.Errorf("error: got %+v, want code %d", resp.Error, tt.wantCode)
			}
		})
	}
}

func TestHandleRequest_ToolsList(t *testing.T) {
	s := New(nil, nil)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})

	tools, ok := resp.Result.(map[string]interface{})["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(tools) != len(GetToolDefinitions()) {
		t.Errorf("tools/list returned %d tools, want %d", len(tools), len(GetToolDefinitions()))
	}
}

func TestHandleInitialize_Version(t *testing.T) {
	saved := Version
	defer func() { Version = saved }()
	Version = "1.2.3-test"

	s := New(nil, nil)
	resp := s.handleInitialize(&MCPRequest{JSONRPC: "2.0", ID: "init-1"})

	result := resp.Result.(map[string]interface{})
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}
	serverInfo, ok := result["serverInfo"].(map[string]interface{})
	if !ok {
		t.Fatal("serverInfo should be a map")
	}
	if serverInfo["name"] != "grouper-mcp" {
		t.Errorf("serverInfo.name: got %v", serverInfo["name"])
	}
	if serverInfo["version"] != "1.2.3-test" {
		t.Errorf("serverInfo.version: got %v, want the build version", serverInfo["version"])
	}
}

func TestServe(t *testing.T) {
	s := New(nil, nil)
	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		``,
		`not json`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"grouper_close","arguments":{"session":"nope"}}}`,
	}, "\n")

	var out bytes.Buffer
	if err := s.Serve(strings.NewReader(in), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	var responses []MCPResponse
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp MCPResponse
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response line %q: %v", scanner.Text(), err)
		}
		responses = append(responses, resp)
	}

	// the unparsable line and the notification get no response
	if len(responses) != 3 {
		t.Fatalf("got %d responses, want 3", len(responses))
	}
	if responses[1].ID != float64(2) || responses[1].Error != nil {
		t.Errorf("ping response: %+v", responses[1])
	}
	if responses[2].Error == nil || responses[2].Error.Code != -32000 {
		t.Errorf("expected tool error for unknown session, got %+v", responses[2])
	}
}
