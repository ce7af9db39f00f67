package mcpconfig

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseCanonical(t *testing.T) {
	input := `{
		"mcpServers": {
			"fetch": {"command": "uvx", "args": ["mcp-fetch"], "env": {"KEY": "v"}},
			"remote": {"url": "https://mcp.example.com", "enabled": true}
		}
	}`
	servers, err := ParseCanonical(input)
	if err != nil {
		t.Fatalf("ParseCanonical failed: %v", err)
	}
	if len(servers) != 2 {
		t.Fatalf("expected 2 servers, got %d", len(servers))
	}
	fetch := servers["fetch"].(map[string]any)
	if fetch["command"] != "uvx" {
		t.Errorf("command = %v, want 'uvx'", fetch["command"])
	}
	remote := servers["remote"].(map[string]any)
	if remote["enabled"] != true {
		t.Errorf("enabled = %v, want true", remote["enabled"])
	}
}

func TestParseCanonical_KeepsNumberIdentity(t *testing.T) {
	servers, err := ParseCanonical(`{"mcpServers": {"srv": {"command": "x", "timeout": 30}}}`)
	if err != nil {
		t.Fatalf("ParseCanonical failed: %v", err)
	}
	srv := servers["srv"].(map[string]any)
	if _, ok := srv["timeout"].(json.Number); !ok {
		t.Errorf("timeout = %T, want json.Number", srv["timeout"])
	}
}

func TestParseCanonical_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"not JSON", `{"mcpServers": `},
		{"missing container", `{"servers": {}}`},
		{"container not object", `{"mcpServers": []}`},
		{"entry not object", `{"mcpServers": {"bad": "string"}}`},
		{"typed field wrong", `{"mcpServers": {"bad": {"command": 42}}}`},
		{"args not strings", `{"mcpServers": {"bad": {"args": [1, 2]}}}`},
	}
	for _, tc := range cases {
		if _, err := ParseCanonical(tc.input); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestParseCanonical_ErrorNamesLocation(t *testing.T) {
	_, err := ParseCanonical(`{"mcpServers": {"bad": {"command": 42}}}`)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "/mcpServers/bad/command") {
		t.Errorf("err = %v, want instance location in message", err)
	}
}
