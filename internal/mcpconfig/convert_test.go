package mcpconfig

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func TestOpencodeToStandard(t *testing.T) {
	config := map[string]any{
		"command":     []any{"uvx", "mcp-fetch", "--fast"},
		"environment": map[string]any{"KEY": "value"},
		"enabled":     true,
		"custom":      "kept",
	}
	out := opencodeToStandard(config)

	if out["command"] != "uvx" {
		t.Errorf("command = %v, want 'uvx'", out["command"])
	}
	args, ok := out["args"].([]any)
	if !ok || len(args) != 2 || args[0] != "mcp-fetch" || args[1] != "--fast" {
		t.Errorf("args = %v, want [mcp-fetch --fast]", out["args"])
	}
	env, ok := out["env"].(map[string]any)
	if !ok || env["KEY"] != "value" {
		t.Errorf("env = %v, want environment renamed to env", out["env"])
	}
	if out["enabled"] != true {
		t.Errorf("enabled = %v, want true", out["enabled"])
	}
	if out["custom"] != "kept" {
		t.Errorf("custom = %v, want unrecognized key passed through", out["custom"])
	}
	if _, ok := out["environment"]; ok {
		t.Error("environment key leaked into canonical form")
	}
}

func TestOpencodeToStandard_LegacyEnvAndStringCommand(t *testing.T) {
	out := opencodeToStandard(map[string]any{
		"command": "plain-string",
		"env":     map[string]any{"A": "1"},
	})
	if out["command"] != "plain-string" {
		t.Errorf("command = %v, want string command accepted", out["command"])
	}
	env, ok := out["env"].(map[string]any)
	if !ok || env["A"] != "1" {
		t.Errorf("env = %v, want legacy env accepted", out["env"])
	}
}

func TestStandardToOpencode(t *testing.T) {
	out, err := standardToOpencode(map[string]any{
		"command": "uvx",
		"args":    []any{"mcp-fetch"},
		"env":     map[string]any{"KEY": "value"},
	})
	if err != nil {
		t.Fatalf("standardToOpencode failed: %v", err)
	}

	command, ok := out["command"].([]any)
	if !ok || len(command) != 2 || command[0] != "uvx" || command[1] != "mcp-fetch" {
		t.Errorf("command = %v, want [uvx mcp-fetch]", out["command"])
	}
	if _, ok := out["args"]; ok {
		t.Error("args key kept, want folded into command list")
	}
	if _, ok := out["env"]; ok {
		t.Error("env key kept, want renamed to environment")
	}
	env, ok := out["environment"].(map[string]any)
	if !ok || env["KEY"] != "value" {
		t.Errorf("environment = %v, want env renamed", out["environment"])
	}
	if out["type"] != "local" {
		t.Errorf("type = %v, want 'local' inferred from command", out["type"])
	}
}

func TestStandardToOpencode_ArgsWithoutCommand(t *testing.T) {
	out, err := standardToOpencode(map[string]any{
		"args": []any{"--flag"},
		"url":  "https://mcp.example.com",
	})
	if err != nil {
		t.Fatal(err)
	}
	args, ok := out["args"].([]any)
	if !ok || len(args) != 1 || args[0] != "--flag" {
		t.Errorf("args = %v, want passed through when no command is set", out["args"])
	}
}

func TestStandardToOpencode_TypeInference(t *testing.T) {
	out, err := standardToOpencode(map[string]any{"url": "https://mcp.example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if out["type"] != "remote" {
		t.Errorf("type = %v, want 'remote' inferred from url", out["type"])
	}

	// An explicit type is never overridden.
	out, err = standardToOpencode(map[string]any{"url": "https://x", "type": "sse"})
	if err != nil {
		t.Fatal(err)
	}
	if out["type"] != "sse" {
		t.Errorf("type = %v, want explicit value kept", out["type"])
	}
}

func TestAntigravityConversions(t *testing.T) {
	out := antigravityToStandard(map[string]any{"serverUrl": "https://a", "command": "x"})
	if out["url"] != "https://a" {
		t.Errorf("url = %v, want serverUrl mapped to url", out["url"])
	}
	if _, ok := out["serverUrl"]; ok {
		t.Error("serverUrl leaked into canonical form")
	}

	// serverUrl wins when both keys are present.
	out = antigravityToStandard(map[string]any{"serverUrl": "https://a", "url": "https://b"})
	if out["url"] != "https://a" {
		t.Errorf("url = %v, want serverUrl preferred over url", out["url"])
	}

	native, err := standardToAntigravity(map[string]any{"url": "https://a", "command": "x"})
	if err != nil {
		t.Fatal(err)
	}
	if native["serverUrl"] != "https://a" {
		t.Errorf("serverUrl = %v, want url mapped back", native["serverUrl"])
	}
	if _, ok := native["url"]; ok {
		t.Error("url leaked into native form")
	}
}

func TestOpencodeFormat_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opencode.json")
	f := mustFormat(t, KindOpenCode)

	err := f.UpsertServers(path, map[string]any{
		"fetch": map[string]any{"command": "uvx", "args": []any{"mcp-fetch"}, "env": map[string]any{"K": "v"}},
	})
	if err != nil {
		t.Fatalf("UpsertServers failed: %v", err)
	}

	// The native document must carry the OpenCode shape.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	entry := doc["mcp"].(map[string]any)["fetch"].(map[string]any)
	if _, ok := entry["command"].([]any); !ok {
		t.Errorf("native command = %v, want array of strings", entry["command"])
	}
	if _, ok := entry["environment"]; !ok {
		t.Error("native entry missing 'environment'")
	}

	// Reading back yields the canonical shape again.
	servers, err := f.ReadServers(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(servers) != 1 {
		t.Fatalf("expected 1 server, got %d", len(servers))
	}
	config := servers[0].Config.(map[string]any)
	if config["command"] != "uvx" {
		t.Errorf("command = %v, want 'uvx'", config["command"])
	}
	if env, ok := config["env"].(map[string]any); !ok || env["K"] != "v" {
		t.Errorf("env = %v, want canonical env restored", config["env"])
	}
}

func TestCodexFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	f := mustFormat(t, KindCodex)

	err := f.UpsertServers(path, map[string]any{
		"fetch": map[string]any{
			"command": "uvx",
			"args":    []any{"mcp-fetch"},
			"timeout": json.Number("30"),
			"ratio":   json.Number("1.5"),
		},
	})
	if err != nil {
		t.Fatalf("UpsertServers failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("result is not valid TOML: %v", err)
	}
	entry := doc["mcp_servers"].(map[string]any)["fetch"].(map[string]any)
	if timeout, ok := entry["timeout"].(int64); !ok || timeout != 30 {
		t.Errorf("timeout = %v (%T), want int64 30", entry["timeout"], entry["timeout"])
	}
	if ratio, ok := entry["ratio"].(float64); !ok || ratio != 1.5 {
		t.Errorf("ratio = %v (%T), want float64 1.5", entry["ratio"], entry["ratio"])
	}

	servers, err := f.ReadServers(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(servers) != 1 || servers[0].ID != "fetch" {
		t.Errorf("servers = %v, want single fetch entry", servers)
	}

	if err := f.DeleteServer(path, "fetch"); err != nil {
		t.Fatalf("DeleteServer failed: %v", err)
	}
	if err := f.DeleteServer(path, "fetch"); !errors.Is(err, ErrServerNotFound) {
		t.Errorf("err = %v, want ErrServerNotFound after delete", err)
	}
}

func TestCodexFormat_RejectsNull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	f := mustFormat(t, KindCodex)

	err := f.UpsertServers(path, map[string]any{
		"bad": map[string]any{"command": "x", "extra": nil},
	})
	if err == nil || !strings.Contains(err.Error(), "null") {
		t.Errorf("err = %v, want null rejection", err)
	}
	if _, statErr := os.Stat(path); statErr == nil {
		t.Error("file written despite conversion failure")
	}
}

func TestCodexFormat_InvalidTOMLReportsPosition(t *testing.T) {
	path := writeDoc(t, "config.toml", "[mcp_servers\nbroken")
	_, err := mustFormat(t, KindCodex).ReadServers(path)
	if err == nil || !strings.Contains(err.Error(), "line") {
		t.Errorf("err = %v, want TOML error with position", err)
	}
}

func TestTomlValue_PreservesScalars(t *testing.T) {
	got, err := tomlValue(map[string]any{
		"list": []any{json.Number("1"), "two", true},
	})
	if err != nil {
		t.Fatalf("tomlValue failed: %v", err)
	}
	list := got.(map[string]any)["list"].([]any)
	if list[0] != int64(1) || list[1] != "two" || list[2] != true {
		t.Errorf("list = %v, want [1 two true] with typed values", list)
	}

	if _, err := tomlValue([]any{nil}); err == nil {
		t.Error("expected error for nested null")
	}
}
