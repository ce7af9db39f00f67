package mcpconfig

import (
	"encoding/json"
	"fmt"
)

// codexFormat handles the Codex config.toml with its "mcp_servers" table.
// Entry values are already canonical; only the document type differs, so the
// work here is a lossless conversion between TOML tables and the JSON-typed
// values flowing through the rest of the package.
type codexFormat struct {
	container string
}

func (f *codexFormat) ReadServers(path string) ([]Server, error) {
	doc, err := loadTOMLDocument(path)
	if err != nil {
		return nil, err
	}

	container, ok := doc[f.container]
	if !ok {
		return nil, nil
	}
	entries, ok := container.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s in %s is not a table", f.container, path)
	}

	servers := make([]Server, 0, len(entries))
	for id, raw := range entries {
		servers = append(servers, Server{ID: id, Config: raw})
	}
	sortServers(servers)
	return servers, nil
}

func (f *codexFormat) UpsertServers(path string, servers map[string]any) error {
	doc, err := loadTOMLDocument(path)
	if err != nil {
		return err
	}

	container, err := ensureObject(doc, f.container)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	for id, config := range servers {
		converted, err := tomlValue(config)
		if err != nil {
			return fmt.Errorf("converting server %q: %w", id, err)
		}
		container[id] = converted
	}

	return saveTOMLDocument(path, doc)
}

func (f *codexFormat) DeleteServer(path string, id string) error {
	doc, err := loadTOMLDocument(path)
	if err != nil {
		return err
	}

	container, ok := doc[f.container].(map[string]any)
	if !ok {
		return ErrNoServers
	}
	if _, ok := container[id]; !ok {
		return ErrServerNotFound
	}
	delete(container, id)

	return saveTOMLDocument(path, doc)
}

// tomlValue rewrites JSON-typed values into TOML-representable ones. Numbers
// keep their integer or float identity, and null is rejected because TOML has
// no way to express it.
func tomlValue(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, fmt.Errorf("null values are not supported in TOML")
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("unsupported number %q", v.String())
		}
		return f, nil
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			converted, err := tomlValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, converted)
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			converted, err := tomlValue(item)
			if err != nil {
				return nil, err
			}
			out[key] = converted
		}
		return out, nil
	default:
		// Strings, bools, and values read back from TOML pass through.
		return v, nil
	}
}
