package mcpconfig

import "fmt"

// jsonFormat handles the three JSON-backed native schemas. They differ only
// in the container key and the per-entry field conversions.
type jsonFormat struct {
	container  string
	toStandard func(map[string]any) map[string]any
	toNative   func(map[string]any) (map[string]any, error)
}

func (f *jsonFormat) ReadServers(path string) ([]Server, error) {
	doc, err := loadJSONDocument(path)
	if err != nil {
		return nil, err
	}

	container, ok := doc[f.container]
	if !ok {
		return nil, nil
	}
	entries, ok := container.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s in %s is not an object", f.container, path)
	}

	servers := make([]Server, 0, len(entries))
	for id, raw := range entries {
		config, ok := raw.(map[string]any)
		if !ok {
			// Non-object entries carry their raw value through unchanged.
			servers = append(servers, Server{ID: id, Config: raw})
			continue
		}
		servers = append(servers, Server{ID: id, Config: f.toStandard(config)})
	}
	sortServers(servers)
	return servers, nil
}

func (f *jsonFormat) UpsertServers(path string, servers map[string]any) error {
	doc, err := loadJSONDocument(path)
	if err != nil {
		return err
	}

	container, err := ensureObject(doc, f.container)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	for id, config := range servers {
		obj, ok := config.(map[string]any)
		if !ok {
			container[id] = config
			continue
		}
		converted, err := f.toNative(obj)
		if err != nil {
			return fmt.Errorf("converting server %q: %w", id, err)
		}
		container[id] = converted
	}

	return saveJSONDocument(path, doc)
}

func (f *jsonFormat) DeleteServer(path string, id string) error {
	doc, err := loadJSONDocument(path)
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

	return saveJSONDocument(path, doc)
}

// ensureObject returns doc[key] as an object, creating it when absent and
// failing when present with a different shape.
func ensureObject(doc map[string]any, key string) (map[string]any, error) {
	raw, ok := doc[key]
	if !ok {
		obj := map[string]any{}
		doc[key] = obj
		return obj, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s is not an object", key)
	}
	return obj, nil
}

func identityConfig(config map[string]any) map[string]any {
	out := make(map[string]any, len(config))
	for key, value := range config {
		out[key] = value
	}
	return out
}

func identityConfigErr(config map[string]any) (map[string]any, error) {
	return identityConfig(config), nil
}
