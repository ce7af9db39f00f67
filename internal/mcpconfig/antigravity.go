package mcpconfig

// The Antigravity schema matches the canonical one except that the server URL
// lives under "serverUrl". When an entry carries both keys, "serverUrl" wins.

// antigravityToStandard converts one Antigravity entry to canonical form.
func antigravityToStandard(config map[string]any) map[string]any {
	out := map[string]any{}
	for key, value := range config {
		if key == "serverUrl" || key == "url" {
			continue
		}
		out[key] = value
	}

	if serverURL, ok := config["serverUrl"]; ok {
		out["url"] = serverURL
	} else if url, ok := config["url"]; ok {
		out["url"] = url
	}

	return out
}

// standardToAntigravity converts a canonical entry back to the Antigravity shape.
func standardToAntigravity(config map[string]any) (map[string]any, error) {
	out := map[string]any{}
	for key, value := range config {
		if key == "url" {
			continue
		}
		out[key] = value
	}

	if _, ok := out["serverUrl"]; !ok {
		if url, ok := config["url"]; ok {
			out["serverUrl"] = url
		}
	}

	return out, nil
}
