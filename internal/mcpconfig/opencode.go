package mcpconfig

// The OpenCode schema stores the command as an array of strings (program plus
// arguments) and the environment under "environment". A legacy "env" key is
// still accepted on read.

// opencodeToStandard converts one OpenCode entry to canonical form.
func opencodeToStandard(config map[string]any) map[string]any {
	out := map[string]any{}

	if url, ok := config["url"]; ok {
		out["url"] = url
	}

	switch command := config["command"].(type) {
	case []any:
		if first, ok := stringAt(command, 0); ok {
			out["command"] = first
			var args []any
			for _, item := range command[1:] {
				if s, ok := item.(string); ok {
					args = append(args, s)
				}
			}
			if len(args) > 0 {
				out["args"] = args
			}
		}
	case string:
		out["command"] = command
	}

	if enabled, ok := config["enabled"]; ok {
		out["enabled"] = enabled
	}
	if serverType, ok := config["type"]; ok {
		out["type"] = serverType
	}

	if environment, ok := config["environment"]; ok {
		out["env"] = environment
	} else if env, ok := config["env"]; ok {
		out["env"] = env
	}

	for key, value := range config {
		switch key {
		case "command", "url", "enabled", "type", "env", "environment":
			continue
		}
		out[key] = value
	}

	return out
}

// standardToOpencode converts a canonical entry back to the OpenCode shape.
// "type" is inferred as remote or local when the entry does not carry one.
func standardToOpencode(config map[string]any) (map[string]any, error) {
	out := identityConfig(config)

	if command, ok := config["command"].(string); ok {
		commandList := []any{command}
		if args, ok := config["args"].([]any); ok {
			for _, arg := range args {
				if s, ok := arg.(string); ok {
					commandList = append(commandList, s)
				}
			}
		}
		out["command"] = commandList
		delete(out, "args")
	}

	if env, ok := out["env"]; ok {
		delete(out, "env")
		if _, exists := out["environment"]; !exists {
			out["environment"] = env
		}
	}

	if _, ok := out["type"]; !ok {
		if _, ok := out["url"]; ok {
			out["type"] = "remote"
		} else if _, ok := out["command"]; ok {
			out["type"] = "local"
		}
	}

	return out, nil
}

func stringAt(items []any, index int) (string, bool) {
	if index >= len(items) {
		return "", false
	}
	s, ok := items[index].(string)
	return s, ok
}
