package mcpconfig

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/mcpservers.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("mcpservers.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("mcpservers.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// ParseCanonical validates a canonical MCP JSON document against the embedded
// schema and returns its entries keyed by server id. The input must be an
// object with an "mcpServers" object; every entry must be an object.
func ParseCanonical(input string) (map[string]any, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("invalid MCP JSON: %w", err)
	}

	if err := schema.Validate(inst); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return nil, fmt.Errorf("invalid MCP JSON: %s", summarizeValidation(validationErr))
		}
		return nil, fmt.Errorf("invalid MCP JSON: %w", err)
	}

	// Re-decode with json.Number so numeric fields keep their identity.
	doc, err := decodeJSONObject([]byte(input))
	if err != nil {
		return nil, fmt.Errorf("invalid MCP JSON: %w", err)
	}
	entries, _ := doc["mcpServers"].(map[string]any)

	servers := make(map[string]any, len(entries))
	for id, raw := range entries {
		if _, ok := raw.(map[string]any); !ok {
			return nil, fmt.Errorf("server %q is not an object", id)
		}
		servers[id] = raw
	}
	return servers, nil
}

// summarizeValidation walks the validation error tree and reports the leaf
// issues with their instance locations.
func summarizeValidation(ve *jsonschema.ValidationError) string {
	var parts []string
	collectLeafIssues(ve, &parts)
	if len(parts) == 0 {
		return ve.Error()
	}
	return strings.Join(parts, "; ")
}

func collectLeafIssues(ve *jsonschema.ValidationError, parts *[]string) {
	if len(ve.Causes) == 0 {
		msg := ve.Error()
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			*parts = append(*parts, msg)
		} else {
			*parts = append(*parts, fmt.Sprintf("%s: %s", path, msg))
		}
		return
	}
	for _, cause := range ve.Causes {
		collectLeafIssues(cause, parts)
	}
}
