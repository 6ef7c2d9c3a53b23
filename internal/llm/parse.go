package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

var (
	thinkBlock = regexp.MustCompile(`(?s)^<think>.*?</think>`)
	codeFence  = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*\\n?(.*?)\\s*```$")
)

// Decode interprets raw model output as JSON conforming to schema and
// decodes it into T. Any failure is returned as *ErrSchemaValidation
// carrying the raw text.
func Decode[T any](raw string, schema *Schema) (T, error) {
	var out T

	body := extractJSON(raw)
	if err := validateResponse(schema, raw, body); err != nil {
		return out, err
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, &ErrSchemaValidation{
			Schema:  schemaName(schema),
			Content: raw,
			Err:     fmt.Errorf("decode: %w", err),
		}
	}
	return out, nil
}

// extractJSON strips a leading reasoning block and a surrounding Markdown
// code fence, the two wrappers chat models commonly put around JSON.
func extractJSON(raw string) []byte {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(thinkBlock.ReplaceAllString(s, ""))
	if m := codeFence.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	return []byte(strings.TrimSpace(s))
}

// validateResponse validates body against the given Schema. raw is the
// unmodified model output reported on failure.
// Returns nil if no schema is provided and the body is well-formed JSON.
func validateResponse(schema *Schema, raw string, body []byte) error {
	name := schemaName(schema)

	if len(body) == 0 {
		return &ErrSchemaValidation{Schema: name, Content: raw, Err: errors.New("empty response")}
	}

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return &ErrSchemaValidation{
			Schema:  name,
			Content: raw,
			Err:     fmt.Errorf("invalid JSON: %w", err),
		}
	}

	if schema == nil {
		return nil
	}

	compiled, err := getCompiledSchema(schema)
	if err != nil {
		return &ErrSchemaValidation{
			Schema:  name,
			Content: raw,
			Err:     fmt.Errorf("compile schema: %w", err),
		}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ErrSchemaValidation{
			Schema:  name,
			Content: raw,
			Err:     fmt.Errorf("schema validation failed: %w", err),
		}
	}

	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants the definition in its own decoded form, so
	// round-trip it through JSON.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	defParsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}

func schemaName(schema *Schema) string {
	if schema == nil {
		return "json"
	}
	return schema.Name
}
