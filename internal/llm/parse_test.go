package llm

import (
	"errors"
	"testing"
)

type testRecord struct {
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Grade string `json:"grade"`
}

func testSchema() *Schema {
	return &Schema{
		Name:        "test-object",
		Description: "A test object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			},
			"required": []any{"name", "age"},
		},
	}
}

func TestDecode_Valid(t *testing.T) {
	rec, err := Decode[testRecord](`{"name":"Alice","age":10,"grade":"A"}`, testSchema())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if rec.Name != "Alice" || rec.Age != 10 || rec.Grade != "A" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestDecode_ValidWithoutOptional(t *testing.T) {
	if _, err := Decode[testRecord](`{"name":"Bob","age":8}`, testSchema()); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestDecode_StripsCodeFence(t *testing.T) {
	raw := "```json\n{\"name\":\"Carol\",\"age\":9}\n```"
	rec, err := Decode[testRecord](raw, testSchema())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if rec.Name != "Carol" {
		t.Fatalf("unexpected name %q", rec.Name)
	}
}

func TestDecode_StripsThinkBlock(t *testing.T) {
	raw := "<think>\nThe user wants JSON.\n</think>\n\n```\n{\"name\":\"Dan\",\"age\":11}\n```"
	rec, err := Decode[testRecord](raw, testSchema())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if rec.Name != "Dan" {
		t.Fatalf("unexpected name %q", rec.Name)
	}
}

func TestDecode_Failures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing required", `{"name":"Charlie"}`},
		{"wrong type", `{"name":"Dave","age":"ten"}`},
		{"invalid enum", `{"name":"Eve","age":9,"grade":"D"}`},
		{"malformed", `{not json}`},
		{"empty", ``},
		{"prose", `Sure! Here is your question.`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode[testRecord](tt.raw, testSchema())
			if err == nil {
				t.Fatal("expected error")
			}
			var sv *ErrSchemaValidation
			if !errors.As(err, &sv) {
				t.Fatalf("expected ErrSchemaValidation, got: %T", err)
			}
			if sv.Schema != "test-object" {
				t.Errorf("schema = %q, want test-object", sv.Schema)
			}
		})
	}
}

func TestDecode_CarriesRawText(t *testing.T) {
	raw := `{"name":"Charlie"}`
	_, err := Decode[testRecord](raw, testSchema())
	var sv *ErrSchemaValidation
	if !errors.As(err, &sv) {
		t.Fatalf("expected ErrSchemaValidation, got: %T", err)
	}
	if sv.Content != raw {
		t.Fatalf("content = %q, want %q", sv.Content, raw)
	}
}

func TestDecode_NilSchema(t *testing.T) {
	out, err := Decode[map[string]any](`{"anything":"goes"}`, nil)
	if err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
	if out["anything"] != "goes" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestDecode_NestedArrays(t *testing.T) {
	schema := &Schema{
		Name: "test-nested",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 2,
					"maxItems": 2,
				},
			},
			"required": []any{"options"},
		},
	}

	type rec struct {
		Options []string `json:"options"`
	}

	if _, err := Decode[rec](`{"options":["A) 1","B) 2"]}`, schema); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if _, err := Decode[rec](`{"options":["A) 1"]}`, schema); err == nil {
		t.Fatal("expected error for too few items")
	}
	if _, err := Decode[rec](`{"options":[1,2]}`, schema); err == nil {
		t.Fatal("expected error for wrong item type")
	}
}
