package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxBodyBytes = 1 << 20

// requestError is a client error answered with 400.
type requestError struct {
	Message string
	// RawBody is echoed back when the body could not be parsed.
	RawBody *string
}

func (e *requestError) Error() string { return e.Message }

// readBody reads the request body and parses it as a JSON object. Anything
// else, including an empty body or a literal null, is a parse error.
func readBody(w http.ResponseWriter, r *http.Request, parseMessage string) (map[string]json.RawMessage, string, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, "", &requestError{Message: fmt.Sprintf("Failed to read request data: %v", err)}
	}
	raw := string(data)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, raw, &requestError{Message: parseMessage, RawBody: &raw}
	}
	return fields, raw, nil
}

// isNull reports whether a field is absent or JSON null.
func isNull(v json.RawMessage) bool {
	s := bytes.TrimSpace(v)
	return len(s) == 0 || bytes.Equal(s, []byte("null"))
}

// isFalsy reports whether v is absent, null, false, zero, or an empty
// string, object or array.
func isFalsy(v json.RawMessage) bool {
	if isNull(v) {
		return true
	}
	dec := json.NewDecoder(bytes.NewReader(v))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return true
	}
	switch t := x.(type) {
	case bool:
		return !t
	case string:
		return t == ""
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	return false
}

// text renders a field as the caller sent it: strings unquoted, every
// other value as its JSON literal, absent or null as "".
func text(v json.RawMessage) string {
	if isNull(v) {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(v))
}
