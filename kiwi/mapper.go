package kiwi

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CamelizeKeys returns a copy of decoded JSON graph with every object key
// converted to camelCase. Arrays are mapped element-wise, values are left intact.
func CamelizeKeys(v interface{}) interface{} {
	return convertKeys(v, camelize)
}

// DecamelizeKeys returns a copy of decoded JSON graph with every object key
// converted to snake_case.
func DecamelizeKeys(v interface{}) interface{} {
	return convertKeys(v, decamelize)
}

// Walks through the graph.
// Keys are processed in sorted order, so colliding keys resolve the same way on every run.
func convertKeys(v interface{}, conv func(string) string) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := make(map[string]interface{}, len(t))
		for _, k := range keys {
			out[conv(k)] = convertKeys(t[k], conv)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for ii, val := range t {
			out[ii] = convertKeys(val, conv)
		}
		return out
	default:
		return v
	}
}

// Converts snake, kebab or space separated key into camelCase.
func camelize(key string) string {
	if isNumerical(key) {
		return key
	}

	var b strings.Builder
	b.Grow(len(key))
	upper := false
	for _, r := range key {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			upper = true
			continue
		}

		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}

	s := b.String()
	if s == "" {
		return s
	}

	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(first)) + s[size:]
}

// Converts camelCase key into snake_case.
// Underscore is inserted only between a lower-case letter or digit and an upper-case one.
func decamelize(key string) string {
	if isNumerical(key) {
		return key
	}

	var b strings.Builder
	b.Grow(len(key) + 4)
	var prev rune
	for ii, r := range key {
		if ii > 0 && unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
		prev = r
	}

	return b.String()
}

// Numeric keys are never converted.
func isNumerical(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return true
	}

	_, err := strconv.ParseFloat(key, 64)
	return err == nil
}

// Parses JSON body, normalizes its keys and decodes result into out.
func decodeBody(body []byte, out interface{}) error {
	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return &ErrMalformedResponse{Reason: err.Error()}
	}

	if _, ok := raw.(map[string]interface{}); !ok {
		return &ErrMalformedResponse{Reason: "expected JSON object"}
	}

	normalized, err := json.Marshal(CamelizeKeys(raw))
	if err != nil {
		return &ErrMalformedResponse{Reason: err.Error()}
	}

	if err := json.Unmarshal(normalized, out); err != nil {
		return &ErrMalformedResponse{Reason: err.Error()}
	}

	return nil
}

// Encodes outgoing object with wire keys convention.
func encodeBody(in interface{}) ([]byte, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	return json.Marshal(DecamelizeKeys(raw))
}
