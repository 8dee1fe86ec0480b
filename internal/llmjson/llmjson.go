// Package llmjson turns raw oracle replies into structured documents.
// Replies are expected to hold exactly one JSON document, but models wrap it
// in code fences often enough that the fences are stripped first.
package llmjson

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/mnemo-vocab/internal/domain"
)

const fence = "```"

var errInvalidJSON = errors.New("not a valid JSON document")

// StripFences removes, in order, a leading language-tagged fence opener
// ("```json", any case), a leading bare fence opener and a trailing fence
// closer. Surrounding whitespace is trimmed.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) >= len(fence)+4 && strings.EqualFold(s[:len(fence)+4], fence+"json") {
		s = s[len(fence)+4:]
	}
	s = strings.TrimPrefix(s, fence)
	s = strings.TrimSuffix(s, fence)
	return strings.TrimSpace(s)
}

// Parse strips fences from raw and parses the remainder. Anything that is
// not a single valid JSON value yields a *domain.ParseError carrying raw
// exactly as received.
func Parse(raw string) (gjson.Result, error) {
	cleaned := StripFences(raw)
	if cleaned == "" || !gjson.Valid(cleaned) {
		return gjson.Result{}, &domain.ParseError{Raw: raw, Err: errInvalidJSON}
	}
	return gjson.Parse(cleaned), nil
}

// String reads a scalar field leniently: strings are trimmed, numbers and
// booleans are rendered as text, while null, arrays and objects read as "".
func String(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return strings.TrimSpace(r.Str)
	case gjson.Number, gjson.True, gjson.False:
		return r.Raw
	default:
		return ""
	}
}

// Array returns the elements of r when it is an array, otherwise nil.
func Array(r gjson.Result) []gjson.Result {
	if !r.IsArray() {
		return nil
	}
	return r.Array()
}
