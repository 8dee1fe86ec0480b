package domain

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeText prepares text for comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses multiple spaces into one
//
// It is the join key between caller words and oracle records.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Default meaning conventions.
const (
	DefaultMeaningDelimiter  = ','
	DefaultMeaningSeparators = "/·•|;"
)

// whitespace matches exactly the runes unicode.IsSpace reports, so the
// patterns and the edge trimming agree on what a space is.
const whitespace = `[\t\n\v\f\r\x{85}\p{Z}]`

// MeaningNormalizer rewrites free-form meaning strings into a canonical sense
// list joined by a single delimiter. It holds only compiled patterns and is
// safe for concurrent use.
type MeaningNormalizer struct {
	delim        string
	delimRune    rune
	splitOnSpace bool

	separators *regexp.Regexp // nil when the separator set is empty
	multiSpace *regexp.Regexp
	padded     *regexp.Regexp
	repeated   *regexp.Regexp
	anySpace   *regexp.Regexp
}

// NewMeaningNormalizer builds a normalizer. separators lists the characters
// that always mark a sense boundary. When splitOnSpace is set, a meaning with
// no delimiter left after cleanup has its single spaces treated as boundaries.
func NewMeaningNormalizer(delim rune, separators string, splitOnSpace bool) *MeaningNormalizer {
	d := string(delim)
	qd := regexp.QuoteMeta(d)

	n := &MeaningNormalizer{
		delim:        d,
		delimRune:    delim,
		splitOnSpace: splitOnSpace,
		multiSpace:   regexp.MustCompile(whitespace + `{2,}`),
		padded:       regexp.MustCompile(whitespace + `*` + qd + whitespace + `*`),
		repeated:     regexp.MustCompile(`(?:` + qd + `){2,}`),
		anySpace:     regexp.MustCompile(whitespace + `+`),
	}

	if separators != "" {
		var class strings.Builder
		for _, r := range separators {
			class.WriteString(regexp.QuoteMeta(string(r)))
		}
		n.separators = regexp.MustCompile(`[` + class.String() + `]`)
	}
	return n
}

// DefaultMeaningNormalizer uses a comma delimiter, the default separator set
// and space splitting.
func DefaultMeaningNormalizer() *MeaningNormalizer {
	return NewMeaningNormalizer(DefaultMeaningDelimiter, DefaultMeaningSeparators, true)
}

// Delimiter returns the canonical delimiter.
func (n *MeaningNormalizer) Delimiter() string { return n.delim }

// Normalize returns the canonical sense list for raw. Blank input yields "".
// Normalize is idempotent.
func (n *MeaningNormalizer) Normalize(raw string) string {
	m := strings.TrimSpace(raw)
	if m == "" {
		return ""
	}

	if n.separators != nil {
		m = n.separators.ReplaceAllLiteralString(m, n.delim)
	}
	// A double space is an explicit sense boundary.
	m = n.multiSpace.ReplaceAllLiteralString(m, n.delim)
	m = n.padded.ReplaceAllLiteralString(m, n.delim)
	m = n.repeated.ReplaceAllLiteralString(m, n.delim)
	m = strings.TrimFunc(m, n.isEdge)

	// Single-token meanings ("중단") have nothing to split.
	if !n.splitOnSpace || strings.Contains(m, n.delim) || !n.anySpace.MatchString(m) {
		return m
	}
	return n.anySpace.ReplaceAllLiteralString(m, n.delim)
}

func (n *MeaningNormalizer) isEdge(r rune) bool {
	return r == n.delimRune || unicode.IsSpace(r)
}

// Senses splits a canonical meaning into its senses.
func (n *MeaningNormalizer) Senses(meaning string) []string {
	if meaning == "" {
		return nil
	}
	return strings.Split(meaning, n.delim)
}

// ValidDelimiter reports whether s is usable as a canonical delimiter:
// exactly one character that is not whitespace.
func ValidDelimiter(s string) bool {
	if utf8.RuneCountInString(s) != 1 {
		return false
	}
	return strings.TrimSpace(s) != ""
}
