package mnemonic

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// StoryValidator decides whether a mnemonic story is good enough to ship.
type StoryValidator interface {
	Accept(story string) bool
}

// StoryValidatorFunc adapts a plain function to StoryValidator.
type StoryValidatorFunc func(story string) bool

// Accept calls f(story).
func (f StoryValidatorFunc) Accept(story string) bool { return f(story) }

// Rejection reasons reported by PhraseGate.
const (
	reasonEmpty    = "empty"
	reasonTooShort = "too short"
	reasonBanned   = "banned phrase"
)

// PhraseGate rejects stories that are empty, shorter than a minimum rune
// count, or contain a banned meta phrase.
type PhraseGate struct {
	minLength int
	banned    *regexp.Regexp // nil when no phrases are banned
}

// NewPhraseGate builds a gate. Phrases match literally and case-insensitively.
func NewPhraseGate(minLength int, bannedPhrases []string) *PhraseGate {
	g := &PhraseGate{minLength: minLength}

	quoted := make([]string, 0, len(bannedPhrases))
	for _, p := range bannedPhrases {
		if p = strings.TrimSpace(p); p != "" {
			quoted = append(quoted, regexp.QuoteMeta(p))
		}
	}
	if len(quoted) > 0 {
		g.banned = regexp.MustCompile(`(?i)(?:` + strings.Join(quoted, "|") + `)`)
	}
	return g
}

// Accept reports whether story passes the gate.
func (g *PhraseGate) Accept(story string) bool {
	return g.Reason(story) == ""
}

// Reason returns why story is rejected, or "" if it passes.
func (g *PhraseGate) Reason(story string) string {
	s := strings.TrimSpace(story)
	switch {
	case s == "":
		return reasonEmpty
	case utf8.RuneCountInString(s) < g.minLength:
		return reasonTooShort
	case g.banned != nil && g.banned.MatchString(s):
		return reasonBanned
	}
	return ""
}

// rejectReason returns a log-friendly reason when v can explain itself.
func rejectReason(v StoryValidator, story string) string {
	if r, ok := v.(interface{ Reason(string) string }); ok {
		return r.Reason(story)
	}
	return "rejected"
}

// FallbackPolicy decides the story shipped when regeneration also fails.
type FallbackPolicy string

const (
	// FallbackTemplate renders a fixed template with {word} and {meaning}.
	FallbackTemplate FallbackPolicy = "template"
	// FallbackEmpty ships an empty story.
	FallbackEmpty FallbackPolicy = "empty"
	// FallbackKeep ships the rejected replacement, or the first story when
	// regeneration produced none.
	FallbackKeep FallbackPolicy = "keep"
)

// apply returns the fallback story. An item without a meaning never gets a
// template story.
func (p FallbackPolicy) apply(template, word, meaning, rejected string) string {
	switch p {
	case FallbackKeep:
		return strings.TrimSpace(rejected)
	case FallbackTemplate:
		if meaning == "" || template == "" {
			return ""
		}
		return strings.NewReplacer("{word}", word, "{meaning}", meaning).Replace(template)
	default:
		return ""
	}
}
