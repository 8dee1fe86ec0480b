package mnemonic

import (
	"regexp"

	"github.com/heartmarshall/mnemo-vocab/internal/domain"
)

var firstRoot = regexp.MustCompile(`\(([^)]+)\)`)

// rootKey returns the grouping key for a rootword: its first "(root)" token
// when present, otherwise the whole rootword. The sentinel maps to "".
func rootKey(rootword, noEtymology string) string {
	key := domain.NormalizeText(rootword)
	if key == "" || key == domain.NormalizeText(noEtymology) {
		return ""
	}
	if m := firstRoot.FindStringSubmatch(key); m != nil {
		return domain.NormalizeText(m[1])
	}
	return key
}

// GroupByRoot stably reorders items so words sharing a root sit together.
// Each group takes the position of its first member; items with no
// etymology stay where they are relative to the groups.
func GroupByRoot(items []domain.ReconciledItem, noEtymology string) []domain.ReconciledItem {
	var groups [][]domain.ReconciledItem
	index := make(map[string]int)

	for _, it := range items {
		key := rootKey(it.Rootword, noEtymology)
		if key == "" {
			groups = append(groups, []domain.ReconciledItem{it})
			continue
		}
		if i, ok := index[key]; ok {
			groups[i] = append(groups[i], it)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, []domain.ReconciledItem{it})
	}

	out := make([]domain.ReconciledItem, 0, len(items))
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
