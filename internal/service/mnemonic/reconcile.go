package mnemonic

import (
	"strings"

	"github.com/heartmarshall/mnemo-vocab/internal/domain"
)

// Reconcile maps oracle records back onto the normalized input by word key
// (trimmed, case-insensitive). The first record for a key wins. The result
// has the input's length and order; meanings always come from the input.
// Items without a record get noEtymology and an empty story.
func Reconcile(normalized []domain.NormalizedVocabItem, records []domain.OracleRecord, noEtymology string) []domain.ReconciledItem {
	byWord := make(map[string]domain.OracleRecord, len(records))
	for _, r := range records {
		key := domain.NormalizeText(r.Word)
		if key == "" {
			continue
		}
		if _, seen := byWord[key]; !seen {
			byWord[key] = r
		}
	}

	out := make([]domain.ReconciledItem, len(normalized))
	for i, n := range normalized {
		rec := byWord[domain.NormalizeText(n.Word)]

		rootword := strings.TrimSpace(rec.Rootword)
		if rootword == "" {
			rootword = noEtymology
		}

		out[i] = domain.ReconciledItem{
			Word:     n.Word,
			Meaning:  n.Meaning,
			Rootword: rootword,
			Story:    strings.TrimSpace(rec.Story),
		}
	}
	return out
}
