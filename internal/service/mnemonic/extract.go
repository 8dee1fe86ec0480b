package mnemonic

import (
	"github.com/heartmarshall/mnemo-vocab/internal/domain"
	"github.com/heartmarshall/mnemo-vocab/internal/llmjson"
)

// ExtractRecords parses a bulk reply into oracle records.
// A reply that is not a JSON document is a *domain.ParseError. A document
// without an items list yields no records; non-object entries are skipped.
func ExtractRecords(raw string) ([]domain.OracleRecord, error) {
	doc, err := llmjson.Parse(raw)
	if err != nil {
		return nil, err
	}

	elems := llmjson.Array(doc.Get("items"))
	records := make([]domain.OracleRecord, 0, len(elems))
	for _, e := range elems {
		if !e.IsObject() {
			continue
		}
		records = append(records, domain.OracleRecord{
			Word:     llmjson.String(e.Get("word")),
			Meaning:  llmjson.String(e.Get("meaning")),
			Rootword: llmjson.String(e.Get("rootword")),
			Story:    llmjson.String(e.Get("story")),
		})
	}
	return records, nil
}

// extractStory parses a single-item regeneration reply.
func extractStory(raw string) (string, error) {
	doc, err := llmjson.Parse(raw)
	if err != nil {
		return "", err
	}
	return llmjson.String(doc.Get("story")), nil
}
