package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/mnemo-vocab/internal/domain"
	"github.com/heartmarshall/mnemo-vocab/internal/llmjson"
)

var errNoVocab = errors.New(`expected {"vocab":[...]} or a list of {"word","meaning"} objects`)

// readVocabFile loads a vocabulary list from a JSON file.
func readVocabFile(path string) ([]domain.VocabItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	items, err := parseVocab(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return items, nil
}

// parseVocab accepts either {"vocab":[...]} or a bare list. Entries that are
// not objects are skipped; numeric meanings are read as text.
func parseVocab(data []byte) ([]domain.VocabItem, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("not valid JSON")
	}

	doc := gjson.ParseBytes(data)
	list := doc
	if doc.IsObject() {
		list = doc.Get("vocab")
	}
	if !list.IsArray() {
		return nil, errNoVocab
	}

	var items []domain.VocabItem
	for _, e := range list.Array() {
		if !e.IsObject() {
			continue
		}
		items = append(items, domain.VocabItem{
			Word:       llmjson.String(e.Get("word")),
			RawMeaning: llmjson.String(e.Get("meaning")),
		})
	}
	return items, nil
}
