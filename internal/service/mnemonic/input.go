package mnemonic

import (
	"strconv"
	"strings"

	"github.com/heartmarshall/mnemo-vocab/internal/domain"
)

// EnrichInput holds a study list to enrich.
type EnrichInput struct {
	Items []domain.VocabItem
}

// NewEnrichInput trims words and drops items whose word is blank.
func NewEnrichInput(items []domain.VocabItem) EnrichInput {
	kept := make([]domain.VocabItem, 0, len(items))
	for _, it := range items {
		word := strings.TrimSpace(it.Word)
		if word == "" {
			continue
		}
		kept = append(kept, domain.VocabItem{Word: word, RawMeaning: it.RawMeaning})
	}
	return EnrichInput{Items: kept}
}

// Validate checks all fields and collects all errors.
func (i EnrichInput) Validate() error {
	var errs []domain.FieldError

	if len(i.Items) == 0 {
		errs = append(errs, domain.FieldError{Field: "vocab", Message: "required"})
	}
	for idx, it := range i.Items {
		if strings.TrimSpace(it.Word) == "" {
			errs = append(errs, domain.FieldError{Field: fieldIndex("vocab", idx, "word"), Message: "required"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func fieldIndex(list string, idx int, field string) string {
	var b strings.Builder
	b.WriteString(list)
	b.WriteByte('[')
	b.WriteString(strconv.Itoa(idx))
	b.WriteString("].")
	b.WriteString(field)
	return b.String()
}
