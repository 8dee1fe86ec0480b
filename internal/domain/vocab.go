package domain

// VocabItem is one caller-supplied entry of a study list.
// RawMeaning is free-form and may use any separator convention.
type VocabItem struct {
	Word       string
	RawMeaning string
}

// NormalizedVocabItem carries the canonical sense list for one word.
type NormalizedVocabItem struct {
	Word    string
	Meaning string
}

// OracleRecord is what the oracle claims about one word. Every field may be
// missing; an absent field is the empty string.
type OracleRecord struct {
	Word     string
	Meaning  string
	Rootword string
	Story    string
}

// ReconciledItem is the final enriched unit returned to the caller.
// Meaning is always the normalized input meaning, never the oracle's value.
type ReconciledItem struct {
	Word     string `json:"word"`
	Meaning  string `json:"meaning"`
	Rootword string `json:"rootword"`
	Story    string `json:"story"`
}

// QuestionType selects the direction of a grading question.
type QuestionType string

const (
	QuestionWordToMeaning QuestionType = "word_to_meaning"
	QuestionMeaningToWord QuestionType = "meaning_to_word"
)

// IsValid reports whether q is a known question type.
func (q QuestionType) IsValid() bool {
	switch q {
	case QuestionWordToMeaning, QuestionMeaningToWord:
		return true
	}
	return false
}

// GradeResult is the oracle's verdict on one learner answer.
type GradeResult struct {
	IsCorrect bool   `json:"isCorrect"`
	Feedback  string `json:"feedback"`
}

// Page is a fetched blog page that holds a vocabulary list.
type Page struct {
	Slug    string
	URL     string
	RawHTML string
}
