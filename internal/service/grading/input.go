package grading

import (
	"strings"

	"github.com/heartmarshall/mnemo-vocab/internal/domain"
)

// Input holds one learner answer to grade.
type Input struct {
	QuestionType   domain.QuestionType
	CorrectWord    string
	CorrectMeaning string
	UserAnswer     string
}

// Validate checks all fields and collects all errors.
func (i Input) Validate() error {
	var errs []domain.FieldError

	switch {
	case i.QuestionType == "":
		errs = append(errs, domain.FieldError{Field: "questionType", Message: "required"})
	case !i.QuestionType.IsValid():
		errs = append(errs, domain.FieldError{Field: "questionType", Message: "must be word_to_meaning or meaning_to_word"})
	}
	if strings.TrimSpace(i.CorrectMeaning) == "" {
		errs = append(errs, domain.FieldError{Field: "correctMeaning", Message: "required"})
	}
	if strings.TrimSpace(i.UserAnswer) == "" {
		errs = append(errs, domain.FieldError{Field: "userAnswer", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
