package grading

import (
	"fmt"
	"strings"
)

const gradeSchema = `{"isCorrect": true or false, "feedback": "<one short line of Korean feedback>"}`

const gradeSystem = `You are a strict but fair English-Korean vocabulary grader.
Reply with exactly one JSON document of the form ` + gradeSchema + `
No code fences. No text outside the document. Feedback is short, in Korean,
and easy for a learner to follow.`

func buildPrompt(in Input) (system, user string) {
	word := strings.TrimSpace(in.CorrectWord)
	if word == "" {
		word = "(none)"
	}

	var b strings.Builder
	b.WriteString("Decide whether the learner's answer to this vocabulary question is correct.\n\n")
	fmt.Fprintf(&b, "- questionType: %s\n", in.QuestionType)
	fmt.Fprintf(&b, "- englishWord: %s\n", word)
	fmt.Fprintf(&b, "- correctMeanings (comma separated): %s\n", in.CorrectMeaning)
	fmt.Fprintf(&b, "- userAnswer: %s\n\n", in.UserAnswer)

	b.WriteString(`Rules for every question:
- Ignore spacing, Korean particles (을/를/이/가 ...) and punctuation.
- An answer that means practically the same thing is correct.
- An unrelated meaning or a different word is wrong.

word_to_meaning:
- correctMeanings lists several senses, e.g. "중단,중단하다,잠시 멈추다".
- A synonym or near-synonym of any one sense is correct (for "부족", "모자람" and "결핍" pass).
- A different concept ("책상") is wrong.

meaning_to_word:
- userAnswer must be an English word equal to englishWord.
- Ignore case. A typo of one or two letters may pass when it is clearly the same word.
- A different word is wrong.

`)
	b.WriteString("Reply only with: ")
	b.WriteString(gradeSchema)

	return gradeSystem, b.String()
}
