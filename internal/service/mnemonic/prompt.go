package mnemonic

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/mnemo-vocab/internal/domain"
)

// Prompt is a rendered system/user instruction pair.
type Prompt struct {
	System string
	User   string
}

const listSchema = `{"items":[{"word":"...","meaning":"...","rootword":"...","story":"..."}]}`

const storySchema = `{"word":"...","story":"..."}`

const listSystem = `You write ultra-short Korean mnemonic stories for English vocabulary.

Output contract:
- Reply with exactly one JSON document of the form ` + listSchema + `
- Do not wrap the document in code fences or markdown.
- Do not write greetings, explanations or any text outside the document.

Fields:
- word: the English word exactly as given.
- meaning: the meaning string exactly as given. Never add, drop or edit senses.
- rootword: the etymology as "(root)gloss" pairs separated by commas, e.g. "(civis)시민,(al)형용사형".
  If the etymology is not known for certain, write "어원 정보 없음". Never invent roots.
- story: one Korean sentence, never empty. Pair a Korean phrase that sounds like the
  word, followed by the word in parentheses, with a tiny scene that evokes the meaning,
  e.g. "옵션(Option)이 많아서 뭐 고를지 고민이야." Keep it around 25 characters.
  No meta sentences such as "뜻을 외우자" or "꼭 기억하자", no dry "X는 Y이다" definitions,
  no spelling out letters.`

const storySystem = `You write one ultra-short Korean mnemonic story for one English word.
Reply with exactly one JSON document of the form ` + storySchema + ` and nothing else.
No code fences, no explanations.`

// BuildPrompt renders the bulk instruction pair for a normalized list.
// It is pure: the same list always renders the same prompt.
func BuildPrompt(items []domain.NormalizedVocabItem) Prompt {
	var b strings.Builder
	b.WriteString("Fill in rootword and story for every word below. Return one record per word.\n\n")
	b.WriteString("[Words]\n")
	for _, it := range items {
		fmt.Fprintf(&b, "- %s: %s\n", it.Word, it.Meaning)
	}
	b.WriteString("\nReply only in this shape:\n")
	b.WriteString(listSchema)

	return Prompt{System: listSystem, User: b.String()}
}

// buildStoryPrompt renders the single-item regeneration prompt.
func buildStoryPrompt(item domain.NormalizedVocabItem) Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a mnemonic story for %q.\n", item.Word)
	fmt.Fprintf(&b, "- Meaning of %s: %q\n", item.Word, item.Meaning)
	fmt.Fprintf(&b, "- One Korean sentence mixing a Korean sound-alike with (%s) so pronunciation and meaning come to mind together.\n", item.Word)
	b.WriteString("- A short scene, image or feeling. Not a definition.\n")
	b.WriteString("- No meta sentences such as \"외우자\", \"기억하자\", \"암기하자\".\n\n")
	fmt.Fprintf(&b, "Reply only with: {\"word\":%q,\"story\":\"...\"}", item.Word)

	return Prompt{System: storySystem, User: b.String()}
}
