package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/mnemo-vocab/internal/domain"
	"github.com/heartmarshall/mnemo-vocab/internal/service/grading"
)

func newGradeCmd(load configLoader) *cobra.Command {
	var (
		in     grading.Input
		qType  string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Grade one learner answer",
		Example: `  mnemo grade --meaning "중단,중단하다" --answer "멈춤"
  mnemo grade --type meaning_to_word --word cease --meaning 중단 --answer ceese`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.QuestionType = domain.QuestionType(qType)
			if err := in.Validate(); err != nil {
				return err
			}

			a, err := bootstrap(load)
			if err != nil {
				return err
			}

			result, err := a.Grading.Grade(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("grade: %w", err)
			}

			if pretty {
				_, err = fmt.Fprint(cmd.OutOrStdout(), renderGrade(result))
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&qType, "type", string(domain.QuestionWordToMeaning), "question type: word_to_meaning or meaning_to_word")
	cmd.Flags().StringVar(&in.CorrectWord, "word", "", "the English word")
	cmd.Flags().StringVar(&in.CorrectMeaning, "meaning", "", "comma separated correct meanings")
	cmd.Flags().StringVar(&in.UserAnswer, "answer", "", "the learner's answer")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "print a styled verdict instead of JSON")
	return cmd
}
