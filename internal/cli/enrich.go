package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/mnemo-vocab/internal/domain"
	"github.com/heartmarshall/mnemo-vocab/internal/service/mnemonic"
)

func newEnrichCmd(load configLoader) *cobra.Command {
	var (
		file   string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Enrich a vocabulary file once and print the result",
		Long: `Run the enrichment pipeline once for a JSON vocabulary file.

The file holds either {"vocab":[{"word":"...","meaning":"..."}]} or a bare list
of the same objects. Output is {"items":[...]} as JSON, or a styled list with
--pretty.

Examples:
  mnemo enrich -f week3.json
  mnemo enrich -f week3.json --pretty`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vocab, err := readVocabFile(file)
			if err != nil {
				return err
			}

			a, err := bootstrap(load)
			if err != nil {
				return err
			}

			items, err := a.Mnemonic.Enrich(cmd.Context(), mnemonic.NewEnrichInput(vocab))
			if err != nil {
				return fmt.Errorf("enrich: %w", err)
			}

			if pretty {
				_, err = fmt.Fprint(cmd.OutOrStdout(), renderItems(items))
				return err
			}
			return writeJSON(cmd.OutOrStdout(), struct {
				Items []domain.ReconciledItem `json:"items"`
			}{Items: items})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the vocabulary JSON file")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "print a styled list instead of JSON")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
