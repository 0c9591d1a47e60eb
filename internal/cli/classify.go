package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sant0-9/prompto/internal/intent"
)

func newClassifyCmd(rt *runtime) *cobra.Command {
	var scores bool

	cmd := &cobra.Command{
		Use:   "classify [text...]",
		Short: "Print the intent of a request",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, intent.Classify(text))
			if !scores {
				return nil
			}

			lower := strings.ToLower(text)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%-10s %s\n", "INTENT", "SCORE")
			for _, i := range intent.All() {
				fmt.Fprintf(out, "%-10s %d\n", i, intent.Score(lower, i))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&scores, "scores", false, "also print the keyword score of every intent")
	return cmd
}
