package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sant0-9/prompto/internal/intent"
	"github.com/sant0-9/prompto/internal/templates"
)

func newTemplatesCmd(rt *runtime) *cobra.Command {
	var intentName string

	cmd := &cobra.Command{
		Use:   "templates [id]",
		Short: "List prompt templates, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				t, ok := rt.catalog.ByID(args[0])
				if !ok {
					return fmt.Errorf("unknown template %q", args[0])
				}
				fmt.Fprintf(out, "%s (%s)\n%s\n\n%s\n", t.Name, t.Intent, t.Description, t.Text)
				return nil
			}

			list := rt.catalog.All()
			if intentName != "" {
				in, err := intent.Parse(intentName)
				if err != nil {
					return err
				}
				list = rt.catalog.ByIntent(in)
			}

			fmt.Fprintln(out, renderTemplateTable(list))
			return nil
		},
	}

	cmd.Flags().StringVarP(&intentName, "intent", "i", "", "only list templates for this intent")
	return cmd
}

func renderTemplateTable(list []templates.Template) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "INTENT", "NAME", "PLACEHOLDERS").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	for _, tpl := range list {
		t.Row(tpl.ID, tpl.Intent.String(), tpl.Name, strings.Join(tpl.ContentPlaceholders(), ", "))
	}
	return t.Render()
}
