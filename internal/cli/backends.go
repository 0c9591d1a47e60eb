package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sant0-9/prompto/internal/config"
)

func newBackendsCmd(rt *runtime) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "backends",
		Short: "Show which AI backends are available",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rt.cfg
			ai := rt.newPipeline(cfg).AI
			if refresh {
				ai.Invalidate()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Mode:       %s\n", cfg.Mode)

			if avail, ok := ai.Availability(cmd.Context(), refresh); !ok {
				fmt.Fprintln(out, "Local:      disabled")
			} else {
				fmt.Fprintf(out, "Local:      %s\n", describeLocal(avail.DisplayName, avail.Available, avail.Models))
			}

			b, err := ai.Detected(cmd.Context())
			switch {
			case err != nil:
				fmt.Fprintf(out, "Assistant:  error: %v\n", err)
			case !b.Available:
				fmt.Fprintln(out, "Assistant:  none found")
			case b.CanEnhance:
				fmt.Fprintf(out, "Assistant:  %s (ready)\n", b.DisplayName)
			default:
				fmt.Fprintf(out, "Assistant:  %s (installed, API key not set)\n", b.DisplayName)
			}

			printManual(out, cfg)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&refresh, "refresh", "r", false, "ignore cached probe results")
	return cmd
}

func describeLocal(name string, available bool, models []string) string {
	switch {
	case !available:
		return "not reachable"
	case len(models) == 0:
		return name + ", no models pulled"
	default:
		return fmt.Sprintf("%s, %d models: %s", name, len(models), strings.Join(models, ", "))
	}
}

func printManual(out io.Writer, cfg *config.Config) {
	name := cfg.Provider
	p := config.GetProvider(cfg.Provider)
	if p != nil {
		name = p.Name
	}
	line := fmt.Sprintf("%s / %s", name, cfg.Model)
	if p == nil || p.NeedsAPIKey {
		line += ", API key: " + cfg.MaskedAPIKey()
	}
	fmt.Fprintf(out, "Manual:     %s\n", line)
}
