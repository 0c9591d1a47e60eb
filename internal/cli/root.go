package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/sant0-9/prompto/internal/cache"
	"github.com/sant0-9/prompto/internal/config"
	"github.com/sant0-9/prompto/internal/detect"
	"github.com/sant0-9/prompto/internal/enhance"
	"github.com/sant0-9/prompto/internal/logging"
	"github.com/sant0-9/prompto/internal/templates"
	"github.com/sant0-9/prompto/internal/tui"
)

var version = "dev"

// runtime is shared by every command of one invocation
type runtime struct {
	cfg     *config.Config
	verbose bool
	logFile io.Closer
	catalog *templates.Catalog

	detector  detect.Detector
	aiOptions []enhance.AIOption
	clipboard func(string) error
}

func newRuntime() *runtime {
	return &runtime{
		detector:  detect.NewCached(detect.NewEnvironment(), cache.DefaultTTL, nil),
		clipboard: clipboard.WriteAll,
	}
}

func (rt *runtime) newPipeline(cfg *config.Config) *enhance.Pipeline {
	opts := append([]enhance.AIOption{enhance.WithDetector(rt.detector)}, rt.aiOptions...)
	p := enhance.NewPipeline(cfg, opts...)
	if rt.catalog != nil {
		p.Rule = enhance.NewCatalogRuleEnhancer(rt.catalog)
	}
	return p
}

func loadCatalog() (*templates.Catalog, error) {
	dir, err := config.TemplatesDir()
	if err != nil {
		return nil, err
	}
	user, err := templates.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	return templates.NewCatalog(user), nil
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	return newRootCmd(newRuntime())
}

func newRootCmd(rt *runtime) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "prompto",
		Short:   "Turn rough requests into clear prompts for coding assistants",
		Version: version,
		Long: `prompto rewrites an informal request such as "btn not work when click"
into a structured prompt:
  • Intent classification and shorthand expansion
  • Templates per intent with file, selection, project and git context
  • An optional AI rewrite through a local model, a detected assistant
    or a configured provider, always falling back to the rule-based prompt

Run without a subcommand to start the interactive UI.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			rt.cfg = cfg

			opts := logging.OptionsFromConfig(cfg)
			opts.Console = rt.verbose
			rt.logFile, err = logging.Setup(opts)
			if err != nil {
				return fmt.Errorf("failed to set up logging: %w", err)
			}

			rt.catalog, err = loadCatalog()
			if err != nil {
				return fmt.Errorf("failed to load templates: %w", err)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if rt.logFile != nil {
				return rt.logFile.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			workDir, err := os.Getwd()
			if err != nil {
				return err
			}
			return tui.Run(tui.Options{
				Config:      rt.cfg,
				NeedsSetup:  !config.Exists(),
				NewPipeline: rt.newPipeline,
				WorkDir:     workDir,
			})
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "also log to stderr")

	rootCmd.AddCommand(newEnhanceCmd(rt))
	rootCmd.AddCommand(newClassifyCmd(rt))
	rootCmd.AddCommand(newTemplatesCmd(rt))
	rootCmd.AddCommand(newBackendsCmd(rt))
	rootCmd.AddCommand(newConfigCmd(rt))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// inputText joins the arguments, or reads stdin when there are none
func inputText(cmd *cobra.Command, args []string) (string, error) {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("nothing to enhance: pass text as arguments or on stdin")
	}
	return text, nil
}
