package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sant0-9/prompto/internal/config"
	"github.com/sant0-9/prompto/internal/enhance"
	"github.com/sant0-9/prompto/internal/intent"
	"github.com/sant0-9/prompto/internal/workspace"
)

type enhanceOptions struct {
	intent    string
	file      string
	lines     string
	selection string
	project   bool
	git       bool
	related   []string
	mode      string
	timeout   time.Duration
	copy      bool
	json      bool
}

// enhanceOutput is the --json shape
type enhanceOutput struct {
	Intent intent.Intent `json:"intent"`
	enhance.Result
}

func newEnhanceCmd(rt *runtime) *cobra.Command {
	o := &enhanceOptions{}

	cmd := &cobra.Command{
		Use:   "enhance [text...]",
		Short: "Enhance a request into a prompt",
		Long: `Enhance a request into a prompt and print it.

The text comes from the arguments, or from stdin when none are given.
Without --intent the request is classified automatically.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnhance(cmd, rt, o, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.intent, "intent", "i", "", "intent to use (default: classified from the text)")
	f.StringVarP(&o.file, "file", "f", "", "current file to reference")
	f.StringVar(&o.lines, "lines", "", "line range of --file to include, as start:end")
	f.StringVar(&o.selection, "selection", "", "selected code to include")
	f.BoolVarP(&o.project, "project", "p", false, "include the project file list")
	f.BoolVarP(&o.git, "git", "g", false, "include git status")
	f.StringArrayVar(&o.related, "related", nil, "related file (repeatable)")
	f.StringVar(&o.mode, "mode", "", "override the mode: auto, ruleOnly or manual")
	f.DurationVar(&o.timeout, "timeout", 0, "bound on the AI rewrite (default: probe + request timeout)")
	f.BoolVarP(&o.copy, "copy", "c", false, "copy the prompt to the clipboard")
	f.BoolVar(&o.json, "json", false, "print the result as JSON")

	return cmd
}

func runEnhance(cmd *cobra.Command, rt *runtime, o *enhanceOptions, args []string) error {
	text, err := inputText(cmd, args)
	if err != nil {
		return err
	}

	cfg := rt.cfg.Clone()
	if o.mode != "" {
		m, err := config.ParseMode(o.mode)
		if err != nil {
			return err
		}
		cfg.Mode = m
	}

	in := intent.Classify(text)
	if o.intent != "" {
		in, err = intent.Parse(o.intent)
		if err != nil {
			return err
		}
	}

	pc, err := workspace.Build(workspace.Options{
		FilePath:  o.file,
		Lines:     o.lines,
		Selection: o.selection,
		Project:   o.project,
		Git:       o.git,
		Related:   o.related,
	})
	if err != nil {
		return fmt.Errorf("failed to collect context: %w", err)
	}

	req := enhance.Request{
		Intent:  in,
		Input:   text,
		Context: pc,
		Flags: enhance.Flags{
			File:      o.file != "",
			Selection: o.selection != "" || o.lines != "",
			Project:   o.project,
			Git:       o.git,
			Related:   len(o.related) > 0,
		},
	}

	pipeline := rt.newPipeline(cfg)
	if o.timeout > 0 {
		pipeline.Timeout = o.timeout
	}
	res := pipeline.Run(cmd.Context(), req)

	if o.copy {
		if err := rt.clipboard(res.Prompt); err != nil {
			log.Warn().Err(err).Msg("Failed to copy to clipboard")
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not copy to clipboard: %v\n", err)
		}
	}

	out := cmd.OutOrStdout()
	if o.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(enhanceOutput{Intent: in, Result: res})
	}
	fmt.Fprintln(out, res.Prompt)
	return nil
}
