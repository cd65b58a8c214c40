package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/helmcode/configlint-ai/pkg/analyzer"
	"github.com/helmcode/configlint-ai/pkg/controller"
	"github.com/helmcode/configlint-ai/pkg/tui"
)

var (
	tuiCategory string
	tuiFile     string
	tuiProvider string
	tuiModel    string
)

func NewTUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Check files interactively in the terminal",
		Long: `Open an interactive editor. Paste a file or load one with --file,
press ctrl+r to analyze it and switch between errors, corrected code and
best practices with tab.`,
		Args:        cobra.NoArgs,
		RunE:        runTUI,
		Annotations: map[string]string{defaultLogLevelKey: "error"},
	}

	cmd.Flags().StringVarP(&tuiCategory, "category", "c", "", "Initial file type; detected from --file when empty")
	cmd.Flags().StringVarP(&tuiFile, "file", "f", "", "Load this file into the editor")
	cmd.Flags().StringVar(&tuiProvider, "provider", "", "LLM provider (gemini, claude, openai); defaults to LLM_PROVIDER or gemini")
	cmd.Flags().StringVar(&tuiModel, "model", "", "LLM model; defaults to LLM_MODEL or the provider default")

	return cmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	var source string
	if tuiFile != "" {
		var err error
		if source, err = readSource(tuiFile, cmd.InOrStdin()); err != nil {
			return err
		}
	}
	category, err := resolveCategory(tuiCategory, tuiFile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	a, err := analyzer.NewFromEnv(ctx, providerOrDefault(tuiProvider), modelOrDefault(tuiModel), logger)
	if err != nil {
		return err
	}

	ctl := controller.New(ctx, a,
		controller.WithLogger(logger),
		controller.WithClipboard(tui.SystemClipboard),
		controller.WithSource(source),
		controller.WithCategory(category))
	defer ctl.Close()

	_, err = tea.NewProgram(tui.New(ctx, ctl), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	cancel()
	return err
}
