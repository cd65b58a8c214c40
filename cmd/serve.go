package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helmcode/configlint-ai/pkg/analyzer"
	"github.com/helmcode/configlint-ai/pkg/controller"
	"github.com/helmcode/configlint-ai/pkg/server"
)

var (
	serveAddr     string
	serveTitle    string
	serveProvider string
	serveModel    string
)

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser UI",
		Long: `Start the web interface. Every browser tab gets its own session:
paste or upload a file, pick its type and analyze it.

Examples:
  # Serve on the port from PORT (default 8080)
  configlint-ai serve

  # Serve on localhost only, using OpenAI
  configlint-ai serve --addr 127.0.0.1:3000 --provider openai`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address; defaults to :$PORT or :8080")
	cmd.Flags().StringVar(&serveTitle, "title", "Config Lint AI", "Page title")
	cmd.Flags().StringVar(&serveProvider, "provider", "", "LLM provider (gemini, claude, openai); defaults to LLM_PROVIDER or gemini")
	cmd.Flags().StringVar(&serveModel, "model", "", "LLM model; defaults to LLM_MODEL or the provider default")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// a missing credential stops here, before anything is served
	a, err := analyzer.NewFromEnv(ctx, providerOrDefault(serveProvider), modelOrDefault(serveModel), logger)
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = appConfig.Addr
	}

	handlers := server.NewHandlers(server.Config{
		Title:             serveTitle,
		ControllerOptions: []controller.Option{controller.WithLogger(logger)},
	}, a, logger)

	color.New(color.FgCyan, color.Bold).Fprintf(os.Stderr, "🌐 Serving on %s\n", addr)
	logger.Info("starting server", zap.String("addr", addr), zap.String("llm", a.Name()))

	if err := server.ListenAndServe(ctx, addr, handlers.Routes(), logger); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
