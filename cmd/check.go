package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/helmcode/configlint-ai/pkg/analyzer"
	"github.com/helmcode/configlint-ai/pkg/formatter"
	"github.com/helmcode/configlint-ai/pkg/model"
)

var (
	checkCategory     string
	checkOutputFormat string
	checkProvider     string
	checkModel        string
	checkCopy         bool
	checkFailOnErrors bool
	checkTimeout      time.Duration
)

func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Check a configuration file with AI assistance",
		Long: `Send a configuration file to the model and report syntax errors,
a corrected version and best-practice suggestions.

The file type is detected from well-known names (Dockerfile, Jenkinsfile,
.gitlab-ci.yml, docker-compose.yml, *.tf, .github/workflows/*.yml) and
can always be set with --category. Use "-" to read from stdin.

Examples:
  # Check an Ansible playbook
  configlint-ai check site.yml

  # Check a workflow and print JSON
  configlint-ai check .github/workflows/ci.yml -o json

  # Check stdin as a Kubernetes manifest with Claude
  cat deploy.yaml | configlint-ai check - -c kubernetes --provider claude

  # Fail the build when errors are found
  configlint-ai check Dockerfile --fail-on-errors`,
		Args:        cobra.ExactArgs(1),
		RunE:        runCheck,
		Annotations: map[string]string{defaultLogLevelKey: "warn"},
	}

	cmd.Flags().StringVarP(&checkCategory, "category", "c", "", fmt.Sprintf("File type (%s); detected from the file name when empty", strings.Join(model.CategoryIDs(), ", ")))
	cmd.Flags().StringVarP(&checkOutputFormat, "output", "o", "human", fmt.Sprintf("Output format (%s)", strings.Join(formatter.Formats, ", ")))
	cmd.Flags().StringVar(&checkProvider, "provider", "", "LLM provider (gemini, claude, openai); defaults to LLM_PROVIDER or gemini")
	cmd.Flags().StringVar(&checkModel, "model", "", "LLM model; defaults to LLM_MODEL or the provider default")
	cmd.Flags().BoolVar(&checkCopy, "copy", false, "Copy the corrected code to the clipboard")
	cmd.Flags().BoolVar(&checkFailOnErrors, "fail-on-errors", false, "Exit with an error when the file is not valid")
	cmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "Maximum time to wait for the analysis")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	source, err := readSource(path, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if strings.TrimSpace(source) == "" {
		return fmt.Errorf("%s is empty", displayName(path))
	}

	category, err := resolveCategory(checkCategory, path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
	defer cancel()

	a, err := analyzer.NewFromEnv(ctx, providerOrDefault(checkProvider), modelOrDefault(checkModel), logger)
	if err != nil {
		return err
	}

	human := checkOutputFormat == "human"
	if human {
		printHeader(path, category, a.Name())
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " Analyzing with AI..."
	if human {
		s.Start()
	}

	result, err := a.Analyze(ctx, source, category)
	s.Stop()
	if err != nil {
		if human {
			printError("Analysis failed")
		}
		return err
	}
	if human {
		printSuccess("Analysis complete")
	}

	if err := formatter.DisplayResults(cmd.OutOrStdout(), result, category, checkOutputFormat); err != nil {
		return err
	}

	if checkCopy && !result.IsValid && result.CorrectedCode != "" {
		if err := clipboard.WriteAll(result.CorrectedCode); err != nil {
			return fmt.Errorf("failed to copy corrected code: %w", err)
		}
		if human {
			printSuccess("Corrected code copied to clipboard")
		}
	}

	if checkFailOnErrors && !result.IsValid {
		return fmt.Errorf("%s is not valid: %d error(s) found", displayName(path), len(result.Errors))
	}
	return nil
}

func readSource(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// resolveCategory prefers the flag, then the file name, then the default.
func resolveCategory(flag, path string) (model.Category, error) {
	if flag != "" {
		return model.ParseCategory(flag)
	}
	if c, ok := model.DetectCategory(path); ok {
		return c, nil
	}
	return model.DefaultCategory, nil
}

func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}

func printHeader(path string, category model.Category, provider string) {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(os.Stderr)
	cyan.Fprintln(os.Stderr, "🔍 Config Lint AI")
	fmt.Fprintf(os.Stderr, "📄 File: %s\n", displayName(path))
	fmt.Fprintf(os.Stderr, "🏷  Type: %s\n", category.Label())
	fmt.Fprintf(os.Stderr, "🤖 Model: %s\n", provider)
	fmt.Fprintln(os.Stderr)
}

func printSuccess(msg string) {
	green := color.New(color.FgGreen)
	green.Fprintf(os.Stderr, "✓ %s\n", msg)
}

func printError(msg string) {
	red := color.New(color.FgRed)
	red.Fprintf(os.Stderr, "✗ %s\n", msg)
}
