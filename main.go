package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/helmcode/configlint-ai/cmd"
)

var (
	version = "v0.1.0" // Overwritten at build time
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "configlint-ai",
		Short: "AI-powered configuration file linting",
		Long: `configlint-ai sends DevOps configuration files (Ansible playbooks, CI
pipelines, Dockerfiles, Kubernetes manifests, Terraform) to a language
model and reports syntax errors, a corrected version and best practices.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cmd.InitRuntime,
		PersistentPostRun: cmd.SyncLogger,
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	cmd.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(
		cmd.NewCheckCmd(),
		cmd.NewServeCmd(),
		cmd.NewTUICmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("configlint-ai version %s\n", version)
		},
	}
}
