package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "emojiusage",
	Short: "Aggregate per-month emoji usage for a Slack workspace",
	Long: `emojiusage counts how often each emoji was used in a Slack workspace,
month by month, and writes the result as a CSV.

It probes the workspace with one search.messages query per emoji and
month, paced well under the Slack search quota, so a full scan takes a
while but never trips the rate limiter. Custom workspace emoji are
discovered automatically and merged with the standard set.

The token is read from secure storage ('emojiusage auth login'), the
SLACK_TOKEN environment variable, or a config file.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Running without a subcommand starts an aggregation
		return aggregateCmd.RunE(cmd, args)
	},
	Args: cobra.NoArgs,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is .emojiusage.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.SetVersionTemplate(`emojiusage {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
