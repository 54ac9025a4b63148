package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"emojiusage/pkg/aggregator"
	"emojiusage/pkg/auth"
	"emojiusage/pkg/config"
	"emojiusage/pkg/csvout"
	"emojiusage/pkg/logger"
)

var (
	// Aggregate command flags
	token            string
	months           int
	minIntervalSec   float64
	maxRetry         int
	includeReactions bool
	onlyStandard     bool
	onlyCustom       bool
	noStandard       bool
	noCustom         bool
	maxEmojis        int
	outputPath       string
	workspace        string
	noBackup         bool
)

// aggregateCmd represents the aggregate command
var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Scan the workspace and write the monthly usage CSV",
	Long: `Scan the workspace and count, for every emoji and every month in the
window, how many messages matched it. The result is written as a
long-format CSV with one row per emoji and month.

Every emoji/month pair costs one search query (two with
--include-reactions), spaced at least the configured interval apart.
A 12-month scan over a few hundred emoji runs for several hours; the
log reports progress and an estimate up front.`,
	Example: `  # Scan the last 12 months with default settings
  emojiusage aggregate

  # Shorter window, custom emoji only
  emojiusage aggregate --months 3 --only-custom

  # Count reactions too and write elsewhere
  emojiusage aggregate --include-reactions --output usage.csv

  # Quick smoke run against a handful of emoji
  emojiusage aggregate --months 1 --max-emojis 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runAggregate()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(aggregateCmd)

	for _, flags := range []*cobra.Command{aggregateCmd, rootCmd} {
		f := flags.Flags()
		f.StringVar(&token, "token", "", "Slack user token (overrides stored credentials)")
		f.IntVarP(&months, "months", "m", 12, "how many months to scan, ending with the current one")
		f.Float64Var(&minIntervalSec, "min-interval-sec", 5, "minimum seconds between API calls")
		f.IntVar(&maxRetry, "max-retry", 3, "maximum retries after a throttled call")
		f.BoolVar(&includeReactions, "include-reactions", false, "also count reaction-only usage (doubles the query count)")
		f.BoolVar(&onlyStandard, "only-standard", false, "scan standard emoji only")
		f.BoolVar(&onlyCustom, "only-custom", false, "scan custom workspace emoji only")
		f.BoolVar(&noStandard, "no-standard", false, "exclude standard emoji")
		f.BoolVar(&noCustom, "no-custom", false, "exclude custom workspace emoji")
		f.IntVar(&maxEmojis, "max-emojis", 0, "limit the emoji working set (0 = no limit)")
		f.StringVarP(&outputPath, "output", "o", "", "output CSV path (default emoji_usage.csv)")
		f.StringVarP(&workspace, "workspace", "w", "", "use the token stored for this workspace")
		f.BoolVar(&noBackup, "no-backup", false, "overwrite an existing output file without a backup")
	}
}

func runAggregate() {
	flags := make(map[string]interface{})
	if token != "" {
		flags["token"] = token
	}
	if months != 12 {
		flags["months"] = months
	}
	if minIntervalSec != 5 {
		flags["min-interval-sec"] = minIntervalSec
	}
	if maxRetry != 3 {
		flags["max-retry"] = maxRetry
	}
	if includeReactions {
		flags["include-reactions"] = true
	}
	if onlyStandard {
		flags["only-standard"] = true
	}
	if onlyCustom {
		flags["only-custom"] = true
	}
	if noStandard {
		flags["no-standard"] = true
	}
	if noCustom {
		flags["no-custom"] = true
	}
	if maxEmojis != 0 {
		flags["max-emojis"] = maxEmojis
	}
	if outputPath != "" {
		flags["output"] = outputPath
	}
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}
	if noBackup {
		cfg.Output.Backup = false
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logging:", err)
		os.Exit(1)
	}
	log := logger.GetLogger()
	log.WithField("version", version).Info("emojiusage starting")

	if cfg.Slack.Token == "" {
		resolveStoredToken(cfg, log)
	}
	if cfg.Slack.Token == "" {
		log.Error("No Slack token found")
		fmt.Fprintln(os.Stderr, "No Slack token found.")
		fmt.Fprintln(os.Stderr, "\nTo store one securely, run:")
		fmt.Fprintln(os.Stderr, "  emojiusage auth login")
		fmt.Fprintln(os.Stderr, "\nOr set it in the environment:")
		fmt.Fprintln(os.Stderr, "  export SLACK_TOKEN=xoxp-...")
		os.Exit(1)
	}

	// Fail on output problems before the first API call
	writer := csvout.NewWriter(cfg.Output.Path, cfg.Output.Backup, log)
	if err := writer.Validate(); err != nil {
		log.WithError(err).Error("Output path rejected")
		fmt.Fprintln(os.Stderr, "Output path rejected:", err)
		os.Exit(1)
	}

	agg, err := aggregator.New(cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize aggregator:", err)
		os.Exit(1)
	}

	records, stats, runErr := agg.Run()
	if runErr != nil {
		log.WithError(runErr).Error("Aggregation failed")
		// Flush whatever was measured before the failure
		if len(records) > 0 {
			if err := writer.Write(records); err != nil {
				log.WithError(err).Error("Could not flush partial results")
			} else {
				fmt.Fprintf(os.Stderr, "Aggregation failed after %d queries; %d partial rows written to %s\n",
					stats.QueriesMade, len(records), writer.Path())
			}
		}
		fmt.Fprintln(os.Stderr, "Aggregation failed:", runErr)
		os.Exit(1)
	}

	if err := writer.Write(records); err != nil {
		log.WithError(err).Error("Could not write output")
		fmt.Fprintln(os.Stderr, "Could not write output:", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d rows (%d emoji x %d months) to %s\n",
		len(records), stats.EmojiCount, stats.MonthCount, writer.Path())
}

// resolveStoredToken fills cfg.Slack.Token from secure storage
func resolveStoredToken(cfg *config.Config, log logger.Logger) {
	manager, err := auth.NewManager()
	if err != nil {
		log.WithError(err).Warn("Token storage unavailable")
		return
	}

	var stored *auth.Token
	if workspace != "" {
		stored, err = manager.Retrieve(workspace)
	} else {
		stored, err = manager.RetrieveDefault()
	}
	if err != nil || stored == nil {
		return
	}

	cfg.Slack.Token = stored.Value
	log.WithField("workspace", stored.Workspace).Info("Using stored token")
}
