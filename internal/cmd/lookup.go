package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"

	"github.com/wordser/wordser/internal/core"
	"github.com/wordser/wordser/internal/observability"
	"github.com/wordser/wordser/internal/output"
)

// errLookupFailed is returned when a lookup settles to a non-200 outcome.
var errLookupFailed = errors.New("lookup failed")

var lookupOutput string

var synonymsCmd = &cobra.Command{
	Use:   "synonyms <word>",
	Short: "Look up synonyms for a word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parts := mustComponents(true)
		return runLookup(cmd, core.KindSynonyms, args[0], parts.service.Synonyms, core.EmptySynonyms)
	},
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize <text>...",
	Short: "Summarize a passage of text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parts := mustComponents(false)
		return runLookup(cmd, core.KindSummary, strings.Join(args, " "), parts.service.Summarize, core.EmptySummary)
	},
}

var sentimentCmd = &cobra.Command{
	Use:   "sentiment <text>...",
	Short: "Score the sentiment of a passage of text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parts := mustComponents(false)
		return runLookup(cmd, core.KindSentiment, strings.Join(args, " "), parts.service.Sentiment, core.EmptySentiment)
	},
}

var keywordsCmd = &cobra.Command{
	Use:     "keywords <text>...",
	Aliases: []string{"extract"},
	Short:   "Extract ranked keywords from a passage of text",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parts := mustComponents(false)
		return runLookup(cmd, core.KindKeywords, strings.Join(args, " "), parts.service.Keywords, core.EmptyKeywords)
	},
}

func init() {
	for _, c := range []*cobra.Command{synonymsCmd, summarizeCmd, sentimentCmd, keywordsCmd} {
		c.Flags().StringVarP(&lookupOutput, "output", "o", "table", "Output format: table, json, markdown")
		rootCmd.AddCommand(c)
	}
}

// mustComponents loads config and pipelines for a one-shot command, exiting
// with a config error code on failure.
func mustComponents(requireThesaurus bool) *components {
	logger := observability.CLILogger

	cfg, err := loadConfig()
	if err != nil {
		ExitWithCode(logger, foundry.ExitConfigInvalid, "Invalid configuration", err)
	}
	parts, err := buildComponents(cfg, logger, requireThesaurus)
	if err != nil {
		ExitWithCode(logger, foundry.ExitConfigInvalid, "Failed to initialize lookup pipelines", err)
	}
	return parts
}

func runLookup[T core.Result](cmd *cobra.Command, kind core.Kind, term string, run func(context.Context, core.LookupRequest) (T, error), empty func() T) error {
	format, err := output.ParseFormat(lookupOutput)
	if err != nil {
		return err
	}

	value, runErr := run(cmd.Context(), core.LookupRequest{Term: term})
	report := output.NewReport(kind, term, core.Settle(value, runErr, empty))

	rendered, err := output.NewFormatter(format).FormatReport(report)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)

	if !report.OK() {
		if runErr != nil {
			return fmt.Errorf("%s %w: %w", kind, errLookupFailed, runErr)
		}
		return fmt.Errorf("%s %w", kind, errLookupFailed)
	}
	return nil
}
