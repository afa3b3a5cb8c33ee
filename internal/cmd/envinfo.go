package cmd

import (
	"fmt"
	"runtime"

	"github.com/fulmenhq/gofulmen/crucible"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wordser/wordser/internal/config"
)

var envInfoCmd = &cobra.Command{
	Use:   "envinfo",
	Short: "Display environment information",
	Long:  "Display version, runtime and effective configuration. Credentials are reported as set or not set.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderEnvInfo(cfg, viper.ConfigFileUsed()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(envInfoCmd)
}

func renderEnvInfo(cfg *config.Config, configFile string) string {
	deps := crucible.GetVersion()
	if configFile == "" {
		configFile = "(none)"
	}
	lexicon := cfg.Inference.LexiconPath
	if lexicon == "" {
		lexicon = "(embedded)"
	}

	t := table.NewWriter()
	t.SetTitle(GetAppIdentity().BinaryName + " environment")
	t.AppendHeader(table.Row{"Section", "Key", "Value"})
	t.AppendRows([]table.Row{
		{"application", "version", versionInfo.Version},
		{"application", "commit", versionInfo.Commit},
		{"application", "built", versionInfo.BuildDate},
		{"ssot", "gofulmen", deps.Gofulmen},
		{"ssot", "crucible", deps.Crucible},
		{"runtime", "go", runtime.Version()},
		{"runtime", "platform", runtime.GOOS + "/" + runtime.GOARCH},
		{"runtime", "cpus", runtime.NumCPU()},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"config", "file", configFile},
		{"server", "address", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)},
		{"thesaurus", "base_url", cfg.Thesaurus.BaseURL},
		{"thesaurus", "api_key", credentialState(cfg.Thesaurus.APIKey)},
		{"thesaurus", "timeout", cfg.Thesaurus.Timeout.String()},
		{"inference", "lexicon", lexicon},
		{"inference", "summary_sentences", cfg.Inference.SummarySentences},
		{"inference", "max_keywords", cfg.Inference.MaxKeywords},
		{"logging", "level", cfg.Logging.Level},
		{"logging", "profile", cfg.Logging.Profile},
		{"metrics", "enabled", cfg.Metrics.Enabled},
		{"metrics", "port", cfg.Metrics.Port},
	})
	return t.Render()
}

func credentialState(value string) string {
	if value == "" {
		return "(not set)"
	}
	return "(set)"
}
