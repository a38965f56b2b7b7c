package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/undecorate/internal/logging"
	"github.com/mj1618/undecorate/internal/output"
	"github.com/mj1618/undecorate/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "undecorate",
	Short: "Remove window decorations, per window or for whole applications",
	Long: `undecorate removes the title bar and borders of X11 windows by setting
_MOTIF_WM_HINTS. Windows of whitelisted applications are undecorated as soon
as they open; the window menu actions can be run with the menu command or
through the MCP server.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("config", "", "Settings file (default $XDG_CONFIG_HOME/undecorate/settings.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error (overrides the settings file)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text, json")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")

		level, _ := rootCmd.PersistentFlags().GetString("log-level")
		logFormat, _ := rootCmd.PersistentFlags().GetString("log-format")
		return logging.Setup(level, logFormat)
	}
}
