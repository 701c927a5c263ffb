package main

import (
	"io"
	"log/slog"
	"slices"

	"github.com/praetorian-inc/needle/pkg/config"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	quiet      bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "needle",
	Short: "Needle - exact substring search with four classic algorithms",
	Long: `Needle finds every occurrence of a pattern in a text using naive search,
Rabin-Karp, Knuth-Morris-Pratt or Boyer-Moore.

Results can be cross-checked against a reference implementation, timed,
recorded to a SQLite history and exported as JSON or SARIF.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default $"+config.EnvVar+" or "+config.DefaultFile+")")

	// Add subcommands
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(casesCmd)
	rootCmd.AddCommand(algorithmsCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger returns a text logger on w whose level follows --verbose/--quiet.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads the config file selected by --config, $NEEDLE_CONFIG or
// the default file in the working directory.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	newLogger(cmd.ErrOrStderr()).Debug("loaded config",
		"algorithm", cfg.Algorithm,
		"modulus", cfg.Modulus,
		"base", cfg.Base,
		"format", cfg.Format)
	return cfg, nil
}

// Flags set on the command line win over config file values.

func resolveString(cmd *cobra.Command, name, flagValue, configValue string) string {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configValue
}

func resolveInt(cmd *cobra.Command, name string, flagValue, configValue int) int {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configValue
}

// resolveFormat is resolveString for --format. A config file format the
// command cannot write falls back to human; an explicit flag is kept so the
// command can reject it.
func resolveFormat(cmd *cobra.Command, flagValue, configValue string, supported ...string) string {
	if cmd.Flags().Changed("format") {
		return flagValue
	}
	if !slices.Contains(supported, configValue) {
		return "human"
	}
	return configValue
}
