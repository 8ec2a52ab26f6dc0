package cmd

import (
	"github.com/spf13/cobra"
)

var (
	config   *Config
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "roundtrip",
	Short: "Tools for building messages from descriptions and checking the output",
	Long: `Tools for building messages from YAML descriptions and checking the output.

Settings are read from ROUNDTRIP_* environment variables. Run "roundtrip env"
to list them.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn, or error (overrides ROUNDTRIP_LOG_LEVEL)")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	config, err = loadConfig()
	if err != nil {
		return err
	}

	if logLevel != "" {
		config.LogLevel = logLevel
	}

	return openLog(config.LogLevel)
}

func Execute() error {
	return rootCmd.Execute()
}
