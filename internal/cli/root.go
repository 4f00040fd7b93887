package cli

import (
	"HealthAssistant/pkg/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "health-assistant",
	Short: "Health Assistant maintenance and terminal chat",
	Long: `Command line companion of the Health Assistant service.
Lists the generative models available to the configured key, rebuilds the
FAQ table and runs a terminal conversation against the same pipeline as
the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if _, err := log.Init(); err != nil {
			log.Debug(log.Fields{"error": err.Error()}, "No .env file loaded")
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
