package cmd

import (
	"os"

	"github.com/gnzdotmx/ytpappend/internal/utils"
	"github.com/spf13/cobra"
)

var (
	// verbosityLevel is the command-line flag for setting the log level
	verbosityLevel string
	// configFilePath points to an optional YAML config file
	configFilePath string
	noColor        bool

	envFileLoaded bool
)

var rootCmd = &cobra.Command{
	Use:   "ytpappend",
	Short: "Append YouTube playlist exports to a FreeTube playlist store",
	Long: `ytpappend reads playlist export files (one video ID per line in the first
CSV column), looks the videos up with the YouTube Data API and appends one
FreeTube playlist per file to an existing FreeTube playlists.db.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Set the global log level based on the flag
		utils.SetLogLevel(utils.LogLevelFromString(verbosityLevel))
		utils.NoColor = noColor || os.Getenv("NO_COLOR") != ""

		if envFileLoaded {
			utils.LogDebug("Loaded environment variables from .env file")
		}
	},
}

// Execute runs the root command. envLoaded reports whether a .env file was read.
func Execute(envLoaded bool) error {
	envFileLoaded = envLoaded
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&verbosityLevel, "log-level", "l", "normal",
		"Set the logging verbosity level: quiet, normal, verbose, debug")
	rootCmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", "",
		"Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}
