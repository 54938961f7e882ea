package cmd

import (
	"github.com/jsphweid/chordshift/constants"
	"github.com/jsphweid/chordshift/logging"
	"github.com/spf13/cobra"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "chordshift",
	Short: "Transposes chord sheets",
	Long: `Transposes plain-text chord sheets by any number of semitones, keeping
every chord above the syllable it belongs to.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		format, err := logging.ParseFormat(logFormat)
		if err != nil {
			return err
		}
		logging.InitLogger(level, format)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", constants.GetLogLevel(), "debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", constants.GetLogFormat(), "text or json")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
