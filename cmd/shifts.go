package cmd

import (
	"github.com/spf13/cobra"
)

var shiftsOpts transposeOptions

func init() {
	shiftsOpts.render.register(shiftsCmd)
	rootCmd.AddCommand(shiftsCmd)
}

var shiftsCmd = &cobra.Command{
	Use:   "shifts [file]",
	Short: "Prints the shift from the sheet's key to every other key",
	Long: `Reads a chord sheet up to its first chord and prints, for each of the
twelve keys, the --transpose amount that would move the sheet there.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := shiftsOpts
		opts.printShifts = true
		return runTranspose(opts, inputArg(args), cmd.OutOrStdout())
	},
}
