package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jsphweid/chordshift/constants"
	"github.com/jsphweid/chordshift/logging"
	"github.com/jsphweid/chordshift/watch"
	"github.com/spf13/cobra"
)

var watchOpts transposeOptions

func init() {
	watchOpts.render.register(watchCmd)
	watchCmd.Flags().StringVarP(&watchOpts.output, "output", "o", "-", "where to write the sheet on every change")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch file",
	Short: "Re-renders a chord sheet every time it is saved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := watchOpts.render.options(); err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		interval := constants.GetWatchInterval()
		path := args[0]
		return watch.Run(ctx, path, watch.Options{Interval: interval, Quiet: interval}, func() {
			if err := runTranspose(watchOpts, path, cmd.OutOrStdout()); err != nil {
				logging.Error("watch_render_failed", "path", path, "error", err)
				return
			}
			logging.Info("watch_rendered", "path", path, "output", watchOpts.output)
		})
	},
}
