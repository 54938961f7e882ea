package cmd

import (
	"bufio"
	"fmt"
	"io"

	"github.com/jsphweid/chordshift/constants"
	"github.com/jsphweid/chordshift/file"
	"github.com/jsphweid/chordshift/logging"
	"github.com/jsphweid/chordshift/midi"
	"github.com/jsphweid/chordshift/sheet"
	"github.com/spf13/cobra"
)

type transposeOptions struct {
	render      renderFlags
	output      string
	midi        string
	bpm         float64
	printShifts bool
}

var transposeOpts transposeOptions

func init() {
	transposeOpts.render.register(transposeCmd)
	fs := transposeCmd.Flags()
	fs.StringVarP(&transposeOpts.output, "output", "o", "-", "where to write the sheet")
	fs.StringVar(&transposeOpts.midi, "midi", "", "also write the transposed progression to this MIDI file")
	fs.Float64Var(&transposeOpts.bpm, "bpm", constants.DefaultBPM, "tempo of the MIDI file")
	fs.BoolVarP(&transposeOpts.printShifts, "print-shifts", "s", false, "print the shift to every key from the first chord and exit")
	rootCmd.AddCommand(transposeCmd)
}

var transposeCmd = &cobra.Command{
	Use:   "transpose [file]",
	Short: "Transposes a chord sheet",
	Long: `Transposes a chord sheet read from file, or stdin when no file or "-" is
given, and writes it to stdout or --output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTranspose(transposeOpts, inputArg(args), cmd.OutOrStdout())
	},
}

func runTranspose(opts transposeOptions, input string, stdout io.Writer) error {
	sheetOpts, err := opts.render.options()
	if err != nil {
		return err
	}

	in, err := file.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()

	sh := sheet.New(sheetOpts)
	if opts.printShifts {
		shifts, err := sh.Shifts(in)
		if err != nil {
			return err
		}
		return sheet.WriteShifts(stdout, shifts)
	}

	out, err := file.Create(opts.output, stdout)
	if err != nil {
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	processErr := sh.Process(in, w)
	if err := w.Flush(); err != nil && processErr == nil {
		processErr = fmt.Errorf("writing output: %w", err)
	}
	if processErr != nil {
		return processErr
	}

	if opts.midi != "" {
		if err := writeMidi(opts.midi, sh, opts.bpm, stdout); err != nil {
			return err
		}
	}
	return out.Close()
}

func writeMidi(path string, sh *sheet.Sheet, bpm float64, stdout io.Writer) error {
	f, err := file.Create(path, stdout)
	if err != nil {
		return err
	}
	defer f.Close()

	chords := sh.Session().Progression()
	if err := midi.Write(f, chords, bpm); err != nil {
		return err
	}
	logging.Info("midi_written", "path", path, "chords", len(chords))
	return f.Close()
}
