package cmd

import (
	"errors"

	"github.com/jsphweid/chordshift/constants"
	"github.com/jsphweid/chordshift/model"
	"github.com/jsphweid/chordshift/render"
	"github.com/jsphweid/chordshift/sheet"
	"github.com/spf13/cobra"
)

// renderFlags are shared by every command that renders a sheet.
type renderFlags struct {
	shift          int
	bemol          bool
	latin          bool
	locale         string
	html           bool
	hideChords     bool
	hideLyrics     bool
	removeComments bool
	breakSlash     bool
	noChorus       bool
	maxWidth       int
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVarP(&f.shift, "transpose", "t", 0, "semitones to shift every chord by, may be negative")
	fs.BoolVarP(&f.bemol, "bemol", "b", false, "spell accidentals as flats")
	fs.BoolVarP(&f.latin, "latin", "l", false, "write Do Re Mi note names, same as --locale latin")
	fs.StringVar(&f.locale, "locale", model.LocaleEnglish.String(), "note names to write: english or latin")
	fs.BoolVarP(&f.html, "html", "H", false, "emit HTML fragments")
	fs.BoolVarP(&f.hideChords, "hide-chords", "C", false, "drop chord lines")
	fs.BoolVarP(&f.hideLyrics, "hide-lyrics", "L", false, "drop lyric lines and pack chords together")
	fs.BoolVarP(&f.removeComments, "remove-comments", "c", false, "drop % comment lines and the blank line after them")
	fs.BoolVarP(&f.breakSlash, "break-slash", "B", false, "break lyric lines at /")
	fs.BoolVar(&f.noChorus, "no-chorus", false, "treat -- Chorus markers as plain text")
	fs.IntVar(&f.maxWidth, "max-width", constants.GetMaxWidth(), "fail on rendered lines wider than this, 0 for no limit")
}

func (f renderFlags) options() (sheet.Options, error) {
	if f.maxWidth < 0 {
		return sheet.Options{}, errors.New("--max-width must not be negative")
	}
	flags := model.RenderFlags{
		HideChords:     f.hideChords,
		HideLyrics:     f.hideLyrics,
		HTML:           f.html,
		Bemol:          f.bemol,
		RemoveComments: f.removeComments,
		BreakSlash:     f.breakSlash,
	}
	locale, err := model.ParseLocale(f.locale)
	if err != nil {
		return sheet.Options{}, err
	}
	if f.latin {
		locale = model.LocaleLatin
	}
	flags.Locale = locale
	return sheet.Options{
		Chorus: !f.noChorus,
		Render: render.Options{
			Shift:    f.shift,
			Flags:    flags,
			MaxWidth: f.maxWidth,
		},
	}, nil
}

func inputArg(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return "-"
}
