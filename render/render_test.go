package render

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/jsphweid/chordshift/model"
	"github.com/stretchr/testify/assert"
)

// renderAll feeds lines through one session and collects the emitted ones.
func renderAll(t *testing.T, s *Session, lines ...string) []string {
	t.Helper()
	var res []string
	for _, l := range lines {
		out, ok, err := s.Render(l)
		assert.NoError(t, err)
		if ok {
			res = append(res, out)
		}
	}
	return res
}

func TestRendersSingleLines(t *testing.T) {
	latin := model.RenderFlags{Locale: model.LocaleLatin}
	cases := []struct {
		name  string
		line  string
		shift int
		flags model.RenderFlags
		want  string
	}{
		{"equal width", "C       G", 2, model.RenderFlags{}, "D       A"},
		{"growth absorbed by spaces", "C       G", 1, model.RenderFlags{}, "C#      G#"},
		{"growth without room", "C G", 1, model.RenderFlags{}, "C# G#"},
		{"shrink keeps columns", "Eb G", -1, model.RenderFlags{}, "D  F#"},
		{"special tokens", "| C | G |", 2, model.RenderFlags{}, "| D | A |"},
		{"special tokens with growth", "| C | G |", 1, model.RenderFlags{}, "| C# | G# |"},
		{"slash chord", "C/G", 2, model.RenderFlags{}, "D/A"},
		{"modifiers kept", "Cmaj7  Gsus4  Dadd9", 2, model.RenderFlags{}, "Dmaj7  Asus4  Eadd9"},
		{"octave and more", "Am", -13, model.RenderFlags{}, "G#m"},
		{"bemol", "C  A#", 1, model.RenderFlags{Bemol: true}, "Db B"},
		{"latin minor", "Am", 0, latin, "La-"},
		{"latin major seventh", "Amaj7", 0, latin, "Lamaj7"},
		{"latin input", "Do  Sol", 2, latin, "Re  La"},
		{"latin growth", "C G", 0, latin, "Do Sol"},
		{"words stay words", "Hello world", 5, model.RenderFlags{}, "Hello world"},
		{"comment after chords", "C  % play softly", 2, model.RenderFlags{}, "D  % play softly"},
		{"comment line", "  % intro", 2, model.RenderFlags{}, "  % intro"},
		{"break on slash", "one/ two", 0, model.RenderFlags{BreakSlash: true}, "one\ntwo"},
		{"slash kept without flag", "one/ two", 0, model.RenderFlags{}, "one/ two"},
		{"trailing newline", "C\n", 2, model.RenderFlags{}, "D"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSession(Options{Shift: tc.shift, Flags: tc.flags})
			out, ok, err := s.Render(tc.line)
			assert := assert.New(t)
			assert.NoError(err)
			assert.True(ok)
			assert.Equal(tc.want, out)
		})
	}
}

func TestAbsorbedGrowthLeavesLyricsAlone(t *testing.T) {
	s := NewSession(Options{Shift: 1})
	out := renderAll(t, s, "C       G", "Hello world")

	assert := assert.New(t)
	assert.Equal([]string{"C#      G#", "Hello world"}, out)
	assert.Equal(0, s.queue.Len())
}

func TestLyricLineIsPaddedUnderGrownChord(t *testing.T) {
	s := NewSession(Options{Shift: 1})
	out := renderAll(t, s, "C G", "Hello world")
	assert.Equal(t, []string{"C# G#", "H-ello world"}, out)
}

func TestFillerMatchesUnabsorbedGrowth(t *testing.T) {
	s := NewSession(Options{Shift: 1})

	chords, _, _ := s.Render("Am G C")
	assert.Equal(t, "A#m G# C#", chords)
	assert.Equal(t, uint64(2), s.queue.Pending())

	lyric := "Ah the glory"
	out, ok, err := s.Render(lyric)
	assert := assert.New(t)
	assert.NoError(err)
	assert.True(ok)
	assert.Equal("Ah- t-he glory", out)
	assert.Equal(2, utf8.RuneCountInString(out)-utf8.RuneCountInString(lyric))
	assert.Equal(0, s.queue.Len())
}

func TestFillerIsSpaceBetweenWords(t *testing.T) {
	s := NewSession(Options{Shift: 1})
	out := renderAll(t, s, "G  C D", "Go   on")
	// C# cannot absorb its growth: one filler at column 4, inside a gap
	assert.Equal(t, []string{"G# C# D#", "Go    on"}, out)
}

func TestQueueDroppedBetweenChordLines(t *testing.T) {
	assert := assert.New(t)
	s := NewSession(Options{Shift: 1})

	renderAll(t, s, "C G")
	assert.Equal(1, s.queue.Len())
	renderAll(t, s, "C G")
	assert.Equal(1, s.queue.Len())
	renderAll(t, s, "")
	assert.Equal(0, s.queue.Len())

	out := renderAll(t, s, "Hello world")
	assert.Equal([]string{"Hello world"}, out)
}

func TestSpecialTokensAddNoPadding(t *testing.T) {
	s := NewSession(Options{Shift: 3})
	renderAll(t, s, "| : - |")
	assert.Equal(t, 0, s.queue.Len())
}

func TestHTML(t *testing.T) {
	flags := model.RenderFlags{HTML: true}
	cases := []struct {
		name string
		line string
		want string
	}{
		{"numbered lyric", "1. Amazing grace", "<div><b>1.</b> Amazing grace</div>"},
		{"chords bolded", "  C  G", "<div>  <b>C  G</b></div>"},
		{"blank line", "", "<div> </div>"},
		{"number only", "12.", "<div><b>12.</b></div>"},
		{"digit without dot", "7 years", "<div>7 years</div>"},
		{"comment", "% intro", "<div><b class='comment'>% intro</b></div>"},
		{"embedded markup", "see <i>here</i>", "<div>see <i>here</i></div>"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSession(Options{Flags: flags})
			out, ok, err := s.Render(tc.line)
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestHideChords(t *testing.T) {
	s := NewSession(Options{Shift: 1, Flags: model.RenderFlags{HideChords: true}})
	out := renderAll(t, s, "C G", "Hello world", "", "Am  % soft")

	assert := assert.New(t)
	assert.Equal([]string{"Hello world", "", "% soft"}, out)
	key, ok := s.Key()
	assert.True(ok)
	assert.Equal(model.PitchClass(0), key)
}

func TestHideLyrics(t *testing.T) {
	s := NewSession(Options{Shift: 2, Flags: model.RenderFlags{HideLyrics: true}})
	out := renderAll(t, s, "C    G/B   Am", "Hello there", "", "|  F  |")

	assert.Equal(t, []string{"D A/C# Bm", "", "| G |"}, out)
}

func TestRemoveComments(t *testing.T) {
	s := NewSession(Options{Flags: model.RenderFlags{RemoveComments: true}})
	out := renderAll(t, s, "% verse one", "", "", "C  % soft", "words")

	assert.Equal(t, []string{"", "C  ", "words"}, out)
}

func TestSkipBlankOnlyAppliesToNextLine(t *testing.T) {
	s := NewSession(Options{Flags: model.RenderFlags{RemoveComments: true}})
	out := renderAll(t, s, "% note", "words", "")

	assert.Equal(t, []string{"words", ""}, out)
}

func TestKeyIsFirstChordBeforeShift(t *testing.T) {
	s := NewSession(Options{Shift: 3})
	renderAll(t, s, "Hello", "G  C", "Am", "Amazing grace")

	assert := assert.New(t)
	key, ok := s.Key()
	assert.True(ok)
	assert.Equal(model.PitchClass(7), key)
	assert.Equal([]model.PitchClass{10, 3, 0}, s.Progression())

	shifts, ok := s.Shifts()
	assert.True(ok)
	assert.Equal(model.Shift{Name: "G", Amount: 0}, shifts[7])
	assert.Equal(model.Shift{Name: "C", Amount: 5}, shifts[0])
}

func TestNoKeyWithoutChords(t *testing.T) {
	s := NewSession(Options{})
	renderAll(t, s, "just words")
	_, ok := s.Key()
	assert.False(t, ok)
	_, ok = s.Shifts()
	assert.False(t, ok)
}

func TestLineTooLong(t *testing.T) {
	s := NewSession(Options{MaxWidth: 5})
	_, ok, err := s.Render("Hello world")

	assert := assert.New(t)
	assert.False(ok)
	assert.True(errors.Is(err, ErrLineTooLong))

	var tooLong *LineTooLongError
	assert.True(errors.As(err, &tooLong))
	assert.Equal(LineTooLongError{Line: 1, Width: 11, Max: 5}, *tooLong)
}

func TestRenderDoesNotReclassifyOnFailure(t *testing.T) {
	// "Amazing" looks like a chord, "grace" does not: nothing may be queued
	s := NewSession(Options{Shift: 1})
	renderAll(t, s, "C G")
	out := renderAll(t, s, "Amazing grace")

	assert := assert.New(t)
	assert.Equal([]string{"A-mazing grace"}, out)
	_, ok := s.Key()
	assert.True(ok)
	assert.Len(s.Progression(), 2)
}

func TestTrailingCommentQueuesNothing(t *testing.T) {
	s := NewSession(Options{Shift: 1})
	out := renderAll(t, s, "C % soft", "Hello world")

	assert := assert.New(t)
	assert.Equal([]string{"C# % soft", "Hello world"}, out)
	assert.Equal(0, s.queue.Len())
}

func TestWhitespaceLineIsCopied(t *testing.T) {
	assert := assert.New(t)

	out := renderAll(t, NewSession(Options{Shift: 1}), "C G", "   ", "Hello world")
	assert.Equal([]string{"C# G#", "   ", "Hello world"}, out)

	out = renderAll(t, NewSession(Options{Flags: model.RenderFlags{HTML: true}}), "  ")
	assert.Equal([]string{"<div>  </div>"}, out)
}

func TestRemovedCommentStillSkipsWhitespaceLine(t *testing.T) {
	s := NewSession(Options{Flags: model.RenderFlags{RemoveComments: true}})
	out := renderAll(t, s, "% intro", "  ", "words")
	assert.Equal(t, []string{"words"}, out)
}

func TestInvalidUTF8IsRejected(t *testing.T) {
	s := NewSession(Options{})
	_, ok, err := s.Render("caf\xe9 au lait")

	assert := assert.New(t)
	assert.False(ok)
	assert.True(errors.Is(err, ErrInvalidEncoding))

	var bad *InvalidEncodingError
	assert.True(errors.As(err, &bad))
	assert.Equal(1, bad.Line)
}
