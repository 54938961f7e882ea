// Package render turns chord sheet lines into their transposed form.
//
// A Session holds everything that carries over from one line to the next: the
// alignment queue filled by a chord line and drained by the lyric line below
// it, the key (first chord seen) and the skip-next-blank flag armed by
// removed comments. Use one Session per document.
package render

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jsphweid/chordshift/align"
	"github.com/jsphweid/chordshift/chord"
	"github.com/jsphweid/chordshift/logging"
	"github.com/jsphweid/chordshift/model"
	"github.com/jsphweid/chordshift/util"
)

const CommentMarker = '%'

type Options struct {
	// Shift in semitones, any sign or size
	Shift int
	Flags model.RenderFlags
	// MaxWidth caps the rendered width of a line in runes; 0 means no limit
	MaxWidth int
	Logger   *slog.Logger
}

type Session struct {
	opts       Options
	shift      int
	table      *chord.Table
	classifier *chord.Classifier
	queue      *align.Queue
	log        *slog.Logger

	key         model.PitchClass
	hasKey      bool
	progression []model.PitchClass
	skipBlank   bool
	lineNo      int
}

func NewSession(opts Options) *Session {
	table := chord.NewTable(opts.Flags.Locale)
	logger := opts.Logger
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Session{
		opts:       opts,
		shift:      util.Mod(opts.Shift, model.NumPitchClasses),
		table:      table,
		classifier: chord.NewClassifier(table),
		queue:      align.NewQueue(),
		log:        logger,
	}
}

func (s *Session) Table() *chord.Table {
	return s.table
}

func (s *Session) Flags() model.RenderFlags {
	return s.opts.Flags
}

// Key is the pitch class of the first chord of the document, before shifting.
func (s *Session) Key() (model.PitchClass, bool) {
	return s.key, s.hasKey
}

// Shifts is the diagnostic table relative to Key.
func (s *Session) Shifts() ([]model.Shift, bool) {
	if !s.hasKey {
		return nil, false
	}
	return chord.Shifts(s.table, s.key), true
}

// Progression lists every transposed chord root seen so far, in order.
func (s *Session) Progression() []model.PitchClass {
	return s.progression
}

// SkipNextBlank suppresses the next line if it is blank.
func (s *Session) SkipNextBlank() {
	s.skipBlank = true
}

// Reset marks a section boundary: pending alignment is dropped.
func (s *Session) Reset() {
	s.discard("reset")
}

// Render renders one input line. ok is false when the line produces no output
// at all (hidden chord or lyric lines, removed comments, skipped blanks).
// Lines that are not valid UTF-8 are rejected with *InvalidEncodingError.
func (s *Session) Render(line string) (out string, ok bool, err error) {
	s.lineNo++
	if !utf8.ValidString(line) {
		s.discard("invalid encoding")
		return "", false, &InvalidEncodingError{Line: s.lineNo}
	}
	out, ok = s.render(strings.TrimRight(line, "\r\n"))
	if !ok {
		return "", false, nil
	}
	if s.opts.MaxWidth > 0 {
		if w := utf8.RuneCountInString(out); w > s.opts.MaxWidth {
			return "", false, &LineTooLongError{Line: s.lineNo, Width: w, Max: s.opts.MaxWidth}
		}
	}
	return out, true, nil
}

func (s *Session) render(line string) (string, bool) {
	if strings.TrimSpace(line) == "" {
		s.discard("blank line")
		if s.skipBlank {
			s.skipBlank = false
			return "", false
		}
		return s.wrap("", line), true
	}
	s.skipBlank = false

	body := []rune(line)
	var prefix string
	if s.opts.Flags.HTML {
		prefix, body = splitNumbering(body)
	}

	if at := firstNonSpace(body); at < len(body) && body[at] == CommentMarker {
		if s.opts.Flags.RemoveComments {
			s.skipBlank = true
			return "", false
		}
		return s.wrap(prefix, string(body[:at])+s.comment(body[at:])), true
	}

	tokens, comment := s.scan(body)
	if tokens == nil {
		return s.renderLyric(prefix, body)
	}
	return s.renderChords(prefix, body, tokens, comment)
}

// scan classifies every token of body. It returns nil if any token is not a
// chord or special marker, and the index of a trailing comment or -1.
func (s *Session) scan(body []rune) ([]chord.Token, int) {
	var tokens []chord.Token
	for i := 0; i < len(body); {
		switch body[i] {
		case ' ', '/':
			i++
			continue
		case CommentMarker:
			return tokens, i
		}
		tok, ok := s.classifier.Classify(body, i)
		if !ok {
			return nil, -1
		}
		tokens = append(tokens, tok)
		i += tok.Width()
	}
	return tokens, -1
}

func (s *Session) renderChords(prefix string, body []rune, tokens []chord.Token, comment int) (string, bool) {
	s.discard("chord line follows chord line")
	for _, tok := range tokens {
		if tok.Kind == chord.KindChord {
			s.noteChord(tok.Pitch)
		}
	}

	end := len(body)
	if comment >= 0 {
		end = comment
	}

	var text string
	switch {
	case s.opts.Flags.HideChords:
	case s.opts.Flags.HideLyrics:
		text = s.compactChords(body, tokens)
	default:
		text = s.alignedChords(body, tokens, end)
	}
	if s.opts.Flags.HTML && text != "" {
		lead := firstNonSpace([]rune(text))
		text = text[:lead] + "<b>" + text[lead:] + "</b>"
	}

	if comment >= 0 && !s.opts.Flags.RemoveComments {
		text += s.comment(body[comment:])
	}
	if s.opts.Flags.HideChords && text == "" {
		return "", false
	}
	return s.wrap(prefix, text), true
}

// alignedChords rewrites every chord in place. A chord that grows eats into
// the spaces after it, always leaving one; what it cannot absorb is queued so
// the next lyric line is padded at the same column. A chord that shrinks
// leaves slack which is given back at the next run of spaces.
func (s *Session) alignedChords(body []rune, tokens []chord.Token, end int) string {
	out := make([]rune, 0, len(body)+len(tokens))
	col, slack, k := 0, 0, 0

	for i := 0; i < end; {
		r := body[i]
		if r == ' ' || r == '/' {
			if r == ' ' && slack > 0 {
				if i+spaceRun(body, i, len(body)) < len(body) {
					out = appendRepeat(out, ' ', slack)
					col += slack
				}
				slack = 0
			}
			out = append(out, r)
			col++
			i++
			continue
		}

		tok := tokens[k]
		k++
		i += tok.Width()
		if tok.Kind == chord.KindSpecial {
			out = append(out, []rune(tok.Text())...)
			col += tok.Width()
			continue
		}

		name := []rune(s.table.Spell(chord.Transpose(tok.Pitch, s.shift), s.opts.Flags.Bemol))
		suffix := []rune(s.suffix(tok.Suffix))
		out = append(out, name...)
		out = append(out, suffix...)

		// lyric column right after the original chord
		start := col + slack + tok.Width()
		col += len(name) + len(suffix)

		diff := len(name) - utf8.RuneCountInString(tok.Core)
		if diff <= 0 {
			slack -= diff
			continue
		}
		used := util.Min(slack, diff)
		slack -= used
		diff -= used
		if diff == 0 {
			continue
		}

		run := spaceRun(body, i, end)
		if i+run >= end {
			continue
		}
		absorb := 0
		if run > 1 {
			absorb = util.Min(run-1, diff)
		}
		i += absorb
		s.queue.Push(start+absorb, diff-absorb)
	}
	return string(out)
}

// compactChords drops the original spacing: tokens are joined by a single
// space, or a slash where the gap contained one.
func (s *Session) compactChords(body []rune, tokens []chord.Token) string {
	var b strings.Builder
	for k, tok := range tokens {
		if k > 0 {
			prevEnd := tokens[k-1].Column + tokens[k-1].Width()
			if strings.ContainsRune(string(body[prevEnd:tok.Column]), '/') {
				b.WriteByte('/')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(s.tokenText(tok))
	}
	return b.String()
}

func (s *Session) renderLyric(prefix string, body []rune) (string, bool) {
	defer s.discard("lyric line shorter than its chords")
	if s.opts.Flags.HideLyrics {
		return "", false
	}

	out := make([]rune, 0, len(body)+int(s.queue.Pending()))
	col := 0
	var prev rune
	for i := 0; i < len(body); i++ {
		out, col = s.queue.Fill(out, col, prev)
		r := body[i]
		if r == '<' && s.opts.Flags.HTML {
			out = append(out, body[i:]...)
			break
		}
		if r == '/' && s.opts.Flags.BreakSlash {
			out = append(out, '\n')
			col, prev = 0, 0
			if i+1 < len(body) && body[i+1] == ' ' {
				i++
			}
			continue
		}
		out = append(out, r)
		col++
		prev = r
	}
	return s.wrap(prefix, string(out)), true
}

func (s *Session) tokenText(tok chord.Token) string {
	if tok.Kind == chord.KindSpecial {
		return tok.Text()
	}
	return s.table.Spell(chord.Transpose(tok.Pitch, s.shift), s.opts.Flags.Bemol) + s.suffix(tok.Suffix)
}

// suffix writes minor chords the Latin way, "La-" rather than "Lam".
func (s *Session) suffix(sfx string) string {
	if s.table.Locale() == model.LocaleLatin && strings.HasPrefix(sfx, "m") && !strings.HasPrefix(sfx, "maj") {
		return "-" + sfx[1:]
	}
	return sfx
}

func (s *Session) comment(text []rune) string {
	if s.opts.Flags.HTML {
		return "<b class='comment'>" + string(text) + "</b>"
	}
	return string(text)
}

func (s *Session) wrap(prefix, text string) string {
	if !s.opts.Flags.HTML {
		return text
	}
	if prefix != "" {
		prefix = "<b>" + prefix + "</b>"
	} else if text == "" {
		text = " "
	}
	return "<div>" + prefix + text + "</div>"
}

func (s *Session) noteChord(pc model.PitchClass) {
	if !s.hasKey {
		s.key = pc
		s.hasKey = true
	}
	s.progression = append(s.progression, chord.Transpose(pc, s.shift))
}

func (s *Session) discard(reason string) {
	if n := s.queue.Reset(); n > 0 {
		s.log.Debug("alignment_discarded", "line", s.lineNo, "adjustments", n, "reason", reason)
	}
}

// splitNumbering splits a leading "12." track number off body.
func splitNumbering(body []rune) (string, []rune) {
	i := 0
	for i < len(body) && unicode.IsDigit(body[i]) {
		i++
	}
	if i == 0 || i >= len(body) || body[i] != '.' {
		return "", body
	}
	return string(body[:i+1]), body[i+1:]
}

func firstNonSpace(r []rune) int {
	i := 0
	for i < len(r) && r[i] == ' ' {
		i++
	}
	return i
}

// spaceRun counts the spaces starting at body[from], stopping at end.
func spaceRun(body []rune, from, end int) int {
	n := 0
	for from+n < end && body[from+n] == ' ' {
		n++
	}
	return n
}

func appendRepeat(dst []rune, r rune, n int) []rune {
	for i := 0; i < n; i++ {
		dst = append(dst, r)
	}
	return dst
}
