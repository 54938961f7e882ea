package chord

import (
	"strings"
	"unicode"

	"github.com/jsphweid/chordshift/model"
)

type Kind int

const (
	KindChord Kind = iota
	KindSpecial
)

// Structural markers (bar, repeat, sustain) that sit in chord slots but are
// never transposed.
var specialTokens = map[rune]bool{
	'|': true,
	':': true,
	'-': true,
}

// ModifierPrefixes are the chord suffixes accepted after a root besides a
// digit or one of the terminators.
var ModifierPrefixes = []string{"sus", "add", "maj", "dim"}

// terminators may directly follow a root: end of token, slash chord or minor.
var terminators = map[rune]bool{
	' ':  true,
	'\n': true,
	'/':  true,
	'm':  true,
}

func IsSpecial(r rune) bool {
	return specialTokens[r]
}

// Token is one chord or special marker found on a chord line.
type Token struct {
	Kind   Kind
	Column int
	// Core is the root (e.g. "Eb"); for special tokens the whole text
	Core   string
	Suffix string
	Pitch  model.PitchClass
}

func (t Token) Text() string {
	return t.Core + t.Suffix
}

// Width is the token's length in runes.
func (t Token) Width() int {
	return len([]rune(t.Core)) + len([]rune(t.Suffix))
}

type Classifier struct {
	table *Table
}

func NewClassifier(t *Table) *Classifier {
	return &Classifier{table: t}
}

// Classify inspects the token starting at line[at]. It reports false when the
// token is not a chord, in which case the whole line should be read as lyrics.
// line is never modified.
func (c *Classifier) Classify(line []rune, at int) (Token, bool) {
	if at >= len(line) {
		return Token{}, false
	}

	if IsSpecial(line[at]) {
		end := tokenEnd(line, at)
		return Token{
			Kind:   KindSpecial,
			Column: at,
			Core:   string(line[at:end]),
		}, true
	}

	naturals := c.table.naturalsAt(line, at)
	if len(naturals) == 0 {
		// not a note name, but the lookup below settles it
		naturals = []int{1}
	}
	for _, n := range naturals {
		if tok, ok := c.classifyRoot(line, at, at+n); ok {
			return tok, true
		}
	}
	return Token{}, false
}

// classifyRoot tries the root ending at eoc, extended by an accidental.
func (c *Classifier) classifyRoot(line []rune, at, eoc int) (Token, bool) {
	if eoc < len(line) && (line[eoc] == '#' || line[eoc] == 'b') {
		eoc++
	}
	if !c.acceptsSuffix(line, eoc) {
		return Token{}, false
	}

	core := string(line[at:eoc])
	pc, ok := c.table.Resolve(core)
	if !ok {
		return Token{}, false
	}

	return Token{
		Kind:   KindChord,
		Column: at,
		Core:   core,
		Suffix: string(line[eoc:tokenEnd(line, eoc)]),
		Pitch:  pc,
	}, true
}

func (c *Classifier) acceptsSuffix(line []rune, eoc int) bool {
	if eoc == len(line) {
		return true
	}
	r := line[eoc]
	if terminators[r] || unicode.IsDigit(r) {
		return true
	}
	if r == '-' && c.table.Locale() == model.LocaleLatin {
		return true
	}
	rest := string(line[eoc:])
	for _, p := range ModifierPrefixes {
		if strings.HasPrefix(rest, p) {
			return true
		}
	}
	return false
}

// tokenEnd returns the index of the next space or slash at or after from, or
// len(line).
func tokenEnd(line []rune, from int) int {
	for i := from; i < len(line); i++ {
		if line[i] == ' ' || line[i] == '/' {
			return i
		}
	}
	return len(line)
}
