package chord

import (
	"sort"
	"strings"

	"github.com/jsphweid/chordshift/model"
	"github.com/jsphweid/chordshift/util"
)

// spelling holds the canonical name of a pitch class and, for accidentals,
// its enharmonic flat name.
type spelling struct {
	sharp string
	flat  string
}

var chromaticEnglish = [model.NumPitchClasses]spelling{
	{"C", ""},
	{"C#", "Db"},
	{"D", ""},
	{"D#", "Eb"},
	{"E", ""},
	{"F", ""},
	{"F#", "Gb"},
	{"G", ""},
	{"G#", "Ab"},
	{"A", ""},
	{"A#", "Bb"},
	{"B", ""},
}

var chromaticLatin = [model.NumPitchClasses]spelling{
	{"Do", ""},
	{"Do#", "Reb"},
	{"Re", ""},
	{"Re#", "Mib"},
	{"Mi", ""},
	{"Fa", ""},
	{"Fa#", "Solb"},
	{"Sol", ""},
	{"Sol#", "Lab"},
	{"La", ""},
	{"La#", "Sib"},
	{"Si", ""},
}

// Table maps chord roots to pitch classes and back. English names are always
// understood on input; the locale decides how names are spelled on output.
type Table struct {
	locale   model.Locale
	names    *[model.NumPitchClasses]spelling
	index    map[string]model.PitchClass
	naturals []string
}

func NewTable(locale model.Locale) *Table {
	t := &Table{
		locale: locale,
		names:  &chromaticEnglish,
		index:  make(map[string]model.PitchClass),
	}
	t.add(&chromaticEnglish)
	if locale == model.LocaleLatin {
		t.names = &chromaticLatin
		t.add(&chromaticLatin)
	}
	return t
}

func (t *Table) add(names *[model.NumPitchClasses]spelling) {
	for i, s := range names {
		pc := model.PitchClass(i)
		t.index[s.sharp] = pc
		if s.flat != "" {
			t.index[s.flat] = pc
		} else {
			t.naturals = append(t.naturals, s.sharp)
		}
	}
}

func (t *Table) Locale() model.Locale {
	return t.locale
}

func (t *Table) Resolve(name string) (model.PitchClass, bool) {
	pc, ok := t.index[name]
	return pc, ok
}

// Spell returns the flat name when preferFlat is set and the canonical name
// carries a sharp, otherwise the canonical name.
func (t *Table) Spell(pc model.PitchClass, preferFlat bool) string {
	s := t.names[pc%model.NumPitchClasses]
	if preferFlat && s.flat != "" && strings.Contains(s.sharp, "#") {
		return s.flat
	}
	return s.sharp
}

// Name is the canonical (sharp) spelling.
func (t *Table) Name(pc model.PitchClass) string {
	return t.Spell(pc, false)
}

// naturalsAt returns the lengths in runes of every natural note name that
// starts at line[at], longest first.
func (t *Table) naturalsAt(line []rune, at int) []int {
	var lengths []int
	for _, n := range t.naturals {
		r := []rune(n)
		if at+len(r) > len(line) || string(line[at:at+len(r)]) != n {
			continue
		}
		lengths = append(lengths, len(r))
	}
	sort.Sort(sort.Reverse(sort.IntSlice(lengths)))
	return lengths
}

// Transpose shifts pc by shift semitones; any shift, negative or beyond an
// octave, is reduced modulo 12 first.
func Transpose(pc model.PitchClass, shift int) model.PitchClass {
	return model.PitchClass(util.Mod(int(pc)+util.Mod(shift, model.NumPitchClasses), model.NumPitchClasses))
}

// Shifts lists, for every pitch class, how many semitones it lies above key.
func Shifts(t *Table, key model.PitchClass) []model.Shift {
	res := make([]model.Shift, 0, model.NumPitchClasses)
	for i := 0; i < model.NumPitchClasses; i++ {
		res = append(res, model.Shift{
			Name:   t.Name(model.PitchClass(i)),
			Amount: util.Mod(i-int(key), model.NumPitchClasses),
		})
	}
	return res
}
