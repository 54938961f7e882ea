// Package midi exports a transposed chord progression as a Standard MIDI File
// so the new key can be auditioned.
package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/chordshift/constants"
	"github.com/jsphweid/chordshift/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	ticksPerQuarter = 960
	// C3; every root lands in the octave above it
	baseNote = 48
	fifth    = 7
	velocity = 100
)

// Progression builds a single track SMF where every chord sounds as root and
// fifth for constants.BeatsPerChord beats.
func Progression(chords []model.PitchClass, bpm float64) (*smf.SMF, error) {
	if bpm <= 0 {
		return nil, fmt.Errorf("bpm must be positive, got %v", bpm)
	}
	clock := smf.MetricTicks(ticksPerQuarter)

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(bpm))
	for _, pc := range chords {
		root := uint8(baseNote) + uint8(pc%model.NumPitchClasses)
		tr.Add(0, midi.NoteOn(0, root, velocity))
		tr.Add(0, midi.NoteOn(0, root+fifth, velocity))
		tr.Add(clock.Ticks4th()*constants.BeatsPerChord, midi.NoteOff(0, root))
		tr.Add(0, midi.NoteOff(0, root+fifth))
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = clock
	s.Add(tr)
	return s, nil
}

func Write(w io.Writer, chords []model.PitchClass, bpm float64) error {
	s, err := Progression(chords, bpm)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("writing midi: %w", err)
	}
	return nil
}

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, fmt.Errorf("Error reading midi file... %w", err)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fmt.Errorf("Error parsing midi file... %w", err)
	}
	return res, nil
}

// Roots recovers the chord roots of a progression written by Progression:
// the first of every pair of note-on events.
func Roots(s *smf.SMF) []model.PitchClass {
	var res []model.PitchClass
	for _, events := range s.Tracks {
		n := 0
		for _, event := range events {
			var channel, key, vel uint8
			if !event.Message.GetNoteOn(&channel, &key, &vel) {
				continue
			}
			if n%2 == 0 {
				res = append(res, model.PitchClass((key-baseNote)%model.NumPitchClasses))
			}
			n++
		}
	}
	return res
}
