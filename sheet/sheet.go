// Package sheet drives a render.Session over a whole chord sheet read from a
// stream.
package sheet

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/chordshift/constants"
	"github.com/jsphweid/chordshift/model"
	"github.com/jsphweid/chordshift/render"
)

var ErrNoChords = errors.New("no chord line found")

type Options struct {
	Render render.Options
	// Chorus enables the "-- Chorus start/end" recording and "-- Chorus" replay
	// markers.
	Chorus bool
}

type Sheet struct {
	opts      Options
	session   *render.Session
	recording bool
	chorus    bytes.Buffer
}

func New(opts Options) *Sheet {
	return &Sheet{
		opts:    opts,
		session: render.NewSession(opts.Render),
	}
}

func (sh *Sheet) Session() *render.Session {
	return sh.session
}

// Process renders every line of r to w. It stops at the first error, which
// is either an I/O error or a *render.LineTooLongError.
func (sh *Sheet) Process(r io.Reader, w io.Writer) error {
	return eachLine(r, func(line string) (bool, error) {
		return true, sh.processLine(line, w)
	})
}

func (sh *Sheet) processLine(line string, w io.Writer) error {
	if sh.opts.Chorus {
		if handled, err := sh.chorusMarker(line, w); handled || err != nil {
			return err
		}
	}

	out, ok, err := sh.session.Render(line)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if !sh.session.Flags().HTML {
		out += "\n"
	}
	if sh.recording {
		sh.chorus.WriteString(out)
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// chorusMarker handles the chorus marker lines, which produce no output of
// their own, and reports whether line was one.
func (sh *Sheet) chorusMarker(line string, w io.Writer) (bool, error) {
	switch strings.TrimSpace(line) {
	case constants.ChorusStart:
		sh.chorus.Reset()
		sh.recording = true
	case constants.ChorusEnd:
		sh.recording = false
	case constants.ChorusRepeat:
		if _, err := w.Write(sh.chorus.Bytes()); err != nil {
			return true, fmt.Errorf("replaying chorus: %w", err)
		}
	default:
		return false, nil
	}
	sh.session.SkipNextBlank()
	return true, nil
}

// Shifts reads r until the first chord line and returns the shift diagnostic
// table relative to that chord. Nothing is written.
func (sh *Sheet) Shifts(r io.Reader) ([]model.Shift, error) {
	err := eachLine(r, func(line string) (bool, error) {
		if _, _, err := sh.session.Render(line); err != nil {
			return false, err
		}
		_, found := sh.session.Key()
		return !found, nil
	})
	if err != nil {
		return nil, err
	}
	shifts, ok := sh.session.Shifts()
	if !ok {
		return nil, ErrNoChords
	}
	return shifts, nil
}

func WriteShifts(w io.Writer, shifts []model.Shift) error {
	for _, s := range shifts {
		if _, err := fmt.Fprintf(w, "%s %d\n", s.Name, s.Amount); err != nil {
			return err
		}
	}
	return nil
}

// eachLine calls f for every line of r, without its terminator. A last line
// lacking a newline is still passed. f returns false to stop early.
func eachLine(r io.Reader, f func(line string) (bool, error)) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("reading input: %w", err)
		}
		if len(line) > 0 || err == nil {
			more, ferr := f(strings.TrimSuffix(line, "\n"))
			if ferr != nil {
				return ferr
			}
			if !more {
				return nil
			}
		}
		if err == io.EOF {
			return nil
		}
	}
}
