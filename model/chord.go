package model

import (
	"errors"
	"fmt"
	"strings"
)

// PitchClass is a position on the 12-tone chromatic scale, C == 0.
type PitchClass uint8

const NumPitchClasses = 12

type Locale int

const (
	LocaleEnglish Locale = iota
	LocaleLatin
)

var ErrInvalidLocale = errors.New("invalid locale")

func (l Locale) String() string {
	if l == LocaleLatin {
		return "latin"
	}
	return "english"
}

func ParseLocale(s string) (Locale, error) {
	switch strings.ToLower(s) {
	case "", "en", "english":
		return LocaleEnglish, nil
	case "latin", "la":
		return LocaleLatin, nil
	}
	return LocaleEnglish, fmt.Errorf("%w: %q", ErrInvalidLocale, s)
}

// RenderFlags are set once before the first line and never change afterwards.
type RenderFlags struct {
	HideChords     bool
	HideLyrics     bool
	HTML           bool
	Bemol          bool
	RemoveComments bool
	BreakSlash     bool
	Locale         Locale
}

// Shift is one row of the shift diagnostic table.
type Shift struct {
	Name   string `json:"name"`
	Amount int    `json:"shift"`
}
