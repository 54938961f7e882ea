package constants

import (
	"os"
	"strconv"
	"time"
)

// Rendered lines wider than this many runes abort processing.
const DefaultMaxWidth = 8192

const DefaultPort = 8080

const DefaultWatchInterval = 250 * time.Millisecond

// Chorus markers, matched against the whole trimmed line.
const (
	ChorusStart  = "-- Chorus start"
	ChorusEnd    = "-- Chorus end"
	ChorusRepeat = "-- Chorus"
)

// Tempo of exported MIDI progressions; each chord lasts two beats.
const (
	DefaultBPM    = 90.0
	BeatsPerChord = 2
)

func GetMaxWidth() int {
	return envInt("CHORDSHIFT_MAX_WIDTH", DefaultMaxWidth)
}

func GetPort() int {
	return envInt("CHORDSHIFT_PORT", DefaultPort)
}

func GetLogLevel() string {
	return envStr("CHORDSHIFT_LOG_LEVEL", "info")
}

func GetLogFormat() string {
	return envStr("CHORDSHIFT_LOG_FORMAT", "text")
}

func GetWatchInterval() time.Duration {
	if v := os.Getenv("CHORDSHIFT_WATCH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return DefaultWatchInterval
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
