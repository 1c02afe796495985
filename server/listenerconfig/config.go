// Package listenerconfig holds the configuration knobs the track listener
// exposes: PLI cadence, events channel buffering and the logger
// enable-list. Values are layered default -> YAML file -> environment,
// matching the precedence of the reference SFU's own config loader.
package listenerconfig

import (
	"time"
)

// Config configures a TrackListener's ambient behavior.
type Config struct {
	// PLIInterval is how often a Picture Loss Indication is sent to a
	// publisher for each of its tracks. Zero disables periodic PLI.
	PLIInterval time.Duration `yaml:"pliInterval"`

	// EventsBufferSize sets the capacity of the TrackEvent channel. Zero
	// keeps the default rendezvous (unbuffered) semantics described in the
	// component's concurrency model.
	EventsBufferSize int `yaml:"eventsBufferSize"`

	// Log is the comma-separated, wildcard-capable namespace enable-list,
	// e.g. "peer,pion:*:error".
	Log []string `yaml:"log"`
}

// Default returns the configuration used when no overrides are supplied.
func Default() Config {
	return Config{
		PLIInterval:      3 * time.Second,
		EventsBufferSize: 0,
		Log:              []string{"peer"},
	}
}
