// Package listenercli registers command-line flags for the knobs in
// listenerconfig.Config, for use by a demo or integration-test harness
// binary that wires up a TrackListener against a real PeerSession.
package listenercli

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/peer-calls/sfu-listener/server/listenerconfig"
)

// Bound holds the flag-bound values until Apply copies them onto the
// target Config, after flags.Parse has run.
type Bound struct {
	target *listenerconfig.Config

	pliInterval      time.Duration
	eventsBufferSize int
	log              []string
}

// RegisterFlags adds flags for every listenerconfig.Config field to flags,
// applying their current values in c as defaults. Call flags.Parse and then
// Apply to copy the parsed values back onto c.
func RegisterFlags(flags *pflag.FlagSet, c *listenerconfig.Config) *Bound {
	b := &Bound{target: c}

	flags.DurationVar(&b.pliInterval, "pli-interval", c.PLIInterval,
		"interval between Picture Loss Indication RTCP packets sent to each publisher")
	flags.IntVar(&b.eventsBufferSize, "events-buffer-size", c.EventsBufferSize,
		"capacity of the TrackEvent channel (0 for strict rendezvous)")
	flags.StringSliceVar(&b.log, "log", c.Log,
		"comma-separated, wildcard-capable logger namespace enable-list")

	return b
}

// Apply copies the parsed flag values back onto the Config passed to
// RegisterFlags.
func (b *Bound) Apply() {
	b.target.PLIInterval = b.pliInterval
	b.target.EventsBufferSize = b.eventsBufferSize
	b.target.Log = b.log
}
