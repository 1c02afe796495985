package server

import (
	"github.com/peer-calls/sfu-listener/server/identifiers"
)

// TrackEventType distinguishes the two lifecycle announcements a
// TrackListener makes on its events channel.
type TrackEventType uint32

const (
	// TrackEventTypeAdd announces that a new local forwarding track has
	// been created and is ready to be subscribed to. It is emitted before
	// the track's forwarding worker starts.
	TrackEventTypeAdd TrackEventType = iota + 1
	// TrackEventTypeRemove announces that a previously-added local
	// forwarding track has stopped and should be unsubscribed.
	TrackEventTypeRemove
)

func (t TrackEventType) String() string {
	switch t {
	case TrackEventTypeAdd:
		return "add"
	case TrackEventTypeRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// TrackEvent is delivered on TrackListener.Events() whenever a local
// forwarding track begins or ends its life.
type TrackEvent struct {
	ClientID identifiers.ClientID
	Track    Track
	Type     TrackEventType
}
