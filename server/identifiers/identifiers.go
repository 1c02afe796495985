// Package identifiers holds the typed string identifiers threaded through
// the SFU, instead of passing bare strings between unrelated concerns.
package identifiers

// ClientID is the ID of the remote publisher a TrackListener is attached
// to, as assigned by the signalling layer.
type ClientID string

func (c ClientID) String() string {
	return string(c)
}

// TrackID names a single locally-owned forwarding track by the id/label
// pair it was constructed with.
type TrackID struct {
	ID    string
	Label string
}

func (t TrackID) String() string {
	return t.ID + "/" + t.Label
}
