package server

import "errors"

// Sentinel errors surfaced by TrackListener's contract operations. Callers
// should compare against these with errors.Is; the listener remains fully
// operational after any of them.
var (
	// ErrAttachFailed is returned by AddTrack when the underlying session
	// refuses to attach the track.
	ErrAttachFailed = errors.New("sfu-listener: failed to attach track to session")

	// ErrDetachFailed is returned by RemoveTrack when the underlying
	// session refuses to detach a previously-attached track.
	ErrDetachFailed = errors.New("sfu-listener: failed to detach track from session")

	// ErrUnknownTrack is returned by RemoveTrack when no sender is recorded
	// for the given track.
	ErrUnknownTrack = errors.New("sfu-listener: no sender recorded for track")
)
