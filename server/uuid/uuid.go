// Package uuid produces short, URL-safe identifiers used to fill in a
// remote track's id or label when the publisher omitted them.
package uuid

import (
	"github.com/google/uuid"

	"github.com/peer-calls/sfu-listener/server/basen"
)

var trackIDCodec = basen.NewCodec(basen.AlphabetBase62)

// New returns a base62-encoded UUID, suitable for use as a synthetic track
// id or label.
func New() string {
	value := uuid.New()

	return trackIDCodec.Encode(value[:])
}
