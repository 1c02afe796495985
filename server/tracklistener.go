package server

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/juju/errors"
	"github.com/pion/rtcp"
	"github.com/pion/webrtc/v2"

	"github.com/peer-calls/sfu-listener/server/atomic"
	"github.com/peer-calls/sfu-listener/server/clock"
	"github.com/peer-calls/sfu-listener/server/identifiers"
	"github.com/peer-calls/sfu-listener/server/listenerconfig"
	"github.com/peer-calls/sfu-listener/server/metrics"
	"github.com/peer-calls/sfu-listener/server/uuid"
)

// Track is the subset of pion/webrtc's Track the listener depends on: an
// identity, codec parameters, and blocking Read/Write of raw RTP bytes. A
// *webrtc.Track satisfies this implicitly; tests substitute an in-memory
// fake so forwarding can be exercised without a real ICE/DTLS session.
type Track interface {
	ID() string
	Label() string
	Kind() webrtc.RTPCodecType
	PayloadType() uint8
	SSRC() uint32
	Read(b []byte) (int, error)
	Write(b []byte) (int, error)
}

// Sender is the opaque handle a session hands back from AddTrack and
// expects back from RemoveTrack. A real session implementation returns
// its own *webrtc.RTPSender; the TrackListener never looks inside it.
type Sender interface{}

// PeerSession is the subset of a WebRTC peer connection the TrackListener
// needs. It is modeled as an interface so tests can substitute an
// in-memory fake that drives OnTrack deterministically.
type PeerSession interface {
	// OnTrack registers the callback invoked whenever the remote peer
	// starts sending a new track.
	OnTrack(func(remoteTrack Track, receiver *webrtc.RTPReceiver))
	// AddTrack attaches a locally-owned track as a send-only stream.
	AddTrack(track Track) (Sender, error)
	// RemoveTrack detaches a previously-attached track's sender.
	RemoveTrack(sender Sender) error
	// NewTrack constructs a locally-owned track with the given codec
	// parameters and identity.
	NewTrack(payloadType uint8, ssrc uint32, id string, label string) (Track, error)
	// WriteRTCP writes a batch of RTCP control packets to the remote peer.
	WriteRTCP(pkts []rtcp.Packet) error
}

// Option configures a TrackListener at construction time.
type Option func(*TrackListener)

// WithConfig overrides the default PLI interval, events channel buffer
// size and forwards no other setting.
func WithConfig(cfg listenerconfig.Config) Option {
	return func(p *TrackListener) {
		p.pliInterval = cfg.PLIInterval
		p.events = make(chan TrackEvent, cfg.EventsBufferSize)
	}
}

// WithClock injects a clock.Clock, used by tests to drive the PLI ticker
// deterministically instead of waiting on the wall clock.
func WithClock(c clock.Clock) Option {
	return func(p *TrackListener) {
		p.clock = c
	}
}

// TrackListener owns one publisher's media session: it turns inbound
// remote tracks into locally-owned forwarding tracks, pumps RTP packets
// between them, drives PLI feedback to the publisher, and announces
// track lifecycle events to a Router via Events().
type TrackListener struct {
	log      Logger
	clientID identifiers.ClientID
	session  PeerSession

	pliInterval time.Duration
	clock       clock.Clock

	localTracksMu sync.RWMutex
	localTracks   []Track
	senderByTrack map[Track]Sender

	events       chan TrackEvent
	closeChannel chan struct{}
	closeOnce    sync.Once
	closed       atomic.Bool
}

// New constructs a TrackListener for clientID and registers its
// inbound-track handler on session. It performs no I/O and does not
// block.
func New(loggerFactory LoggerFactory, clientID identifiers.ClientID, session PeerSession, opts ...Option) *TrackListener {
	p := &TrackListener{
		log:      loggerFactory.GetLogger("peer"),
		clientID: clientID,
		session:  session,

		pliInterval: listenerconfig.Default().PLIInterval,
		clock:       clock.New(),

		senderByTrack: map[Track]Sender{},
		closeChannel:  make(chan struct{}),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.events == nil {
		p.events = make(chan TrackEvent)
	}

	p.log.Printf("[%s] Setting PeerSession.OnTrack listener", p.clientID)
	session.OnTrack(p.handleTrack)

	return p
}

// ClientID returns the publisher identity this listener was constructed
// with.
func (p *TrackListener) ClientID() string {
	return p.clientID.String()
}

// Events returns the channel on which TrackEvents are delivered. It
// returns the same channel on every call, and stops producing (but is
// never closed) once Close has been called. With a non-zero
// EventsBufferSize, events already buffered before Close stay readable.
func (p *TrackListener) Events() <-chan TrackEvent {
	return p.events
}

// Tracks returns a snapshot of every locally-owned forwarding track
// created for this publisher. The list is append-only: a track stays in it
// after its forwarding worker has stopped. The returned slice is a copy and
// safe to read without further synchronization.
func (p *TrackListener) Tracks() []Track {
	p.localTracksMu.RLock()
	defer p.localTracksMu.RUnlock()

	tracks := make([]Track, len(p.localTracks))
	copy(tracks, p.localTracks)

	return tracks
}

// AddTrack attaches track to this listener's session as a send-only
// stream and records its sender for later removal.
func (p *TrackListener) AddTrack(track Track) error {
	p.localTracksMu.Lock()
	defer p.localTracksMu.Unlock()

	p.log.Printf("[%s] AddTrack: %s", p.clientID, track.ID())

	sender, err := p.session.AddTrack(track)
	if err != nil {
		metrics.AttachFailures.Inc()

		return errors.Annotatef(fmt.Errorf("%w: %s", ErrAttachFailed, track.ID()), "session.AddTrack: %s", err)
	}

	p.senderByTrack[track] = sender

	return nil
}

// RemoveTrack detaches a previously-attached track and forgets its
// sender.
func (p *TrackListener) RemoveTrack(track Track) error {
	p.localTracksMu.Lock()
	defer p.localTracksMu.Unlock()

	p.log.Printf("[%s] RemoveTrack: %s", p.clientID, track.ID())

	sender, ok := p.senderByTrack[track]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTrack, track.ID())
	}

	if err := p.session.RemoveTrack(sender); err != nil {
		metrics.DetachFailures.Inc()

		return errors.Annotatef(fmt.Errorf("%w: %s", ErrDetachFailed, track.ID()), "session.RemoveTrack: %s", err)
	}

	delete(p.senderByTrack, track)

	return nil
}

// Close tears the listener down. It is idempotent: only the first call
// has any effect. PLI workers and pending event sends stop promptly; a
// forwarding worker blocked in a remote Read exits only once that Read
// returns an error, e.g. when the underlying session is torn down.
func (p *TrackListener) Close() {
	p.closeOnce.Do(func() {
		p.closed.Set(true)
		close(p.closeChannel)
	})
}

func (p *TrackListener) handleTrack(remoteTrack Track, receiver *webrtc.RTPReceiver) {
	p.log.Printf("[%s] handleTrack (id: %s, label: %s, kind: %s, ssrc: %d)",
		p.clientID, remoteTrack.ID(), remoteTrack.Label(), remoteTrack.Kind(), remoteTrack.SSRC())

	localTrack, localID, ssrc, err := p.createLocalTrack(remoteTrack)
	if err != nil {
		p.log.Printf("[%s] handleTrack: error creating local track: %s", p.clientID, err)

		return
	}

	p.localTracksMu.Lock()
	p.localTracks = append(p.localTracks, localTrack)
	p.localTracksMu.Unlock()

	metrics.TracksAdded.Inc()

	// Add must be emitted, and observed by the router, before either
	// worker for this track starts: a Remove emitted by a forwarding
	// worker that fails on its very first Read must never be able to race
	// ahead of this Add on the events channel.
	p.emit(TrackEvent{ClientID: p.clientID, Track: localTrack, Type: TrackEventTypeAdd})

	p.startForwarding(remoteTrack, localTrack, localID, ssrc)
}

// emit sends evt on events, or drops it if the listener closes first.
// This is the fix for the source implementation's close/send race: events
// is never closed, so no send can panic; the send is raced against the
// close signal, and an already-signalled close drops the event outright
// rather than leaving the choice to select.
func (p *TrackListener) emit(evt TrackEvent) {
	select {
	case <-p.closeChannel:
		return
	default:
	}

	select {
	case p.events <- evt:
	case <-p.closeChannel:
	}
}

// createLocalTrack derives local identity for remoteTrack and creates the
// corresponding locally-owned track on the session. It starts no workers.
func (p *TrackListener) createLocalTrack(remoteTrack Track) (Track, string, uint32, error) {
	remoteID := remoteTrack.ID()
	if remoteID == "" {
		remoteID = uuid.New()
	}

	// The clientID prefix on the label carries publisher attribution
	// downstream; the remote label tail lets a router associate audio and
	// video tracks that came from the same media stream.
	remoteLabel := remoteTrack.Label()
	if remoteLabel == "" {
		remoteLabel = uuid.New()
	}

	localID := "sfu_" + remoteID
	localLabel := "sfu_" + p.clientID.String() + "_" + remoteLabel

	ssrc := remoteTrack.SSRC()

	localTrack, err := p.session.NewTrack(remoteTrack.PayloadType(), ssrc, localID, localLabel)
	if err != nil {
		return nil, "", 0, errors.Annotatef(err, "session.NewTrack for remote track %s", remoteTrack.ID())
	}

	p.log.Printf("[%s] createLocalTrack: (id: %s, label: %s) -> (id: %s, label: %s), ssrc: %d",
		p.clientID, remoteTrack.ID(), remoteTrack.Label(), localID, localLabel, ssrc)

	return localTrack, localID, ssrc, nil
}

// startForwarding starts the PLI and forwarding workers for an
// already-announced local track.
func (p *TrackListener) startForwarding(remoteTrack, localTrack Track, localID string, ssrc uint32) {
	done := make(chan struct{})
	var doneOnce sync.Once

	closeDone := func() {
		doneOnce.Do(func() { close(done) })
	}

	p.runPLIWorker(ssrc, localID, done)
	go p.runForwardingWorker(remoteTrack, localTrack, localID, done, closeDone)
}

// runPLIWorker writes a PictureLossIndication for ssrc immediately, then
// every p.pliInterval, until done or the listener closes is signalled.
func (p *TrackListener) runPLIWorker(ssrc uint32, localID string, done <-chan struct{}) {
	if p.pliInterval <= 0 {
		return
	}

	writePLI := func() {
		err := p.session.WriteRTCP([]rtcp.Packet{
			&rtcp.PictureLossIndication{MediaSSRC: ssrc},
		})
		if err != nil {
			metrics.PLIWriteErrors.Inc()
			p.log.Printf("[%s] PLI write error for track %s: %s", p.clientID, localID, err)

			return
		}

		metrics.PLIPacketsSent.Inc()
	}

	ticker := p.clock.NewTicker(p.pliInterval)

	go func() {
		defer ticker.Stop()

		writePLI()

		for {
			select {
			case <-ticker.C():
				writePLI()
			case <-done:
				return
			case <-p.closeChannel:
				return
			}
		}
	}()
}

// runForwardingWorker pumps RTP packets from remoteTrack to localTrack
// until the remote read fails or a local write fails with an error other
// than io.ErrClosedPipe, then announces Remove (unless the listener has
// already closed) and signals done so the PLI worker for this track stops
// too. It does not watch the close signal itself.
func (p *TrackListener) runForwardingWorker(remoteTrack, localTrack Track, localID string, done chan struct{}, closeDone func()) {
	defer closeDone()

	defer func() {
		metrics.TracksRemoved.Inc()

		if !p.closed.Get() {
			p.emit(TrackEvent{ClientID: p.clientID, Track: localTrack, Type: TrackEventTypeRemove})
		}
	}()

	buf := make([]byte, 1400)

	for {
		n, err := remoteTrack.Read(buf)
		if err != nil {
			metrics.ForwardingReadErrors.Inc()
			p.log.Printf("[%s] read error on remote track %s: %s", p.clientID, remoteTrack.ID(), err)

			return
		}

		if _, err = localTrack.Write(buf[:n]); err != nil && err != io.ErrClosedPipe {
			metrics.ForwardingWriteErrors.Inc()
			p.log.Printf("[%s] write error on local track %s: %s", p.clientID, localID, err)

			return
		}
	}
}
