package server_test

import (
	"sync"

	"github.com/pion/rtcp"
	"github.com/pion/webrtc/v2"

	"github.com/peer-calls/sfu-listener/server"
)

// fakeSession is an in-memory PeerSession used to drive a TrackListener
// deterministically, without a real ICE/DTLS connection.
type fakeSession struct {
	mu      sync.Mutex
	onTrack func(server.Track, *webrtc.RTPReceiver)

	addTrackErr    error
	removeTrackErr error
	newTrackErr    error

	rtcpMu      sync.Mutex
	rtcpPackets []rtcp.Packet
	rtcpErr     error

	createdMu sync.Mutex
	created   []*fakeTrack
}

func newFakeSession() *fakeSession {
	return &fakeSession{}
}

func (s *fakeSession) OnTrack(cb func(server.Track, *webrtc.RTPReceiver)) {
	s.mu.Lock()
	s.onTrack = cb
	s.mu.Unlock()
}

// Trigger simulates the session delivering a new remote track, the way
// pion invokes OnTrack's callback on its own goroutine.
func (s *fakeSession) Trigger(track server.Track, receiver *webrtc.RTPReceiver) {
	s.mu.Lock()
	cb := s.onTrack
	s.mu.Unlock()

	go cb(track, receiver)
}

func (s *fakeSession) AddTrack(track server.Track) (server.Sender, error) {
	if s.addTrackErr != nil {
		return nil, s.addTrackErr
	}

	return &fakeSender{track: track}, nil
}

func (s *fakeSession) RemoveTrack(sender server.Sender) error {
	return s.removeTrackErr
}

func (s *fakeSession) NewTrack(payloadType uint8, ssrc uint32, id, label string) (server.Track, error) {
	if s.newTrackErr != nil {
		return nil, s.newTrackErr
	}

	t := newFakeTrack(payloadType, ssrc, id, label)

	s.createdMu.Lock()
	s.created = append(s.created, t)
	s.createdMu.Unlock()

	return t, nil
}

func (s *fakeSession) WriteRTCP(pkts []rtcp.Packet) error {
	s.rtcpMu.Lock()
	defer s.rtcpMu.Unlock()

	if s.rtcpErr != nil {
		return s.rtcpErr
	}

	s.rtcpPackets = append(s.rtcpPackets, pkts...)

	return nil
}

func (s *fakeSession) pliCount() int {
	s.rtcpMu.Lock()
	defer s.rtcpMu.Unlock()

	return len(s.rtcpPackets)
}

type fakeSender struct {
	track server.Track
}

var _ server.PeerSession = &fakeSession{}

// fakeTrack is an in-memory Track: Read delivers whatever Push sends it
// (or the error passed to FailRead), Write records every call so tests
// can assert forwarded byte content and ordering.
type fakeTrack struct {
	id          string
	label       string
	payloadType uint8
	ssrc        uint32

	dataCh chan []byte
	failCh chan error

	writesMu sync.Mutex
	writes   [][]byte

	writeErrMu sync.Mutex
	writeErr   error
}

func newFakeTrack(payloadType uint8, ssrc uint32, id, label string) *fakeTrack {
	return &fakeTrack{
		id:          id,
		label:       label,
		payloadType: payloadType,
		ssrc:        ssrc,
		dataCh:      make(chan []byte, 16),
		failCh:      make(chan error, 1),
	}
}

func (t *fakeTrack) ID() string                { return t.id }
func (t *fakeTrack) Label() string             { return t.label }
func (t *fakeTrack) Kind() webrtc.RTPCodecType { return webrtc.RTPCodecTypeVideo }
func (t *fakeTrack) PayloadType() uint8        { return t.payloadType }
func (t *fakeTrack) SSRC() uint32              { return t.ssrc }

func (t *fakeTrack) Push(data []byte) {
	t.dataCh <- data
}

func (t *fakeTrack) FailRead(err error) {
	t.failCh <- err
}

func (t *fakeTrack) Read(b []byte) (int, error) {
	select {
	case data := <-t.dataCh:
		return copy(b, data), nil
	case err := <-t.failCh:
		return 0, err
	}
}

func (t *fakeTrack) SetWriteErr(err error) {
	t.writeErrMu.Lock()
	t.writeErr = err
	t.writeErrMu.Unlock()
}

func (t *fakeTrack) Write(b []byte) (int, error) {
	t.writeErrMu.Lock()
	err := t.writeErr
	t.writeErrMu.Unlock()

	if err != nil {
		return 0, err
	}

	cp := make([]byte, len(b))
	copy(cp, b)

	t.writesMu.Lock()
	t.writes = append(t.writes, cp)
	t.writesMu.Unlock()

	return len(b), nil
}

func (t *fakeTrack) Writes() [][]byte {
	t.writesMu.Lock()
	defer t.writesMu.Unlock()

	out := make([][]byte, len(t.writes))
	copy(out, t.writes)

	return out
}

var _ server.Track = &fakeTrack{}
