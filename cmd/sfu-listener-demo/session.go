package main

import (
	"fmt"

	"github.com/pion/rtcp"
	"github.com/pion/webrtc/v2"

	"github.com/peer-calls/sfu-listener/server"
)

// pcSession adapts a *webrtc.PeerConnection to server.PeerSession. The
// TrackListener's contract is expressed in terms of the server.Track /
// server.Sender interfaces so it can be tested without ICE/DTLS; this is
// the one place in the demo where that contract meets pion's concrete
// *webrtc.Track / *webrtc.RTPSender types.
type pcSession struct {
	pc *webrtc.PeerConnection
}

func newPCSession(pc *webrtc.PeerConnection) *pcSession {
	return &pcSession{pc: pc}
}

func (s *pcSession) OnTrack(cb func(server.Track, *webrtc.RTPReceiver)) {
	s.pc.OnTrack(func(track *webrtc.Track, receiver *webrtc.RTPReceiver) {
		cb(track, receiver)
	})
}

func (s *pcSession) AddTrack(track server.Track) (server.Sender, error) {
	t, ok := track.(*webrtc.Track)
	if !ok {
		return nil, fmt.Errorf("pcSession.AddTrack: track is not a *webrtc.Track: %T", track)
	}

	return s.pc.AddTrack(t)
}

func (s *pcSession) RemoveTrack(sender server.Sender) error {
	rtpSender, ok := sender.(*webrtc.RTPSender)
	if !ok {
		return fmt.Errorf("pcSession.RemoveTrack: sender is not a *webrtc.RTPSender: %T", sender)
	}

	return s.pc.RemoveTrack(rtpSender)
}

func (s *pcSession) NewTrack(payloadType uint8, ssrc uint32, id string, label string) (server.Track, error) {
	return s.pc.NewTrack(payloadType, ssrc, id, label)
}

func (s *pcSession) WriteRTCP(pkts []rtcp.Packet) error {
	return s.pc.WriteRTCP(pkts)
}

var _ server.PeerSession = &pcSession{}
