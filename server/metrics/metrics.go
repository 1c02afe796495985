// Package metrics exposes Prometheus counters for the track listener's
// lifecycle and feedback events.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var TracksAdded = promauto.NewCounter(prometheus.CounterOpts{
	Name: "sfu_listener_tracks_added_total",
	Help: "Total number of local forwarding tracks created from inbound remote tracks",
})

var TracksRemoved = promauto.NewCounter(prometheus.CounterOpts{
	Name: "sfu_listener_tracks_removed_total",
	Help: "Total number of local forwarding tracks torn down",
})

var PLIPacketsSent = promauto.NewCounter(prometheus.CounterOpts{
	Name: "sfu_listener_pli_packets_sent_total",
	Help: "Total number of Picture Loss Indication RTCP packets written to publishers",
})

var PLIWriteErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: "sfu_listener_pli_write_errors_total",
	Help: "Total number of errors encountered while writing a PLI RTCP packet",
})

var ForwardingReadErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: "sfu_listener_forwarding_read_errors_total",
	Help: "Total number of errors reading from a remote track",
})

var ForwardingWriteErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: "sfu_listener_forwarding_write_errors_total",
	Help: "Total number of non-benign errors writing to a local track",
})

var AttachFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "sfu_listener_attach_failures_total",
	Help: "Total number of AddTrack calls rejected by the underlying session",
})

var DetachFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "sfu_listener_detach_failures_total",
	Help: "Total number of RemoveTrack calls rejected by the underlying session",
})
