// Command sfu-listener-demo wires every ambient piece of the track
// listener — flags, layered config, the logger factory, the pion log
// bridge — around a single real *webrtc.PeerConnection and prints every
// TrackEvent it produces. It never performs signalling: that remains the
// permanently external collaborator described in the listener's own
// documentation. Its purpose is to exercise end-to-end construction, not
// to be a deployable SFU entrypoint.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/pion/webrtc/v2"

	"github.com/peer-calls/sfu-listener/server"
	"github.com/peer-calls/sfu-listener/server/identifiers"
	"github.com/peer-calls/sfu-listener/server/listenercli"
	"github.com/peer-calls/sfu-listener/server/listenerconfig"
	"github.com/peer-calls/sfu-listener/server/pionlogger"
)

func panicOnError(err error, message string) {
	if err != nil {
		panic(fmt.Errorf("%s: %w", message, err))
	}
}

func main() {
	flags := pflag.NewFlagSet("sfu-listener-demo", pflag.ExitOnError)

	var configFiles []string
	flags.StringSliceVar(&configFiles, "config", nil, "YAML config file(s) to load, in order")

	var clientID string
	flags.StringVar(&clientID, "client-id", "demo-publisher", "publisher identity to attach this listener to")

	cfg := listenerconfig.Default()
	bound := listenercli.RegisterFlags(flags, &cfg)

	panicOnError(flags.Parse(os.Args[1:]), "parse flags")

	fileCfg, err := listenerconfig.Read("PEERCALLS_", configFiles)
	panicOnError(err, "read config")

	// Flags given on the command line override the file and environment
	// layers; flags left unset keep the value Read produced.
	bound.Apply()

	if !flags.Changed("pli-interval") {
		cfg.PLIInterval = fileCfg.PLIInterval
	}

	if !flags.Changed("events-buffer-size") {
		cfg.EventsBufferSize = fileCfg.EventsBufferSize
	}

	if !flags.Changed("log") {
		cfg.Log = fileCfg.Log
	}

	loggerFactory := server.NewLoggerWriterFactory(os.Stderr, cfg.Log)
	log := loggerFactory.GetLogger("demo")

	mediaEngine := webrtc.MediaEngine{}
	mediaEngine.RegisterDefaultCodecs()

	settingEngine := webrtc.SettingEngine{
		LoggerFactory: pionlogger.NewFactory(loggerFactory),
	}

	api := webrtc.NewAPI(webrtc.WithMediaEngine(mediaEngine), webrtc.WithSettingEngine(settingEngine))

	pc, err := api.NewPeerConnection(webrtc.Configuration{})
	panicOnError(err, "create peer connection")

	defer pc.Close()

	listener := server.New(loggerFactory, identifiers.ClientID(clientID), newPCSession(pc),
		server.WithConfig(cfg),
	)
	defer listener.Close()

	log.Printf("listening for tracks on %q (pli=%s, events-buffer=%d); waiting for an external signalling layer to populate the connection",
		clientID, cfg.PLIInterval, cfg.EventsBufferSize)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	for {
		select {
		case evt := <-listener.Events():
			log.Printf("track event: type=%s track=%s label=%s", evt.Type, evt.Track.ID(), evt.Track.Label())
		case <-ctx.Done():
			log.Println("shutting down")

			return
		}
	}
}
