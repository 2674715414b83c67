// Package cmd wires up the go-midi2 demo's command line and logging.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/grandcat/zeroconf"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/laenzlinger/go-midi2/ci"
	"github.com/laenzlinger/go-midi2/rtp"
	"github.com/laenzlinger/go-midi2/session"
	"github.com/laenzlinger/go-midi2/ump"
)

func NewCommand(version, commit string) *cobra.Command {
	var port uint16
	var name string
	var debug bool

	cmd := &cobra.Command{
		Use:     "go-midi2",
		Version: fmt.Sprintf("%s - %s", version, commit),
		Annotations: map[string]string{
			"version": version,
			"commit":  commit,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRoot(cmd, port, name, debug)
		},
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	cmd.Flags().Uint16Var(&port, "port", 7005, "UDP port to listen on")
	cmd.Flags().StringVar(&name, "name", "go-midi2", "Bonjour service name to advertise")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newDumpCommand())

	return cmd
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: level}))
	slog.SetDefault(logger)
}

func runRoot(cmd *cobra.Command, port uint16, name string, debug bool) error {
	setupLogger(debug)
	slog.Info("starting go-midi2", "version", cmd.Annotations["version"], "port", port)

	server, err := zeroconf.Register(name, "_apple-midi._udp", "local.", int(port), []string{"txtv=0", "lo=1", "la=2"}, nil)
	if err != nil {
		return fmt.Errorf("failed to register bonjour service: %w", err)
	}
	defer server.Shutdown()

	s := session.Start(name, port)
	s.Handle(func(msg rtp.MIDIMessage, _ *session.MIDINetworkSession) {
		slog.Debug("received MIDI message", "ssrc", fmt.Sprintf("%x", msg.SSRC), "commands", len(msg.Commands.Commands))
	})
	s.HandleUMP(ump.Handlers{
		M1CVM: ump.M1CVMHandlers{
			NoteOn: func(r ump.M1CVM) {
				slog.Info("note on", "channel", r.Channel(), "note", r.Data1(), "velocity", r.Data2())
			},
			NoteOff: func(r ump.M1CVM) {
				slog.Info("note off", "channel", r.Channel(), "note", r.Data1(), "velocity", r.Data2())
			},
		},
	})
	s.HandleCI(ci.Handlers{
		System: ci.SystemHandlers{
			UnknownMIDICI: func(h ci.Header) {
				if debug {
					slog.Debug("unknown MIDI-CI message", "message", h.Message)
				}
			},
		},
		Management: ci.ManagementHandlers{
			Discovery: func(h ci.Header, body ci.Discovery) {
				slog.Info("MIDI-CI discovery", "source", h.Source, "family", body.Family, "model", body.Model)
			},
		},
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	slog.Info("shutting down")
	s.End()
	return nil
}
