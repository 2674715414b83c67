package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/laenzlinger/go-midi2/transcoder"
	"github.com/laenzlinger/go-midi2/ump"
)

// newDumpCommand reads a raw MIDI 1.0 byte stream from a file (or stdin when no file is given),
// transcodes it to UMP words, and prints one line per decoded record: an offline analogue of the
// network session's HandleUMP path.
func newDumpCommand() *cobra.Command {
	var group uint8

	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "transcode a MIDI 1.0 byte stream to UMP and print the decoded records",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := io.Reader(os.Stdin)
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open input: %w", err)
				}
				defer f.Close()
				in = f
			}
			return runDump(cmd.OutOrStdout(), in, group)
		},
	}

	cmd.Flags().Uint8Var(&group, "group", 0, "UMP group to stamp onto transcoded words")

	return cmd
}

func runDump(out io.Writer, in io.Reader, group uint8) error {
	d := ump.NewDispatcher(dumpHandlers(out))
	tc := transcoder.New(group)

	buf := make([]byte, 4096)
	for {
		n, err := in.Read(buf)
		for _, b := range buf[:n] {
			tc.Push(b)
			for tc.HasOutput() {
				d.Push(tc.PopWord())
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	}
}

func dumpHandlers(out io.Writer) ump.Handlers {
	cvm := func(name string) func(ump.M1CVM) {
		return func(r ump.M1CVM) {
			fmt.Fprintf(out, "%-16s group=%d ch=%-2d data=%d %d\n", name, ump.Group(r.W0), r.Channel(), r.Data1(), r.Data2())
		}
	}
	sysex := func(kind string) func(ump.Sysex7) {
		return func(r ump.Sysex7) {
			data := r.Data()
			fmt.Fprintf(out, "sysex7 %-9s group=%d bytes=% X\n", kind, ump.Group(r.W0), data[:r.NumBytes()])
		}
	}
	system := func(name string) func(ump.System) {
		return func(r ump.System) {
			fmt.Fprintf(out, "%-16s group=%d data=%d %d\n", name, ump.Group(r.W0), r.Data1(), r.Data2())
		}
	}
	return ump.Handlers{
		M1CVM: ump.M1CVMHandlers{
			NoteOff:         cvm("note off"),
			NoteOn:          cvm("note on"),
			PolyPressure:    cvm("poly pressure"),
			ControlChange:   cvm("control change"),
			ProgramChange:   cvm("program change"),
			ChannelPressure: cvm("channel pressure"),
			PitchBend:       cvm("pitch bend"),
		},
		Data64: ump.Data64Handlers{
			Sysex7In1:      sysex("in-1"),
			Sysex7Start:    sysex("start"),
			Sysex7Continue: sysex("continue"),
			Sysex7End:      sysex("end"),
		},
		System: ump.SystemHandlers{
			MIDITimeCode:        system("time code"),
			SongPositionPointer: system("song position"),
			SongSelect:          system("song select"),
			TuneRequest:         system("tune request"),
			TimingClock:         system("timing clock"),
			SequenceStart:       system("sequence start"),
			SequenceContinue:    system("sequence continue"),
			SequenceStop:        system("sequence stop"),
			ActiveSensing:       system("active sensing"),
			Reset:               system("reset"),
		},
		Utility: ump.UtilityHandlers{
			Unknown: func(words []uint32) {
				fmt.Fprintf(out, "unknown          words=% X\n", words)
			},
		},
	}
}
