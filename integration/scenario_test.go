// Package integration exercises end-to-end flows through the public API alone: bytestream-to-UMP
// transcoding, CI discovery round-tripping, and the bit-resolution scaling corners.
package integration

import (
	"testing"

	"github.com/laenzlinger/go-midi2/ci"
	"github.com/laenzlinger/go-midi2/scale"
	"github.com/laenzlinger/go-midi2/transcoder"
	"github.com/laenzlinger/go-midi2/ump"
)

func feed(tc *transcoder.Transcoder, bytes []byte) []uint32 {
	for _, b := range bytes {
		tc.Push(b)
	}
	var words []uint32
	for tc.HasOutput() {
		words = append(words, tc.PopWord())
	}
	return words
}

// MIDI-1 note-off (status 0x81, channel 1) with running status.
func TestNoteOffRunningStatus(t *testing.T) {
	tc := transcoder.New(0)
	words := feed(tc, []byte{0x81, 0x60, 0x50, 0x70, 0x70})
	want := []uint32{0x20816050, 0x20817070}
	if len(words) != len(want) {
		t.Fatalf("got %d words, want %d: %#x", len(words), len(want), words)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Fatalf("word %d = %#x, want %#x", i, words[i], want[i])
		}
	}
}

// MIDI-1 program change with bank select, all under one running status family.
func TestProgramChangeWithBankSelect(t *testing.T) {
	tc := transcoder.New(0)
	words := feed(tc, []byte{0xBF, 0x00, 0x51, 0xBF, 0x20, 0x01, 0xCF, 0x42})
	if len(words) != 3 {
		t.Fatalf("got %d words, want 3", len(words))
	}
	cc1 := ump.M1CVM{W0: words[0]}
	cc2 := ump.M1CVM{W0: words[1]}
	pc := ump.M1CVM{W0: words[2]}
	if cc1.Status() != ump.M1ControlChange || cc1.Channel() != 15 || cc1.Data1() != 0x00 || cc1.Data2() != 0x51 {
		t.Fatalf("first control change mismatch: %+v", cc1)
	}
	if cc2.Status() != ump.M1ControlChange || cc2.Data1() != 0x20 || cc2.Data2() != 0x01 {
		t.Fatalf("second control change mismatch: %+v", cc2)
	}
	if pc.Status() != ump.M1ProgramChange || pc.Channel() != 15 || pc.Data1() != 0x42 {
		t.Fatalf("program change mismatch: %+v", pc)
	}
}

// Sysex rechunking. The data payload here is exactly 30 bytes (five 6-byte groups); a full group
// is only flushed as start/continue once a further data byte proves more data follows, so the
// fifth group is still buffered when the terminating 0xF7 arrives and goes out as the end frame:
// five frames, ten words.
func TestSysexRechunking(t *testing.T) {
	tc := transcoder.New(0)
	input := []byte{
		0xF0,
		0x7E, 0x7F, 0x0D, 0x70, 0x02, 0x4B,
		0x60, 0x7A, 0x73, 0x7F, 0x7F, 0x7F,
		0x7F, 0x7D, 0x00, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00, 0x03, 0x00,
		0x00, 0x00, 0x10, 0x00, 0x00, 0x00,
		0xF7,
	}
	words := feed(tc, input)
	if len(words) != 10 {
		t.Fatalf("got %d words, want 10 (five 2-word sysex7 frames)", len(words))
	}

	first := ump.Sysex7{W0: words[0], W1: words[1]}
	if first.Status() != ump.Sysex7Start || first.NumBytes() != 6 {
		t.Fatalf("first frame mismatch: status=%v numBytes=%d", first.Status(), first.NumBytes())
	}
	if first.W0 != 0x30167E7F {
		t.Fatalf("first word = %#x, want 0x30167E7F", first.W0)
	}
	if first.W1 != 0x0D70024B {
		t.Fatalf("second word = %#x, want 0x0D70024B", first.W1)
	}

	for i := 1; i < 4; i++ {
		frame := ump.Sysex7{W0: words[2*i], W1: words[2*i+1]}
		if frame.Status() != ump.Sysex7Continue || frame.NumBytes() != 6 {
			t.Fatalf("frame %d mismatch: status=%v numBytes=%d", i, frame.Status(), frame.NumBytes())
		}
	}

	last := ump.Sysex7{W0: words[8], W1: words[9]}
	if last.Status() != ump.Sysex7End || last.NumBytes() != 6 {
		t.Fatalf("final frame mismatch: status=%v numBytes=%d", last.Status(), last.NumBytes())
	}
	if last.Data() != ([6]byte{0x00, 0x00, 0x10, 0x00, 0x00, 0x00}) {
		t.Fatalf("final frame data mismatch: %v", last.Data())
	}
}

// CI discovery v2 encode then decode: the encoded bytes must come back as exactly one discovery
// callback whose body matches the input field for field.
func TestDiscoveryV2RoundTrip(t *testing.T) {
	p := ci.Params{Group: 0, DeviceID: 0x7F, Version: 2, Source: 0x1234567, Destination: ci.BroadcastMUID}
	want := ci.Discovery{
		Manufacturer: [3]byte{0x12, 0x23, 0x34},
		Family:       0x1779,
		Model:        0x2B5D,
		Version:      [4]byte{0x01, 0x00, 0x00, 0x00},
		Capability:   0x7F,
		MaxSysexSize: 256,
		OutputPathID: 0,
	}

	buf := make([]byte, 64)
	n := ci.CreateMessage(buf, p, want)
	if n != ci.HeaderSize+17 {
		t.Fatalf("CreateMessage wrote %d bytes, want %d (header + v2 discovery body)", n, ci.HeaderSize+17)
	}

	var gotHeader ci.Header
	var got ci.Discovery
	fired := 0
	d := ci.NewDispatcher(ci.Handlers{
		Management: ci.ManagementHandlers{
			Discovery: func(h ci.Header, body ci.Discovery) {
				gotHeader, got = h, body
				fired++
			},
		},
	})
	d.StartSysex7(p.Group, p.DeviceID)
	for _, b := range buf[:n] {
		d.Push(b)
	}

	if fired != 1 {
		t.Fatalf("discovery callback fired %d times, want 1", fired)
	}
	if gotHeader.Version != 2 || gotHeader.Source != p.Source || !gotHeader.Broadcast() {
		t.Fatalf("decoded header mismatch: %+v", gotHeader)
	}
	if got != want {
		t.Fatalf("decoded body mismatch: got %+v, want %+v", got, want)
	}
}

// MCM scale corner values.
func TestMCMScaleCorners(t *testing.T) {
	cases := []struct {
		value, srcBits, destBits, want uint32
	}{
		{0x00, 7, 32, 0x00000000},
		{0x40, 7, 32, 0x80000000},
		{0x7F, 7, 32, 0xFFFFFFFF},
		{0xAEBA, 16, 7, 0x57},
	}
	for _, c := range cases {
		if got := scale.MCM(c.value, uint(c.srcBits), uint(c.destBits)); got != c.want {
			t.Fatalf("MCM(%#x, %d, %d) = %#x, want %#x", c.value, c.srcBits, c.destBits, got, c.want)
		}
	}
}

// Real-time byte interleaved inside an otherwise-pending note on.
func TestRealTimeInsideNoteOn(t *testing.T) {
	tc := transcoder.New(0)
	words := feed(tc, []byte{0x91, 0xFA, 0x3C, 0x7F})
	if len(words) != 2 {
		t.Fatalf("got %d words, want 2", len(words))
	}
	seqStart := ump.System{W0: words[0]}
	if seqStart.Status() != ump.SystemSequenceStart {
		t.Fatalf("first word should be sequence-start, got status %v", seqStart.Status())
	}
	noteOn := ump.M1CVM{W0: words[1]}
	if noteOn.Status() != ump.M1NoteOn || noteOn.Channel() != 1 || noteOn.Data1() != 0x3C || noteOn.Data2() != 0x7F {
		t.Fatalf("note-on mismatch: %+v", noteOn)
	}
}
