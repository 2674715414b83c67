// Package transcoder implements the running-status-preserving MIDI 1.0 byte stream to UMP word
// transcoder (component G), queuing its output on a bounded FIFO (component H).
package transcoder

import (
	"github.com/laenzlinger/go-midi2/fifo"
	"github.com/laenzlinger/go-midi2/ump"
)

const outputCapacity = 64 // power of two; generous for any single input byte's worst case (one deferred sysex flush plus one emission).

type sysexState int

const (
	sysexNone sysexState = iota
	sysexStarted
	sysexContinuing
)

const (
	statusSysexStart byte = 0xF0
	statusSysexEnd   byte = 0xF7
	statusTuneReq    byte = 0xF6
)

// Transcoder converts a MIDI 1.0 byte stream into UMP words, one group's worth at a time. It owns
// no I/O: callers feed bytes with Push and drain words with PopWord.
type Transcoder struct {
	group uint8
	mask  uint16

	runningStatus byte
	haveRunning   bool
	pendingData   byte
	havePending   bool

	sysex    sysexState
	sysexBuf [6]byte
	sysexPos int

	out *fifo.FIFO[uint32]
}

// New constructs a Transcoder stamping the given group onto every word it emits, with every group
// enabled in the output mask.
func New(group uint8) *Transcoder {
	return &Transcoder{
		group: group,
		mask:  0xFFFF,
		out:   fifo.New[uint32](outputCapacity),
	}
}

// SetGroupMask restricts output to the groups whose bit is set in mask. Since this transcoder
// always stamps its own configured group, the mask either passes every message through (bit set)
// or drops all of them (bit clear).
func (t *Transcoder) SetGroupMask(mask uint16) { t.mask = mask }

// HasOutput reports whether a decoded word is waiting to be popped.
func (t *Transcoder) HasOutput() bool { return !t.out.Empty() }

// PopWord removes and returns the next queued word. The caller must check HasOutput first.
func (t *Transcoder) PopWord() uint32 { return t.out.PopFront() }

func (t *Transcoder) emit(word uint32) {
	if t.mask&(1<<t.group) == 0 {
		return
	}
	t.out.PushBack(word)
}

// Push feeds one input byte.
func (t *Transcoder) Push(b byte) {
	switch {
	case isRealTime(b):
		t.emit(systemWord(t.group, b, 0, 0).W0)
	case b&0x80 != 0:
		t.handleStatus(b)
	default:
		t.handleData(b)
	}
}

func isRealTime(b byte) bool { return b >= 0xF8 }

func (t *Transcoder) handleStatus(b byte) {
	if t.sysex != sysexNone {
		t.flushSysex()
	}
	t.runningStatus = b
	t.haveRunning = true
	t.havePending = false

	switch {
	case b == statusTuneReq:
		t.emit(systemWord(t.group, b, 0, 0).W0)
	case b == statusSysexStart:
		t.sysex = sysexStarted
		t.sysexPos = 0
	default:
		// Wait for data bytes; nothing to emit for a bare status byte.
	}
}

func (t *Transcoder) handleData(b byte) {
	switch {
	case t.sysex != sysexNone:
		// Flush a full 6-byte group only once this next byte proves more data follows; a group
		// still buffered when the terminating status arrives goes out as end/in-1 instead.
		if t.sysexPos == 6 {
			status := ump.Sysex7Continue
			if t.sysex == sysexStarted {
				status = ump.Sysex7Start
			}
			t.emitSysex(status, 6)
			t.sysexPos = 0
			t.sysex = sysexContinuing
		}
		t.sysexBuf[t.sysexPos] = b
		t.sysexPos++
	case t.haveRunning && oneDataByteMessage(t.runningStatus):
		w := channelOrSystemWord(t.group, t.runningStatus, b, 0)
		t.emit(w)
	case t.havePending:
		w := channelOrSystemWord(t.group, t.runningStatus, t.pendingData, b)
		t.emit(w)
		t.havePending = false
	case t.haveRunning && twoDataByteMessage(t.runningStatus):
		t.pendingData = b
		t.havePending = true
	default:
		// No running status context: drop silently.
	}
}

func (t *Transcoder) flushSysex() {
	status := ump.Sysex7End
	if t.sysex == sysexStarted {
		status = ump.Sysex7In1
	}
	t.emitSysex(status, uint8(t.sysexPos))
	t.sysex = sysexNone
	t.sysexPos = 0
}

func (t *Transcoder) emitSysex(status ump.Sysex7Status, n uint8) {
	var data [6]byte
	copy(data[:], t.sysexBuf[:n])
	r := ump.NewSysex7(t.group, status, data, n)
	t.emit(r.W0)
	t.emit(r.W1)
}

func oneDataByteMessage(status byte) bool {
	switch status & 0xF0 {
	case 0xC0, 0xD0: // program change, channel pressure
		return true
	}
	switch status {
	case 0xF1, 0xF3: // MTC quarter frame, song select
		return true
	}
	return false
}

func twoDataByteMessage(status byte) bool {
	switch status & 0xF0 {
	case 0x80, 0x90, 0xA0, 0xB0, 0xE0: // note off/on, poly pressure, control change, pitch bend
		return true
	}
	return status == 0xF2 // song position pointer
}

func channelOrSystemWord(group uint8, status, data1, data2 byte) uint32 {
	if status&0xF0 == 0xF0 {
		return systemWord(group, status, data1, data2).W0
	}
	return m1cvmFromStatus(group, status, data1, data2).W0
}

func m1cvmFromStatus(group uint8, status, data1, data2 byte) ump.M1CVM {
	channel := status & 0x0F
	switch status & 0xF0 {
	case 0x80:
		return ump.NewM1NoteOff(group, channel, data1, data2)
	case 0x90:
		return ump.NewM1NoteOn(group, channel, data1, data2)
	case 0xA0:
		return ump.NewM1PolyPressure(group, channel, data1, data2)
	case 0xB0:
		return ump.NewM1ControlChange(group, channel, data1, data2)
	case 0xC0:
		return ump.NewM1ProgramChange(group, channel, data1)
	case 0xD0:
		return ump.NewM1ChannelPressure(group, channel, data1)
	case 0xE0:
		return ump.NewM1PitchBend(group, channel, data1, data2)
	}
	return ump.M1CVM{}
}

func systemWord(group uint8, status, data1, data2 byte) ump.System {
	switch status {
	case 0xF1:
		return ump.NewMIDITimeCode(group, data1)
	case 0xF2:
		return ump.NewSongPositionPointer(group, data1, data2)
	case 0xF3:
		return ump.NewSongSelect(group, data1)
	case 0xF6:
		return ump.NewTuneRequest(group)
	case 0xF8:
		return ump.NewTimingClock(group)
	case 0xFA:
		return ump.NewSequenceStart(group)
	case 0xFB:
		return ump.NewSequenceContinue(group)
	case 0xFC:
		return ump.NewSequenceStop(group)
	case 0xFE:
		return ump.NewActiveSensing(group)
	case 0xFF:
		return ump.NewReset(group)
	default:
		// Undefined statuses (0xF9, 0xFD) still travel as plain system words.
		return ump.NewSystem(group, ump.SystemStatus(status), data1, data2)
	}
}
