package ump

import "github.com/laenzlinger/go-midi2/bitfield"

// SystemStatus is the 8-bit MIDI 1.0 system common/real-time status byte.
type SystemStatus uint8

const (
	SystemMIDITimeCode        SystemStatus = 0xF1
	SystemSongPositionPointer SystemStatus = 0xF2
	SystemSongSelect          SystemStatus = 0xF3
	SystemTuneRequest         SystemStatus = 0xF6
	SystemTimingClock         SystemStatus = 0xF8
	SystemSequenceStart       SystemStatus = 0xFA
	SystemSequenceContinue    SystemStatus = 0xFB
	SystemSequenceStop        SystemStatus = 0xFC
	SystemActiveSensing       SystemStatus = 0xFE
	SystemReset               SystemStatus = 0xFF
)

var (
	systemStatusRange = bitfield.Range{Offset: 16, Width: 8}
	systemData1Range  = bitfield.Range{Offset: 8, Width: 7}
	systemData2Range  = bitfield.Range{Offset: 0, Width: 7}
)

// System is any system common or real-time message: status plus up to two 7-bit data bytes
// (unused bytes are zero, per the message's own arity).
type System struct{ W0 uint32 }

// NewSystem builds a system message from a raw status byte and up to two data bytes. The named
// constructors below cover the defined statuses; NewSystem also accepts the undefined real-time
// statuses (0xF9, 0xFD), which still travel as ordinary system words.
func NewSystem(group uint8, status SystemStatus, data1, data2 uint8) System {
	w := withMTGroup(MTSystem, group)
	w = bitfield.Set(w, systemStatusRange, uint32(status))
	w = bitfield.Set8(w, systemData1Range, data1&0x7F)
	w = bitfield.Set8(w, systemData2Range, data2&0x7F)
	return System{w}
}

func NewMIDITimeCode(group uint8, timeCode uint8) System {
	return NewSystem(group, SystemMIDITimeCode, timeCode, 0)
}
func NewSongPositionPointer(group uint8, lsb, msb uint8) System {
	return NewSystem(group, SystemSongPositionPointer, lsb, msb)
}
func NewSongSelect(group uint8, song uint8) System {
	return NewSystem(group, SystemSongSelect, song, 0)
}
func NewTuneRequest(group uint8) System      { return NewSystem(group, SystemTuneRequest, 0, 0) }
func NewTimingClock(group uint8) System      { return NewSystem(group, SystemTimingClock, 0, 0) }
func NewSequenceStart(group uint8) System    { return NewSystem(group, SystemSequenceStart, 0, 0) }
func NewSequenceContinue(group uint8) System { return NewSystem(group, SystemSequenceContinue, 0, 0) }
func NewSequenceStop(group uint8) System     { return NewSystem(group, SystemSequenceStop, 0, 0) }
func NewActiveSensing(group uint8) System    { return NewSystem(group, SystemActiveSensing, 0, 0) }
func NewReset(group uint8) System            { return NewSystem(group, SystemReset, 0, 0) }

func (r System) Status() SystemStatus { return SystemStatus(bitfield.Get8(r.W0, systemStatusRange)) }
func (r System) Data1() uint8         { return bitfield.Get8(r.W0, systemData1Range) }
func (r System) Data2() uint8         { return bitfield.Get8(r.W0, systemData2Range) }

func systemStatus(word0 uint32) SystemStatus {
	return SystemStatus(bitfield.Get8(word0, systemStatusRange))
}
