package ump

import "github.com/laenzlinger/go-midi2/bitfield"

// M1CVMStatus is the 4-bit MIDI 1.0 channel-voice status nibble (the high nibble of a MIDI 1
// status byte).
type M1CVMStatus uint8

const (
	M1NoteOff         M1CVMStatus = 0x8
	M1NoteOn          M1CVMStatus = 0x9
	M1PolyPressure    M1CVMStatus = 0xA
	M1ControlChange   M1CVMStatus = 0xB
	M1ProgramChange   M1CVMStatus = 0xC
	M1ChannelPressure M1CVMStatus = 0xD
	M1PitchBend       M1CVMStatus = 0xE
)

var (
	m1StatusRange  = bitfield.Range{Offset: 20, Width: 4}
	m1ChannelRange = bitfield.Range{Offset: 16, Width: 4}
	m1Data1Range   = bitfield.Range{Offset: 8, Width: 7}
	m1Data2Range   = bitfield.Range{Offset: 0, Width: 7}
)

// M1CVM is any MIDI 1 channel-voice message carried as a single UMP word.
type M1CVM struct{ W0 uint32 }

func newM1CVM(group, channel uint8, status M1CVMStatus, data1, data2 uint8) M1CVM {
	w := withMTGroup(MTM1CVM, group)
	w = bitfield.Set(w, m1StatusRange, uint32(status))
	w = bitfield.Set8(w, m1ChannelRange, channel&0xF)
	w = bitfield.Set8(w, m1Data1Range, data1&0x7F)
	w = bitfield.Set8(w, m1Data2Range, data2&0x7F)
	return M1CVM{w}
}

func NewM1NoteOff(group, channel, note, velocity uint8) M1CVM {
	return newM1CVM(group, channel, M1NoteOff, note, velocity)
}
func NewM1NoteOn(group, channel, note, velocity uint8) M1CVM {
	return newM1CVM(group, channel, M1NoteOn, note, velocity)
}
func NewM1PolyPressure(group, channel, note, pressure uint8) M1CVM {
	return newM1CVM(group, channel, M1PolyPressure, note, pressure)
}
func NewM1ControlChange(group, channel, controller, value uint8) M1CVM {
	return newM1CVM(group, channel, M1ControlChange, controller, value)
}
func NewM1ProgramChange(group, channel, program uint8) M1CVM {
	return newM1CVM(group, channel, M1ProgramChange, program, 0)
}
func NewM1ChannelPressure(group, channel, pressure uint8) M1CVM {
	return newM1CVM(group, channel, M1ChannelPressure, pressure, 0)
}
func NewM1PitchBend(group, channel, lsb, msb uint8) M1CVM {
	return newM1CVM(group, channel, M1PitchBend, lsb, msb)
}

func (r M1CVM) Status() M1CVMStatus { return M1CVMStatus(bitfield.Get8(r.W0, m1StatusRange)) }
func (r M1CVM) Channel() uint8      { return bitfield.Get8(r.W0, m1ChannelRange) }
func (r M1CVM) Data1() uint8        { return bitfield.Get8(r.W0, m1Data1Range) }
func (r M1CVM) Data2() uint8        { return bitfield.Get8(r.W0, m1Data2Range) }

func m1Status(word0 uint32) M1CVMStatus { return M1CVMStatus(bitfield.Get8(word0, m1StatusRange)) }
