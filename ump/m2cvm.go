package ump

import "github.com/laenzlinger/go-midi2/bitfield"

// M2CVMStatus is the 4-bit MIDI 2 channel-voice sub-status.
type M2CVMStatus uint8

const (
	M2PerNoteRPN        M2CVMStatus = 0x0
	M2PerNoteNRPN       M2CVMStatus = 0x1
	M2BankRPN           M2CVMStatus = 0x2
	M2BankNRPN          M2CVMStatus = 0x3
	M2RelativeRPN       M2CVMStatus = 0x4
	M2RelativeNRPN      M2CVMStatus = 0x5
	M2PerNotePitchBend  M2CVMStatus = 0x6
	M2NoteOff           M2CVMStatus = 0x8
	M2NoteOn            M2CVMStatus = 0x9
	M2PolyPressure      M2CVMStatus = 0xA
	M2ControlChange     M2CVMStatus = 0xB
	M2ProgramChange     M2CVMStatus = 0xC
	M2ChannelPressure   M2CVMStatus = 0xD
	M2PitchBend         M2CVMStatus = 0xE
	M2PerNoteManagement M2CVMStatus = 0xF
)

var (
	m2StatusRange  = bitfield.Range{Offset: 20, Width: 4}
	m2ChannelRange = bitfield.Range{Offset: 16, Width: 4}
	m2Index1Range  = bitfield.Range{Offset: 8, Width: 8}
	m2Index2Range  = bitfield.Range{Offset: 0, Width: 8}
)

// M2CVM is any MIDI 2 channel-voice message: two words, a status/channel/index header word and a
// 32-bit data word.
type M2CVM struct {
	W0 uint32
	W1 uint32
}

func newM2CVM(group, channel uint8, status M2CVMStatus, index1, index2 uint8, data uint32) M2CVM {
	w0 := withMTGroup(MTM2CVM, group)
	w0 = bitfield.Set(w0, m2StatusRange, uint32(status))
	w0 = bitfield.Set8(w0, m2ChannelRange, channel&0xF)
	w0 = bitfield.Set8(w0, m2Index1Range, index1)
	w0 = bitfield.Set8(w0, m2Index2Range, index2)
	return M2CVM{w0, data}
}

func NewM2NoteOff(group, channel, note, attributeType uint8, velocity uint16, attributeData uint16) M2CVM {
	return newM2CVM(group, channel, M2NoteOff, note, attributeType, uint32(velocity)<<16|uint32(attributeData))
}
func NewM2NoteOn(group, channel, note, attributeType uint8, velocity uint16, attributeData uint16) M2CVM {
	return newM2CVM(group, channel, M2NoteOn, note, attributeType, uint32(velocity)<<16|uint32(attributeData))
}
func NewM2PolyPressure(group, channel, note uint8, pressure uint32) M2CVM {
	return newM2CVM(group, channel, M2PolyPressure, note, 0, pressure)
}
func NewM2ControlChange(group, channel, controller uint8, value uint32) M2CVM {
	return newM2CVM(group, channel, M2ControlChange, controller, 0, value)
}
func NewM2ProgramChange(group, channel uint8, bankValid bool, program, bankMSB, bankLSB uint8) M2CVM {
	flags := uint8(0)
	if bankValid {
		flags = 1
	}
	return newM2CVM(group, channel, M2ProgramChange, 0, flags, uint32(program)<<24|uint32(bankMSB)<<8|uint32(bankLSB))
}
func NewM2ChannelPressure(group, channel uint8, pressure uint32) M2CVM {
	return newM2CVM(group, channel, M2ChannelPressure, 0, 0, pressure)
}
func NewM2PitchBend(group, channel uint8, value uint32) M2CVM {
	return newM2CVM(group, channel, M2PitchBend, 0, 0, value)
}
func NewM2PerNoteRPN(group, channel, note, index uint8, data uint32) M2CVM {
	return newM2CVM(group, channel, M2PerNoteRPN, note, index, data)
}
func NewM2PerNoteNRPN(group, channel, note, index uint8, data uint32) M2CVM {
	return newM2CVM(group, channel, M2PerNoteNRPN, note, index, data)
}
func NewM2BankRPN(group, channel, bank, index uint8, data uint32) M2CVM {
	return newM2CVM(group, channel, M2BankRPN, bank, index, data)
}
func NewM2BankNRPN(group, channel, bank, index uint8, data uint32) M2CVM {
	return newM2CVM(group, channel, M2BankNRPN, bank, index, data)
}
func NewM2RelativeRPN(group, channel, bank, index uint8, data uint32) M2CVM {
	return newM2CVM(group, channel, M2RelativeRPN, bank, index, data)
}
func NewM2RelativeNRPN(group, channel, bank, index uint8, data uint32) M2CVM {
	return newM2CVM(group, channel, M2RelativeNRPN, bank, index, data)
}
func NewM2PerNotePitchBend(group, channel, note uint8, value uint32) M2CVM {
	return newM2CVM(group, channel, M2PerNotePitchBend, note, 0, value)
}
func NewM2PerNoteManagement(group, channel, note, flags uint8) M2CVM {
	return newM2CVM(group, channel, M2PerNoteManagement, note, flags, 0)
}

func (r M2CVM) Status() M2CVMStatus { return M2CVMStatus(bitfield.Get8(r.W0, m2StatusRange)) }
func (r M2CVM) Channel() uint8      { return bitfield.Get8(r.W0, m2ChannelRange) }
func (r M2CVM) Index1() uint8       { return bitfield.Get8(r.W0, m2Index1Range) }
func (r M2CVM) Index2() uint8       { return bitfield.Get8(r.W0, m2Index2Range) }
func (r M2CVM) Data() uint32        { return r.W1 }

func m2Status(word0 uint32) M2CVMStatus { return M2CVMStatus(bitfield.Get8(word0, m2StatusRange)) }
