package ump

import "github.com/laenzlinger/go-midi2/bitfield"

// Sysex7Status selects in_1/start/continue/end framing for a data64 (2-word) sysex7 message.
type Sysex7Status uint8

const (
	Sysex7In1      Sysex7Status = 0x0
	Sysex7Start    Sysex7Status = 0x1
	Sysex7Continue Sysex7Status = 0x2
	Sysex7End      Sysex7Status = 0x3
)

var (
	sysex7StatusRange   = bitfield.Range{Offset: 20, Width: 4}
	sysex7NumBytesRange = bitfield.Range{Offset: 16, Width: 4}
	sysex7W0Data1Range  = bitfield.Range{Offset: 8, Width: 8}
	sysex7W0Data2Range  = bitfield.Range{Offset: 0, Width: 8}
)

// Sysex7 is a data64-family message: up to 6 data bytes of a 7-bit sysex stream split across two
// words (2 bytes in word 0, 4 in word 1).
type Sysex7 struct {
	W0 uint32
	W1 uint32
}

// NewSysex7 builds a frame from up to 6 data bytes; extra bytes beyond numBytes are ignored.
func NewSysex7(group uint8, status Sysex7Status, data [6]byte, numBytes uint8) Sysex7 {
	w0 := withMTGroup(MTData64, group)
	w0 = bitfield.Set(w0, sysex7StatusRange, uint32(status))
	w0 = bitfield.Set8(w0, sysex7NumBytesRange, numBytes)
	w0 = bitfield.Set8(w0, sysex7W0Data1Range, data[0])
	w0 = bitfield.Set8(w0, sysex7W0Data2Range, data[1])
	w1 := uint32(data[2])<<24 | uint32(data[3])<<16 | uint32(data[4])<<8 | uint32(data[5])
	return Sysex7{w0, w1}
}

func (r Sysex7) Status() Sysex7Status { return Sysex7Status(bitfield.Get8(r.W0, sysex7StatusRange)) }
func (r Sysex7) NumBytes() uint8      { return bitfield.Get8(r.W0, sysex7NumBytesRange) }
func (r Sysex7) Data() [6]byte {
	return [6]byte{
		bitfield.Get8(r.W0, sysex7W0Data1Range),
		bitfield.Get8(r.W0, sysex7W0Data2Range),
		byte(r.W1 >> 24), byte(r.W1 >> 16), byte(r.W1 >> 8), byte(r.W1),
	}
}

func sysex7Status(word0 uint32) Sysex7Status {
	return Sysex7Status(bitfield.Get8(word0, sysex7StatusRange))
}
