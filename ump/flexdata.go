package ump

import "github.com/laenzlinger/go-midi2/bitfield"

// FlexDataStatus selects the concrete flex-data message shape, combining the status-bank and
// status bytes the wire format defines into one value for dispatch purposes.
type FlexDataStatus uint16

const (
	FlexSetTempo         FlexDataStatus = 0x0000
	FlexSetTimeSignature FlexDataStatus = 0x0001
	FlexSetMetronome     FlexDataStatus = 0x0002
	FlexSetKeySignature  FlexDataStatus = 0x0005
	FlexSetChordName     FlexDataStatus = 0x0006
	FlexTextCommon       FlexDataStatus = 0x0100 // status bank 1: the text-message family
)

var (
	flexAddrRange       = bitfield.Range{Offset: 22, Width: 2}
	flexChannelRange    = bitfield.Range{Offset: 16, Width: 4}
	flexStatusBankRange = bitfield.Range{Offset: 8, Width: 8}
	flexStatusRange     = bitfield.Range{Offset: 0, Width: 8}
)

// FlexData is any flex-data-family message: a header word plus three opaque data words, whose
// interpretation depends on Status.
type FlexData struct {
	W0, W1, W2, W3 uint32
}

func newFlexData(group, addr, channel uint8, status FlexDataStatus, w1, w2, w3 uint32) FlexData {
	w0 := withMTGroup(MTFlexData, group)
	w0 = bitfield.Set8(w0, flexAddrRange, addr&0x3)
	w0 = bitfield.Set8(w0, flexChannelRange, channel&0xF)
	w0 = bitfield.Set8(w0, flexStatusBankRange, byte(status>>8))
	w0 = bitfield.Set8(w0, flexStatusRange, byte(status))
	return FlexData{w0, w1, w2, w3}
}

func NewSetTempo(group uint8, tenNanosecondsPerQuarterNote uint32) FlexData {
	return newFlexData(group, 0, 0, FlexSetTempo, tenNanosecondsPerQuarterNote, 0, 0)
}
func NewSetTimeSignature(group uint8, numerator, denominator, thirtySecondNotesPerQuarter uint8) FlexData {
	w1 := uint32(numerator)<<24 | uint32(denominator)<<16 | uint32(thirtySecondNotesPerQuarter)<<8
	return newFlexData(group, 0, 0, FlexSetTimeSignature, w1, 0, 0)
}
func NewSetMetronome(group uint8, numClocksPerPrimaryClick, barAccent1, barAccent2, barAccent3,
	subdivisionClicks1, subdivisionClicks2 uint8) FlexData {
	w1 := uint32(numClocksPerPrimaryClick)<<24 | uint32(barAccent1)<<16 | uint32(barAccent2)<<8 | uint32(barAccent3)
	w2 := uint32(subdivisionClicks1)<<24 | uint32(subdivisionClicks2)<<16
	return newFlexData(group, 0, 0, FlexSetMetronome, w1, w2, 0)
}
func NewSetKeySignature(group, channel, sharpsOrFlats, tonicNote uint8) FlexData {
	w1 := uint32(sharpsOrFlats)<<24 | uint32(tonicNote)<<16
	return newFlexData(group, 0, channel, FlexSetKeySignature, w1, 0, 0)
}

// ChordAlteration is one sharp/flat degree-alteration pair within a chord-name message.
type ChordAlteration struct{ Type, Degree uint8 }

// NewSetChordName packs the tonic sharps/flats, chord tonic, chord type, the first three
// alterations, and the bass note, bass sharps/flats and bass chord type into the three data
// words. alterations[3] and bassAlterations are not encoded.
func NewSetChordName(group, channel, tonicSharpsFlats, chordTonic, chordType uint8,
	alterations [4]ChordAlteration, bassNote, bassSharpsFlats, bassChordType uint8,
	bassAlterations [2]ChordAlteration) FlexData {
	w1 := uint32(tonicSharpsFlats)<<24 | uint32(chordTonic)<<16 | uint32(chordType)<<8 |
		uint32(alterations[0].Type)
	w2 := uint32(alterations[0].Degree)<<24 | uint32(alterations[1].Type)<<16 |
		uint32(alterations[1].Degree)<<8 | uint32(alterations[2].Type)
	w3 := uint32(alterations[2].Degree)<<24 | uint32(bassNote)<<16 | uint32(bassSharpsFlats)<<8 | uint32(bassChordType)
	return newFlexData(group, 0, channel, FlexSetChordName, w1, w2, w3)
}

// TextCommon covers the whole flex-data text-message family (lyrics, titles, markers, and so on)
// as an opaque three-word payload.
func NewTextCommon(group, channel, addr uint8, status byte, payload [12]byte) FlexData {
	w1 := uint32(payload[0])<<24 | uint32(payload[1])<<16 | uint32(payload[2])<<8 | uint32(payload[3])
	w2 := uint32(payload[4])<<24 | uint32(payload[5])<<16 | uint32(payload[6])<<8 | uint32(payload[7])
	w3 := uint32(payload[8])<<24 | uint32(payload[9])<<16 | uint32(payload[10])<<8 | uint32(payload[11])
	return newFlexData(group, addr, channel, FlexDataStatus(0x0100|uint16(status)), w1, w2, w3)
}

func (r FlexData) Addr() uint8    { return bitfield.Get8(r.W0, flexAddrRange) }
func (r FlexData) Channel() uint8 { return bitfield.Get8(r.W0, flexChannelRange) }
func (r FlexData) Status() FlexDataStatus {
	return FlexDataStatus(bitfield.Get16(r.W0, bitfield.Range{Offset: 0, Width: 16}))
}

func flexStatus(word0 uint32) FlexDataStatus {
	return FlexDataStatus(bitfield.Get16(word0, bitfield.Range{Offset: 0, Width: 16}))
}
