// Package ump implements the MIDI 2.0 Universal MIDI Packet wire format: the record catalog
// (component B) and the streaming dispatcher (component C) over it.
//
// Every record is a value type backed by a fixed set of 1, 2, or 4 32-bit words. Equality over a
// record is Go's native struct equality over those words, which is byte-for-byte including
// reserved bits: a decoded record re-encodes to exactly the words it was decoded from.
package ump

import "github.com/laenzlinger/go-midi2/bitfield"

// MessageType is the top nibble of a UMP's first word; it selects the family and the word count.
type MessageType uint8

const (
	MTUtility  MessageType = 0x0
	MTSystem   MessageType = 0x1
	MTM1CVM    MessageType = 0x2
	MTData64   MessageType = 0x3
	MTM2CVM    MessageType = 0x4
	MTData128  MessageType = 0x5
	MTFlexData MessageType = 0xD
	MTStream   MessageType = 0xF
)

var mtRange = bitfield.Range{Offset: 28, Width: 4}
var groupRange = bitfield.Range{Offset: 24, Width: 4}

// WordsForMT returns the number of 32-bit words a message of the given type occupies. Reserved
// message types still have a defined size so the dispatcher can consume and report them without
// desynchronizing the stream.
func WordsForMT(mt MessageType) int {
	switch mt {
	case 0x0, 0x1, 0x2, 0x6, 0x7:
		return 1
	case 0x3, 0x4, 0x8, 0x9, 0xA:
		return 2
	case 0xB, 0xC:
		return 3
	case 0x5, 0xD, 0xE, 0xF:
		return 4
	default:
		return 1
	}
}

// MT extracts the message type nibble from a UMP's first word.
func MT(word0 uint32) MessageType { return MessageType(bitfield.Get8(word0, mtRange)) }

// Group extracts the 4-bit group field common to every family except stream.
func Group(word0 uint32) uint8 { return bitfield.Get8(word0, groupRange) }

func withMTGroup(mt MessageType, group uint8) uint32 {
	w := bitfield.Set(0, mtRange, uint32(mt))
	return bitfield.Set(w, groupRange, uint32(group))
}
