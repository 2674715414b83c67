package ump

import "github.com/laenzlinger/go-midi2/bitfield"

// UtilityStatus is the 4-bit sub-status of a utility-family (mt=0x0) message.
type UtilityStatus uint8

const (
	UtilityNoop                UtilityStatus = 0x0
	UtilityJRClock             UtilityStatus = 0x1
	UtilityJRTimestamp         UtilityStatus = 0x2
	UtilityDeltaClockstampTPQN UtilityStatus = 0x3
	UtilityDeltaClockstamp     UtilityStatus = 0x4
)

var (
	utilityStatusRange = bitfield.Range{Offset: 20, Width: 4}
	utilityData16Range = bitfield.Range{Offset: 0, Width: 16}
	utilityData20Range = bitfield.Range{Offset: 0, Width: 20}
)

// Noop is an empty utility message.
type Noop struct{ W0 uint32 }

func NewNoop(group uint8) Noop {
	w := withMTGroup(MTUtility, group)
	w = bitfield.Set(w, utilityStatusRange, uint32(UtilityNoop))
	return Noop{w}
}

// JRClock carries a 16-bit jitter-reduction clock time.
type JRClock struct{ W0 uint32 }

func NewJRClock(group uint8, senderClockTime uint16) JRClock {
	w := withMTGroup(MTUtility, group)
	w = bitfield.Set(w, utilityStatusRange, uint32(UtilityJRClock))
	w = bitfield.Set16(w, utilityData16Range, senderClockTime)
	return JRClock{w}
}
func (r JRClock) SenderClockTime() uint16 { return bitfield.Get16(r.W0, utilityData16Range) }

// JRTimestamp carries a 16-bit jitter-reduction timestamp.
type JRTimestamp struct{ W0 uint32 }

func NewJRTimestamp(group uint8, timestamp uint16) JRTimestamp {
	w := withMTGroup(MTUtility, group)
	w = bitfield.Set(w, utilityStatusRange, uint32(UtilityJRTimestamp))
	w = bitfield.Set16(w, utilityData16Range, timestamp)
	return JRTimestamp{w}
}
func (r JRTimestamp) Timestamp() uint16 { return bitfield.Get16(r.W0, utilityData16Range) }

// DeltaClockstampTPQN carries ticks-per-quarter-note resolution.
type DeltaClockstampTPQN struct{ W0 uint32 }

func NewDeltaClockstampTPQN(group uint8, ticksPerQuarterNote uint16) DeltaClockstampTPQN {
	w := withMTGroup(MTUtility, group)
	w = bitfield.Set(w, utilityStatusRange, uint32(UtilityDeltaClockstampTPQN))
	w = bitfield.Set16(w, utilityData16Range, ticksPerQuarterNote)
	return DeltaClockstampTPQN{w}
}
func (r DeltaClockstampTPQN) TicksPerQuarterNote() uint16 {
	return bitfield.Get16(r.W0, utilityData16Range)
}

// DeltaClockstamp carries a 20-bit tick count.
type DeltaClockstamp struct{ W0 uint32 }

func NewDeltaClockstamp(group uint8, ticks uint32) DeltaClockstamp {
	w := withMTGroup(MTUtility, group)
	w = bitfield.Set(w, utilityStatusRange, uint32(UtilityDeltaClockstamp))
	w = bitfield.Set(w, utilityData20Range, ticks)
	return DeltaClockstamp{w}
}
func (r DeltaClockstamp) Ticks() uint32 { return bitfield.Get(r.W0, utilityData20Range) }

func utilityStatus(word0 uint32) UtilityStatus {
	return UtilityStatus(bitfield.Get8(word0, utilityStatusRange))
}
