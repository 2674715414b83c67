package rtp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"
)

// Generic RTP constants
const (
	version2Bit  = 0x80
	extensionBit = 0x10
	paddingBit   = 0x20
	markerBit    = 0x80
	ccMask       = 0x0f
	ptMask       = 0x7f
	countMask    = 0x1f
)

// RTP-MIDI constants
const (
	minimumBufferLength = 12
)

const (
	padding   = 0x00
	extension = 0x00
	ccBits    = 0x00
	firstByte = version2Bit | padding | extension | ccBits
)

const (
	marker      = markerBit
	payloadType = 0x61
	secondByte  = payloadType
)

// MIDI List constants
const (
	deltaTimeMask    = 0x7f
	deltaTimeHasNext = 0x80
)

// rtpTick is the resolution RFC 6295 timestamps are expressed in: the sender's local clock,
// sampled at a 100 microsecond period since an arbitrary session epoch.
const rtpTick = 100 * time.Microsecond

func ticksSince(t, start time.Time) uint32 {
	return uint32(t.Sub(start) / rtpTick)
}

func encodeDeltaTime(d time.Duration, w io.Writer) {
	ticks := uint32(d / rtpTick)
	var octets [4]byte
	n := 0
	octets[n] = byte(ticks & 0x7f)
	n++
	ticks >>= 7
	for ticks > 0 {
		octets[n] = byte(ticks&0x7f) | deltaTimeHasNext
		n++
		ticks >>= 7
	}
	for i := n - 1; i >= 0; i-- {
		w.Write([]byte{octets[i]})
	}
}

// MIDIMessage represents a MIDI package exchanged over RTP.
//
// The implementation is tested only with Apple MIDI Network Driver.
//
// see https://en.wikipedia.org/wiki/RTP-MIDI
// see https://developer.apple.com/library/archive/documentation/Audio/Conceptual/MIDINetworkDriverProtocol/MIDI/MIDI.html
// see https://tools.ietf.org/html/rfc6295
/*
    0                   1                   2                   3
    0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   | V |P|X|  CC   |M|     PT      |        Sequence number        |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |                           Timestamp                           |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |                             SSRC                              |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+


   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |                     MIDI command section ...                  |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |                       Journal section ...                     |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+

*/
type RTPMIDIHeader struct {
	Version     uint8
	Padding     bool
	Extension   bool
	CSRCCount   uint8
	Marker      byte
	PayloadType uint8
}

func (h *RTPMIDIHeader) Valid() error {
	if h.PayloadType != payloadType {
		return fmt.Errorf("payload type mismatch: expected %X, got %X", payloadType, h.PayloadType)
	}
	return nil
}

func (h *RTPMIDIHeader) HasMIDIData() bool {
	return h.Marker > 0
}

type MIDIMessage struct {
	SequenceNumber uint16
	SSRC           uint32
	Commands       MIDICommands
}

// MIDICommands the list of MIDICommand sent inside a MIDIMessage
type MIDICommands struct {
	Timestamp time.Time
	Commands  []MIDICommand
}

// MIDIPayload contains the MIDI payload to be sent.
type MIDIPayload []byte

// MIDICommand represents a single command containing a DeltaTime and the Payload
type MIDICommand struct {
	DeltaTime time.Duration
	Payload   MIDIPayload
}

type MIDIListHeader struct {
	bigHeader           bool
	hasJournal          bool
	preceedingDeltaTime bool
	P                   bool
	Len                 uint16
}

// Decode a byte buffer into a MIDIMessage
func Decode(buffer []byte) (msg MIDIMessage, err error) {
	msg = MIDIMessage{}
	if len(buffer) < minimumBufferLength {
		err = fmt.Errorf("buffer is too small: %d bytes", len(buffer))
		return msg, err
	}

	offset := 0
	header := RTPMIDIHeader{}
	header.Version = (buffer[offset] & version2Bit) >> 6
	header.Padding = (buffer[offset] & paddingBit) > 0
	header.Extension = (buffer[offset] & extensionBit) > 0
	header.CSRCCount = buffer[offset] & ccMask

	offset = 1
	header.PayloadType = buffer[offset] & ptMask
	header.Marker = (buffer[offset] & markerBit) >> 7

	offset = 2
	msg.SequenceNumber = binary.BigEndian.Uint16(buffer[offset : offset+2])

	offset = 8
	msg.SSRC = binary.BigEndian.Uint32(buffer[offset : offset+4])

	err = header.Valid()
	if err != nil {
		return msg, err
	}

	// MIDI List starts at index 12 / byte 13
	offset = 12

	midiListHeader := MIDIListHeader{
		bigHeader:           buffer[offset]&bigHeaderBit > 0,
		hasJournal:          buffer[offset]&journalBit > 0,
		preceedingDeltaTime: buffer[offset]&zeroDeltaBit > 0,
	}

	listStart := offset + 1
	if midiListHeader.bigHeader {
		midiListHeader.Len = binary.BigEndian.Uint16(buffer[offset:offset+2]) & 0x0fff
		listStart = offset + 2
	} else {
		midiListHeader.Len = uint16(buffer[offset] & lenMask)
	}

	commands, err := parseMIDIList(buffer, listStart, &midiListHeader)
	if err != nil {
		fmt.Printf("[INFO] Error parsing midi list, returning parsed commands so far: %s\n", err)
	}
	msg.Commands = MIDICommands{
		Timestamp: time.Now(),
		Commands:  commands,
	}
	return msg, nil
}

func parseMIDIList(buffer []byte, offset int, header *MIDIListHeader) ([]MIDICommand, error) {
	commands := make([]MIDICommand, 0)

	var lastStatusByte byte

	end := offset + int(header.Len)
	for offset < end {
		command := MIDICommand{}
		dataLength := 0
		deltaTime := uint32(0)

		if len(commands) > 0 || header.preceedingDeltaTime {
			for k := 0; k < 4; k++ {
				currentOctet := buffer[offset]
				deltaTime <<= 7
				deltaTime |= uint32(currentOctet) & deltaTimeMask
				offset += 1
				if currentOctet&deltaTimeHasNext == 0 {
					break
				}
			}
		}
		command.DeltaTime = time.Duration(deltaTime) * rtpTick

		statusByte := buffer[offset]
		hasOwnStatusByte := (statusByte & 0x80) == 0x80
		if hasOwnStatusByte {
			lastStatusByte = statusByte
			offset += 1
		} else {
			statusByte = lastStatusByte
		}

		if statusByte == 0xf0 {
			dataLength = 0
			for len(buffer) > offset+dataLength &&
				!(buffer[offset+dataLength]&0x80 > 0x00) {
				dataLength += 1
			}
			if buffer[offset+dataLength] != 0xf7 {
				dataLength -= 1
			}
			dataLength += 1
		} else {
			dataLength = statusDataLength(statusByte)
		}

		command.Payload = []byte{statusByte}

		if len(buffer) < offset+dataLength {
			return commands, fmt.Errorf("not enough buffer data to read additional %03d command bytes", dataLength)
		}
		if dataLength > 0 {
			command.Payload = append(command.Payload, buffer[offset:offset+dataLength]...)
			offset += dataLength
		}
		if !(command.Payload[0] == 0xf0 && command.Payload[len(command.Payload)-1] != 0xf7) {
			commands = append(commands, command)
		} else {
			continue
		}
	}
	return commands, nil
}

// Encode the MIDIMessage into a byte buffer.
func Encode(m MIDIMessage, start time.Time) []byte {
	b := new(bytes.Buffer)

	b.WriteByte(firstByte)
	b.WriteByte(secondByte)
	binary.Write(b, binary.BigEndian, m.SequenceNumber)
	ts := ticksSince(m.Commands.Timestamp, start)
	binary.Write(b, binary.BigEndian, ts)
	binary.Write(b, binary.BigEndian, m.SSRC)

	m.Commands.encode(b, start)

	return b.Bytes()
}

func (m MIDIMessage) String() string {
	return fmt.Sprintf("RM SSRC=0x%x sn=%d", m.SSRC, m.SequenceNumber)
}

/*

0                   1                   2                   3
0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
|B|J|Z|P|LEN... |  MIDI list ...                                |
+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+

                  Figure 2 -- MIDI Command Section
*/

const (
	emtpyHeader  = byte(0x00)
	bigHeaderBit = 0x80 // Big Header: 2 octets
	journalBit   = 0x40 // Journal present
	zeroDeltaBit = 0x20 // DeltaTime present for first MIDI command
	phantomBit   = 0x10 // Status byte was not present in original MIDI command
	lenMask      = 0x0f // Mask for the length information
)

func (mcs MIDICommands) encode(w io.Writer, start time.Time) {
	if len(mcs.Commands) == 0 {
		w.Write([]byte{emtpyHeader})
		return
	}
	header := emtpyHeader
	b := new(bytes.Buffer)

	for i, mc := range mcs.Commands {
		if i == 0 && mc.DeltaTime > 0 {
			header = header | zeroDeltaBit
			encodeDeltaTime(mc.DeltaTime, b)
		}
		if i > 0 {
			encodeDeltaTime(mc.DeltaTime, b)
		}
		mc.Payload.encode(b)
	}

	if b.Len() > 4095 {
		// TODO split into multiple RTP packets once a caller exercises payloads this large.
	} else if b.Len() > 15 {
		header = header | bigHeaderBit | (byte(b.Len()>>8) & lenMask)
		count := byte(b.Len())
		w.Write([]byte{header, count})
	} else {
		header = header | (byte(b.Len()) & lenMask)
		w.Write([]byte{header})
	}

	w.Write(b.Bytes())
}

func (p MIDIPayload) encode(w io.Writer) {
	if len(p) == 0 {
		return
	}
	w.Write(p)
}
