package session

import (
	"net"

	"github.com/laenzlinger/go-midi2/ci"
	"github.com/laenzlinger/go-midi2/rtp"
	"github.com/laenzlinger/go-midi2/transcoder"
	"github.com/laenzlinger/go-midi2/ump"
)

type connectionState int

const (
	initial connectionState = iota
	established
	ended
)

// ciScanState tracks a peer's position in the universal-non-realtime MIDI-CI sysex framing
// (F0 7E <device_id> 0D <sub_id_2> ... F7) as it is scanned one byte at a time out of the same
// legacy MIDI 1.0 byte stream the Transcoder also consumes. MIDI-CI predates UMP, so it travels
// as ordinary sysex bytes rather than as data64 sysex7 frames.
type ciScanState int

const (
	ciIdle ciScanState = iota
	ciSawF0
	ciSaw7E
	ciSawDeviceID
	ciInMessage
)

// MIDINetworkHost identifies the remote side of a MIDINetworkStream.
type MIDINetworkHost struct {
	BonjourName string
}

// MIDINetworkStream is one peer connection within a MIDINetworkSession: the RTP sequence/SSRC
// bookkeeping for that peer, plus a private UMP transcoder so byte-stream traffic from this peer
// can be consumed as UMP words without the caller tracking running status itself.
type MIDINetworkStream struct {
	Session    *MIDINetworkSession
	Host       MIDINetworkHost
	RemoteSSRC uint32
	RemoteAddr *net.UDPAddr
	State      connectionState

	decoder   *ump.Dispatcher
	transcode *transcoder.Transcoder

	ci         *ci.Dispatcher
	ciState    ciScanState
	ciDeviceID byte
}

// End marks the stream closed and removes it from its owning session.
func (c *MIDINetworkStream) End() {
	c.State = ended
	c.Session.removeConnection(c)
}

// SendMIDIMessage writes m to the peer's UDP address.
func (c *MIDINetworkStream) SendMIDIMessage(m rtp.MIDIMessage) {
	if c.RemoteAddr == nil {
		return
	}
	pc, err := net.ListenPacket("udp", ":0")
	if err != nil {
		return
	}
	defer pc.Close()
	buf := rtp.Encode(m, c.Session.StartTime)
	pc.WriteTo(buf, c.RemoteAddr)
}

func (c *MIDINetworkStream) handleRTP(msg rtp.MIDIMessage, pc net.PacketConn, addr net.Addr) {
	c.State = established
	if c.Session.handler != nil {
		c.Session.handler(msg, c.Session)
	}
	c.feedUMP(msg)
	c.feedCI(msg)
}

// feedUMP pushes every byte of every command payload through this peer's Transcoder, draining
// decoded UMP words into a Dispatcher bound to the session's registered UMP handlers. A stream
// with no UMP handlers registered still transcodes and drains the queue; the decoded records
// simply reach no callback.
func (c *MIDINetworkStream) feedUMP(msg rtp.MIDIMessage) {
	if c.decoder == nil || c.transcode == nil {
		return
	}
	for _, cmd := range msg.Commands.Commands {
		for _, b := range cmd.Payload {
			c.transcode.Push(b)
		}
		for c.transcode.HasOutput() {
			c.decoder.Push(c.transcode.PopWord())
		}
	}
}

// feedCI scans every byte of every command payload for MIDI-CI sysex framing and, on a match,
// starts a fresh CI Dispatcher message and feeds it the bytes from the device id up to, but not
// including, the terminating 0xF7. Bytes outside a recognized CI frame are ignored by this scan; they may
// still be consumed by feedUMP's Transcoder.
func (c *MIDINetworkStream) feedCI(msg rtp.MIDIMessage) {
	if c.ci == nil {
		return
	}
	for _, cmd := range msg.Commands.Commands {
		for _, b := range cmd.Payload {
			c.ciScan(b)
		}
	}
}

func (c *MIDINetworkStream) ciScan(b byte) {
	switch c.ciState {
	case ciIdle:
		if b == 0xF0 {
			c.ciState = ciSawF0
		}
	case ciSawF0:
		if b == 0x7E {
			c.ciState = ciSaw7E
		} else {
			c.ciState = ciIdle
		}
	case ciSaw7E:
		c.ciDeviceID = b
		c.ciState = ciSawDeviceID
	case ciSawDeviceID:
		if b == 0x0D {
			c.ci.StartSysex7(0, c.ciDeviceID)
			c.ci.Push(c.ciDeviceID)
			c.ci.Push(b)
			c.ciState = ciInMessage
		} else {
			// Some other universal-non-realtime sub-id-1; not MIDI-CI, nothing to scan for.
			c.ciState = ciIdle
		}
	case ciInMessage:
		if b == 0xF7 {
			c.ciState = ciIdle
		} else {
			c.ci.Push(b)
		}
	}
}
