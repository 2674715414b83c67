// Package session manages RTP-MIDI network sessions: peer bookkeeping, the inbound UDP read loop,
// and feeding received MIDI 1.0 byte traffic through a UMP transcoder for callers that want to
// operate on Universal MIDI Packets rather than raw bytes.
package session

import (
	"encoding/hex"
	"fmt"
	"log"
	"math/rand"
	"net"
	"sync"
	"time"

	"github.com/laenzlinger/go-midi2/ci"
	"github.com/laenzlinger/go-midi2/rtp"
	"github.com/laenzlinger/go-midi2/scale"
	"github.com/laenzlinger/go-midi2/transcoder"
	"github.com/laenzlinger/go-midi2/ump"
)

// MIDINetworkSession can offer or accept streams.
type MIDINetworkSession struct {
	LocalName      string
	BonjourName    string
	Port           uint16
	SSRC           uint32
	SequenceNumber uint16
	StartTime      time.Time
	connections    sync.Map
	handler        MIDIMessageHandlerFunc
	umpHandlers    ump.Handlers
	ciHandlers     ci.Handlers
}

type MIDIMessageHandlerFunc func(rtp.MIDIMessage, *MIDINetworkSession)

type MIDIMessageHandler interface {
	HandleMIDI(rtp.MIDIMessage, *MIDINetworkSession)
}

// Start begins a new session, listening for RTP-MIDI traffic on port and the control port below it
// is intentionally not opened: this session accepts peers explicitly via AddPeer rather than
// negotiating an AppleMIDI invitation handshake.
func Start(bonjourName string, port uint16) (s *MIDINetworkSession) {
	session := MIDINetworkSession{
		BonjourName:    bonjourName,
		SSRC:           rand.Uint32(),
		Port:           port,
		StartTime:      time.Now(),
		SequenceNumber: uint16(rand.Int()),
	}

	go messageLoop(port, &session)

	return &session
}

// Handle registers the callback invoked for every decoded MIDIMessage.
func (s *MIDINetworkSession) Handle(handler MIDIMessageHandlerFunc) {
	s.handler = handler
}

// HandleUMP registers the UMP handler set driven by every byte of every received MIDI command
// payload, transcoded through a per-peer Transcoder.
func (s *MIDINetworkSession) HandleUMP(h ump.Handlers) {
	s.umpHandlers = h
}

// HandleCI registers the MIDI-CI handler set driven by sysex frames recognized within every
// received MIDI command payload, via a per-peer CI Dispatcher.
func (s *MIDINetworkSession) HandleCI(h ci.Handlers) {
	s.ciHandlers = h
}

// AddPeer registers a remote endpoint this session will send to and accept packets from.
func (s *MIDINetworkSession) AddPeer(name string, ssrc uint32, addr *net.UDPAddr) *MIDINetworkStream {
	conn := &MIDINetworkStream{
		Session:    s,
		Host:       MIDINetworkHost{BonjourName: name},
		RemoteSSRC: ssrc,
		RemoteAddr: addr,
		decoder:    ump.NewDispatcher(s.umpHandlers),
		transcode:  transcoder.New(0),
		ci:         ci.NewDispatcher(s.ciHandlers),
	}
	s.connections.Store(ssrc, conn)
	return conn
}

// End is ending a session
func (s *MIDINetworkSession) End() {
	s.connections.Range(func(k, v interface{}) bool {
		v.(*MIDINetworkStream).End()
		return true
	})
}

// SendUMP encodes a single-word UMP record back into a MIDI 1.0 byte-stream command and sends it
// to every connected peer, the reverse of the per-peer Transcoder HandleUMP drains. Only MIDI 1
// channel-voice words are supported; any other message type is silently dropped rather than
// guessed at, since no byte-stream mapping is defined for the other families here.
func (s *MIDINetworkSession) SendUMP(word uint32) {
	if ump.MT(word) != ump.MTM1CVM {
		return
	}
	r := ump.M1CVM{W0: word}
	status := byte(r.Status())<<4 | r.Channel()
	switch r.Status() {
	case ump.M1ProgramChange, ump.M1ChannelPressure:
		s.SendMIDIPayload([]byte{status, r.Data1()})
	default:
		s.SendMIDIPayload([]byte{status, r.Data1(), r.Data2()})
	}
}

// SendUMP2 down-translates a two-word MIDI 2 channel-voice record to its MIDI 1.0 byte-stream
// equivalent and sends it to every connected peer. Only the shapes with a lossless-enough MIDI 1
// counterpart are covered: note on/off (velocity rescaled 16-to-7), poly pressure and control
// change and channel pressure (values rescaled 32-to-7), program change, and pitch bend (rescaled
// 32-to-14). The MIDI-2-only shapes (per-note controllers and management, relative and bank
// RPN/NRPN) have no byte-stream mapping and are dropped.
func (s *MIDINetworkSession) SendUMP2(r ump.M2CVM) {
	ch := byte(r.Channel())
	switch r.Status() {
	case ump.M2NoteOff, ump.M2NoteOn:
		status := byte(0x80) | ch
		if r.Status() == ump.M2NoteOn {
			status = 0x90 | ch
		}
		velocity := byte(scale.MCM(r.Data()>>16, 16, 7))
		s.SendMIDIPayload([]byte{status, r.Index1() & 0x7F, velocity})
	case ump.M2PolyPressure:
		s.SendMIDIPayload([]byte{0xA0 | ch, r.Index1() & 0x7F, byte(scale.MCM(r.Data(), 32, 7))})
	case ump.M2ControlChange:
		s.SendMIDIPayload([]byte{0xB0 | ch, r.Index1() & 0x7F, byte(scale.MCM(r.Data(), 32, 7))})
	case ump.M2ProgramChange:
		s.SendMIDIPayload([]byte{0xC0 | ch, byte(r.Data()>>24) & 0x7F})
	case ump.M2ChannelPressure:
		s.SendMIDIPayload([]byte{0xD0 | ch, byte(scale.MCM(r.Data(), 32, 7))})
	case ump.M2PitchBend:
		bend := scale.MCM(r.Data(), 32, 14)
		s.SendMIDIPayload([]byte{0xE0 | ch, byte(bend & 0x7F), byte((bend >> 7) & 0x7F)})
	}
}

// SendMIDIPayload sends the MIDI payload immediately to all MIDINetworkStreams
func (s *MIDINetworkSession) SendMIDIPayload(payload []byte) {
	mcs := rtp.MIDICommands{
		Timestamp: time.Now(),
		Commands:  []rtp.MIDICommand{{Payload: payload}},
	}
	s.SendMIDICommands(mcs)
}

// SendMIDICommands sends the commands to all MIDINetworkStreams
func (s *MIDINetworkSession) SendMIDICommands(mcs rtp.MIDICommands) {
	s.SequenceNumber++
	m := rtp.MIDIMessage{
		SequenceNumber: s.SequenceNumber,
		SSRC:           s.SSRC,
		Commands:       mcs,
	}
	s.connections.Range(func(k, v interface{}) bool {
		v.(*MIDINetworkStream).SendMIDIMessage(m)
		return true
	})
}

func messageLoop(port uint16, s *MIDINetworkSession) {
	pc, mcErr := net.ListenPacket("udp", fmt.Sprintf(":%d", port))
	if mcErr != nil {
		panic(mcErr)
	}
	defer pc.Close()
	buffer := make([]byte, 1024)
	for {
		n, addr, err := pc.ReadFrom(buffer)
		if err != nil {
			fmt.Println(err)
			continue
		}

		msg, err := rtp.Decode(buffer[:n])
		if err != nil {
			fmt.Println(err)
			fmt.Println(hex.Dump(buffer[:n]))
			continue
		}
		conn, found := s.loadMIDIConnection(msg)
		if found {
			conn.handleRTP(msg, pc, addr)
		}
	}
}

func (s *MIDINetworkSession) loadMIDIConnection(msg rtp.MIDIMessage) (c *MIDINetworkStream, found bool) {
	conn, found := s.connections.Load(msg.SSRC)
	if !found {
		log.Printf("Connection to SSRC [%x] not found", msg.SSRC)
		return nil, false
	}
	return conn.(*MIDINetworkStream), found
}

func (s *MIDINetworkSession) removeConnection(conn *MIDINetworkStream) {
	log.Printf("Connection ended by remote participant SSRC [%x]", conn.RemoteSSRC)
	s.connections.Delete(conn.RemoteSSRC)
}
