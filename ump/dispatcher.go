package ump

// Dispatcher is the streaming UMP state machine (component C). It accumulates 32-bit words,
// classifies each completed message by its message-type nibble, and dispatches a decoded record
// to the matching handler.
//
// A Dispatcher never fails: an unrecognized sub-status or reserved message type is reported via
// Handlers.Utility.Unknown, never as a Go error. Any word sequence is legal input.
type Dispatcher struct {
	handlers Handlers
	buf      [4]uint32
	pos      int
}

// NewDispatcher constructs a Dispatcher bound to the given handler set.
func NewDispatcher(h Handlers) *Dispatcher { return &Dispatcher{handlers: h} }

// Push feeds one 32-bit word. It synchronously invokes at most one handler callback: exactly one
// when word completes a message, none otherwise.
func (d *Dispatcher) Push(word uint32) {
	d.buf[d.pos] = word
	d.pos++

	mt := MT(d.buf[0])
	n := WordsForMT(mt)
	if d.pos < n {
		return
	}
	d.decode(mt, n)
	d.pos = 0
}

// PushRecord feeds every word of a typed record, in order, as a convenience over repeated Push
// calls.
func (d *Dispatcher) PushRecord(words ...uint32) {
	for _, w := range words {
		d.Push(w)
	}
}

func (d *Dispatcher) decode(mt MessageType, n int) {
	words := d.buf[:n]
	switch mt {
	case MTUtility:
		d.decodeUtility(words[0])
	case MTSystem:
		d.decodeSystem(words[0])
	case MTM1CVM:
		d.decodeM1CVM(words[0])
	case MTData64:
		d.decodeData64(words[0], words[1])
	case MTM2CVM:
		d.decodeM2CVM(words[0], words[1])
	case MTData128:
		d.decodeData128(words[0], words[1], words[2], words[3])
	case MTFlexData:
		d.decodeFlexData(words[0], words[1], words[2], words[3])
	case MTStream:
		d.decodeStream(words[0], words[1], words[2], words[3])
	default:
		d.unknown(words)
	}
}

func (d *Dispatcher) unknown(words []uint32) {
	if f := d.handlers.Utility.Unknown; f != nil {
		cp := make([]uint32, len(words))
		copy(cp, words)
		f(cp)
	}
}

func (d *Dispatcher) decodeUtility(w0 uint32) {
	h := d.handlers.Utility
	switch utilityStatus(w0) {
	case UtilityNoop:
		if h.Noop != nil {
			h.Noop(Noop{w0})
		}
	case UtilityJRClock:
		if h.JRClock != nil {
			h.JRClock(JRClock{w0})
		}
	case UtilityJRTimestamp:
		if h.JRTimestamp != nil {
			h.JRTimestamp(JRTimestamp{w0})
		}
	case UtilityDeltaClockstampTPQN:
		if h.DeltaClockstampTPQN != nil {
			h.DeltaClockstampTPQN(DeltaClockstampTPQN{w0})
		}
	case UtilityDeltaClockstamp:
		if h.DeltaClockstamp != nil {
			h.DeltaClockstamp(DeltaClockstamp{w0})
		}
	default:
		d.unknown([]uint32{w0})
	}
}

func (d *Dispatcher) decodeSystem(w0 uint32) {
	h := d.handlers.System
	r := System{w0}
	switch systemStatus(w0) {
	case SystemMIDITimeCode:
		call(h.MIDITimeCode, r)
	case SystemSongPositionPointer:
		call(h.SongPositionPointer, r)
	case SystemSongSelect:
		call(h.SongSelect, r)
	case SystemTuneRequest:
		call(h.TuneRequest, r)
	case SystemTimingClock:
		call(h.TimingClock, r)
	case SystemSequenceStart:
		call(h.SequenceStart, r)
	case SystemSequenceContinue:
		call(h.SequenceContinue, r)
	case SystemSequenceStop:
		call(h.SequenceStop, r)
	case SystemActiveSensing:
		call(h.ActiveSensing, r)
	case SystemReset:
		call(h.Reset, r)
	default:
		d.unknown([]uint32{w0})
	}
}

func (d *Dispatcher) decodeM1CVM(w0 uint32) {
	h := d.handlers.M1CVM
	r := M1CVM{w0}
	switch m1Status(w0) {
	case M1NoteOff:
		call(h.NoteOff, r)
	case M1NoteOn:
		call(h.NoteOn, r)
	case M1PolyPressure:
		call(h.PolyPressure, r)
	case M1ControlChange:
		call(h.ControlChange, r)
	case M1ProgramChange:
		call(h.ProgramChange, r)
	case M1ChannelPressure:
		call(h.ChannelPressure, r)
	case M1PitchBend:
		call(h.PitchBend, r)
	default:
		d.unknown([]uint32{w0})
	}
}

func (d *Dispatcher) decodeM2CVM(w0, w1 uint32) {
	h := d.handlers.M2CVM
	r := M2CVM{w0, w1}
	switch m2Status(w0) {
	case M2NoteOff:
		call(h.NoteOff, r)
	case M2NoteOn:
		call(h.NoteOn, r)
	case M2PolyPressure:
		call(h.PolyPressure, r)
	case M2ControlChange:
		call(h.ControlChange, r)
	case M2ProgramChange:
		call(h.ProgramChange, r)
	case M2ChannelPressure:
		call(h.ChannelPressure, r)
	case M2PitchBend:
		call(h.PitchBend, r)
	case M2PerNoteRPN:
		call(h.PerNoteRPN, r)
	case M2PerNoteNRPN:
		call(h.PerNoteNRPN, r)
	case M2BankRPN:
		call(h.BankRPN, r)
	case M2BankNRPN:
		call(h.BankNRPN, r)
	case M2RelativeRPN:
		call(h.RelativeRPN, r)
	case M2RelativeNRPN:
		call(h.RelativeNRPN, r)
	case M2PerNotePitchBend:
		call(h.PerNotePitchBend, r)
	case M2PerNoteManagement:
		call(h.PerNoteManagement, r)
	default:
		d.unknown([]uint32{w0, w1})
	}
}

func (d *Dispatcher) decodeData64(w0, w1 uint32) {
	h := d.handlers.Data64
	r := Sysex7{w0, w1}
	switch sysex7Status(w0) {
	case Sysex7In1:
		call(h.Sysex7In1, r)
	case Sysex7Start:
		call(h.Sysex7Start, r)
	case Sysex7Continue:
		call(h.Sysex7Continue, r)
	case Sysex7End:
		call(h.Sysex7End, r)
	default:
		d.unknown([]uint32{w0, w1})
	}
}

func (d *Dispatcher) decodeData128(w0, w1, w2, w3 uint32) {
	h := d.handlers.Data128
	switch data128Status(w0) {
	case Sysex8In1:
		call(h.Sysex8In1, Sysex8{w0, w1, w2, w3})
	case Sysex8Start:
		call(h.Sysex8Start, Sysex8{w0, w1, w2, w3})
	case Sysex8Continue:
		call(h.Sysex8Continue, Sysex8{w0, w1, w2, w3})
	case Sysex8End:
		call(h.Sysex8End, Sysex8{w0, w1, w2, w3})
	case MDSHeader:
		call(h.MDSHeader, MDSHeaderFrame{w0, w1, w2, w3})
	case MDSPayload:
		call(h.MDSPayload, MDSPayloadFrame{w0, w1, w2, w3})
	default:
		d.unknown([]uint32{w0, w1, w2, w3})
	}
}

func (d *Dispatcher) decodeFlexData(w0, w1, w2, w3 uint32) {
	h := d.handlers.FlexData
	r := FlexData{w0, w1, w2, w3}
	switch flexStatus(w0) {
	case FlexSetTempo:
		call(h.SetTempo, r)
	case FlexSetTimeSignature:
		call(h.SetTimeSignature, r)
	case FlexSetMetronome:
		call(h.SetMetronome, r)
	case FlexSetKeySignature:
		call(h.SetKeySignature, r)
	case FlexSetChordName:
		call(h.SetChordName, r)
	default:
		if r.Status()&0xFF00 == FlexTextCommon {
			call(h.TextCommon, r)
			return
		}
		d.unknown([]uint32{w0, w1, w2, w3})
	}
}

func (d *Dispatcher) decodeStream(w0, w1, w2, w3 uint32) {
	h := d.handlers.Stream
	r := Stream{w0, w1, w2, w3}
	switch streamStatus(w0) {
	case StreamEndpointDiscovery:
		call(h.EndpointDiscovery, r)
	case StreamEndpointInfoNotification:
		call(h.EndpointInfoNotification, r)
	case StreamDeviceIdentityNotification:
		call(h.DeviceIdentityNotification, r)
	case StreamEndpointNameNotification:
		call(h.EndpointNameNotification, r)
	case StreamProductInstanceIDNotification:
		call(h.ProductInstanceIDNotification, r)
	case StreamJRConfigurationRequest:
		call(h.JRConfigurationRequest, r)
	case StreamJRConfigurationNotification:
		call(h.JRConfigurationNotification, r)
	case StreamFunctionBlockDiscovery:
		call(h.FunctionBlockDiscovery, r)
	case StreamFunctionBlockInfoNotification:
		call(h.FunctionBlockInfoNotification, r)
	case StreamFunctionBlockNameNotification:
		call(h.FunctionBlockNameNotification, r)
	case StreamStartOfClip:
		call(h.StartOfClip, r)
	case StreamEndOfClip:
		call(h.EndOfClip, r)
	default:
		d.unknown([]uint32{w0, w1, w2, w3})
	}
}

// call invokes f with arg if f is non-nil.
func call[T any](f func(T), arg T) {
	if f != nil {
		f(arg)
	}
}
