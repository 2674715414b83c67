package ci

const bufferCapacity = 512

type descriptor struct {
	v1Size       int
	v2Size       int
	continuation func(d *Dispatcher)
}

// Dispatcher is a byte-accumulating state machine for the MIDI-CI wire protocol (component E). It
// holds no dynamically allocated state: a fixed 512-byte buffer, a handful of counters, and the
// handler set it was constructed with.
//
// A Dispatcher is not safe for concurrent use, and a handler callback must not call Push on the
// same Dispatcher it was invoked from.
type Dispatcher struct {
	handlers Handlers

	buf      [bufferCapacity]byte
	pos      int // bytes written since the last start-of-message reset
	count    int // bytes remaining to complete the current segment
	consumer func(d *Dispatcher)
	discard  bool

	group    uint8
	deviceID uint8
	header   Header
	segBase  int // offset in buf where the current segment's fixed part starts
	phase    int // sub-state within a multi-phase continuation

	// scratchOff/scratchLen remember an earlier phase's blob boundaries (within buf) when a later
	// phase needs them alongside its own segment, e.g. profile_inquiry_reply's enabled-ids array
	// while reading the disabled-ids count, or property-exchange's header blob while reading the
	// data blob.
	scratchOff int
	scratchLen int
}

// NewDispatcher constructs a Dispatcher bound to the given handler set. The dispatcher starts in
// the discard state; call StartSysex7 to begin a message.
func NewDispatcher(h Handlers) *Dispatcher {
	d := &Dispatcher{handlers: h}
	d.discard = true
	return d
}

// StartSysex7 resets the dispatcher to begin decoding a new CI message on the given group, sent
// to (or from, for addressing purposes) the given device id.
func (d *Dispatcher) StartSysex7(group, deviceID uint8) {
	d.group = group
	d.deviceID = deviceID
	d.pos = 0
	d.segBase = 0
	d.phase = 0
	d.discard = false
	d.count = HeaderSize
	d.consumer = (*Dispatcher).onHeader
}

// Push feeds one byte of the CI payload: everything after the 0xF0 0x7E framing, from the device
// id up to but not including the terminating 0xF7.
func (d *Dispatcher) Push(b byte) {
	if d.discard {
		return
	}
	if d.count == 0 {
		// Nothing expected right now; ignore (should not happen with a correct consumer chain).
		return
	}
	if d.pos >= bufferCapacity {
		d.overflow()
		return
	}
	d.buf[d.pos] = b
	d.pos++
	d.count--
	if d.count == 0 {
		d.consumer(d)
	}
}

func (d *Dispatcher) overflow() {
	d.discard = true
	if d.handlers.System.BufferOverflow != nil {
		d.handlers.System.BufferOverflow()
	}
}

func (d *Dispatcher) finish() {
	d.discard = true
}

// beginSegment arms the dispatcher to accumulate n more bytes (which may be zero, in which case
// the continuation runs immediately) before invoking cont. It does not reset pos: segments land
// contiguously, and only StartSysex7 or overflow ever reset pos.
func (d *Dispatcher) beginSegment(n int, cont func(d *Dispatcher)) {
	d.segBase = d.pos
	d.consumer = cont
	if n == 0 {
		cont(d)
		return
	}
	d.count = n
}

func (d *Dispatcher) onHeader() {
	buf := d.buf[0:HeaderSize]
	deviceID := buf[0]
	// buf[1] is sub-id-1 (0x0D), not re-validated here: the caller already routed this payload to
	// the CI dispatcher by recognizing the universal-NRT + sub-id-1 framing.
	subID2 := MessageID(buf[2])
	version := buf[3]
	source := GetMUID(buf[4:8])
	dest := GetMUID(buf[8:12])

	d.header = Header{
		Group:       d.group,
		DeviceID:    deviceID,
		Version:     version,
		Source:      source,
		Destination: dest,
		Message:     subID2,
	}

	desc, ok := catalog[subID2]
	if !ok {
		if d.handlers.System.UnknownMIDICI != nil {
			d.handlers.System.UnknownMIDICI(d.header)
		}
		d.finish()
		return
	}
	if !d.header.Broadcast() {
		ok := d.handlers.System.CheckMUID != nil && d.handlers.System.CheckMUID(d.group, dest)
		if !ok {
			d.finish()
			return
		}
	}

	size := desc.v1Size
	if version != 1 {
		size = desc.v2Size
	}
	d.phase = 0
	d.beginSegment(size, desc.continuation)
}

// seg returns the bytes of the current segment's fixed part, from segBase to pos.
func (d *Dispatcher) seg() []byte { return d.buf[d.segBase:d.pos] }

func le7u16(b []byte) uint16 { return uint16(b[0]&0x7F) | uint16(b[1]&0x7F)<<7 }
func le7u32_4(b []byte) uint32 {
	return uint32(b[0]&0x7F) | uint32(b[1]&0x7F)<<7 | uint32(b[2]&0x7F)<<14 | uint32(b[3]&0x7F)<<21
}
func putLE7u16(dst []byte, v uint16) { dst[0] = byte(v & 0x7F); dst[1] = byte((v >> 7) & 0x7F) }
