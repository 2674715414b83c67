package ci

// Params carries the addressing and version information needed to build a CI message: the
// counterpart of a decoded Header, but supplied by the caller rather than recovered from the wire.
type Params struct {
	Group       uint8
	DeviceID    uint8
	Version     uint8
	Source      MUID
	Destination MUID
}

// writer bounds writes to dst, tracking how much has been used and whether a write has overrun.
// Once overrun it refuses all further writes; the partial output is not meaningful.
type writer struct {
	dst     []byte
	n       int
	overrun bool
}

func (w *writer) write(b []byte) {
	if w.overrun {
		return
	}
	if w.n+len(b) > len(w.dst) {
		w.overrun = true
		return
	}
	copy(w.dst[w.n:], b)
	w.n += len(b)
}

func (w *writer) writeByte(b byte) { w.write([]byte{b}) }

func (w *writer) writeLE7u16(v uint16) {
	w.write([]byte{byte(v & 0x7F), byte((v >> 7) & 0x7F)})
}

func (w *writer) writeLE7u32(v uint32, n int) {
	buf := make([]byte, n)
	putLE7(buf, v, n)
	w.write(buf)
}

func (w *writer) writeMUID(m MUID) {
	var buf [4]byte
	PutMUID(buf[:], m)
	w.write(buf[:])
}

// writeHeader writes the fixed 12-byte CI header (device id, sub-id-1, sub-id-2, version, source
// MUID, destination MUID), deriving sub-id-2 from id.
func writeHeader(w *writer, p Params, id MessageID) {
	w.writeByte(p.DeviceID)
	w.writeByte(subID1CI)
	w.writeByte(byte(id))
	w.writeByte(p.Version)
	w.writeMUID(p.Source)
	w.writeMUID(p.Destination)
}

// CreateMessage serializes body into dst, bounded by the length of dst, and returns the number of
// bytes written. If dst is too small the partial write is not meaningful; the caller should treat
// a returned length equal to len(dst) as "possibly truncated, discard". The universal-NRT sysex
// framing (F0 7E ... F7) is added by the caller, not by CreateMessage: this function writes
// exactly the 12-byte CI header and the message body, the same boundary the CI dispatcher's Push
// accepts.
func CreateMessage(dst []byte, p Params, body any) int {
	w := &writer{dst: dst}
	switch b := body.(type) {
	case Discovery:
		writeHeader(w, p, MsgDiscovery)
		w.write(b.Manufacturer[:])
		w.writeLE7u16(b.Family)
		w.writeLE7u16(b.Model)
		w.write(b.Version[:])
		w.writeByte(b.Capability)
		w.writeLE7u32(b.MaxSysexSize, 4)
		if p.Version != 1 {
			w.writeByte(b.OutputPathID)
		}
	case DiscoveryReply:
		writeHeader(w, p, MsgDiscoveryReply)
		w.write(b.Manufacturer[:])
		w.writeLE7u16(b.Family)
		w.writeLE7u16(b.Model)
		w.write(b.Version[:])
		w.writeByte(b.Capability)
		w.writeLE7u32(b.MaxSysexSize, 4)
		if p.Version != 1 {
			w.writeByte(b.OutputPathID)
			w.writeByte(b.FunctionBlock)
		}
	case EndpointInfo:
		writeHeader(w, p, MsgEndpointInfo)
		w.writeByte(b.Status)
	case EndpointInfoReply:
		writeHeader(w, p, MsgEndpointInfoReply)
		w.writeByte(b.Status)
		w.writeLE7u16(uint16(len(b.Information)))
		w.write(b.Information)
	case InvalidateMUID:
		writeHeader(w, p, MsgInvalidateMUID)
		w.writeMUID(b.TargetMUID)
	case ACK:
		writeHeader(w, p, MsgACK)
		writeACKTail(w, b.OriginalSubID2, b.StatusCode, b.StatusData, b.Details, b.Message)
	case NAK:
		writeHeader(w, p, MsgNAK)
		if p.Version != 1 {
			writeACKTail(w, b.OriginalSubID2, b.StatusCode, b.StatusData, b.Details, b.Message)
		}
	case ProfileAdded:
		writeHeader(w, p, MsgProfileAdded)
		w.write(b.Profile[:])
	case ProfileRemoved:
		writeHeader(w, p, MsgProfileRemoved)
		w.write(b.Profile[:])
	case ProfileInquiry:
		writeHeader(w, p, MsgProfileInquiry)
	case ProfileInquiryReply:
		writeHeader(w, p, MsgProfileInquiryReply)
		w.writeLE7u16(uint16(len(b.Enabled)))
		for _, id := range b.Enabled {
			w.write(id[:])
		}
		w.writeLE7u16(uint16(len(b.Disabled)))
		for _, id := range b.Disabled {
			w.write(id[:])
		}
	case ProfileOn:
		writeHeader(w, p, MsgProfileSetOn)
		w.write(b.Profile[:])
		if p.Version != 1 {
			w.writeLE7u16(b.NumChannels)
		}
	case ProfileOff:
		writeHeader(w, p, MsgProfileSetOff)
		w.write(b.Profile[:])
		if p.Version != 1 {
			w.writeLE7u16(b.NumChannels)
		}
	case ProfileEnabled:
		writeHeader(w, p, MsgProfileEnabled)
		w.write(b.Profile[:])
		if p.Version != 1 {
			w.writeLE7u16(b.NumChannels)
		}
	case ProfileDisabled:
		writeHeader(w, p, MsgProfileDisabled)
		w.write(b.Profile[:])
		if p.Version != 1 {
			w.writeLE7u16(b.NumChannels)
		}
	case ProfileDetails:
		writeHeader(w, p, MsgProfileDetails)
		w.write(b.Profile[:])
		w.writeByte(b.Target)
	case ProfileDetailsReply:
		writeHeader(w, p, MsgProfileDetailsReply)
		w.write(b.Profile[:])
		w.writeByte(b.Target)
		w.writeLE7u16(uint16(len(b.Data)))
		w.write(b.Data)
	case ProfileSpecificData:
		writeHeader(w, p, MsgProfileSpecificData)
		w.write(b.Profile[:])
		w.writeLE7u32(uint32(len(b.Data)), 4)
		w.write(b.Data)
	case PECapabilities:
		writeHeader(w, p, MsgPECapability)
		w.writeByte(b.MaxRequests)
		if p.Version != 1 {
			w.writeByte(b.MajorVersion)
			w.writeByte(b.MinorVersion)
		}
	case PECapabilitiesReply:
		writeHeader(w, p, MsgPECapabilityReply)
		w.writeByte(b.MaxRequests)
		if p.Version != 1 {
			w.writeByte(b.MajorVersion)
			w.writeByte(b.MinorVersion)
		}
	case PropertyExchangeMessage:
		writeHeader(w, p, b.id)
		writePropertyExchange(w, b.PropertyExchange)
	case PIProcessInquiryCapabilities:
		writeHeader(w, p, MsgPICapability)
	case PIProcessInquiryCapabilitiesReply:
		writeHeader(w, p, MsgPICapabilityReply)
		if p.Version != 1 {
			w.writeByte(b.SupportedFeatures)
		}
	case PIMIDIMessageReport:
		writeHeader(w, p, MsgPIMMReport)
		if p.Version != 1 {
			w.writeByte(b.MessageDataControl)
			w.writeByte(b.RequestedTypes)
		}
	case PIMIDIMessageReportReply:
		writeHeader(w, p, MsgPIMMReportReply)
		if p.Version != 1 {
			w.writeByte(b.ReportedTypes)
		}
	case PIMIDIMessageReportEnd:
		writeHeader(w, p, MsgPIMMReportEnd)
	}
	if w.overrun {
		return len(dst)
	}
	return w.n
}

func writeACKTail(w *writer, origSubID2, statusCode, statusData byte, details [5]byte, message []byte) {
	w.writeByte(origSubID2)
	w.writeByte(statusCode)
	w.writeByte(statusData)
	w.write(details[:])
	w.writeLE7u16(uint16(len(message)))
	w.write(message)
}

// PropertyExchangeMessage tags a PropertyExchange body with the concrete message it should be
// encoded as -- the seven PE messages share one wire shape but still need distinct sub-id-2
// values.
type PropertyExchangeMessage struct {
	PropertyExchange
	id MessageID
}

func NewPEGet(pe PropertyExchange) PropertyExchangeMessage {
	return PropertyExchangeMessage{pe, MsgPEGet}
}
func NewPEGetReply(pe PropertyExchange) PropertyExchangeMessage {
	return PropertyExchangeMessage{pe, MsgPEGetReply}
}
func NewPESet(pe PropertyExchange) PropertyExchangeMessage {
	return PropertyExchangeMessage{pe, MsgPESet}
}
func NewPESetReply(pe PropertyExchange) PropertyExchangeMessage {
	return PropertyExchangeMessage{pe, MsgPESetReply}
}
func NewPESubscribe(pe PropertyExchange) PropertyExchangeMessage {
	return PropertyExchangeMessage{pe, MsgPESub}
}
func NewPESubscribeReply(pe PropertyExchange) PropertyExchangeMessage {
	return PropertyExchangeMessage{pe, MsgPESubReply}
}
func NewPENotify(pe PropertyExchange) PropertyExchangeMessage {
	return PropertyExchangeMessage{pe, MsgPENotify}
}

func writePropertyExchange(w *writer, pe PropertyExchange) {
	w.writeByte(pe.RequestID)
	w.writeLE7u16(pe.NumChunks)
	w.writeLE7u16(pe.ChunkNumber)
	w.writeLE7u16(uint16(len(pe.Header)))
	w.write(pe.Header)
	w.writeLE7u16(uint16(len(pe.Data)))
	w.write(pe.Data)
}
