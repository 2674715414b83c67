package ci

// This file implements the per-message continuations and the static dispatch table that routes a
// decoded header to one. Every continuation reads its fixed-size prefix via fixedBytes, which is
// always anchored at HeaderSize: pos never resets between a message's own segments, so the body's
// fixed bytes stay put for the lifetime of the message regardless of how many blob phases follow.

func (d *Dispatcher) fixedBytes(n int) []byte { return d.buf[HeaderSize : HeaderSize+n] }

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

var catalog map[MessageID]descriptor

func init() {
	catalog = map[MessageID]descriptor{
		MsgDiscovery:           {16, 17, contDiscovery},
		MsgDiscoveryReply:      {16, 18, contDiscoveryReply},
		MsgEndpointInfo:        {1, 1, contEndpointInfo},
		MsgEndpointInfoReply:   {3, 3, contEndpointInfoReply},
		MsgInvalidateMUID:      {4, 4, contInvalidateMUID},
		MsgACK:                 {10, 10, contACK},
		MsgNAK:                 {0, 10, contNAK},
		MsgProfileInquiry:      {0, 0, contProfileInquiry},
		MsgProfileInquiryReply: {2, 2, contProfileInquiryReply},
		MsgProfileSetOn:        {5, 7, contProfileOn},
		MsgProfileSetOff:       {5, 7, contProfileOff},
		MsgProfileEnabled:      {5, 7, contProfileEnabled},
		MsgProfileDisabled:     {5, 7, contProfileDisabled},
		MsgProfileAdded:        {5, 5, contProfileAdded},
		MsgProfileRemoved:      {5, 5, contProfileRemoved},
		MsgProfileDetails:      {6, 6, contProfileDetails},
		MsgProfileDetailsReply: {8, 8, contProfileDetailsReply},
		MsgProfileSpecificData: {9, 9, contProfileSpecificData},
		MsgPECapability:        {1, 3, contPECapability},
		MsgPECapabilityReply:   {1, 3, contPECapabilityReply},
		MsgPEGet:               {7, 7, contPEGet},
		MsgPEGetReply:          {7, 7, contPEGetReply},
		MsgPESet:               {7, 7, contPESet},
		MsgPESetReply:          {7, 7, contPESetReply},
		MsgPESub:               {7, 7, contPESub},
		MsgPESubReply:          {7, 7, contPESubReply},
		MsgPENotify:            {7, 7, contPENotify},
		MsgPICapability:        {0, 0, contPICapability},
		MsgPICapabilityReply:   {0, 1, contPICapabilityReply},
		MsgPIMMReport:          {0, 2, contPIMMReport},
		MsgPIMMReportReply:     {0, 1, contPIMMReportReply},
		MsgPIMMReportEnd:       {0, 0, contPIMMReportEnd},
	}
}

// --- management -------------------------------------------------------------------------------

func discoverySize(v uint8) int {
	if v == 1 {
		return 16
	}
	return 17
}

func contDiscovery(d *Dispatcher) {
	b := d.fixedBytes(discoverySize(d.header.Version))
	var body Discovery
	copy(body.Manufacturer[:], b[0:3])
	body.Family = le7u16(b[3:5])
	body.Model = le7u16(b[5:7])
	copy(body.Version[:], b[7:11])
	body.Capability = b[11]
	body.MaxSysexSize = le7u32_4(b[12:16])
	if len(b) > 16 {
		body.OutputPathID = b[16]
	}
	if f := d.handlers.Management.Discovery; f != nil {
		f(d.header, body)
	}
	d.finish()
}

func contDiscoveryReply(d *Dispatcher) {
	size := 16
	if d.header.Version != 1 {
		size = 18
	}
	b := d.fixedBytes(size)
	var body DiscoveryReply
	copy(body.Manufacturer[:], b[0:3])
	body.Family = le7u16(b[3:5])
	body.Model = le7u16(b[5:7])
	copy(body.Version[:], b[7:11])
	body.Capability = b[11]
	body.MaxSysexSize = le7u32_4(b[12:16])
	if len(b) > 16 {
		body.OutputPathID = b[16]
	}
	if len(b) > 17 {
		body.FunctionBlock = b[17]
	}
	if f := d.handlers.Management.DiscoveryReply; f != nil {
		f(d.header, body)
	}
	d.finish()
}

func contEndpointInfo(d *Dispatcher) {
	b := d.fixedBytes(1)
	body := EndpointInfo{Status: b[0]}
	if f := d.handlers.Management.EndpointInfo; f != nil {
		f(d.header, body)
	}
	d.finish()
}

func contEndpointInfoReply(d *Dispatcher) {
	switch d.phase {
	case 0:
		fixed := d.fixedBytes(3)
		length := int(le7u16(fixed[1:3]))
		d.phase = 1
		d.beginSegment(length, contEndpointInfoReply)
	case 1:
		blob := d.seg()
		fixed := d.fixedBytes(3)
		body := EndpointInfoReply{Status: fixed[0], Information: cloneBytes(blob)}
		if f := d.handlers.Management.EndpointInfoReply; f != nil {
			f(d.header, body)
		}
		d.finish()
	}
}

func contInvalidateMUID(d *Dispatcher) {
	b := d.fixedBytes(4)
	body := InvalidateMUID{TargetMUID: GetMUID(b)}
	if f := d.handlers.Management.InvalidateMUID; f != nil {
		f(d.header, body)
	}
	d.finish()
}

func contACK(d *Dispatcher) {
	switch d.phase {
	case 0:
		fixed := d.fixedBytes(10)
		length := int(le7u16(fixed[8:10]))
		d.phase = 1
		d.beginSegment(length, contACK)
	case 1:
		blob := d.seg()
		fixed := d.fixedBytes(10)
		var body ACK
		body.OriginalSubID2 = fixed[0]
		body.StatusCode = fixed[1]
		body.StatusData = fixed[2]
		copy(body.Details[:], fixed[3:8])
		body.Message = cloneBytes(blob)
		if f := d.handlers.Management.ACK; f != nil {
			f(d.header, body)
		}
		d.finish()
	}
}

func contNAK(d *Dispatcher) {
	if d.header.Version == 1 {
		if f := d.handlers.Management.NAK; f != nil {
			f(d.header, NAK{})
		}
		d.finish()
		return
	}
	switch d.phase {
	case 0:
		fixed := d.fixedBytes(10)
		length := int(le7u16(fixed[8:10]))
		d.phase = 1
		d.beginSegment(length, contNAK)
	case 1:
		blob := d.seg()
		fixed := d.fixedBytes(10)
		var body NAK
		body.OriginalSubID2 = fixed[0]
		body.StatusCode = fixed[1]
		body.StatusData = fixed[2]
		copy(body.Details[:], fixed[3:8])
		body.Message = cloneBytes(blob)
		if f := d.handlers.Management.NAK; f != nil {
			f(d.header, body)
		}
		d.finish()
	}
}

// --- profile configuration ---------------------------------------------------------------------

func contProfileInquiry(d *Dispatcher) {
	if f := d.handlers.Profile.Inquiry; f != nil {
		f(d.header, ProfileInquiry{})
	}
	d.finish()
}

func contProfileInquiryReply(d *Dispatcher) {
	switch d.phase {
	case 0:
		fixed := d.fixedBytes(2)
		count := int(le7u16(fixed))
		d.phase = 1
		d.beginSegment(count*5, contProfileInquiryReply)
	case 1:
		d.scratchOff, d.scratchLen = d.segBase, d.pos-d.segBase
		d.phase = 2
		d.beginSegment(2, contProfileInquiryReply)
	case 2:
		fixed := d.seg()
		count := int(le7u16(fixed))
		if count == 0 {
			d.finishProfileInquiryReply(nil)
			return
		}
		d.phase = 3
		d.beginSegment(count*5, contProfileInquiryReply)
	case 3:
		d.finishProfileInquiryReply(d.seg())
	}
}

func (d *Dispatcher) finishProfileInquiryReply(disabled []byte) {
	enabled := d.buf[d.scratchOff : d.scratchOff+d.scratchLen]
	body := ProfileInquiryReply{
		Enabled:  profileIDs(enabled),
		Disabled: profileIDs(disabled),
	}
	if f := d.handlers.Profile.InquiryReply; f != nil {
		f(d.header, body)
	}
	d.finish()
}

func profileIDs(b []byte) []ProfileID {
	out := make([]ProfileID, 0, len(b)/5)
	for i := 0; i+5 <= len(b); i += 5 {
		var id ProfileID
		copy(id[:], b[i:i+5])
		out = append(out, id)
	}
	return out
}

func profileOnOffSize(v uint8) int {
	if v == 1 {
		return 5
	}
	return 7
}

func contProfileOn(d *Dispatcher) {
	b := d.fixedBytes(profileOnOffSize(d.header.Version))
	var body ProfileOn
	copy(body.Profile[:], b[0:5])
	if len(b) > 5 {
		body.NumChannels = le7u16(b[5:7])
	}
	if f := d.handlers.Profile.SetOn; f != nil {
		f(d.header, body)
	}
	d.finish()
}

func contProfileOff(d *Dispatcher) {
	b := d.fixedBytes(profileOnOffSize(d.header.Version))
	var body ProfileOff
	copy(body.Profile[:], b[0:5])
	if len(b) > 5 {
		body.NumChannels = le7u16(b[5:7])
	}
	if f := d.handlers.Profile.SetOff; f != nil {
		f(d.header, body)
	}
	d.finish()
}

func contProfileEnabled(d *Dispatcher) {
	b := d.fixedBytes(profileOnOffSize(d.header.Version))
	var body ProfileEnabled
	copy(body.Profile[:], b[0:5])
	if len(b) > 5 {
		body.NumChannels = le7u16(b[5:7])
	}
	if f := d.handlers.Profile.Enabled; f != nil {
		f(d.header, body)
	}
	d.finish()
}

func contProfileDisabled(d *Dispatcher) {
	b := d.fixedBytes(profileOnOffSize(d.header.Version))
	var body ProfileDisabled
	copy(body.Profile[:], b[0:5])
	if len(b) > 5 {
		body.NumChannels = le7u16(b[5:7])
	}
	if f := d.handlers.Profile.Disabled; f != nil {
		f(d.header, body)
	}
	d.finish()
}

func contProfileAdded(d *Dispatcher) {
	b := d.fixedBytes(5)
	var body ProfileAdded
	copy(body.Profile[:], b)
	if f := d.handlers.Profile.Added; f != nil {
		f(d.header, body)
	}
	d.finish()
}

func contProfileRemoved(d *Dispatcher) {
	b := d.fixedBytes(5)
	var body ProfileRemoved
	copy(body.Profile[:], b)
	if f := d.handlers.Profile.Removed; f != nil {
		f(d.header, body)
	}
	d.finish()
}

func contProfileDetails(d *Dispatcher) {
	b := d.fixedBytes(6)
	var body ProfileDetails
	copy(body.Profile[:], b[0:5])
	body.Target = b[5]
	if f := d.handlers.Profile.Details; f != nil {
		f(d.header, body)
	}
	d.finish()
}

func contProfileDetailsReply(d *Dispatcher) {
	switch d.phase {
	case 0:
		fixed := d.fixedBytes(8)
		length := int(le7u16(fixed[6:8]))
		d.phase = 1
		d.beginSegment(length, contProfileDetailsReply)
	case 1:
		blob := d.seg()
		fixed := d.fixedBytes(8)
		var body ProfileDetailsReply
		copy(body.Profile[:], fixed[0:5])
		body.Target = fixed[5]
		body.Data = cloneBytes(blob)
		if f := d.handlers.Profile.DetailsReply; f != nil {
			f(d.header, body)
		}
		d.finish()
	}
}

func contProfileSpecificData(d *Dispatcher) {
	switch d.phase {
	case 0:
		fixed := d.fixedBytes(9)
		length := int(le7u32_4(fixed[5:9]))
		d.phase = 1
		d.beginSegment(length, contProfileSpecificData)
	case 1:
		blob := d.seg()
		fixed := d.fixedBytes(9)
		var body ProfileSpecificData
		copy(body.Profile[:], fixed[0:5])
		body.Data = cloneBytes(blob)
		if f := d.handlers.Profile.SpecificData; f != nil {
			f(d.header, body)
		}
		d.finish()
	}
}

// --- property exchange ---------------------------------------------------------------------

func peCapSize(v uint8) int {
	if v == 1 {
		return 1
	}
	return 3
}

func contPECapability(d *Dispatcher) {
	b := d.fixedBytes(peCapSize(d.header.Version))
	body := PECapabilities{MaxRequests: b[0]}
	if len(b) > 1 {
		body.MajorVersion, body.MinorVersion = b[1], b[2]
	}
	if f := d.handlers.PropertyExchange.Capabilities; f != nil {
		f(d.header, body)
	}
	d.finish()
}

func contPECapabilityReply(d *Dispatcher) {
	b := d.fixedBytes(peCapSize(d.header.Version))
	body := PECapabilitiesReply{MaxRequests: b[0]}
	if len(b) > 1 {
		body.MajorVersion, body.MinorVersion = b[1], b[2]
	}
	if f := d.handlers.PropertyExchange.CapabilitiesReply; f != nil {
		f(d.header, body)
	}
	d.finish()
}

// contPropertyExchange implements the shared four-phase continuation (fixed prefix, header blob,
// data length, data blob) for the seven PE message bodies that share this shape. finish is
// invoked once all four phases have completed.
func contPropertyExchange(d *Dispatcher, finish func(h Header, body PropertyExchange)) {
	switch d.phase {
	case 0:
		fixed := d.fixedBytes(7)
		headerLen := int(le7u16(fixed[5:7]))
		d.phase = 1
		d.beginSegment(headerLen, func(d *Dispatcher) { contPropertyExchange(d, finish) })
	case 1:
		d.scratchOff, d.scratchLen = d.segBase, d.pos-d.segBase
		d.phase = 2
		d.beginSegment(2, func(d *Dispatcher) { contPropertyExchange(d, finish) })
	case 2:
		fixed2 := d.seg()
		dataLen := int(le7u16(fixed2))
		d.phase = 3
		d.beginSegment(dataLen, func(d *Dispatcher) { contPropertyExchange(d, finish) })
	case 3:
		fixed := d.fixedBytes(7)
		headerBlob := d.buf[d.scratchOff : d.scratchOff+d.scratchLen]
		dataBlob := d.seg()
		body := PropertyExchange{
			RequestID:   fixed[0],
			NumChunks:   le7u16(fixed[1:3]),
			ChunkNumber: le7u16(fixed[3:5]),
			Header:      cloneBytes(headerBlob),
			Data:        cloneBytes(dataBlob),
		}
		finish(d.header, body)
		d.finish()
	}
}

func contPEGet(d *Dispatcher) {
	contPropertyExchange(d, func(h Header, body PropertyExchange) {
		if f := d.handlers.PropertyExchange.Get; f != nil {
			f(h, body)
		}
	})
}
func contPEGetReply(d *Dispatcher) {
	contPropertyExchange(d, func(h Header, body PropertyExchange) {
		if f := d.handlers.PropertyExchange.GetReply; f != nil {
			f(h, body)
		}
	})
}
func contPESet(d *Dispatcher) {
	contPropertyExchange(d, func(h Header, body PropertyExchange) {
		if f := d.handlers.PropertyExchange.Set; f != nil {
			f(h, body)
		}
	})
}
func contPESetReply(d *Dispatcher) {
	contPropertyExchange(d, func(h Header, body PropertyExchange) {
		if f := d.handlers.PropertyExchange.SetReply; f != nil {
			f(h, body)
		}
	})
}
func contPESub(d *Dispatcher) {
	contPropertyExchange(d, func(h Header, body PropertyExchange) {
		if f := d.handlers.PropertyExchange.Subscribe; f != nil {
			f(h, body)
		}
	})
}
func contPESubReply(d *Dispatcher) {
	contPropertyExchange(d, func(h Header, body PropertyExchange) {
		if f := d.handlers.PropertyExchange.SubscribeReply; f != nil {
			f(h, body)
		}
	})
}
func contPENotify(d *Dispatcher) {
	contPropertyExchange(d, func(h Header, body PropertyExchange) {
		if f := d.handlers.PropertyExchange.Notify; f != nil {
			f(h, body)
		}
	})
}

// --- process inquiry ---------------------------------------------------------------------

func contPICapability(d *Dispatcher) {
	if f := d.handlers.ProcessInquiry.Capabilities; f != nil {
		f(d.header, PIProcessInquiryCapabilities{})
	}
	d.finish()
}

func contPICapabilityReply(d *Dispatcher) {
	var body PIProcessInquiryCapabilitiesReply
	if d.header.Version != 1 {
		b := d.fixedBytes(1)
		body.SupportedFeatures = b[0]
	}
	if f := d.handlers.ProcessInquiry.CapabilitiesReply; f != nil {
		f(d.header, body)
	}
	d.finish()
}

func contPIMMReport(d *Dispatcher) {
	var body PIMIDIMessageReport
	if d.header.Version != 1 {
		b := d.fixedBytes(2)
		body.MessageDataControl, body.RequestedTypes = b[0], b[1]
	}
	if f := d.handlers.ProcessInquiry.MIDIMessageReport; f != nil {
		f(d.header, body)
	}
	d.finish()
}

func contPIMMReportReply(d *Dispatcher) {
	var body PIMIDIMessageReportReply
	if d.header.Version != 1 {
		b := d.fixedBytes(1)
		body.ReportedTypes = b[0]
	}
	if f := d.handlers.ProcessInquiry.MIDIMessageReportReply; f != nil {
		f(d.header, body)
	}
	d.finish()
}

func contPIMMReportEnd(d *Dispatcher) {
	if f := d.handlers.ProcessInquiry.MIDIMessageReportEnd; f != nil {
		f(d.header, PIMIDIMessageReportEnd{})
	}
	d.finish()
}
