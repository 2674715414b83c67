package ci

// Handlers bundles the five callback groups the dispatcher consumes: the dispatcher-level System
// callbacks, then one group per CI message category (management, profile configuration, property
// exchange, process inquiry).
type Handlers struct {
	System           SystemHandlers
	Management       ManagementHandlers
	Profile          ProfileHandlers
	PropertyExchange PropertyExchangeHandlers
	ProcessInquiry   ProcessInquiryHandlers
}

// SystemHandlers are the dispatcher-level callbacks that are not themselves CI messages:
// addressing checks and error reporting.
type SystemHandlers struct {
	// CheckMUID reports whether muid (the destination of an incoming, non-broadcast message on
	// the given group) belongs to this endpoint. A nil CheckMUID is treated as "never ours".
	CheckMUID func(group uint8, muid MUID) bool
	// UnknownMIDICI is invoked when a header's sub-id-2 is not in the message catalog.
	UnknownMIDICI func(h Header)
	// BufferOverflow is invoked when a message's accumulated bytes would exceed the dispatcher's
	// fixed capacity.
	BufferOverflow func()
}

// ManagementHandlers cover the CI management messages proper.
type ManagementHandlers struct {
	Discovery         func(h Header, body Discovery)
	DiscoveryReply    func(h Header, body DiscoveryReply)
	EndpointInfo      func(h Header, body EndpointInfo)
	EndpointInfoReply func(h Header, body EndpointInfoReply)
	InvalidateMUID    func(h Header, body InvalidateMUID)
	ACK               func(h Header, body ACK)
	NAK               func(h Header, body NAK)
}

// ProfileHandlers cover the MIDI-CI profile configuration messages.
type ProfileHandlers struct {
	Inquiry      func(h Header, body ProfileInquiry)
	InquiryReply func(h Header, body ProfileInquiryReply)
	SetOn        func(h Header, body ProfileOn)
	SetOff       func(h Header, body ProfileOff)
	Enabled      func(h Header, body ProfileEnabled)
	Disabled     func(h Header, body ProfileDisabled)
	Added        func(h Header, body ProfileAdded)
	Removed      func(h Header, body ProfileRemoved)
	Details      func(h Header, body ProfileDetails)
	DetailsReply func(h Header, body ProfileDetailsReply)
	SpecificData func(h Header, body ProfileSpecificData)
}

// PropertyExchangeHandlers cover the MIDI-CI property exchange messages.
type PropertyExchangeHandlers struct {
	Capabilities      func(h Header, body PECapabilities)
	CapabilitiesReply func(h Header, body PECapabilitiesReply)
	Get               func(h Header, body PropertyExchange)
	GetReply          func(h Header, body PropertyExchange)
	Set               func(h Header, body PropertyExchange)
	SetReply          func(h Header, body PropertyExchange)
	Subscribe         func(h Header, body PropertyExchange)
	SubscribeReply    func(h Header, body PropertyExchange)
	Notify            func(h Header, body PropertyExchange)
}

// ProcessInquiryHandlers cover the MIDI-CI process inquiry messages (v2 only).
type ProcessInquiryHandlers struct {
	Capabilities           func(h Header, body PIProcessInquiryCapabilities)
	CapabilitiesReply      func(h Header, body PIProcessInquiryCapabilitiesReply)
	MIDIMessageReport      func(h Header, body PIMIDIMessageReport)
	MIDIMessageReportReply func(h Header, body PIMIDIMessageReportReply)
	MIDIMessageReportEnd   func(h Header, body PIMIDIMessageReportEnd)
}
