package ci

// This file holds the CI record catalog: one Go struct per message body, holding decoded,
// version-free fields. A v1-decoded record is version-free too: fields introduced only in v2 are
// simply left at their zero value.

// Discovery is the body of a discovery (0x70) message.
type Discovery struct {
	Manufacturer [3]byte
	Family       uint16
	Model        uint16
	Version      [4]byte
	Capability   byte
	MaxSysexSize uint32
	OutputPathID byte // v2 only
}

// DiscoveryReply is the body of a discovery_reply (0x71) message.
type DiscoveryReply struct {
	Manufacturer  [3]byte
	Family        uint16
	Model         uint16
	Version       [4]byte
	Capability    byte
	MaxSysexSize  uint32
	OutputPathID  byte // v2 only
	FunctionBlock byte // v2 only
}

// EndpointInfo is the body of an endpoint_info (0x72) message.
type EndpointInfo struct {
	Status byte
}

// EndpointInfoReply is the body of an endpoint_info_reply (0x73) message.
type EndpointInfoReply struct {
	Status      byte
	Information []byte // length-prefixed blob
}

// InvalidateMUID is the body of an invalidate_muid (0x7E) message.
type InvalidateMUID struct {
	TargetMUID MUID
}

// ACK is the body of an ack (0x7D) message.
type ACK struct {
	OriginalSubID2 byte
	StatusCode     byte
	StatusData     byte
	Details        [5]byte
	Message        []byte // length-prefixed blob
}

// NAK is the body of a nak (0x7F) message. v1 has no payload beyond the header.
type NAK struct {
	OriginalSubID2 byte    // v2 only
	StatusCode     byte    // v2 only
	StatusData     byte    // v2 only
	Details        [5]byte // v2 only
	Message        []byte  // v2 only, length-prefixed blob
}

// Profile configuration message bodies.

type ProfileAdded struct{ Profile ProfileID }
type ProfileRemoved struct{ Profile ProfileID }

type ProfileInquiry struct{}

// ProfileInquiryReply carries two adjacent length-prefixed arrays of profile IDs: the profiles
// currently enabled, then the profiles present but disabled.
type ProfileInquiryReply struct {
	Enabled  []ProfileID
	Disabled []ProfileID
}

type ProfileOn struct {
	Profile     ProfileID
	NumChannels uint16 // v2 only
}
type ProfileOff struct {
	Profile     ProfileID
	NumChannels uint16 // v2 only
}
type ProfileEnabled struct {
	Profile     ProfileID
	NumChannels uint16
}
type ProfileDisabled struct {
	Profile     ProfileID
	NumChannels uint16
}

type ProfileDetails struct {
	Profile ProfileID
	Target  byte
}
type ProfileDetailsReply struct {
	Profile ProfileID
	Target  byte
	Data    []byte // length-prefixed blob
}

type ProfileSpecificData struct {
	Profile ProfileID
	Data    []byte // length-prefixed blob
}

// PropertyExchange is the shared body shape for the property-exchange messages that carry a JSON
// header blob and a data blob (get, get_reply, set, set_reply, subscribe, subscribe_reply,
// notify), each length-prefixed on the wire.
type PropertyExchange struct {
	RequestID   byte
	NumChunks   uint16
	ChunkNumber uint16
	Header      []byte // JSON header blob
	Data        []byte // data payload blob
}

type PECapabilities struct {
	MaxRequests  byte
	MajorVersion byte // v2 only
	MinorVersion byte // v2 only
}
type PECapabilitiesReply struct {
	MaxRequests  byte
	MajorVersion byte // v2 only
	MinorVersion byte // v2 only
}

type PIProcessInquiryCapabilities struct{}
type PIProcessInquiryCapabilitiesReply struct {
	SupportedFeatures byte
}
type PIMIDIMessageReport struct {
	MessageDataControl byte
	RequestedTypes     byte
}
type PIMIDIMessageReportReply struct {
	ReportedTypes byte
}
type PIMIDIMessageReportEnd struct{}
