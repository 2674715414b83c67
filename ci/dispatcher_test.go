package ci

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// pushMessage builds the wire bytes for body via CreateMessage and feeds them through a fresh
// StartSysex7/Push cycle, mirroring how a caller strips the universal-NRT sysex framing before
// handing the dispatcher its payload.
func pushMessage(t *testing.T, d *Dispatcher, p Params, body any) {
	t.Helper()
	buf := make([]byte, 600)
	n := CreateMessage(buf, p, body)
	require.Less(t, n, len(buf), "message unexpectedly filled the scratch buffer")
	d.StartSysex7(p.Group, p.DeviceID)
	for _, b := range buf[:n] {
		d.Push(b)
	}
}

func alwaysOurs(group uint8, muid MUID) bool { return true }

func TestDispatcherDiscoveryRoundTrip(t *testing.T) {
	p := Params{Group: 1, DeviceID: 0x7F, Version: 2, Source: 0x1234567, Destination: BroadcastMUID}
	want := Discovery{
		Manufacturer: [3]byte{0x01, 0x02, 0x03},
		Family:       0x1234,
		Model:        0x5678,
		Version:      [4]byte{1, 0, 0, 0},
		Capability:   0x7F,
		MaxSysexSize: 0x7F7F7F,
		OutputPathID: 0x00,
	}

	var gotHeader Header
	var got Discovery
	d := NewDispatcher(Handlers{
		Management: ManagementHandlers{
			Discovery: func(h Header, body Discovery) { gotHeader, got = h, body },
		},
	})
	pushMessage(t, d, p, want)

	require.Equal(t, p.Group, gotHeader.Group)
	require.Equal(t, p.Version, gotHeader.Version)
	require.Equal(t, p.Source, gotHeader.Source)
	require.Equal(t, MsgDiscovery, gotHeader.Message)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("discovery body mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatcherDiscoveryV1ShorterBody(t *testing.T) {
	p := Params{Group: 0, DeviceID: 0x00, Version: 1, Source: 1, Destination: BroadcastMUID}
	want := Discovery{
		Manufacturer: [3]byte{0x41, 0x42, 0x43},
		Family:       0x01,
		Model:        0x02,
		Version:      [4]byte{1, 1, 1, 1},
		Capability:   0x03,
		MaxSysexSize: 0x1FFFFF,
		// OutputPathID is v2-only; must stay zero-valued on a v1 message.
	}

	var got Discovery
	d := NewDispatcher(Handlers{
		Management: ManagementHandlers{Discovery: func(h Header, body Discovery) { got = body }},
	})
	pushMessage(t, d, p, want)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("v1 discovery body mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatcherACKWithMessageBlob(t *testing.T) {
	p := Params{Group: 2, DeviceID: 5, Version: 2, Source: 10, Destination: 20}
	want := ACK{
		OriginalSubID2: byte(MsgProfileInquiry),
		StatusCode:     0x01,
		StatusData:     0x00,
		Details:        [5]byte{1, 2, 3, 4, 5},
		Message:        []byte("nope"),
	}

	var got ACK
	d := NewDispatcher(Handlers{
		System:     SystemHandlers{CheckMUID: alwaysOurs},
		Management: ManagementHandlers{ACK: func(h Header, body ACK) { got = body }},
	})
	pushMessage(t, d, p, want)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ack body mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatcherNAKV1HasNoPayload(t *testing.T) {
	p := Params{Group: 0, DeviceID: 0, Version: 1, Source: 1, Destination: BroadcastMUID}
	fired := 0
	d := NewDispatcher(Handlers{
		Management: ManagementHandlers{NAK: func(h Header, body NAK) { fired++ }},
	})
	pushMessage(t, d, p, NAK{})
	require.Equal(t, 1, fired)
}

func TestDispatcherProfileInquiryReplyThreePhase(t *testing.T) {
	p := Params{Group: 0, DeviceID: 0, Version: 2, Source: 1, Destination: BroadcastMUID}
	want := ProfileInquiryReply{
		Enabled:  []ProfileID{{1, 2, 3, 4, 5}, {6, 7, 8, 9, 10}},
		Disabled: []ProfileID{{9, 9, 9, 9, 9}},
	}

	var got ProfileInquiryReply
	d := NewDispatcher(Handlers{
		Profile: ProfileHandlers{InquiryReply: func(h Header, body ProfileInquiryReply) { got = body }},
	})
	pushMessage(t, d, p, want)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("profile_inquiry_reply mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatcherProfileInquiryReplyEmptyBoth(t *testing.T) {
	p := Params{Group: 0, DeviceID: 0, Version: 2, Source: 1, Destination: BroadcastMUID}
	want := ProfileInquiryReply{}

	var got ProfileInquiryReply
	fired := 0
	d := NewDispatcher(Handlers{
		Profile: ProfileHandlers{InquiryReply: func(h Header, body ProfileInquiryReply) { got, fired = body, fired+1 }},
	})
	pushMessage(t, d, p, want)

	require.Equal(t, 1, fired)
	require.Empty(t, got.Enabled)
	require.Empty(t, got.Disabled)
}

func TestDispatcherPropertyExchangeFourPhase(t *testing.T) {
	p := Params{Group: 3, DeviceID: 0, Version: 2, Source: 42, Destination: 99}
	want := PropertyExchange{
		RequestID:   7,
		NumChunks:   1,
		ChunkNumber: 1,
		Header:      []byte(`{"resource":"DeviceInfo"}`),
		Data:        []byte(`{"manufacturer":"acme"}`),
	}

	var gotHeader Header
	var got PropertyExchange
	d := NewDispatcher(Handlers{
		System: SystemHandlers{CheckMUID: alwaysOurs},
		PropertyExchange: PropertyExchangeHandlers{
			GetReply: func(h Header, body PropertyExchange) { gotHeader, got = h, body },
		},
	})
	pushMessage(t, d, p, NewPEGetReply(want))

	require.Equal(t, MsgPEGetReply, gotHeader.Message)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("property exchange body mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatcherPropertyExchangeEmptyBlobs(t *testing.T) {
	p := Params{Group: 0, DeviceID: 0, Version: 2, Source: 1, Destination: BroadcastMUID}
	want := PropertyExchange{RequestID: 1}

	var got PropertyExchange
	d := NewDispatcher(Handlers{
		PropertyExchange: PropertyExchangeHandlers{
			Set: func(h Header, body PropertyExchange) { got = body },
		},
	})
	pushMessage(t, d, p, NewPESet(want))

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("empty-blob property exchange mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatcherUnknownMessageID(t *testing.T) {
	p := Params{Group: 0, DeviceID: 0, Version: 2, Source: 1, Destination: BroadcastMUID}
	var gotHeader Header
	fired := 0
	d := NewDispatcher(Handlers{
		System: SystemHandlers{UnknownMIDICI: func(h Header) { gotHeader, fired = h, fired+1 }},
	})

	buf := make([]byte, HeaderSize)
	buf[0] = p.DeviceID
	buf[1] = subID1CI
	buf[2] = 0x55 // not in the catalog
	buf[3] = p.Version
	PutMUID(buf[4:8], p.Source)
	PutMUID(buf[8:12], p.Destination)

	d.StartSysex7(p.Group, p.DeviceID)
	for _, b := range buf {
		d.Push(b)
	}

	require.Equal(t, 1, fired)
	require.Equal(t, MessageID(0x55), gotHeader.Message)
}

func TestDispatcherCheckMUIDRejectsForeignDestination(t *testing.T) {
	p := Params{Group: 0, DeviceID: 0, Version: 2, Source: 1, Destination: 0x42}
	fired := 0
	d := NewDispatcher(Handlers{
		System:  SystemHandlers{CheckMUID: func(group uint8, muid MUID) bool { return false }},
		Profile: ProfileHandlers{Inquiry: func(h Header, body ProfileInquiry) { fired++ }},
	})
	pushMessage(t, d, p, ProfileInquiry{})
	require.Equal(t, 0, fired, "a message addressed to a foreign MUID must not reach its handler")
}

func TestDispatcherNilCheckMUIDRejectsNonBroadcast(t *testing.T) {
	p := Params{Group: 0, DeviceID: 0, Version: 2, Source: 1, Destination: 0x42}
	fired := 0
	d := NewDispatcher(Handlers{
		Profile: ProfileHandlers{Inquiry: func(h Header, body ProfileInquiry) { fired++ }},
	})
	pushMessage(t, d, p, ProfileInquiry{})
	require.Equal(t, 0, fired, "a nil CheckMUID must default to rejecting any addressed (non-broadcast) message")
}

func TestDispatcherBroadcastBypassesCheckMUID(t *testing.T) {
	p := Params{Group: 0, DeviceID: 0, Version: 2, Source: 1, Destination: BroadcastMUID}
	fired := 0
	d := NewDispatcher(Handlers{
		Profile: ProfileHandlers{Inquiry: func(h Header, body ProfileInquiry) { fired++ }},
	})
	pushMessage(t, d, p, ProfileInquiry{})
	require.Equal(t, 1, fired, "a broadcast message must reach its handler even with no CheckMUID configured")
}

func TestDispatcherBufferOverflowDiscardsAndReports(t *testing.T) {
	overflowed := 0
	fired := 0
	d := NewDispatcher(Handlers{
		System:     SystemHandlers{BufferOverflow: func() { overflowed++ }},
		Management: ManagementHandlers{EndpointInfoReply: func(h Header, body EndpointInfoReply) { fired++ }},
	})

	// A valid header for endpoint_info_reply, whose first phase declares a blob length (0x3FFF,
	// via two 0x7F LE7 bytes) far larger than the dispatcher's fixed buffer can ever hold.
	header := []byte{0, subID1CI, byte(MsgEndpointInfoReply), 2, 0, 0, 0, 0, 0x7F, 0x7F, 0x7F, 0x7F}
	fixed := []byte{0x00, 0x7F, 0x7F} // status, then length = 0x7F | 0x7F<<7 = 0x3FFF

	d.StartSysex7(0, 0)
	for _, b := range header {
		d.Push(b)
	}
	for _, b := range fixed {
		d.Push(b)
	}

	// Keep feeding blob bytes; the declared length (16383) vastly exceeds the remaining capacity,
	// so the dispatcher must overflow before the segment ever completes.
	for i := 0; i < bufferCapacity; i++ {
		d.Push(byte(i))
	}

	require.Equal(t, 1, overflowed)
	require.Equal(t, 0, fired)

	// The dispatcher must now be discarding until the next StartSysex7.
	d.Push(0xAA)
	require.Equal(t, 1, overflowed, "Push after overflow must stay inert, not overflow again")
}

func TestDispatcherIgnoresBytesBeforeStartSysex7(t *testing.T) {
	fired := 0
	d := NewDispatcher(Handlers{
		Profile: ProfileHandlers{Inquiry: func(h Header, body ProfileInquiry) { fired++ }},
	})
	// A fresh Dispatcher starts in the discard state; Push before StartSysex7 must be a no-op.
	for i := 0; i < HeaderSize; i++ {
		d.Push(0)
	}
	require.Equal(t, 0, fired)
}
