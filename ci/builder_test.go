package ci

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateMessageHeaderLayout(t *testing.T) {
	p := Params{Group: 0, DeviceID: 0x7F, Version: 2, Source: 0x10, Destination: BroadcastMUID}
	buf := make([]byte, 64)
	n := CreateMessage(buf, p, ProfileInquiry{})

	require.Equal(t, HeaderSize, n, "profile_inquiry has no body beyond the fixed header")
	require.Equal(t, p.DeviceID, buf[0])
	require.Equal(t, subID1CI, buf[1])
	require.Equal(t, byte(MsgProfileInquiry), buf[2])
	require.Equal(t, p.Version, buf[3])
	require.Equal(t, p.Source, GetMUID(buf[4:8]))
	require.Equal(t, p.Destination, GetMUID(buf[8:12]))
}

func TestCreateMessageOverrunReturnsDstLength(t *testing.T) {
	p := Params{Group: 0, DeviceID: 0, Version: 2, Source: 1, Destination: 2}
	body := ProfileSpecificData{Data: make([]byte, 64)}
	buf := make([]byte, 10) // far too small for header + profile + length + 64 bytes of data
	n := CreateMessage(buf, p, body)
	require.Equal(t, len(buf), n)
}

func TestCreateMessageEndpointInfoReplyBlob(t *testing.T) {
	p := Params{Group: 0, DeviceID: 0, Version: 2, Source: 1, Destination: BroadcastMUID}
	body := EndpointInfoReply{Status: 0x00, Information: []byte("hello")}
	buf := make([]byte, 64)
	n := CreateMessage(buf, p, body)

	wantLen := HeaderSize + 1 + 2 + len(body.Information)
	require.Equal(t, wantLen, n)
}

func TestCreateMessageNAKV1OmitsTail(t *testing.T) {
	p := Params{Group: 0, DeviceID: 0, Version: 1, Source: 1, Destination: BroadcastMUID}
	buf := make([]byte, 64)
	n := CreateMessage(buf, p, NAK{StatusCode: 5, Message: []byte("ignored for v1")})
	require.Equal(t, HeaderSize, n, "v1 nak carries no payload regardless of the Go struct's fields")
}

func TestCreateMessageNAKV2IncludesTail(t *testing.T) {
	p := Params{Group: 0, DeviceID: 0, Version: 2, Source: 1, Destination: BroadcastMUID}
	body := NAK{OriginalSubID2: byte(MsgDiscovery), StatusCode: 3, StatusData: 1, Message: []byte("no")}
	buf := make([]byte, 64)
	n := CreateMessage(buf, p, body)
	want := HeaderSize + 3 + 5 + 2 + len(body.Message)
	require.Equal(t, want, n)
}

func TestCreateMessageUnknownBodyTypeWritesNothing(t *testing.T) {
	buf := make([]byte, 64)
	n := CreateMessage(buf, Params{}, struct{ X int }{})
	require.Equal(t, 0, n, "a body type not in the switch writes no header and reports zero bytes")
}
