package ump

import "github.com/laenzlinger/go-midi2/bitfield"

// StreamStatus is the 10-bit sub-status of a stream-family message. Stream messages carry no
// group: mt=0xF messages address the whole UMP endpoint, not one of its 16 groups.
type StreamStatus uint16

const (
	StreamEndpointDiscovery             StreamStatus = 0x00
	StreamEndpointInfoNotification      StreamStatus = 0x01
	StreamDeviceIdentityNotification    StreamStatus = 0x02
	StreamEndpointNameNotification      StreamStatus = 0x03
	StreamProductInstanceIDNotification StreamStatus = 0x04
	StreamJRConfigurationRequest        StreamStatus = 0x05
	StreamJRConfigurationNotification   StreamStatus = 0x06
	StreamFunctionBlockDiscovery        StreamStatus = 0x10
	StreamFunctionBlockInfoNotification StreamStatus = 0x11
	StreamFunctionBlockNameNotification StreamStatus = 0x12
	StreamStartOfClip                   StreamStatus = 0x20
	StreamEndOfClip                     StreamStatus = 0x21
)

var (
	streamFormRange   = bitfield.Range{Offset: 26, Width: 2}
	streamStatusRange = bitfield.Range{Offset: 16, Width: 10}
)

// Stream is any stream-family message: a 2-bit form (for messages split across multiple packets,
// e.g. endpoint name) plus three words of opaque, status-dependent payload.
type Stream struct {
	W0, W1, W2, W3 uint32
}

func newStream(form uint8, status StreamStatus, w0data, w1, w2, w3 uint32) Stream {
	w0 := bitfield.Set(0, mtRange, uint32(MTStream))
	w0 = bitfield.Set8(w0, streamFormRange, form&0x3)
	w0 = bitfield.Set16(w0, streamStatusRange, uint16(status))
	w0 = bitfield.Set(w0, bitfield.Range{Offset: 0, Width: 16}, w0data)
	return Stream{w0, w1, w2, w3}
}

func NewEndpointDiscovery(versionMajor, versionMinor, filterBitmap uint8) Stream {
	w0data := uint32(versionMajor)<<8 | uint32(versionMinor)
	return newStream(0, StreamEndpointDiscovery, w0data, uint32(filterBitmap), 0, 0)
}
func NewEndpointInfoNotification(versionMajor, versionMinor uint8, numFunctionBlocks uint8,
	midi2Capable, midi1Capable, supportsRxJR, supportsTxJR bool) Stream {
	w0data := uint32(versionMajor)<<8 | uint32(versionMinor)
	var flags uint32
	if midi2Capable {
		flags |= 1 << 9
	}
	if midi1Capable {
		flags |= 1 << 8
	}
	if supportsRxJR {
		flags |= 1 << 1
	}
	if supportsTxJR {
		flags |= 1
	}
	w1 := uint32(numFunctionBlocks)<<24 | flags
	return newStream(0, StreamEndpointInfoNotification, w0data, w1, 0, 0)
}
func NewDeviceIdentityNotification(manufacturer [3]byte, family, model uint16, version [4]byte) Stream {
	w1 := uint32(manufacturer[0])<<16 | uint32(manufacturer[1])<<8 | uint32(manufacturer[2])
	w2 := uint32(family)<<16 | uint32(model)
	w3 := uint32(version[0])<<24 | uint32(version[1])<<16 | uint32(version[2])<<8 | uint32(version[3])
	return newStream(0, StreamDeviceIdentityNotification, 0, w1, w2, w3)
}
func NewEndpointNameNotification(form uint8, name [14]byte) Stream {
	w1 := uint32(name[0])<<24 | uint32(name[1])<<16 | uint32(name[2])<<8 | uint32(name[3])
	w2 := uint32(name[4])<<24 | uint32(name[5])<<16 | uint32(name[6])<<8 | uint32(name[7])
	w3 := uint32(name[8])<<24 | uint32(name[9])<<16 | uint32(name[10])<<8 | uint32(name[11])
	return newStream(form, StreamEndpointNameNotification, uint32(name[12])<<8|uint32(name[13]), w1, w2, w3)
}
func NewProductInstanceIDNotification(form uint8, id [14]byte) Stream {
	s := NewEndpointNameNotification(form, id)
	s.W0 = bitfield.Set16(s.W0, streamStatusRange, uint16(StreamProductInstanceIDNotification))
	return s
}
func NewJRConfigurationRequest(versionMajor, versionMinor uint8, protocol uint8, jrRx, jrTx bool) Stream {
	w0data := uint32(versionMajor)<<8 | uint32(versionMinor)
	var flags uint32
	if jrRx {
		flags |= 1 << 1
	}
	if jrTx {
		flags |= 1
	}
	w1 := uint32(protocol)<<24 | flags
	return newStream(0, StreamJRConfigurationRequest, w0data, w1, 0, 0)
}
func NewJRConfigurationNotification(versionMajor, versionMinor, protocol uint8, jrRx, jrTx bool) Stream {
	s := NewJRConfigurationRequest(versionMajor, versionMinor, protocol, jrRx, jrTx)
	s.W0 = bitfield.Set16(s.W0, streamStatusRange, uint16(StreamJRConfigurationNotification))
	return s
}
func NewFunctionBlockDiscovery(functionBlockNumber, filter uint8) Stream {
	w0data := uint32(functionBlockNumber)<<8 | uint32(filter)
	return newStream(0, StreamFunctionBlockDiscovery, w0data, 0, 0, 0)
}
func NewFunctionBlockInfoNotification(functionBlockNumber uint8, active bool, direction uint8,
	firstGroup, numGroups, ciVersion uint8, maxStreams uint8) Stream {
	var flags uint32
	if active {
		flags |= 1 << 7
	}
	w0data := uint32(functionBlockNumber)<<8 | flags | uint32(direction)
	w1 := uint32(firstGroup)<<24 | uint32(numGroups)<<16 | uint32(ciVersion)<<8 | uint32(maxStreams)
	return newStream(0, StreamFunctionBlockInfoNotification, w0data, w1, 0, 0)
}
func NewFunctionBlockNameNotification(form uint8, functionBlockNumber uint8, name [13]byte) Stream {
	w0data := uint32(functionBlockNumber)<<8 | uint32(name[0])
	w1 := uint32(name[1])<<24 | uint32(name[2])<<16 | uint32(name[3])<<8 | uint32(name[4])
	w2 := uint32(name[5])<<24 | uint32(name[6])<<16 | uint32(name[7])<<8 | uint32(name[8])
	w3 := uint32(name[9])<<24 | uint32(name[10])<<16 | uint32(name[11])<<8 | uint32(name[12])
	return newStream(form, StreamFunctionBlockNameNotification, w0data, w1, w2, w3)
}
func NewStartOfClip() Stream { return newStream(0, StreamStartOfClip, 0, 0, 0, 0) }
func NewEndOfClip() Stream   { return newStream(0, StreamEndOfClip, 0, 0, 0, 0) }

func (r Stream) Form() uint8          { return bitfield.Get8(r.W0, streamFormRange) }
func (r Stream) Status() StreamStatus { return StreamStatus(bitfield.Get16(r.W0, streamStatusRange)) }

func streamStatus(word0 uint32) StreamStatus {
	return StreamStatus(bitfield.Get16(word0, streamStatusRange))
}
