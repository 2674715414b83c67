package rtp

// Data byte counts for MIDI 1.0 status bytes, used when walking a MIDI list under running status.
// Channel-voice statuses are keyed by their high nibble, system statuses by the full byte.
// Statuses MIDI 1.0 leaves undefined (0xf4, 0xf5, 0xf9, 0xfd) carry no data, as do the real-time
// messages; sysex (0xf0) is length-delimited by its 0xf7 terminator and handled separately by the
// list parser.
var channelVoiceDataLengths = map[byte]int{
	0x80: 2, // note off
	0x90: 2, // note on
	0xa0: 2, // polyphonic aftertouch
	0xb0: 2, // control change
	0xc0: 1, // program change
	0xd0: 1, // channel aftertouch
	0xe0: 2, // pitch bend
}

var systemDataLengths = map[byte]int{
	0xf1: 1, // MTC quarter frame
	0xf2: 2, // song position pointer
	0xf3: 1, // song select
}

func statusDataLength(status byte) int {
	if status < 0xf0 {
		return channelVoiceDataLengths[status&0xf0]
	}
	return systemDataLengths[status]
}
