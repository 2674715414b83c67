// Package scale implements the min-center-max (MCM) bit-resolution scaling algorithm from
// "M2-115-U MIDI 2.0 Bit Scaling and Resolution v1.0.1", used to convert controller, velocity,
// pressure, and pitch-bend values between the differing resolutions MIDI 1 and MIDI 2 use for the
// same semantic field.
package scale

// MCM rescales value, expressed in srcBits bits, to destBits bits such that the domain's minimum
// (0), center (1<<(srcBits-1)), and maximum ((1<<srcBits)-1) map exactly to the corresponding
// values in the destination width.
//
// When srcBits >= destBits the conversion is a plain right shift. When srcBits < destBits, values
// at or below center are a plain left shift; values above center additionally have their low
// srcBits-1 bits repeated into the newly opened low bits of the result, so that the maximum value
// maps to all destBits bits set rather than leaving the low bits zero.
func MCM(value uint32, srcBits, destBits uint) uint32 {
	if srcBits >= destBits {
		return value >> (srcBits - destBits)
	}
	if value == 0 {
		return 0
	}
	scaleBits := destBits - srcBits
	center := uint32(1) << (srcBits - 1)
	shifted := value << scaleBits

	if value <= center {
		return shifted
	}

	repeatBits := srcBits - 1
	repeat := value & ((uint32(1) << repeatBits) - 1)
	if scaleBits > repeatBits {
		repeat <<= scaleBits - repeatBits
	} else {
		repeat >>= repeatBits - scaleBits
	}
	for repeat != 0 {
		shifted |= repeat
		repeat >>= repeatBits
	}
	return shifted
}
