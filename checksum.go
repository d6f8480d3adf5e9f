package euid

const (
	checksumBits = 7
	checksumMask = 1<<checksumBits - 1

	// NoChecksum is embedded in the text form when the checksum is omitted.
	// Parse skips verification when it finds it.
	NoChecksum uint8 = checksumMask
)

// Checksum returns the 7-bit checksum of the identifier, in range [0, 126].
//
// Since 2^7 ≡ 1 (mod 127), the sum of all 7-bit windows of a number is congruent to the
// number itself, so folding the windows until the sum fits in 7 bits yields the
// value mod 127, with 127 standing for 0.
func Checksum(id EUID) uint8 {
	var sum uint64
	for shift := uint(0); shift < 128; shift += checksumBits {
		sum += window(id.hi, id.lo, shift, checksumMask)
	}
	for sum > checksumMask {
		sum = sum&checksumMask + sum>>checksumBits
	}
	if sum == checksumMask {
		return 0
	}
	return uint8(sum)
}

// window returns the bits of the 128-bit value hi:lo starting at shift, masked.
func window(hi, lo uint64, shift uint, mask uint64) uint64 {
	switch {
	case shift >= 64:
		return (hi >> (shift - 64)) & mask
	case shift == 0:
		return lo & mask
	default:
		return (lo>>shift | hi<<(64-shift)) & mask
	}
}
