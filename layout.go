package euid

import (
	"math/bits"

	"github.com/pkg/errors"
)

// Binary layout of the high word (most significant bit first):
//
//	| timestamp (42) | padding (15-n) | extension (n) | n (4) | version (3) |
//
// The low word is random. Next treats its upper 32 bits as a sequence counter.
const (
	timestampBits = 42
	extensionBits = 15
	extLenBits    = 4
	versionBits   = 3

	// TimestampMask is the largest timestamp which can be stored.
	TimestampMask uint64 = 1<<timestampBits - 1

	// ExtensionMask is the largest extension which can be stored.
	ExtensionMask uint16 = 1<<extensionBits - 1

	extLenMask  uint64 = 1<<extLenBits - 1
	versionMask uint64 = 1<<versionBits - 1

	extShift       = versionBits + extLenBits
	timestampShift = extShift + extensionBits

	sequenceShift = 32
	sequenceMax   = 1<<32 - 1
)

// Version1 is the only defined format version. It is stored as 0 in the version field.
const Version1 uint8 = 1

// Fields holds the decoded content of an identifier.
type Fields struct {
	// Timestamp is milliseconds since the epoch used at creation.
	Timestamp uint64
	// Extension is the caller-attached tag, 0 when ExtensionLen is 0.
	Extension uint16
	// ExtensionLen is the number of significant bits of Extension.
	ExtensionLen uint8
	Version      uint8
	// Padding holds the random bits between the timestamp and the extension, right-aligned.
	Padding uint16
	// Random is the low word.
	Random uint64
}

// Pack builds an identifier from its fields. Extension 0 means no extension.
// Only the low 15-n bits of random[0] are used, where n is the bit length of extension.
func Pack(timestamp uint64, extension uint16, random [2]uint64) (EUID, error) {
	if timestamp > TimestampMask {
		return EUID{}, errors.WithStack(ErrTimestampOverflow)
	}
	if extension > ExtensionMask {
		return EUID{}, errors.WithStack(ErrExtensionOverflow)
	}

	extLen := extensionLen(extension)
	padding := random[0] & (1<<(extensionBits-extLen) - 1)
	hi := timestamp<<timestampShift |
		padding<<(extShift+extLen) |
		uint64(extension)<<extShift |
		uint64(extLen)<<versionBits |
		uint64(Version1-1)
	return EUID{hi: hi, lo: random[1]}, nil
}

// Unpack decodes all the fields. Any value decodes to some field set.
func Unpack(id EUID) Fields {
	extLen := (id.hi >> versionBits) & extLenMask
	region := (id.hi >> extShift) & uint64(ExtensionMask)
	return Fields{
		Timestamp:    id.hi >> timestampShift,
		Extension:    uint16(region & (1<<extLen - 1)),
		ExtensionLen: uint8(extLen),
		Version:      uint8(id.hi&versionMask) + 1,
		Padding:      uint16(region >> extLen),
		Random:       id.lo,
	}
}

func extensionLen(extension uint16) uint64 {
	return uint64(bits.Len16(extension))
}
