package euid

import (
	"cmp"
	"database/sql/driver"
	"encoding/binary"
	"math/big"
	"slices"
	"time"

	"github.com/pkg/errors"
)

// Size is the length of the binary form.
const Size = 16

// EUID is an extendable, sortable, universally unique identifier.
// The zero value is a valid identifier with all fields set to zero.
type EUID struct {
	hi uint64
	lo uint64
}

// FromWords builds an identifier from its high and low 64-bit words.
func FromWords(hi, lo uint64) EUID {
	return EUID{hi: hi, lo: lo}
}

// Words returns the high and low 64-bit words.
func (id EUID) Words() (hi, lo uint64) {
	return id.hi, id.lo
}

// Timestamp returns milliseconds since the epoch used when the identifier was created.
func (id EUID) Timestamp() uint64 {
	return id.hi >> timestampShift
}

// Time returns the creation time, given the epoch (in Unix milliseconds) the identifier
// was created with. The sum wraps at 42 bits.
func (id EUID) Time(epoch uint64) time.Time {
	return time.UnixMilli(int64((id.Timestamp() + epoch) & TimestampMask)).UTC()
}

// Extension returns the attached extension and true, or false if there is none.
func (id EUID) Extension() (uint16, bool) {
	f := Unpack(id)
	return f.Extension, f.ExtensionLen != 0
}

// Version returns the format version.
func (id EUID) Version() uint8 {
	return uint8(id.hi&versionMask) + 1
}

// Compare returns -1, 0 or +1 when id is less than, equal to or greater than other.
func (id EUID) Compare(other EUID) int {
	if c := cmp.Compare(id.hi, other.hi); c != 0 {
		return c
	}
	return cmp.Compare(id.lo, other.lo)
}

// Sort sorts identifiers in ascending order.
func Sort(ids []EUID) {
	slices.SortFunc(ids, EUID.Compare)
}

// Bytes returns the 16-byte big-endian form.
func (id EUID) Bytes() [Size]byte {
	var b [Size]byte
	binary.BigEndian.PutUint64(b[:8], id.hi)
	binary.BigEndian.PutUint64(b[8:], id.lo)
	return b
}

// FromBytes decodes the 16-byte big-endian form.
func FromBytes(b []byte) (EUID, error) {
	if len(b) != Size {
		return EUID{}, errors.WithStack(&LengthError{Actual: len(b), Expected: Size})
	}
	return EUID{
		hi: binary.BigEndian.Uint64(b[:8]),
		lo: binary.BigEndian.Uint64(b[8:]),
	}, nil
}

// Big returns the identifier as an unsigned integer.
func (id EUID) Big() *big.Int {
	b := id.Bytes()
	return new(big.Int).SetBytes(b[:])
}

// FromBig converts an unsigned integer of at most 128 bits.
func FromBig(n *big.Int) (EUID, error) {
	if n.Sign() < 0 || n.BitLen() > 8*Size {
		return EUID{}, errors.Wrapf(ErrOverflow, "%s does not fit into 128 bits", n)
	}
	var b [Size]byte
	n.FillBytes(b[:])
	return FromBytes(b[:])
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (id EUID) MarshalBinary() ([]byte, error) {
	b := id.Bytes()
	return b[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (id *EUID) UnmarshalBinary(data []byte) error {
	parsed, err := FromBytes(data)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Scan implements sql.Scanner. Strings are decoded from the text form, byte slices of
// length 16 from the binary one and other byte slices from the text form.
func (id *EUID) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*id = EUID{}
		return nil
	case string:
		return id.UnmarshalText([]byte(v))
	case []byte:
		if len(v) == Size {
			return id.UnmarshalBinary(v)
		}
		return id.UnmarshalText(v)
	default:
		return errors.Errorf("euid: unsupported scan type %T", src)
	}
}

// Value implements driver.Valuer by returning the text form.
func (id EUID) Value() (driver.Value, error) {
	return id.String(), nil
}
