package euid

import (
	"unicode/utf8"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Alphabet is the base-32 alphabet of the text form: ten digits and the uppercase letters
// without I, L, O and U. Symbols are in ascending byte order, so text compares like binary.
const Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// EncodedSize is the length of the text form.
const EncodedSize = 27

const (
	symbolBits = 5
	symbolMask = 1<<symbolBits - 1
	invalid    = 0xff

	// Symbols carrying identifier bits only. They cover bits 127..3.
	dataSymbols = 25
	// Identifier bits left for the 26th symbol.
	tailBits = 128 - dataSymbols*symbolBits
	// Checksum bits sharing the 26th symbol with the tail.
	checksumHighBits = symbolBits - tailBits
)

var decoding = func() [256]byte {
	var dec [256]byte
	for i := range dec {
		dec[i] = invalid
	}
	for i := range len(Alphabet) {
		dec[Alphabet[i]] = byte(i)
	}
	return dec
}()

// Encode returns the text form. If checksum is false NoChecksum is embedded instead of
// the real checksum.
func (id EUID) Encode(checksum bool) string {
	dst := make([]byte, EncodedSize)
	id.encodeTo(dst, checksum)
	return string(dst)
}

func (id EUID) encodeTo(dst []byte, checksum bool) {
	cs := NoChecksum
	if checksum {
		cs = Checksum(id)
	}

	shift := uint(128)
	for i := range dataSymbols {
		shift -= symbolBits
		dst[i] = Alphabet[window(id.hi, id.lo, shift, symbolMask)]
	}
	tail := id.lo & (1<<tailBits - 1)
	dst[dataSymbols] = Alphabet[tail<<checksumHighBits|uint64(cs>>symbolBits)]
	dst[dataSymbols+1] = Alphabet[cs&symbolMask]
}

// Parse decodes the text form. The embedded checksum is verified unless it is NoChecksum.
func Parse(s string) (EUID, error) {
	if len(s) != EncodedSize {
		return EUID{}, errors.WithStack(&LengthError{Actual: len(s), Expected: EncodedSize})
	}

	var symbols [EncodedSize]byte
	for i := range EncodedSize {
		v := decoding[s[i]]
		if v == invalid {
			c := rune(s[i])
			if c >= utf8.RuneSelf {
				c, _ = utf8.DecodeRuneInString(s[i:])
			}
			return EUID{}, errors.WithStack(&CharacterError{Char: c, Position: i})
		}
		symbols[i] = v
	}

	var hi, lo uint64
	for _, v := range symbols[:dataSymbols] {
		hi = hi<<symbolBits | lo>>(64-symbolBits)
		lo = lo<<symbolBits | uint64(v)
	}
	last := uint64(symbols[dataSymbols])
	hi = hi<<tailBits | lo>>(64-tailBits)
	lo = lo<<tailBits | last>>checksumHighBits
	id := EUID{hi: hi, lo: lo}

	embedded := uint8(last&(1<<checksumHighBits-1))<<symbolBits | symbols[dataSymbols+1]
	if embedded == NoChecksum {
		return id, nil
	}
	if computed := Checksum(id); computed != embedded {
		return EUID{}, errors.WithStack(&ChecksumError{Embedded: embedded, Computed: computed})
	}
	return id, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) EUID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// ParseAll decodes every string. Identifiers which failed to decode are zero and all the
// errors are combined into the returned one.
func ParseAll(ss ...string) ([]EUID, error) {
	ids := make([]EUID, len(ss))
	var err error
	for i, s := range ss {
		id, pErr := Parse(s)
		if pErr != nil {
			err = multierr.Append(err, errors.Wrapf(pErr, "decoding %q failed", s))
			continue
		}
		ids[i] = id
	}
	return ids, err
}

// String returns the text form with checksum.
func (id EUID) String() string {
	return id.Encode(true)
}

// MarshalText implements encoding.TextMarshaler.
func (id EUID) MarshalText() ([]byte, error) {
	dst := make([]byte, EncodedSize)
	id.encodeTo(dst, true)
	return dst, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *EUID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
