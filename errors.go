package euid

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrOverflow is returned when a value does not fit into its field.
	ErrOverflow = errors.New("overflow")

	// ErrTimestampOverflow is returned when the clock reading, after subtracting the epoch,
	// does not fit into 42 bits.
	ErrTimestampOverflow = errors.WithMessage(ErrOverflow, "timestamp exceeds 42 bits")

	// ErrExtensionOverflow is returned when the extension does not fit into 15 bits.
	ErrExtensionOverflow = errors.WithMessage(ErrOverflow, "extension exceeds 15 bits")

	// ErrSequenceOverflow is returned by Next when the per-millisecond sequence is exhausted.
	// Caller should wait for the next millisecond.
	ErrSequenceOverflow = errors.WithMessage(ErrOverflow, "sequence exhausted")

	// ErrInvalidLength is matched by *LengthError.
	ErrInvalidLength = errors.New("invalid length")

	// ErrInvalidCharacter is matched by *CharacterError.
	ErrInvalidCharacter = errors.New("invalid character")

	// ErrChecksum is matched by *ChecksumError.
	ErrChecksum = errors.New("checksum mismatch")
)

// LengthError reports text of the wrong length.
type LengthError struct {
	Actual   int
	Expected int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%s: got %d, expected %d", ErrInvalidLength, e.Actual, e.Expected)
}

// Unwrap returns ErrInvalidLength.
func (e *LengthError) Unwrap() error {
	return ErrInvalidLength
}

// CharacterError reports a character outside of the alphabet.
type CharacterError struct {
	Char     rune
	Position int
}

func (e *CharacterError) Error() string {
	return fmt.Sprintf("%s %q at position %d", ErrInvalidCharacter, e.Char, e.Position)
}

// Unwrap returns ErrInvalidCharacter.
func (e *CharacterError) Unwrap() error {
	return ErrInvalidCharacter
}

// ChecksumError reports an embedded checksum disagreeing with the recomputed one.
type ChecksumError struct {
	Embedded uint8
	Computed uint8
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("%s: embedded %#02x, computed %#02x", ErrChecksum, e.Embedded, e.Computed)
}

// Unwrap returns ErrChecksum.
func (e *ChecksumError) Unwrap() error {
	return ErrChecksum
}
