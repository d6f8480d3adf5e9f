package euid

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/outofforest/euid/pkg/random"
)

// Clock is the source of the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock sets the source of the current time.
func WithClock(clock Clock) Option {
	return func(g *Generator) {
		g.clock = clock
	}
}

// WithEntropy sets the source of random bits. Reading it should not fail, if it does,
// the bits are zero.
func WithEntropy(entropy io.Reader) Option {
	return func(g *Generator) {
		g.entropy = entropy
	}
}

// WithEpoch sets the epoch, in Unix milliseconds, subtracted from the clock reading.
// Readings not later than the epoch are used unchanged.
func WithEpoch(epoch uint64) Option {
	return func(g *Generator) {
		g.epoch = epoch
	}
}

// Generator creates identifiers. It keeps no state between calls, so it is safe for
// concurrent use as long as its clock and entropy are.
type Generator struct {
	clock   Clock
	entropy io.Reader
	epoch   uint64
}

// NewGenerator creates a generator using the system clock and the secure random source
// unless configured otherwise.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		clock:   systemClock{},
		entropy: random.Secure,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Epoch returns the configured epoch in Unix milliseconds.
func (g *Generator) Epoch() uint64 {
	return g.epoch
}

// Create returns new identifier without extension.
func (g *Generator) Create() (EUID, error) {
	return g.create(g.timestamp(), 0)
}

// CreateWithExtension returns new identifier carrying extension, which must fit in 15 bits.
// Extension 0 is stored as no extension.
func (g *Generator) CreateWithExtension(extension uint16) (EUID, error) {
	return g.create(g.timestamp(), extension)
}

// Next returns an identifier greater than prev if the clock still reads the timestamp of
// prev. In that case the sequence counter in the upper half of the low word is
// incremented and ErrSequenceOverflow is returned once it is exhausted. Otherwise a new
// identifier is created, with the extension of prev.
func (g *Generator) Next(prev EUID) (EUID, error) {
	timestamp := g.timestamp()
	if timestamp != prev.Timestamp() {
		extension, _ := prev.Extension()
		return g.create(timestamp, extension)
	}

	seq := prev.lo >> sequenceShift
	if seq == sequenceMax {
		return EUID{}, errors.WithStack(ErrSequenceOverflow)
	}
	return EUID{
		hi: prev.hi,
		lo: (seq+1)<<sequenceShift | uint64(g.random32()),
	}, nil
}

func (g *Generator) create(timestamp uint64, extension uint16) (EUID, error) {
	return Pack(timestamp, extension, g.random128())
}

func (g *Generator) timestamp() uint64 {
	now := uint64(g.clock.Now().UnixMilli())
	if g.epoch < now {
		return now - g.epoch
	}
	return now
}

func (g *Generator) random32() uint32 {
	var b [4]byte
	if _, err := io.ReadFull(g.entropy, b[:]); err != nil {
		return 0
	}
	return binary.BigEndian.Uint32(b[:])
}

func (g *Generator) random128() [2]uint64 {
	var b [16]byte
	if _, err := io.ReadFull(g.entropy, b[:]); err != nil {
		return [2]uint64{}
	}
	return [2]uint64{binary.BigEndian.Uint64(b[:8]), binary.BigEndian.Uint64(b[8:])}
}

var defaultGenerator = NewGenerator()

// Create returns new identifier using the default generator.
func Create() (EUID, error) {
	return defaultGenerator.Create()
}

// CreateWithExtension returns new identifier with extension using the default generator.
func CreateWithExtension(extension uint16) (EUID, error) {
	return defaultGenerator.CreateWithExtension(extension)
}

// Next returns the successor of id using the default generator. See Generator.Next.
func (id EUID) Next() (EUID, error) {
	return defaultGenerator.Next(id)
}
