package euid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/outofforest/euid/pkg/clock"
	"github.com/outofforest/euid/pkg/random"
)

const (
	testNow   = 1_700_000_000_123
	testEpoch = 1_600_000_000_000
)

func newTestGenerator(opts ...Option) (*Generator, *clock.Manual) {
	clk := clock.NewManual(time.UnixMilli(testNow))
	return NewGenerator(append([]Option{
		WithClock(clk),
		WithEntropy(random.NewDeterministic("generator")),
	}, opts...)...), clk
}

func TestCreate(t *testing.T) {
	requireT := require.New(t)

	gen, _ := newTestGenerator()
	id, err := gen.Create()
	requireT.NoError(err)
	requireT.Equal(uint64(testNow), id.Timestamp())
	requireT.Equal(Version1, id.Version())
	_, ok := id.Extension()
	requireT.False(ok)
	requireT.Equal(time.UnixMilli(testNow).UTC(), id.Time(0))

	id2, err := gen.Create()
	requireT.NoError(err)
	requireT.NotEqual(id, id2)
}

func TestCreateWithExtension(t *testing.T) {
	requireT := require.New(t)

	gen, _ := newTestGenerator()
	id, err := gen.CreateWithExtension(32767)
	requireT.NoError(err)
	ext, ok := id.Extension()
	requireT.True(ok)
	requireT.Equal(uint16(32767), ext)

	id, err = gen.CreateWithExtension(0)
	requireT.NoError(err)
	_, ok = id.Extension()
	requireT.False(ok)

	_, err = gen.CreateWithExtension(32768)
	requireT.ErrorIs(err, ErrExtensionOverflow)
}

func TestCreateWithEpoch(t *testing.T) {
	requireT := require.New(t)

	gen, _ := newTestGenerator(WithEpoch(testEpoch))
	requireT.Equal(uint64(testEpoch), gen.Epoch())

	id, err := gen.Create()
	requireT.NoError(err)
	requireT.Equal(uint64(testNow-testEpoch), id.Timestamp())
	requireT.Equal(time.UnixMilli(testNow).UTC(), id.Time(testEpoch))

	// epoch not below the clock reading is ignored
	gen, _ = newTestGenerator(WithEpoch(testNow))
	id, err = gen.Create()
	requireT.NoError(err)
	requireT.Equal(uint64(testNow), id.Timestamp())
}

func TestCreateTimestampOverflow(t *testing.T) {
	requireT := require.New(t)

	gen, clk := newTestGenerator()
	clk.Set(time.UnixMilli(int64(TimestampMask)))
	_, err := gen.Create()
	requireT.NoError(err)

	clk.Advance(time.Millisecond)
	_, err = gen.Create()
	requireT.ErrorIs(err, ErrTimestampOverflow)
	requireT.ErrorIs(err, ErrOverflow)
}

func TestNextWithinMillisecond(t *testing.T) {
	requireT := require.New(t)

	gen, _ := newTestGenerator()
	prev, err := gen.CreateWithExtension(77)
	requireT.NoError(err)

	for range 1000 {
		id, err := gen.Next(prev)
		requireT.NoError(err)
		requireT.Equal(1, id.Compare(prev))

		prevHi, prevLo := prev.Words()
		hi, lo := id.Words()
		requireT.Equal(prevHi, hi)
		requireT.Equal(prevLo>>32+1, lo>>32)
		prev = id
	}
}

func TestNextNewMillisecond(t *testing.T) {
	requireT := require.New(t)

	gen, clk := newTestGenerator()
	prev, err := gen.CreateWithExtension(5)
	requireT.NoError(err)

	clk.Advance(time.Millisecond)
	id, err := gen.Next(prev)
	requireT.NoError(err)
	requireT.Equal(uint64(testNow+1), id.Timestamp())
	requireT.Equal(1, id.Compare(prev))
	ext, ok := id.Extension()
	requireT.True(ok)
	requireT.Equal(uint16(5), ext)

	// clock going backwards creates new identifier as well
	clk.Advance(-2 * time.Millisecond)
	id, err = gen.Next(prev)
	requireT.NoError(err)
	requireT.Equal(uint64(testNow-1), id.Timestamp())
	requireT.Equal(-1, id.Compare(prev))
}

func TestNextSequenceOverflow(t *testing.T) {
	requireT := require.New(t)

	gen, clk := newTestGenerator()
	id, err := gen.Create()
	requireT.NoError(err)
	hi, _ := id.Words()

	_, err = gen.Next(FromWords(hi, 0xffff_fffe_0000_0000))
	requireT.NoError(err)

	_, err = gen.Next(FromWords(hi, 0xffff_ffff_ffff_ffff))
	requireT.ErrorIs(err, ErrSequenceOverflow)
	requireT.ErrorIs(err, ErrOverflow)

	clk.Advance(time.Millisecond)
	_, err = gen.Next(FromWords(hi, 0xffff_ffff_ffff_ffff))
	requireT.NoError(err)
}

func TestFailingEntropy(t *testing.T) {
	requireT := require.New(t)

	gen, _ := newTestGenerator(WithEntropy(failingReader{}))
	id, err := gen.Create()
	requireT.NoError(err)
	requireT.Equal(Fields{Timestamp: testNow, Version: Version1}, Unpack(id))

	id, err = gen.Next(id)
	requireT.NoError(err)
	_, lo := id.Words()
	requireT.Equal(uint64(1)<<32, lo)
}

func TestDefaultGenerator(t *testing.T) {
	requireT := require.New(t)

	before := time.Now().UnixMilli()
	id, err := Create()
	requireT.NoError(err)
	requireT.GreaterOrEqual(id.Timestamp(), uint64(before))

	next, err := id.Next()
	requireT.NoError(err)
	requireT.Equal(1, next.Compare(id))

	id, err = CreateWithExtension(12)
	requireT.NoError(err)
	ext, ok := id.Extension()
	requireT.True(ok)
	requireT.Equal(uint16(12), ext)
}
