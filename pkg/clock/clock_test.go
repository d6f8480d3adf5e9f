package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManual(t *testing.T) {
	requireT := require.New(t)

	start := time.UnixMilli(1_700_000_000_000)
	clk := NewManual(start)
	requireT.True(start.Equal(clk.Now()))

	clk.Advance(time.Millisecond)
	requireT.Equal(start.UnixMilli()+1, clk.Now().UnixMilli())

	clk.Advance(-time.Second)
	requireT.Equal(start.UnixMilli()-999, clk.Now().UnixMilli())

	clk.Set(start)
	requireT.True(start.Equal(clk.Now()))
}

func TestNTPBeforeSync(t *testing.T) {
	requireT := require.New(t)

	clk := NewNTP("")
	requireT.Equal(DefaultNTPServer, clk.server)
	requireT.Zero(clk.Offset())

	before := time.Now()
	now := clk.Now()
	requireT.False(now.Before(before))
	requireT.Less(now.Sub(before), time.Second)

	clk.offset.Store(int64(time.Hour))
	requireT.Greater(clk.Now().Sub(time.Now()), 59*time.Minute)
}
