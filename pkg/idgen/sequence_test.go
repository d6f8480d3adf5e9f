package idgen

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/outofforest/euid"
	"github.com/outofforest/euid/pkg/clock"
	"github.com/outofforest/euid/pkg/random"
)

func newGenerator(clk euid.Clock) *euid.Generator {
	return euid.NewGenerator(
		euid.WithClock(clk),
		euid.WithEntropy(random.NewDeterministic("sequence")),
	)
}

func TestSequence(t *testing.T) {
	requireT := require.New(t)
	ctx := context.Background()

	clk := clock.NewManual(time.UnixMilli(1_700_000_000_000))
	seq := NewSequence(newGenerator(clk), 9)

	var last euid.EUID
	for i := range 100 {
		if i%10 == 0 {
			clk.Advance(time.Millisecond)
		}
		id, err := seq.Next(ctx)
		requireT.NoError(err)
		requireT.Equal(1, id.Compare(last))
		ext, ok := id.Extension()
		requireT.True(ok)
		requireT.Equal(uint16(9), ext)
		last = id
	}
}

func TestSequenceWaitsForClock(t *testing.T) {
	requireT := require.New(t)
	ctx := context.Background()

	clk := clock.NewManual(time.UnixMilli(1_700_000_000_000))
	seq := NewSequence(newGenerator(clk), 0)

	first, err := seq.Next(ctx)
	requireT.NoError(err)

	clk.Advance(-time.Second)
	go func() {
		time.Sleep(10 * time.Millisecond)
		clk.Advance(time.Second + time.Millisecond)
	}()

	id, err := seq.Next(ctx)
	requireT.NoError(err)
	requireT.Equal(1, id.Compare(first))
	requireT.Equal(first.Timestamp()+1, id.Timestamp())
}

func TestSequenceCanceled(t *testing.T) {
	requireT := require.New(t)

	clk := clock.NewManual(time.UnixMilli(1_700_000_000_000))
	seq := NewSequence(newGenerator(clk), 0)

	_, err := seq.Next(context.Background())
	requireT.NoError(err)

	clk.Advance(-time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = seq.Next(ctx)
	requireT.ErrorIs(err, context.Canceled)
}

func TestSequenceConcurrent(t *testing.T) {
	requireT := require.New(t)

	seq := NewSequence(euid.NewGenerator(), 3)

	const (
		workers = 8
		perWork = 500
	)
	results := make([][]euid.EUID, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWork {
				results[i] = append(results[i], euid.MustParse(seq.ID()))
			}
		}()
	}
	wg.Wait()

	seen := map[euid.EUID]struct{}{}
	for _, ids := range results {
		for i, id := range ids {
			if i > 0 {
				requireT.Equal(1, id.Compare(ids[i-1]))
			}
			seen[id] = struct{}{}
		}
	}
	requireT.Len(seen, workers*perWork)
}
