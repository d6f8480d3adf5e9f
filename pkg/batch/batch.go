// Package batch generates many identifiers concurrently, one independent monotonic
// sequence per shard.
package batch

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/outofforest/euid"
	"github.com/outofforest/euid/pkg/idgen"
	"github.com/outofforest/logger"
	"github.com/outofforest/parallel"
)

// Config configures batch generation.
type Config struct {
	// Count is the total number of identifiers.
	Count int
	// Shards is the number of concurrent sequences. Shard n (1-based) is stored as the
	// extension of its identifiers. Zero means a single sequence without extension.
	Shards int
}

// Generate returns cfg.Count identifiers in ascending order.
func Generate(ctx context.Context, gen *euid.Generator, cfg Config) ([]euid.EUID, error) {
	if cfg.Count < 0 {
		return nil, errors.Errorf("count must not be negative, got %d", cfg.Count)
	}
	if cfg.Shards < 0 || cfg.Shards > int(euid.ExtensionMask) {
		return nil, errors.Errorf("number of shards must be in range [0, %d], got %d", euid.ExtensionMask,
			cfg.Shards)
	}

	if cfg.Shards == 0 {
		return generate(ctx, idgen.NewSequence(gen, 0), cfg.Count)
	}

	results := make([][]euid.EUID, cfg.Shards)
	err := parallel.Run(ctx, func(ctx context.Context, spawn parallel.SpawnFn) error {
		for i := range cfg.Shards {
			shard := uint16(i + 1)
			count := cfg.Count / cfg.Shards
			if i < cfg.Count%cfg.Shards {
				count++
			}

			spawn(fmt.Sprintf("shard-%d", shard), parallel.Continue, func(ctx context.Context) error {
				ids, err := generate(ctx, idgen.NewSequence(gen, shard), count)
				if err != nil {
					return errors.Wrapf(err, "generating identifiers for shard %d failed", shard)
				}
				results[i] = ids
				logger.Get(ctx).Debug("Shard generated", zap.Uint16("shard", shard), zap.Int("count", count))
				return nil
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ids := lo.Flatten(results)
	euid.Sort(ids)
	return ids, nil
}

func generate(ctx context.Context, seq *idgen.Sequence, count int) ([]euid.EUID, error) {
	ids := make([]euid.EUID, 0, count)
	for range count {
		id, err := seq.Next(ctx)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
