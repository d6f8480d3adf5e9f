package idgen

import (
	"time"

	"github.com/samber/lo"

	"github.com/outofforest/euid"
	"github.com/outofforest/euid/pkg/clock"
	"github.com/outofforest/euid/pkg/random"
)

type deterministicGenerator struct {
	gen  *euid.Generator
	last *euid.EUID
}

// NewDeterministic creates new deterministic ID generator.
// Generators with the same key will produce exactly the same identifier sequences.
// All the identifiers share the timestamp of the Unix epoch and are strictly increasing.
func NewDeterministic(key string) Generator {
	return &deterministicGenerator{
		gen: euid.NewGenerator(
			euid.WithClock(clock.NewManual(time.UnixMilli(0))),
			euid.WithEntropy(random.NewDeterministic(key)),
		),
	}
}

func (ds *deterministicGenerator) ID() string {
	var id euid.EUID
	if ds.last == nil {
		id = lo.Must(ds.gen.Create())
	} else {
		// 2^32 identifiers per key before the sequence overflows
		id = lo.Must(ds.gen.Next(*ds.last))
	}
	ds.last = &id
	return id.String()
}
