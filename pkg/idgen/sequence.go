package idgen

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/outofforest/euid"
)

const retryDelay = time.Millisecond / 8

// Sequence produces strictly increasing identifiers. It is safe for concurrent use.
//
// When the sequence of the current millisecond is exhausted, or the clock went backwards,
// it waits until the clock moves past the last identifier.
type Sequence struct {
	gen       *euid.Generator
	extension uint16

	mu   sync.Mutex
	last euid.EUID
	used bool
}

// NewSequence returns a sequence of identifiers created by gen and carrying extension.
func NewSequence(gen *euid.Generator, extension uint16) *Sequence {
	return &Sequence{gen: gen, extension: extension}
}

// Next returns the next identifier.
func (s *Sequence) Next(ctx context.Context) (euid.EUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.used {
		id, err := s.gen.CreateWithExtension(s.extension)
		if err != nil {
			return euid.EUID{}, err
		}
		s.last = id
		s.used = true
		return id, nil
	}

	for {
		id, err := s.gen.Next(s.last)
		switch {
		case err == nil && id.Compare(s.last) > 0:
			s.last = id
			return id, nil
		case err != nil && !errors.Is(err, euid.ErrSequenceOverflow):
			return euid.EUID{}, err
		}

		select {
		case <-ctx.Done():
			return euid.EUID{}, errors.WithStack(ctx.Err())
		case <-time.After(retryDelay):
		}
	}
}

// ID is the implementation of Generator.ID.
func (s *Sequence) ID() string {
	return lo.Must(s.Next(context.Background())).String()
}
