package euid

import (
	"io"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/outofforest/euid/pkg/random"
)

func randomIDs(key string, n int) []EUID {
	r := random.NewDeterministic(key)
	ids := make([]EUID, 0, n)
	for range n {
		var b [Size]byte
		lo.Must(io.ReadFull(r, b[:]))
		ids = append(ids, lo.Must(FromBytes(b[:])))
	}
	return ids
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}
