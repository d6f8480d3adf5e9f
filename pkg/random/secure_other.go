//go:build !linux

package random

import (
	"crypto/rand"

	"github.com/pkg/errors"
)

func read(p []byte) (int, error) {
	n, err := rand.Read(p)
	return n, errors.WithStack(err)
}
