package random

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

func read(p []byte) (int, error) {
	var n int
	for n < len(p) {
		m, err := unix.Getrandom(p[n:], 0)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case err != nil:
			return n, errors.WithStack(err)
		}
		n += m
	}
	return n, nil
}
