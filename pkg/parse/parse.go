package parse

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/outofforest/euid"
)

// EUID parses identifier.
func EUID(id string) euid.EUID {
	return lo.Must(euid.Parse(id))
}

// Epoch parses epoch.
func Epoch(epoch string) uint64 {
	return lo.Must(ParseEpoch(epoch))
}

// Extension parses extension.
func Extension(ext string) uint16 {
	return lo.Must(ParseExtension(ext))
}

// ParseEpoch parses epoch given either as milliseconds since the Unix epoch or as RFC3339 time.
func ParseEpoch(epoch string) (uint64, error) {
	epoch = strings.TrimSpace(epoch)
	if epoch == "" {
		return 0, errors.New("empty epoch")
	}

	if ms, err := strconv.ParseUint(epoch, 10, 64); err == nil {
		return ms, nil
	}

	t, err := time.Parse(time.RFC3339Nano, epoch)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid epoch %q", epoch)
	}
	if t.Before(time.Unix(0, 0)) {
		return 0, errors.Errorf("epoch %q is before the Unix epoch", epoch)
	}
	return uint64(t.UnixMilli()), nil
}

// ParseExtension parses extension given as decimal or 0x-prefixed hexadecimal number.
func ParseExtension(ext string) (uint16, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(ext), 0, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid extension %q", ext)
	}
	if v > uint64(euid.ExtensionMask) {
		return 0, errors.WithStack(euid.ErrExtensionOverflow)
	}
	return uint16(v), nil
}
