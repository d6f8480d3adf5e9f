package tnet

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var lc = net.ListenConfig{
	KeepAlive: 3 * time.Minute,
}

// Listen installs a listener on the specified address.
//
// Address prefixed with "unix:" is the path of a UNIX domain socket. Otherwise it is
// [address]:port of a TCP socket, optionally prefixed with "tcp:".
func Listen(ctx context.Context, address string) (net.Listener, error) {
	proto := "tcp"
	if strings.HasPrefix(address, "unix:") {
		proto = "unix"
	}

	l, err := lc.Listen(ctx, proto, strings.TrimPrefix(address, proto+":"))
	if err != nil {
		return nil, errors.Wrapf(err, "listening on %s failed", address)
	}
	return l, nil
}

// ListenOnRandomPort installs a TCP listener on a random local port.
func ListenOnRandomPort(ctx context.Context) (net.Listener, error) {
	return Listen(ctx, "localhost:0")
}
