package clock

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/beevik/ntp"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/outofforest/logger"
)

const (
	// DefaultNTPServer is used when no server is configured.
	DefaultNTPServer = "pool.ntp.org"

	queryTimeout  = 5 * time.Second
	retryInterval = 10 * time.Second
	syncInterval  = time.Hour
)

// NTP is a system clock corrected by the offset reported by an NTP server.
// Until the first successful Sync it reads the system time unchanged.
type NTP struct {
	server string
	offset atomic.Int64
}

// NewNTP returns a clock synchronized against server.
func NewNTP(server string) *NTP {
	if server == "" {
		server = DefaultNTPServer
	}
	return &NTP{server: server}
}

// Now returns the corrected time.
func (c *NTP) Now() time.Time {
	return time.Now().Add(c.Offset())
}

// Offset returns the correction applied to the system time.
func (c *NTP) Offset() time.Duration {
	return time.Duration(c.offset.Load())
}

// Sync queries the server once and stores the offset.
func (c *NTP) Sync(ctx context.Context) error {
	resp, err := ntp.QueryWithOptions(c.server, ntp.QueryOptions{Timeout: queryTimeout})
	if err != nil {
		return errors.Wrapf(err, "querying NTP server %s failed", c.server)
	}
	if err := resp.Validate(); err != nil {
		return errors.Wrapf(err, "invalid response from NTP server %s", c.server)
	}

	c.offset.Store(int64(resp.ClockOffset))
	logger.Get(ctx).Debug("Clock synchronized", zap.String("server", c.server),
		zap.Duration("offset", resp.ClockOffset))
	return nil
}

// Run synchronizes the clock periodically until ctx is canceled.
func (c *NTP) Run(ctx context.Context) error {
	log := logger.Get(ctx)
	for {
		wait := syncInterval
		if err := c.Sync(ctx); err != nil {
			log.Error("Synchronizing clock failed", zap.String("server", c.server), zap.Error(err))
			wait = retryInterval
		}

		select {
		case <-ctx.Done():
			return errors.WithStack(ctx.Err())
		case <-time.After(wait):
		}
	}
}
