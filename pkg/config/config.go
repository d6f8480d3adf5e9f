// Package config holds settings of identifier generation.
package config

import (
	"github.com/pkg/errors"

	"github.com/outofforest/euid"
	"github.com/outofforest/euid/pkg/shard"
)

// Config is the configuration of identifier generation.
type Config struct {
	// Epoch is subtracted from the clock reading, in milliseconds since the Unix epoch.
	Epoch uint64

	// Extension is stored in generated identifiers if HasExtension is set.
	Extension    uint16
	HasExtension bool

	// ShardKey, if set, is hashed into the extension using ShardBits bits.
	ShardKey  string
	ShardBits uint8

	// Checksum enables embedding the checksum in the text form.
	Checksum bool

	// NTPServer, if set, is used to correct the system clock.
	NTPServer string
}

// Default returns default configuration.
func Default() Config {
	return Config{
		ShardBits: shard.MaxBits,
		Checksum:  true,
	}
}

// Validate verifies that configuration is consistent.
func (c Config) Validate() error {
	if c.HasExtension && c.ShardKey != "" {
		return errors.New("extension and shard key are mutually exclusive")
	}
	if c.HasExtension && c.Extension > euid.ExtensionMask {
		return errors.WithStack(euid.ErrExtensionOverflow)
	}
	if c.ShardKey != "" && (c.ShardBits == 0 || c.ShardBits > shard.MaxBits) {
		return errors.Errorf("shard bits must be in range [1, %d], got %d", shard.MaxBits, c.ShardBits)
	}
	return nil
}

// ResolveExtension returns the extension to store in generated identifiers.
func (c Config) ResolveExtension() (uint16, bool, error) {
	if err := c.Validate(); err != nil {
		return 0, false, err
	}
	if c.ShardKey != "" {
		ext, err := shard.Of(c.ShardKey, c.ShardBits)
		if err != nil {
			return 0, false, err
		}
		return ext, true, nil
	}
	if c.HasExtension && c.Extension != 0 {
		return c.Extension, true, nil
	}
	return 0, false, nil
}

// Options returns generator options derived from the configuration.
func (c Config) Options() []euid.Option {
	return []euid.Option{
		euid.WithEpoch(c.Epoch),
	}
}
