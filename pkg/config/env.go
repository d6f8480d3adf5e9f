package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/outofforest/euid/pkg/parse"
)

// Environment variables recognized by FromEnv.
const (
	EnvEpoch     = "EUID_EPOCH"
	EnvExtension = "EUID_EXTENSION"
	EnvShardKey  = "EUID_SHARD_KEY"
	EnvShardBits = "EUID_SHARD_BITS"
	EnvChecksum  = "EUID_CHECKSUM"
	EnvNTPServer = "EUID_NTP_SERVER"
)

// FromEnv overlays EUID_* environment variables onto cfg.
func FromEnv(cfg *Config) error {
	if v := os.Getenv(EnvEpoch); v != "" {
		epoch, err := parse.ParseEpoch(v)
		if err != nil {
			return errors.Wrapf(err, "parsing %s failed", EnvEpoch)
		}
		cfg.Epoch = epoch
	}
	if v := os.Getenv(EnvExtension); v != "" {
		ext, err := parse.ParseExtension(v)
		if err != nil {
			return errors.Wrapf(err, "parsing %s failed", EnvExtension)
		}
		cfg.Extension = ext
		cfg.HasExtension = true
	}
	if v := os.Getenv(EnvShardKey); v != "" {
		cfg.ShardKey = v
	}
	if v := os.Getenv(EnvShardBits); v != "" {
		bits, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return errors.Wrapf(err, "parsing %s failed", EnvShardBits)
		}
		cfg.ShardBits = uint8(bits)
	}
	if v := os.Getenv(EnvChecksum); v != "" {
		checksum, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "parsing %s failed", EnvChecksum)
		}
		cfg.Checksum = checksum
	}
	if v := os.Getenv(EnvNTPServer); v != "" {
		cfg.NTPServer = v
	}
	return nil
}
