// Package shard maps keys to identifier extensions, so identifiers created for the same
// key (tenant, table, node) carry the same tag.
package shard

import (
	"github.com/cespare/xxhash"
	"github.com/pkg/errors"
)

// MaxBits is the largest number of bits an extension may use.
const MaxBits = 15

// Of returns the extension of key using the given number of bits, 1 to MaxBits.
// Zero is never returned because an extension of 0 is indistinguishable from no extension.
func Of(key string, bits uint8) (uint16, error) {
	if bits == 0 || bits > MaxBits {
		return 0, errors.Errorf("number of bits must be in range [1, %d], got %d", MaxBits, bits)
	}
	n := uint64(1) << bits
	// maps into [1, 2^bits - 1]
	return uint16(xxhash.Sum64([]byte(key))%(n-1) + 1), nil
}

// Must is like Of but panics on error.
func Must(key string, bits uint8) uint16 {
	ext, err := Of(key, bits)
	if err != nil {
		panic(err)
	}
	return ext
}

