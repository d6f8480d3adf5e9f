package random

import (
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20"
)

// NewDeterministic returns a source producing the same stream for the same key.
// The returned reader is not safe for concurrent use.
func NewDeterministic(key string) io.Reader {
	seed := blake2b.Sum256([]byte(key))
	cipher, err := chacha20.NewUnauthenticatedCipher(seed[:], make([]byte, chacha20.NonceSize))
	if err != nil {
		// key and nonce sizes are fixed
		panic(err)
	}
	return &deterministicReader{cipher: cipher}
}

type deterministicReader struct {
	cipher *chacha20.Cipher
}

func (r *deterministicReader) Read(p []byte) (int, error) {
	clear(p)
	r.cipher.XORKeyStream(p, p)
	return len(p), nil
}
