package random

import "io"

// Secure is the cryptographically secure random source. It is safe for concurrent use.
var Secure io.Reader = secureReader{}

type secureReader struct{}

func (secureReader) Read(p []byte) (int, error) {
	return read(p)
}
