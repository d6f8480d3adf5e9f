// Package random provides sources of random bits for identifier generation.
//
// Secure reads the operating system's cryptographically secure generator. Deterministic
// sources produce a reproducible stream derived from a key and are meant for tests and
// reproducible fixtures only.
package random
