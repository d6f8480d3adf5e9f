// Package idgen produces identifiers in their text form.
//
// Generators are injected into a context so code deep in a call chain can create
// identifiers without knowing how they are made. Identifiers are EUIDs:
//   - time-ordered, text sorts like binary
//   - 27 characters of a human friendly base-32 alphabet (no I, L, O, U)
//   - self-verifying through an embedded checksum
package idgen
