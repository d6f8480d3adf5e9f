package euid

import "github.com/google/uuid"

// UUID returns the identifier as a UUID sharing the same 16 bytes.
// The result does not carry RFC 4122 version or variant bits.
func (id EUID) UUID() uuid.UUID {
	return uuid.UUID(id.Bytes())
}

// FromUUID converts a UUID byte for byte.
func FromUUID(u uuid.UUID) EUID {
	id, _ := FromBytes(u[:])
	return id
}
