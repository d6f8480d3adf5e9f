package idgen

import (
	"github.com/pkg/errors"

	"github.com/outofforest/euid"
)

// NewConstant returns new generator that produces a constant ID once.
func NewConstant(id string) Generator {
	if _, err := euid.Parse(id); err != nil {
		panic(errors.Wrapf(err, "expected EUID, got %s", id))
	}
	return &constantGenerator{id: &id}
}

// constantGenerator is a generator.
type constantGenerator struct {
	id *string
}

// ID is the implementation of Generator.ID.
func (cg *constantGenerator) ID() string {
	if cg.id == nil {
		// id was discarded, constantGenerator.ID shouldn't be use more than once
		panic("constantGenerator.ID shouldn't be use more than once")
	}
	id := *cg.id
	cg.id = nil
	return id
}
