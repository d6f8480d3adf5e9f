package idgen

import (
	"github.com/samber/lo"

	"github.com/outofforest/euid"
)

type randomGenerator struct{}

// Random is the global ID generator that produces random identifiers.
var Random Generator = randomGenerator{}

func (rs randomGenerator) ID() string {
	return lo.Must(euid.Create()).String()
}
