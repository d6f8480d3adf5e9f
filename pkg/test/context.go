package test

import (
	"context"
	"testing"

	"github.com/outofforest/logger"
)

// Context returns new context with logger.
func Context(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(logger.WithLogger(context.Background(), logger.New(logger.DefaultConfig)))
	t.Cleanup(cancel)
	return ctx
}
