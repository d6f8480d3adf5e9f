package main

import (
	"context"

	"github.com/outofforest/run"
)

func main() {
	run.New().Run(context.Background(), "euid", func(ctx context.Context) error {
		return newRootCommand().ExecuteContext(ctx)
	})
}
