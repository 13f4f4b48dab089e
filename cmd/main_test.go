package main

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/desertthunder/lix/internal/shared"
	"github.com/desertthunder/lix/internal/store"
	"github.com/urfave/cli/v3"
)

// testRunner builds a Runner with buffered output, a quiet logger, and a
// memory-backed token store unless opts provides its own.
func testRunner(t *testing.T, opts RunnerOpts) (*Runner, *bytes.Buffer) {
	t.Helper()

	output := &bytes.Buffer{}
	opts.Output = output
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}

	return NewRunner(opts), output
}

// runCommand dispatches args through the assembled command tree, the same
// path main takes.
func runCommand(t *testing.T, r *Runner, args ...string) error {
	t.Helper()

	app := &cli.Command{
		Name:     "lix",
		Commands: r.register(),
	}

	return app.Run(context.Background(), append([]string{"lix"}, args...))
}
