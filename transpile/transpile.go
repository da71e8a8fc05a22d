//go:build !typescript

// Package transpile converts TypeScript module source to JavaScript before
// it enters the bundler. The TypeScript compiler is heavy, so support is
// opt-in via the `typescript` build tag; default builds fail loudly when a
// .ts module is reached.
package transpile

import (
	"context"
	"fmt"
	"io"
)

var ErrTypescriptNotEnabled = fmt.Errorf("typescript support is not enabled on this build")

func TranspileTypescript(ctx context.Context, reader io.Reader) (string, error) {
	return "", ErrTypescriptNotEnabled
}
