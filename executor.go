package md2evernote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"
)

// StageError reports a failed pipeline stage.
type StageError struct {
	Stage  string // Stage as rendered by its String method
	Stderr string // Trimmed standard error of external programs
	Err    error
}

func (e *StageError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Stage, e.Err, e.Stderr)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Run feeds body to the first stage and returns the output of the last.
//
// Stages run concurrently, each connected to the next by a pipe. Run
// waits for every stage to exit. When stages fail, the output produced so
// far is still returned together with an error wrapping ErrStageFailed
// and every *StageError, plus the context error when ctx ended first. A
// pipeline without stages returns body.
func (p *Pipeline) Run(ctx context.Context, body string) (string, error) {
	if len(p.stages) == 0 {
		return body, nil
	}

	var (
		g      errgroup.Group
		output bytes.Buffer
	)
	failed := make([]error, len(p.stages))

	var stdin io.Reader = strings.NewReader(body)
	for i, stage := range p.stages {
		in := stdin

		var out io.Writer = &output
		var pw *io.PipeWriter
		if i < len(p.stages)-1 {
			var pr *io.PipeReader
			pr, pw = io.Pipe()
			out = &drainWriter{w: pw}
			stdin = pr
		}

		g.Go(func() error {
			err := stage.Run(ctx, in, out)
			// The next stage sees end of input even after a failure,
			// as in a shell pipeline.
			if pw != nil {
				_ = pw.Close()
			}
			// Unblock the previous stage if this one stopped reading early.
			if pr, ok := in.(*io.PipeReader); ok {
				_ = pr.CloseWithError(io.ErrClosedPipe)
			}
			failed[i] = err
			return err
		})
	}

	if err := g.Wait(); err != nil {
		joined := errors.Join(failed...)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return output.String(), fmt.Errorf("%w: %w: %w", ErrStageFailed, ctxErr, joined)
		}
		return output.String(), fmt.Errorf("%w: %w", ErrStageFailed, joined)
	}
	return output.String(), nil
}

// drainWriter forwards writes until the destination fails, then discards
// them so a stage whose reader went away can still run to completion.
type drainWriter struct {
	w   io.Writer
	err error
}

func (d *drainWriter) Write(p []byte) (int, error) {
	if d.err == nil {
		if _, err := d.w.Write(p); err != nil {
			d.err = err
		}
	}
	return len(p), nil
}
