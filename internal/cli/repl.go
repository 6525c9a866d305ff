package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

const (
	prompt      = "> "
	maxLineSize = 1 << 20
)

// executor is the command surface the loop drives. *session.Processor
// satisfies it; tests provide a stub.
type executor interface {
	Execute(ctx context.Context, line string) (out string, exit bool)
}

// flusher is implemented by buffered writers.
type flusher interface {
	Flush() error
}

// runREPL reads lines from in and writes each non-empty response to out.
//
// It returns on "exit", at end of input, or when ctx is cancelled (checked
// between lines). With interactive set, a prompt is written and out is
// flushed before every read so the user sees each answer immediately.
func runREPL(ctx context.Context, e executor, in io.Reader, out io.Writer, interactive bool) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	f, _ := out.(flusher)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		if interactive {
			if _, err := fmt.Fprint(out, prompt); err != nil {
				return err
			}
			if f != nil {
				if err := f.Flush(); err != nil {
					return err
				}
			}
		}

		if !scanner.Scan() {
			return scanner.Err()
		}

		resp, exit := e.Execute(ctx, scanner.Text())
		if resp != "" {
			if _, err := fmt.Fprintln(out, resp); err != nil {
				return err
			}
		}
		if exit {
			return nil
		}
	}
}
