package repl

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

// MaxLineLength is the longest command line the loop accepts, in bytes.
const MaxLineLength = 64 * 1024

// ErrLineTooLong reports an input line over MaxLineLength.
var ErrLineTooLong = errors.New("input line too long")

// Loop reads lines from an input stream and feeds them to a Session.
type Loop struct {
	session *Session
	out     io.Writer
	prompt  string
}

// NewLoop creates a Loop that writes prompts and results to out.
// An empty prompt disables prompting, which suits scripted input.
func NewLoop(session *Session, out io.Writer, prompt string) *Loop {
	return &Loop{session: session, out: out, prompt: prompt}
}

// Run processes lines from in until an exit command, end of input, or ctx
// cancellation. Command errors and over-long lines are printed and the loop
// continues; only failures reading in are returned.
func (l *Loop) Run(ctx context.Context, in io.Reader) error {
	r := bufio.NewReader(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		l.printPrompt()
		line, n, err := readLine(r)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("repl: reading input: %w", err)
		}
		if errors.Is(err, io.EOF) && n == 0 {
			// End of input: finish the prompt line so the shell starts clean.
			if l.prompt != "" {
				_, _ = fmt.Fprintln(l.out)
			}
			return nil
		}
		if n > MaxLineLength {
			_, _ = fmt.Fprintf(l.out, "error: %v (%d bytes, limit %d)\n", ErrLineTooLong, n, MaxLineLength)
			continue
		}

		res, herr := l.session.Handle(line)
		if herr != nil {
			_, _ = fmt.Fprintf(l.out, "error: %v\n", herr)
			continue
		}
		if res.Exit {
			return nil
		}
		if res.Text != "" {
			_, _ = fmt.Fprintln(l.out, res.Text)
		}
	}
}

// readLine reads up to the next newline and returns the line without its
// terminator together with its length in bytes. Bytes past MaxLineLength are
// not kept, so the line is only complete when n <= MaxLineLength.
func readLine(r *bufio.Reader) (line string, n int, err error) {
	var buf []byte
	for {
		chunk, err := r.ReadSlice('\n')
		if !errors.Is(err, bufio.ErrBufferFull) {
			chunk = bytes.TrimSuffix(chunk, []byte("\n"))
			chunk = bytes.TrimSuffix(chunk, []byte("\r"))
		}
		n += len(chunk)
		if len(buf) <= MaxLineLength {
			buf = append(buf, chunk...)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return string(buf), n, err
	}
}

func (l *Loop) printPrompt() {
	if l.prompt != "" {
		_, _ = fmt.Fprint(l.out, l.prompt)
	}
}
