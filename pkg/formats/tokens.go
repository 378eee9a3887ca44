package formats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// tokenReader splits a text stream into whitespace-delimited tokens.
// It keeps line awareness so PLY header comments can be consumed whole.
type tokenReader struct {
	r   *bufio.Reader
	buf []byte
}

func newTokenReader(r io.Reader) *tokenReader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &tokenReader{r: br}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// Next returns the next token, or io.EOF once the stream is exhausted.
func (t *tokenReader) Next() (string, error) {
	// Skip leading whitespace.
	for {
		c, err := t.r.ReadByte()
		if err != nil {
			return "", err
		}
		if !isSpace(c) {
			t.buf = append(t.buf[:0], c)
			break
		}
	}

	for {
		c, err := t.r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if isSpace(c) {
			// Leave the newline for RestOfLine.
			if c == '\n' {
				_ = t.r.UnreadByte()
			}
			break
		}
		t.buf = append(t.buf, c)
	}
	return string(t.buf), nil
}

// RestOfLine consumes up to and including the next newline and returns the
// trimmed text before it.
func (t *tokenReader) RestOfLine() (string, error) {
	line, err := t.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Expect reads the next token and fails unless it equals want.
func (t *tokenReader) Expect(want string) error {
	tok, err := t.Next()
	if err != nil {
		return tokenErr(err, "expected %q", want)
	}
	if tok != want {
		return fmt.Errorf("%w: expected %q, got %q", ErrToken, want, tok)
	}
	return nil
}

// Float reads the next token as a number with the given bit size.
func (t *tokenReader) Float(bitSize int) (float64, error) {
	tok, err := t.Next()
	if err != nil {
		return 0, tokenErr(err, "expected number")
	}
	f, err := strconv.ParseFloat(tok, bitSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrToken, tok)
	}
	return f, nil
}

// tokenErr maps a read error into ErrToken, noting truncation on EOF.
func tokenErr(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if err == io.EOF {
		return fmt.Errorf("%w: %s, got end of data", ErrToken, msg)
	}
	return fmt.Errorf("%w: %s: %w", ErrToken, msg, err)
}
