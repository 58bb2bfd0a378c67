// Package clipboard provides the write side of the clipboard capability.
//
// The server never touches an OS clipboard: Buffer captures the text so
// the HTTP layer can hand it back to the browser, and Stream writes it to
// an io.Writer for the CLI (promptdeck copy 12 | pbcopy).
package clipboard

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Buffer records the last text written to it.
type Buffer struct {
	mu     sync.Mutex
	text   string
	writes int
}

func (b *Buffer) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.text = text
	b.writes++
	return nil
}

// Text returns the last written text.
func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// Writes returns how many times Write succeeded.
func (b *Buffer) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes
}

// Stream writes text verbatim to an io.Writer.
type Stream struct {
	W io.Writer
}

func NewStream(w io.Writer) *Stream {
	return &Stream{W: w}
}

func (s *Stream) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := io.WriteString(s.W, text); err != nil {
		return fmt.Errorf("failed to write clipboard stream: %w", err)
	}
	return nil
}
