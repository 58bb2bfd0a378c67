package clipboard

import (
	"bytes"
	"context"
	"testing"
)

func TestBufferKeepsLastText(t *testing.T) {
	var b Buffer
	ctx := context.Background()

	if err := b.Write(ctx, "first"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := b.Write(ctx, "  second\n"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if b.Text() != "  second\n" {
		t.Errorf("Text() = %q, want verbatim text", b.Text())
	}
	if b.Writes() != 2 {
		t.Errorf("Writes() = %d, want 2", b.Writes())
	}
}

func TestBufferCanceledContext(t *testing.T) {
	var b Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := b.Write(ctx, "x"); err == nil {
		t.Error("Write() with canceled context should fail")
	}
	if b.Writes() != 0 {
		t.Errorf("Writes() = %d, want 0", b.Writes())
	}
}

func TestStreamWritesVerbatim(t *testing.T) {
	var out bytes.Buffer
	s := NewStream(&out)

	if err := s.Write(context.Background(), "  {{text}}\n"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if out.String() != "  {{text}}\n" {
		t.Errorf("stream = %q", out.String())
	}
}
