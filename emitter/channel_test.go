package emitter

import (
	"context"
	"testing"
	"time"
)

func TestChannelSinkDelivery(t *testing.T) {
	ch := make(chan string, 10)
	sink := NewChannelSink(ch)

	e := New[string]("sink-test")
	e.On(sink.Handler(context.Background()))

	if err := e.Emit("hello"); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-ch:
		if got != "hello" {
			t.Errorf("payload mismatch: got %q, want %q", got, "hello")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("no payload delivered")
	}
}

func TestChannelSinkBackpressureDrop(t *testing.T) {
	ch := make(chan int, 1)
	sink := NewChannelSink(ch)
	ch <- 0 // Fill buffer

	h := sink.Handler(context.Background())
	h(1) // Should drop silently, not block

	if got := <-ch; got != 0 {
		t.Errorf("expected original buffered value, got %d", got)
	}
	select {
	case got := <-ch:
		t.Errorf("dropped payload was delivered: %d", got)
	default:
	}
}

func TestChannelSinkCancelledContext(t *testing.T) {
	ch := make(chan int) // Unbuffered: would block without cancel/drop
	sink := NewChannelSink(ch)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := sink.Handler(ctx)
	done := make(chan struct{})
	go func() {
		h(1)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Error("handler blocked despite cancelled context")
	}
}

func TestChannelSinkClose(t *testing.T) {
	ch := make(chan int, 1)
	sink := NewChannelSink(ch)

	if err := sink.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if _, open := <-ch; open {
		t.Error("channel still open after Close")
	}
}
