package emitter

import "context"

// ChannelSink bridges an Emitter onto a Go channel. Its handler is
// non-blocking: payloads are dropped when the buffer is full or the
// bound context is cancelled.
type ChannelSink[P any] struct {
	ch chan<- P
}

// NewChannelSink creates a ChannelSink with the given output channel.
func NewChannelSink[P any](ch chan<- P) *ChannelSink[P] {
	return &ChannelSink[P]{ch: ch}
}

// Handler returns a function suitable for Emitter.On that forwards
// each payload to the channel.
func (s *ChannelSink[P]) Handler(ctx context.Context) func(P) {
	return func(p P) {
		select {
		case s.ch <- p:
		case <-ctx.Done():
		default:
			// Non-blocking drop
		}
	}
}

func (s *ChannelSink[P]) Close() error {
	close(s.ch)
	return nil
}
