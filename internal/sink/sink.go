package sink

import (
	"context"

	"github.com/pfrederiksen/lastfm-events/internal/event"
)

// Rows is a forward-only sequence of extracted rows
type Rows interface {
	Next() bool
	Row() event.Row
	Err() error
}

// Sink consumes the rows of a run
type Sink interface {
	// Emit drains rows and produces the run's output
	Emit(ctx context.Context, rows Rows) error
}
