package sink

import (
	"context"
	"fmt"
	"io"

	"github.com/pfrederiksen/lastfm-events/internal/calendar"
	"github.com/pfrederiksen/lastfm-events/internal/event"
	"github.com/pfrederiksen/lastfm-events/internal/logger"
	"github.com/pfrederiksen/lastfm-events/internal/storage"
)

// CalendarFile maps rows to calendar events and writes them as one .ics file
type CalendarFile struct {
	store    *storage.Storage
	username string
	year     string
	mapper   event.Mapper
}

// NewCalendarFile creates a sink writing lastfm_events_<username>_<year>.ics into store.
// mapper carries the run's generation stamp.
func NewCalendarFile(store *storage.Storage, username, year string, mapper event.Mapper) *CalendarFile {
	return &CalendarFile{
		store:    store,
		username: username,
		year:     year,
		mapper:   mapper,
	}
}

// Path returns the file the sink writes to
func (c *CalendarFile) Path() string {
	return c.store.Path(storage.FileName(c.username, c.year))
}

// Emit reads every row before writing anything; an extraction error leaves no file behind
func (c *CalendarFile) Emit(ctx context.Context, rows Rows) error {
	cal := calendar.New(c.username, c.year)

	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		cal.Add(c.mapper.Map(rows.Row()))
	}
	if err := rows.Err(); err != nil {
		return err
	}

	logger.AddCounter("events.mapped", int64(cal.Len()))

	path, err := c.store.WriteFile(storage.FileName(c.username, c.year), func(w io.Writer) error {
		_, err := cal.WriteTo(w)
		return err
	})
	if err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}

	logger.Info("Wrote calendar", logger.Fields{
		"path":   path,
		"events": cal.Len(),
	})
	return nil
}
