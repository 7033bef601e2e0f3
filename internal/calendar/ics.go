// Package calendar builds and reads the iCalendar files written for Last.fm event listings.
package calendar

import (
	"fmt"
	"io"

	ical "github.com/arran4/golang-ical"
	"github.com/pfrederiksen/lastfm-events/internal/event"
)

// Version is the iCalendar version written to every calendar
const Version = "2.0"

// Calendar collects the events of a single run before they are serialized once
type Calendar struct {
	cal   *ical.Calendar
	count int
}

// ProductID returns the PRODID written for a user's listing
func ProductID(username, year string) string {
	return fmt.Sprintf("-//Last.fm events for %s %s//", username, year)
}

// New creates an empty calendar for a user's listing
func New(username, year string) *Calendar {
	cal := ical.NewCalendar()
	cal.SetProductId(ProductID(username, year))
	cal.SetVersion(Version)

	return &Calendar{cal: cal}
}

// Add appends an event as an all-day VEVENT.
// Text values are stored raw; the serializer escapes them.
func (c *Calendar) Add(evt event.CalendarEvent) {
	e := c.cal.AddEvent(evt.UID)
	e.SetSummary(evt.Summary)
	e.SetLocation(evt.Location)
	e.SetDescription(evt.Description)
	e.SetAllDayStartAt(evt.Start)
	e.SetAllDayEndAt(evt.End)
	e.SetDtStampTime(evt.Stamp)
	c.count++
}

// Len returns the number of events added so far
func (c *Calendar) Len() int {
	return c.count
}

// WriteTo serializes the calendar to w with CRLF line endings
func (c *Calendar) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := c.cal.SerializeTo(cw, ical.WithNewLineWindows); err != nil {
		return cw.n, fmt.Errorf("serializing calendar: %w", err)
	}
	if cw.err != nil {
		return cw.n, cw.err
	}
	return cw.n, nil
}

// Serialize returns the calendar as a string
func (c *Calendar) Serialize() string {
	return c.cal.Serialize(ical.WithNewLineWindows)
}

// countingWriter tracks bytes written and remembers the first write error,
// since the serializer does not report every write failure.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	if err != nil {
		cw.err = err
	}
	return n, err
}
