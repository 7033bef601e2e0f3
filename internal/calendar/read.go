package calendar

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/pfrederiksen/lastfm-events/internal/event"
)

// Parsed is the content of a calendar file read back from disk
type Parsed struct {
	ProductID string
	Version   string
	Events    []event.CalendarEvent
}

// Read parses an iCalendar document written by Calendar.WriteTo
func Read(r io.Reader) (*Parsed, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	parsed := &Parsed{}
	for _, p := range cal.CalendarProperties {
		switch p.IANAToken {
		case string(ical.PropertyProductId):
			parsed.ProductID = p.Value
		case string(ical.PropertyVersion):
			parsed.Version = p.Value
		}
	}

	for i, ve := range cal.Events() {
		evt, err := readEvent(ve)
		if err != nil {
			return nil, fmt.Errorf("reading event %d: %w", i, err)
		}
		parsed.Events = append(parsed.Events, evt)
	}

	return parsed, nil
}

func readEvent(ve *ical.VEvent) (event.CalendarEvent, error) {
	var evt event.CalendarEvent

	evt.UID = textProperty(ve, ical.ComponentPropertyUniqueId)
	evt.Summary = textProperty(ve, ical.ComponentPropertySummary)
	evt.Location = textProperty(ve, ical.ComponentPropertyLocation)
	evt.Description = textProperty(ve, ical.ComponentPropertyDescription)

	start, err := ve.GetStartAt()
	if err != nil {
		return evt, fmt.Errorf("DTSTART: %w", err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return evt, fmt.Errorf("DTEND: %w", err)
	}
	stamp, err := stampProperty(ve)
	if err != nil {
		return evt, fmt.Errorf("DTSTAMP: %w", err)
	}

	evt.Start = event.DateOf(start)
	evt.End = event.DateOf(end)
	evt.Stamp = stamp
	return evt, nil
}

// stampProperty reads DTSTAMP, which is always written in UTC
func stampProperty(ve *ical.VEvent) (time.Time, error) {
	p := ve.GetProperty(ical.ComponentPropertyDtstamp)
	if p == nil {
		return time.Time{}, fmt.Errorf("property not found")
	}
	return time.Parse("20060102T150405Z", p.Value)
}

func textProperty(ve *ical.VEvent, prop ical.ComponentProperty) string {
	p := ve.GetProperty(prop)
	if p == nil {
		return ""
	}
	return p.Value
}
