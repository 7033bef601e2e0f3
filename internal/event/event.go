package event

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Row is a single event as extracted from the listing page
type Row struct {
	Date     time.Time `json:"date"`
	Link     string    `json:"link"`
	Title    string    `json:"title"`
	Lineup   string    `json:"lineup"` // Supporting acts only, may be empty
	Location string    `json:"location"`
}

// CalendarEvent is a Row mapped onto the fields written to the calendar file
type CalendarEvent struct {
	UID         string    `json:"uid"`
	Summary     string    `json:"summary"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Stamp       time.Time `json:"stamp"`
}

// Mapper maps rows to calendar events for a single run
type Mapper struct {
	// Stamp is the generation time shared by every event of the run.
	Stamp time.Time

	// UniqueUIDs appends a name-based UUID derived from the event link to each UID,
	// so two events with the same title get different UIDs.
	UniqueUIDs bool
}

// Map converts a row into a calendar event using the given generation stamp
func Map(row Row, stamp time.Time) CalendarEvent {
	return Mapper{Stamp: stamp}.Map(row)
}

// Map converts a row into a calendar event
func (m Mapper) Map(row Row) CalendarEvent {
	location := NormalizeLocation(row.Location)

	return CalendarEvent{
		UID:         m.uid(row),
		Summary:     row.Title + " at " + location,
		Location:    location,
		Description: row.Title + " + " + row.Lineup + ". Link: " + row.Link,
		Start:       row.Date,
		End:         row.Date.AddDate(0, 0, 1),
		Stamp:       m.Stamp,
	}
}

func (m Mapper) uid(row Row) string {
	uid := FormatStamp(m.Stamp) + row.Title
	if m.UniqueUIDs {
		uid += "-" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(row.Link)).String()
	}
	return uid
}

// NormalizeLocation joins the lines of a multi-line venue into a single line
func NormalizeLocation(location string) string {
	return strings.ReplaceAll(location, "\n", ", ")
}

// FormatStamp renders a generation time as "2006-01-02 15:04:05.000000-07:00".
// The fractional part is left out when the time has no sub-second component.
func FormatStamp(t time.Time) string {
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format("2006-01-02 15:04:05-07:00")
	}
	return t.Format("2006-01-02 15:04:05.000000-07:00")
}

// Now returns the current time in loc, truncated to microseconds
func Now(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Now().In(loc).Truncate(time.Microsecond)
}
