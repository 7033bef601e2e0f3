package event

import (
	"strings"
	"testing"
	"time"
)

func TestMap(t *testing.T) {
	stamp := time.Date(2024, 1, 25, 12, 34, 56, 789012000, time.FixedZone("CET", 3600))
	row := Row{
		Date:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Link:     "https://www.last.fm/event/123",
		Title:    "Big Show",
		Lineup:   "Support Act",
		Location: "Venue Hall\nCity",
	}

	evt := Map(row, stamp)

	if evt.Summary != "Big Show at Venue Hall, City" {
		t.Errorf("Summary = %q", evt.Summary)
	}
	if evt.Location != "Venue Hall, City" {
		t.Errorf("Location = %q", evt.Location)
	}
	if evt.Description != "Big Show + Support Act. Link: https://www.last.fm/event/123" {
		t.Errorf("Description = %q", evt.Description)
	}
	if got := evt.Start.Format("2006-01-02"); got != "2024-05-01" {
		t.Errorf("Start = %s, want 2024-05-01", got)
	}
	if got := evt.End.Format("2006-01-02"); got != "2024-05-02" {
		t.Errorf("End = %s, want 2024-05-02", got)
	}
	if !evt.Stamp.Equal(stamp) {
		t.Errorf("Stamp = %v, want %v", evt.Stamp, stamp)
	}
	if evt.UID != "2024-01-25 12:34:56.789012+01:00Big Show" {
		t.Errorf("UID = %q", evt.UID)
	}
}

func TestMap_EndIsOneDayAfterStart(t *testing.T) {
	stamp := time.Now()
	dates := []time.Time{
		time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	for _, d := range dates {
		t.Run(d.Format("2006-01-02"), func(t *testing.T) {
			evt := Map(Row{Date: d, Title: "x"}, stamp)
			if !evt.End.Equal(evt.Start.AddDate(0, 0, 1)) {
				t.Errorf("End = %v, want %v", evt.End, evt.Start.AddDate(0, 0, 1))
			}
			if evt.End.Sub(evt.Start) != 24*time.Hour {
				t.Errorf("span = %v, want 24h", evt.End.Sub(evt.Start))
			}
		})
	}
}

func TestMapper_SharedStamp(t *testing.T) {
	m := Mapper{Stamp: Now(time.UTC)}
	rows := []Row{{Title: "A"}, {Title: "B"}, {Title: "C"}}

	for _, row := range rows {
		evt := m.Map(row)
		if !evt.Stamp.Equal(m.Stamp) {
			t.Errorf("event %s has stamp %v, want %v", row.Title, evt.Stamp, m.Stamp)
		}
		if !strings.HasPrefix(evt.UID, FormatStamp(m.Stamp)) {
			t.Errorf("UID %q should start with stamp", evt.UID)
		}
	}
}

func TestMapper_UniqueUIDs(t *testing.T) {
	stamp := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := Row{Title: "Same", Link: "https://www.last.fm/event/1"}
	b := Row{Title: "Same", Link: "https://www.last.fm/event/2"}

	plain := Mapper{Stamp: stamp}
	if plain.Map(a).UID != plain.Map(b).UID {
		t.Error("default UIDs should only depend on stamp and title")
	}

	unique := Mapper{Stamp: stamp, UniqueUIDs: true}
	uidA, uidB := unique.Map(a).UID, unique.Map(b).UID
	if uidA == uidB {
		t.Errorf("expected distinct UIDs, both are %q", uidA)
	}
	if uidA != unique.Map(a).UID {
		t.Error("unique UIDs should be deterministic for the same link")
	}
	if !strings.HasPrefix(uidA, "2024-01-01 00:00:00+00:00Same-") {
		t.Errorf("unexpected UID %q", uidA)
	}
}

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Venue Hall\nCity", "Venue Hall, City"},
		{"Paradiso\nWeteringschans 6-8\nAmsterdam", "Paradiso, Weteringschans 6-8, Amsterdam"},
		{"Single line", "Single line"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeLocation(tt.in); got != tt.want {
				t.Errorf("NormalizeLocation(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatStamp(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{
			name: "with microseconds",
			t:    time.Date(2024, 1, 25, 12, 0, 0, 1000, time.UTC),
			want: "2024-01-25 12:00:00.000001+00:00",
		},
		{
			name: "whole seconds",
			t:    time.Date(2024, 7, 1, 8, 30, 15, 0, time.FixedZone("CEST", 7200)),
			want: "2024-07-01 08:30:15+02:00",
		},
		{
			name: "sub-microsecond only",
			t:    time.Date(2024, 7, 1, 8, 30, 15, 999, time.UTC),
			want: "2024-07-01 08:30:15+00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatStamp(tt.t); got != tt.want {
				t.Errorf("FormatStamp() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNow(t *testing.T) {
	loc := time.FixedZone("test", 3600)
	now := Now(loc)

	if now.Location() != loc {
		t.Errorf("Now() location = %v, want %v", now.Location(), loc)
	}
	if now.Nanosecond()%1000 != 0 {
		t.Errorf("Now() should be truncated to microseconds, got %d ns", now.Nanosecond())
	}
	if Now(nil).Location() != time.UTC {
		t.Error("Now(nil) should use UTC")
	}
}
