package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/lastfm-events/internal/calendar"
	"github.com/pfrederiksen/lastfm-events/internal/event"
)

func main() {
	// Create a sample row as the scraper would extract it
	row := event.Row{
		Date:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Link:     "https://www.last.fm/event/123",
		Title:    "Big Show",
		Lineup:   "Support Act",
		Location: "Venue Hall\nCity",
	}

	cal := calendar.New("sample", "2024")
	cal.Add(event.Map(row, event.Now(time.Local)))

	filename := "sample-lastfm-events.ics"
	if err := os.WriteFile(filename, []byte(cal.Serialize()), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated calendar file: %s\n\n", filename)
	fmt.Println("Import it into Google Calendar, Apple Calendar or Outlook to check the layout.")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(cal.Serialize())
}
