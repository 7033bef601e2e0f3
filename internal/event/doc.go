// Package event provides the row and calendar-event types for Last.fm event listings.
//
// A Row is what the scraper extracts from one listing entry. Map turns a Row into a
// CalendarEvent using a generation stamp captured once per run, so every event written
// in the same run shares the same DTSTAMP and UID prefix.
package event
