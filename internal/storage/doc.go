// Package storage places and writes the calendar files produced by lastfm-events.
//
// Output files are named lastfm_events_<username>_<year>.ics and, unless another
// directory is configured, live next to the lastfm-events binary rather than in the
// current working directory. Files are written to a temporary file first and renamed
// into place, so a failed run never leaves a truncated calendar behind.
package storage
