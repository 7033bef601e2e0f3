// Package cli implements the command-line interface for lastfm-events.
//
// The cli package provides the Cobra-based command that takes a Last.fm username and
// an optional year, loads the YAML configuration, fetches the user's events page and
// hands the extracted rows to either the print sink (--print-only) or the calendar
// file sink. Flags override values from the config file.
package cli
