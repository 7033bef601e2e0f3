// Package sink defines where extracted event rows go at the end of a run.
//
// Two sinks exist: Printer writes one labelled line per row for dry-run inspection,
// and CalendarFile maps every row into a calendar event and writes a single .ics file.
// A run uses exactly one of them, so print mode never touches the output file and
// file mode never writes to standard output.
package sink
