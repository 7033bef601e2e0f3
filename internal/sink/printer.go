package sink

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/pfrederiksen/lastfm-events/internal/event"
)

// Printer writes each row as one labelled line instead of producing a calendar
type Printer struct {
	w io.Writer
}

// NewPrinter creates a printer writing to w, or to stdout when w is nil
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{w: w}
}

// Emit prints every row as it is extracted
func (p *Printer) Emit(ctx context.Context, rows Rows) error {
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := io.WriteString(p.w, FormatRow(rows.Row())+"\n"); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	return rows.Err()
}

// FormatRow renders a row as
//
//	date_obj=2024-05-01 link='...' title='...' lineup='...' location='...'
//
// String values are quoted like Python's repr, so multi-line venues stay on one line.
func FormatRow(row event.Row) string {
	return fmt.Sprintf("date_obj=%s link=%s title=%s lineup=%s location=%s",
		row.Date.Format("2006-01-02"), quote(row.Link), quote(row.Title), quote(row.Lineup), quote(row.Location))
}

// quote wraps s in single quotes, or double quotes when s holds a single
// quote but no double quote.
func quote(s string) string {
	q := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var b strings.Builder
	b.WriteRune(q)
	for _, r := range s {
		switch {
		case r == q || r == '\\':
			b.WriteRune('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case unicode.IsPrint(r):
			b.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteRune(q)
	return b.String()
}
