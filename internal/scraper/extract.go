package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/lastfm-events/internal/event"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Selectors for the parts of an events listing row
const (
	RowSelector      = "tr.events-list-item"
	TimeSelector     = "time"
	LinkSelector     = "a.events-list-cover-link"
	TitleSelector    = ".events-list-item-event--title"
	LineupSelector   = ".events-list-item-event--lineup"
	LocationSelector = ".events-list-item-venue"
)

// Iterator walks the event rows of a fetched listing page in page order.
// It is forward-only; once Next returns false it stays exhausted.
//
// Example usage:
//
//	it := scraper.NewIterator(doc, scraper.DefaultBaseURL)
//	for it.Next() {
//	    row := it.Row()
//	    ...
//	}
//	if err := it.Err(); err != nil {
//	    ...
//	}
type Iterator struct {
	rows    *goquery.Selection
	baseURL string
	pos     int
	row     event.Row
	err     error
}

// NewIterator creates an iterator over the listing rows in doc.
// baseURL is prefixed to relative event links.
func NewIterator(doc *goquery.Document, baseURL string) *Iterator {
	return &Iterator{
		rows:    doc.Find(RowSelector),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Len returns the number of listing rows found on the page
func (it *Iterator) Len() int {
	return it.rows.Length()
}

// Next advances to the next row. It returns false when the rows are
// exhausted or a row could not be extracted; check Err to tell them apart.
func (it *Iterator) Next() bool {
	if it.err != nil || it.pos >= it.rows.Length() {
		return false
	}

	row, err := extractRow(it.rows.Eq(it.pos), it.baseURL)
	if err != nil {
		err.Index = it.pos
		it.err = err
		it.row = event.Row{}
		return false
	}

	it.pos++
	it.row = row
	return true
}

// Row returns the row produced by the last successful call to Next
func (it *Iterator) Row() event.Row {
	return it.row
}

// Err returns the extraction error that stopped the iterator, if any
func (it *Iterator) Err() error {
	return it.err
}

// extractRow pulls the five fields out of a single listing row.
// A missing lineup yields an empty string; any other missing node fails the row.
func extractRow(sel *goquery.Selection, baseURL string) (event.Row, *ParseError) {
	var row event.Row

	datetime, ok := sel.Find(TimeSelector).First().Attr("datetime")
	if !ok {
		return row, missing("date", TimeSelector+"[datetime]")
	}
	date, err := event.ParseDateTime(datetime)
	if err != nil {
		return row, &ParseError{Field: "date", Err: err}
	}
	row.Date = date

	href, ok := sel.Find(LinkSelector).First().Attr("href")
	if !ok {
		return row, missing("link", LinkSelector+"[href]")
	}
	row.Link = absoluteLink(baseURL, href)

	title := sel.Find(TitleSelector).First()
	if title.Length() == 0 {
		return row, missing("title", TitleSelector)
	}
	row.Title = renderText(title)

	row.Lineup = renderText(sel.Find(LineupSelector).First())

	location := sel.Find(LocationSelector).First()
	if location.Length() == 0 {
		return row, missing("location", LocationSelector)
	}
	row.Location = renderText(location)

	return row, nil
}

func missing(field, selector string) *ParseError {
	return &ParseError{
		Field: field,
		Err:   fmt.Errorf("%w: %s", ErrMissingField, selector),
	}
}

// absoluteLink makes a listing href absolute
func absoluteLink(baseURL, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return baseURL + href
}

// blockElements start and end a line of rendered text
var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Figcaption: true, atom.Figure: true, atom.Footer: true, atom.Form: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true, atom.Nav: true,
	atom.Ol: true, atom.P: true, atom.Pre: true, atom.Section: true, atom.Table: true,
	atom.Tbody: true, atom.Td: true, atom.Tfoot: true, atom.Th: true, atom.Thead: true,
	atom.Tr: true, atom.Ul: true,
}

// renderText returns the visible text of sel: whitespace inside text is collapsed,
// block elements and <br> break lines, blank lines are dropped.
func renderText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(&b, n)
	}

	lines := strings.Split(b.String(), "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(strings.Map(func(r rune) rune {
			if r == '\n' || r == '\r' {
				return ' '
			}
			return r
		}, n.Data))
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Br:
			b.WriteByte('\n')
			return
		case atom.Script, atom.Style, atom.Template:
			return
		}
	}

	block := n.Type == html.ElementNode && blockElements[n.DataAtom]
	if block {
		b.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if block {
		b.WriteByte('\n')
	}
}
