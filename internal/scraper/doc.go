// Package scraper provides HTTP fetching and HTML extraction for Last.fm user event listings.
//
// The scraper package fetches the public events page of a Last.fm user for a given year
// (or the upcoming events when no year is given) and walks the listing rows with an
// Iterator, extracting date, link, title, lineup and venue for each row in page order.
// A fetched page is parsed exactly once; rows are extracted lazily as the iterator
// advances.
package scraper
