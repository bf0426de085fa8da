package model

import (
	"time"

	"github.com/google/uuid"
)

// Record is the value stored under a title in the dedup tree.
type Record struct {
	Author     string  `json:"author"`
	Rating     float64 `json:"rating"`
	NumRatings int64   `json:"num_ratings"`
}

// Book returns the flattened row for title.
func (r Record) Book(title string) Book {
	return Book{
		Title:      title,
		Author:     r.Author,
		Rating:     r.Rating,
		NumRatings: r.NumRatings,
	}
}

// Book is a single flattened book row.
type Book struct {
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	Rating     float64 `json:"rating"`
	NumRatings int64   `json:"num_ratings"`
}

// StoredBook is a book row as persisted in the books table.
type StoredBook struct {
	Book
	RunID     uuid.UUID `json:"run_id"`
	ScrapedAt time.Time `json:"scraped_at"`
}

// Row is a scraped list row. A nil field was missing or unparseable on the page.
type Row struct {
	Title      *string
	Author     *string
	Rating     *float64
	NumRatings *int64
}

// Complete reports whether every field of the row is present.
func (r Row) Complete() bool {
	return r.Title != nil && r.Author != nil && r.Rating != nil && r.NumRatings != nil
}

// Entry returns the dedup key and value for a complete row.
// The boolean is false when any field is missing.
func (r Row) Entry() (string, Record, bool) {
	if !r.Complete() {
		return "", Record{}, false
	}
	return *r.Title, Record{
		Author:     *r.Author,
		Rating:     *r.Rating,
		NumRatings: *r.NumRatings,
	}, true
}

// Books flattens stored rows to plain books.
func Books(stored []StoredBook) []Book {
	books := make([]Book, len(stored))
	for i, s := range stored {
		books[i] = s.Book
	}
	return books
}
