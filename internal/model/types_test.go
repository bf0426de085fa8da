package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func ptr[T any](v T) *T { return &v }

func TestRow_Entry(t *testing.T) {
	full := Row{
		Title:      ptr("Dune"),
		Author:     ptr("Frank Herbert"),
		Rating:     ptr(4.27),
		NumRatings: ptr(int64(1400000)),
	}

	tests := []struct {
		name   string
		row    Row
		wantOK bool
	}{
		{"complete", full, true},
		{"missing title", Row{Author: full.Author, Rating: full.Rating, NumRatings: full.NumRatings}, false},
		{"missing author", Row{Title: full.Title, Rating: full.Rating, NumRatings: full.NumRatings}, false},
		{"missing rating", Row{Title: full.Title, Author: full.Author, NumRatings: full.NumRatings}, false},
		{"missing count", Row{Title: full.Title, Author: full.Author, Rating: full.Rating}, false},
		{"empty", Row{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.Complete(); got != tt.wantOK {
				t.Errorf("Complete() = %v, want %v", got, tt.wantOK)
			}
			key, rec, ok := tt.row.Entry()
			if ok != tt.wantOK {
				t.Fatalf("Entry() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if key != "Dune" {
				t.Errorf("key = %q, want %q", key, "Dune")
			}
			want := Record{Author: "Frank Herbert", Rating: 4.27, NumRatings: 1400000}
			if rec != want {
				t.Errorf("record = %+v, want %+v", rec, want)
			}
		})
	}
}

func TestRecord_Book(t *testing.T) {
	rec := Record{Author: "Asimov", Rating: 4.2, NumRatings: 500000}
	b := rec.Book("Foundation")

	want := Book{Title: "Foundation", Author: "Asimov", Rating: 4.2, NumRatings: 500000}
	if b != want {
		t.Errorf("Book() = %+v, want %+v", b, want)
	}
}

func TestBook_JSON(t *testing.T) {
	b := Book{Title: "Dune", Author: "Herbert", Rating: 4.5, NumRatings: 950000}
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"title":"Dune","author":"Herbert","rating":4.5,"num_ratings":950000}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestBooks(t *testing.T) {
	run := uuid.New()
	stored := []StoredBook{
		{Book: Book{Title: "A", Author: "x"}, RunID: run, ScrapedAt: time.Unix(0, 0)},
		{Book: Book{Title: "B", Author: "y"}, RunID: run, ScrapedAt: time.Unix(0, 0)},
	}

	books := Books(stored)
	if len(books) != 2 {
		t.Fatalf("len(Books()) = %d, want 2", len(books))
	}
	if books[0].Title != "A" || books[1].Title != "B" {
		t.Errorf("Books() titles = %q, %q; want A, B", books[0].Title, books[1].Title)
	}
}
