package analysis

import (
	"cmp"
	"math"
	"slices"

	"github.com/rickgao/booklist-data/internal/model"
)

// AuthorStats is the per-author aggregate of a set of books.
type AuthorStats struct {
	Author     string  `json:"author"`
	Rating     float64 `json:"rating"`      // mean rating
	NumRatings int64   `json:"num_ratings"` // summed rating count
	Books      int     `json:"books"`
}

type bookKey struct {
	title  string
	author string
}

// Dedupe drops repeated (title, author) pairs, keeping the first occurrence.
func Dedupe(books []model.Book) []model.Book {
	seen := make(map[bookKey]struct{}, len(books))
	out := make([]model.Book, 0, len(books))
	for _, b := range books {
		k := bookKey{b.Title, b.Author}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, b)
	}
	return out
}

// AggregateByAuthor groups books by author with the mean rating rounded to
// one decimal and the summed rating count, sorted by author.
func AggregateByAuthor(books []model.Book) []AuthorStats {
	stats := groupByAuthor(books)
	for i := range stats {
		stats[i].Rating = roundTo(stats[i].Rating, 1)
	}
	return stats
}

// TopAuthors returns the n authors with the most summed ratings, largest
// first. Ties are broken by author name. The mean rating is not rounded.
func TopAuthors(books []model.Book, n int) []AuthorStats {
	if n <= 0 {
		return []AuthorStats{}
	}
	stats := groupByAuthor(books)
	slices.SortStableFunc(stats, func(a, b AuthorStats) int {
		if c := cmp.Compare(b.NumRatings, a.NumRatings); c != 0 {
			return c
		}
		return cmp.Compare(a.Author, b.Author)
	})
	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// NormalizeNumRatings min-max scales each author's rating count to [0, 1].
// When every count is equal each scaled value is 0.5.
func NormalizeNumRatings(stats []AuthorStats) []float64 {
	scaled := make([]float64, len(stats))
	if len(stats) == 0 {
		return scaled
	}

	lo, hi := stats[0].NumRatings, stats[0].NumRatings
	for _, s := range stats[1:] {
		lo = min(lo, s.NumRatings)
		hi = max(hi, s.NumRatings)
	}

	for i, s := range stats {
		if hi == lo {
			scaled[i] = 0.5
			continue
		}
		scaled[i] = float64(s.NumRatings-lo) / float64(hi-lo)
	}
	return scaled
}

// groupByAuthor returns unrounded per-author aggregates sorted by author.
func groupByAuthor(books []model.Book) []AuthorStats {
	type acc struct {
		ratingSum  float64
		numRatings int64
		books      int
	}
	byAuthor := make(map[string]*acc)
	for _, b := range books {
		a, ok := byAuthor[b.Author]
		if !ok {
			a = &acc{}
			byAuthor[b.Author] = a
		}
		a.ratingSum += b.Rating
		a.numRatings += b.NumRatings
		a.books++
	}

	stats := make([]AuthorStats, 0, len(byAuthor))
	for author, a := range byAuthor {
		stats = append(stats, AuthorStats{
			Author:     author,
			Rating:     a.ratingSum / float64(a.books),
			NumRatings: a.numRatings,
			Books:      a.books,
		})
	}
	slices.SortFunc(stats, func(a, b AuthorStats) int {
		return cmp.Compare(a.Author, b.Author)
	})
	return stats
}

func roundTo(x float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(x*p) / p
}
