package analysis

import (
	"time"

	"github.com/rickgao/booklist-data/internal/model"
)

// Dataset is an immutable snapshot of the books and the views computed from
// them. It is safe for concurrent readers.
type Dataset struct {
	Books     []model.Book
	Authors   []AuthorStats
	Top       []AuthorStats
	Scaled    []float64 // Top[i].NumRatings scaled to [0, 1]
	Boxplot   []BoxStats
	Histogram Histogram
	CreatedAt time.Time
}

// NewDataset computes every view over books. topN bounds the author charts and
// bins sets the histogram resolution.
func NewDataset(books []model.Book, topN, bins int) *Dataset {
	top := TopAuthors(books, topN)
	return &Dataset{
		Books:     books,
		Authors:   AggregateByAuthor(books),
		Top:       top,
		Scaled:    NormalizeNumRatings(top),
		Boxplot:   Boxplot(books, topN),
		Histogram: Hist2D(top, bins),
		CreatedAt: time.Now().UTC(),
	}
}
