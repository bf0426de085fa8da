package analysis

import (
	"cmp"
	"math"
	"slices"

	"github.com/rickgao/booklist-data/internal/model"
)

// BoxStats is the five-number summary of one author's book ratings.
// Whiskers extend to the most extreme ratings within 1.5 IQR of the quartiles;
// ratings beyond them are outliers.
type BoxStats struct {
	Author      string    `json:"author"`
	Ratings     []float64 `json:"ratings"`
	Min         float64   `json:"min"`
	Q1          float64   `json:"q1"`
	Median      float64   `json:"median"`
	Q3          float64   `json:"q3"`
	Max         float64   `json:"max"`
	WhiskerLow  float64   `json:"whisker_low"`
	WhiskerHigh float64   `json:"whisker_high"`
	Outliers    []float64 `json:"outliers"`
}

// Boxplot summarizes the ratings of the top n authors by summed rating count.
// Only distinct (title, author) books count, and authors with a single book
// are left out. Results are sorted by author.
func Boxplot(books []model.Book, n int) []BoxStats {
	top := TopAuthors(books, n)
	wanted := make(map[string]bool, len(top))
	for _, s := range top {
		wanted[s.Author] = true
	}

	ratings := make(map[string][]float64, len(top))
	for _, b := range Dedupe(books) {
		if wanted[b.Author] {
			ratings[b.Author] = append(ratings[b.Author], b.Rating)
		}
	}

	out := make([]BoxStats, 0, len(ratings))
	for author, rs := range ratings {
		if len(rs) < 2 {
			continue
		}
		out = append(out, summarize(author, rs))
	}
	slices.SortFunc(out, func(a, b BoxStats) int {
		return cmp.Compare(a.Author, b.Author)
	})
	return out
}

func summarize(author string, ratings []float64) BoxStats {
	sorted := slices.Clone(ratings)
	slices.Sort(sorted)

	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	lowFence := q1 - 1.5*iqr
	highFence := q3 + 1.5*iqr

	box := BoxStats{
		Author:      author,
		Ratings:     sorted,
		Min:         sorted[0],
		Q1:          q1,
		Median:      quantile(sorted, 0.5),
		Q3:          q3,
		Max:         sorted[len(sorted)-1],
		WhiskerLow:  math.Inf(1),
		WhiskerHigh: math.Inf(-1),
		Outliers:    []float64{},
	}
	for _, r := range sorted {
		if r < lowFence || r > highFence {
			box.Outliers = append(box.Outliers, r)
			continue
		}
		box.WhiskerLow = min(box.WhiskerLow, r)
		box.WhiskerHigh = max(box.WhiskerHigh, r)
	}
	return box
}

// quantile returns the p-quantile of sorted using linear interpolation
// between closest ranks.
func quantile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
