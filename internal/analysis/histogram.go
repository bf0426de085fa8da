package analysis

import "sort"

// Histogram is a two-dimensional histogram over equal-width bins.
// Counts[i][j] is the number of points with x in bin i and y in bin j.
// Every bin is half-open except the last, which includes its upper edge.
type Histogram struct {
	XEdges []float64 `json:"x_edges"`
	YEdges []float64 `json:"y_edges"`
	Counts [][]int   `json:"counts"`
}

// Hist2D bins the top authors with x as their scaled rating count and y as
// their mean rating. bins below 1 is treated as 1.
func Hist2D(stats []AuthorStats, bins int) Histogram {
	if bins < 1 {
		bins = 1
	}

	xs := NormalizeNumRatings(stats)
	ys := make([]float64, len(stats))
	for i, s := range stats {
		ys[i] = s.Rating
	}

	h := Histogram{
		XEdges: edges(xs, bins),
		YEdges: edges(ys, bins),
		Counts: make([][]int, bins),
	}
	for i := range h.Counts {
		h.Counts[i] = make([]int, bins)
	}

	for i := range xs {
		h.Counts[binIndex(h.XEdges, xs[i])][binIndex(h.YEdges, ys[i])]++
	}
	return h
}

// edges returns bins+1 equally spaced edges over [min, max] of values.
// An empty input spans [0, 1]; a zero-width range is widened by 0.5 each side.
func edges(values []float64, bins int) []float64 {
	lo, hi := 0.0, 1.0
	if len(values) > 0 {
		lo, hi = values[0], values[0]
		for _, v := range values[1:] {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	out := make([]float64, bins+1)
	step := (hi - lo) / float64(bins)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[bins] = hi
	return out
}

// binIndex returns the bin of v. Values equal to the last edge fall in the
// last bin.
func binIndex(edges []float64, v float64) int {
	bins := len(edges) - 1
	i := sort.Search(len(edges), func(i int) bool { return edges[i] > v }) - 1
	return min(max(i, 0), bins-1)
}
