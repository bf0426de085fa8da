package scraper

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"

	"github.com/rickgao/booklist-data/internal/model"
)

var (
	ratingRe     = regexp.MustCompile(`([\d.]+) avg rating`)
	numRatingsRe = regexp.MustCompile("\u2014 ([\\d,]+) ratings")
)

// ParseList extracts book rows from a list page. A page without a list table
// yields no rows and no error.
func ParseList(r io.Reader) ([]model.Row, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	table := doc.Find("table.tableList").First()
	if table.Length() == 0 {
		return nil, nil
	}

	var rows []model.Row
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		rows = append(rows, parseRow(tr))
	})
	return rows, nil
}

func parseRow(tr *goquery.Selection) model.Row {
	var row model.Row

	if a := tr.Find("a.bookTitle").First(); a.Length() > 0 {
		row.Title = cleanText(a.Text())
	}
	if a := tr.Find("a.authorName").First(); a.Length() > 0 {
		row.Author = cleanText(a.Text())
	}
	if span := tr.Find("span.minirating").First(); span.Length() > 0 {
		text := span.Text()
		row.Rating = parseRating(text)
		row.NumRatings = parseNumRatings(text)
	}

	return row
}

// parseRating extracts the average from the minirating text.
func parseRating(text string) *float64 {
	m := ratingRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseNumRatings extracts the rating count, ignoring thousands separators.
func parseNumRatings(text string) *int64 {
	m := numRatingsRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// cleanText returns the trimmed, NFC-normalized text, or nil when empty.
func cleanText(text string) *string {
	s := norm.NFC.String(strings.TrimSpace(text))
	if s == "" {
		return nil
	}
	return &s
}
