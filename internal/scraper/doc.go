// Package scraper fetches book list pages and extracts rows from them.
//
// A list page holds a table with class "tableList". Each table row carries:
//   - a.bookTitle: the book title
//   - a.authorName: the author
//   - span.minirating: the average rating and the rating count,
//     separated by an em dash
//
// Fields that are missing or unparseable are left nil on model.Row. Callers
// decide what to do with incomplete rows.
package scraper
