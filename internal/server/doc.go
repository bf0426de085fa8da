// Package server exposes the title store and the chart data over HTTP.
//
// Routes:
//   - GET /                 welcome text
//   - GET /books            all books in ascending title order
//   - GET /books/{title...} one book, 404 when absent; titles may contain /
//   - GET /ws/books         the same books streamed over a WebSocket
//   - GET /authors          per-author aggregates
//   - GET /boxplot          rating quartiles for the top authors
//   - GET /hist2d           2D histogram of the top authors
//   - GET /health           component health
//   - GET <metrics path>    Prometheus metrics
//
// Chart routes answer 503 until a dataset has been published with SetDataset.
package server
