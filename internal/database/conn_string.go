package database

import (
	"net"
	"net/url"
	"strconv"

	"github.com/rickgao/booklist-data/internal/config"
)

// BuildConnString builds a PostgreSQL connection URL from config.
// Credentials are userinfo-escaped, so spaces and reserved characters
// survive pgx parsing unchanged.
func BuildConnString(cfg config.DBConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Name,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
	return u.String()
}
