package database

import (
	"strconv"
	"strings"

	"github.com/xavierca1/ligue-leads/internal/config"
)

// Dialect adapts the repository's queries to the placeholder style of a driver.
// Queries are written with '?' and rewritten to $N for the Postgres drivers.
type Dialect struct {
	Driver string
}

func (d Dialect) Rebind(query string) string {
	if d.Driver != config.DriverPostgres && d.Driver != config.DriverPgx {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d Dialect) migrationDir() string {
	if d.Driver == config.DriverSQLite {
		return "migrations/sqlite"
	}
	return "migrations/postgres"
}
