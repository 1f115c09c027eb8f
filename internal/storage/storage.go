package storage

import (
	"net/url"
	"strings"

	"github.com/smartshelf/smartshelf/internal/storage/postgres"
	"github.com/smartshelf/smartshelf/internal/storage/sqlite"
)

// NewSQLiteStore returns a provider backed by a SQLite database file at path.
func NewSQLiteStore(path string) Provider {
	return sqlite.NewStore(path)
}

// NewPostgresStore returns a provider backed by a PostgreSQL database.
func NewPostgresStore(connStr string) Provider {
	return postgres.New(connStr)
}

// IsPostgresConnString reports whether the config value looks like a
// PostgreSQL connection string rather than a filesystem path.
func IsPostgresConnString(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// HasEmbeddedCredentials reports whether a connection string carries a
// password inline. Passwords belong in the system keyring, never in config.
func HasEmbeddedCredentials(connStr string) bool {
	if IsPostgresConnString(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		_, set := u.User.Password()
		return set
	}

	// DSN format: space-separated key=value pairs.
	for _, pair := range strings.Fields(connStr) {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) == 2 && strings.EqualFold(strings.TrimSpace(kv[0]), "password") {
			return true
		}
	}
	return false
}
