package sitecms

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed data/sql/migrations
var migrationsFS embed.FS

// GetMigrationsFS returns the embedded migration files for every dialect.
func GetMigrationsFS() embed.FS {
	return migrationsFS
}

// MigrationsFor returns the migrations for one dialect ("postgres" or
// "sqlite") rooted at the dialect directory.
func MigrationsFor(dialect string) (fs.FS, error) {
	switch d := strings.ToLower(strings.TrimSpace(dialect)); d {
	case "postgres", "sqlite":
		return fs.Sub(migrationsFS, "data/sql/migrations/"+d)
	default:
		return nil, fmt.Errorf("sitecms: no migrations for dialect %q", dialect)
	}
}
