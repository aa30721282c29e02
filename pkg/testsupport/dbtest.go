package testsupport

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// NewSQLiteMemoryDB opens a named in-memory SQLite database. Each name maps to
// an isolated database so tests do not observe each other's rows.
func NewSQLiteMemoryDB(name string) (*sql.DB, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "sitecms"
	}
	return sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name))
}

// NewBunSQLiteDB wraps NewSQLiteMemoryDB with the bun SQLite dialect. A single
// connection keeps the in-memory database alive for the lifetime of the handle.
func NewBunSQLiteDB(name string) (*bun.DB, error) {
	sqlDB, err := NewSQLiteMemoryDB(name)
	if err != nil {
		return nil, err
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)
	return db, nil
}
