package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, errors.New("database url is empty")
	}
	db, err := sql.Open("postgres", withBinaryParameters(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Verify connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Journal writes are small and infrequent; a tiny pool also avoids prepared
	// statement issues behind PgBouncer.
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// withBinaryParameters appends binary_parameters=yes to the DSN unless the caller
// set it. With it lib/pq sends parameters inline instead of preparing an unnamed
// statement per query, which keeps PgBouncer transaction pooling working. Only
// driver-level keys may be added here: lib/pq forwards unknown keys to the server
// as runtime parameters and Postgres rejects the connection.
func withBinaryParameters(dsn string) string {
	if strings.Contains(strings.ToLower(dsn), "binary_parameters=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "binary_parameters=yes"
}
