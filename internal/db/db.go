package db

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// sqliteParams are added to SQLite connection strings that do not set them.
// Times are written in a fixed, sortable layout so range queries compare correctly.
var sqliteParams = []string{
	"_pragma=foreign_keys(1)",
	"_pragma=busy_timeout(5000)",
	"_time_format=sqlite",
}

func Init(driver, connection string) (*sqlx.DB, error) {
	// SQLite: create data directory if needed
	if driver == "sqlite" {
		dir := filepath.Dir(strings.TrimPrefix(connection, "file:"))
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		connection = SQLiteDSN(connection)
	}

	db, err := sqlx.Connect(driver, connection)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	slog.Info("database connected", "driver", driver)

	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// SQLiteDSN appends the default pragmas to a SQLite connection string.
func SQLiteDSN(connection string) string {
	path, query, _ := strings.Cut(connection, "?")

	var params []string
	if query != "" {
		params = strings.Split(query, "&")
	}
	for _, p := range sqliteParams {
		key, _, _ := strings.Cut(p, "=")
		if key == "_pragma" {
			name, _, _ := strings.Cut(strings.TrimPrefix(p, "_pragma="), "(")
			if strings.Contains(query, "_pragma="+name) {
				continue
			}
		} else if strings.Contains(query, key+"=") {
			continue
		}
		params = append(params, p)
	}

	return path + "?" + strings.Join(params, "&")
}

func Close(db *sqlx.DB) error {
	if db != nil {
		return db.Close()
	}
	return nil
}
