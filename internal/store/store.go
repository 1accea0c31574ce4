// Package store persists lookup history in a local sqlite database.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/httpfs"
)

// MigrationAction is the type of migration to perform.
type MigrationAction int

const (
	// MigrateUp Fully upgrades the schema.
	MigrateUp MigrationAction = iota
	// MigrateDn Fully downgrades the schema.
	MigrateDn
	// MigrateUpOne Upgrade the schema by one revision.
	MigrateUpOne
	// MigrateDownOne Downgrade the schema by one revision.
	MigrateDownOne
)

var (
	//go:embed migrations
	migrations embed.FS

	ErrDBConnect = errors.New("db connect error")
	ErrMigrate   = errors.New("failed to migrate db schema")
	errQuery     = errors.New("query error")
)

func configureConnection(ctx context.Context, connection *sql.DB) error {
	parallelism := min(8, max(2, runtime.GOMAXPROCS(0)))
	connection.SetMaxOpenConns(parallelism)
	connection.SetMaxIdleConns(parallelism)
	connection.SetConnMaxLifetime(0)
	connection.SetConnMaxIdleTime(0)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA main.synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, errPragma := connection.ExecContext(ctx, pragma); errPragma != nil {
			return errors.Join(errPragma, ErrDBConnect)
		}
	}

	return nil
}

func Open(ctx context.Context, path string, autoMigrate bool) (*sql.DB, error) {
	if path == "" {
		path = ":memory:"
	}

	path += "?cache=private"
	connection, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Join(err, ErrDBConnect)
	}

	if errConfig := configureConnection(ctx, connection); errConfig != nil {
		return nil, errConfig
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := connection.PingContext(pingCtx); err != nil {
		connection.Close()

		return nil, errors.Join(err, ErrDBConnect)
	}

	if autoMigrate {
		if errMigrate := Migrate(connection, MigrateUp); errMigrate != nil {
			return nil, errors.Join(errMigrate, ErrDBConnect)
		}
	}

	return connection, nil
}

func Migrate(conn *sql.DB, action MigrationAction) error {
	driver, errDriver := sqlite.WithInstance(conn, &sqlite.Config{})
	if errDriver != nil {
		return errors.Join(errDriver, ErrMigrate)
	}

	source, errHTTPFS := httpfs.New(http.FS(migrations), "migrations")
	if errHTTPFS != nil {
		return errors.Join(errHTTPFS, ErrMigrate)
	}

	migrator, errMigrateInstance := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if errMigrateInstance != nil {
		return errors.Join(errMigrateInstance, ErrMigrate)
	}

	var errMigration error

	switch action {
	case MigrateUpOne:
		errMigration = migrator.Steps(1)
	case MigrateDn:
		errMigration = migrator.Down()
	case MigrateDownOne:
		errMigration = migrator.Steps(-1)
	case MigrateUp:
		fallthrough
	default:
		errMigration = migrator.Up()
	}

	if errMigration != nil && !errors.Is(errMigration, migrate.ErrNoChange) {
		return errors.Join(errMigration, ErrMigrate)
	}

	return nil
}

// Search is one completed lookup, successful or not.
type Search struct {
	ID         int64
	Username   string
	Rank       int
	Tier       string
	Country    string
	Found      bool
	SearchedOn time.Time
}

// Queries wraps the prepared statements used against the history table.
type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

func (q *Queries) AddSearch(ctx context.Context, search Search) error {
	const query = `INSERT INTO search_history (username, rank, tier, country, found, searched_on)
		VALUES (?, ?, ?, ?, ?, ?)`

	if _, err := q.db.ExecContext(ctx, query, search.Username, search.Rank,
		search.Tier, search.Country, search.Found, search.SearchedOn); err != nil {
		return errors.Join(err, errQuery)
	}

	return nil
}

func (q *Queries) RecentSearches(ctx context.Context, limit int) ([]Search, error) {
	const query = `SELECT id, username, rank, tier, country, found, searched_on
		FROM search_history ORDER BY searched_on DESC LIMIT ?`

	rows, errRows := q.db.QueryContext(ctx, query, limit)
	if errRows != nil {
		return nil, errors.Join(errRows, errQuery)
	}
	defer rows.Close()

	var searches []Search
	for rows.Next() {
		var search Search
		if err := rows.Scan(&search.ID, &search.Username, &search.Rank, &search.Tier,
			&search.Country, &search.Found, &search.SearchedOn); err != nil {
			return nil, errors.Join(err, errQuery)
		}

		searches = append(searches, search)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Join(err, errQuery)
	}

	return searches, nil
}

func (q *Queries) ClearSearches(ctx context.Context) error {
	if _, err := q.db.ExecContext(ctx, "DELETE FROM search_history"); err != nil {
		return errors.Join(err, errQuery)
	}

	return nil
}
