package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/rowsd/rowsd/pkg/api"
)

// Config for the SQLite backend
type Config struct {
	// Database is the path to the SQLite database file. ":memory:"
	// opens an ephemeral in-process database.
	Database string `mapstructure:"database"`

	// BusyTimeout is how long a statement waits on a locked database
	// before failing.
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Database:    "rowsd.db",
		BusyTimeout: 5 * time.Second,
	}
}

// SQLiteStore implements api.RowStore backed by a single SQLite table.
// Tags, links and data live in JSON-encoded text columns; SQLite's own
// locking serializes concurrent writers, so the store itself holds no
// locks.
type SQLiteStore struct {
	db *sql.DB
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS data_rows (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	tags TEXT NOT NULL DEFAULT '[]',
	title TEXT,
	image TEXT,
	links TEXT NOT NULL DEFAULT '[]',
	data TEXT,
	content TEXT,
	created_at TEXT NOT NULL
)`

// NewSQLiteStore opens the database, enables WAL mode and creates the
// table if it does not exist.
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d", cfg.Database, cfg.BusyTimeout.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// A single connection keeps the write path serialized without
	// tripping SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create data_rows table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// DB exposes the underlying handle for health checks.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ListRows returns every stored row in table order.
func (s *SQLiteStore) ListRows(ctx context.Context) ([]*api.DataRow, error) {
	query := `SELECT id, tags, title, image, links, data, content, created_at FROM data_rows`

	result, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rows: %w", err)
	}
	defer result.Close()

	rows := make([]*api.DataRow, 0)
	for result.Next() {
		row, err := scanRow(result)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return rows, nil
}

// GetRow returns the row with the given id or api.ErrNotFound.
func (s *SQLiteStore) GetRow(ctx context.Context, id int64) (*api.DataRow, error) {
	query := `SELECT id, tags, title, image, links, data, content, created_at FROM data_rows WHERE id = ?`

	row, err := scanRow(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, api.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// InsertRow persists a new row and returns it with id and created_at
// assigned. The write is a single INSERT; callers never observe a
// partial row.
func (s *SQLiteStore) InsertRow(ctx context.Context, row api.NewRow) (*api.DataRow, error) {
	tags, err := json.Marshal(row.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}
	links, err := json.Marshal(row.Links)
	if err != nil {
		return nil, fmt.Errorf("failed to encode links: %w", err)
	}

	createdAt := time.Now().UTC().Truncate(time.Second)

	query := `
		INSERT INTO data_rows (tags, title, image, links, data, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		string(tags),
		row.Title,
		row.Image,
		string(links),
		rawToNullString(row.Data),
		row.Content,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert row: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted row id: %w", err)
	}

	return &api.DataRow{
		ID:        id,
		Title:     row.Title,
		Tags:      row.Tags,
		Links:     row.Links,
		Image:     row.Image,
		Content:   row.Content,
		Data:      row.Data,
		CreatedAt: createdAt,
	}, nil
}

// UpdateRow confirms the row exists, merges only the supplied fields
// over the stored values and persists the result. An empty patch is a
// no-op: the stored row comes back with modified false and nothing is
// written.
func (s *SQLiteStore) UpdateRow(ctx context.Context, id int64, patch api.RowPatch) (*api.DataRow, bool, error) {
	current, err := s.GetRow(ctx, id)
	if err != nil {
		return nil, false, err
	}

	if patch.IsEmpty() {
		return current, false, nil
	}

	if patch.Title.Set {
		current.Title = patch.Title.Value
	}
	if patch.Tags.Set {
		current.Tags = patch.Tags.Value
	}
	if patch.Links.Set {
		current.Links = patch.Links.Value
	}
	if patch.Image.Set {
		current.Image = patch.Image.Value
	}
	if patch.Content.Set {
		current.Content = patch.Content.Value
	}
	if patch.Data.Set {
		current.Data = patch.Data.Value
	}

	tags, err := json.Marshal(current.Tags)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode tags: %w", err)
	}
	links, err := json.Marshal(current.Links)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode links: %w", err)
	}

	query := `
		UPDATE data_rows
		SET tags = ?, title = ?, image = ?, links = ?, data = ?, content = ?
		WHERE id = ?
	`
	if _, err := s.db.ExecContext(ctx, query,
		string(tags),
		current.Title,
		current.Image,
		string(links),
		rawToNullString(current.Data),
		current.Content,
		id,
	); err != nil {
		return nil, false, fmt.Errorf("failed to update row %d: %w", id, err)
	}

	return current, true, nil
}

// DeleteRow removes the row and reports whether one matched. Deleting
// an absent id is not an error.
func (s *SQLiteStore) DeleteRow(ctx context.Context, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM data_rows WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete row %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return affected > 0, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRow decodes one database row, materializing tags and links as
// slices. Malformed stored JSON surfaces as api.ErrCorrupt: the data
// can only get into that state through outside interference, so it is
// an integrity failure rather than a caller error.
func scanRow(sc scanner) (*api.DataRow, error) {
	var (
		row       api.DataRow
		tags      string
		links     string
		data      sql.NullString
		createdAt string
	)

	if err := sc.Scan(&row.ID, &tags, &row.Title, &row.Image, &links, &data, &row.Content, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}

	if err := json.Unmarshal([]byte(tags), &row.Tags); err != nil {
		return nil, fmt.Errorf("%w: row %d: tags column: %v", api.ErrCorrupt, row.ID, err)
	}
	if row.Tags == nil {
		row.Tags = []string{}
	}
	if err := json.Unmarshal([]byte(links), &row.Links); err != nil {
		return nil, fmt.Errorf("%w: row %d: links column: %v", api.ErrCorrupt, row.ID, err)
	}
	if row.Links == nil {
		row.Links = []string{}
	}

	if data.Valid {
		if !json.Valid([]byte(data.String)) {
			return nil, fmt.Errorf("%w: row %d: data column is not valid JSON", api.ErrCorrupt, row.ID)
		}
		row.Data = json.RawMessage(data.String)
	}

	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: row %d: created_at column: %v", api.ErrCorrupt, row.ID, err)
	}
	row.CreatedAt = ts

	return &row, nil
}

// rawToNullString converts an optional JSON value into a nullable
// column value.
func rawToNullString(raw json.RawMessage) sql.NullString {
	if raw == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(raw), Valid: true}
}
