package datasource

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/bwtree/pkg/debug"
	"github.com/vanderheijden86/bwtree/pkg/loader"
)

// Schema is the adjacency-list table bwtree reads. Only id and parent_id are
// required; label, description and position are picked up when present.
const Schema = `
CREATE TABLE IF NOT EXISTS nodes (
	id          TEXT PRIMARY KEY,
	parent_id   TEXT,
	label       TEXT,
	description TEXT,
	position    INTEGER NOT NULL DEFAULT 0
)`

// SQLiteReader provides read access to a forest stored in SQLite
type SQLiteReader struct {
	db   *sql.DB
	path string
}

// NewSQLiteReader opens a SQLite database for reading
func NewSQLiteReader(source DataSource) (*SQLiteReader, error) {
	if source.Type != SourceTypeSQLite {
		return nil, fmt.Errorf("source is not SQLite: %s", source.Type)
	}

	// Open in read-only mode with various pragmas for read performance
	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000&_journal_mode=WAL", source.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA cache_size = -16000", // 16MB cache
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			debug.Log("datasource: %s: %v", pragma, err)
		}
	}

	return &SQLiteReader{
		db:   db,
		path: source.Path,
	}, nil
}

// Close closes the database connection
func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadRecords reads every row of the nodes table.
func (r *SQLiteReader) LoadRecords(ctx context.Context) ([]loader.Record, error) {
	query := `
		SELECT id, parent_id, label, description, position
		FROM nodes
		ORDER BY position, rowid
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		// Try simpler query if some columns don't exist
		debug.Log("datasource: full query failed, using id/parent_id only: %v", err)
		return r.loadRecordsSimple(ctx)
	}
	defer rows.Close()

	var records []loader.Record
	for rows.Next() {
		var rec loader.Record
		var parent, label, description sql.NullString
		var position sql.NullInt64
		if err := rows.Scan(&rec.ID, &parent, &label, &description, &position); err != nil {
			return nil, fmt.Errorf("scanning node: %w", err)
		}
		rec.Parent = parent.String
		rec.Label = label.String
		rec.Description = description.String
		rec.Position = int(position.Int64)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nodes: %w", err)
	}
	return records, nil
}

// loadRecordsSimple is a fallback for tables with only the required columns
func (r *SQLiteReader) loadRecordsSimple(ctx context.Context) ([]loader.Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, parent_id FROM nodes ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying nodes: %w", err)
	}
	defer rows.Close()

	var records []loader.Record
	for rows.Next() {
		var rec loader.Record
		var parent sql.NullString
		if err := rows.Scan(&rec.ID, &parent); err != nil {
			return nil, fmt.Errorf("scanning node: %w", err)
		}
		rec.Parent = parent.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nodes: %w", err)
	}
	return records, nil
}

// CountNodes returns the number of rows in the nodes table
func (r *SQLiteReader) CountNodes(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM nodes").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting nodes: %w", err)
	}
	return count, nil
}
