package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/bwtree/internal/datasource"
	"github.com/vanderheijden86/bwtree/pkg/loader"
	"github.com/vanderheijden86/bwtree/pkg/tree"
)

// WriteSQLite stores f as an adjacency list in the nodes table read by
// internal/datasource. An existing file is replaced. Identifiers must be
// unique across the whole forest, not just among siblings.
func WriteSQLite(ctx context.Context, path string, f *loader.Forest) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, datasource.Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if err := insertNodes(ctx, db, f); err != nil {
		return fmt.Errorf("insert nodes: %w", err)
	}
	return db.Close()
}

func insertNodes(ctx context.Context, db *sql.DB, f *loader.Forest) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO nodes (id, parent_id, label, description, position)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	var insertErr error
	var insert func(parent *string, nodes []*tree.Node[string, loader.Entry])
	insert = func(parent *string, nodes []*tree.Node[string, loader.Entry]) {
		for i, n := range nodes {
			if insertErr != nil {
				return
			}
			entry := n.Payload()
			if _, err := stmt.ExecContext(ctx, n.ID(), parent, nullable(entry.Label), nullable(entry.Description), i); err != nil {
				insertErr = fmt.Errorf("insert node %s: %w", n.ID(), err)
				return
			}
			id := n.ID()
			insert(&id, n.Children())
		}
	}
	insert(nil, f.Roots())
	if insertErr != nil {
		return insertErr
	}
	return tx.Commit()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
