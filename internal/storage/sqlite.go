// Package storage provides the SQLite implementation of the Store interface.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/tansu/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS shirts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		color TEXT NOT NULL,
		size TEXT NOT NULL,
		status TEXT NOT NULL,
		image_path TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_shirts_status ON shirts(status);
	CREATE INDEX IF NOT EXISTS idx_shirts_name ON shirts(name COLLATE NOCASE);
	`
	_, err := db.Exec(schema)
	return err
}

// CreateShirt inserts a shirt and returns its assigned id.
func (s *SQLiteStore) CreateShirt(ctx context.Context, shirt *models.Shirt) (int64, error) {
	now := time.Now()
	shirt.CreatedAt = now
	shirt.UpdatedAt = now

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO shirts (name, color, size, status, image_path, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		shirt.Name, shirt.Color, shirt.Size, shirt.Status, shirt.ImagePath, shirt.CreatedAt, shirt.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	shirt.ID = id
	return id, nil
}

const shirtColumns = `id, name, color, size, status, image_path, created_at, updated_at`

func scanShirt(row interface{ Scan(...any) error }) (*models.Shirt, error) {
	var sh models.Shirt
	err := row.Scan(&sh.ID, &sh.Name, &sh.Color, &sh.Size, &sh.Status, &sh.ImagePath, &sh.CreatedAt, &sh.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

// GetShirt returns a shirt by id.
func (s *SQLiteStore) GetShirt(ctx context.Context, id int64) (*models.Shirt, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+shirtColumns+` FROM shirts WHERE id = ?`, id)
	sh, err := scanShirt(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sh, nil
}

// ListShirts returns all shirts ordered by id.
func (s *SQLiteStore) ListShirts(ctx context.Context) ([]*models.Shirt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+shirtColumns+` FROM shirts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectShirts(rows)
}

// FindByReference matches records by name first; when no name matches, by
// the "<color> <size>" combination taken from the reference text. Results
// are ordered by id for deterministic ambiguity listings.
func (s *SQLiteStore) FindByReference(ctx context.Context, ref string) ([]*models.Shirt, error) {
	ref = strings.TrimSpace(strings.ToLower(ref))
	if ref == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+shirtColumns+` FROM shirts WHERE lower(name) = ? ORDER BY id`, ref)
	if err != nil {
		return nil, err
	}
	matches, err := collectShirts(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		return matches, nil
	}

	parts := strings.Fields(ref)
	if len(parts) < 2 {
		return nil, nil
	}
	color, size := parts[0], parts[1]
	rows, err = s.db.QueryContext(ctx,
		`SELECT `+shirtColumns+` FROM shirts WHERE lower(color) = ? AND lower(size) = ? ORDER BY id`,
		color, size)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectShirts(rows)
}

func collectShirts(rows *sql.Rows) ([]*models.Shirt, error) {
	var shirts []*models.Shirt
	for rows.Next() {
		sh, err := scanShirt(rows)
		if err != nil {
			return nil, err
		}
		shirts = append(shirts, sh)
	}
	return shirts, rows.Err()
}

// UpdateStatus sets the status of a shirt.
func (s *SQLiteStore) UpdateStatus(ctx context.Context, id int64, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE shirts SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now(), id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetImagePath records the stored image path for a shirt.
func (s *SQLiteStore) SetImagePath(ctx context.Context, id int64, imagePath string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE shirts SET image_path = ?, updated_at = ? WHERE id = ?`,
		imagePath, time.Now(), id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteShirt removes a shirt by id.
func (s *SQLiteStore) DeleteShirt(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM shirts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountShirts returns the total number of shirts.
func (s *SQLiteStore) CountShirts(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shirts`).Scan(&count)
	return count, err
}

// Statistics returns aggregate counts per status, color, and size.
func (s *SQLiteStore) Statistics(ctx context.Context) (*models.Statistics, error) {
	stats := &models.Statistics{
		ByStatus: make(map[string]int),
		ByColor:  make(map[string]int),
		BySize:   make(map[string]int),
	}
	// Every known status appears in the breakdown even when empty.
	for _, st := range models.Statuses {
		stats.ByStatus[st] = 0
	}

	rows, err := s.db.QueryContext(ctx, `SELECT status, color, size, image_path FROM shirts`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status, color, size, imagePath string
		if err := rows.Scan(&status, &color, &size, &imagePath); err != nil {
			return nil, err
		}
		stats.Total++
		stats.ByStatus[status]++
		stats.ByColor[strings.ToLower(color)]++
		stats.BySize[strings.ToLower(size)]++
		if imagePath != "" {
			stats.WithImages++
		}
	}
	return stats, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
