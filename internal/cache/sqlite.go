package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/promanager/promanager/internal/model"
)

// SQLiteCache implements the Cache interface using a local SQLite
// database, in memory by default.
type SQLiteCache struct {
	db *sqlx.DB
}

// NewSQLiteCache opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteCache(dbPath string) (*SQLiteCache, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	c := &SQLiteCache{db: db}
	if err := c.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return c, nil
}

// Close closes the underlying database connection.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (c *SQLiteCache) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := c.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = c.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := c.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// UpsertMembers inserts or replaces a batch of members.
func (c *SQLiteCache) UpsertMembers(ctx context.Context, members []model.Member) error {
	if len(members) == 0 {
		return nil
	}

	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO membres (
			id, nom, email, role, is_active, archived_at, date_creation
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, m := range members {
		_, err = stmt.ExecContext(ctx,
			m.ID, m.Nom, m.Email, string(m.Role),
			boolToInt(m.IsActive), m.ArchivedAt, m.DateCreation.UTC(),
		)
		if err != nil {
			return fmt.Errorf("upserting member %d: %w", m.ID, err)
		}
	}

	return tx.Commit()
}

// Members retrieves cached members ordered by name. Archived members
// are excluded unless includeArchived is set.
func (c *SQLiteCache) Members(ctx context.Context, includeArchived bool) ([]model.Member, error) {
	query := memberColumns + " FROM membres"
	if !includeArchived {
		query += " WHERE is_active = 1"
	}
	query += " ORDER BY nom"

	var members []model.Member
	if err := c.db.SelectContext(ctx, &members, query); err != nil {
		return nil, fmt.Errorf("querying members: %w", err)
	}
	return members, nil
}

// MemberByID retrieves a single member by its id.
func (c *SQLiteCache) MemberByID(ctx context.Context, id int64) (*model.Member, error) {
	var m model.Member
	err := c.db.GetContext(ctx, &m, memberColumns+" FROM membres WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting member %d: %w", id, err)
	}
	return &m, nil
}

// SetMemberActive flips a member's active flag locally, ahead of the
// backend confirming the archive or restore.
func (c *SQLiteCache) SetMemberActive(ctx context.Context, id int64, active bool, archivedAt *time.Time) error {
	_, err := c.db.ExecContext(ctx,
		"UPDATE membres SET is_active = ?, archived_at = ? WHERE id = ?",
		boolToInt(active), archivedAt, id,
	)
	if err != nil {
		return fmt.Errorf("updating member %d active flag: %w", id, err)
	}
	return nil
}

const memberColumns = "SELECT id, nom, email, role, is_active, archived_at, date_creation"

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
