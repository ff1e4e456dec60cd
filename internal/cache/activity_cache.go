package cache

import (
	"context"
	"fmt"

	"github.com/promanager/promanager/internal/model"
)

// UpsertComments inserts or replaces a batch of comments.
func (c *SQLiteCache) UpsertComments(ctx context.Context, comments []model.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO commentaires (
			id, contenu, date, tache_id, auteur_id, auteur_nom
		) VALUES (?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, co := range comments {
		_, err = stmt.ExecContext(ctx,
			co.ID, co.Contenu, co.Date.UTC(),
			co.TacheID, co.AuteurID, co.AuteurNom,
		)
		if err != nil {
			return fmt.Errorf("upserting comment %d: %w", co.ID, err)
		}
	}

	return tx.Commit()
}

// CommentsForTask retrieves cached comments of a task, oldest first.
func (c *SQLiteCache) CommentsForTask(ctx context.Context, tacheID int64) ([]model.Comment, error) {
	var comments []model.Comment
	err := c.db.SelectContext(ctx, &comments, `
		SELECT id, contenu, date, tache_id, auteur_id, auteur_nom
		FROM commentaires WHERE tache_id = ? ORDER BY date, id`, tacheID)
	if err != nil {
		return nil, fmt.Errorf("querying comments of task %d: %w", tacheID, err)
	}
	return comments, nil
}

// DeleteComment removes a comment from the cache.
func (c *SQLiteCache) DeleteComment(ctx context.Context, id int64) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM commentaires WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting comment %d: %w", id, err)
	}
	return nil
}

// UpsertFiles inserts or replaces a batch of shared files.
func (c *SQLiteCache) UpsertFiles(ctx context.Context, files []model.File) error {
	if len(files) == 0 {
		return nil
	}

	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO fichiers (
			id, nom, url, date_partage, projet_id
		) VALUES (?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, f := range files {
		_, err = stmt.ExecContext(ctx,
			f.ID, f.Nom, f.URL, f.DatePartage.UTC(), f.ProjetID,
		)
		if err != nil {
			return fmt.Errorf("upserting file %d: %w", f.ID, err)
		}
	}

	return tx.Commit()
}

// FilesForProject retrieves cached files of a project, newest first.
func (c *SQLiteCache) FilesForProject(ctx context.Context, projetID int64) ([]model.File, error) {
	var files []model.File
	err := c.db.SelectContext(ctx, &files, `
		SELECT id, nom, url, date_partage, projet_id
		FROM fichiers WHERE projet_id = ? ORDER BY date_partage DESC, id DESC`, projetID)
	if err != nil {
		return nil, fmt.Errorf("querying files of project %d: %w", projetID, err)
	}
	return files, nil
}

// DeleteFile removes a file entry from the cache.
func (c *SQLiteCache) DeleteFile(ctx context.Context, id int64) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM fichiers WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting file %d: %w", id, err)
	}
	return nil
}
