package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/promanager/promanager/internal/model"
)

const projectColumns = "SELECT id, nom, description, date_debut, date_fin, statut, cree_par_id"

// UpsertProjects inserts or replaces a batch of projects. When a
// project carries its member set or its tasks (detail responses), the
// nested entities are merged too and the membership rows are replaced.
func (c *SQLiteCache) UpsertProjects(ctx context.Context, projects []model.Project) error {
	if len(projects) == 0 {
		return nil
	}

	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO projets (
			id, nom, description, date_debut, date_fin, statut, cree_par_id
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range projects {
		_, err = stmt.ExecContext(ctx,
			p.ID, p.Nom, p.Description,
			p.DateDebut.UTC(), p.DateFin.UTC(),
			p.Statut, p.CreeParID,
		)
		if err != nil {
			return fmt.Errorf("upserting project %d: %w", p.ID, err)
		}

		if p.Membres != nil {
			if err := replaceProjectMembers(ctx, tx, p.ID, p.Membres); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	// Nested entities go through the regular upserts so the usual
	// per-id merge applies.
	for _, p := range projects {
		if err := c.UpsertMembers(ctx, p.Membres); err != nil {
			return err
		}
		if err := c.UpsertTasks(ctx, p.Taches); err != nil {
			return err
		}
	}

	return nil
}

func replaceProjectMembers(ctx context.Context, tx *sqlx.Tx, projetID int64, membres []model.Member) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM projet_membres WHERE projet_id = ?", projetID); err != nil {
		return fmt.Errorf("clearing members of project %d: %w", projetID, err)
	}
	for _, m := range membres {
		_, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO projet_membres (projet_id, membre_id) VALUES (?, ?)",
			projetID, m.ID,
		)
		if err != nil {
			return fmt.Errorf("linking member %d to project %d: %w", m.ID, projetID, err)
		}
	}
	return nil
}

// Projects retrieves all cached projects ordered by id, without their
// nested entities.
func (c *SQLiteCache) Projects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := c.db.SelectContext(ctx, &projects, projectColumns+" FROM projets ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	return projects, nil
}

// ProjectByID retrieves a single project with its member set and tasks.
func (c *SQLiteCache) ProjectByID(ctx context.Context, id int64) (*model.Project, error) {
	var p model.Project
	err := c.db.GetContext(ctx, &p, projectColumns+" FROM projets WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting project %d: %w", id, err)
	}

	err = c.db.SelectContext(ctx, &p.Membres, memberColumns+`
		FROM membres
		WHERE id IN (SELECT membre_id FROM projet_membres WHERE projet_id = ?)
		ORDER BY nom`, id)
	if err != nil {
		return nil, fmt.Errorf("querying members of project %d: %w", id, err)
	}

	projetID := id
	p.Taches, err = c.Tasks(ctx, TaskFilter{ProjetID: &projetID})
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// DeleteProject removes a project and its tasks, comments, and files
// from the cache.
func (c *SQLiteCache) DeleteProject(ctx context.Context, id int64) error {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	steps := []string{
		"DELETE FROM commentaires WHERE tache_id IN (SELECT id FROM taches WHERE projet_id = ?)",
		"DELETE FROM taches WHERE projet_id = ?",
		"DELETE FROM fichiers WHERE projet_id = ?",
		"DELETE FROM projet_membres WHERE projet_id = ?",
		"DELETE FROM projets WHERE id = ?",
	}
	for _, q := range steps {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("deleting project %d: %w", id, err)
		}
	}

	return tx.Commit()
}
