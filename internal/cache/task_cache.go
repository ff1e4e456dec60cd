package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/promanager/promanager/internal/model"
)

const taskColumns = "SELECT id, nom, description, date_debut, date_fin, statut, priorite, projet_id, projet_nom, assignee_id, assignee_nom"

// UpsertTasks inserts or replaces a batch of tasks.
func (c *SQLiteCache) UpsertTasks(ctx context.Context, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO taches (
			id, nom, description, date_debut, date_fin,
			statut, priorite, projet_id, projet_nom,
			assignee_id, assignee_nom
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, t := range tasks {
		_, err = stmt.ExecContext(ctx,
			t.ID, t.Nom, t.Description,
			t.DateDebut.UTC(), t.DateFin.UTC(),
			t.Statut, t.Priorite, t.ProjetID, t.ProjetNom,
			t.AssigneeID, t.AssigneeNom,
		)
		if err != nil {
			return fmt.Errorf("upserting task %d: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// Tasks retrieves cached tasks matching the filter, ordered by
// ascending due date.
func (c *SQLiteCache) Tasks(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	var conditions []string
	var args []interface{}

	if filter.ProjetID != nil {
		conditions = append(conditions, "projet_id = ?")
		args = append(args, *filter.ProjetID)
	}
	if filter.Statut != nil {
		conditions = append(conditions, "statut = ?")
		args = append(args, *filter.Statut)
	}
	if filter.Priorite != nil {
		conditions = append(conditions, "priorite = ?")
		args = append(args, *filter.Priorite)
	}
	if filter.AssigneeID != nil {
		conditions = append(conditions, "assignee_id = ?")
		args = append(args, *filter.AssigneeID)
	}
	if filter.Query != nil && *filter.Query != "" {
		conditions = append(conditions, "(nom LIKE ? OR description LIKE ?)")
		q := "%" + *filter.Query + "%"
		args = append(args, q, q)
	}

	query := taskColumns + " FROM taches"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date_fin, id"

	var tasks []model.Task
	if err := c.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	return tasks, nil
}

// TaskByID retrieves a single task by its id.
func (c *SQLiteCache) TaskByID(ctx context.Context, id int64) (*model.Task, error) {
	var t model.Task
	err := c.db.GetContext(ctx, &t, taskColumns+" FROM taches WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting task %d: %w", id, err)
	}
	return &t, nil
}

// SetTaskStatus updates a task's status locally, ahead of the backend
// confirming the change.
func (c *SQLiteCache) SetTaskStatus(ctx context.Context, id int64, statut string) error {
	_, err := c.db.ExecContext(ctx, "UPDATE taches SET statut = ? WHERE id = ?", statut, id)
	if err != nil {
		return fmt.Errorf("updating status of task %d: %w", id, err)
	}
	return nil
}

// SetTaskAssignee updates a task's assignee locally. A nil assignee
// clears the assignment.
func (c *SQLiteCache) SetTaskAssignee(ctx context.Context, id int64, assigneeID *int64, assigneeNom string) error {
	_, err := c.db.ExecContext(ctx,
		"UPDATE taches SET assignee_id = ?, assignee_nom = ? WHERE id = ?",
		assigneeID, assigneeNom, id,
	)
	if err != nil {
		return fmt.Errorf("updating assignee of task %d: %w", id, err)
	}
	return nil
}

// DeleteTask removes a task and its comments from the cache.
func (c *SQLiteCache) DeleteTask(ctx context.Context, id int64) error {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM commentaires WHERE tache_id = ?", id); err != nil {
		return fmt.Errorf("deleting comments of task %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM taches WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting task %d: %w", id, err)
	}

	return tx.Commit()
}
