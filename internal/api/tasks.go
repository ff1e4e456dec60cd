package api

import (
	"context"
	"fmt"

	"github.com/promanager/promanager/internal/model"
)

// ListTasks fetches tasks, optionally filtered to a single project.
func (c *Client) ListTasks(ctx context.Context, projetID *int64) ([]model.Task, error) {
	path := "/taches/"
	if projetID != nil {
		path = fmt.Sprintf("/taches/?projet_id=%d", *projetID)
	}

	var payloads []taskPayload
	if err := c.Get(ctx, path, &payloads); err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}

	tasks := make([]model.Task, 0, len(payloads))
	for _, p := range payloads {
		tasks = append(tasks, p.toModel())
	}
	return tasks, nil
}

// GetTask fetches a single task with its expanded assignee.
func (c *Client) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	var payload taskPayload
	if err := c.Get(ctx, fmt.Sprintf("/taches/%d/", id), &payload); err != nil {
		return nil, fmt.Errorf("fetching task %d: %w", id, err)
	}
	task := payload.toModel()
	return &task, nil
}

// CreateTask creates a task within a project. Dates are validated
// client-side before the request is issued.
func (c *Client) CreateTask(ctx context.Context, t model.Task) (*model.Task, error) {
	if err := model.ValidateDateRange(t.DateDebut, t.DateFin); err != nil {
		return nil, err
	}

	var created taskPayload
	if err := c.Post(ctx, "/taches/", taskWriteBody(t), &created); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	result := created.toModel()
	return &result, nil
}

// UpdateTask replaces a task's writable fields.
func (c *Client) UpdateTask(ctx context.Context, t model.Task) error {
	if err := model.ValidateDateRange(t.DateDebut, t.DateFin); err != nil {
		return err
	}
	if err := c.Put(ctx, fmt.Sprintf("/taches/%d/", t.ID), taskWriteBody(t), nil); err != nil {
		return fmt.Errorf("updating task %d: %w", t.ID, err)
	}
	return nil
}

// AssignTask sets the task's assignee.
func (c *Client) AssignTask(ctx context.Context, taskID, membreID int64) error {
	body := map[string]int64{"membre_id": membreID}
	if err := c.Post(ctx, fmt.Sprintf("/taches/%d/assign/", taskID), body, nil); err != nil {
		return fmt.Errorf("assigning task %d: %w", taskID, err)
	}
	return nil
}

// ChangeTaskStatus moves the task to a new status. The backend accepts
// En attente, En cours, Terminé, and Annulé through this action.
func (c *Client) ChangeTaskStatus(ctx context.Context, taskID int64, statut string) error {
	body := map[string]string{"statut": statut}
	if err := c.Post(ctx, fmt.Sprintf("/taches/%d/change_status/", taskID), body, nil); err != nil {
		return fmt.Errorf("changing status of task %d: %w", taskID, err)
	}
	return nil
}

func taskWriteBody(t model.Task) taskInput {
	return taskInput{
		Nom:         t.Nom,
		Description: t.Description,
		DateDebut:   formatDate(t.DateDebut),
		DateFin:     formatDate(t.DateFin),
		Statut:      t.Statut,
		Priorite:    t.Priorite,
		Projet:      t.ProjetID,
		Assignee:    t.AssigneeID,
	}
}
