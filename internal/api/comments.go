package api

import (
	"context"
	"fmt"

	"github.com/promanager/promanager/internal/model"
)

// ListComments fetches the comments on a task, oldest first.
func (c *Client) ListComments(ctx context.Context, tacheID int64) ([]model.Comment, error) {
	var payloads []commentPayload
	path := fmt.Sprintf("/commentaires/?tache=%d", tacheID)
	if err := c.Get(ctx, path, &payloads); err != nil {
		return nil, fmt.Errorf("fetching comments for task %d: %w", tacheID, err)
	}

	comments := make([]model.Comment, 0, len(payloads))
	for _, p := range payloads {
		comments = append(comments, p.toModel())
	}
	return comments, nil
}

// CreateComment posts a comment on a task as the given author.
func (c *Client) CreateComment(ctx context.Context, tacheID, auteurID int64, contenu string) (*model.Comment, error) {
	body := map[string]interface{}{
		"contenu": contenu,
		"tache":   tacheID,
		"auteur":  auteurID,
	}

	var created commentPayload
	if err := c.Post(ctx, "/commentaires/", body, &created); err != nil {
		return nil, fmt.Errorf("posting comment on task %d: %w", tacheID, err)
	}
	comment := created.toModel()
	return &comment, nil
}

// DeleteComment removes a comment. The access package limits deletion
// to the member's own comments before this call is made.
func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	if err := c.Delete(ctx, fmt.Sprintf("/commentaires/%d/", id)); err != nil {
		return fmt.Errorf("deleting comment %d: %w", id, err)
	}
	return nil
}
