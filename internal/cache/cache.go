// Package cache is the local entity cache backing the views. It holds
// the last fetched state of members, projects, tasks, comments, and
// files; refreshes merge into it per id, so a failed fetch leaves the
// previous rows in place and the screens keep rendering stale data.
package cache

import (
	"context"
	"time"

	"github.com/promanager/promanager/internal/model"
)

// InMemory is the default cache location. Entities live only for the
// duration of the run; point the cache at a file to keep them across
// restarts.
const InMemory = ":memory:"

// TaskFilter controls filtering for task queries.
type TaskFilter struct {
	ProjetID   *int64
	Statut     *string
	Priorite   *string
	AssigneeID *int64
	Query      *string // search nom + description
}

// Cache defines the local persistence interface for fetched entities.
// Upserts replace whole rows keyed by backend id; whichever write
// lands last wins.
type Cache interface {
	UpsertMembers(ctx context.Context, members []model.Member) error
	Members(ctx context.Context, includeArchived bool) ([]model.Member, error)
	MemberByID(ctx context.Context, id int64) (*model.Member, error)
	SetMemberActive(ctx context.Context, id int64, active bool, archivedAt *time.Time) error

	UpsertProjects(ctx context.Context, projects []model.Project) error
	Projects(ctx context.Context) ([]model.Project, error)
	ProjectByID(ctx context.Context, id int64) (*model.Project, error)
	DeleteProject(ctx context.Context, id int64) error

	UpsertTasks(ctx context.Context, tasks []model.Task) error
	Tasks(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	TaskByID(ctx context.Context, id int64) (*model.Task, error)
	SetTaskStatus(ctx context.Context, id int64, statut string) error
	SetTaskAssignee(ctx context.Context, id int64, assigneeID *int64, assigneeNom string) error
	DeleteTask(ctx context.Context, id int64) error

	UpsertComments(ctx context.Context, comments []model.Comment) error
	CommentsForTask(ctx context.Context, tacheID int64) ([]model.Comment, error)
	DeleteComment(ctx context.Context, id int64) error

	UpsertFiles(ctx context.Context, files []model.File) error
	FilesForProject(ctx context.Context, projetID int64) ([]model.File, error)
	DeleteFile(ctx context.Context, id int64) error

	Close() error
}
