// Package sync fetches fresh entity state from the backend and merges
// it into the local cache. Refreshes are user-triggered; each one gets
// a generation id, and results carrying a stale generation are
// discarded instead of applied, so leaving a screen mid-refresh never
// lets an old response overwrite newer state.
package sync

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/promanager/promanager/internal/api"
	"github.com/promanager/promanager/internal/cache"
)

// Resource identifies one independently fetched collection.
type Resource string

const (
	ResourceProfile  Resource = "profil"
	ResourceProjects Resource = "projets"
	ResourceTasks    Resource = "taches"
	ResourceMembers  Resource = "membres"
)

// refreshResources is the fetch order of a full refresh. Each resource
// is fetched on its own goroutine; one failing leaves the others alone.
var refreshResources = []Resource{
	ResourceProfile,
	ResourceProjects,
	ResourceTasks,
	ResourceMembers,
}

// State represents the refresh state of a single resource.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateError
)

// Status holds the refresh state for one resource. A resource in
// StateError keeps serving its last cached rows; LastSync tells the
// views how stale those rows are.
type Status struct {
	Resource Resource
	State    State
	LastSync time.Time
	Error    error
}

// ResultMsg is a tea.Msg sent when one resource finishes refreshing.
type ResultMsg struct {
	Resource   Resource
	Generation uuid.UUID
	Profile    *api.Profile // set for ResourceProfile
	Err        error
	Auth       bool // Err is an authentication failure; route to login
}

// fetchTimeout is the maximum time allowed for a single fetch.
const fetchTimeout = 30 * time.Second

// Refresher orchestrates concurrent fetches of the backend collections
// into the cache.
type Refresher struct {
	client *api.Client
	cache  cache.Cache

	mu         gosync.Mutex
	generation uuid.UUID
	statuses   map[Resource]*Status
	resultCh   chan ResultMsg
}

// New creates a Refresher writing into the given cache.
func New(client *api.Client, c cache.Cache) *Refresher {
	statuses := make(map[Resource]*Status, len(refreshResources))
	for _, res := range refreshResources {
		statuses[res] = &Status{Resource: res, State: StateIdle}
	}
	return &Refresher{
		client:     client,
		cache:      c,
		generation: uuid.New(),
		statuses:   statuses,
		resultCh:   make(chan ResultMsg, 16),
	}
}

// RefreshAll starts a new refresh generation and fetches every
// resource concurrently. The returned command subscribes to results;
// the caller keeps listening with WaitForNextResult.
func (r *Refresher) RefreshAll() tea.Cmd {
	gen := r.nextGeneration()
	for _, res := range refreshResources {
		go r.fetch(gen, res)
	}
	return r.waitForResult()
}

// RefreshMembers refetches the member list alone, optionally including
// archived members for the admin screen.
func (r *Refresher) RefreshMembers(showArchived bool) tea.Cmd {
	gen := r.currentGeneration()
	go r.fetchMembers(gen, showArchived)
	return nil
}

// Abandon invalidates the in-flight generation. Responses still in
// flight will be dropped when they land.
func (r *Refresher) Abandon() {
	r.nextGeneration()
}

// Statuses returns the current refresh status of every resource, in
// fetch order.
func (r *Refresher) Statuses() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	statuses := make([]Status, 0, len(refreshResources))
	for _, res := range refreshResources {
		statuses = append(statuses, *r.statuses[res])
	}
	return statuses
}

// WaitForNextResult returns a tea.Cmd that waits for the next refresh
// result. Call it again after processing each ResultMsg to keep
// listening.
func (r *Refresher) WaitForNextResult() tea.Cmd {
	return r.waitForResult()
}

func (r *Refresher) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-r.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

func (r *Refresher) nextGeneration() uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation = uuid.New()
	return r.generation
}

func (r *Refresher) currentGeneration() uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation
}

// fetch performs a single fetch of one resource and merges the result
// into the cache, unless the generation went stale while the request
// was in flight.
func (r *Refresher) fetch(gen uuid.UUID, res Resource) {
	r.setStatus(res, StateRunning, nil)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	var (
		profile *api.Profile
		err     error
	)

	switch res {
	case ResourceProfile:
		profile, err = r.client.GetProfile(ctx)
	case ResourceProjects:
		err = r.fetchProjects(ctx, gen)
	case ResourceTasks:
		err = r.fetchTasks(ctx, gen)
	case ResourceMembers:
		r.fetchMembers(gen, false)
		return
	}

	if stale := r.currentGeneration() != gen; stale {
		return
	}

	if err != nil {
		r.setStatus(res, StateError, err)
		r.sendResult(ResultMsg{
			Resource:   res,
			Generation: gen,
			Err:        err,
			Auth:       api.IsAuthError(err),
		})
		return
	}

	r.setStatus(res, StateIdle, nil)
	r.sendResult(ResultMsg{Resource: res, Generation: gen, Profile: profile})
}

func (r *Refresher) fetchProjects(ctx context.Context, gen uuid.UUID) error {
	projects, err := r.client.ListProjects(ctx)
	if err != nil {
		return err
	}
	if r.currentGeneration() != gen {
		return nil
	}
	return r.cache.UpsertProjects(ctx, projects)
}

func (r *Refresher) fetchTasks(ctx context.Context, gen uuid.UUID) error {
	tasks, err := r.client.ListTasks(ctx, nil)
	if err != nil {
		return err
	}
	if r.currentGeneration() != gen {
		return nil
	}
	return r.cache.UpsertTasks(ctx, tasks)
}

func (r *Refresher) fetchMembers(gen uuid.UUID, showArchived bool) {
	r.setStatus(ResourceMembers, StateRunning, nil)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	members, err := r.client.ListMembers(ctx, showArchived)

	if r.currentGeneration() != gen {
		return
	}

	if err == nil {
		err = r.cache.UpsertMembers(ctx, members)
	}
	if err != nil {
		r.setStatus(ResourceMembers, StateError, err)
		r.sendResult(ResultMsg{
			Resource:   ResourceMembers,
			Generation: gen,
			Err:        err,
			Auth:       api.IsAuthError(err),
		})
		return
	}

	r.setStatus(ResourceMembers, StateIdle, nil)
	r.sendResult(ResultMsg{Resource: ResourceMembers, Generation: gen})
}

func (r *Refresher) setStatus(res Resource, state State, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	status, ok := r.statuses[res]
	if !ok {
		return
	}

	status.State = state
	status.Error = err
	if state == StateIdle && err == nil {
		status.LastSync = time.Now()
	}
}

// sendResult sends a ResultMsg without blocking.
func (r *Refresher) sendResult(msg ResultMsg) {
	select {
	case r.resultCh <- msg:
	default:
		// Drop if the channel is full to avoid blocking a fetch.
	}
}
