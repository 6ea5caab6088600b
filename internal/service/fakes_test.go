package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kyulab/labms/internal/domain"
)

// In-memory fakes backing the orchestrator tests. They keep real state so
// cascade and ordering behavior can be observed end to end.

type fakeTx struct {
	err error
}

func (f *fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

// fakeCache always misses on Get and records invalidations.
type fakeCache struct {
	mu          sync.Mutex
	invalidated []string
	stored      map[string]any
}

func newFakeCache() *fakeCache {
	return &fakeCache{stored: make(map[string]any)}
}

func (f *fakeCache) GetJSON(context.Context, string, any) error {
	return context.Canceled // any non-nil error means miss
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored[key] = value
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, keys...)
	return nil
}

type fakeProjectRepo struct {
	mu       sync.Mutex
	projects map[uuid.UUID]*domain.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[uuid.UUID]*domain.Project)}
}

func (f *fakeProjectRepo) Create(_ context.Context, p *domain.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.projects[p.ID] = &cp
	return nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProjectRepo) List(context.Context) ([]*domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Project
	for _, p := range f.projects {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeProjectRepo) ListByStatus(_ context.Context, status domain.ProjectStatus) ([]*domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Project
	for _, p := range f.projects {
		if p.Status == status {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) ListByResearcher(context.Context, uuid.UUID) ([]*domain.Project, error) {
	return nil, nil
}

func (f *fakeProjectRepo) Update(_ context.Context, p *domain.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	f.projects[p.ID] = &cp
	return nil
}

func (f *fakeProjectRepo) ReplaceResearchers(_ context.Context, projectID uuid.UUID, researcherIDs []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[projectID]
	if !ok {
		return domain.ErrNotFound
	}
	p.ResearcherIDs = researcherIDs
	return nil
}

func (f *fakeProjectRepo) CountByStatus(_ context.Context, status domain.ProjectStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, p := range f.projects {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.projects, id)
	return nil
}

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uuid.UUID]*domain.Task)}
}

func (f *fakeTaskRepo) Create(_ context.Context, t *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	cp.AssigneeIDs = append([]uuid.UUID(nil), t.AssigneeIDs...)
	return &cp, nil
}

func (f *fakeTaskRepo) List(context.Context) ([]*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Task
	for _, t := range f.tasks {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeTaskRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Task
	for _, t := range f.tasks {
		if t.ProjectID == projectID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) ListByStatus(context.Context, domain.TaskStatus) ([]*domain.Task, error) {
	return nil, nil
}

func (f *fakeTaskRepo) ListByAssignee(context.Context, uuid.UUID) ([]*domain.Task, error) {
	return nil, nil
}

func (f *fakeTaskRepo) ListOverdue(context.Context, time.Time) ([]*domain.Task, error) {
	return nil, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, t *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.tasks[t.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *t
	cp.AssigneeIDs = existing.AssigneeIDs
	f.tasks[t.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) ReplaceAssignees(_ context.Context, taskID uuid.UUID, researcherIDs []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[taskID]
	if !ok {
		return domain.ErrNotFound
	}
	t.AssigneeIDs = researcherIDs
	return nil
}

func (f *fakeTaskRepo) AddAssignee(_ context.Context, taskID, researcherID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[taskID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, id := range t.AssigneeIDs {
		if id == researcherID {
			return domain.ErrAlreadyAssigned
		}
	}
	t.AssigneeIDs = append(t.AssigneeIDs, researcherID)
	return nil
}

func (f *fakeTaskRepo) CountByStatus(_ context.Context, status domain.TaskStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, t := range f.tasks {
		if t.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskRepo) DeleteByProject(_ context.Context, projectID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, t := range f.tasks {
		if t.ProjectID == projectID {
			delete(f.tasks, id)
		}
	}
	return nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[uuid.UUID]*domain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uuid.UUID]*domain.Comment)}
}

func (f *fakeCommentRepo) Create(_ context.Context, c *domain.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	f.comments[c.ID] = &cp
	return nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommentRepo) ListByTask(_ context.Context, taskID uuid.UUID) ([]*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Comment
	for _, c := range f.comments {
		if c.TaskID == taskID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) Update(_ context.Context, c *domain.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comments[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	f.comments[c.ID] = &cp
	return nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepo) DeleteByTask(_ context.Context, taskID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, c := range f.comments {
		if c.TaskID == taskID {
			delete(f.comments, id)
		}
	}
	return nil
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	entries []*domain.ProjectHistory
}

func newFakeHistoryRepo() *fakeHistoryRepo { return &fakeHistoryRepo{} }

func (f *fakeHistoryRepo) Append(_ context.Context, h *domain.ProjectHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *h
	f.entries = append(f.entries, &cp)
	return nil
}

func (f *fakeHistoryRepo) RecentByProject(_ context.Context, projectID uuid.UUID, limit int) ([]*domain.ProjectHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.ProjectHistory
	for _, h := range f.entries {
		if h.ProjectID == projectID {
			cp := *h
			out = append(out, &cp)
		}
	}
	// Newest first; ties on CreatedAt break by id, same as the store.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeHistoryRepo) PurgeByProject(_ context.Context, projectID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.entries[:0]
	for _, h := range f.entries {
		if h.ProjectID != projectID {
			kept = append(kept, h)
		}
	}
	f.entries = kept
	return nil
}

// countForProject reports how many entries reference the project.
func (f *fakeHistoryRepo) countForProject(projectID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, h := range f.entries {
		if h.ProjectID == projectID {
			n++
		}
	}
	return n
}

// last returns the most recently appended entry, or nil.
func (f *fakeHistoryRepo) last() *domain.ProjectHistory {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.entries) == 0 {
		return nil
	}
	return f.entries[len(f.entries)-1]
}

type fakeBoardRepo struct {
	mu     sync.Mutex
	boards map[uuid.UUID]*domain.Board
}

func newFakeBoardRepo() *fakeBoardRepo {
	return &fakeBoardRepo{boards: make(map[uuid.UUID]*domain.Board)}
}

func (f *fakeBoardRepo) Create(_ context.Context, b *domain.Board) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *b
	f.boards[b.ID] = &cp
	return nil
}

func (f *fakeBoardRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.boards[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBoardRepo) List(context.Context) ([]*domain.Board, error)       { return nil, nil }
func (f *fakeBoardRepo) ListPublic(context.Context) ([]*domain.Board, error) { return nil, nil }
func (f *fakeBoardRepo) Search(context.Context, string) ([]*domain.Board, error) {
	return nil, nil
}

func (f *fakeBoardRepo) Update(_ context.Context, b *domain.Board) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.boards[b.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *b
	f.boards[b.ID] = &cp
	return nil
}

func (f *fakeBoardRepo) IncrementViewCount(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.boards[id]; ok {
		b.ViewCount++
	}
	return nil
}

func (f *fakeBoardRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.boards[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.boards, id)
	return nil
}

type fakeBoardCommentRepo struct {
	mu       sync.Mutex
	comments map[uuid.UUID]*domain.BoardComment
}

func newFakeBoardCommentRepo() *fakeBoardCommentRepo {
	return &fakeBoardCommentRepo{comments: make(map[uuid.UUID]*domain.BoardComment)}
}

func (f *fakeBoardCommentRepo) Create(_ context.Context, c *domain.BoardComment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	f.comments[c.ID] = &cp
	return nil
}

func (f *fakeBoardCommentRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.BoardComment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeBoardCommentRepo) ListByBoard(_ context.Context, boardID uuid.UUID) ([]*domain.BoardComment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.BoardComment
	for _, c := range f.comments {
		if c.BoardID == boardID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeBoardCommentRepo) Update(_ context.Context, c *domain.BoardComment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comments[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	f.comments[c.ID] = &cp
	return nil
}

func (f *fakeBoardCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeBoardCommentRepo) DeleteByBoard(_ context.Context, boardID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, c := range f.comments {
		if c.BoardID == boardID {
			delete(f.comments, id)
		}
	}
	return nil
}
