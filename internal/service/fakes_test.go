package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fitsync/training-service/internal/domain"
	"fitsync/training-service/internal/repository"
)

// --- programs ---

type fakeProgramRepo struct {
	mu        sync.Mutex
	rows      map[string]*domain.Program
	nextID    int
	createErr error
	listed    []domain.Program
	active    []domain.ActiveProgram
}

func newFakeProgramRepo() *fakeProgramRepo {
	return &fakeProgramRepo{rows: map[string]*domain.Program{}}
}

func (r *fakeProgramRepo) Create(ctx context.Context, p *domain.Program) (*domain.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	row := *p
	row.ID = fmt.Sprintf("p-%d", r.nextID)
	row.Status = domain.ProgramActive
	row.AssignedAt = time.Now()
	row.UpdatedAt = row.AssignedAt
	r.rows[row.ID] = &row
	out := row
	return &out, nil
}

func (r *fakeProgramRepo) GetByID(ctx context.Context, id string) (*domain.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *row
	return &out, nil
}

func (r *fakeProgramRepo) List(ctx context.Context, params repository.ListParams) (*domain.Page[domain.Program], error) {
	return &domain.Page[domain.Program]{
		Items:      r.listed,
		Pagination: domain.Pagination{Page: 1, Limit: 20, TotalCount: int64(len(r.listed)), TotalPages: 1},
	}, nil
}

func (r *fakeProgramRepo) UpdateStatus(ctx context.Context, id string, status domain.ProgramStatus) (*domain.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	row.Status = status
	out := *row
	return &out, nil
}

func (r *fakeProgramRepo) ListActiveByClient(ctx context.Context, clientID string) ([]domain.ActiveProgram, error) {
	return r.active, nil
}

func (r *fakeProgramRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// --- identity ---

type fakeUsers struct {
	user       *domain.User
	err        error
	batch      []domain.User
	batchIDs   []string
	roleInfo   domain.RoleInfo
	lastToken  string
	getCalls   int
	batchCalls int
}

func (f *fakeUsers) GetUser(ctx context.Context, userID, token string) (*domain.User, error) {
	f.getCalls++
	f.lastToken = token
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUsers) GetUsersBatch(ctx context.Context, userIDs []string, token string) []domain.User {
	f.batchCalls++
	f.batchIDs = userIDs
	if f.batch == nil {
		return []domain.User{}
	}
	return f.batch
}

func (f *fakeUsers) GetRoleInfo(ctx context.Context, userID, token string) domain.RoleInfo {
	return f.roleInfo
}

// --- events ---

type notification struct {
	topic         string
	programID     string
	durationWeeks *int
	adherenceRate *float64
	changes       []string
}

type fakeNotifier struct {
	sent []notification
}

func (f *fakeNotifier) ProgramAssigned(ctx context.Context, p *domain.Program, durationWeeks *int) {
	f.sent = append(f.sent, notification{topic: "program.assigned", programID: p.ID, durationWeeks: durationWeeks})
}

func (f *fakeNotifier) ProgramCompleted(ctx context.Context, p *domain.Program, adherenceRate *float64) {
	f.sent = append(f.sent, notification{topic: "program.completed", programID: p.ID, adherenceRate: adherenceRate})
}

func (f *fakeNotifier) ProgramUpdated(ctx context.Context, p *domain.Program, changes []string) {
	f.sent = append(f.sent, notification{topic: "program.updated", programID: p.ID, changes: changes})
}

func (f *fakeNotifier) topics() []string {
	out := []string{}
	for _, n := range f.sent {
		out = append(out, n.topic)
	}
	return out
}

// --- exercises ---

type fakeExerciseRepo struct {
	rows    map[string]*domain.Exercise
	updates [][]repository.Update
}

func newFakeExerciseRepo(rows ...*domain.Exercise) *fakeExerciseRepo {
	r := &fakeExerciseRepo{rows: map[string]*domain.Exercise{}}
	for _, e := range rows {
		r.rows[e.ID] = e
	}
	return r
}

func (r *fakeExerciseRepo) Create(ctx context.Context, e *domain.Exercise) (*domain.Exercise, error) {
	out := *e
	out.ID = "ex-new"
	r.rows[out.ID] = &out
	return &out, nil
}

func (r *fakeExerciseRepo) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	e, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *e
	return &out, nil
}

func (r *fakeExerciseRepo) List(ctx context.Context, params repository.ListParams) (*domain.Page[domain.Exercise], error) {
	return &domain.Page[domain.Exercise]{Items: []domain.Exercise{}}, nil
}

func (r *fakeExerciseRepo) Update(ctx context.Context, id string, updates []repository.Update) (*domain.Exercise, error) {
	r.updates = append(r.updates, updates)
	if len(updates) == 0 {
		return nil, repository.ErrNoUpdates
	}
	e, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for _, u := range updates {
		if u.Field == "video_url" {
			if s, ok := u.Value.(string); ok {
				e.VideoURL = &s
			}
		}
	}
	out := *e
	return &out, nil
}

func (r *fakeExerciseRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

// --- storage ---

type fakeStorage struct {
	deleted []string
}

func (f *fakeStorage) GeneratePresignedUploadURL(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	return "https://s3.test/upload/" + key, nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	return "https://s3.test/download/" + key, nil
}

func (f *fakeStorage) DeleteObject(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}
