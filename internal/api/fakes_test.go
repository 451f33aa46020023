package api

import (
	"context"

	"fitsync/training-service/internal/domain"
	"fitsync/training-service/internal/events"
	"fitsync/training-service/internal/repository"
	"fitsync/training-service/internal/service"
)

func emptyPage[T any](params repository.ListParams) *domain.Page[T] {
	return &domain.Page[T]{
		Items:      []T{},
		Pagination: domain.Pagination{Page: params.Page, Limit: params.Limit},
	}
}

type fakeExerciseService struct {
	err        error
	caller     domain.Caller
	created    *domain.Exercise
	listParams repository.ListParams
	updates    []repository.Update
}

func (f *fakeExerciseService) CreateExercise(ctx context.Context, caller domain.Caller, e *domain.Exercise) (*domain.Exercise, error) {
	f.caller = caller
	f.created = e
	if f.err != nil {
		return nil, f.err
	}
	out := *e
	out.ID = "ex-1"
	out.CreatedBy = caller.ID
	return &out, nil
}

func (f *fakeExerciseService) GetExercise(ctx context.Context, id string) (*domain.Exercise, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Exercise{ID: id, Name: "Plank"}, nil
}

func (f *fakeExerciseService) ListExercises(ctx context.Context, params repository.ListParams) (*domain.Page[domain.Exercise], error) {
	f.listParams = params
	if f.err != nil {
		return nil, f.err
	}
	page := emptyPage[domain.Exercise](params)
	page.Items = append(page.Items, domain.Exercise{ID: "ex-1", Name: "Plank"})
	page.Pagination.TotalCount = 41
	page.Pagination.TotalPages = 3
	return page, nil
}

func (f *fakeExerciseService) UpdateExercise(ctx context.Context, id string, updates []repository.Update) (*domain.Exercise, error) {
	f.updates = updates
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Exercise{ID: id}, nil
}

func (f *fakeExerciseService) DeleteExercise(ctx context.Context, id string) error {
	return f.err
}

func (f *fakeExerciseService) RequestMediaUpload(ctx context.Context, id, fileName, contentType string) (*service.MediaUpload, error) {
	if f.err != nil {
		return nil, f.err
	}
	key := "exercises/" + id + "/abc.mp4"
	return &service.MediaUpload{UploadURL: "https://s3.test/" + key, ObjectKey: key}, nil
}

func (f *fakeExerciseService) GetMediaURL(ctx context.Context, id string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://s3.test/exercises/" + id + "/abc.mp4", nil
}

type fakeWorkoutService struct {
	err     error
	created *domain.WorkoutPlan
}

func (f *fakeWorkoutService) CreateWorkoutPlan(ctx context.Context, caller domain.Caller, plan *domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	f.created = plan
	if f.err != nil {
		return nil, f.err
	}
	out := *plan
	out.ID = "wp-1"
	out.TrainerID = caller.ID
	return &out, nil
}

func (f *fakeWorkoutService) GetWorkoutPlan(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.WorkoutPlan{ID: id}, nil
}

func (f *fakeWorkoutService) ListWorkoutPlans(ctx context.Context, params repository.ListParams) (*domain.Page[domain.WorkoutPlan], error) {
	return emptyPage[domain.WorkoutPlan](params), f.err
}

func (f *fakeWorkoutService) UpdateWorkoutPlan(ctx context.Context, id string, updates []repository.Update) (*domain.WorkoutPlan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.WorkoutPlan{ID: id}, nil
}

func (f *fakeWorkoutService) DeleteWorkoutPlan(ctx context.Context, id string) error {
	return f.err
}

type fakeDietService struct {
	err error
}

func (f *fakeDietService) CreateDietPlan(ctx context.Context, caller domain.Caller, plan *domain.DietPlan) (*domain.DietPlan, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := *plan
	out.ID = "dp-1"
	return &out, nil
}

func (f *fakeDietService) GetDietPlan(ctx context.Context, id string) (*domain.DietPlan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.DietPlan{ID: id}, nil
}

func (f *fakeDietService) ListDietPlans(ctx context.Context, params repository.ListParams) (*domain.Page[domain.DietPlan], error) {
	return emptyPage[domain.DietPlan](params), f.err
}

func (f *fakeDietService) UpdateDietPlan(ctx context.Context, id string, updates []repository.Update) (*domain.DietPlan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.DietPlan{ID: id}, nil
}

func (f *fakeDietService) DeleteDietPlan(ctx context.Context, id string) error {
	return f.err
}

type fakeProgramService struct {
	err           error
	assigned      service.AssignProgramInput
	correlationID string
	expand        bool
	status        domain.ProgramStatus
	adherenceRate *float64
	completed     bool
	activeFor     string
}

func (f *fakeProgramService) AssignProgram(ctx context.Context, caller domain.Caller, in service.AssignProgramInput) (*domain.Program, error) {
	f.assigned = in
	f.correlationID = events.CorrelationID(ctx)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Program{
		ID:            "p-1",
		ClientID:      in.ClientID,
		TrainerID:     caller.ID,
		WorkoutPlanID: in.WorkoutPlanID,
		StartDate:     in.StartDate,
		Status:        domain.ProgramActive,
	}, nil
}

func (f *fakeProgramService) GetProgram(ctx context.Context, id string) (*domain.Program, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Program{ID: id, Status: domain.ProgramActive}, nil
}

func (f *fakeProgramService) ListPrograms(ctx context.Context, params repository.ListParams, expandUsers bool) (*service.ProgramPage, error) {
	f.expand = expandUsers
	if f.err != nil {
		return nil, f.err
	}
	out := &service.ProgramPage{Page: emptyPage[domain.Program](params)}
	out.Items = append(out.Items, domain.Program{ID: "p-1", ClientID: "client-1", TrainerID: "trainer-1"})
	if expandUsers {
		out.Users = []domain.User{{ID: "client-1", Role: domain.RoleClient}}
	}
	return out, nil
}

func (f *fakeProgramService) UpdateProgramStatus(ctx context.Context, id string, status domain.ProgramStatus) (*domain.Program, error) {
	f.status = status
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Program{ID: id, Status: status}, nil
}

func (f *fakeProgramService) CompleteProgram(ctx context.Context, id string, adherenceRate *float64) (*domain.Program, error) {
	f.completed = true
	f.adherenceRate = adherenceRate
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Program{ID: id, Status: domain.ProgramCompleted}, nil
}

func (f *fakeProgramService) GetActivePrograms(ctx context.Context, caller domain.Caller, clientID string) (*service.ClientActivePrograms, error) {
	f.activeFor = clientID
	if f.err != nil {
		return nil, f.err
	}
	return &service.ClientActivePrograms{Programs: []domain.ActiveProgram{}}, nil
}
