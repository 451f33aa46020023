package service

import (
	"context"
	"errors"
	"time"

	"fitsync/training-service/internal/domain"
	"fitsync/training-service/internal/events"
	"fitsync/training-service/internal/identity"
	"fitsync/training-service/internal/logger"
	"fitsync/training-service/internal/repository"
)

// AssignProgramInput is what a trainer supplies to assign a program.
// There is no status field: new programs are always active.
type AssignProgramInput struct {
	ClientID      string
	WorkoutPlanID *string
	DietPlanID    *string
	StartDate     time.Time
	EndDate       *time.Time
	Notes         *string
	// DurationWeeks is only carried on the assignment event.
	DurationWeeks *int
}

// ProgramPage is a page of programs, optionally with the referenced users.
type ProgramPage struct {
	*domain.Page[domain.Program]
	Users []domain.User // nil unless expansion was requested
}

// ClientActivePrograms lists a client's active programs.
type ClientActivePrograms struct {
	Programs []domain.ActiveProgram `json:"programs"`
	RoleInfo domain.RoleInfo        `json:"role_info"`
}

type ProgramService interface {
	AssignProgram(ctx context.Context, caller domain.Caller, in AssignProgramInput) (*domain.Program, error)
	GetProgram(ctx context.Context, id string) (*domain.Program, error)
	ListPrograms(ctx context.Context, params repository.ListParams, expandUsers bool) (*ProgramPage, error)
	UpdateProgramStatus(ctx context.Context, id string, status domain.ProgramStatus) (*domain.Program, error)
	CompleteProgram(ctx context.Context, id string, adherenceRate *float64) (*domain.Program, error)
	GetActivePrograms(ctx context.Context, caller domain.Caller, clientID string) (*ClientActivePrograms, error)
}

type programService struct {
	programRepo repository.ProgramRepository
	users       identity.Client
	notifier    events.Notifier
	log         *logger.Logger
}

func NewProgramService(
	programRepo repository.ProgramRepository,
	users identity.Client,
	notifier events.Notifier,
	log *logger.Logger,
) ProgramService {
	return &programService{
		programRepo: programRepo,
		users:       users,
		notifier:    notifier,
		log:         log.With("service", "program"),
	}
}

// AssignProgram validates the target client with the user service, persists
// the program as active and announces it. A failed announcement does not
// undo the assignment.
func (s *programService) AssignProgram(ctx context.Context, caller domain.Caller, in AssignProgramInput) (*domain.Program, error) {
	if in.ClientID == "" {
		return nil, validationError("client_id is required")
	}
	if in.StartDate.IsZero() {
		return nil, validationError("start_date is required")
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return nil, validationError("end_date must not be before start_date")
	}

	client, err := s.users.GetUser(ctx, in.ClientID, caller.Token)
	switch {
	case errors.Is(err, identity.ErrUserNotFound):
		return nil, ErrClientNotFound
	case errors.Is(err, identity.ErrServiceUnavailable):
		return nil, ErrServiceUnavailable
	case err != nil:
		return nil, err
	}
	if client.Role != domain.RoleClient {
		return nil, ErrInvalidRole
	}

	program, err := s.programRepo.Create(ctx, &domain.Program{
		ClientID:      in.ClientID,
		TrainerID:     caller.ID,
		WorkoutPlanID: in.WorkoutPlanID,
		DietPlanID:    in.DietPlanID,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Notes:         in.Notes,
		Status:        domain.ProgramActive,
	})
	if err != nil {
		return nil, err
	}

	s.notifier.ProgramAssigned(ctx, program, in.DurationWeeks)
	s.log.Info("Program created", "program_id", program.ID, "client_id", program.ClientID, "trainer_id", program.TrainerID)
	return program, nil
}

func (s *programService) GetProgram(ctx context.Context, id string) (*domain.Program, error) {
	program, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrProgramNotFound)
	}
	return program, nil
}

// ListPrograms returns one page of programs scoped to the caller. With
// expandUsers the client and trainer records on the page are resolved in one
// batch call; a failed lookup yields an empty user list.
func (s *programService) ListPrograms(ctx context.Context, params repository.ListParams, expandUsers bool) (*ProgramPage, error) {
	page, err := s.programRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	out := &ProgramPage{Page: page}
	if !expandUsers {
		return out, nil
	}

	seen := map[string]bool{}
	var ids []string
	for _, p := range page.Items {
		for _, id := range []string{p.ClientID, p.TrainerID} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	out.Users = []domain.User{}
	if len(ids) > 0 {
		out.Users = s.users.GetUsersBatch(ctx, ids, params.Caller.Token)
	}
	return out, nil
}

// UpdateProgramStatus sets a new status. Moving to completed announces a
// completion without an adherence rate; any other status announces an
// update of the status field.
func (s *programService) UpdateProgramStatus(ctx context.Context, id string, status domain.ProgramStatus) (*domain.Program, error) {
	if !status.Valid() {
		return nil, validationError("status must be one of active, paused, completed")
	}
	program, err := s.programRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, translate(err, ErrProgramNotFound)
	}

	if status == domain.ProgramCompleted {
		s.notifier.ProgramCompleted(ctx, program, nil)
	} else {
		s.notifier.ProgramUpdated(ctx, program, []string{"status"})
	}
	return program, nil
}

// CompleteProgram marks a program completed and announces it with the
// caller-supplied adherence rate, if any.
func (s *programService) CompleteProgram(ctx context.Context, id string, adherenceRate *float64) (*domain.Program, error) {
	program, err := s.programRepo.UpdateStatus(ctx, id, domain.ProgramCompleted)
	if err != nil {
		return nil, translate(err, ErrProgramNotFound)
	}

	s.notifier.ProgramCompleted(ctx, program, adherenceRate)
	s.log.Info("Program completed", "program_id", program.ID)
	return program, nil
}

// GetActivePrograms lists a client's active programs with plan names. Clients
// may only look up themselves. Role info is best effort.
func (s *programService) GetActivePrograms(ctx context.Context, caller domain.Caller, clientID string) (*ClientActivePrograms, error) {
	if caller.IsClient() && caller.ID != clientID {
		return nil, ErrForbidden
	}
	programs, err := s.programRepo.ListActiveByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return &ClientActivePrograms{
		Programs: programs,
		RoleInfo: s.users.GetRoleInfo(ctx, clientID, caller.Token),
	}, nil
}
