package domain

import "time"

// ProgramStatus type for program lifecycle
type ProgramStatus string

const (
	ProgramActive    ProgramStatus = "active"
	ProgramPaused    ProgramStatus = "paused"
	ProgramCompleted ProgramStatus = "completed"
)

func (s ProgramStatus) Valid() bool {
	switch s {
	case ProgramActive, ProgramPaused, ProgramCompleted:
		return true
	}
	return false
}

// Program assigns a workout and/or diet plan to a client on behalf of a trainer.
// ClientID and TrainerID are references owned by the user service.
type Program struct {
	ID            string        `json:"id"`
	ClientID      string        `json:"client_id"`
	TrainerID     string        `json:"trainer_id"`
	WorkoutPlanID *string       `json:"workout_plan_id"`
	DietPlanID    *string       `json:"diet_plan_id"`
	StartDate     time.Time     `json:"start_date"`
	EndDate       *time.Time    `json:"end_date"`
	Status        ProgramStatus `json:"status"`
	Notes         *string       `json:"notes"`
	AssignedAt    time.Time     `json:"assigned_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ActiveProgram is a Program joined with the names of its plans.
type ActiveProgram struct {
	Program
	WorkoutName *string `json:"workout_name"`
	DietName    *string `json:"diet_name"`
}
