package events

import (
	"context"
	"encoding/json"
	"time"

	"fitsync/training-service/internal/domain"
	"fitsync/training-service/internal/logger"
	"fitsync/training-service/internal/metrics"
)

// Topics
const (
	TopicProgramAssigned  = "program.assigned"
	TopicProgramCompleted = "program.completed"
	TopicProgramUpdated   = "program.updated"
)

const (
	timestampLayout = "2006-01-02T15:04:05.000Z"
	dateLayout      = "2006-01-02"
)

// Envelope wraps every published payload.
type Envelope struct {
	Event         string `json:"event"`
	Timestamp     string `json:"timestamp"`
	CorrelationID string `json:"correlation_id"`
	Data          any    `json:"data"`
}

type ProgramAssignedData struct {
	ProgramID     string  `json:"program_id"`
	ClientID      string  `json:"client_id"`
	TrainerID     string  `json:"trainer_id"`
	WorkoutPlanID *string `json:"workout_plan_id"`
	DietPlanID    *string `json:"diet_plan_id"`
	StartDate     string  `json:"start_date"`
	DurationWeeks *int    `json:"duration_weeks"`
}

type ProgramCompletedData struct {
	ProgramID      string   `json:"program_id"`
	ClientID       string   `json:"client_id"`
	TrainerID      string   `json:"trainer_id"`
	CompletionDate string   `json:"completion_date"`
	AdherenceRate  *float64 `json:"adherence_rate"`
}

type ProgramUpdatedData struct {
	ProgramID string   `json:"program_id"`
	ClientID  string   `json:"client_id"`
	TrainerID string   `json:"trainer_id"`
	Changes   []string `json:"changes"`
}

// Notifier emits program lifecycle events. Emission is best effort: failures
// are logged and counted, never returned.
type Notifier interface {
	ProgramAssigned(ctx context.Context, program *domain.Program, durationWeeks *int)
	ProgramCompleted(ctx context.Context, program *domain.Program, adherenceRate *float64)
	ProgramUpdated(ctx context.Context, program *domain.Program, changes []string)
}

type notifier struct {
	pub     Publisher
	log     *logger.Logger
	timeout time.Duration
	now     func() time.Time
}

// NewNotifier creates a Notifier on top of pub. Each publish is bounded by
// timeout and detached from the request's cancellation.
func NewNotifier(pub Publisher, log *logger.Logger, timeout time.Duration) Notifier {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &notifier{
		pub:     pub,
		log:     log.With("component", "events"),
		timeout: timeout,
		now:     time.Now,
	}
}

func (n *notifier) ProgramAssigned(ctx context.Context, p *domain.Program, durationWeeks *int) {
	n.emit(ctx, TopicProgramAssigned, ProgramAssignedData{
		ProgramID:     p.ID,
		ClientID:      p.ClientID,
		TrainerID:     p.TrainerID,
		WorkoutPlanID: p.WorkoutPlanID,
		DietPlanID:    p.DietPlanID,
		StartDate:     p.StartDate.Format(dateLayout),
		DurationWeeks: durationWeeks,
	})
}

func (n *notifier) ProgramCompleted(ctx context.Context, p *domain.Program, adherenceRate *float64) {
	n.emit(ctx, TopicProgramCompleted, ProgramCompletedData{
		ProgramID:      p.ID,
		ClientID:       p.ClientID,
		TrainerID:      p.TrainerID,
		CompletionDate: n.now().UTC().Format(dateLayout),
		AdherenceRate:  adherenceRate,
	})
}

func (n *notifier) ProgramUpdated(ctx context.Context, p *domain.Program, changes []string) {
	if changes == nil {
		changes = []string{}
	}
	n.emit(ctx, TopicProgramUpdated, ProgramUpdatedData{
		ProgramID: p.ID,
		ClientID:  p.ClientID,
		TrainerID: p.TrainerID,
		Changes:   changes,
	})
}

func (n *notifier) emit(ctx context.Context, topic string, data any) {
	correlationID := CorrelationID(ctx)
	if correlationID == "" {
		correlationID = NewCorrelationID()
	}
	raw, err := json.Marshal(Envelope{
		Event:         topic,
		Timestamp:     n.now().UTC().Format(timestampLayout),
		CorrelationID: correlationID,
		Data:          data,
	})
	if err == nil {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
		err = n.pub.Publish(pubCtx, topic, raw)
		cancel()
	}
	metrics.EventPublished(topic, err)
	if err != nil {
		n.log.Error("Failed to publish event", "topic", topic, "correlation_id", correlationID, "error", err)
		return
	}
	n.log.Info("Event published", "topic", topic, "correlation_id", correlationID)
}
