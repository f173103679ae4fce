package scheduling

import (
	"strings"
	"time"

	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/httperr"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// aliases maps the Spanish labels the dashboard and the chat agent send onto
// canonical statuses.
var aliases = map[string]Status{
	"pending":    StatusPending,
	"pendiente":  StatusPending,
	"confirmed":  StatusConfirmed,
	"confirmada": StatusConfirmed,
	"confirmado": StatusConfirmed,
	"cancelled":  StatusCancelled,
	"cancelada":  StatusCancelled,
	"cancelado":  StatusCancelled,
	"completed":  StatusCompleted,
	"completada": StatusCompleted,
	"completado": StatusCompleted,
}

func ParseStatus(raw string) (Status, error) {
	if s, ok := aliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s, nil
	}
	return "", httperr.InvalidInputErr("invalid_status")
}

func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// rank orders the forward path pending → confirmed → completed.
var rank = map[Status]int{
	StatusPending:   0,
	StatusConfirmed: 1,
	StatusCompleted: 2,
}

// ===============================
// Validations
// ===============================

// CanTransition enforces the lifecycle: transitions move forward only,
// except that any non-terminal status may move to cancelled. Terminal
// statuses accept nothing but themselves.
func CanTransition(from, to Status) error {
	if from == to {
		return nil
	}
	if from.Terminal() {
		return httperr.InvalidTransitionErr("invalid_transition")
	}
	if to == StatusCancelled {
		return nil
	}
	if rank[to] > rank[from] {
		return nil
	}
	return httperr.InvalidTransitionErr("invalid_transition")
}

// ===============================
// Domain Actions
// ===============================

// ApplyStatus validates the transition and mutates the appointment,
// stamping the matching lifecycle timestamp.
func ApplyStatus(ap *models.Appointment, to Status, now time.Time) error {
	from := Status(ap.Status)
	if err := CanTransition(from, to); err != nil {
		return err
	}
	if from == to {
		return nil
	}

	ap.Status = string(to)
	switch to {
	case StatusConfirmed:
		ap.ConfirmedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
	return nil
}
