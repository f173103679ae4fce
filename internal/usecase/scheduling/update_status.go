package scheduling

import (
	"context"
	"log/slog"

	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/audit"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/calendar"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/config"
	domain "github.com/AleCarrera11/citasya-fullstack-sub000/internal/domain/scheduling"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/httperr"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/models"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/timezone"
)

type UpdateStatus struct {
	repo   domain.Repository
	cal    calendar.Client
	audit  *audit.Dispatcher
	cfg    *config.Config
	logger *slog.Logger
}

func NewUpdateStatus(
	repo domain.Repository,
	cal calendar.Client,
	auditDispatcher *audit.Dispatcher,
	cfg *config.Config,
	logger *slog.Logger,
) *UpdateStatus {
	return &UpdateStatus{
		repo:   repo,
		cal:    cal,
		audit:  auditDispatcher,
		cfg:    cfg,
		logger: logger,
	}
}

// Execute applies a status change under the strict lifecycle policy.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	appointmentID uint,
	rawStatus string,
	actor string,
) (*models.Appointment, error) {

	to, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.NotFoundErr("appointment_not_found")
	}

	from := domain.Status(ap.Status)
	now := timezone.NowIn(uc.cfg.Timezone)

	if err := domain.ApplyStatus(ap, to, now); err != nil {
		return nil, err
	}

	if from == to {
		return ap, nil
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "appointment_" + string(to),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	if to == domain.StatusCancelled {
		uc.dropCalendarEvent(ctx, ap)
	}

	return ap, nil
}

// Cancel marks the appointment cancelled. Cancellation is a status change,
// never a row delete.
func (uc *UpdateStatus) Cancel(
	ctx context.Context,
	appointmentID uint,
	actor string,
) (*models.Appointment, error) {
	return uc.Execute(ctx, appointmentID, string(domain.StatusCancelled), actor)
}

// dropCalendarEvent removes the mirrored event, best-effort. The cancelled
// row stays authoritative either way.
func (uc *UpdateStatus) dropCalendarEvent(ctx context.Context, ap *models.Appointment) {
	if ap.CalendarEventID == "" {
		return
	}

	ctx = context.WithoutCancel(ctx)

	if err := uc.cal.DeleteEvent(ctx, ap.CalendarEventID); err != nil {
		uc.logger.Warn("calendar event cleanup failed",
			"appointment_id", ap.ID, "event_id", ap.CalendarEventID, "error", err)
		return
	}

	if err := uc.repo.SetCalendarEventID(ctx, ap.ID, ""); err != nil {
		uc.logger.Warn("could not clear calendar event id",
			"appointment_id", ap.ID, "error", err)
		return
	}
	ap.CalendarEventID = ""
}
