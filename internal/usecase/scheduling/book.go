package scheduling

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/audit"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/calendar"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/config"
	domain "github.com/AleCarrera11/citasya-fullstack-sub000/internal/domain/scheduling"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/httperr"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/messaging"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/models"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	// Either ClientID or ClientDocumentID identifies the client; the admin
	// form sends the document id, the chat tools send the id.
	ClientID         uint
	ClientDocumentID string

	ServiceID uint
	WorkerID  uint

	Date  string // YYYY-MM-DD
	Time  string // HH:MM
	Notes string

	Actor string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo   domain.Repository
	cal    calendar.Client
	sender messaging.Sender
	audit  *audit.Dispatcher
	cfg    *config.Config
	logger *slog.Logger
}

func NewBookAppointment(
	repo domain.Repository,
	cal calendar.Client,
	sender messaging.Sender,
	auditDispatcher *audit.Dispatcher,
	cfg *config.Config,
	logger *slog.Logger,
) *BookAppointment {
	return &BookAppointment{
		repo:   repo,
		cal:    cal,
		sender: sender,
		audit:  auditDispatcher,
		cfg:    cfg,
		logger: logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	loc := timezone.Location(uc.cfg.Timezone)

	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.InvalidInputErr("invalid_date_or_time")
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.NotFoundErr("service_not_found")
	}
	if !service.Active {
		return nil, httperr.InvalidInputErr("service_inactive")
	}

	client, err := uc.findClient(ctx, in)
	if err != nil {
		return nil, err
	}

	worker, err := uc.repo.GetWorker(ctx, in.WorkerID)
	if err != nil {
		return nil, httperr.NotFoundErr("worker_not_found")
	}
	if !worker.Active {
		return nil, httperr.InvalidInputErr("worker_inactive")
	}

	qualified, err := uc.repo.IsWorkerQualified(ctx, worker.ID, service.ID)
	if err != nil {
		return nil, err
	}
	if !qualified {
		return nil, httperr.InvalidInputErr("worker_not_qualified")
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	now := timezone.NowIn(uc.cfg.Timezone)
	if start.Before(now) {
		return nil, httperr.InvalidInputErr("date_in_past")
	}

	sched, err := uc.repo.GetSchedule(ctx, worker.ID, int(start.Weekday()))
	if err != nil {
		return nil, httperr.InvalidInputErr("outside_schedule")
	}

	work, brk, ok := domain.DayWindow(sched, uc.cfg.BusinessHours(start.Weekday()), start)
	if !ok || !domain.WithinWindow(work, brk, start, end) {
		return nil, httperr.InvalidInputErr("outside_schedule")
	}

	// Overlap re-check and insert run inside one transaction, so two
	// concurrent bookings for the same worker cannot both pass.
	ap := &models.Appointment{
		ClientID:  client.ID,
		ServiceID: service.ID,
		WorkerID:  worker.ID,
		StartTime: start,
		EndTime:   end,
		Status:    string(domain.StatusPending),
		Notes:     in.Notes,
	}

	if err := uc.repo.CreateAppointmentExclusive(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    in.Actor,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	// The booking is committed; calendar and WhatsApp are advisory mirrors
	// from here on, so their failures only get logged.
	uc.syncCalendar(ctx, ap, client, service, worker)
	uc.notifyClient(ctx, client, service, worker, start)

	ap.Client = *client
	ap.Service = *service
	ap.Worker = *worker

	return ap, nil
}

func (uc *BookAppointment) findClient(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Client, error) {

	if in.ClientID != 0 {
		client, err := uc.repo.GetClient(ctx, in.ClientID)
		if err != nil {
			return nil, httperr.NotFoundErr("client_not_found")
		}
		return client, nil
	}

	if in.ClientDocumentID == "" {
		return nil, httperr.InvalidInputErr("client_not_found")
	}

	client, err := uc.repo.GetClientByDocument(ctx, in.ClientDocumentID)
	if err != nil {
		return nil, httperr.NotFoundErr("client_not_found")
	}
	return client, nil
}

func (uc *BookAppointment) syncCalendar(
	ctx context.Context,
	ap *models.Appointment,
	client *models.Client,
	service *models.Service,
	worker *models.Worker,
) {
	ctx = context.WithoutCancel(ctx)

	eventID, err := uc.cal.CreateEvent(ctx, calendar.Event{
		Summary: fmt.Sprintf("%s - %s", service.Name, client.Name),
		Description: fmt.Sprintf(
			"Cliente: %s (%s)\nServicio: %s\nEspecialista: %s",
			client.Name, client.Phone, service.Name, worker.Name,
		),
		Start:    ap.StartTime,
		End:      ap.EndTime,
		Timezone: uc.cfg.Timezone,
	})
	if err != nil {
		uc.logger.Warn("calendar sync failed, booking kept",
			"appointment_id", ap.ID, "error", err)
		return
	}
	if eventID == "" {
		return
	}

	if err := uc.repo.SetCalendarEventID(ctx, ap.ID, eventID); err != nil {
		uc.logger.Warn("could not persist calendar event id",
			"appointment_id", ap.ID, "event_id", eventID, "error", err)
		return
	}
	ap.CalendarEventID = eventID
}

func (uc *BookAppointment) notifyClient(
	ctx context.Context,
	client *models.Client,
	service *models.Service,
	worker *models.Worker,
	start time.Time,
) {
	if client.Phone == "" {
		return
	}

	body := fmt.Sprintf(
		"¡Hola %s! Tu cita de %s con %s quedó registrada para el %s a las %s. ¡Te esperamos!",
		client.Name,
		service.Name,
		worker.Name,
		start.Format("02/01/2006"),
		start.Format("15:04"),
	)

	if err := uc.sender.SendWhatsApp(context.WithoutCancel(ctx), client.Phone, body); err != nil {
		uc.logger.Warn("whatsapp confirmation failed",
			"client_id", client.ID, "error", err)
	}
}
