package scheduling

import (
	"context"
	"time"

	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/models"
)

type Repository interface {
	// -------- Service --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Client --------
	GetClient(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	GetClientByDocument(
		ctx context.Context,
		documentID string,
	) (*models.Client, error)

	// -------- Worker --------
	GetWorker(
		ctx context.Context,
		id uint,
	) (*models.Worker, error)

	// ListQualifiedWorkers returns the active workers related to the service,
	// ordered by id.
	ListQualifiedWorkers(
		ctx context.Context,
		serviceID uint,
	) ([]models.Worker, error)

	IsWorkerQualified(
		ctx context.Context,
		workerID uint,
		serviceID uint,
	) (bool, error)

	GetSchedule(
		ctx context.Context,
		workerID uint,
		weekday int,
	) (*models.WorkerSchedule, error)

	// -------- Appointment (availability reads) --------

	// ListAppointmentsForDay returns the worker's non-cancelled appointments
	// with start inside [start, end), ordered by start time.
	ListAppointmentsForDay(
		ctx context.Context,
		workerID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (booking write) --------

	// CreateAppointmentExclusive re-checks the overlap and inserts inside one
	// transaction, serializing concurrent bookings for the same worker. A
	// losing race returns a Conflict business error.
	CreateAppointmentExclusive(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (lifecycle) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// SetCalendarEventID records the external event id after a successful
	// best-effort sync.
	SetCalendarEventID(
		ctx context.Context,
		appointmentID uint,
		eventID string,
	) error

	ListAppointmentsForClient(
		ctx context.Context,
		clientID uint,
		from time.Time,
	) ([]models.Appointment, error)
}
