package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/AleCarrera11/citasya-fullstack-sub000/internal/domain/scheduling"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/httperr"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *SchedulingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Preload("Specialty").
		First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *SchedulingGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *SchedulingGormRepository) GetClientByDocument(
	ctx context.Context,
	documentID string,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Worker
// --------------------------------------------------

func (r *SchedulingGormRepository) GetWorker(
	ctx context.Context,
	id uint,
) (*models.Worker, error) {

	var worker models.Worker
	if err := r.db.WithContext(ctx).First(&worker, id).Error; err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *SchedulingGormRepository) ListQualifiedWorkers(
	ctx context.Context,
	serviceID uint,
) ([]models.Worker, error) {

	var workers []models.Worker
	if err := r.db.WithContext(ctx).
		Joins("JOIN worker_services ws ON ws.worker_id = workers.id").
		Where("ws.service_id = ? AND workers.active = true", serviceID).
		Order("workers.id ASC").
		Find(&workers).Error; err != nil {
		return nil, err
	}
	return workers, nil
}

func (r *SchedulingGormRepository) IsWorkerQualified(
	ctx context.Context,
	workerID uint,
	serviceID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Table("worker_services").
		Where("worker_id = ? AND service_id = ?", workerID, serviceID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SchedulingGormRepository) GetSchedule(
	ctx context.Context,
	workerID uint,
	weekday int,
) (*models.WorkerSchedule, error) {

	var sched models.WorkerSchedule
	if err := r.db.WithContext(ctx).
		Where("worker_id = ? AND weekday = ?", workerID, weekday).
		First(&sched).Error; err != nil {
		return nil, err
	}
	return &sched, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *SchedulingGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	workerID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "status").
		Where(
			"worker_id = ? AND status <> 'cancelled' AND start_time >= ? AND start_time < ?",
			workerID, start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *SchedulingGormRepository) CreateAppointmentExclusive(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// FOR UPDATE on the worker's overlapping rows serializes concurrent
		// bookings for the same worker while other workers proceed freely.
		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"worker_id = ? AND status <> 'cancelled' AND start_time < ? AND end_time > ?",
				ap.WorkerID, ap.EndTime, ap.StartTime,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ConflictErr("time_conflict")
		}

		return tx.Create(ap).Error
	})

	if err != nil {
		if httperr.IsExclusionConflict(err) || httperr.IsUniqueViolation(err) {
			return httperr.ConflictErr("time_conflict")
		}
		return err
	}

	return nil
}

// --------------------------------------------------
// Lifecycle
// --------------------------------------------------

func (r *SchedulingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Worker").
		First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *SchedulingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(ap).Error
}

func (r *SchedulingGormRepository) SetCalendarEventID(
	ctx context.Context,
	appointmentID uint,
	eventID string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", appointmentID).
		Update("calendar_event_id", eventID).Error
}

func (r *SchedulingGormRepository) ListAppointmentsForClient(
	ctx context.Context,
	clientID uint,
	from time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Worker").
		Where(
			"client_id = ? AND status <> 'cancelled' AND start_time >= ?",
			clientID, from,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*SchedulingGormRepository)(nil)
