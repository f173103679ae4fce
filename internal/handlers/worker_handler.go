package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/httperr"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/httpresp"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/models"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/validators"
)

type WorkerHandler struct {
	db *gorm.DB
}

func NewWorkerHandler(db *gorm.DB) *WorkerHandler {
	return &WorkerHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type WorkerRequest struct {
	Name       string `json:"name" binding:"required"`
	DocumentID string `json:"document_id" binding:"required"`
	Phone      string `json:"phone"`
	Email      string `json:"email" binding:"required,email"`
	Active     *bool  `json:"active"`
}

type ScheduleDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

type ScheduleUpdateRequest struct {
	Days []ScheduleDayConfig `json:"days" binding:"required"`
}

type WorkerServicesRequest struct {
	ServiceIDs []uint `json:"service_ids" binding:"required"`
}

// ======================================================
// CRUD
// ======================================================

func (h *WorkerHandler) List(c *gin.Context) {
	var workers []models.Worker
	if err := h.db.
		Preload("Services").
		Preload("Schedules").
		Order("id ASC").
		Find(&workers).Error; err != nil {

		httperr.Internal(c, "failed_to_list_workers", "Error al listar especialistas.")
		return
	}

	c.JSON(http.StatusOK, workers)
}

func (h *WorkerHandler) Get(c *gin.Context) {
	var worker models.Worker
	if err := h.db.
		Preload("Services").
		Preload("Schedules").
		First(&worker, c.Param("id")).Error; err != nil {

		httperr.NotFound(c, "worker_not_found", "Especialista no encontrado.")
		return
	}
	httpresp.OK(c, worker)
}

func (h *WorkerHandler) Create(c *gin.Context) {
	var req WorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Phone != "" {
		normalized, ok := validators.NormalizePhone(req.Phone)
		if !ok {
			httperr.BadRequest(c, "invalid_phone", "Número de teléfono inválido.")
			return
		}
		req.Phone = normalized
	}

	worker := models.Worker{
		Name:       req.Name,
		DocumentID: req.DocumentID,
		Phone:      req.Phone,
		Email:      req.Email,
		Active:     true,
	}
	if req.Active != nil {
		worker.Active = *req.Active
	}

	if err := h.db.Create(&worker).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "duplicate_worker", "Ya existe una especialista con esa cédula o correo.")
			return
		}
		httperr.Internal(c, "failed_to_create_worker", "Error al crear la especialista.")
		return
	}

	httpresp.Created(c, worker)
}

func (h *WorkerHandler) Update(c *gin.Context) {
	var worker models.Worker
	if err := h.db.First(&worker, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "worker_not_found", "Especialista no encontrado.")
		return
	}

	var req WorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Phone != "" {
		normalized, ok := validators.NormalizePhone(req.Phone)
		if !ok {
			httperr.BadRequest(c, "invalid_phone", "Número de teléfono inválido.")
			return
		}
		req.Phone = normalized
	}

	worker.Name = req.Name
	worker.DocumentID = req.DocumentID
	worker.Phone = req.Phone
	worker.Email = req.Email
	if req.Active != nil {
		worker.Active = *req.Active
	}

	if err := h.db.Save(&worker).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "duplicate_worker", "Ya existe una especialista con esa cédula o correo.")
			return
		}
		httperr.Internal(c, "failed_to_update_worker", "Error al actualizar la especialista.")
		return
	}

	httpresp.OK(c, worker)
}

func (h *WorkerHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var worker models.Worker
	if err := h.db.First(&worker, id).Error; err != nil {
		httperr.NotFound(c, "worker_not_found", "Especialista no encontrado.")
		return
	}

	var count int64
	h.db.Model(&models.Appointment{}).
		Where("worker_id = ?", id).
		Count(&count)
	if count > 0 {
		httperr.Conflict(c, "worker_has_appointments", "La especialista tiene citas registradas.")
		return
	}

	if err := h.db.Select("Schedules", "Services").Delete(&worker).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_worker", "Error al eliminar la especialista.")
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// SCHEDULE
// ======================================================

func (h *WorkerHandler) GetSchedule(c *gin.Context) {
	workerID := c.Param("id")

	var schedules []models.WorkerSchedule
	if err := h.db.
		Where("worker_id = ?", workerID).
		Order("weekday ASC").
		Find(&schedules).Error; err != nil {

		httperr.Internal(c, "failed_to_get_schedule", "Error al consultar el horario.")
		return
	}

	c.JSON(http.StatusOK, schedules)
}

func (h *WorkerHandler) UpdateSchedule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var worker models.Worker
	if err := h.db.First(&worker, id).Error; err != nil {
		httperr.NotFound(c, "worker_not_found", "Especialista no encontrado.")
		return
	}

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	for _, day := range req.Days {
		if !day.Active {
			continue
		}
		if !validators.IsClockRange(day.StartTime, day.EndTime) {
			httperr.BadRequest(c, "invalid_schedule", "Horario inválido.")
			return
		}
		if (day.BreakStart != "" || day.BreakEnd != "") &&
			!validators.IsClockRange(day.BreakStart, day.BreakEnd) {
			httperr.BadRequest(c, "invalid_schedule", "Horario inválido.")
			return
		}
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		for _, day := range req.Days {
			sched := models.WorkerSchedule{
				WorkerID:   worker.ID,
				Weekday:    day.Weekday,
				Active:     day.Active,
				StartTime:  day.StartTime,
				EndTime:    day.EndTime,
				BreakStart: day.BreakStart,
				BreakEnd:   day.BreakEnd,
			}

			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "worker_id"}, {Name: "weekday"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"active", "start_time", "end_time", "break_start", "break_end",
				}),
			}).Create(&sched).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_schedule", "Error al actualizar el horario.")
		return
	}

	h.GetSchedule(c)
}

// ======================================================
// SERVICES (qualification m2m)
// ======================================================

func (h *WorkerHandler) UpdateServices(c *gin.Context) {
	var worker models.Worker
	if err := h.db.First(&worker, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "worker_not_found", "Especialista no encontrado.")
		return
	}

	var req WorkerServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var services []models.Service
	if len(req.ServiceIDs) > 0 {
		if err := h.db.Find(&services, req.ServiceIDs).Error; err != nil {
			httperr.Internal(c, "failed_to_load_services", "Error al cargar servicios.")
			return
		}
		if len(services) != len(req.ServiceIDs) {
			httperr.BadRequest(c, "service_not_found", "Algún servicio no existe.")
			return
		}
	}

	if err := h.db.Model(&worker).Association("Services").Replace(services); err != nil {
		httperr.Internal(c, "failed_to_update_services", "Error al actualizar los servicios.")
		return
	}

	httpresp.OK(c, gin.H{"worker_id": worker.ID, "service_ids": req.ServiceIDs})
}
