package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/AleCarrera11/citasya-fullstack-sub000/internal/domain/scheduling"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/dto"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/httperr"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/httpresp"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/models"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/timezone"
	ucScheduling "github.com/AleCarrera11/citasya-fullstack-sub000/internal/usecase/scheduling"
)

const actorAdmin = "admin"

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db          *gorm.DB
	bookUC      *ucScheduling.BookAppointment
	statusUC    *ucScheduling.UpdateStatus
	findSlotsUC *ucScheduling.FindAvailableSlots
	centerTZ    string
}

func NewAppointmentHandler(
	db *gorm.DB,
	bookUC *ucScheduling.BookAppointment,
	statusUC *ucScheduling.UpdateStatus,
	findSlotsUC *ucScheduling.FindAvailableSlots,
	centerTZ string,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:          db,
		bookUC:      bookUC,
		statusUC:    statusUC,
		findSlotsUC: findSlotsUC,
		centerTZ:    centerTZ,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientDocumentID string `json:"client_document_id" binding:"required"`
	ServiceID        uint   `json:"service_id" binding:"required"`
	WorkerID         uint   `json:"worker_id" binding:"required"`
	Date             string `json:"date" binding:"required"` // YYYY-MM-DD
	Hour             string `json:"hour" binding:"required"` // HH:MM
	Notes            string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.bookUC.Execute(c.Request.Context(), ucScheduling.BookAppointmentInput{
		ClientDocumentID: req.ClientDocumentID,
		ServiceID:        req.ServiceID,
		WorkerID:         req.WorkerID,
		Date:             req.Date,
		Time:             req.Hour,
		Notes:            req.Notes,
		Actor:            actorAdmin,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_appointment", "Error al crear la cita.")
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	q := h.db.
		Preload("Client").
		Preload("Service").
		Preload("Worker")

	if workerIDStr := c.Query("worker_id"); workerIDStr != "" {
		workerID, err := strconv.ParseUint(workerIDStr, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_worker_id", "Especialista inválido.")
			return
		}
		q = q.Where("worker_id = ?", workerID)
	}

	if dateStr := c.Query("date"); dateStr != "" {
		loc := timezone.Location(h.centerTZ)
		date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
			return
		}
		start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
		q = q.Where("start_time >= ? AND start_time < ?", start, start.Add(24*time.Hour)).
			Order("start_time ASC")
	} else {
		q = q.Order("start_time DESC").Limit(50)
	}

	var appointments []models.Appointment
	if err := q.Find(&appointments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error al listar citas.")
		return
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			ClientName:  ap.Client.Name,
			ServiceName: ap.Service.Name,
			WorkerName:  ap.Worker.Name,
			Notes:       ap.Notes,
		})
	}

	httpresp.List(c, out)
}

// ======================================================
// STATUS / CANCEL
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.statusUC.Execute(c.Request.Context(), uint(id), req.Status, actorAdmin)
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_status", "Error al actualizar la cita.")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.statusUC.Cancel(c.Request.Context(), uint(id), actorAdmin)
	if err != nil {
		httperr.FromError(c, err, "failed_to_cancel_appointment", "Error al cancelar la cita.")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	serviceIDStr := c.Query("service_id")
	dateStr := c.Query("date")

	if serviceIDStr == "" || dateStr == "" {
		httperr.BadRequest(c, "missing_params", "Servicio y fecha son obligatorios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Servicio inválido.")
		return
	}

	var workerID uint64
	if workerIDStr := c.Query("worker_id"); workerIDStr != "" {
		workerID, err = strconv.ParseUint(workerIDStr, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_worker_id", "Especialista inválido.")
			return
		}
	}

	loc := timezone.Location(h.centerTZ)
	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	slots, err := h.findSlotsUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		ServiceID: uint(serviceID),
		WorkerID:  uint(workerID),
		Date:      date,
	})
	if err != nil {
		httperr.FromError(c, err, "availability_failed", "Error al calcular horarios.")
		return
	}

	c.JSON(200, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}
