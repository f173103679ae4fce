package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/httperr"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/httpresp"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,min=5"`
	Price       float64 `json:"price"`
	SpecialtyID uint    `json:"specialty_id" binding:"required"`
	Active      *bool   `json:"active"`
}

func (h *ServiceHandler) List(c *gin.Context) {
	q := h.db.Preload("Specialty")

	if specialtyID := c.Query("specialty_id"); specialtyID != "" {
		q = q.Where("specialty_id = ?", specialtyID)
	}

	if query := strings.TrimSpace(strings.ToLower(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Error al listar servicios.")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	var service models.Service
	if err := h.db.
		Preload("Specialty").
		Preload("Workers").
		First(&service, c.Param("id")).Error; err != nil {

		httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
		return
	}
	httpresp.OK(c, service)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var specialty models.Specialty
	if err := h.db.First(&specialty, req.SpecialtyID).Error; err != nil {
		httperr.BadRequest(c, "specialty_not_found", "Especialidad no encontrada.")
		return
	}

	service := models.Service{
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		SpecialtyID: req.SpecialtyID,
		Active:      true,
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Error al crear el servicio.")
		return
	}

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var service models.Service
	if err := h.db.First(&service, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.SpecialtyID != service.SpecialtyID {
		var specialty models.Specialty
		if err := h.db.First(&specialty, req.SpecialtyID).Error; err != nil {
			httperr.BadRequest(c, "specialty_not_found", "Especialidad no encontrada.")
			return
		}
	}

	service.Name = req.Name
	service.Description = req.Description
	service.DurationMin = req.DurationMin
	service.Price = req.Price
	service.SpecialtyID = req.SpecialtyID
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Error al actualizar el servicio.")
		return
	}

	httpresp.OK(c, service)
}

// Delete removes a service no appointment references; services with history
// should be deactivated instead.
func (h *ServiceHandler) Delete(c *gin.Context) {
	var service models.Service
	if err := h.db.First(&service, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
		return
	}

	var count int64
	h.db.Model(&models.Appointment{}).
		Where("service_id = ?", service.ID).
		Count(&count)
	if count > 0 {
		httperr.Conflict(c, "service_has_appointments", "El servicio tiene citas registradas.")
		return
	}

	if err := h.db.Select("Workers").Delete(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Error al eliminar el servicio.")
		return
	}

	c.Status(http.StatusNoContent)
}
