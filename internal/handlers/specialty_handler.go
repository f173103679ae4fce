package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/httperr"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/httpresp"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/models"
)

type SpecialtyHandler struct {
	db *gorm.DB
}

func NewSpecialtyHandler(db *gorm.DB) *SpecialtyHandler {
	return &SpecialtyHandler{db: db}
}

type SpecialtyRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *SpecialtyHandler) List(c *gin.Context) {
	var specialties []models.Specialty
	if err := h.db.
		Preload("Services").
		Order("id ASC").
		Find(&specialties).Error; err != nil {

		httperr.Internal(c, "failed_to_list_specialties", "Error al listar especialidades.")
		return
	}

	c.JSON(http.StatusOK, specialties)
}

func (h *SpecialtyHandler) Get(c *gin.Context) {
	var specialty models.Specialty
	if err := h.db.
		Preload("Services").
		First(&specialty, c.Param("id")).Error; err != nil {

		httperr.NotFound(c, "specialty_not_found", "Especialidad no encontrada.")
		return
	}
	httpresp.OK(c, specialty)
}

func (h *SpecialtyHandler) Create(c *gin.Context) {
	var req SpecialtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	specialty := models.Specialty{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.db.Create(&specialty).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "duplicate_specialty", "Ya existe esa especialidad.")
			return
		}
		httperr.Internal(c, "failed_to_create_specialty", "Error al crear la especialidad.")
		return
	}

	httpresp.Created(c, specialty)
}

func (h *SpecialtyHandler) Update(c *gin.Context) {
	var specialty models.Specialty
	if err := h.db.First(&specialty, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "specialty_not_found", "Especialidad no encontrada.")
		return
	}

	var req SpecialtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	specialty.Name = req.Name
	specialty.Description = req.Description

	if err := h.db.Save(&specialty).Error; err != nil {
		httperr.Internal(c, "failed_to_update_specialty", "Error al actualizar la especialidad.")
		return
	}

	httpresp.OK(c, specialty)
}

func (h *SpecialtyHandler) Delete(c *gin.Context) {
	var specialty models.Specialty
	if err := h.db.First(&specialty, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "specialty_not_found", "Especialidad no encontrada.")
		return
	}

	var count int64
	h.db.Model(&models.Service{}).
		Where("specialty_id = ?", specialty.ID).
		Count(&count)
	if count > 0 {
		httperr.Conflict(c, "specialty_has_services", "La especialidad tiene servicios asociados.")
		return
	}

	if err := h.db.Delete(&specialty).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_specialty", "Error al eliminar la especialidad.")
		return
	}

	c.Status(http.StatusNoContent)
}
