package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/httperr"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/httpresp"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/models"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/validators"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

type ClientRequest struct {
	Name       string `json:"name" binding:"required"`
	DocumentID string `json:"document_id"`
	Phone      string `json:"phone"`
	Notes      string `json:"notes"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Session(&gorm.Session{})

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR document_id LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clients", "Error al listar clientes.")
		return
	}

	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	var client models.Client
	if err := h.db.First(&client, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente no encontrado.")
		return
	}
	httpresp.OK(c, client)
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
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

	if req.DocumentID != "" {
		var count int64
		h.db.Model(&models.Client{}).
			Where("document_id = ?", req.DocumentID).
			Count(&count)
		if count > 0 {
			httperr.Conflict(c, "duplicate_document_id", "Ya existe un cliente con esa cédula.")
			return
		}
	}

	client := models.Client{
		Name:       req.Name,
		DocumentID: req.DocumentID,
		Phone:      req.Phone,
		Notes:      req.Notes,
	}

	if err := h.db.Create(&client).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "duplicate_document_id", "Ya existe un cliente con esa cédula.")
			return
		}
		httperr.Internal(c, "failed_to_create_client", "Error al crear el cliente.")
		return
	}

	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	var client models.Client
	if err := h.db.First(&client, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente no encontrado.")
		return
	}

	var req ClientRequest
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

	if req.DocumentID != "" && req.DocumentID != client.DocumentID {
		var count int64
		h.db.Model(&models.Client{}).
			Where("document_id = ? AND id <> ?", req.DocumentID, client.ID).
			Count(&count)
		if count > 0 {
			httperr.Conflict(c, "duplicate_document_id", "Ya existe un cliente con esa cédula.")
			return
		}
	}

	client.Name = req.Name
	client.DocumentID = req.DocumentID
	client.Phone = req.Phone
	client.Notes = req.Notes

	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Error al actualizar el cliente.")
		return
	}

	httpresp.OK(c, client)
}

// ======================================================
// DELETE
// ======================================================

// Delete refuses to remove a client that appointments still reference.
// Historical bookings keep their client row.
func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var client models.Client
	if err := h.db.First(&client, id).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente no encontrado.")
		return
	}

	var count int64
	h.db.Model(&models.Appointment{}).
		Where("client_id = ?", id).
		Count(&count)
	if count > 0 {
		httperr.Conflict(c, "client_has_appointments", "El cliente tiene citas registradas.")
		return
	}

	if err := h.db.Delete(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_client", "Error al eliminar el cliente.")
		return
	}

	c.Status(http.StatusNoContent)
}
