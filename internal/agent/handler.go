package agent

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/httperr"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/idempotency"
)

type Handler struct {
	registry *Registry
	// idem is nil when redis is not configured; tool calls then run without
	// replay protection.
	idem   *idempotency.Store
	logger *slog.Logger
}

func NewHandler(registry *Registry, idem *idempotency.Store, logger *slog.Logger) *Handler {
	return &Handler{
		registry: registry,
		idem:     idem,
		logger:   logger,
	}
}

// ListTools answers with the function-calling manifest.
func (h *Handler) ListTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": h.registry.Definitions()})
}

// Execute runs one tool call. A repeated X-Idempotency-Key replays the
// recorded response instead of re-running side effects.
func (h *Handler) Execute(c *gin.Context) {
	name := c.Param("name")
	key := c.GetHeader("X-Idempotency-Key")

	if key != "" && h.idem != nil {
		cached, found, err := h.idem.Get(c.Request.Context(), key)
		if err != nil {
			h.logger.Warn("idempotency lookup failed", "key", key, "error", err)
		} else if found {
			c.Data(http.StatusOK, "application/json", cached)
			return
		}
	}

	args, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}
	if len(args) > 0 && !json.Valid(args) {
		httperr.BadRequest(c, "invalid_arguments", "Argumentos inválidos.")
		return
	}

	result, err := h.registry.Execute(c.Request.Context(), name, args)
	if err != nil {
		h.logger.Info("tool call failed", "tool", name, "error", err)
		httperr.FromError(c, err, "tool_failed", "Error al ejecutar la herramienta.")
		return
	}

	body, err := json.Marshal(gin.H{"tool": name, "result": result})
	if err != nil {
		httperr.Internal(c, "tool_failed", "Error al ejecutar la herramienta.")
		return
	}

	// Only successful outcomes are replayable; a failed call may succeed on
	// retry.
	if key != "" && h.idem != nil {
		if err := h.idem.Put(c.Request.Context(), key, body); err != nil {
			h.logger.Warn("idempotency record failed", "key", key, "error", err)
		}
	}

	c.Data(http.StatusOK, "application/json", body)
}
