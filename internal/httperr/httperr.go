package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func UnprocessableEntity(c *gin.Context, code, message string) {
	Write(c, http.StatusUnprocessableEntity, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func BadGateway(c *gin.Context, code, message string) {
	Write(c, http.StatusBadGateway, code, message)
}

// StatusFor maps an error kind to the HTTP status the admin API answers with.
func StatusFor(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindInvalidTransition:
		return http.StatusUnprocessableEntity
	case KindUpstreamFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes a business error with its mapped status, or a generic 500
// for anything that is not a BusinessError.
func FromError(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	if kind, ok := KindOf(err); ok {
		Write(c, StatusFor(kind), err.Error(), messageFor(err.Error()))
		return
	}
	Internal(c, fallbackCode, fallbackMessage)
}

// messageFor translates error codes into the Spanish messages the dashboard
// shows verbatim.
func messageFor(code string) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return "No se pudo completar la operación."
}

var messages = map[string]string{
	"service_not_found":       "Servicio no encontrado.",
	"service_inactive":        "El servicio no está disponible.",
	"specialty_not_found":     "Especialidad no encontrada.",
	"client_not_found":        "Cliente no encontrado.",
	"worker_not_found":        "Especialista no encontrado.",
	"worker_inactive":         "El especialista no está activo.",
	"worker_not_qualified":    "El especialista no realiza ese servicio.",
	"appointment_not_found":   "Cita no encontrada.",
	"invalid_date_or_time":    "Fecha u hora inválida.",
	"date_in_past":            "La fecha ya pasó.",
	"outside_schedule":        "Fuera del horario de atención.",
	"time_conflict":           "Ese horario ya está reservado.",
	"invalid_status":          "Estado inválido.",
	"invalid_transition":      "La cita no admite ese cambio de estado.",
	"duplicate_document_id":   "Ya existe un cliente con esa cédula.",
	"client_has_appointments": "El cliente tiene citas registradas.",
}
