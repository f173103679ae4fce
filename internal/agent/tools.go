package agent

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	domain "github.com/AleCarrera11/citasya-fullstack-sub000/internal/domain/scheduling"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/httperr"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/models"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/timezone"
	ucScheduling "github.com/AleCarrera11/citasya-fullstack-sub000/internal/usecase/scheduling"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/validators"
)

const actorAgent = "agent"

// slotCap keeps interactive availability answers short; the REST surface
// returns the full sequence.
const slotCap = 5

type Deps struct {
	DB        *gorm.DB
	FindSlots *ucScheduling.FindAvailableSlots
	Book      *ucScheduling.BookAppointment
	Status    *ucScheduling.UpdateStatus
	CenterTZ  string
}

func schema(s string) json.RawMessage { return json.RawMessage(s) }

// BuildTools wires the chat-agent tool set over the same use cases the
// admin API uses.
func BuildTools(d Deps) []Tool {
	return []Tool{
		{
			Name:        "list_specialties",
			Description: "Lista las especialidades del spa.",
			Parameters:  schema(`{"type":"object","properties":{}}`),
			Handler:     d.listSpecialties,
		},
		{
			Name:        "list_services",
			Description: "Lista todos los servicios activos con duración y precio.",
			Parameters:  schema(`{"type":"object","properties":{}}`),
			Handler:     d.listServices,
		},
		{
			Name:        "list_services_by_specialty",
			Description: "Lista los servicios activos de una especialidad.",
			Parameters: schema(`{"type":"object","properties":{
				"specialty_id":{"type":"integer"}},"required":["specialty_id"]}`),
			Handler: d.listServicesBySpecialty,
		},
		{
			Name:        "get_service_details",
			Description: "Detalle de un servicio: descripción, duración, precio y especialistas.",
			Parameters: schema(`{"type":"object","properties":{
				"service_id":{"type":"integer"}},"required":["service_id"]}`),
			Handler: d.getServiceDetails,
		},
		{
			Name:        "get_available_slots",
			Description: "Horarios disponibles para un servicio en una fecha (máximo 5 opciones).",
			Parameters: schema(`{"type":"object","properties":{
				"service_id":{"type":"integer"},
				"date":{"type":"string","description":"YYYY-MM-DD"},
				"worker_id":{"type":"integer"}},"required":["service_id","date"]}`),
			Handler: d.getAvailableSlots,
		},
		{
			Name:        "book_appointment",
			Description: "Reserva una cita para un cliente existente.",
			Parameters: schema(`{"type":"object","properties":{
				"client_id":{"type":"integer"},
				"service_id":{"type":"integer"},
				"worker_id":{"type":"integer"},
				"date":{"type":"string","description":"YYYY-MM-DD"},
				"hour":{"type":"string","description":"HH:MM"},
				"notes":{"type":"string"}},
				"required":["client_id","service_id","worker_id","date","hour"]}`),
			Handler: d.bookAppointment,
		},
		{
			Name:        "list_user_appointments",
			Description: "Citas próximas del cliente identificado por su teléfono.",
			Parameters: schema(`{"type":"object","properties":{
				"phone":{"type":"string"}},"required":["phone"]}`),
			Handler: d.listUserAppointments,
		},
		{
			Name:        "cancel_appointment",
			Description: "Cancela una cita del cliente.",
			Parameters: schema(`{"type":"object","properties":{
				"appointment_id":{"type":"integer"},
				"phone":{"type":"string","description":"teléfono del cliente, para verificar"}},
				"required":["appointment_id"]}`),
			Handler: d.cancelAppointment,
		},
		{
			Name:        "find_client_by_phone",
			Description: "Busca un cliente por número de teléfono.",
			Parameters: schema(`{"type":"object","properties":{
				"phone":{"type":"string"}},"required":["phone"]}`),
			Handler: d.findClientByPhone,
		},
		{
			Name:        "create_client",
			Description: "Registra un cliente nuevo.",
			Parameters: schema(`{"type":"object","properties":{
				"name":{"type":"string"},
				"phone":{"type":"string"},
				"document_id":{"type":"string"},
				"notes":{"type":"string"}},"required":["name","phone"]}`),
			Handler: d.createClient,
		},
	}
}

// ======================================================
// CATALOG
// ======================================================

func (d Deps) listSpecialties(ctx context.Context, _ json.RawMessage) (any, error) {
	var specialties []models.Specialty
	if err := d.DB.WithContext(ctx).Order("id ASC").Find(&specialties).Error; err != nil {
		return nil, err
	}
	return specialties, nil
}

func (d Deps) listServices(ctx context.Context, _ json.RawMessage) (any, error) {
	var services []models.Service
	if err := d.DB.WithContext(ctx).
		Where("active = true").
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (d Deps) listServicesBySpecialty(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		SpecialtyID uint `json:"specialty_id"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return nil, httperr.InvalidInputErr("invalid_arguments")
	}

	var specialty models.Specialty
	if err := d.DB.WithContext(ctx).First(&specialty, in.SpecialtyID).Error; err != nil {
		return nil, httperr.NotFoundErr("specialty_not_found")
	}

	var services []models.Service
	if err := d.DB.WithContext(ctx).
		Where("specialty_id = ? AND active = true", in.SpecialtyID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (d Deps) getServiceDetails(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		ServiceID uint `json:"service_id"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return nil, httperr.InvalidInputErr("invalid_arguments")
	}

	var service models.Service
	if err := d.DB.WithContext(ctx).
		Preload("Specialty").
		Preload("Workers", "active = true").
		First(&service, in.ServiceID).Error; err != nil {
		return nil, httperr.NotFoundErr("service_not_found")
	}
	return service, nil
}

// ======================================================
// SCHEDULING
// ======================================================

func (d Deps) getAvailableSlots(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		ServiceID uint   `json:"service_id"`
		Date      string `json:"date"`
		WorkerID  uint   `json:"worker_id"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return nil, httperr.InvalidInputErr("invalid_arguments")
	}

	date, err := time.ParseInLocation("2006-01-02", in.Date, timezone.Location(d.CenterTZ))
	if err != nil {
		return nil, httperr.InvalidInputErr("invalid_date_or_time")
	}

	slots, err := d.FindSlots.Execute(ctx, domain.AvailabilityInput{
		ServiceID: in.ServiceID,
		WorkerID:  in.WorkerID,
		Date:      date,
	})
	if err != nil {
		return nil, err
	}

	if len(slots) > slotCap {
		slots = slots[:slotCap]
	}

	type slotView struct {
		WorkerID   uint   `json:"worker_id"`
		WorkerName string `json:"worker_name"`
		Date       string `json:"date"`
		Start      string `json:"start"`
		End        string `json:"end"`
	}
	out := make([]slotView, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotView{
			WorkerID:   s.WorkerID,
			WorkerName: s.WorkerName,
			Date:       s.Start.Format("2006-01-02"),
			Start:      s.Start.Format("15:04"),
			End:        s.End.Format("15:04"),
		})
	}
	return out, nil
}

func (d Deps) bookAppointment(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		ClientID  uint   `json:"client_id"`
		ServiceID uint   `json:"service_id"`
		WorkerID  uint   `json:"worker_id"`
		Date      string `json:"date"`
		Hour      string `json:"hour"`
		Notes     string `json:"notes"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return nil, httperr.InvalidInputErr("invalid_arguments")
	}

	return d.Book.Execute(ctx, ucScheduling.BookAppointmentInput{
		ClientID:  in.ClientID,
		ServiceID: in.ServiceID,
		WorkerID:  in.WorkerID,
		Date:      in.Date,
		Time:      in.Hour,
		Notes:     in.Notes,
		Actor:     actorAgent,
	})
}

func (d Deps) listUserAppointments(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		Phone string `json:"phone"`
	}
	if err := json.Unmarshal(args, &in); err != nil || in.Phone == "" {
		return nil, httperr.InvalidInputErr("invalid_arguments")
	}
	phone, ok := validators.NormalizePhone(in.Phone)
	if !ok {
		return nil, httperr.InvalidInputErr("invalid_phone")
	}

	var client models.Client
	if err := d.DB.WithContext(ctx).
		Where("phone = ?", phone).
		First(&client).Error; err != nil {
		return nil, httperr.NotFoundErr("client_not_found")
	}

	now := timezone.NowIn(d.CenterTZ)

	var appointments []models.Appointment
	if err := d.DB.WithContext(ctx).
		Preload("Service").
		Preload("Worker").
		Where(
			"client_id = ? AND status <> 'cancelled' AND start_time >= ?",
			client.ID, now,
		).
		Order("start_time ASC").
		Find(&appointments).Error; err != nil {
		return nil, err
	}

	return appointments, nil
}

func (d Deps) cancelAppointment(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		AppointmentID uint   `json:"appointment_id"`
		Phone         string `json:"phone"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return nil, httperr.InvalidInputErr("invalid_arguments")
	}

	// When a phone comes along, the appointment must belong to that client;
	// the agent cannot cancel someone else's booking by id alone.
	if in.Phone != "" {
		phone, ok := validators.NormalizePhone(in.Phone)
		if !ok {
			return nil, httperr.InvalidInputErr("invalid_phone")
		}
		var ap models.Appointment
		if err := d.DB.WithContext(ctx).
			Preload("Client").
			First(&ap, in.AppointmentID).Error; err != nil {
			return nil, httperr.NotFoundErr("appointment_not_found")
		}
		if ap.Client.Phone != phone {
			return nil, httperr.NotFoundErr("appointment_not_found")
		}
	}

	return d.Status.Cancel(ctx, in.AppointmentID, actorAgent)
}

// ======================================================
// CLIENTS
// ======================================================

func (d Deps) findClientByPhone(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		Phone string `json:"phone"`
	}
	if err := json.Unmarshal(args, &in); err != nil || in.Phone == "" {
		return nil, httperr.InvalidInputErr("invalid_arguments")
	}
	phone, ok := validators.NormalizePhone(in.Phone)
	if !ok {
		return nil, httperr.InvalidInputErr("invalid_phone")
	}

	var client models.Client
	if err := d.DB.WithContext(ctx).
		Where("phone = ?", phone).
		First(&client).Error; err != nil {
		return nil, httperr.NotFoundErr("client_not_found")
	}
	return client, nil
}

func (d Deps) createClient(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		Name       string `json:"name"`
		Phone      string `json:"phone"`
		DocumentID string `json:"document_id"`
		Notes      string `json:"notes"`
	}
	if err := json.Unmarshal(args, &in); err != nil || in.Name == "" || in.Phone == "" {
		return nil, httperr.InvalidInputErr("invalid_arguments")
	}
	phone, ok := validators.NormalizePhone(in.Phone)
	if !ok {
		return nil, httperr.InvalidInputErr("invalid_phone")
	}
	in.Phone = phone

	if in.DocumentID != "" {
		var count int64
		d.DB.WithContext(ctx).Model(&models.Client{}).
			Where("document_id = ?", in.DocumentID).
			Count(&count)
		if count > 0 {
			return nil, httperr.ConflictErr("duplicate_document_id")
		}
	}

	client := models.Client{
		Name:       in.Name,
		Phone:      in.Phone,
		DocumentID: in.DocumentID,
		Notes:      in.Notes,
	}
	if err := d.DB.WithContext(ctx).Create(&client).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ConflictErr("duplicate_document_id")
		}
		return nil, err
	}

	return client, nil
}
