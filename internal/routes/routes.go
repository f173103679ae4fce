package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/agent"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/audit"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/calendar"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/config"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/handlers"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/idempotency"
	infraRepo "github.com/AleCarrera11/citasya-fullstack-sub000/internal/infra/repository"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/messaging"
	ucScheduling "github.com/AleCarrera11/citasya-fullstack-sub000/internal/usecase/scheduling"
)

// Deps holds the process-wide collaborators main builds once and passes
// down; handlers never construct external clients themselves.
type Deps struct {
	DB        *gorm.DB
	Calendar  calendar.Client
	Messaging messaging.Sender
	Idem      *idempotency.Store
	Logger    *slog.Logger
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, d Deps) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(d.DB)

	auditLogger := audit.New(d.DB)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES (SCHEDULING CORE)
	// ======================================================
	findSlotsUC := ucScheduling.NewFindAvailableSlots(schedulingRepo, cfg)

	bookUC := ucScheduling.NewBookAppointment(
		schedulingRepo,
		d.Calendar,
		d.Messaging,
		auditDispatcher,
		cfg,
		d.Logger,
	)

	statusUC := ucScheduling.NewUpdateStatus(
		schedulingRepo,
		d.Calendar,
		auditDispatcher,
		cfg,
		d.Logger,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		d.DB,
		bookUC,
		statusUC,
		findSlotsUC,
		cfg.Timezone,
	)

	clientHandler := handlers.NewClientHandler(d.DB)
	specialtyHandler := handlers.NewSpecialtyHandler(d.DB)
	serviceHandler := handlers.NewServiceHandler(d.DB)
	workerHandler := handlers.NewWorkerHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	toolRegistry := agent.NewRegistry(agent.BuildTools(agent.Deps{
		DB:        d.DB,
		FindSlots: findSlotsUC,
		Book:      bookUC,
		Status:    statusUC,
		CenterTZ:  cfg.Timezone,
	})...)
	agentHandler := agent.NewHandler(toolRegistry, d.Idem, d.Logger)

	// ======================================================
	// ADMIN API (dashboard)
	// ======================================================
	admin := r.Group("/admin")
	{
		admin.GET("/appointments", appointmentHandler.List)
		admin.POST("/appointments", appointmentHandler.Create)
		admin.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
		admin.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

		admin.GET("/availability", appointmentHandler.Availability)

		admin.GET("/clients", clientHandler.List)
		admin.POST("/clients", clientHandler.Create)
		admin.GET("/clients/:id", clientHandler.Get)
		admin.PUT("/clients/:id", clientHandler.Update)
		admin.DELETE("/clients/:id", clientHandler.Delete)

		admin.GET("/specialties", specialtyHandler.List)
		admin.POST("/specialties", specialtyHandler.Create)
		admin.GET("/specialties/:id", specialtyHandler.Get)
		admin.PUT("/specialties/:id", specialtyHandler.Update)
		admin.DELETE("/specialties/:id", specialtyHandler.Delete)

		admin.GET("/services", serviceHandler.List)
		admin.POST("/services", serviceHandler.Create)
		admin.GET("/services/:id", serviceHandler.Get)
		admin.PUT("/services/:id", serviceHandler.Update)
		admin.DELETE("/services/:id", serviceHandler.Delete)

		admin.GET("/workers", workerHandler.List)
		admin.POST("/workers", workerHandler.Create)
		admin.GET("/workers/:id", workerHandler.Get)
		admin.PUT("/workers/:id", workerHandler.Update)
		admin.DELETE("/workers/:id", workerHandler.Delete)
		admin.GET("/workers/:id/schedule", workerHandler.GetSchedule)
		admin.PUT("/workers/:id/schedule", workerHandler.UpdateSchedule)
		admin.PUT("/workers/:id/services", workerHandler.UpdateServices)

		admin.GET("/audit-logs", auditLogsHandler.List)
	}

	// ======================================================
	// AGENT TOOL API (conversational agent)
	// ======================================================
	agentAPI := r.Group("/agent")
	{
		agentAPI.GET("/tools", agentHandler.ListTools)
		agentAPI.POST("/tools/:name", agentHandler.Execute)
	}
}
