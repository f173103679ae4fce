package scheduling

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/calendar"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/config"
	domain "github.com/AleCarrera11/citasya-fullstack-sub000/internal/domain/scheduling"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/httperr"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/models"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/timezone"
)

var errNotFound = errors.New("record not found")

func kindOf(t *testing.T, err error) httperr.Kind {
	t.Helper()
	k, ok := httperr.KindOf(err)
	require.True(t, ok, "expected a business error, got %v", err)
	return k
}

// ======================================================
// FAKE REPOSITORY
// ======================================================

type qualKey struct {
	workerID  uint
	serviceID uint
}

type fakeRepo struct {
	mu sync.Mutex

	services  map[uint]models.Service
	clients   map[uint]models.Client
	workers   map[uint]models.Worker
	schedules map[uint]map[int]models.WorkerSchedule
	quals     map[qualKey]bool

	appointments map[uint]models.Appointment
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:     map[uint]models.Service{},
		clients:      map[uint]models.Client{},
		workers:      map[uint]models.Worker{},
		schedules:    map[uint]map[int]models.WorkerSchedule{},
		quals:        map[qualKey]bool{},
		appointments: map[uint]models.Appointment{},
		nextID:       1,
	}
}

func (r *fakeRepo) addSchedule(workerID uint, weekday int, sched models.WorkerSchedule) {
	if r.schedules[workerID] == nil {
		r.schedules[workerID] = map[int]models.WorkerSchedule{}
	}
	sched.WorkerID = workerID
	sched.Weekday = weekday
	r.schedules[workerID][weekday] = sched
}

func (r *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	if s, ok := r.services[id]; ok {
		return &s, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) GetClient(_ context.Context, id uint) (*models.Client, error) {
	if c, ok := r.clients[id]; ok {
		return &c, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) GetClientByDocument(_ context.Context, documentID string) (*models.Client, error) {
	for _, c := range r.clients {
		if c.DocumentID == documentID {
			return &c, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeRepo) GetWorker(_ context.Context, id uint) (*models.Worker, error) {
	if w, ok := r.workers[id]; ok {
		return &w, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) ListQualifiedWorkers(_ context.Context, serviceID uint) ([]models.Worker, error) {
	ids := make([]uint, 0, len(r.workers))
	for id := range r.workers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []models.Worker
	for _, id := range ids {
		w := r.workers[id]
		if w.Active && r.quals[qualKey{workerID: id, serviceID: serviceID}] {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeRepo) IsWorkerQualified(_ context.Context, workerID, serviceID uint) (bool, error) {
	return r.quals[qualKey{workerID: workerID, serviceID: serviceID}], nil
}

func (r *fakeRepo) GetSchedule(_ context.Context, workerID uint, weekday int) (*models.WorkerSchedule, error) {
	if days, ok := r.schedules[workerID]; ok {
		if s, ok := days[weekday]; ok {
			return &s, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeRepo) ListAppointmentsForDay(
	_ context.Context,
	workerID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.WorkerID != workerID || ap.Status == "cancelled" {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		out = append(out, ap)
	}

	// ascending the way the SQL query orders
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].StartTime.Before(out[j-1].StartTime); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateAppointmentExclusive(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.appointments {
		if existing.WorkerID != ap.WorkerID || existing.Status == "cancelled" {
			continue
		}
		if ap.StartTime.Before(existing.EndTime) && ap.EndTime.After(existing.StartTime) {
			return httperr.ConflictErr("time_conflict")
		}
	}

	ap.ID = r.nextID
	r.nextID++
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ap, ok := r.appointments[id]; ok {
		return &ap, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[ap.ID]; !ok {
		return errNotFound
	}
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *fakeRepo) SetCalendarEventID(_ context.Context, appointmentID uint, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.appointments[appointmentID]
	if !ok {
		return errNotFound
	}
	ap.CalendarEventID = eventID
	r.appointments[appointmentID] = ap
	return nil
}

func (r *fakeRepo) ListAppointmentsForClient(
	_ context.Context,
	clientID uint,
	from time.Time,
) ([]models.Appointment, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ClientID == clientID && ap.Status != "cancelled" && !ap.StartTime.Before(from) {
			out = append(out, ap)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// FAKE EXTERNAL CLIENTS
// ======================================================

type fakeCalendar struct {
	mu      sync.Mutex
	created []calendar.Event
	deleted []string
	failing bool
}

func (f *fakeCalendar) CreateEvent(_ context.Context, ev calendar.Event) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return "", errors.New("calendar down")
	}
	f.created = append(f.created, ev)
	return "evt-123", nil
}

func (f *fakeCalendar) DeleteEvent(_ context.Context, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("calendar down")
	}
	f.deleted = append(f.deleted, eventID)
	return nil
}

type fakeSender struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (f *fakeSender) SendWhatsApp(_ context.Context, to string, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("twilio down")
	}
	f.sent = append(f.sent, to+": "+body)
	return nil
}

// ======================================================
// FIXTURE
// ======================================================

func testConfig() *config.Config {
	return &config.Config{
		Timezone:             "America/Caracas",
		BusinessHoursWeekday: config.HoursRange{Open: "08:00", Close: "20:00"},
		BusinessHoursWeekend: config.HoursRange{Open: "09:00", Close: "14:00"},
		ExternalCallTimeout:  time.Second,
	}
}

// nextWeekday returns the next future calendar day falling on wd, at
// midnight in the center's timezone.
func nextWeekday(cfg *config.Config, wd time.Weekday) time.Time {
	loc := timezone.Location(cfg.Timezone)
	t := time.Now().In(loc).AddDate(0, 0, 1)
	for t.Weekday() != wd {
		t = t.AddDate(0, 0, 1)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// seedSpa sets up the recurring fixture: Ana works Mondays 08:00-18:00 with
// a 12:00-13:00 break and performs the 30-minute Manicure service. María is
// the registered client.
func seedSpa(repo *fakeRepo) {
	repo.services[1] = models.Service{
		ID: 1, Name: "Manicure", DurationMin: 30, Price: 15, Active: true, SpecialtyID: 1,
	}
	repo.workers[1] = models.Worker{ID: 1, Name: "Ana", Active: true}
	repo.clients[1] = models.Client{
		ID: 1, Name: "María Pérez", DocumentID: "V-12345678", Phone: "+584121234567",
	}
	repo.quals[qualKey{workerID: 1, serviceID: 1}] = true
	repo.addSchedule(1, int(time.Monday), models.WorkerSchedule{
		Active:     true,
		StartTime:  "08:00",
		EndTime:    "18:00",
		BreakStart: "12:00",
		BreakEnd:   "13:00",
	})
}
