package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/httperr"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/models"
)

func seedAppointment(repo *fakeRepo, status, eventID string) uint {
	monday := nextWeekday(testConfig(), time.Monday)
	id := repo.nextID
	repo.nextID++
	repo.appointments[id] = models.Appointment{
		ID: id, ClientID: 1, ServiceID: 1, WorkerID: 1,
		StartTime:       hm(monday, "10:00"),
		EndTime:         hm(monday, "10:30"),
		Status:          status,
		CalendarEventID: eventID,
	}
	return id
}

func newStatusUC(repo *fakeRepo, cal *fakeCalendar) *UpdateStatus {
	return NewUpdateStatus(repo, cal, nil, testConfig(), testLogger())
}

func TestUpdateStatus_Confirm(t *testing.T) {
	repo := newFakeRepo()
	seedSpa(repo)
	id := seedAppointment(repo, "pending", "")
	uc := newStatusUC(repo, &fakeCalendar{})

	ap, err := uc.Execute(context.Background(), id, "confirmed", "admin")

	require.NoError(t, err)
	assert.Equal(t, "confirmed", ap.Status)
	require.NotNil(t, ap.ConfirmedAt)

	stored, _ := repo.GetAppointment(context.Background(), id)
	assert.Equal(t, "confirmed", stored.Status)
}

func TestUpdateStatus_SpanishAlias(t *testing.T) {
	repo := newFakeRepo()
	seedSpa(repo)
	id := seedAppointment(repo, "pending", "")
	uc := newStatusUC(repo, &fakeCalendar{})

	ap, err := uc.Execute(context.Background(), id, "Confirmado", "agent")

	require.NoError(t, err)
	assert.Equal(t, "confirmed", ap.Status)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	repo := newFakeRepo()
	seedSpa(repo)
	id := seedAppointment(repo, "pending", "")
	uc := newStatusUC(repo, &fakeCalendar{})

	_, err := uc.Execute(context.Background(), id, "archived", "admin")

	require.Error(t, err)
	assert.Equal(t, httperr.KindInvalidInput, kindOf(t, err))
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo := newFakeRepo()
	uc := newStatusUC(repo, &fakeCalendar{})

	_, err := uc.Execute(context.Background(), 42, "confirmed", "admin")

	require.Error(t, err)
	assert.Equal(t, httperr.KindNotFound, kindOf(t, err))
}

func TestUpdateStatus_NoBackwardTransition(t *testing.T) {
	repo := newFakeRepo()
	seedSpa(repo)
	id := seedAppointment(repo, "confirmed", "")
	uc := newStatusUC(repo, &fakeCalendar{})

	_, err := uc.Execute(context.Background(), id, "pending", "admin")

	require.Error(t, err)
	assert.Equal(t, httperr.KindInvalidTransition, kindOf(t, err))

	stored, _ := repo.GetAppointment(context.Background(), id)
	assert.Equal(t, "confirmed", stored.Status)
}

func TestUpdateStatus_TerminalIsFinal(t *testing.T) {
	repo := newFakeRepo()
	seedSpa(repo)
	uc := newStatusUC(repo, &fakeCalendar{})

	for _, terminal := range []string{"cancelled", "completed"} {
		for _, next := range []string{"pending", "confirmed", "cancelled", "completed"} {
			if next == terminal {
				continue
			}
			id := seedAppointment(repo, terminal, "")
			_, err := uc.Execute(context.Background(), id, next, "admin")
			require.Error(t, err, "%s -> %s must be rejected", terminal, next)
			assert.Equal(t, httperr.KindInvalidTransition, kindOf(t, err))
		}
	}
}

func TestUpdateStatus_SameStatusIsNoOp(t *testing.T) {
	repo := newFakeRepo()
	seedSpa(repo)
	id := seedAppointment(repo, "confirmed", "")
	uc := newStatusUC(repo, &fakeCalendar{})

	ap, err := uc.Execute(context.Background(), id, "confirmed", "admin")

	require.NoError(t, err)
	assert.Equal(t, "confirmed", ap.Status)
	assert.Nil(t, ap.ConfirmedAt, "a no-op must not restamp timestamps")
}

func TestUpdateStatus_CancelDropsCalendarEvent(t *testing.T) {
	repo := newFakeRepo()
	seedSpa(repo)
	id := seedAppointment(repo, "confirmed", "evt-123")
	cal := &fakeCalendar{}
	uc := newStatusUC(repo, cal)

	ap, err := uc.Cancel(context.Background(), id, "admin")

	require.NoError(t, err)
	assert.Equal(t, "cancelled", ap.Status)
	require.NotNil(t, ap.CancelledAt)
	assert.Empty(t, ap.CalendarEventID)
	assert.Equal(t, []string{"evt-123"}, cal.deleted)

	stored, _ := repo.GetAppointment(context.Background(), id)
	assert.Empty(t, stored.CalendarEventID)
}

func TestUpdateStatus_CancelSurvivesCalendarFailure(t *testing.T) {
	repo := newFakeRepo()
	seedSpa(repo)
	id := seedAppointment(repo, "confirmed", "evt-123")
	cal := &fakeCalendar{failing: true}
	uc := newStatusUC(repo, cal)

	ap, err := uc.Cancel(context.Background(), id, "admin")

	require.NoError(t, err)
	assert.Equal(t, "cancelled", ap.Status)
	// the event id stays so a later cleanup can retry
	stored, _ := repo.GetAppointment(context.Background(), id)
	assert.Equal(t, "evt-123", stored.CalendarEventID)
}

func TestUpdateStatus_Complete(t *testing.T) {
	repo := newFakeRepo()
	seedSpa(repo)
	id := seedAppointment(repo, "confirmed", "evt-123")
	cal := &fakeCalendar{}
	uc := newStatusUC(repo, cal)

	ap, err := uc.Execute(context.Background(), id, "completed", "admin")

	require.NoError(t, err)
	assert.Equal(t, "completed", ap.Status)
	require.NotNil(t, ap.CompletedAt)
	// completion keeps the calendar event
	assert.Empty(t, cal.deleted)
	assert.Equal(t, "evt-123", ap.CalendarEventID)
}
