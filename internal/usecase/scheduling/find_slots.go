package scheduling

import (
	"context"
	"sort"
	"time"

	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/config"
	domain "github.com/AleCarrera11/citasya-fullstack-sub000/internal/domain/scheduling"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/httperr"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/models"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/timezone"
)

type FindAvailableSlots struct {
	repo domain.Repository
	cfg  *config.Config
}

func NewFindAvailableSlots(repo domain.Repository, cfg *config.Config) *FindAvailableSlots {
	return &FindAvailableSlots{repo: repo, cfg: cfg}
}

// Execute computes every free slot of the service's duration for the given
// date, across all qualified active workers or the one requested. An empty
// result is not an error; capping is the caller's concern.
func (uc *FindAvailableSlots) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.Slot, error) {

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.NotFoundErr("service_not_found")
	}
	if !service.Active {
		return nil, httperr.InvalidInputErr("service_inactive")
	}

	loc := timezone.Location(uc.cfg.Timezone)
	now := time.Now().In(loc)
	day := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if day.Before(today) {
		return nil, httperr.InvalidInputErr("date_in_past")
	}

	workers, err := uc.repo.ListQualifiedWorkers(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if in.WorkerID != 0 {
		filtered := workers[:0]
		for _, w := range workers {
			if w.ID == in.WorkerID {
				filtered = append(filtered, w)
			}
		}
		workers = filtered
	}

	hours := uc.cfg.BusinessHours(day.Weekday())
	slotDuration := time.Duration(service.DurationMin) * time.Minute

	slots := []domain.Slot{}
	for _, w := range workers {
		workerSlots, err := uc.slotsForWorker(ctx, w, day, hours, slotDuration, now)
		if err != nil {
			return nil, err
		}
		slots = append(slots, workerSlots...)
	}

	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Start.Equal(slots[j].Start) {
			return slots[i].WorkerID < slots[j].WorkerID
		}
		return slots[i].Start.Before(slots[j].Start)
	})

	return slots, nil
}

func (uc *FindAvailableSlots) slotsForWorker(
	ctx context.Context,
	worker models.Worker,
	day time.Time,
	hours config.HoursRange,
	slotDuration time.Duration,
	now time.Time,
) ([]domain.Slot, error) {

	sched, err := uc.repo.GetSchedule(ctx, worker.ID, int(day.Weekday()))
	if err != nil {
		// No schedule row means the worker does not attend that weekday.
		return nil, nil
	}

	work, brk, ok := domain.DayWindow(sched, hours, day)
	if !ok {
		return nil, nil
	}

	appointments, err := uc.repo.ListAppointmentsForDay(
		ctx,
		worker.ID,
		day,
		day.Add(24*time.Hour),
	)
	if err != nil {
		return nil, err
	}

	var slots []domain.Slot
	apIdx := 0

	for cur := work.Start; !cur.Add(slotDuration).After(work.End); cur = cur.Add(slotDuration) {

		slotStart := cur
		slotEnd := cur.Add(slotDuration)

		if slotStart.Before(now) {
			continue
		}

		if brk.Valid() && domain.Overlaps(slotStart, slotEnd, brk.Start, brk.End) {
			continue
		}

		// skip appointments that already ended
		for apIdx < len(appointments) && !appointments[apIdx].EndTime.After(slotStart) {
			apIdx++
		}

		conflict := false
		for i := apIdx; i < len(appointments); i++ {
			ap := appointments[i]
			if !ap.StartTime.Before(slotEnd) {
				break
			}
			if domain.Overlaps(slotStart, slotEnd, ap.StartTime, ap.EndTime) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, domain.Slot{
				WorkerID:   worker.ID,
				WorkerName: worker.Name,
				Start:      slotStart,
				End:        slotEnd,
			})
		}
	}

	return slots, nil
}
