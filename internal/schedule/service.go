package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/dmssspace/na-predele--crm-sub000/internal/availability"
	"github.com/dmssspace/na-predele--crm-sub000/internal/logger"
	"github.com/dmssspace/na-predele--crm-sub000/internal/metrics"
)

var (
	ErrBadTime      = errors.New("invalid time format")
	ErrOutsideHours = errors.New("time is outside club hours")
	ErrTrainerBusy  = errors.New("trainer is busy at this time")
)

type Service interface {
	CreateRecurringEvent(ctx context.Context, req CreateRecurringEventRequest) (*Event, error)
	Materialize(ctx context.Context, now time.Time, horizonDays int) (int, error)
	GetSchedule(ctx context.Context, from, to time.Time) ([]ScheduleDay, error)
}

type service struct {
	repo      *Repository
	availRepo *availability.Repository
}

func NewService(repo *Repository, availRepo *availability.Repository) Service {
	return &service{
		repo:      repo,
		availRepo: availRepo,
	}
}

func (s *service) CreateRecurringEvent(ctx context.Context, req CreateRecurringEventRequest) (*Event, error) {
	start, err := availability.ParseClock(req.StartTime)
	if err != nil {
		return nil, ErrBadTime
	}

	endHHMM, err := DeriveEndTime(req.StartTime, req.TrainingType)
	if err != nil {
		return nil, ErrBadTime
	}
	end, _ := availability.ParseClock(endHHMM)

	// A slot that wraps past midnight can never fit the club's hours.
	if !start.Before(end) {
		return nil, ErrOutsideHours
	}

	if err := s.checkWithinHours(ctx, req.Weekday, start, end); err != nil {
		return nil, err
	}

	startTime := start.String()
	weekday := req.Weekday
	event, err := s.repo.CreateEvent(ctx, &Event{
		TrainerID:    req.TrainerID,
		Kind:         EventKindRecurring,
		Weekday:      &weekday,
		StartTime:    &startTime,
		TrainingType: req.TrainingType,
		Capacity:     req.Capacity,
	})
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (s *service) checkWithinHours(ctx context.Context, weekday int, start, end availability.ClockTime) error {
	list, err := s.availRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	open, close, ok := availability.NewCalculator(list).ForWeekday(weekday).Window()
	if !ok {
		return ErrOutsideHours
	}

	if start.Before(open) || end.After(close) {
		return ErrOutsideHours
	}

	return nil
}

// Materialize turns recurring events into concrete sessions for the next
// horizonDays days. Already-generated and past occurrences are skipped;
// an occurrence that would double-book its trainer is skipped with a
// warning and picked up manually by staff.
func (s *service) Materialize(ctx context.Context, now time.Time, horizonDays int) (int, error) {
	events, err := s.repo.ListRecurringEvents(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for day := 0; day < horizonDays; day++ {
		date := today.AddDate(0, 0, day)

		for _, e := range events {
			if e.Weekday == nil || e.StartTime == nil || *e.Weekday != int(date.Weekday()) {
				continue
			}

			start, err := availability.ParseClock(*e.StartTime)
			if err != nil {
				logger.Warn("recurring event has bad start_time", "event_id", e.ID, "start_time", *e.StartTime)
				continue
			}

			startAt := time.Date(date.Year(), date.Month(), date.Day(), start.Hour, start.Minute, 0, 0, now.Location())
			if startAt.Before(now) {
				continue
			}
			endAt := startAt.Add(Duration(e.TrainingType))

			exists, err := s.repo.SessionExistsForEventAt(ctx, e.ID, startAt)
			if err != nil {
				return created, err
			}
			if exists {
				continue
			}

			busy, err := s.repo.TrainerBusy(ctx, e.TrainerID, startAt, endAt)
			if err != nil {
				return created, err
			}
			if busy {
				logger.Warn("skipping occurrence, trainer busy",
					"event_id", e.ID, "trainer_id", e.TrainerID, "start_at", startAt)
				continue
			}

			eventID := e.ID
			if _, err := s.repo.CreateSession(ctx, &Session{
				EventID:      &eventID,
				TrainerID:    e.TrainerID,
				TrainingType: e.TrainingType,
				StartAt:      startAt,
				EndAt:        endAt,
				Capacity:     e.Capacity,
			}); err != nil {
				return created, err
			}
			created++
		}
	}

	if created > 0 {
		metrics.RecordSessionsMaterialized(created)
	}

	return created, nil
}

func (s *service) GetSchedule(ctx context.Context, from, to time.Time) ([]ScheduleDay, error) {
	sessions, err := s.repo.ListSessionsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byDate := map[string][]SessionWithCounts{}
	for _, sess := range sessions {
		key := sess.StartAt.Format("2006-01-02")
		byDate[key] = append(byDate[key], sess)
	}

	days := []ScheduleDay{}
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		days = append(days, ScheduleDay{
			Date:     key,
			Weekday:  int(d.Weekday()),
			Sessions: append([]SessionWithCounts{}, byDate[key]...),
		})
	}

	return days, nil
}
