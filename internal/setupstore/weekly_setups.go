package setupstore

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Jonp4208/cfa-eval-sub012/internal/domain"
	"github.com/Jonp4208/cfa-eval-sub012/internal/schedule"
)

const weeklySetupsPath = "/api/weekly-setups"

func (s *Store) LoadWeeklySetups(ctx context.Context) error {
	s.begin()

	var setups []*domain.WeeklySetup
	if err := s.do(ctx, http.MethodGet, weeklySetupsPath, nil, &setups); err != nil {
		return s.fail(err)
	}

	s.finish(func() {
		s.weeklySetups = setups
	})
	return nil
}

// InstantiateTemplate stamps a loaded template out into a concrete setup for
// the week starting at startDate and persists it. The new setup shares no
// blocks or positions with the template and carries no assignments.
func (s *Store) InstantiateTemplate(ctx context.Context, templateID int64, startDate time.Time) (*domain.WeeklySetup, error) {
	s.mu.Lock()
	var template *domain.SetupTemplate
	for _, t := range s.templates {
		if t.ID == templateID {
			template = t
			break
		}
	}
	s.mu.Unlock()

	if template == nil {
		s.mu.Lock()
		s.lastError = domain.ErrTemplateNotFound.Error()
		s.mu.Unlock()
		return nil, domain.ErrTemplateNotFound
	}

	setup, err := schedule.Instantiate(template, startDate)
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.mu.Unlock()
		return nil, err
	}

	return s.CreateWeeklySetup(ctx, setup)
}

// CreateWeeklySetup validates the date range locally, normalizes the week,
// trims the uploaded-schedule payload if it crosses the size threshold and
// persists the setup, which becomes the current one.
func (s *Store) CreateWeeklySetup(ctx context.Context, setup *domain.WeeklySetup) (*domain.WeeklySetup, error) {
	s.begin()

	if err := domain.ValidateDateRange(setup.StartDate, setup.EndDate); err != nil {
		return nil, s.fail(err)
	}
	setup.WeekSchedule.Normalize()

	payload := weeklySetupPayload{
		Name:              setup.Name,
		StartDate:         setup.StartDate,
		EndDate:           setup.EndDate,
		WeekSchedule:      setup.WeekSchedule,
		UploadedSchedules: setup.UploadedSchedules,
	}
	payload = s.trimToFit(payload)

	created := &domain.WeeklySetup{}
	if err := s.do(ctx, http.MethodPost, weeklySetupsPath, payload, created); err != nil {
		return nil, s.fail(err)
	}

	s.finish(func() {
		s.weeklySetups = append(s.weeklySetups, created)
		s.currentWeeklySetup = created
	})
	return created, nil
}

type WeeklySetupUpdate struct {
	Name              *string                 `json:"name,omitempty"`
	StartDate         *time.Time              `json:"startDate,omitempty"`
	EndDate           *time.Time              `json:"endDate,omitempty"`
	WeekSchedule      *domain.WeekSchedule    `json:"weekSchedule,omitempty"`
	UploadedSchedules *[]domain.UploadedShift `json:"uploadedSchedules,omitempty"`
}

func (s *Store) UpdateWeeklySetup(ctx context.Context, id int64, update WeeklySetupUpdate) (*domain.WeeklySetup, error) {
	s.begin()

	if update.StartDate != nil || update.EndDate != nil {
		if update.StartDate == nil || update.EndDate == nil {
			return nil, s.fail(domain.ErrInvalidDateRange)
		}
		if err := domain.ValidateDateRange(*update.StartDate, *update.EndDate); err != nil {
			return nil, s.fail(err)
		}
	}

	updated := &domain.WeeklySetup{}
	if err := s.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", weeklySetupsPath, id), update, updated); err != nil {
		return nil, s.fail(err)
	}

	s.finish(func() {
		s.replaceWeeklySetup(updated)
	})
	return updated, nil
}

func (s *Store) DeleteWeeklySetup(ctx context.Context, id int64) error {
	s.begin()

	if err := s.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", weeklySetupsPath, id), nil, nil); err != nil {
		return s.fail(err)
	}

	s.finish(func() {
		kept := s.weeklySetups[:0]
		for _, setup := range s.weeklySetups {
			if setup.ID != id {
				kept = append(kept, setup)
			}
		}
		s.weeklySetups = kept
		if s.currentWeeklySetup != nil && s.currentWeeklySetup.ID == id {
			s.currentWeeklySetup = nil
		}
	})
	return nil
}

// SetCurrentWeeklySetup points the store at one of the loaded setups.
func (s *Store) SetCurrentWeeklySetup(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, setup := range s.weeklySetups {
		if setup.ID == id {
			s.currentWeeklySetup = setup
			return nil
		}
	}
	return domain.ErrNotFound
}

// AssignEmployee puts an employee on a position of the current setup. The
// conflict check runs synchronously against the in-memory snapshot before any
// network call, so double-bookings and over-capacity assignments are rejected
// without a save round trip. On success the store replaces the whole current
// entity rather than patching nested structures in place.
func (s *Store) AssignEmployee(ctx context.Context, day domain.Weekday, blockID, positionID, employeeID string) (*domain.WeeklySetup, error) {
	s.mu.Lock()
	current := s.currentWeeklySetup
	s.mu.Unlock()
	if current == nil {
		err := fmt.Errorf("no weekly setup loaded: %w", domain.ErrNotFound)
		s.mu.Lock()
		s.lastError = err.Error()
		s.mu.Unlock()
		return nil, err
	}

	if err := schedule.CheckAssignment(current.WeekSchedule, day, blockID, positionID, employeeID); err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.mu.Unlock()
		return nil, err
	}

	ws := current.WeekSchedule.Clone()
	if err := schedule.Apply(ws, day, blockID, positionID, employeeID); err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.mu.Unlock()
		return nil, err
	}

	return s.UpdateWeeklySetup(ctx, current.ID, WeeklySetupUpdate{WeekSchedule: ws})
}

// UnassignEmployee removes an employee from a position of the current setup.
func (s *Store) UnassignEmployee(ctx context.Context, day domain.Weekday, blockID, positionID, employeeID string) (*domain.WeeklySetup, error) {
	s.mu.Lock()
	current := s.currentWeeklySetup
	s.mu.Unlock()
	if current == nil {
		err := fmt.Errorf("no weekly setup loaded: %w", domain.ErrNotFound)
		s.mu.Lock()
		s.lastError = err.Error()
		s.mu.Unlock()
		return nil, err
	}

	ws := current.WeekSchedule.Clone()
	schedule.Unassign(ws, day, blockID, positionID, employeeID)

	return s.UpdateWeeklySetup(ctx, current.ID, WeeklySetupUpdate{WeekSchedule: ws})
}

func (s *Store) replaceWeeklySetup(updated *domain.WeeklySetup) {
	for i := range s.weeklySetups {
		if s.weeklySetups[i].ID == updated.ID {
			s.weeklySetups[i] = updated
			break
		}
	}
	if s.currentWeeklySetup != nil && s.currentWeeklySetup.ID == updated.ID {
		s.currentWeeklySetup = updated
	}
}
