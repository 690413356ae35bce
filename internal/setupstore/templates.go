package setupstore

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Jonp4208/cfa-eval-sub012/internal/domain"
)

const templatesPath = "/api/setup-sheet-templates"

// LoadEmployees refreshes the assignment-candidate roster from the employee
// directory.
func (s *Store) LoadEmployees(ctx context.Context) error {
	s.begin()

	var employees []domain.Employee
	if err := s.do(ctx, http.MethodGet, "/api/employees", nil, &employees); err != nil {
		return s.fail(err)
	}

	s.finish(func() {
		s.employees = employees
	})
	return nil
}

// LoadTemplates replaces the in-memory template list with the server's. The
// list is only ever swapped wholesale, never patched, so a failed load leaves
// the previous consistent list in place.
func (s *Store) LoadTemplates(ctx context.Context) error {
	s.begin()

	var templates []*domain.SetupTemplate
	if err := s.do(ctx, http.MethodGet, templatesPath, nil, &templates); err != nil {
		return s.fail(err)
	}

	s.finish(func() {
		s.templates = templates
	})
	return nil
}

// CreateTemplate validates the schedule locally (a malformed week never
// reaches the network) and persists it. The created template becomes the
// current one.
func (s *Store) CreateTemplate(ctx context.Context, name string, ws *domain.WeekSchedule) (*domain.SetupTemplate, error) {
	s.begin()

	if err := ws.Validate(); err != nil {
		return nil, s.fail(err)
	}

	payload := struct {
		Name         string               `json:"name"`
		WeekSchedule *domain.WeekSchedule `json:"weekSchedule"`
	}{Name: name, WeekSchedule: ws}

	created := &domain.SetupTemplate{}
	if err := s.do(ctx, http.MethodPost, templatesPath, payload, created); err != nil {
		return nil, s.fail(err)
	}

	s.finish(func() {
		s.templates = append(s.templates, created)
		s.currentTemplate = created
	})
	return created, nil
}

// SaveAsTemplate persists the week of an existing setup as a reusable
// template, with every assignment stripped.
func (s *Store) SaveAsTemplate(ctx context.Context, name string, setup *domain.WeeklySetup) (*domain.SetupTemplate, error) {
	ws := setup.WeekSchedule.Clone()
	ws.StripAssignments()
	return s.CreateTemplate(ctx, name, ws)
}

type TemplateUpdate struct {
	Name         *string              `json:"name,omitempty"`
	WeekSchedule *domain.WeekSchedule `json:"weekSchedule,omitempty"`
}

// UpdateTemplate applies a partial update and swaps the returned entity into
// the list, keeping it consistent with the last successful server response.
func (s *Store) UpdateTemplate(ctx context.Context, id int64, update TemplateUpdate) (*domain.SetupTemplate, error) {
	s.begin()

	if update.WeekSchedule != nil {
		if err := update.WeekSchedule.Validate(); err != nil {
			return nil, s.fail(err)
		}
	}

	updated := &domain.SetupTemplate{}
	if err := s.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", templatesPath, id), update, updated); err != nil {
		return nil, s.fail(err)
	}

	s.finish(func() {
		for i := range s.templates {
			if s.templates[i].ID == id {
				s.templates[i] = updated
				break
			}
		}
		if s.currentTemplate != nil && s.currentTemplate.ID == id {
			s.currentTemplate = updated
		}
	})
	return updated, nil
}

func (s *Store) DeleteTemplate(ctx context.Context, id int64) error {
	s.begin()

	if err := s.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", templatesPath, id), nil, nil); err != nil {
		return s.fail(err)
	}

	s.finish(func() {
		kept := s.templates[:0]
		for _, template := range s.templates {
			if template.ID != id {
				kept = append(kept, template)
			}
		}
		s.templates = kept
		if s.currentTemplate != nil && s.currentTemplate.ID == id {
			s.currentTemplate = nil
		}
	})
	return nil
}

// SetCurrentTemplate points the store at one of the loaded templates.
func (s *Store) SetCurrentTemplate(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, template := range s.templates {
		if template.ID == id {
			s.currentTemplate = template
			return nil
		}
	}
	return domain.ErrTemplateNotFound
}
