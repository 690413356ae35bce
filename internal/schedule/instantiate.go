package schedule

import (
	"time"

	"github.com/Jonp4208/cfa-eval-sub012/internal/domain"
)

// Instantiate stamps a template out into a concrete weekly setup starting on
// startDate. The template's week schedule is deep-cloned (no shared blocks or
// positions), residual assignments are stripped, and the end date is fixed at
// startDate + 6 days. startDate may fall on any weekday; day keys resolve to
// concrete dates through WeeklySetup.DateOf.
func Instantiate(template *domain.SetupTemplate, startDate time.Time) (*domain.WeeklySetup, error) {
	if template == nil {
		return nil, domain.ErrTemplateNotFound
	}
	if err := template.WeekSchedule.Validate(); err != nil {
		return nil, err
	}

	ws := template.WeekSchedule.Clone()
	ws.StripAssignments()

	start := startDate.Truncate(24 * time.Hour)
	return &domain.WeeklySetup{
		Name:         template.Name,
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 6),
		WeekSchedule: ws,
	}, nil
}
