package domain

import "time"

// SetupTemplate is a reusable, dateless week blueprint. Its positions carry
// capacity only; assignments are stripped on write.
type SetupTemplate struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	WeekSchedule *WeekSchedule `json:"weekSchedule"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
	Version      int32         `json:"-"`
}

func (st *SetupTemplate) Clone() *SetupTemplate {
	cloned := *st
	cloned.WeekSchedule = st.WeekSchedule.Clone()
	return &cloned
}

// UploadedShift is one row of the auxiliary schedule upload attached to a
// weekly setup. Only the first five fields are required to reconstruct
// assignments; the rest may be dropped when the payload is trimmed for size.
type UploadedShift struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TimeBlock  string `json:"timeBlock"`
	Area       Area   `json:"area"`
	Day        string `json:"day"`
	ShiftStart string `json:"shiftStart,omitempty"`
	ShiftEnd   string `json:"shiftEnd,omitempty"`
	Position   string `json:"position,omitempty"`
	Breaks     string `json:"breaks,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// WeeklySetup is a dated, concrete instance of a week schedule. It spans
// exactly seven days (EndDate = StartDate + 6d) and owns its week schedule
// exclusively after instantiation.
type WeeklySetup struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	StartDate         time.Time       `json:"startDate"`
	EndDate           time.Time       `json:"endDate"`
	WeekSchedule      *WeekSchedule   `json:"weekSchedule"`
	UploadedSchedules []UploadedShift `json:"uploadedSchedules,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
	Version           int32           `json:"-"`
}

func (s *WeeklySetup) Clone() *WeeklySetup {
	cloned := *s
	cloned.WeekSchedule = s.WeekSchedule.Clone()
	if s.UploadedSchedules != nil {
		cloned.UploadedSchedules = make([]UploadedShift, len(s.UploadedSchedules))
		copy(cloned.UploadedSchedules, s.UploadedSchedules)
	}
	return &cloned
}

// DateOf resolves a weekday key to its concrete calendar date within the
// setup's week.
func (s *WeeklySetup) DateOf(day Weekday) time.Time {
	startIdx := int(s.StartDate.Weekday())
	for i, d := range Weekdays {
		if d == day {
			offset := (i - startIdx + 7) % 7
			return s.StartDate.AddDate(0, 0, offset)
		}
	}
	return s.StartDate
}

// ValidateDateRange reports ErrInvalidDateRange unless the span is exactly
// seven days (end = start + 6d, compared at day precision).
func ValidateDateRange(startDate, endDate time.Time) error {
	start := startDate.Truncate(24 * time.Hour)
	end := endDate.Truncate(24 * time.Hour)
	if !end.Equal(start.AddDate(0, 0, 6)) {
		return ErrInvalidDateRange
	}
	return nil
}
