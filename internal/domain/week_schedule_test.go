package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeekScheduleHasAllSevenDays(t *testing.T) {
	ws := NewWeekSchedule()

	require.Len(t, ws.Days, 7)
	for _, day := range Weekdays {
		require.NotNil(t, ws.Days[day], "missing day %s", day)
	}
	require.NoError(t, ws.Validate())
}

func TestNormalizeFillsMissingDays(t *testing.T) {
	ws := &WeekSchedule{Days: map[Weekday]*DaySchedule{
		Monday: {TimeBlocks: []TimeBlock{{ID: "b1", Start: "09:00", End: "13:00"}}},
	}}
	require.Error(t, ws.Validate())

	ws.Normalize()

	require.NoError(t, ws.Validate())
	require.Len(t, ws.Days, 7)
	assert.Len(t, ws.Days[Monday].TimeBlocks, 1)
	assert.Empty(t, ws.Days[Tuesday].TimeBlocks)
}

func TestValidateRejectsPartialWeek(t *testing.T) {
	ws := NewWeekSchedule()
	delete(ws.Days, Thursday)

	assert.ErrorIs(t, ws.Validate(), ErrInvalidSchedule)
}

func TestCloneIsDeep(t *testing.T) {
	ws := NewWeekSchedule()
	ws.Days[Monday] = &DaySchedule{TimeBlocks: []TimeBlock{
		{
			ID:    "b1",
			Start: "09:00",
			End:   "13:00",
			Positions: []Position{
				{ID: "p1", Name: "Register 1", Category: "Register", Section: AreaFOH, Count: 2, EmployeeIDs: []string{"e1"}},
			},
		},
	}}

	cloned := ws.Clone()
	cloned.Days[Monday].TimeBlocks[0].Positions[0].EmployeeIDs[0] = "e2"
	cloned.Days[Monday].TimeBlocks[0].Positions[0].Name = "Register 2"
	cloned.Days[Tuesday].TimeBlocks = append(cloned.Days[Tuesday].TimeBlocks, TimeBlock{ID: "b2"})

	assert.Equal(t, "e1", ws.Days[Monday].TimeBlocks[0].Positions[0].EmployeeIDs[0])
	assert.Equal(t, "Register 1", ws.Days[Monday].TimeBlocks[0].Positions[0].Name)
	assert.Empty(t, ws.Days[Tuesday].TimeBlocks)
}

func TestStripAssignments(t *testing.T) {
	ws := NewWeekSchedule()
	ws.Days[Friday] = &DaySchedule{TimeBlocks: []TimeBlock{
		{ID: "b1", Start: "09:00", End: "13:00", Positions: []Position{
			{ID: "p1", Name: "Grill", Count: 1, EmployeeIDs: []string{"e1", "e2"}},
		}},
	}}

	ws.StripAssignments()

	assert.Nil(t, ws.Days[Friday].TimeBlocks[0].Positions[0].EmployeeIDs)
	assert.EqualValues(t, 1, ws.Days[Friday].TimeBlocks[0].Positions[0].Count)
}

func TestValidateDateRange(t *testing.T) {
	start := time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC)

	require.NoError(t, ValidateDateRange(start, start.AddDate(0, 0, 6)))
	assert.ErrorIs(t, ValidateDateRange(start, start.AddDate(0, 0, 7)), ErrInvalidDateRange)
	assert.ErrorIs(t, ValidateDateRange(start, start.AddDate(0, 0, 5)), ErrInvalidDateRange)
	assert.ErrorIs(t, ValidateDateRange(start, start), ErrInvalidDateRange)
}

func TestWeeklySetupDateOf(t *testing.T) {
	// week starting on a Monday
	setup := &WeeklySetup{
		StartDate: time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, setup.StartDate, setup.DateOf(Monday))
	assert.Equal(t, time.Date(2025, 4, 16, 0, 0, 0, 0, time.UTC), setup.DateOf(Wednesday))
	// Sunday falls at the end of a Monday-started week
	assert.Equal(t, setup.EndDate, setup.DateOf(Sunday))
}

func TestWeekdayOf(t *testing.T) {
	assert.Equal(t, Monday, WeekdayOf(time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Sunday, WeekdayOf(time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC)))
}
