package domain

import (
	"time"

	"github.com/google/uuid"
)

type Area string

const (
	AreaFOH Area = "FOH"
	AreaBOH Area = "BOH"
)

type Weekday string

const (
	Sunday    Weekday = "sunday"
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
)

// Weekdays lists the seven day keys in storage order (Sunday first).
var Weekdays = []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// Employee is a read-only record owned by the HR subsystem.
type Employee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ShiftStart string `json:"shiftStart"`
	ShiftEnd   string `json:"shiftEnd"`
	Area       Area   `json:"area"`
	Day        string `json:"day,omitempty"`
}

// Position is a staffing slot inside one time block. Count is the number of
// simultaneous employees the slot accepts; EmployeeIDs holds the current
// occupants and is only ever populated on weekly setups, never on templates.
type Position struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Section     Area     `json:"section"`
	Color       string   `json:"color,omitempty"`
	Count       int32    `json:"count"`
	EmployeeIDs []string `json:"employeeIds,omitempty"`
}

// TimeBlock is a same-day wall-clock interval (start < end, "15:04" format)
// owning its positions. Position ids do not persist across blocks.
type TimeBlock struct {
	ID        string     `json:"id"`
	Start     string     `json:"start"`
	End       string     `json:"end"`
	Positions []Position `json:"positions"`
}

type DaySchedule struct {
	TimeBlocks []TimeBlock `json:"timeBlocks"`
}

// WeekSchedule keys a DaySchedule by each of the seven weekday names. All
// seven keys are always present once a schedule has gone through Normalize.
type WeekSchedule struct {
	Days map[Weekday]*DaySchedule `json:"days"`
}

func NewWeekSchedule() *WeekSchedule {
	ws := &WeekSchedule{Days: make(map[Weekday]*DaySchedule, len(Weekdays))}
	for _, day := range Weekdays {
		ws.Days[day] = &DaySchedule{TimeBlocks: []TimeBlock{}}
	}
	return ws
}

// Normalize fills in any missing weekday with an empty day schedule so the
// seven-day invariant holds even for schedules built from partial input.
func (ws *WeekSchedule) Normalize() {
	if ws.Days == nil {
		ws.Days = make(map[Weekday]*DaySchedule, len(Weekdays))
	}
	for _, day := range Weekdays {
		if ws.Days[day] == nil {
			ws.Days[day] = &DaySchedule{TimeBlocks: []TimeBlock{}}
		}
	}
}

// Validate reports ErrInvalidSchedule if any of the seven weekday keys is
// absent or if an unknown key is present.
func (ws *WeekSchedule) Validate() error {
	if ws == nil || ws.Days == nil {
		return ErrInvalidSchedule
	}
	for _, day := range Weekdays {
		if _, exists := ws.Days[day]; !exists {
			return ErrInvalidSchedule
		}
	}
	if len(ws.Days) != len(Weekdays) {
		return ErrInvalidSchedule
	}
	return nil
}

// StripAssignments removes every employee assignment, leaving capacity only.
// Templates are stored in this form.
func (ws *WeekSchedule) StripAssignments() {
	for _, day := range ws.Days {
		if day == nil {
			continue
		}
		for i := range day.TimeBlocks {
			for j := range day.TimeBlocks[i].Positions {
				day.TimeBlocks[i].Positions[j].EmployeeIDs = nil
			}
		}
	}
}

func (p *Position) Clone() Position {
	cloned := *p
	if p.EmployeeIDs != nil {
		cloned.EmployeeIDs = make([]string, len(p.EmployeeIDs))
		copy(cloned.EmployeeIDs, p.EmployeeIDs)
	}
	return cloned
}

func (tb *TimeBlock) Clone() TimeBlock {
	cloned := *tb
	cloned.Positions = make([]Position, 0, len(tb.Positions))
	for i := range tb.Positions {
		cloned.Positions = append(cloned.Positions, tb.Positions[i].Clone())
	}
	return cloned
}

func (ds *DaySchedule) Clone() *DaySchedule {
	if ds == nil {
		return &DaySchedule{TimeBlocks: []TimeBlock{}}
	}
	cloned := &DaySchedule{TimeBlocks: make([]TimeBlock, 0, len(ds.TimeBlocks))}
	for i := range ds.TimeBlocks {
		cloned.TimeBlocks = append(cloned.TimeBlocks, ds.TimeBlocks[i].Clone())
	}
	return cloned
}

// Clone is a structural deep copy. Instantiated setups must not share any
// position or time block with their source template.
func (ws *WeekSchedule) Clone() *WeekSchedule {
	cloned := &WeekSchedule{Days: make(map[Weekday]*DaySchedule, len(Weekdays))}
	for _, day := range Weekdays {
		cloned.Days[day] = ws.Days[day].Clone()
	}
	return cloned
}

// WeekdayOf maps a calendar date onto its day key.
func WeekdayOf(t time.Time) Weekday {
	return Weekdays[int(t.Weekday())]
}

// NewEntityID mints an id for nested entities (time blocks, positions) that
// live inside the week schedule document rather than in their own table.
func NewEntityID() string {
	return uuid.NewString()
}
