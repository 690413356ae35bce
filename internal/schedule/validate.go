package schedule

import (
	"fmt"
	"slices"
	"time"

	"github.com/Jonp4208/cfa-eval-sub012/internal/domain"
)

const clockLayout = "15:04"

// ParseClock parses a same-day wall-clock time ("09:00") into minutes since
// midnight.
func ParseClock(value string) (int, error) {
	t, err := time.Parse(clockLayout, value)
	if err != nil {
		return 0, fmt.Errorf("invalid wall-clock time %q", value)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Overlaps tests two half-open intervals [s1,e1) and [s2,e2): they overlap
// iff s1 < e2 && s2 < e1, so a block starting exactly when another ends does
// not conflict.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// ValidateTimeBlocks checks that every time block of every day parses and has
// start < end. Blocks within a day are allowed to overlap each other.
func ValidateTimeBlocks(ws *domain.WeekSchedule) error {
	for _, day := range domain.Weekdays {
		ds := ws.Days[day]
		if ds == nil {
			continue
		}
		for i := range ds.TimeBlocks {
			start, err := ParseClock(ds.TimeBlocks[i].Start)
			if err != nil {
				return fmt.Errorf("%s block %d: %w", day, i, err)
			}
			end, err := ParseClock(ds.TimeBlocks[i].End)
			if err != nil {
				return fmt.Errorf("%s block %d: %w", day, i, err)
			}
			if start >= end {
				return fmt.Errorf("%s block %d must end after it starts", day, i)
			}
			for j := range ds.TimeBlocks[i].Positions {
				if ds.TimeBlocks[i].Positions[j].Count < 1 {
					return fmt.Errorf("%s block %d position %d must accept at least one employee", day, i, j)
				}
			}
		}
	}
	return nil
}

// CheckAssignment decides whether assigning employeeID to the given position
// of the given time block would be admissible against the current schedule.
// It is pure: it never touches the network and never mutates the schedule.
//
// An assignment is rejected when the employee already holds a position in an
// overlapping block on the same day, or when the target position is at
// capacity and the employee is not already one of its occupants.
func CheckAssignment(ws *domain.WeekSchedule, day domain.Weekday, blockID, positionID, employeeID string) error {
	ds := ws.Days[day]
	if ds == nil {
		return fmt.Errorf("day %s: %w", day, domain.ErrInvalidSchedule)
	}

	var target *domain.TimeBlock
	for i := range ds.TimeBlocks {
		if ds.TimeBlocks[i].ID == blockID {
			target = &ds.TimeBlocks[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("time block %s: %w", blockID, domain.ErrNotFound)
	}

	targetStart, err := ParseClock(target.Start)
	if err != nil {
		return err
	}
	targetEnd, err := ParseClock(target.End)
	if err != nil {
		return err
	}

	// Double-booking check against every other block on the day where the
	// employee already holds a position.
	for i := range ds.TimeBlocks {
		block := &ds.TimeBlocks[i]
		if block.ID == blockID {
			continue
		}
		if !holdsPosition(block, employeeID) {
			continue
		}
		start, err := ParseClock(block.Start)
		if err != nil {
			return err
		}
		end, err := ParseClock(block.End)
		if err != nil {
			return err
		}
		if Overlaps(targetStart, targetEnd, start, end) {
			return &domain.AssignmentConflictError{
				EmployeeID: employeeID,
				Day:        day,
				BlockID:    block.ID,
				BlockStart: block.Start,
				BlockEnd:   block.End,
			}
		}
	}

	// Capacity check. Re-assigning an occupant to its own position is
	// idempotent and always admitted.
	for i := range target.Positions {
		pos := &target.Positions[i]
		if pos.ID != positionID {
			continue
		}
		if slices.Contains(pos.EmployeeIDs, employeeID) {
			return nil
		}
		if int32(len(pos.EmployeeIDs)) >= pos.Count {
			return &domain.PositionFullError{
				PositionID:   pos.ID,
				PositionName: pos.Name,
				Capacity:     pos.Count,
			}
		}
		return nil
	}

	return fmt.Errorf("position %s: %w", positionID, domain.ErrNotFound)
}

func holdsPosition(block *domain.TimeBlock, employeeID string) bool {
	for i := range block.Positions {
		if slices.Contains(block.Positions[i].EmployeeIDs, employeeID) {
			return true
		}
	}
	return false
}

// Apply performs the admitted assignment in place. Callers must run
// CheckAssignment first; Apply repeats the idempotence guard but not the
// conflict checks.
func Apply(ws *domain.WeekSchedule, day domain.Weekday, blockID, positionID, employeeID string) error {
	ds := ws.Days[day]
	if ds == nil {
		return fmt.Errorf("day %s: %w", day, domain.ErrInvalidSchedule)
	}
	for i := range ds.TimeBlocks {
		if ds.TimeBlocks[i].ID != blockID {
			continue
		}
		for j := range ds.TimeBlocks[i].Positions {
			pos := &ds.TimeBlocks[i].Positions[j]
			if pos.ID != positionID {
				continue
			}
			if slices.Contains(pos.EmployeeIDs, employeeID) {
				return nil
			}
			pos.EmployeeIDs = append(pos.EmployeeIDs, employeeID)
			return nil
		}
		return fmt.Errorf("position %s: %w", positionID, domain.ErrNotFound)
	}
	return fmt.Errorf("time block %s: %w", blockID, domain.ErrNotFound)
}

// Unassign removes the employee from the position if present.
func Unassign(ws *domain.WeekSchedule, day domain.Weekday, blockID, positionID, employeeID string) {
	ds := ws.Days[day]
	if ds == nil {
		return
	}
	for i := range ds.TimeBlocks {
		if ds.TimeBlocks[i].ID != blockID {
			continue
		}
		for j := range ds.TimeBlocks[i].Positions {
			pos := &ds.TimeBlocks[i].Positions[j]
			if pos.ID != positionID {
				continue
			}
			pos.EmployeeIDs = slices.DeleteFunc(pos.EmployeeIDs, func(id string) bool {
				return id == employeeID
			})
			if len(pos.EmployeeIDs) == 0 {
				pos.EmployeeIDs = nil
			}
			return
		}
	}
}
