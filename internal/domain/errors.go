package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSchedule is returned when a week schedule does not carry all
	// seven weekday keys.
	ErrInvalidSchedule = errors.New("week schedule must contain all seven weekdays")

	// ErrInvalidDateRange is returned when a weekly setup's date range is not
	// exactly a seven day span.
	ErrInvalidDateRange = errors.New("weekly setup must span exactly seven days")

	// ErrTemplateNotFound is returned when instantiating an unknown template.
	ErrTemplateNotFound = errors.New("setup template not found")

	// ErrNotFound is the generic missing-record error.
	ErrNotFound = errors.New("record not found")

	// ErrStaleWrite is returned when a version-guarded update matched no row,
	// meaning another writer got there first. Refresh and retry.
	ErrStaleWrite = errors.New("record was modified by another writer")
)

// AssignmentConflictError rejects an assignment that would double-book an
// employee on overlapping time blocks of the same day.
type AssignmentConflictError struct {
	EmployeeID string
	Day        Weekday
	BlockID    string
	BlockStart string
	BlockEnd   string
}

func (e *AssignmentConflictError) Error() string {
	return fmt.Sprintf("employee %s is already scheduled on %s from %s to %s", e.EmployeeID, e.Day, e.BlockStart, e.BlockEnd)
}

// PositionFullError rejects an assignment to a position whose occupants
// already reach its capacity.
type PositionFullError struct {
	PositionID   string
	PositionName string
	Capacity     int32
}

func (e *PositionFullError) Error() string {
	return fmt.Sprintf("position %s is already at its capacity of %d", e.PositionName, e.Capacity)
}
