package setupstore

import (
	"encoding/json"
	"time"

	"github.com/Jonp4208/cfa-eval-sub012/internal/domain"
)

// weeklySetupPayload is the POST body of a new weekly setup: the entity
// minus server-assigned id and timestamps.
type weeklySetupPayload struct {
	Name              string                 `json:"name"`
	StartDate         time.Time              `json:"startDate"`
	EndDate           time.Time              `json:"endDate"`
	WeekSchedule      *domain.WeekSchedule   `json:"weekSchedule"`
	UploadedSchedules []domain.UploadedShift `json:"uploadedSchedules,omitempty"`
}

// trimToFit measures the serialized payload and, when it exceeds the
// configured limit, cuts every uploaded-schedule entry down to the minimal
// fields needed to reconstruct assignments: id, name, timeBlock, area, day.
// The trim is a fixed policy, not a heuristic — the same payload always trims
// the same way, and the five reconstruction fields are never dropped.
func (s *Store) trimToFit(payload weeklySetupPayload) weeklySetupPayload {
	if len(payload.UploadedSchedules) == 0 {
		return payload
	}

	serialized, err := json.Marshal(payload)
	if err != nil {
		// leave it to the request path to report the marshalling problem
		return payload
	}
	if len(serialized) <= s.payloadLimit {
		return payload
	}

	trimmed := make([]domain.UploadedShift, len(payload.UploadedSchedules))
	for i, entry := range payload.UploadedSchedules {
		trimmed[i] = domain.UploadedShift{
			ID:        entry.ID,
			Name:      entry.Name,
			TimeBlock: entry.TimeBlock,
			Area:      entry.Area,
			Day:       entry.Day,
		}
	}
	payload.UploadedSchedules = trimmed
	return payload
}
