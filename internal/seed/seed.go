package seed

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/Jonp4208/cfa-eval-sub012/internal/domain"
	"github.com/Jonp4208/cfa-eval-sub012/internal/repository"
)

var firstNames = []string{
	"Ava", "Liam", "Noah", "Emma", "Mia", "Ethan", "Sophia", "Mason",
	"Olivia", "Lucas", "Isabella", "Caleb", "Harper", "Jordan", "Riley",
	"Grace", "Tyler", "Zoe", "Marcus", "Destiny",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Davis",
	"Martinez", "Wilson", "Anderson", "Taylor", "Thomas", "Moore", "Lee",
	"Walker", "Hall", "Young", "King", "Wright", "Scott",
}

// fohShifts and bohShifts mirror the store's usual day parts.
var fohShifts = [][2]string{
	{"05:30", "14:00"},
	{"06:00", "14:30"},
	{"10:00", "18:00"},
	{"14:00", "22:00"},
}

var bohShifts = [][2]string{
	{"05:00", "13:30"},
	{"09:00", "17:00"},
	{"13:30", "22:00"},
}

func randomName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

// InsertRoster inserts n random employees split across FOH and BOH.
func InsertRoster(r *repository.Repository, n int) {
	for i := 0; i < n; i++ {
		area := domain.AreaFOH
		shifts := fohShifts
		if rand.Intn(3) == 0 {
			area = domain.AreaBOH
			shifts = bohShifts
		}
		shift := shifts[rand.Intn(len(shifts))]

		employee := &domain.Employee{
			ID:         domain.NewEntityID(),
			Name:       randomName(),
			ShiftStart: shift[0],
			ShiftEnd:   shift[1],
			Area:       area,
		}
		if err := r.CreateEmployee(employee); err != nil {
			slog.Error("could not insert employee", "name", employee.Name, "error", err)
			continue
		}
		slog.Info("inserted employee", "name", employee.Name, "area", employee.Area)
	}
}

// starterBlocks describes the default weekday service blocks of the starter
// template.
var starterBlocks = []struct {
	start     string
	end       string
	positions []struct {
		name     string
		category string
		section  domain.Area
		count    int32
	}
}{
	{
		start: "05:30", end: "11:00",
		positions: []struct {
			name     string
			category string
			section  domain.Area
			count    int32
		}{
			{"Register 1", "Register", domain.AreaFOH, 1},
			{"Register 2", "Register", domain.AreaFOH, 1},
			{"Drive Thru Order", "Drive Thru", domain.AreaFOH, 2},
			{"Primary Grill", "Grill", domain.AreaBOH, 2},
			{"Breading", "Breading", domain.AreaBOH, 1},
		},
	},
	{
		start: "11:00", end: "14:00",
		positions: []struct {
			name     string
			category string
			section  domain.Area
			count    int32
		}{
			{"Register 1", "Register", domain.AreaFOH, 1},
			{"Register 2", "Register", domain.AreaFOH, 1},
			{"Drive Thru Order", "Drive Thru", domain.AreaFOH, 2},
			{"Drive Thru Bagger", "Drive Thru", domain.AreaFOH, 2},
			{"Dining Room", "Guest Experience", domain.AreaFOH, 1},
			{"Primary Grill", "Grill", domain.AreaBOH, 2},
			{"Secondary Grill", "Grill", domain.AreaBOH, 1},
			{"Fries", "Sides", domain.AreaBOH, 1},
		},
	},
	{
		start: "14:00", end: "22:00",
		positions: []struct {
			name     string
			category string
			section  domain.Area
			count    int32
		}{
			{"Register 1", "Register", domain.AreaFOH, 1},
			{"Drive Thru Order", "Drive Thru", domain.AreaFOH, 1},
			{"Primary Grill", "Grill", domain.AreaBOH, 1},
			{"Closing", "Cleaning", domain.AreaBOH, 2},
		},
	},
}

// InsertStarterTemplate inserts one full-week template with the default
// service blocks on every day.
func InsertStarterTemplate(r *repository.Repository) {
	ws := domain.NewWeekSchedule()
	for _, day := range domain.Weekdays {
		blocks := make([]domain.TimeBlock, 0, len(starterBlocks))
		for _, b := range starterBlocks {
			block := domain.TimeBlock{
				ID:    domain.NewEntityID(),
				Start: b.start,
				End:   b.end,
			}
			for _, p := range b.positions {
				block.Positions = append(block.Positions, domain.Position{
					ID:       domain.NewEntityID(),
					Name:     p.name,
					Category: p.category,
					Section:  p.section,
					Count:    p.count,
				})
			}
			blocks = append(blocks, block)
		}
		ws.Days[day] = &domain.DaySchedule{TimeBlocks: blocks}
	}

	template := &domain.SetupTemplate{
		Name:         fmt.Sprintf("Standard Week %d", rand.Intn(1000)),
		WeekSchedule: ws,
	}
	if err := r.CreateSetupTemplate(template); err != nil {
		slog.Error("could not insert starter template", "error", err)
		return
	}
	slog.Info("inserted starter template", "id", template.ID, "name", template.Name)
}
