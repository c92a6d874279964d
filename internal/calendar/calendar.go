// Package calendar projects a weekly recurring collection schedule
// onto a concrete month grid for the frontend calendar.
package calendar

import (
	"time"

	"coleta-portal/internal/models"
)

// Day is a single cell of the rendered month grid.
type Day struct {
	Date           time.Time `json:"date"`
	Day            int       `json:"day"`
	IsCurrentMonth bool      `json:"isCurrentMonth"`
	IsToday        bool      `json:"isToday"`
	Tipos          []string  `json:"tipos"`
	Periodo        string    `json:"periodo,omitempty"`
}

type scheduleEntry struct {
	tipos   []string
	periodo string
}

// buildScheduleMap keys the agenda entries by weekday. The last entry
// for a given weekday wins when the routing service sends duplicates.
func buildScheduleMap(dias []models.DiaColeta) map[Weekday]scheduleEntry {
	m := make(map[Weekday]scheduleEntry, len(dias))
	for _, d := range dias {
		wd, ok := ParseDia(d.Dia)
		if !ok {
			continue
		}
		m[wd] = scheduleEntry{tipos: d.Tipos, periodo: d.Periodo}
	}
	return m
}

// Generate returns the 42-cell month grid, Sunday-first, week by week.
// Leading and trailing cells belong to the adjacent months and never
// carry collection data. When the natural trailing fill would exceed a
// full week, one week is subtracted so the grid does not grow a
// redundant 7th row; the cell total is then 35 instead of 42. The
// year/month pair is not range-checked here, navigation bounds are the
// caller's concern.
func Generate(year int, month time.Month, dias []models.DiaColeta, today time.Time) []Day {
	schedule := buildScheduleMap(dias)
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	days := make([]Day, 0, 42)

	// Trailing days of the previous month up to the first weekday.
	lead := int(first.Weekday())
	for i := lead; i > 0; i-- {
		date := first.AddDate(0, 0, -i)
		days = append(days, Day{
			Date:  date,
			Day:   date.Day(),
			Tipos: []string{},
		})
	}

	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		cell := Day{
			Date:           date,
			Day:            d,
			IsCurrentMonth: true,
			IsToday:        date.Equal(today),
			Tipos:          []string{},
		}
		if entry, ok := schedule[FromTime(date.Weekday())]; ok {
			cell.Tipos = entry.tipos
			cell.Periodo = entry.periodo
		}
		days = append(days, cell)
	}

	// Leading days of the next month. A remainder above 7 would add a
	// row with no current-month day in it, so one week is dropped.
	remaining := 42 - len(days)
	if remaining > 7 {
		remaining -= 7
	}
	for i := 1; i <= remaining; i++ {
		date := time.Date(year, month+1, i, 0, 0, 0, 0, time.UTC)
		days = append(days, Day{
			Date:  date,
			Day:   i,
			Tipos: []string{},
		})
	}

	return days
}
