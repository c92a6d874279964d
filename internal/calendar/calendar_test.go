package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coleta-portal/internal/models"
)

func agendaSemanal() []models.DiaColeta {
	return []models.DiaColeta{
		{Dia: "Segunda", Periodo: "Manhã", Tipos: []string{"Orgânico"}},
		{Dia: "Quarta-feira", Periodo: "Tarde", Tipos: []string{"Reciclável"}},
		{Dia: "Sexta", Periodo: "Manhã", Tipos: []string{"Orgânico", "Rejeito"}},
	}
}

func TestGenerateGridShape(t *testing.T) {
	today := time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)

	for month := time.January; month <= time.December; month++ {
		days := Generate(2025, month, agendaSemanal(), today)

		require.True(t, len(days) == 42 || len(days) == 35,
			"month %s produced %d cells", month, len(days))
		assert.Zero(t, len(days)%7, "grid must be whole weeks")

		// Sunday-first, consecutive dates.
		assert.Equal(t, time.Sunday, days[0].Date.Weekday())
		for i := 1; i < len(days); i++ {
			assert.Equal(t, days[i-1].Date.AddDate(0, 0, 1), days[i].Date)
		}
	}
}

func TestGenerateWeekdayMatching(t *testing.T) {
	days := Generate(2025, time.March, agendaSemanal(), time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))

	for _, d := range days {
		if !d.IsCurrentMonth {
			continue
		}
		switch d.Date.Weekday() {
		case time.Monday:
			assert.Equal(t, []string{"Orgânico"}, d.Tipos)
			assert.Equal(t, "Manhã", d.Periodo)
		case time.Wednesday:
			assert.Equal(t, []string{"Reciclável"}, d.Tipos)
			assert.Equal(t, "Tarde", d.Periodo)
		case time.Friday:
			assert.Equal(t, []string{"Orgânico", "Rejeito"}, d.Tipos)
		default:
			assert.Empty(t, d.Tipos)
			assert.Empty(t, d.Periodo)
		}
	}
}

func TestGenerateFillerDaysCarryNoCollections(t *testing.T) {
	// Every day of the week has collections scheduled, filler cells
	// still must stay empty.
	agenda := []models.DiaColeta{
		{Dia: "Domingo", Periodo: "Manhã", Tipos: []string{"Orgânico"}},
		{Dia: "Segunda", Periodo: "Manhã", Tipos: []string{"Orgânico"}},
		{Dia: "Terça", Periodo: "Manhã", Tipos: []string{"Orgânico"}},
		{Dia: "Quarta", Periodo: "Manhã", Tipos: []string{"Orgânico"}},
		{Dia: "Quinta", Periodo: "Manhã", Tipos: []string{"Orgânico"}},
		{Dia: "Sexta", Periodo: "Manhã", Tipos: []string{"Orgânico"}},
		{Dia: "Sábado", Periodo: "Manhã", Tipos: []string{"Orgânico"}},
	}

	days := Generate(2025, time.March, agenda, time.Now())
	for _, d := range days {
		if !d.IsCurrentMonth {
			assert.Empty(t, d.Tipos)
			assert.Empty(t, d.Periodo)
			assert.False(t, d.IsToday)
		}
	}
}

func TestGenerateTrailingCap(t *testing.T) {
	// February 2024 starts on a Thursday and has 29 days: 4 leading +
	// 29 current leaves a natural remainder of 9, which gets a full
	// week subtracted.
	days := Generate(2024, time.February, nil, time.Now())

	require.Len(t, days, 35)
	assert.Equal(t, 4, countFiller(days[:4]))
	assert.True(t, days[4].IsCurrentMonth)
	assert.Equal(t, 1, days[4].Day)
	assert.Equal(t, 29, days[32].Day)
	assert.True(t, days[32].IsCurrentMonth)

	// Exactly two trailing March days.
	assert.False(t, days[33].IsCurrentMonth)
	assert.Equal(t, 1, days[33].Day)
	assert.Equal(t, time.March, days[33].Date.Month())
	assert.Equal(t, 2, days[34].Day)
}

func countFiller(days []Day) int {
	n := 0
	for _, d := range days {
		if !d.IsCurrentMonth {
			n++
		}
	}
	return n
}

func TestGenerateEmptySchedule(t *testing.T) {
	for _, dias := range [][]models.DiaColeta{nil, {}} {
		days := Generate(2025, time.August, dias, time.Now())
		for _, d := range days {
			assert.Empty(t, d.Tipos)
			assert.Empty(t, d.Periodo)
		}
	}
}

func TestGenerateDuplicateDayLastWins(t *testing.T) {
	agenda := []models.DiaColeta{
		{Dia: "Segunda-feira", Periodo: "Manhã", Tipos: []string{"Orgânico"}},
		{Dia: "segunda", Periodo: "Noite", Tipos: []string{"Reciclável"}},
	}

	days := Generate(2025, time.June, agenda, time.Now())
	for _, d := range days {
		if d.IsCurrentMonth && d.Date.Weekday() == time.Monday {
			assert.Equal(t, []string{"Reciclável"}, d.Tipos)
			assert.Equal(t, "Noite", d.Periodo)
		}
	}
}

func TestGenerateIsToday(t *testing.T) {
	today := time.Date(2025, time.September, 1, 8, 0, 0, 0, time.UTC)
	days := Generate(2025, time.September, nil, today)

	marked := 0
	for _, d := range days {
		if d.IsToday {
			marked++
			assert.Equal(t, 1, d.Day)
			assert.True(t, d.IsCurrentMonth)
		}
	}
	assert.Equal(t, 1, marked)

	// Viewing another month never marks today.
	for _, d := range Generate(2025, time.October, nil, today) {
		assert.False(t, d.IsToday)
	}
}

func TestCanonicalDayKey(t *testing.T) {
	cases := map[string]string{
		"Segunda-feira": "segunda",
		"SEXTA-FEIRA":   "sexta",
		"  Domingo ":    "domingo",
		"Terça":         "terça",
		"sábado":        "sábado",
	}
	for in, want := range cases {
		assert.Equal(t, want, CanonicalDayKey(in))
	}
}

func TestParseDia(t *testing.T) {
	wd, ok := ParseDia("Quarta-feira")
	require.True(t, ok)
	assert.Equal(t, Quarta, wd)

	wd, ok = ParseDia("terca")
	require.True(t, ok)
	assert.Equal(t, Terca, wd)

	_, ok = ParseDia("someday")
	assert.False(t, ok)
}
