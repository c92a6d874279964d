package calendar

import (
	"strings"
	"time"
)

// Weekday is the fixed set of collection weekdays, Sunday first to
// match the grid layout.
type Weekday int

const (
	Domingo Weekday = iota
	Segunda
	Terca
	Quarta
	Quinta
	Sexta
	Sabado
)

var weekdayKeys = [7]string{"domingo", "segunda", "terça", "quarta", "quinta", "sexta", "sábado"}

// Key returns the canonical lowercase key for the weekday.
func (w Weekday) Key() string {
	return weekdayKeys[w]
}

// CanonicalDayKey normalizes a free-text pt-BR day name to its mapping
// key: lowercase, "-feira" suffix stripped, whitespace trimmed. Both
// "Segunda-feira" and "segunda" collapse to "segunda".
func CanonicalDayKey(name string) string {
	key := strings.ToLower(name)
	key = strings.ReplaceAll(key, "-feira", "")
	return strings.TrimSpace(key)
}

// ParseDia resolves a free-text day name to a Weekday. Unaccented
// spellings are accepted since the routing service is inconsistent
// about them. Unknown names report ok=false instead of guessing.
func ParseDia(name string) (Weekday, bool) {
	switch CanonicalDayKey(name) {
	case "domingo":
		return Domingo, true
	case "segunda":
		return Segunda, true
	case "terça", "terca":
		return Terca, true
	case "quarta":
		return Quarta, true
	case "quinta":
		return Quinta, true
	case "sexta":
		return Sexta, true
	case "sábado", "sabado":
		return Sabado, true
	}
	return 0, false
}

// FromTime maps a time.Weekday onto the collection weekday enum.
func FromTime(w time.Weekday) Weekday {
	return Weekday(int(w))
}
