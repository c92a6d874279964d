package models

// DiaColeta is one entry of the weekly collection schedule for an
// address: which weekday a truck passes, in which period, and which
// residue types it picks up. Sourced read-only from the routing
// service, never persisted.
type DiaColeta struct {
	Dia     string   `json:"dia"`
	Periodo string   `json:"periodo"`
	Tipos   []string `json:"tipos"`
}

// AgendaColeta is the schedule payload returned to the frontend.
type AgendaColeta struct {
	Endereco   string      `json:"endereco"`
	DiasColeta []DiaColeta `json:"diasColeta"`
}

// Coordenada is a single point of a traveled collection route.
type Coordenada struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HistoricoItem is one past collection-truck passage. Data is a
// calendar day (YYYY-MM-DD), Hora an HH:MM clock time.
type HistoricoItem struct {
	Data string       `json:"data"`
	Hora string       `json:"hora"`
	Tipo string       `json:"tipo"`
	Rota []Coordenada `json:"rota,omitempty"`
}

// HistoricoColeta is the history payload returned to the frontend,
// most recent passage first.
type HistoricoColeta struct {
	Historico []HistoricoItem `json:"historico"`
}
