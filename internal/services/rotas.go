package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"

	"coleta-portal/internal/models"
)

// RotasClient talks to the collection-routing backend (Java/Spring)
// that knows the actual truck routes. Every call takes the resident's
// bearer token explicitly; the client holds no session state of its
// own.
type RotasClient struct {
	client *resty.Client
}

// rotasAgendaItem is the routing service's schedule entry shape.
type rotasAgendaItem struct {
	NomeRota         string `json:"nomeRota"`
	TipoResiduo      string `json:"tipoResiduo"`
	TipoColeta       string `json:"tipoColeta"`
	DiaSemana        string `json:"diaSemana"`
	Periodo          string `json:"periodo"`
	DescricaoPeriodo string `json:"descricaoPeriodo"`
	Observacoes      string `json:"observacoes"`
}

// rotasHistoricoItem is the routing service's trajectory record shape.
type rotasHistoricoItem struct {
	TrajetoID      int                 `json:"trajetoId"`
	NomeRota       string              `json:"nomeRota"`
	TipoResiduo    string              `json:"tipoResiduo"`
	TipoColeta     string              `json:"tipoColeta"`
	DataInicio     string              `json:"dataInicio"`
	DataFim        string              `json:"dataFim"`
	NomeMotorista  string              `json:"nomeMotorista"`
	PlacaCaminhao  string              `json:"placaCaminhao"`
	DistanciaTotal float64             `json:"distanciaTotal"`
	Status         string              `json:"status"`
	Rota           []models.Coordenada `json:"rota"`
}

// diaSemanaNames maps the routing service's weekday enum to display
// names. Unknown values pass through verbatim so new upstream values
// do not break the portal.
var diaSemanaNames = map[string]string{
	"DOMINGO": "Domingo",
	"SEGUNDA": "Segunda",
	"TERCA":   "Terça",
	"QUARTA":  "Quarta",
	"QUINTA":  "Quinta",
	"SEXTA":   "Sexta",
	"SABADO":  "Sábado",
}

// NewRotasClient creates a client for the routing service base URL.
func NewRotasClient(baseURL string) *RotasClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &RotasClient{client: client}
}

// GetAgenda fetches the weekly collection schedule for a coordinate
// pair. A 401 surfaces as ErrSessionExpired; 400 and 404 normalize to
// an empty schedule.
func (c *RotasClient) GetAgenda(ctx context.Context, token string, latitude, longitude float64) ([]models.DiaColeta, error) {
	var items []rotasAgendaItem
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParam("latitude", fmt.Sprintf("%v", latitude)).
		SetQueryParam("longitude", fmt.Sprintf("%v", longitude)).
		SetResult(&items).
		Get("/api/consulta/agenda-coleta/coordenadas")
	if err != nil {
		return nil, fmt.Errorf("failed to reach routing service: %w", err)
	}

	if err := c.checkStatus(resp.StatusCode(), "agenda-coleta"); err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return []models.DiaColeta{}, nil
	}

	dias := make([]models.DiaColeta, 0, len(items))
	for _, it := range items {
		dia := it.DiaSemana
		if name, ok := diaSemanaNames[it.DiaSemana]; ok {
			dia = name
		}

		periodo := it.DescricaoPeriodo
		if periodo == "" {
			periodo = it.Periodo
		}

		tipos := make([]string, 0, 2)
		for _, t := range []string{it.TipoResiduo, it.TipoColeta} {
			if t != "" {
				tipos = append(tipos, t)
			}
		}

		dias = append(dias, models.DiaColeta{Dia: dia, Periodo: periodo, Tipos: tipos})
	}
	return dias, nil
}

// GetHistorico fetches past truck passages for a coordinate pair,
// normalized to day/minute granularity and sorted most recent first.
// Same status policy as GetAgenda.
func (c *RotasClient) GetHistorico(ctx context.Context, token string, latitude, longitude float64) ([]models.HistoricoItem, error) {
	var items []rotasHistoricoItem
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParam("latitude", fmt.Sprintf("%v", latitude)).
		SetQueryParam("longitude", fmt.Sprintf("%v", longitude)).
		SetResult(&items).
		Get("/api/consulta/historico-coleta/coordenadas")
	if err != nil {
		return nil, fmt.Errorf("failed to reach routing service: %w", err)
	}

	if err := c.checkStatus(resp.StatusCode(), "historico-coleta"); err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return []models.HistoricoItem{}, nil
	}

	historico := make([]models.HistoricoItem, 0, len(items))
	for _, it := range items {
		tipo := it.TipoResiduo
		if tipo == "" {
			tipo = it.TipoColeta
		}

		data, hora := splitDataHora(it.DataInicio)
		historico = append(historico, models.HistoricoItem{
			Data: data,
			Hora: hora,
			Tipo: tipo,
			Rota: it.Rota,
		})
	}

	sort.SliceStable(historico, func(i, j int) bool {
		return historico[i].Data > historico[j].Data
	})
	return historico, nil
}

// checkStatus applies the shared error policy. 400 and 404 are left
// for the caller to turn into empty results: the routing service
// answers both "no route covers this point" and malformed coordinates
// the same way, so the 400 case gets its own log line to keep genuine
// request bugs visible.
func (c *RotasClient) checkStatus(status int, endpoint string) error {
	switch {
	case status == http.StatusUnauthorized:
		return ErrSessionExpired
	case status == http.StatusBadRequest:
		log.Printf("⚠️  Routing service rejected %s request as bad (400), returning empty result", endpoint)
		return nil
	case status == http.StatusNotFound, status == http.StatusOK:
		return nil
	case status >= 300:
		return &UpstreamError{Status: status}
	}
	return nil
}

// splitDataHora truncates an ISO timestamp to a YYYY-MM-DD date and an
// HH:MM time. Timestamps without an offset are taken as-is.
func splitDataHora(iso string) (string, string) {
	ts, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		ts, err = time.Parse("2006-01-02T15:04:05", iso)
	}
	if err != nil {
		return iso, ""
	}
	return ts.Format("2006-01-02"), ts.Format("15:04")
}
