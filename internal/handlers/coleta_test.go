package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coleta-portal/internal/database"
	"coleta-portal/internal/models"
	"coleta-portal/internal/services"
)

func fakeRotas(t *testing.T, handler http.HandlerFunc) *services.RotasClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return services.NewRotasClient(srv.URL)
}

func TestGetAgendaRequiresCompleteProfile(t *testing.T) {
	store := database.NewMemoryMoradorStore()
	rotas := fakeRotas(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("routing service must not be called without coordinates")
	})

	// No profile at all.
	w := httptest.NewRecorder()
	GetAgenda(store, rotas)(w, authedRequest(http.MethodGet, "/api/coleta/agenda", "", "user-1"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Complete seu perfil")

	// Profile without coordinates.
	store.Create(&models.Morador{
		UserID:   "user-2",
		Nome:     "Maria",
		Endereco: "Rua Caramuru",
		Cidade:   "Pato Branco",
		Estado:   "PR",
	})
	w = httptest.NewRecorder()
	GetAgenda(store, rotas)(w, authedRequest(http.MethodGet, "/api/coleta/agenda", "", "user-2"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func seedProfileWithCoords(t *testing.T, store database.MoradorStore, userID string) {
	t.Helper()
	_, err := store.Create(&models.Morador{
		UserID:    userID,
		Nome:      "João",
		Endereco:  "Rua Itabira",
		Numero:    nullString("1100"),
		Cidade:    "Pato Branco",
		Estado:    "PR",
		Latitude:  nullString("-26.2295"),
		Longitude: nullString("-52.6716"),
	})
	require.NoError(t, err)
}

func TestGetAgendaHappyPath(t *testing.T) {
	store := database.NewMemoryMoradorStore()
	seedProfileWithCoords(t, store, "user-1")

	rotas := fakeRotas(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"tipoResiduo":"Orgânico","tipoColeta":"Convencional","diaSemana":"QUINTA","periodo":"MANHA","descricaoPeriodo":"Manhã"}]`))
	})

	req := authedRequest(http.MethodGet, "/api/coleta/agenda", "", "user-1")
	req.Header.Set("Authorization", "Bearer resident-token")
	w := httptest.NewRecorder()
	GetAgenda(store, rotas)(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.AgendaColeta
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Rua Itabira, 1100", resp.Endereco)
	require.Len(t, resp.DiasColeta, 1)
	assert.Equal(t, "Quinta", resp.DiasColeta[0].Dia)
}

func TestGetHistoricoSessionExpired(t *testing.T) {
	store := database.NewMemoryMoradorStore()
	seedProfileWithCoords(t, store, "user-1")

	rotas := fakeRotas(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	w := httptest.NewRecorder()
	GetHistorico(store, rotas)(w, authedRequest(http.MethodGet, "/api/coleta/historico", "", "user-1"))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// The response explicitly tells the client to clear its session.
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["session_expired"])
}

func TestGetHistoricoNoData(t *testing.T) {
	store := database.NewMemoryMoradorStore()
	seedProfileWithCoords(t, store, "user-1")

	rotas := fakeRotas(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	GetHistorico(store, rotas)(w, authedRequest(http.MethodGet, "/api/coleta/historico", "", "user-1"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.HistoricoColeta
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Historico)
}

func TestGetCalendario(t *testing.T) {
	store := database.NewMemoryMoradorStore()
	seedProfileWithCoords(t, store, "user-1")

	rotas := fakeRotas(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"tipoResiduo":"Reciclável","diaSemana":"QUARTA","periodo":"TARDE","descricaoPeriodo":"Tarde"}]`))
	})

	w := httptest.NewRecorder()
	GetCalendario(store, rotas)(w, authedRequest(http.MethodGet, "/api/coleta/calendario?ano=2025&mes=8", "", "user-1"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp CalendarioResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2025, resp.Ano)
	assert.Equal(t, 8, resp.Mes)
	require.Len(t, resp.Dias, 42)

	// Wednesdays of August 2025 carry the recycling schedule.
	matched := 0
	for _, d := range resp.Dias {
		if d.IsCurrentMonth && len(d.Tipos) > 0 {
			assert.Equal(t, []string{"Reciclável"}, d.Tipos)
			assert.Equal(t, "Tarde", d.Periodo)
			matched++
		}
	}
	assert.Equal(t, 4, matched) // Aug 2025 has four Wednesdays
}

func TestGetCalendarioRejectsBadMonth(t *testing.T) {
	store := database.NewMemoryMoradorStore()
	seedProfileWithCoords(t, store, "user-1")
	rotas := fakeRotas(t, func(w http.ResponseWriter, r *http.Request) {})

	w := httptest.NewRecorder()
	GetCalendario(store, rotas)(w, authedRequest(http.MethodGet, "/api/coleta/calendario?ano=2025&mes=13", "", "user-1"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
