package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"coleta-portal/internal/calendar"
	"coleta-portal/internal/database"
	"coleta-portal/internal/middleware"
	"coleta-portal/internal/models"
	"coleta-portal/internal/services"
	"coleta-portal/pkg/utils"
)

// moradorCoordinates loads the caller's profile and its coordinates,
// writing the appropriate error response when either is missing.
func moradorCoordinates(w http.ResponseWriter, r *http.Request, store database.MoradorStore) (*models.Morador, float64, float64, bool) {
	claims, ok := middleware.GetUserFromContext(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, 0, 0, false
	}

	morador, err := store.GetByUserID(claims.UserID)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !morador.HasCoordinates()) {
		utils.RespondError(w, http.StatusBadRequest,
			"Complete seu perfil com endereço e coordenadas para consultar a coleta")
		return nil, 0, 0, false
	}
	if err != nil {
		log.Printf("❌ Failed to load morador: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to load profile")
		return nil, 0, 0, false
	}

	lat, errLat := strconv.ParseFloat(morador.Latitude.String, 64)
	lon, errLon := strconv.ParseFloat(morador.Longitude.String, 64)
	if errLat != nil || errLon != nil {
		utils.RespondError(w, http.StatusBadRequest,
			"Coordenadas do perfil são inválidas, refaça a busca de endereço")
		return nil, 0, 0, false
	}

	return morador, lat, lon, true
}

// respondRotasError translates routing-service failures. An expired
// session tells the client to clear its local credentials; anything
// else is logged and surfaced as a generic upstream failure.
func respondRotasError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrSessionExpired) {
		utils.RespondJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"success":         false,
			"error":           services.ErrSessionExpired.Error(),
			"session_expired": true,
		})
		return
	}

	var upstream *services.UpstreamError
	if errors.As(err, &upstream) {
		log.Printf("❌ Routing service failure (status %d)", upstream.Status)
		utils.RespondError(w, http.StatusBadGateway, "Erro ao consultar serviço de coleta")
		return
	}

	log.Printf("❌ Routing service unreachable: %v", err)
	utils.RespondError(w, http.StatusBadGateway, "Erro ao consultar serviço de coleta")
}

// GetAgenda handles GET /api/coleta/agenda.
func GetAgenda(store database.MoradorStore, rotas *services.RotasClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		morador, lat, lon, ok := moradorCoordinates(w, r, store)
		if !ok {
			return
		}

		dias, err := rotas.GetAgenda(r.Context(), middleware.BearerToken(r), lat, lon)
		if err != nil {
			respondRotasError(w, err)
			return
		}

		numero := morador.Numero.String
		if numero == "" {
			numero = "S/N"
		}

		utils.RespondJSON(w, http.StatusOK, models.AgendaColeta{
			Endereco:   fmt.Sprintf("%s, %s", morador.Endereco, numero),
			DiasColeta: dias,
		})
	}
}

// GetHistorico handles GET /api/coleta/historico.
func GetHistorico(store database.MoradorStore, rotas *services.RotasClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, lat, lon, ok := moradorCoordinates(w, r, store)
		if !ok {
			return
		}

		historico, err := rotas.GetHistorico(r.Context(), middleware.BearerToken(r), lat, lon)
		if err != nil {
			respondRotasError(w, err)
			return
		}

		utils.RespondJSON(w, http.StatusOK, models.HistoricoColeta{Historico: historico})
	}
}

// CalendarioResponse is the rendered month grid for the frontend.
type CalendarioResponse struct {
	Ano  int            `json:"ano"`
	Mes  int            `json:"mes"`
	Dias []calendar.Day `json:"dias"`
}

// GetCalendario handles GET /api/coleta/calendario?ano=&mes=. It
// projects the weekly agenda onto the requested month, defaulting to
// the current one. The frontend limits navigation to the current and
// next month; the projection itself accepts any pair.
func GetCalendario(store database.MoradorStore, rotas *services.RotasClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, lat, lon, ok := moradorCoordinates(w, r, store)
		if !ok {
			return
		}

		now := time.Now()
		ano := now.Year()
		mes := int(now.Month())
		if v := r.URL.Query().Get("ano"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				utils.RespondError(w, http.StatusBadRequest, "Parâmetro ano inválido")
				return
			}
			ano = parsed
		}
		if v := r.URL.Query().Get("mes"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed < 1 || parsed > 12 {
				utils.RespondError(w, http.StatusBadRequest, "Parâmetro mes inválido")
				return
			}
			mes = parsed
		}

		dias, err := rotas.GetAgenda(r.Context(), middleware.BearerToken(r), lat, lon)
		if err != nil {
			respondRotasError(w, err)
			return
		}

		grid := calendar.Generate(ano, time.Month(mes), dias, now)
		utils.RespondJSON(w, http.StatusOK, CalendarioResponse{
			Ano:  ano,
			Mes:  mes,
			Dias: grid,
		})
	}
}
