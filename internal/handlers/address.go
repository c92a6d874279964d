package handlers

import (
	"errors"
	"log"
	"net/http"

	"coleta-portal/internal/services"
	"coleta-portal/pkg/utils"
)

// LookupAddress handles GET /api/address/lookup?cep=...&numero=...
// It runs the full CEP → street address → coordinates pipeline used by
// the signup and profile forms. Missing coordinates are a valid
// outcome, a missing address is not.
func LookupAddress(resolver *services.AddressResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cep := r.URL.Query().Get("cep")
		numero := r.URL.Query().Get("numero")
		if cep == "" {
			utils.RespondError(w, http.StatusBadRequest, "CEP é obrigatório")
			return
		}

		resolved, err := resolver.Resolve(r.Context(), cep, numero)
		if errors.Is(err, services.ErrInvalidCEP) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, services.ErrCEPNotFound) {
			utils.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			log.Printf("❌ Address lookup failed: %v", err)
			utils.RespondError(w, http.StatusBadGateway, "Erro ao buscar CEP")
			return
		}

		utils.RespondJSON(w, http.StatusOK, resolved)
	}
}

// GeocodeProxy handles GET /api/utils/geocode?q=... by forwarding the
// free-text query to the geocoding proxy, mirroring the endpoint the
// frontend map picker already consumes.
func GeocodeProxy(geocoder *services.GeocodingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if query == "" {
			utils.RespondError(w, http.StatusBadRequest, "Query parameter q is required")
			return
		}

		results, err := geocoder.Geocode(r.Context(), query)
		if err != nil {
			log.Printf("❌ Geocode proxy failed: %v", err)
			utils.RespondError(w, http.StatusBadGateway, "Erro ao geocodificar endereço")
			return
		}

		utils.RespondJSON(w, http.StatusOK, results)
	}
}
