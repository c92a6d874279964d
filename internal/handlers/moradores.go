package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"coleta-portal/internal/database"
	"coleta-portal/internal/middleware"
	"coleta-portal/internal/models"
	"coleta-portal/internal/services"
	"coleta-portal/pkg/utils"
)

type MoradorRequest struct {
	Nome        string `json:"nome"`
	CPF         string `json:"cpf"`
	Telefone    string `json:"telefone"`
	Endereco    string `json:"endereco"`
	Numero      string `json:"numero"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Cidade      string `json:"cidade"`
	Estado      string `json:"estado"`
	CEP         string `json:"cep"`
	Latitude    string `json:"latitude"`
	Longitude   string `json:"longitude"`
}

// UpdateMoradorRequest uses pointers so a PATCH can tell "clear this
// field" apart from "leave it alone".
type UpdateMoradorRequest struct {
	Nome        *string `json:"nome"`
	CPF         *string `json:"cpf"`
	Telefone    *string `json:"telefone"`
	Endereco    *string `json:"endereco"`
	Numero      *string `json:"numero"`
	Complemento *string `json:"complemento"`
	Bairro      *string `json:"bairro"`
	Cidade      *string `json:"cidade"`
	Estado      *string `json:"estado"`
	CEP         *string `json:"cep"`
	Latitude    *string `json:"latitude"`
	Longitude   *string `json:"longitude"`
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// GetMorador returns the caller's resident profile.
func GetMorador(store database.MoradorStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		morador, err := store.GetByUserID(claims.UserID)
		if errors.Is(err, sql.ErrNoRows) {
			utils.RespondError(w, http.StatusNotFound, "Perfil de morador não encontrado")
			return
		}
		if err != nil {
			log.Printf("❌ Failed to load morador: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to load profile")
			return
		}

		utils.RespondJSON(w, http.StatusOK, morador.ToMoradorResponse())
	}
}

// CreateMorador creates the caller's resident profile. Each account
// gets exactly one, and the municipality gate runs before anything is
// written.
func CreateMorador(store database.MoradorStore, resolver *services.AddressResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req MoradorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Nome == "" || req.Endereco == "" || req.Cidade == "" {
			utils.RespondError(w, http.StatusBadRequest, "Nome, endereço e cidade são obrigatórios")
			return
		}
		if len(strings.TrimSpace(req.Estado)) != 2 {
			utils.RespondError(w, http.StatusBadRequest, "Estado deve ter 2 caracteres")
			return
		}

		if err := resolver.CheckCity(req.Cidade, req.Estado); err != nil {
			log.Printf("❌ City gate rejected profile: %v", err)
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		if _, err := store.GetByUserID(claims.UserID); err == nil {
			utils.RespondError(w, http.StatusConflict, "Perfil de morador já existe")
			return
		} else if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("❌ Failed to check existing morador: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create profile")
			return
		}

		morador := &models.Morador{
			UserID:      claims.UserID,
			Nome:        req.Nome,
			CPF:         nullString(req.CPF),
			Telefone:    nullString(req.Telefone),
			Endereco:    req.Endereco,
			Numero:      nullString(req.Numero),
			Complemento: nullString(req.Complemento),
			Bairro:      nullString(req.Bairro),
			Cidade:      req.Cidade,
			Estado:      strings.ToUpper(strings.TrimSpace(req.Estado)),
			CEP:         nullString(services.CleanCEP(req.CEP)),
			Latitude:    nullString(req.Latitude),
			Longitude:   nullString(req.Longitude),
		}

		created, err := store.Create(morador)
		if err != nil {
			log.Printf("❌ Failed to create morador: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create profile")
			return
		}

		log.Printf("✅ Morador profile created for user %s", claims.UserID)
		utils.RespondJSON(w, http.StatusCreated, created.ToMoradorResponse())
	}
}

// UpdateMorador applies a partial update to a profile the caller owns.
func UpdateMorador(store database.MoradorStore, resolver *services.AddressResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid profile id")
			return
		}

		var req UpdateMoradorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		morador, err := store.GetByID(id)
		if errors.Is(err, sql.ErrNoRows) {
			utils.RespondError(w, http.StatusNotFound, "Perfil de morador não encontrado")
			return
		}
		if err != nil {
			log.Printf("❌ Failed to load morador %d: %v", id, err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to update profile")
			return
		}

		if morador.UserID != claims.UserID {
			log.Printf("❌ User %s tried to update morador %d owned by %s", claims.UserID, id, morador.UserID)
			utils.RespondError(w, http.StatusForbidden, "Você não tem permissão para atualizar este perfil")
			return
		}

		if req.Nome != nil {
			morador.Nome = *req.Nome
		}
		if req.CPF != nil {
			morador.CPF = nullString(*req.CPF)
		}
		if req.Telefone != nil {
			morador.Telefone = nullString(*req.Telefone)
		}
		if req.Endereco != nil {
			morador.Endereco = *req.Endereco
		}
		if req.Numero != nil {
			morador.Numero = nullString(*req.Numero)
		}
		if req.Complemento != nil {
			morador.Complemento = nullString(*req.Complemento)
		}
		if req.Bairro != nil {
			morador.Bairro = nullString(*req.Bairro)
		}
		if req.Cidade != nil {
			morador.Cidade = *req.Cidade
		}
		if req.Estado != nil {
			if len(strings.TrimSpace(*req.Estado)) != 2 {
				utils.RespondError(w, http.StatusBadRequest, "Estado deve ter 2 caracteres")
				return
			}
			morador.Estado = strings.ToUpper(strings.TrimSpace(*req.Estado))
		}
		if req.CEP != nil {
			morador.CEP = nullString(services.CleanCEP(*req.CEP))
		}
		if req.Latitude != nil {
			morador.Latitude = nullString(*req.Latitude)
		}
		if req.Longitude != nil {
			morador.Longitude = nullString(*req.Longitude)
		}

		// Gate runs on the merged record so an update can never move a
		// profile outside the served municipality.
		if err := resolver.CheckCity(morador.Cidade, morador.Estado); err != nil {
			log.Printf("❌ City gate rejected update: %v", err)
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := store.Update(morador); err != nil {
			log.Printf("❌ Failed to update morador %d: %v", id, err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to update profile")
			return
		}

		utils.RespondJSON(w, http.StatusOK, morador.ToMoradorResponse())
	}
}

// DeleteMorador removes the caller's profile. The response tells the
// client to drop its session credentials as well.
func DeleteMorador(store database.MoradorStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		err := store.Delete(claims.UserID)
		if errors.Is(err, sql.ErrNoRows) {
			utils.RespondError(w, http.StatusNotFound, "Perfil de morador não encontrado")
			return
		}
		if err != nil {
			log.Printf("❌ Failed to delete morador: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to delete profile")
			return
		}

		log.Printf("✅ Morador profile deleted for user %s", claims.UserID)
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success":         true,
			"session_cleared": true,
		})
	}
}

// RegisterFCMToken stores the device token used for collection-day
// reminders.
func RegisterFCMToken(store database.MoradorStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
			utils.RespondError(w, http.StatusBadRequest, "Token is required")
			return
		}

		err := store.SetFCMToken(claims.UserID, req.Token)
		if errors.Is(err, sql.ErrNoRows) {
			utils.RespondError(w, http.StatusNotFound, "Perfil de morador não encontrado")
			return
		}
		if err != nil {
			log.Printf("❌ Failed to store FCM token: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to store token")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}
