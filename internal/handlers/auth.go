package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"coleta-portal/internal/middleware"
	"coleta-portal/internal/models"
	"coleta-portal/pkg/utils"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	OK    bool                 `json:"ok"`
	Token string               `json:"token,omitempty"`
	User  *models.UserResponse `json:"user,omitempty"`
}

func generateToken(user *models.User) (string, error) {
	jwtSecret := os.Getenv("APP_JWT_SECRET")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(jwtSecret))
}

// Register creates a resident account and signs it in.
func Register(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.Email == "" || req.Password == "" || req.Name == "" {
			utils.RespondError(w, http.StatusBadRequest, "Email, password and name are required")
			return
		}

		var existing models.User
		err := db.Get(&existing, "SELECT id FROM users WHERE email = $1", req.Email)
		if err == nil {
			log.Printf("❌ User already exists: %s", req.Email)
			utils.RespondError(w, http.StatusConflict, "Já existe uma conta com este email")
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		now := time.Now().Unix()
		user := models.User{
			ID:        uuid.New().String(),
			Email:     req.Email,
			Password:  string(hashed),
			Name:      req.Name,
			Role:      "morador",
			CreatedAt: now,
			UpdatedAt: now,
		}

		_, err = db.Exec(
			`INSERT INTO users (id, email, password, name, role, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			user.ID, user.Email, user.Password, user.Name, user.Role, user.CreatedAt, user.UpdatedAt,
		)
		if err != nil {
			log.Printf("❌ Failed to create user: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create user")
			return
		}

		tokenString, err := generateToken(&user)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create token")
			return
		}

		userResponse := user.ToUserResponse()
		log.Printf("✅ Account created: %s", user.Email)
		utils.RespondJSON(w, http.StatusCreated, AuthResponse{
			OK:    true,
			Token: tokenString,
			User:  &userResponse,
		})
	}
}

// Login authenticates a resident by email/password and returns a JWT.
func Login(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		var user models.User
		err := db.Get(&user, "SELECT * FROM users WHERE email = $1", strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil {
			log.Printf("❌ User not found: %s", req.Email)
			utils.RespondJSON(w, http.StatusUnauthorized, AuthResponse{OK: false})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			log.Printf("❌ Invalid password for: %s", req.Email)
			utils.RespondJSON(w, http.StatusUnauthorized, AuthResponse{OK: false})
			return
		}

		tokenString, err := generateToken(&user)
		if err != nil {
			log.Println("❌ Failed to create token")
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create token")
			return
		}

		userResponse := user.ToUserResponse()
		log.Printf("✅ Login successful: %s", user.Email)
		utils.RespondJSON(w, http.StatusOK, AuthResponse{
			OK:    true,
			Token: tokenString,
			User:  &userResponse,
		})
	}
}

// GetAuthStatus returns the account behind the presented token.
func GetAuthStatus(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var user models.User
		if err := db.Get(&user, "SELECT * FROM users WHERE id = $1", claims.UserID); err != nil {
			utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		userResponse := user.ToUserResponse()
		utils.RespondJSON(w, http.StatusOK, AuthResponse{OK: true, User: &userResponse})
	}
}

// Logout acknowledges a sign-out. Tokens are stateless, so the effect
// is the client discarding its copy; the response makes that explicit.
func Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success":         true,
			"session_cleared": true,
		})
	}
}
