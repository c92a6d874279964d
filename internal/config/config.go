package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config aggregates application configuration values.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	Lookup      LookupConfig
	Municipio   MunicipioConfig
	Rotas       RotasConfig
	Firebase    FirebaseConfig
}

// LookupConfig points at the external address-lookup services.
type LookupConfig struct {
	ViaCEPURL  string
	GeocodeURL string
}

// MunicipioConfig is the municipality allow-list applied before any
// profile with a city/state is persisted.
type MunicipioConfig struct {
	Restrict bool
	Cidade   string
	Estado   string
}

// RotasConfig describes the upstream collection-routing service.
// ServiceToken authenticates server-initiated calls (reminder
// dispatch); resident-initiated calls forward the resident's own token.
type RotasConfig struct {
	BaseURL      string
	ServiceToken string
}

// FirebaseConfig carries FCM credentials, either a file path or a
// base64-encoded service account (cloud deployments).
type FirebaseConfig struct {
	CredentialsFile   string
	CredentialsBase64 string
}

const (
	defaultPort       = "8080"
	defaultViaCEPURL  = "https://viacep.com.br/ws"
	defaultGeocodeURL = "https://rotas-api-yqsi.onrender.com/api/utils/geocode"
	defaultRotasURL   = "https://rotas-api-yqsi.onrender.com"
	defaultCidade     = "Pato Branco"
	defaultEstado     = "PR"
)

// Load reads configuration from environment variables, applying
// defaults for everything except the secrets.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", defaultPort),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("APP_JWT_SECRET"),
		Lookup: LookupConfig{
			ViaCEPURL:  getEnv("VIACEP_URL", defaultViaCEPURL),
			GeocodeURL: getEnv("GEOCODE_URL", defaultGeocodeURL),
		},
		Municipio: MunicipioConfig{
			Restrict: getEnvBool("RESTRICT_TO_CITY", true),
			Cidade:   getEnv("ALLOWED_CITY", defaultCidade),
			Estado:   getEnv("ALLOWED_STATE", defaultEstado),
		},
		Rotas: RotasConfig{
			BaseURL:      getEnv("BACKEND_API_URL", defaultRotasURL),
			ServiceToken: os.Getenv("BACKEND_API_TOKEN"),
		},
		Firebase: FirebaseConfig{
			CredentialsFile:   getEnv("FIREBASE_CREDENTIALS_FILE", "./firebase-service-account.json"),
			CredentialsBase64: os.Getenv("FIREBASE_CREDENTIALS_BASE64"),
		},
	}

	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("APP_JWT_SECRET environment variable is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
