package main

import (
	"log"
	"net/http"

	"coleta-portal/internal/config"
	"coleta-portal/internal/database"
	"coleta-portal/internal/handlers"
	"coleta-portal/internal/middleware"
	"coleta-portal/internal/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("🚛 COLETA PORTAL BACKEND STARTING")
	log.Println("═══════════════════════════════════════════════════════════════════")

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using environment variables from system")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}
	log.Println("✅ Configuration loaded")

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	defer db.Close()
	log.Println("✅ Database connection established")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ Database migrations failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	if err := database.SeedAdmin(db); err != nil {
		log.Fatalf("❌ Admin seeding failed: %v", err)
	}

	// External services
	moradores := database.NewPostgresMoradorStore(db)
	viacep := services.NewViaCEPService(cfg.Lookup.ViaCEPURL)
	geocoder := services.NewGeocodingService(cfg.Lookup.GeocodeURL)
	resolver := services.NewAddressResolver(viacep, geocoder, cfg.Municipio)
	rotas := services.NewRotasClient(cfg.Rotas.BaseURL)

	if cfg.Municipio.Restrict {
		log.Printf("✅ Municipality gate enabled: %s - %s", cfg.Municipio.Cidade, cfg.Municipio.Estado)
	} else {
		log.Println("⚠️  Municipality gate disabled, accepting any city")
	}

	// Firebase Cloud Messaging for collection-day reminders. Supports
	// both a credentials file and base64-encoded credentials (for
	// Railway/cloud deployments). Optional: the portal works without it.
	var fcmService *services.FCMService
	if cfg.Firebase.CredentialsBase64 != "" {
		fcmService, err = services.NewFCMServiceFromBase64(cfg.Firebase.CredentialsBase64)
	} else {
		fcmService, err = services.NewFCMService(cfg.Firebase.CredentialsFile)
	}
	if err != nil {
		log.Printf("⚠️  Failed to initialize FCM: %v (reminders disabled)", err)
		fcmService = nil
	} else {
		log.Println("✅ Firebase Cloud Messaging initialized")
	}

	var reminderService *services.ReminderService
	if fcmService != nil {
		reminderService = services.NewReminderService(moradores, rotas, fcmService, cfg.Rotas.ServiceToken)
	}

	// Create router
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		// Authentication (no auth required)
		r.Post("/auth/register", handlers.Register(db))
		r.Post("/auth/login", handlers.Login(db))

		// Address lookup for signup/profile forms (no auth required,
		// mirrors the frontend flow where the address is resolved
		// before the account has a profile)
		r.Get("/address/lookup", handlers.LookupAddress(resolver))
		r.Get("/utils/geocode", handlers.GeocodeProxy(geocoder))

		// Resident endpoints (require authentication)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)

			r.Get("/auth/status", handlers.GetAuthStatus(db))
			r.Post("/auth/logout", handlers.Logout())

			// Profile management
			r.Get("/morador", handlers.GetMorador(moradores))
			r.Post("/morador", handlers.CreateMorador(moradores, resolver))
			r.Patch("/morador/{id}", handlers.UpdateMorador(moradores, resolver))
			r.Delete("/morador", handlers.DeleteMorador(moradores))
			r.Post("/morador/fcm-token", handlers.RegisterFCMToken(moradores))

			// Collection queries (proxied to the routing service)
			r.Get("/coleta/agenda", handlers.GetAgenda(moradores, rotas))
			r.Get("/coleta/historico", handlers.GetHistorico(moradores, rotas))
			r.Get("/coleta/calendario", handlers.GetCalendario(moradores, rotas))
		})

		// Manager endpoints (require authentication + admin role)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)
			r.Use(middleware.RequireRole("admin"))

			r.Post("/manager/reminders/send", handlers.SendReminders(reminderService))
		})
	})

	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("✅ ALL INITIALIZATION COMPLETE")
	log.Printf("🚛 Server starting on http://localhost:%s", cfg.Port)
	log.Println("═══════════════════════════════════════════════════════════════════")

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
