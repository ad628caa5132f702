package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"parko/internal/api"
	"parko/internal/auth"
	"parko/internal/config"
	"parko/internal/db"
	"parko/internal/khalti"
	"parko/internal/repository"
	"parko/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	database, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(database)
	slotRepo := repository.NewSlotRepository(database)
	bookingRepo := repository.NewBookingRepository(database)
	paymentRepo := repository.NewPaymentRepository(database)
	ratingRepo := repository.NewRatingRepository(database)

	gateway := khalti.NewClient(cfg.KhaltiBaseURL, cfg.KhaltiSecretKey, cfg.PaymentReturnURL, cfg.PaymentWebsiteURL)

	userSvc := service.NewUserService(userRepo, cfg.JWTSecret)
	slotSvc := service.NewSlotService(slotRepo, bookingRepo, ratingRepo)
	bookingSvc := service.NewBookingService(slotRepo, bookingRepo, paymentRepo, gateway, ratingRepo)
	ratingSvc := service.NewRatingService(bookingRepo, ratingRepo)
	sender := service.NewSenderService(bookingRepo, slotRepo, userRepo)
	reconciler := service.NewReconciler(gateway, paymentRepo, bookingRepo, sender)

	userHandler := api.NewUserHandler(userSvc)
	slotHandler := api.NewSlotHandler(slotSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)
	ratingHandler := api.NewRatingHandler(ratingSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/register", userHandler.Register).Methods("POST")
	r.HandleFunc("/api/login", userHandler.Login).Methods("POST")

	// Authenticated endpoints
	authed := r.PathPrefix("/api").Subrouter()
	authed.Use(auth.Middleware(cfg.JWTSecret))
	authed.HandleFunc("/user", userHandler.Me).Methods("GET")
	authed.HandleFunc("/user", userHandler.Update).Methods("PUT")
	authed.HandleFunc("/parkslots", slotHandler.Create).Methods("POST")
	authed.HandleFunc("/parkslots", slotHandler.List).Methods("GET")
	authed.HandleFunc("/parkslots/mine", slotHandler.Mine).Methods("GET")
	authed.HandleFunc("/parkslots/{id:[0-9]+}", slotHandler.Get).Methods("GET")
	authed.HandleFunc("/parkslots/{id:[0-9]+}", slotHandler.Update).Methods("PUT")
	authed.HandleFunc("/parkslots/{id:[0-9]+}", slotHandler.Delete).Methods("DELETE")
	authed.HandleFunc("/parkslots/{id:[0-9]+}/bookings", bookingHandler.SlotBookings).Methods("GET")
	authed.HandleFunc("/bookings", bookingHandler.Create).Methods("POST")
	authed.HandleFunc("/bookings", bookingHandler.MyBookings).Methods("GET")
	authed.HandleFunc("/ratings", ratingHandler.Rate).Methods("POST")

	// The reconciler and cleanup run on their own schedule for the life of
	// the process.
	c := cron.New()
	if _, err := c.AddFunc(cfg.ReconcileSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := reconciler.Tick(ctx); err != nil {
			log.Printf("Reconciler tick failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule reconciler: %v", err)
	}
	if _, err := c.AddFunc("@daily", func() {
		if err := service.CleanupStaleBookings(bookingRepo, 24*time.Hour); err != nil {
			log.Printf("Stale booking cleanup failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule cleanup: %v", err)
	}
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handlers.LoggingHandler(log.Writer(), corsHandler(r))))
}
