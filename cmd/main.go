package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	availabilityTemplatesHandler "github.com/psicoagenda/booking-service/internal/api/handlers/availability_templates"
	cancelBookingHandler "github.com/psicoagenda/booking-service/internal/api/handlers/cancel_booking"
	confirmPaymentHandler "github.com/psicoagenda/booking-service/internal/api/handlers/confirm_payment"
	createBookingHandler "github.com/psicoagenda/booking-service/internal/api/handlers/create_booking"
	deleteLeadHandler "github.com/psicoagenda/booking-service/internal/api/handlers/delete_lead"
	getAvailableSlotsHandler "github.com/psicoagenda/booking-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/psicoagenda/booking-service/internal/api/handlers/get_booking"
	getLeadHandler "github.com/psicoagenda/booking-service/internal/api/handlers/get_lead"
	getMonthAvailabilityHandler "github.com/psicoagenda/booking-service/internal/api/handlers/get_month_availability"
	getPaymentHandler "github.com/psicoagenda/booking-service/internal/api/handlers/get_payment"
	initiateCheckoutHandler "github.com/psicoagenda/booking-service/internal/api/handlers/initiate_checkout"
	listBookingsHandler "github.com/psicoagenda/booking-service/internal/api/handlers/list_bookings"
	listLeadsHandler "github.com/psicoagenda/booking-service/internal/api/handlers/list_leads"
	processWebhookHandler "github.com/psicoagenda/booking-service/internal/api/handlers/process_webhook"
	updateBookingStatusHandler "github.com/psicoagenda/booking-service/internal/api/handlers/update_booking_status"
	updateLeadStatusHandler "github.com/psicoagenda/booking-service/internal/api/handlers/update_lead_status"
	"github.com/psicoagenda/booking-service/internal/api/middleware"
	"github.com/psicoagenda/booking-service/internal/config"
	availabilityRepo "github.com/psicoagenda/booking-service/internal/infra/storage/availability"
	bookingRepo "github.com/psicoagenda/booking-service/internal/infra/storage/booking"
	leadRepo "github.com/psicoagenda/booking-service/internal/infra/storage/lead"
	patientRepo "github.com/psicoagenda/booking-service/internal/infra/storage/patient"
	"github.com/psicoagenda/booking-service/internal/integrations/mailer"
	"github.com/psicoagenda/booking-service/internal/integrations/mercadopago"
	bookingsService "github.com/psicoagenda/booking-service/internal/service/bookings"
	leadsService "github.com/psicoagenda/booking-service/internal/service/leads"
	materializerService "github.com/psicoagenda/booking-service/internal/service/materializer"
	scheduleService "github.com/psicoagenda/booking-service/internal/service/schedule"
	confirmPaymentUC "github.com/psicoagenda/booking-service/internal/usecase/confirm_payment"
	createBookingUC "github.com/psicoagenda/booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/psicoagenda/booking-service/internal/usecase/get_available_slots"
	getMonthAvailabilityUC "github.com/psicoagenda/booking-service/internal/usecase/get_month_availability"
	initiateCheckoutUC "github.com/psicoagenda/booking-service/internal/usecase/initiate_checkout"
	processWebhookUC "github.com/psicoagenda/booking-service/internal/usecase/process_webhook"
	"github.com/psicoagenda/booking-service/pkg/dbmetrics"
	"github.com/psicoagenda/booking-service/pkg/logger"
	"github.com/psicoagenda/booking-service/pkg/metrics"
	"github.com/psicoagenda/booking-service/pkg/simpletxmanager"
	"github.com/psicoagenda/booking-service/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting psicoagenda booking service...")

	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Integration clients
	paymentClient := mercadopago.NewClient(
		cfg.MercadoPago.BaseURL,
		cfg.MercadoPago.AccessToken,
		time.Duration(cfg.MercadoPago.Timeout)*time.Second,
		log,
	)
	mailerClient := mailer.NewClient(
		cfg.Mailer.URL,
		time.Duration(cfg.Mailer.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (MercadoPago=%s, Mailer=%s)",
		cfg.MercadoPago.BaseURL, cfg.Mailer.URL)

	// Repositories and transaction manager, with or without DB metrics
	var (
		bookingRepository      *bookingRepo.Repository
		leadRepository         *leadRepo.Repository
		patientRepository      *patientRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		txMgr                  *txmanager.TransactionManager
	)
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		leadRepository = leadRepo.NewRepository(wrappedDB)
		patientRepository = patientRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		leadRepository = leadRepo.NewRepository(db)
		patientRepository = patientRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	pricing := createBookingUC.Pricing{
		Single:         cfg.Pricing.Single,
		MonthlyPackage: cfg.Pricing.MonthlyPackage,
		AnnualPackage:  cfg.Pricing.AnnualPackage,
	}

	// Services
	materializer := materializerService.New(bookingRepository, txMgr, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	leadSvc := leadsService.NewService(leadRepository, log)
	scheduleSvc := scheduleService.NewService(availabilityRepository, log)

	if err := scheduleSvc.SeedDefaults(context.Background()); err != nil {
		log.Warn("Failed to seed availability templates: %v", err)
	}

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(bookingRepository, log)
	getMonthAvailabilityUseCase := getMonthAvailabilityUC.NewUseCase(bookingRepository, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		patientRepository,
		materializer,
		pricing,
		log,
	)
	initiateCheckoutUseCase := initiateCheckoutUC.NewUseCase(
		bookingRepository,
		leadRepository,
		patientRepository,
		paymentClient,
		pricing,
		initiateCheckoutUC.CheckoutURLs{
			NotificationURL: cfg.MercadoPago.WebhookURL,
			SuccessURL:      cfg.Checkout.SuccessURL,
			PendingURL:      cfg.Checkout.PendingURL,
			FailureURL:      cfg.Checkout.FailureURL,
		},
		log,
	)
	processWebhookUseCase := processWebhookUC.NewUseCase(
		bookingRepository,
		leadRepository,
		patientRepository,
		paymentClient,
		mailerClient,
		materializer,
		txMgr,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		bookingRepository,
		patientRepository,
		mailerClient,
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getMonthAvailability := getMonthAvailabilityHandler.NewHandler(getMonthAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	initiateCheckout := initiateCheckoutHandler.NewHandler(initiateCheckoutUseCase, log)
	processWebhook := processWebhookHandler.NewHandler(processWebhookUseCase, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log)
	getPayment := getPaymentHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	listLeads := listLeadsHandler.NewHandler(leadSvc, log)
	getLead := getLeadHandler.NewHandler(leadSvc, log)
	updateLeadStatus := updateLeadStatusHandler.NewHandler(leadSvc, log)
	deleteLead := deleteLeadHandler.NewHandler(leadSvc, log)
	availabilityTemplates := availabilityTemplatesHandler.NewHandler(scheduleSvc, log)

	// Router
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public booking flow
	api.HandleFunc("/slots/available", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/calendar/availability", getMonthAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/checkout", initiateCheckout.Handle).Methods(http.MethodPost)
	api.HandleFunc("/payments/webhook", processWebhook.Handle).Methods(http.MethodPost)

	// Admin panel
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	api.HandleFunc("/payments/confirm-manual", confirmPayment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/payments/{bookingId}", getPayment.Handle).Methods(http.MethodGet)

	api.HandleFunc("/leads", listLeads.Handle).Methods(http.MethodGet)
	api.HandleFunc("/leads/{leadId}", getLead.Handle).Methods(http.MethodGet)
	api.HandleFunc("/leads/{leadId}/status", updateLeadStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/leads/{leadId}", deleteLead.Handle).Methods(http.MethodDelete)

	api.HandleFunc("/availability", availabilityTemplates.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/availability/{weekday}", availabilityTemplates.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/availability/{weekday}", availabilityTemplates.HandleConfigure).Methods(http.MethodPut)
	api.HandleFunc("/availability/{weekday}", availabilityTemplates.HandleDeactivate).Methods(http.MethodDelete)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
