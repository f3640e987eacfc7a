package main

import (
	"context"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jamesonvoice/biomedicaldashboard/internal/alerts"
	"github.com/jamesonvoice/biomedicaldashboard/internal/auth"
	"github.com/jamesonvoice/biomedicaldashboard/internal/config"
	"github.com/jamesonvoice/biomedicaldashboard/internal/db"
	"github.com/jamesonvoice/biomedicaldashboard/internal/handlers"
	"github.com/jamesonvoice/biomedicaldashboard/internal/middleware"
	"github.com/jamesonvoice/biomedicaldashboard/internal/models"
	"github.com/jamesonvoice/biomedicaldashboard/internal/notify"
	"github.com/jamesonvoice/biomedicaldashboard/internal/reminders"
)

// alertSweepInterval is how often the background sweep re-checks the fleet for
// overdue payments and licenses entering their renewal window.
const alertSweepInterval = 12 * time.Hour

func main() {
	cfg := config.Load()
	cfg.ConfigureLogging()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := db.ConnectMongo(cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.WithError(err).Warn("mongo disconnect failed")
		}
	}()
	log.Info("connected to MongoDB")

	store := db.NewStore(client, cfg.Database)
	authService := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry)

	publisher := alerts.NewPublisher(cfg.MQTTBrokerURL, cfg.MQTTClientID)
	if publisher.Enabled() {
		if err := publisher.Connect(); err != nil {
			log.WithError(err).Warn("mqtt broker unreachable, will keep retrying in the background")
		}
		defer publisher.Close()
		go sweepAlerts(ctx, store, publisher)
	}

	mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, splitRecipients(cfg.MailTo))

	authHandler := handlers.NewAuthHandler(authService, store.Users)
	equipmentHandler := handlers.NewEquipmentHandler(store.Equipment, store.Service, store.Contracts, store.Documents, publisher)
	serviceHandler := handlers.NewServiceLogHandler(store.Service)
	contractHandler := handlers.NewContractHandler(store.Contracts, store.Equipment)
	directoryHandler := handlers.NewDirectoryHandler(store.Vendors, store.Engineers)
	inventoryHandler := handlers.NewInventoryHandler(store.Parts, store.Documents, publisher)
	paymentHandler := handlers.NewPaymentHandler(store.Equipment, store.Service, store.Reminders)
	reminderHandler := handlers.NewReminderHandler(store.Reminders)
	reportHandler := handlers.NewReportHandler(store.Equipment, store.Service, store.Contracts, store.Parts, store.Reminders, mailer)

	authMW := middleware.NewAuthMiddleware(authService)
	rateMW := middleware.NewRateLimitMiddleware()

	mux := http.NewServeMux()
	perm := func(action string, h http.HandlerFunc) http.Handler {
		return authMW.RequirePermission(action)(h)
	}

	mux.HandleFunc("GET /health", handlers.Health)

	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("GET /api/auth/profile", authHandler.GetProfile)
	mux.HandleFunc("PUT /api/auth/profile", authHandler.UpdateProfile)
	mux.HandleFunc("POST /api/auth/change-password", authHandler.ChangePassword)

	mux.Handle("GET /api/equipment", perm("view_equipment", equipmentHandler.List))
	mux.Handle("POST /api/equipment", perm("edit_equipment", equipmentHandler.Create))
	mux.Handle("GET /api/equipment/{id}", perm("view_equipment", equipmentHandler.Get))
	mux.Handle("PUT /api/equipment/{id}", perm("edit_equipment", equipmentHandler.Update))
	mux.Handle("DELETE /api/equipment/{id}", perm("edit_equipment", equipmentHandler.Delete))
	mux.Handle("POST /api/equipment/{id}/status", perm("edit_equipment", equipmentHandler.SetStatus))
	mux.Handle("GET /api/equipment/{id}/report", perm("view_reports", equipmentHandler.MachineReport))

	mux.Handle("GET /api/service-logs", perm("view_service", serviceHandler.List))
	mux.Handle("POST /api/service-logs", perm("edit_service", serviceHandler.Create))
	mux.Handle("GET /api/service-logs/{id}", perm("view_service", serviceHandler.Get))
	mux.Handle("PUT /api/service-logs/{id}", perm("edit_service", serviceHandler.Update))
	mux.Handle("DELETE /api/service-logs/{id}", perm("edit_service", serviceHandler.Delete))

	mux.Handle("GET /api/contracts", perm("view_contracts", contractHandler.List))
	mux.Handle("POST /api/contracts", perm("edit_contracts", contractHandler.Create))
	mux.Handle("GET /api/contracts/{id}", perm("view_contracts", contractHandler.Get))
	mux.Handle("PUT /api/contracts/{id}", perm("edit_contracts", contractHandler.Update))
	mux.Handle("DELETE /api/contracts/{id}", perm("edit_contracts", contractHandler.Delete))

	mux.Handle("GET /api/vendors", perm("view_equipment", directoryHandler.ListVendors))
	mux.Handle("POST /api/vendors", perm("edit_equipment", directoryHandler.CreateVendor))
	mux.Handle("PUT /api/vendors/{id}", perm("edit_equipment", directoryHandler.UpdateVendor))
	mux.Handle("DELETE /api/vendors/{id}", perm("edit_equipment", directoryHandler.DeleteVendor))

	mux.Handle("GET /api/engineers", perm("view_equipment", directoryHandler.ListEngineers))
	mux.Handle("POST /api/engineers", perm("edit_equipment", directoryHandler.CreateEngineer))
	mux.Handle("PUT /api/engineers/{id}", perm("edit_equipment", directoryHandler.UpdateEngineer))
	mux.Handle("DELETE /api/engineers/{id}", perm("edit_equipment", directoryHandler.DeleteEngineer))

	mux.Handle("GET /api/spare-parts", perm("view_inventory", inventoryHandler.ListParts))
	mux.Handle("POST /api/spare-parts", perm("edit_inventory", inventoryHandler.CreatePart))
	mux.Handle("PUT /api/spare-parts/{id}", perm("edit_inventory", inventoryHandler.UpdatePart))
	mux.Handle("DELETE /api/spare-parts/{id}", perm("edit_inventory", inventoryHandler.DeletePart))

	mux.Handle("GET /api/documents", perm("view_equipment", inventoryHandler.ListDocuments))
	mux.Handle("POST /api/documents", perm("edit_equipment", inventoryHandler.CreateDocument))
	mux.Handle("DELETE /api/documents/{id}", perm("edit_equipment", inventoryHandler.DeleteDocument))

	mux.Handle("POST /api/payments/apply", perm("edit_payments", paymentHandler.Apply))

	mux.Handle("GET /api/reminders", perm("view_payments", reminderHandler.List))
	mux.Handle("GET /api/reminders/alerts", perm("view_payments", reminderHandler.Alerts))
	mux.Handle("POST /api/reminders", perm("edit_payments", reminderHandler.Create))
	mux.Handle("POST /api/reminders/{id}/cancel", perm("edit_payments", reminderHandler.Cancel))
	mux.Handle("DELETE /api/reminders/{id}", perm("edit_payments", reminderHandler.Delete))

	mux.Handle("GET /api/reports/financial", perm("view_reports", reportHandler.Financial))
	mux.Handle("GET /api/reports/cost", perm("view_reports", reportHandler.Cost))
	mux.Handle("GET /api/reports/breakdown", perm("view_reports", reportHandler.Breakdown))
	mux.Handle("GET /api/reports/parts", perm("view_reports", reportHandler.Parts))
	mux.Handle("GET /api/reports/warranty", perm("view_reports", reportHandler.Warranty))
	mux.Handle("GET /api/reports/monthly", perm("view_reports", reportHandler.Monthly))
	mux.Handle("GET /api/reports/licenses", perm("view_reports", reportHandler.Licenses))
	mux.Handle("GET /api/reports/lowstock", perm("view_reports", reportHandler.LowStock))
	mux.Handle("GET /api/reports/dashboard", perm("view_reports", reportHandler.Dashboard))

	mux.Handle("POST /api/notify/digest", authMW.RequireRole(models.RoleAdmin)(http.HandlerFunc(reportHandler.SendDigest)))

	handler := middleware.RequestLog(rateMW.RateLimit(100, 60)(authMW.Authenticate(mux)))

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.HTTPPort).Info("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(sctx); err != nil {
			log.WithError(err).Warn("server shutdown failed")
		}
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}
}

// splitRecipients parses the comma-separated digest recipient list.
func splitRecipients(raw string) []string {
	var out []string
	for _, addr := range strings.Split(raw, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// sweepAlerts periodically pushes payment-overdue and license-renewal events
// to the broker. The per-request paths cover asset-down and low-stock; these
// two fire on the passage of time, so they need a clock, not a request.
func sweepAlerts(ctx context.Context, store *db.Store, publisher *alerts.Publisher) {
	ticker := time.NewTicker(alertSweepInterval)
	defer ticker.Stop()

	runSweep(ctx, store, publisher)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runSweep(ctx, store, publisher)
		}
	}
}

func runSweep(ctx context.Context, store *db.Store, publisher *alerts.Publisher) {
	now := time.Now()

	rems, err := store.Reminders.FindAllReminders(ctx)
	if err != nil {
		log.WithError(err).Warn("alert sweep: reminders unavailable")
	} else {
		for _, alert := range reminders.ActiveAlerts(rems, now) {
			if alert.Urgency.IsOverdue {
				publisher.PaymentOverdue(alert)
			}
		}
	}

	fleet, err := store.Equipment.FindAllEquipment(ctx)
	if err != nil {
		log.WithError(err).Warn("alert sweep: equipment unavailable")
		return
	}
	for _, eq := range fleet {
		if eq.LicenseRequired && eq.LicenseInfo != nil && eq.LicenseInfo.InRenewalWindow(now) {
			publisher.LicenseRenewal(eq)
		}
	}
}
