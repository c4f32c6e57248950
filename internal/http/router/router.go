package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pms-portal/billing-api/internal/config"
	"github.com/pms-portal/billing-api/internal/database"
	"github.com/pms-portal/billing-api/internal/http/handler"
	"github.com/pms-portal/billing-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/pms-portal/billing-api/docs" // swagger docs
)

type Router struct {
	cfg               *config.Config
	logger            *zap.Logger
	db                *gorm.DB
	rateLimiter       *middleware.RateLimiter
	clientHandler     *handler.ClientHandler
	annualCodeHandler *handler.AnnualCodeHandler
	invoiceHandler    *handler.InvoiceHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	rateLimiter *middleware.RateLimiter,
	clientHandler *handler.ClientHandler,
	annualCodeHandler *handler.AnnualCodeHandler,
	invoiceHandler *handler.InvoiceHandler,
) *Router {
	return &Router{
		cfg:               cfg,
		logger:            logger,
		db:                db,
		rateLimiter:       rateLimiter,
		clientHandler:     clientHandler,
		annualCodeHandler: annualCodeHandler,
		invoiceHandler:    invoiceHandler,
	}
}

func writeHealth(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.Limit)
	r.Use(middleware.Timeout(rt.cfg.Server.RequestTimeoutDuration()))

	// Liveness probe
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Database health with pool stats
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			writeHealth(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}
		writeHealth(w, http.StatusOK, map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats":   stats,
		})
	})

	// Readiness probe
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			writeHealth(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status": "unhealthy",
				"checks": map[string]interface{}{
					"database": map[string]string{"status": "unhealthy", "error": err.Error()},
				},
			})
			return
		}
		writeHealth(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"checks": map[string]interface{}{
				"database": map[string]string{"status": "healthy"},
			},
		})
	})

	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", rt.clientHandler.List)
			r.Post("/", rt.clientHandler.Create)
			r.Get("/by-code/{code}", rt.clientHandler.GetByPermanentCode)
			r.Get("/{id}", rt.clientHandler.GetByID)
			r.Patch("/{id}", rt.clientHandler.Update)
			r.Post("/{id}/annual-code", rt.clientHandler.AssignAnnualCode)
			r.Get("/{id}/invoices", rt.clientHandler.ListInvoices)
		})

		r.Route("/annual-codes", func(r chi.Router) {
			r.Get("/status", rt.annualCodeHandler.Status)
			r.Get("/check", rt.annualCodeHandler.Check)
			r.Post("/next", rt.annualCodeHandler.Next)
			r.Post("/reset", rt.annualCodeHandler.Reset)
			r.Post("/assign", rt.annualCodeHandler.AssignAll)
			r.Post("/rollover", rt.annualCodeHandler.Rollover)
			r.Get("/history", rt.annualCodeHandler.History)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", rt.invoiceHandler.List)
			r.Post("/", rt.invoiceHandler.Create)
			r.Get("/lookup", rt.invoiceHandler.Lookup)
			r.Get("/{id}", rt.invoiceHandler.GetByID)
			r.Put("/{id}/status", rt.invoiceHandler.UpdateStatus)
		})

		r.Get("/invoice-numbers/decode", rt.invoiceHandler.Decode)

		r.Get("/permanent-codes/counter", rt.clientHandler.PermanentCounter)
		r.Put("/permanent-codes/counter", rt.clientHandler.AdvancePermanentCounter)
	})

	return r
}
