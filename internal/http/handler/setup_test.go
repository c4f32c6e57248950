package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pms-portal/billing-api/internal/config"
	"github.com/pms-portal/billing-api/internal/domain"
	"github.com/pms-portal/billing-api/internal/http/handler"
	"github.com/pms-portal/billing-api/internal/repository"
	"github.com/pms-portal/billing-api/internal/service"
	"github.com/pms-portal/billing-api/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testServer struct {
	db     *gorm.DB
	annual *service.AnnualCodeService
	router http.Handler
	now    time.Time
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := testutil.SetupTestDB(t)
	log := zap.NewNop()

	clientRepo := repository.NewClientRepository(db)
	annual := service.NewAnnualCodeService(clientRepo, repository.NewAnnualCodeRepository(db), db, log)
	clients := service.NewClientService(clientRepo, repository.NewPermanentCodeRepository(db), annual, db, log)
	invoices := service.NewInvoiceService(repository.NewInvoiceRepository(db), clientRepo, annual, config.InvoicingConfig{
		Currency:         "AED",
		DefaultVATRate:   0.05,
		PaymentTermsDays: 30,
	}, db, log)

	ts := &testServer{
		db:     db,
		annual: annual,
		now:    time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC),
	}
	annual.SetClock(func() time.Time { return ts.now })

	clientHandler := handler.NewClientHandler(clients, annual, invoices, log)
	annualHandler := handler.NewAnnualCodeHandler(annual, log)
	invoiceHandler := handler.NewInvoiceHandler(invoices, log)

	r := chi.NewRouter()
	r.Route("/clients", func(r chi.Router) {
		r.Get("/", clientHandler.List)
		r.Post("/", clientHandler.Create)
		r.Get("/by-code/{code}", clientHandler.GetByPermanentCode)
		r.Get("/{id}", clientHandler.GetByID)
		r.Patch("/{id}", clientHandler.Update)
		r.Post("/{id}/annual-code", clientHandler.AssignAnnualCode)
		r.Get("/{id}/invoices", clientHandler.ListInvoices)
	})
	r.Route("/annual-codes", func(r chi.Router) {
		r.Get("/status", annualHandler.Status)
		r.Get("/check", annualHandler.Check)
		r.Post("/next", annualHandler.Next)
		r.Post("/reset", annualHandler.Reset)
		r.Post("/assign", annualHandler.AssignAll)
		r.Post("/rollover", annualHandler.Rollover)
		r.Get("/history", annualHandler.History)
	})
	r.Route("/invoices", func(r chi.Router) {
		r.Get("/", invoiceHandler.List)
		r.Post("/", invoiceHandler.Create)
		r.Get("/lookup", invoiceHandler.Lookup)
		r.Get("/{id}", invoiceHandler.GetByID)
		r.Put("/{id}/status", invoiceHandler.UpdateStatus)
	})
	r.Get("/invoice-numbers/decode", invoiceHandler.Decode)
	r.Get("/permanent-codes/counter", clientHandler.PermanentCounter)
	r.Put("/permanent-codes/counter", clientHandler.AdvancePermanentCounter)

	ts.router = r
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	ts.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) domain.APIError {
	t.Helper()
	return decodeBody[domain.APIError](t, rr)
}

// exhaustAnnualCodes marks every annual code of year as handed out
func exhaustAnnualCodes(t *testing.T, db *gorm.DB, year int) {
	t.Helper()
	require.NoError(t, db.Create(&domain.AnnualCodeSequence{Year: year, LastCode: domain.MaxAnnualCode}).Error)
}
