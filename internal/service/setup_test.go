package service_test

import (
	"testing"
	"time"

	"github.com/pms-portal/billing-api/internal/config"
	"github.com/pms-portal/billing-api/internal/repository"
	"github.com/pms-portal/billing-api/internal/service"
	"github.com/pms-portal/billing-api/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db            *gorm.DB
	clientRepo    *repository.ClientRepository
	annualRepo    *repository.AnnualCodeRepository
	permanentRepo *repository.PermanentCodeRepository
	invoiceRepo   *repository.InvoiceRepository
	annual        *service.AnnualCodeService
	clients       *service.ClientService
	invoices      *service.InvoiceService
	now           time.Time
}

// setClock moves the fixture's clock; all services read it
func (f *fixture) setClock(t time.Time) {
	f.now = t
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.SetupTestDB(t)
	log := zap.NewNop()

	f := &fixture{
		db:            db,
		clientRepo:    repository.NewClientRepository(db),
		annualRepo:    repository.NewAnnualCodeRepository(db),
		permanentRepo: repository.NewPermanentCodeRepository(db),
		invoiceRepo:   repository.NewInvoiceRepository(db),
		now:           time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC),
	}

	f.annual = service.NewAnnualCodeService(f.clientRepo, f.annualRepo, db, log)
	f.annual.SetClock(func() time.Time { return f.now })

	f.clients = service.NewClientService(f.clientRepo, f.permanentRepo, f.annual, db, log)
	f.invoices = service.NewInvoiceService(f.invoiceRepo, f.clientRepo, f.annual, config.InvoicingConfig{
		Currency:         "AED",
		DefaultVATRate:   0.05,
		PaymentTermsDays: 30,
	}, db, log)

	return f
}
