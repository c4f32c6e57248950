// Package testutil provides an in-memory database and fixtures for tests.
package testutil

import (
	"testing"

	"github.com/pms-portal/billing-api/internal/database"
	"github.com/pms-portal/billing-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a fresh in-memory SQLite database with the schema migrated.
// A single connection is used so every query sees the same in-memory database;
// code under test must therefore run all queries of a transaction through tx.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// CreateTestClient inserts a client directly, bypassing code allocation.
// annualCode may be empty for a client without a code.
func CreateTestClient(t *testing.T, db *gorm.DB, name, permanentCode, annualCode string, year int) *domain.Client {
	t.Helper()

	client := &domain.Client{
		ClientName:     name,
		PermanentCode:  permanentCode,
		AnnualCodeYear: year,
		IssuingCompany: domain.IssuingCompanyFZCO,
		IsActive:       true,
	}
	if annualCode != "" {
		client.AnnualCode = &annualCode
	}
	require.NoError(t, db.Create(client).Error)
	return client
}

// DeactivateClient marks a client inactive
func DeactivateClient(t *testing.T, db *gorm.DB, client *domain.Client) {
	t.Helper()

	require.NoError(t, db.Model(&domain.Client{}).
		Where("id = ?", client.ID).
		Update("is_active", false).Error)
	client.IsActive = false
}
