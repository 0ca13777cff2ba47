package infra

import (
	"fmt"

	"github.com/yacine178/sales/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// AutoMigrate cannot express (the invoice sequence, partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations applies AutoMigrate plus schema patches. Exposed separately so
// integration tests can migrate a scratch database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Part{},
		&model.Product{},
		&model.AssemblyPart{},
		&model.StockMovement{},
		&model.Customer{},
		&model.PhoneNumber{},
		&model.Category{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Settings{},
		&model.User{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that GORM cannot fully handle on its
// own. Each statement uses IF NOT EXISTS semantics so re-running on an
// already-patched database is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Invoice numbers come from a dedicated sequence so numbering survives
		// restarts and concurrent sales never collide. Starts above the legacy
		// seed, so the first issued invoice is INV-1001.
		`CREATE SEQUENCE IF NOT EXISTS invoice_number_seq START 1001`,
		// Partial index for the low-stock listing.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_parts_low_stock') THEN
		    CREATE INDEX idx_parts_low_stock ON parts (quantity) WHERE quantity <= minimum_stock;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
