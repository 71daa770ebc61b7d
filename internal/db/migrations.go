package db

import (
	"fmt"

	"gorm.io/gorm"
)

// The statistics service does not own the fleet schema; it only adds indexes
// covering the date columns it scans, and only when the tables already exist.
var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'rentals') THEN
			CREATE INDEX IF NOT EXISTS idx_rentals_start_date ON rentals (start_date);
			CREATE INDEX IF NOT EXISTS idx_rentals_vehicle_id ON rentals (vehicle_id);
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'expenses') THEN
			CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses (date);
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'protocols') THEN
			CREATE INDEX IF NOT EXISTS idx_protocols_created_at ON protocols (created_at);
			CREATE INDEX IF NOT EXISTS idx_protocols_rental_id ON protocols (rental_id);
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
