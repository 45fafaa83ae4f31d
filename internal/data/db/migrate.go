package db

import (
	"gorm.io/gorm"

	types "github.com/madfam-org/avala/internal/domain"
)

// AutoMigrateAll creates or updates every table the sync pipeline writes.
// Join tables intentionally carry no database-level foreign keys: join rows
// arrive via skip-duplicate batch writes and referential integrity is
// verified post-hoc by the validator.
func AutoMigrateAll(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&types.Sector{},
		&types.Committee{},
		&types.Standard{},
		&types.Certifier{},
		&types.Center{},

		&types.Occupation{},
		&types.Accreditation{},
		&types.Offering{},

		&types.SyncJob{},
	)
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	return AutoMigrateAll(s.db)
}
