package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"tigerlife/internal/domain"
)

// Connect opens Postgres for postgres:// DSNs and a cgo-free SQLite
// database for anything else (local development and tests).
func Connect(dsn string, log *zap.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		if log != nil {
			log.Info("connecting to postgres")
		}
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	if log != nil {
		log.Info("using sqlite for local development", zap.String("dsn", dsn))
	}

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
	if err != nil {
		return nil, err
	}

	// A single connection keeps in-memory databases shared and serialises
	// sqlite writers.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Migrate creates every gateway table. The composite unique index on
// organization_members makes duplicate joins fail in storage.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.AuthAccount{},
		&domain.Session{},
		&domain.User{},
		&domain.VerifiedID{},
		&domain.Organization{},
		&domain.OrganizationMember{},
		&domain.Event{},
		&domain.MarketplaceItem{},
		&domain.Service{},
		&domain.Booking{},
		&domain.Message{},
		&domain.Notification{},
	)
}

// IsUniqueViolation reports whether err came from a unique constraint.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
