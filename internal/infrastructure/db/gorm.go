package db

import (
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"prestoras-backend/internal/domain/client"
	loanDomain "prestoras-backend/internal/domain/loan"
	"prestoras-backend/internal/domain/payment"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

// OpenGormWithDialector exists so tests can inject a mocked *sql.DB.
func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.Println("gorm: connected")
	return db, nil
}

// AutoMigrate creates/updates the ledger schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&client.Client{},
		&loanDomain.Loan{},
		&loanDomain.Installment{},
		&loanDomain.Refinancing{},
		&payment.Payment{},
		&payment.PaymentInstallment{},
		&payment.PenaltyAdjustment{},
	)
}
