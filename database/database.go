package database

import (
	"fmt"
	"log"
	"os"

	"offersense/config"
	"offersense/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a database connection based on DB_DIALECT
func ConnectDb() {
	var dialector gorm.Dialector

	switch config.AppConfig.DBDialect {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			config.AppConfig.DBName,
			os.Getenv("DB_PORT"),
		)
		dialector = postgres.Open(dsn)
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"),
			config.AppConfig.DBName,
		)
		dialector = mysql.Open(dsn)
	default:
		dialector = sqlite.Open(config.AppConfig.DBName)
	}

	// TranslateError maps driver unique-constraint failures to
	// gorm.ErrDuplicatedKey across all three dialects.
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	// Run database migrations
	RunMigrations(db)

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.Card{},
		&models.Verification{},
		&models.OfferLog{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// One active card per (owner, last four), enforced by the storage
	// engine on every dialect.
	if db.Dialector.Name() == "mysql" {
		// MySQL has no CREATE INDEX IF NOT EXISTS.
		if !db.Migrator().HasIndex(&models.Card{}, "idx_cards_owner_digits") {
			err = db.Exec(activeCardIndexSQL("mysql")).Error
		}
	} else {
		err = db.Exec(activeCardIndexSQL(db.Dialector.Name())).Error
	}
	if err != nil {
		log.Fatalf("Failed to create active card index: %v", err)
	}

	log.Println("Migrations completed successfully.")
}

// activeCardIndexSQL returns the uniqueness DDL for a dialect. The partial
// index keeps deleted rows out of the constraint so the same digits can be
// re-registered. MySQL has no partial indexes, but reactivation guarantees
// at most one row per (owner, last four) pair ever exists, so a plain
// unique index enforces the same invariant there.
func activeCardIndexSQL(dialect string) string {
	if dialect == "mysql" {
		return `CREATE UNIQUE INDEX idx_cards_owner_digits
			 ON cards (owner_id, last_four_digits)`
	}
	return `CREATE UNIQUE INDEX IF NOT EXISTS idx_cards_active_owner_digits
			 ON cards (owner_id, last_four_digits) WHERE status = 'active'`
}
