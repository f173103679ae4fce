package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/config"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Specialty{},
		&models.Service{},
		&models.Worker{},
		&models.WorkerSchedule{},
		&models.Client{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Second line of defense behind the row lock: overlapping non-cancelled
	// appointments for the same worker are rejected by the database itself.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$ BEGIN
            ALTER TABLE appointments
            ADD CONSTRAINT appointments_no_overlap
            EXCLUDE USING gist (
                worker_id WITH =,
                tstzrange(start_time, end_time) WITH &&
            )
            WHERE (status <> 'cancelled');
        EXCEPTION WHEN duplicate_object OR duplicate_table THEN NULL;
        END $$
    `)

	return db
}
