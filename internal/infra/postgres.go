package infra

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"cropgenesis/internal/models/db_models"
)

func InitPostgresql(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}
	return db
}

// compositeIndexes back the newest-first per-user listing queries. GORM
// struct tags cannot express a cross-struct composite (created_at lives on
// the embedded base model), so they are created as raw statements.
var compositeIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_crop_plans_user_created ON crop_plans (user_id, created_at DESC)",
	"CREATE INDEX IF NOT EXISTS idx_diagnoses_user_created ON diagnoses (user_id, created_at DESC)",
}

// Migrate creates the vector extension, keeps the three collections'
// schemas current and ensures the listing indexes exist.
func Migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return err
	}
	if err := db.AutoMigrate(
		&db_models.User{},
		&db_models.CropPlan{},
		&db_models.Diagnosis{},
	); err != nil {
		return err
	}
	for _, stmt := range compositeIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	}
}
