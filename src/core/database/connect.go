package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/ismaelstrey/quiz-biblico/src/core/config"
	"github.com/ismaelstrey/quiz-biblico/src/core/models"
)

var DB *gorm.DB

func ConnectDB() {
	dsn := config.DatabaseDSN()

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
	})
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}
	fmt.Println("Database successfully connected!")
}

// Migrate creates or updates the schema for every model.
func Migrate() {
	if err := DB.AutoMigrate(allModels()...); err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}
}

// ConnectTest swaps DB for an isolated in-memory sqlite database and migrates
// the full schema. Each caller passes a unique name so parallel test packages
// never share state.
func ConnectTest(name string) error {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(allModels()...); err != nil {
		return err
	}
	DB = db
	return nil
}

func allModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Level{},
		&models.Quiz{},
		&models.Question{},
		&models.Answer{},
		&models.QuizAttempt{},
		&models.UserProgress{},
	}
}
