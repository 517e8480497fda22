package database

import (
	"fmt"
	"log"

	"github.com/avash81/mindmeter-iq-app/internal/config"
	"github.com/avash81/mindmeter-iq-app/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate runs the schema migration and seeds the question bank when empty.
// Split out of InitDB so tests can run it against a throwaway database.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Question{},
		&model.TestSession{},
		&model.AnswerRecord{},
		&model.TestResult{},
	)
	if err != nil {
		return err
	}

	var count int64
	db.Model(&model.Question{}).Count(&count)
	if count == 0 {
		for _, q := range SeedQuestions() {
			q := q
			if err := db.Create(&q).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
