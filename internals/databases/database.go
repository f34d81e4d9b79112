package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"learnify_backend/internals/configs"
	certModel "learnify_backend/internals/features/certificates/model"
	commentModel "learnify_backend/internals/features/comments/model"
	courseModel "learnify_backend/internals/features/courses/model"
	enrollModel "learnify_backend/internals/features/enrollments/model"
	paymentModel "learnify_backend/internals/features/payments/model"
	reviewModel "learnify_backend/internals/features/reviews/model"
	wishlistModel "learnify_backend/internals/features/wishlist/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=learnify&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // PgBouncer transaction pooling
	}), &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("❌ DB connect failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate creates/updates the schema. The unique indexes declared on the
// models are the race-resolution mechanism for enroll/complete/issue, so a
// failed migration is fatal.
func Migrate() {
	err := DB.AutoMigrate(
		&courseModel.Category{},
		&courseModel.Course{},
		&courseModel.Lesson{},
		&enrollModel.Enrollment{},
		&enrollModel.LessonProgress{},
		&certModel.Certificate{},
		&paymentModel.Payment{},
		&reviewModel.Review{},
		&commentModel.Comment{},
		&wishlistModel.Wishlist{},
	)
	if err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}
	log.Println("✅ Schema migrated.")
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
