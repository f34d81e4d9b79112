package configs

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	AppName        string
	AppBaseURL     string
	JWTSecret      string
	GoogleClientID string
	AdminEmails    []string

	SendgridAPIKey    string
	SendgridFromEmail string
	SendgridFromName  string

	MidtransServerKey string

	SupabaseProjectURL string
	SupabaseSecretKey  string
	StorageBucket      string

	WebhookSecret string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running on Railway, using system ENV")
	}

	AppName = GetEnv("APP_NAME", "Learnify")
	AppBaseURL = GetEnv("APP_BASE_URL", "http://localhost:3000")
	JWTSecret = GetEnv("JWT_SECRET")
	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")
	AdminEmails = splitCSV(GetEnv("ADMIN_EMAILS"))

	SendgridAPIKey = GetEnv("SENDGRID_API_KEY")
	SendgridFromEmail = GetEnv("SENDGRID_FROM_EMAIL", "hello@learnify.com")
	SendgridFromName = GetEnv("SENDGRID_FROM_NAME", AppName)

	MidtransServerKey = GetEnv("MIDTRANS_SERVER_KEY")

	SupabaseProjectURL = GetEnv("SUPABASE_PROJECT_URL")
	SupabaseSecretKey = GetEnv("SUPABASE_SECRET_KEY")
	StorageBucket = GetEnv("STORAGE_BUCKET", "image")

	WebhookSecret = GetEnv("MEMBERSHIP_WEBHOOK_SECRET")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	}
	if SendgridAPIKey == "" {
		log.Println("⚠️ SENDGRID_API_KEY not set, emails go to console")
	}
	if MidtransServerKey == "" {
		log.Println("⚠️ MIDTRANS_SERVER_KEY not set, checkout disabled")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}

// IsAdminEmail is consulted once, when a platform token is minted. Everything
// downstream reads the role claim instead of re-deriving admin status.
func IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range AdminEmails {
		if a == email {
			return true
		}
	}
	return false
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[INFO] "+msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[WARN] "+msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[ERROR] "+msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	if err != nil {
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	} else if elapsed > l.SlowThreshold {
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
