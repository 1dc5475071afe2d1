package configs

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverFirebase = "firebase"
)

// AppConfig is read once at startup.
type AppConfig struct {
	Port     string
	Timezone string

	StoreDriver string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string
	SQLitePath  string

	FirebaseDatabaseURL     string
	FirebaseCredentialsFile string

	RabbitMQURL string

	SessionTTL             time.Duration
	SessionCookieSecure    bool
	SessionCleanupInterval time.Duration

	SeedFile string

	// per client IP, across all routes
	RateLimitPerMinute int
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[INFO] .env not found, using system environment")
		} else {
			log.Println("[INFO] .env loaded")
		}
	} else {
		log.Println("[INFO] running on Railway, using system environment")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[WARN] %s=%q is not a positive integer, using %d", key, v, def)
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// Load reads the environment into an AppConfig and reports what is missing.
func Load() *AppConfig {
	cfg := &AppConfig{
		Port:     GetEnv("PORT", "5000"),
		Timezone: GetEnv("APP_TIMEZONE", "Local"),

		StoreDriver: strings.ToLower(GetEnv("STORE_DRIVER", DriverMemory)),
		DBUser:      GetEnv("DB_USER"),
		DBPassword:  GetEnv("DB_PASSWORD"),
		DBHost:      GetEnv("DB_HOST"),
		DBPort:      GetEnv("DB_PORT", "5432"),
		DBName:      GetEnv("DB_NAME"),
		DBSSLMode:   GetEnv("DB_SSLMODE", "require"),
		SQLitePath:  GetEnv("SQLITE_PATH", "worknest.db"),

		FirebaseDatabaseURL:     GetEnv("FIREBASE_DATABASE_URL"),
		FirebaseCredentialsFile: GetEnv("FIREBASE_CREDENTIALS_FILE"),

		RabbitMQURL: GetEnv("RABBITMQ_URL"),

		SessionTTL:             time.Duration(getInt("SESSION_TTL_HOURS", 12)) * time.Hour,
		SessionCookieSecure:    getBool("SESSION_COOKIE_SECURE", false),
		SessionCleanupInterval: time.Duration(getInt("SESSION_CLEANUP_INTERVAL_MINUTES", 60)) * time.Minute,

		SeedFile: GetEnv("SEED_FILE"),

		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 600),
	}

	log.Printf("[INFO] store driver: %s", cfg.StoreDriver)
	switch cfg.StoreDriver {
	case DriverPostgres:
		if cfg.DBHost == "" || cfg.DBName == "" {
			log.Println("[ERROR] DB_HOST / DB_NAME not set for postgres driver")
		}
	case DriverFirebase:
		if cfg.FirebaseDatabaseURL == "" {
			log.Println("[ERROR] FIREBASE_DATABASE_URL not set")
		}
		if cfg.FirebaseCredentialsFile == "" {
			log.Println("[WARN] FIREBASE_CREDENTIALS_FILE not set, using application default credentials")
		}
	}
	if cfg.RabbitMQURL == "" {
		log.Println("[INFO] RABBITMQ_URL not set, clock events are not published")
	}
	return cfg
}

// Relational reports whether the driver is backed by GORM.
func (c *AppConfig) Relational() bool {
	return c.StoreDriver == DriverPostgres || c.StoreDriver == DriverSQLite
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
	return &GormLogger{SlowThreshold: l.SlowThreshold, LogLevel: level}
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && err != gormLogger.ErrRecordNotFound:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
