package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"worknest_backend/internals/configs"
	"worknest_backend/internals/store"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ConnectDB opens the relational database for the postgres and sqlite drivers.
func ConnectDB(cfg *configs.AppConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: configs.NewGormLogger()}

	switch cfg.StoreDriver {
	case configs.DriverPostgres:
		log.Println("[INFO] connecting to PostgreSQL...")
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=worknest&options=-c statement_timeout=3000",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode,
		)
		db, err := gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		log.Println("[INFO] DB connected.")
		return db, nil

	case configs.DriverSQLite:
		log.Printf("[INFO] opening SQLite at %s...", cfg.SQLitePath)
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath+"?_busy_timeout=5000&_journal_mode=WAL"), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return db, nil
	}
	return nil, fmt.Errorf("driver %q has no relational database", cfg.StoreDriver)
}

func TunePool(db *gorm.DB, driver string) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	if driver == configs.DriverSQLite {
		// one writer at a time
		sqlDB.SetMaxOpenConns(1)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// WarmUpQueries pings the store in the background once the server is up.
func WarmUpQueries(st store.Store) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Ping(ctx); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

// OpenStore builds the store named by STORE_DRIVER. db is nil unless the
// driver is relational.
func OpenStore(ctx context.Context, cfg *configs.AppConfig) (st store.Store, db *gorm.DB, err error) {
	switch cfg.StoreDriver {
	case configs.DriverMemory:
		log.Println("[WARN] memory store: data is lost on restart")
		return store.NewMemoryStore(), nil, nil

	case configs.DriverPostgres, configs.DriverSQLite:
		db, err = ConnectDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		TunePool(db, cfg.StoreDriver)
		gs, err := store.NewGormStore(db)
		if err != nil {
			return nil, nil, err
		}
		return gs, db, nil

	case configs.DriverFirebase:
		fs, err := store.NewFirebaseStore(ctx, cfg.FirebaseDatabaseURL, cfg.FirebaseCredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		log.Println("[INFO] Firebase Realtime Database client ready.")
		return fs, nil, nil
	}
	return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}
