package repository

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStorage(t *testing.T) *GormSessionStorage {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	s, err := NewGormSessionStorage(db)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return s
}

func TestSessionStorageRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	if err := s.Set("k1", []byte("v1"), time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set("k1", []byte("v2"), time.Hour); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := s.Get("k1")
	if err != nil || string(got) != "v2" {
		t.Fatalf("get = %q, %v", got, err)
	}

	if err := s.Delete("k1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, err := s.Get("k1"); err != nil || got != nil {
		t.Fatalf("deleted key should be absent: %q %v", got, err)
	}
}

func TestSessionStorageExpiry(t *testing.T) {
	s := newTestStorage(t)
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return base }

	_ = s.Set("old", []byte("x"), time.Minute)
	_ = s.Set("new", []byte("y"), 2*time.Hour)

	s.Now = func() time.Time { return base.Add(time.Hour) }
	if got, _ := s.Get("old"); got != nil {
		t.Fatalf("expired session still readable")
	}

	n, err := s.DeleteExpired(100)
	if err != nil || n != 1 {
		t.Fatalf("DeleteExpired = %d, %v", n, err)
	}
	if got, _ := s.Get("new"); string(got) != "y" {
		t.Fatalf("live session removed")
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got, _ := s.Get("new"); got != nil {
		t.Fatalf("reset left rows behind")
	}
}
