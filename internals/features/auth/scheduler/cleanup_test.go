package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"worknest_backend/internals/features/auth/model"
	authRepo "worknest_backend/internals/features/auth/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newStorage(t *testing.T) *authRepo.GormSessionStorage {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	s, err := authRepo.NewGormSessionStorage(db)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return s
}

// seed writes n sessions that expire at now+exp.
func seed(t *testing.T, s *authRepo.GormSessionStorage, prefix string, n int, exp time.Duration) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := s.Set(fmt.Sprintf("%s-%03d", prefix, i), []byte("data"), exp); err != nil {
			t.Fatalf("set: %v", err)
		}
	}
}

func countSessions(t *testing.T, s *authRepo.GormSessionStorage) int64 {
	t.Helper()
	var n int64
	if err := s.DB.Model(&model.AdminSessionModel{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestCleanupExpiredSessionsDrainsAllBatches(t *testing.T) {
	s := newStorage(t)
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	s.Now = func() time.Time { return base }
	seed(t, s, "old", 2*cleanupBatch+17, time.Minute)
	seed(t, s, "live", 3, 48*time.Hour)

	s.Now = func() time.Time { return base.Add(time.Hour) }
	if got := CleanupExpiredSessions(s); got != 2*cleanupBatch+17 {
		t.Fatalf("removed %d, want %d", got, 2*cleanupBatch+17)
	}
	if n := countSessions(t, s); n != 3 {
		t.Fatalf("%d sessions left, want 3", n)
	}
	if got := CleanupExpiredSessions(s); got != 0 {
		t.Fatalf("second pass removed %d", got)
	}
}

func TestRunSessionCleanupSchedulerStopsOnCancel(t *testing.T) {
	s := newStorage(t)
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return base }
	seed(t, s, "old", 5, time.Minute)
	s.Now = func() time.Time { return base.Add(time.Hour) }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := RunSessionCleanupScheduler(ctx, s, time.Hour); err != nil {
		t.Fatalf("scheduler: %v", err)
	}
	// one pass runs before the context is checked
	if n := countSessions(t, s); n != 0 {
		t.Fatalf("%d sessions left after the first pass", n)
	}
}
