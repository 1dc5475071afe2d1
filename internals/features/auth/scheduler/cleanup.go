package scheduler

import (
	"context"
	"log"
	"time"

	authRepo "worknest_backend/internals/features/auth/repository"
)

const cleanupBatch = 100

// RunSessionCleanupScheduler deletes expired sessions every interval until ctx ends.
func RunSessionCleanupScheduler(ctx context.Context, storage *authRepo.GormSessionStorage, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		CleanupExpiredSessions(storage)

		select {
		case <-ctx.Done():
			log.Println("[CLEANUP] session cleanup stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// CleanupExpiredSessions drains expired rows in batches.
func CleanupExpiredSessions(storage *authRepo.GormSessionStorage) int64 {
	log.Println("[CLEANUP] removing expired admin sessions...")
	var total int64
	for {
		n, err := storage.DeleteExpired(cleanupBatch)
		if err != nil {
			log.Printf("[CLEANUP ERROR] delete expired sessions: %v", err)
			return total
		}
		total += n
		if n < cleanupBatch {
			break
		}
	}
	if total > 0 {
		log.Printf("[CLEANUP] %d expired sessions removed", total)
	} else {
		log.Println("[CLEANUP] no expired sessions")
	}
	return total
}
