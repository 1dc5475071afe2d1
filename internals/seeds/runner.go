package seeds

import (
	"context"
	"log"

	"worknest_backend/internals/seeds/admins"
	"worknest_backend/internals/store"
)

// RunAllSeeds loads the fixture file into the configured store.
func RunAllSeeds(ctx context.Context, st store.Store, filePath string, hashPasswords bool) error {
	fx, err := admins.LoadFixture(filePath)
	if err != nil {
		return err
	}
	n, err := admins.SeedAdmins(ctx, st, fx, hashPasswords)
	if err != nil {
		return err
	}
	log.Printf("[SEED] done, %d admins created", n)
	return nil
}
