package admins

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	authService "worknest_backend/internals/features/auth/service"
	workerRepo "worknest_backend/internals/features/workers/repository"
	"worknest_backend/internals/store"
)

const fixtureYAML = `
admins:
  - id: hq
    name: alice
    password: s3cret
    workers:
      - id: "1005"
        name: Budi
        rfid_id: RF-1
        gps_device_id: gps-1
      - name: Sari
        fingerprint_id: FP-2
gps_devices:
  - id: gps-1
    active: false
`

func writeFixture(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "fixture.yaml")
	if err := os.WriteFile(p, []byte(fixtureYAML), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return p
}

func TestSeedAdminsCreatesAndSkips(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	fx, err := LoadFixture(writeFixture(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	n, err := SeedAdmins(ctx, st, fx, true)
	if err != nil || n != 1 {
		t.Fatalf("seed: n=%d err=%v", n, err)
	}

	admin, err := workerRepo.FindAdminByID(ctx, st, "hq")
	if err != nil {
		t.Fatalf("admin missing: %v", err)
	}
	if !authService.CheckPassword(admin.AdminPassword, "s3cret") || admin.AdminPassword == "s3cret" {
		t.Fatalf("password should be stored hashed")
	}
	if _, ok := admin.AdminWorkers["1005"]; !ok {
		t.Fatalf("explicit worker id not kept: %v", admin.AdminWorkers)
	}
	if _, ok := admin.AdminWorkers["1006"]; !ok {
		t.Fatalf("generated worker id should follow the highest id: %v", admin.AdminWorkers)
	}

	n, err = SeedAdmins(ctx, st, fx, true)
	if err != nil || n != 0 {
		t.Fatalf("second run should skip: n=%d err=%v", n, err)
	}
}
