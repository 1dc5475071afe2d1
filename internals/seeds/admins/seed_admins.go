package admins

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	authService "worknest_backend/internals/features/auth/service"
	workerRepo "worknest_backend/internals/features/workers/repository"
	workerService "worknest_backend/internals/features/workers/service"
	"worknest_backend/internals/store"

	"gopkg.in/yaml.v3"
)

type WorkerSeed struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	RFIDID        *string `yaml:"rfid_id"`
	FingerprintID *string `yaml:"fingerprint_id"`
	GPSDeviceID   *string `yaml:"gps_device_id"`
	IsAdmin       bool    `yaml:"is_admin"`
}

type AdminSeed struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name"`
	Password string       `yaml:"password"`
	Workers  []WorkerSeed `yaml:"workers"`
}

type GPSDeviceSeed struct {
	ID     string `yaml:"id"`
	Active bool   `yaml:"active"`
}

type Fixture struct {
	Admins     []AdminSeed     `yaml:"admins"`
	GPSDevices []GPSDeviceSeed `yaml:"gps_devices"`
}

func LoadFixture(filePath string) (*Fixture, error) {
	log.Println("[SEED] reading fixture:", filePath)
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var fx Fixture
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &fx, nil
}

// SeedAdmins provisions admins and their workers. Admins that already exist are skipped.
func SeedAdmins(ctx context.Context, st store.Store, fx *Fixture, hashPasswords bool) (int, error) {
	registry := workerService.NewRegistryService(st)
	created := 0

	for _, a := range fx.Admins {
		if !store.ValidKey(a.ID) {
			return created, fmt.Errorf("admin id %q is not a valid key", a.ID)
		}
		_, err := workerRepo.FindAdminByID(ctx, st, a.ID)
		if err == nil {
			log.Printf("[SEED] admin '%s' already exists, skipped", a.ID)
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return created, err
		}

		password := a.Password
		if hashPasswords {
			if password, err = authService.HashPassword(a.Password); err != nil {
				return created, fmt.Errorf("hash password for %s: %w", a.ID, err)
			}
		}
		if err := workerRepo.SetAdmin(ctx, st, a.ID, a.Name, password); err != nil {
			return created, fmt.Errorf("create admin %s: %w", a.ID, err)
		}

		for _, w := range a.Workers {
			in := workerService.WorkerInput{
				Name:          w.Name,
				RFIDID:        w.RFIDID,
				FingerprintID: w.FingerprintID,
				GPSDeviceID:   w.GPSDeviceID,
				IsAdmin:       w.IsAdmin,
			}
			if w.ID == "" {
				if _, err := registry.RegisterWorker(ctx, a.ID, in); err != nil {
					return created, err
				}
				continue
			}
			if err := registry.PutWorker(ctx, a.ID, w.ID, in); err != nil {
				return created, err
			}
		}
		created++
		log.Printf("[SEED] admin '%s' created with %d workers", a.ID, len(a.Workers))
	}

	for _, d := range fx.GPSDevices {
		if err := workerRepo.SetGPSDeviceActive(ctx, st, d.ID, d.Active); err != nil {
			return created, fmt.Errorf("gps device %s: %w", d.ID, err)
		}
	}
	return created, nil
}
