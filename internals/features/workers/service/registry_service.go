// file: internals/features/workers/service/registry_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"worknest_backend/internals/features/workers/model"
	workerRepo "worknest_backend/internals/features/workers/repository"
	"worknest_backend/internals/store"
)

const FirstWorkerID int64 = 1000

var ErrWorkerNotFound = errors.New("worker not found")

// WorkerInput carries the identity fields an admin can set on a worker.
type WorkerInput struct {
	Name          string
	RFIDID        *string
	FingerprintID *string
	GPSDeviceID   *string
	IsAdmin       bool
}

func (in WorkerInput) toModel(workerID string) *model.WorkerModel {
	return &model.WorkerModel{
		WorkerID:            workerID,
		WorkerName:          in.Name,
		WorkerRFIDID:        in.RFIDID,
		WorkerFingerprintID: in.FingerprintID,
		WorkerGPSDeviceID:   in.GPSDeviceID,
		WorkerIsAdmin:       in.IsAdmin,
	}
}

// fields returns the named identity fields; nil pointers clear the child.
func (in WorkerInput) fields() map[string]any {
	return map[string]any{
		"name":           in.Name,
		"rfid_id":        in.RFIDID,
		"fingerprint_id": in.FingerprintID,
		"gps_device_id":  in.GPSDeviceID,
		"is_admin":       in.IsAdmin,
	}
}

type RegistryService struct {
	Store store.Store
}

func NewRegistryService(st store.Store) *RegistryService {
	return &RegistryService{Store: st}
}

/* ========================== IDS ========================== */

// NextWorkerID returns max(ids)+1, or "1000" when there is no numeric id.
func NextWorkerID(ids []string) string {
	return strconv.FormatInt(nextWorkerID(ids), 10)
}

func nextWorkerID(ids []string) int64 {
	var (
		highest int64
		found   bool
	)
	for _, id := range ids {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			log.Printf("[WARN] worker id %q is not numeric, skipped", id)
			continue
		}
		if !found || n > highest {
			highest, found = n, true
		}
	}
	if !found {
		return FirstWorkerID
	}
	return highest + 1
}

// AllWorkerIDs collects worker ids across every admin.
func (s *RegistryService) AllWorkerIDs(ctx context.Context) ([]string, error) {
	admins, err := workerRepo.ListAdmins(ctx, s.Store)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, adminID := range model.SortedAdminIDs(admins) {
		ids = append(ids, model.SortedWorkerIDs(admins[adminID].AdminWorkers)...)
	}
	return ids, nil
}

// GenerateWorkerID computes the next id from the current tree without reserving it.
func (s *RegistryService) GenerateWorkerID(ctx context.Context) (string, error) {
	ids, err := s.AllWorkerIDs(ctx)
	if err != nil {
		return "", err
	}
	return NextWorkerID(ids), nil
}

// AllocateWorkerID reserves an id on the sequence node so concurrent
// registrations never share one.
func (s *RegistryService) AllocateWorkerID(ctx context.Context) (string, error) {
	ids, err := s.AllWorkerIDs(ctx)
	if err != nil {
		return "", err
	}
	reserved, err := workerRepo.ReserveWorkerID(ctx, s.Store, nextWorkerID(ids))
	if err != nil {
		return "", fmt.Errorf("reserve worker id: %w", err)
	}
	return strconv.FormatInt(reserved, 10), nil
}

/* ========================== CRUD ========================== */

func (s *RegistryService) RegisterWorker(ctx context.Context, adminID string, in WorkerInput) (string, error) {
	workerID, err := s.AllocateWorkerID(ctx)
	if err != nil {
		return "", err
	}
	if err := workerRepo.CreateWorker(ctx, s.Store, adminID, in.toModel(workerID)); err != nil {
		return "", fmt.Errorf("create worker %s: %w", workerID, err)
	}
	log.Printf("[INFO] worker %s registered under admin %s", workerID, adminID)
	return workerID, nil
}

// PutWorker writes a worker under a caller-chosen id (fixtures, imports).
func (s *RegistryService) PutWorker(ctx context.Context, adminID, workerID string, in WorkerInput) error {
	if !store.ValidKey(workerID) {
		return fmt.Errorf("worker id %q: %w", workerID, store.ErrInvalidPath)
	}
	return workerRepo.CreateWorker(ctx, s.Store, adminID, in.toModel(workerID))
}

func (s *RegistryService) GetWorker(ctx context.Context, adminID, workerID string) (*model.WorkerModel, error) {
	w, err := workerRepo.FindWorker(ctx, s.Store, adminID, workerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidPath) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}
	return w, nil
}

// ListWorkers returns the admin's workers in id order.
func (s *RegistryService) ListWorkers(ctx context.Context, adminID string) ([]*model.WorkerModel, error) {
	workers, err := workerRepo.ListWorkers(ctx, s.Store, adminID)
	if err != nil {
		return nil, err
	}
	out := make([]*model.WorkerModel, 0, len(workers))
	for _, id := range model.SortedWorkerIDs(workers) {
		out = append(out, workers[id])
	}
	return out, nil
}

// UpdateWorker merges identity fields; attendance is left alone.
func (s *RegistryService) UpdateWorker(ctx context.Context, adminID, workerID string, in WorkerInput) error {
	if _, err := s.GetWorker(ctx, adminID, workerID); err != nil {
		return err
	}
	return workerRepo.UpdateWorkerFields(ctx, s.Store, adminID, workerID, in.fields())
}

// DeleteWorker drops the worker and its whole attendance history.
func (s *RegistryService) DeleteWorker(ctx context.Context, adminID, workerID string) error {
	if err := workerRepo.DeleteWorker(ctx, s.Store, adminID, workerID); err != nil {
		if errors.Is(err, store.ErrInvalidPath) {
			return ErrWorkerNotFound
		}
		return err
	}
	log.Printf("[INFO] worker %s deleted from admin %s", workerID, adminID)
	return nil
}
