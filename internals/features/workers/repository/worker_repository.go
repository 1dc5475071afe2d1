// file: internals/features/workers/repository/worker_repository.go
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"worknest_backend/internals/features/workers/model"
	"worknest_backend/internals/store"

	"github.com/bytedance/sonic"
)

/* ====================== PATHS ====================== */

const (
	adminsRoot           = "admin"
	gpsDevicesRoot       = "gps_devices"
	WorkerIDSequencePath = "sequences/worker_id"
)

func AdminPath(adminID string) string { return store.Join(adminsRoot, adminID) }

func WorkersPath(adminID string) string { return store.Join(adminsRoot, adminID, "workers") }

func WorkerPath(adminID, workerID string) string {
	return store.Join(adminsRoot, adminID, "workers", workerID)
}

func DayRecordPath(adminID, workerID, date string) string {
	return store.Join(adminsRoot, adminID, "workers", workerID, date)
}

func GPSDevicePath(deviceID string) string { return store.Join(gpsDevicesRoot, deviceID) }

/* ====================== ADMINS ====================== */

// ListAdmins reads the whole admin tree. No admins yields an empty map; an
// admin node that cannot be decoded is logged and skipped.
func ListAdmins(ctx context.Context, st store.Store) (map[string]*model.AdminModel, error) {
	nodes := map[string]json.RawMessage{}
	if err := st.Get(ctx, adminsRoot, &nodes); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return map[string]*model.AdminModel{}, nil
		}
		return nil, fmt.Errorf("list admins: %w", err)
	}
	admins := make(map[string]*model.AdminModel, len(nodes))
	for id, node := range nodes {
		if string(node) == "null" {
			continue
		}
		var a model.AdminModel
		if err := sonic.Unmarshal(node, &a); err != nil {
			log.Printf("[WARN] admin %s skipped: %v", id, err)
			continue
		}
		a.FillIDs(id)
		admins[id] = &a
	}
	return admins, nil
}

func FindAdminByID(ctx context.Context, st store.Store, adminID string) (*model.AdminModel, error) {
	var admin model.AdminModel
	if err := st.Get(ctx, AdminPath(adminID), &admin); err != nil {
		return nil, err
	}
	admin.FillIDs(adminID)
	return &admin, nil
}

// SetAdmin writes an admin's credentials without touching its workers.
func SetAdmin(ctx context.Context, st store.Store, adminID, name, password string) error {
	return st.Update(ctx, AdminPath(adminID), map[string]any{
		"name":     name,
		"password": password,
	})
}

/* ====================== WORKERS ====================== */

func ListWorkers(ctx context.Context, st store.Store, adminID string) (map[string]*model.WorkerModel, error) {
	var raw json.RawMessage
	if err := st.Get(ctx, WorkersPath(adminID), &raw); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return map[string]*model.WorkerModel{}, nil
		}
		return nil, err
	}
	return model.DecodeWorkers(raw), nil
}

func FindWorker(ctx context.Context, st store.Store, adminID, workerID string) (*model.WorkerModel, error) {
	var w model.WorkerModel
	if err := st.Get(ctx, WorkerPath(adminID, workerID), &w); err != nil {
		return nil, err
	}
	w.WorkerID = workerID
	return &w, nil
}

// CreateWorker overwrites the whole worker node.
func CreateWorker(ctx context.Context, st store.Store, adminID string, w *model.WorkerModel) error {
	return st.Set(ctx, WorkerPath(adminID, w.WorkerID), w)
}

func UpdateWorkerFields(ctx context.Context, st store.Store, adminID, workerID string, fields map[string]any) error {
	return st.Update(ctx, WorkerPath(adminID, workerID), fields)
}

func DeleteWorker(ctx context.Context, st store.Store, adminID, workerID string) error {
	return st.Delete(ctx, WorkerPath(adminID, workerID))
}

/* ====================== DAY RECORDS ====================== */

func FindDayRecord(ctx context.Context, st store.Store, adminID, workerID, date string) (*model.DayRecordModel, error) {
	var rec model.DayRecordModel
	if err := st.Get(ctx, DayRecordPath(adminID, workerID, date), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateDayRecord merges fields into the record, creating it when missing.
func UpdateDayRecord(ctx context.Context, st store.Store, adminID, workerID, date string, fields map[string]any) error {
	return st.Update(ctx, DayRecordPath(adminID, workerID, date), fields)
}

/* ====================== GPS DEVICES ====================== */

// FindGPSDeviceID returns "" when the worker has no bound device.
func FindGPSDeviceID(ctx context.Context, st store.Store, adminID, workerID string) (string, error) {
	var raw json.RawMessage
	err := st.Get(ctx, store.Join(WorkerPath(adminID, workerID), "gps_device_id"), &raw)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var deviceID string
	if err := sonic.Unmarshal(raw, &deviceID); err != nil {
		// numeric ids written by other tools
		return string(raw), nil
	}
	return deviceID, nil
}

func SetGPSDeviceActive(ctx context.Context, st store.Store, deviceID string, active bool) error {
	return st.Update(ctx, GPSDevicePath(deviceID), map[string]any{"active": active})
}

func FindGPSDevice(ctx context.Context, st store.Store, deviceID string) (*model.GPSDeviceModel, error) {
	var dev model.GPSDeviceModel
	if err := st.Get(ctx, GPSDevicePath(deviceID), &dev); err != nil {
		return nil, err
	}
	return &dev, nil
}

/* ====================== SEQUENCE ====================== */

// ReserveWorkerID atomically reserves max(candidate, last reserved + 1).
func ReserveWorkerID(ctx context.Context, st store.Store, candidate int64) (int64, error) {
	var reserved int64
	err := st.Transaction(ctx, WorkerIDSequencePath, func(current []byte) (any, error) {
		next := candidate
		if current != nil {
			var last int64
			if err := sonic.Unmarshal(current, &last); err != nil {
				return nil, fmt.Errorf("decode worker id sequence: %w", err)
			}
			if last+1 > next {
				next = last + 1
			}
		}
		reserved = next
		return next, nil
	})
	if err != nil {
		return 0, err
	}
	return reserved, nil
}
