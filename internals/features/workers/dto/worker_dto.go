package dto

import (
	"strings"

	"worknest_backend/internals/features/workers/model"
	"worknest_backend/internals/features/workers/service"
)

// WorkerForm is the register / edit form. Empty optional fields are stored absent.
// gps_device_id becomes a store key, so key characters are refused.
type WorkerForm struct {
	Name          string `form:"name" validate:"required,max=100"`
	RFIDID        string `form:"rfid_id" validate:"omitempty,max=128"`
	FingerprintID string `form:"fingerprint_id" validate:"omitempty,max=128"`
	GPSDeviceID   string `form:"gps_device_id" validate:"omitempty,max=128,excludesall=./$#[]"`
	IsAdminRaw    string `form:"is_admin"`
}

func (f *WorkerForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.RFIDID = strings.TrimSpace(f.RFIDID)
	f.FingerprintID = strings.TrimSpace(f.FingerprintID)
	f.GPSDeviceID = strings.TrimSpace(f.GPSDeviceID)
}

// IsAdmin follows HTML checkbox semantics.
func (f WorkerForm) IsAdmin() bool {
	return f.IsAdminRaw == "on" || f.IsAdminRaw == "true" || f.IsAdminRaw == "1"
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (f WorkerForm) ToInput() service.WorkerInput {
	return service.WorkerInput{
		Name:          f.Name,
		RFIDID:        optional(f.RFIDID),
		FingerprintID: optional(f.FingerprintID),
		GPSDeviceID:   optional(f.GPSDeviceID),
		IsAdmin:       f.IsAdmin(),
	}
}

// WorkerFormView is what the template reads back into the inputs.
type WorkerFormView struct {
	Name          string
	RFIDID        string
	FingerprintID string
	GPSDeviceID   string
	IsAdmin       bool
}

func (f WorkerForm) View() WorkerFormView {
	return WorkerFormView{
		Name:          f.Name,
		RFIDID:        f.RFIDID,
		FingerprintID: f.FingerprintID,
		GPSDeviceID:   f.GPSDeviceID,
		IsAdmin:       f.IsAdmin(),
	}
}

func FromModel(w *model.WorkerModel) WorkerFormView {
	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	return WorkerFormView{
		Name:          w.WorkerName,
		RFIDID:        deref(w.WorkerRFIDID),
		FingerprintID: deref(w.WorkerFingerprintID),
		GPSDeviceID:   w.GPSDeviceID(),
		IsAdmin:       w.WorkerIsAdmin,
	}
}
