// file: internals/features/workers/model/worker_model.go
package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/bytedance/sonic"
)

const DateLayout = "2006-01-02"

/*
Remote shape of a worker node:

	admin/{admin_id}/workers/{worker_id}
	  name, rfid_id, fingerprint_id, gps_device_id, is_admin
	  {YYYY-MM-DD}/{clock_in, clock_out}

Day records sit next to the identity fields, so the JSON codec is custom.
*/
type WorkerModel struct {
	WorkerID            string                    `json:"-"`
	WorkerName          string                    `json:"name"`
	WorkerRFIDID        *string                   `json:"rfid_id,omitempty"`
	WorkerFingerprintID *string                   `json:"fingerprint_id,omitempty"`
	WorkerGPSDeviceID   *string                   `json:"gps_device_id,omitempty"`
	WorkerIsAdmin       bool                      `json:"is_admin"`
	WorkerAttendance    map[string]DayRecordModel `json:"-"`
}

// DayRecordModel is one worker's clock pair for one date (HH:MM:SS strings as stored).
type DayRecordModel struct {
	ClockIn  *string `json:"clock_in,omitempty"`
	ClockOut *string `json:"clock_out,omitempty"`
}

func IsDateKey(key string) bool {
	if len(key) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, key)
	return err == nil
}

// identity fields only; alias drops the custom methods
type workerFields WorkerModel

func (w WorkerModel) MarshalJSON() ([]byte, error) {
	base, err := sonic.Marshal(workerFields(w))
	if err != nil {
		return nil, err
	}
	if len(w.WorkerAttendance) == 0 {
		return base, nil
	}
	var out map[string]any
	if err := sonic.Unmarshal(base, &out); err != nil {
		return nil, err
	}
	for date, rec := range w.WorkerAttendance {
		out[date] = rec
	}
	return sonic.Marshal(out)
}

// UnmarshalJSON never rejects an object node: odd field types become text
// so one bad record cannot break a scan over every admin.
func (w *WorkerModel) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("worker node: %w", err)
	}

	out := WorkerModel{WorkerID: w.WorkerID}
	if name := looseString(raw["name"]); name != nil {
		out.WorkerName = *name
	}
	out.WorkerRFIDID = looseString(raw["rfid_id"])
	out.WorkerFingerprintID = looseString(raw["fingerprint_id"])
	out.WorkerGPSDeviceID = looseString(raw["gps_device_id"])
	out.WorkerIsAdmin = looseBool(raw["is_admin"])

	for key, val := range raw {
		if !IsDateKey(key) {
			continue
		}
		var rec DayRecordModel
		if err := sonic.Unmarshal(val, &rec); err != nil {
			// a non-object under a date key is not a day record
			continue
		}
		if out.WorkerAttendance == nil {
			out.WorkerAttendance = map[string]DayRecordModel{}
		}
		out.WorkerAttendance[key] = rec
	}
	*w = out
	return nil
}

func (r *DayRecordModel) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.ClockIn = looseString(raw["clock_in"])
	r.ClockOut = looseString(raw["clock_out"])
	return nil
}

// looseString reads a JSON string; any other non-null value is kept as its raw text.
func looseString(raw json.RawMessage) *string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var s string
	if err := sonic.Unmarshal(raw, &s); err == nil {
		return &s
	}
	text := string(raw)
	return &text
}

func looseBool(raw json.RawMessage) bool {
	var b bool
	if err := sonic.Unmarshal(raw, &b); err == nil {
		return b
	}
	s := looseString(raw)
	return s != nil && *s == "true"
}

// DayRecord returns the record for date and whether one exists.
func (w *WorkerModel) DayRecord(date string) (DayRecordModel, bool) {
	rec, ok := w.WorkerAttendance[date]
	return rec, ok
}

func (w *WorkerModel) GPSDeviceID() string {
	if w.WorkerGPSDeviceID == nil {
		return ""
	}
	return *w.WorkerGPSDeviceID
}

// SortedWorkerIDs gives a stable iteration order over a worker map.
func SortedWorkerIDs(workers map[string]*WorkerModel) []string {
	ids := make([]string, 0, len(workers))
	for id := range workers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
