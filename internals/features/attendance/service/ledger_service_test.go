package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"worknest_backend/internals/features/attendance/model"
	workerModel "worknest_backend/internals/features/workers/model"
	workerRepo "worknest_backend/internals/features/workers/repository"
	workerService "worknest_backend/internals/features/workers/service"
	"worknest_backend/internals/store"

	"github.com/xuri/excelize/v2"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.ClockEvent
	err    error
}

func (p *recordingPublisher) PublishClock(_ context.Context, ev model.ClockEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func strPtr(s string) *string { return &s }

func fixedClock(hh, mm, ss int) func() time.Time {
	return func() time.Time { return time.Date(2024, 3, 1, hh, mm, ss, 0, time.UTC) }
}

func newLedger(t *testing.T, clock func() time.Time) (*LedgerService, store.Store, *recordingPublisher) {
	t.Helper()
	st := store.NewMemoryStore()
	pub := &recordingPublisher{}
	return NewLedgerService(st, pub, clock, time.UTC), st, pub
}

func putWorker(t *testing.T, st store.Store, adminID string, w *workerModel.WorkerModel) {
	t.Helper()
	if err := workerRepo.CreateWorker(context.Background(), st, adminID, w); err != nil {
		t.Fatalf("create worker: %v", err)
	}
}

func TestHoursWorked(t *testing.T) {
	cases := []struct {
		in, out, want string
	}{
		{"09:00:00", "17:30:00", "8.50"},
		{"09:00:00", "", "In progress"},
		{"", "", "N/A"},
		{"", "17:00:00", "N/A"},
		{"9am", "17:00:00", "Error"},
		{"09:00:00", "5pm", "Error"},
		{"08:15:00", "08:15:00", "0.00"},
	}
	for _, tc := range cases {
		if got := HoursWorked(tc.in, tc.out); got != tc.want {
			t.Errorf("HoursWorked(%q, %q) = %q, want %q", tc.in, tc.out, got, tc.want)
		}
	}
}

func TestGetLastAction(t *testing.T) {
	cases := []struct {
		name string
		rec  *workerModel.DayRecordModel
		want string
	}{
		{"no record", nil, "out"},
		{"empty record", &workerModel.DayRecordModel{}, "out"},
		{"clocked in", &workerModel.DayRecordModel{ClockIn: strPtr("08:00:00")}, "in"},
		{"clocked out", &workerModel.DayRecordModel{ClockIn: strPtr("08:00:00"), ClockOut: strPtr("16:00:00")}, "out"},
		{"out without in", &workerModel.DayRecordModel{ClockOut: strPtr("16:00:00")}, "out"},
	}
	for _, tc := range cases {
		if got := GetLastAction(tc.rec); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestRecordClockMergesAndTogglesGPS(t *testing.T) {
	ctx := context.Background()
	now := fixedClock(9, 0, 0)
	ledger, st, pub := newLedger(t, func() time.Time { return now() })
	putWorker(t, st, "a1", &workerModel.WorkerModel{WorkerID: "1000", WorkerName: "Dewi", WorkerGPSDeviceID: strPtr("gps-1")})

	if _, err := ledger.RecordClock(ctx, "a1", "1000", "in"); err != nil {
		t.Fatalf("clock in: %v", err)
	}
	dev, err := workerRepo.FindGPSDevice(ctx, st, "gps-1")
	if err != nil || !dev.GPSDeviceActive {
		t.Fatalf("gps should be active after clock in: %+v %v", dev, err)
	}
	if last, _ := ledger.LastAction(ctx, "a1", "1000", "2024-03-01"); last != "in" {
		t.Fatalf("last action = %s, want in", last)
	}

	now = fixedClock(17, 30, 0)
	if _, err := ledger.RecordClock(ctx, "a1", "1000", "out"); err != nil {
		t.Fatalf("clock out: %v", err)
	}
	rec, err := workerRepo.FindDayRecord(ctx, st, "a1", "1000", "2024-03-01")
	if err != nil {
		t.Fatalf("read record: %v", err)
	}
	if rec.ClockIn == nil || *rec.ClockIn != "09:00:00" || rec.ClockOut == nil || *rec.ClockOut != "17:30:00" {
		t.Fatalf("clock out dropped the sibling field: %+v", rec)
	}
	dev, _ = workerRepo.FindGPSDevice(ctx, st, "gps-1")
	if dev.GPSDeviceActive {
		t.Fatalf("gps should be inactive after clock out")
	}

	if len(pub.events) != 2 || pub.events[1].ClockEventAction != "out" || pub.events[1].ClockEventGPSDeviceID != "gps-1" {
		t.Fatalf("unexpected events %+v", pub.events)
	}
}

func TestRecordClockWithoutDeviceAndFailingPublisher(t *testing.T) {
	ctx := context.Background()
	ledger, st, pub := newLedger(t, fixedClock(8, 0, 0))
	pub.err = errors.New("broker down")
	putWorker(t, st, "a1", &workerModel.WorkerModel{WorkerID: "1000", WorkerName: "Budi"})

	if _, err := ledger.RecordClock(ctx, "a1", "1000", "in"); err != nil {
		t.Fatalf("publisher failure must not fail the clock: %v", err)
	}
	var devices map[string]any
	if err := st.Get(ctx, "gps_devices", &devices); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("no device should be touched, got %v %v", devices, err)
	}
}

func TestRecordClockRejects(t *testing.T) {
	ctx := context.Background()
	ledger, st, _ := newLedger(t, fixedClock(8, 0, 0))
	putWorker(t, st, "a1", &workerModel.WorkerModel{WorkerID: "1000", WorkerName: "Budi"})

	if _, err := ledger.RecordClock(ctx, "a1", "1000", "lunch"); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
	if _, err := ledger.RecordClock(ctx, "a1", "9999", "in"); !errors.Is(err, workerService.ErrWorkerNotFound) {
		t.Fatalf("expected ErrWorkerNotFound, got %v", err)
	}
}

func seedAttendance(t *testing.T, st store.Store) {
	putWorker(t, st, "a1", &workerModel.WorkerModel{
		WorkerID: "1000", WorkerName: "Ani",
		WorkerAttendance: map[string]workerModel.DayRecordModel{
			"2024-03-01": {ClockIn: strPtr("09:00:00"), ClockOut: strPtr("17:30:00")},
		},
	})
	putWorker(t, st, "a1", &workerModel.WorkerModel{
		WorkerID: "1001", WorkerName: "Bayu",
		WorkerAttendance: map[string]workerModel.DayRecordModel{
			"2024-03-01": {ClockIn: strPtr("10:00:00")},
		},
	})
	putWorker(t, st, "a1", &workerModel.WorkerModel{
		WorkerID: "1002", WorkerName: "Citra",
		WorkerAttendance: map[string]workerModel.DayRecordModel{
			"2024-02-28": {ClockIn: strPtr("10:00:00")},
		},
	})
	putWorker(t, st, "a2", &workerModel.WorkerModel{
		WorkerID: "1003", WorkerName: "Elsewhere",
		WorkerAttendance: map[string]workerModel.DayRecordModel{
			"2024-03-01": {ClockIn: strPtr("10:00:00")},
		},
	})
}

func TestListAttendanceIncludesOnlyWorkersWithRecord(t *testing.T) {
	ctx := context.Background()
	ledger, st, _ := newLedger(t, fixedClock(12, 0, 0))
	seedAttendance(t, st)

	rows, err := ledger.ListAttendance(ctx, "a1", "2024-03-01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %+v", rows)
	}
	if rows[0].AttendanceWorkerID != "1000" || rows[0].AttendanceHoursWorked != "8.50" || rows[0].AttendanceStatus != "Present" {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[1].AttendanceWorkerID != "1001" || rows[1].AttendanceHoursWorked != "In progress" || rows[1].AttendanceClockOut != "" {
		t.Fatalf("row 1 = %+v", rows[1])
	}

	empty, err := ledger.ListAttendance(ctx, "a1", "2024-01-01")
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected no rows: %v %v", empty, err)
	}
}

func TestListAttendanceReportsNonStringClockAsError(t *testing.T) {
	ctx := context.Background()
	ledger, st, _ := newLedger(t, fixedClock(12, 0, 0))
	putWorker(t, st, "a1", &workerModel.WorkerModel{WorkerID: "1000", WorkerName: "Ani"})
	putWorker(t, st, "a1", &workerModel.WorkerModel{WorkerID: "1001", WorkerName: "Budi"})

	if err := st.Update(ctx, "admin/a1/workers/1000/2024-03-01", map[string]any{"clock_in": 900, "clock_out": "17:00:00"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := st.Update(ctx, "admin/a1/workers/1001/2024-03-01", map[string]any{"clock_in": "09:00:00", "clock_out": "17:00:00"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rows, err := ledger.ListAttendance(ctx, "a1", "2024-03-01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected both workers listed, got %+v", rows)
	}
	if rows[0].AttendanceWorkerID != "1000" || rows[0].AttendanceHoursWorked != "Error" || rows[0].AttendanceClockIn != "900" {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[1].AttendanceHoursWorked != "8.00" {
		t.Fatalf("row 1 = %+v", rows[1])
	}
}

func TestDashboardStats(t *testing.T) {
	ledger, st, _ := newLedger(t, fixedClock(12, 0, 0))
	seedAttendance(t, st)

	stats, err := ledger.DashboardStats(context.Background(), "a1", "2024-03-01")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalWorkers != 3 || stats.ClockedIn != 1 || stats.ClockedOut != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestExportCSV(t *testing.T) {
	ctx := context.Background()
	ledger, st, _ := newLedger(t, fixedClock(12, 0, 0))
	seedAttendance(t, st)
	exp := NewExportService(ledger)

	data, err := exp.ExportCSV(ctx, "a1", "2024-03-01")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if lines[0] != "Worker ID,Name,Clock In,Clock Out,Status,Hours Worked" {
		t.Fatalf("header = %q", lines[0])
	}
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 lines, got %q", lines)
	}
	if lines[1] != "1000,Ani,09:00:00,17:30:00,Present,8.50" {
		t.Fatalf("line 1 = %q", lines[1])
	}

	if _, err := exp.ExportCSV(ctx, "a1", "2023-12-31"); !errors.Is(err, ErrNoAttendanceRows) {
		t.Fatalf("expected ErrNoAttendanceRows, got %v", err)
	}
}

func TestExportXLSX(t *testing.T) {
	ctx := context.Background()
	ledger, st, _ := newLedger(t, fixedClock(12, 0, 0))
	seedAttendance(t, st)

	data, err := NewExportService(ledger).ExportXLSX(ctx, "a1", "2024-03-01")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(ExportSheetName)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 || rows[0][0] != "Worker ID" || rows[2][5] != "In progress" {
		t.Fatalf("sheet = %v", rows)
	}
}
