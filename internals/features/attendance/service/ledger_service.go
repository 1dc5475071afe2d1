// file: internals/features/attendance/service/ledger_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"worknest_backend/internals/features/attendance/events"
	"worknest_backend/internals/features/attendance/model"
	workerModel "worknest_backend/internals/features/workers/model"
	workerRepo "worknest_backend/internals/features/workers/repository"
	workerService "worknest_backend/internals/features/workers/service"
	"worknest_backend/internals/helpers/dbtime"
	"worknest_backend/internals/store"
)

var ErrInvalidAction = errors.New("action must be in or out")

type LedgerService struct {
	Store     store.Store
	Publisher events.Publisher
	Clock     dbtime.Clock
	Location  *time.Location
}

func NewLedgerService(st store.Store, pub events.Publisher, clock dbtime.Clock, loc *time.Location) *LedgerService {
	if pub == nil {
		pub = events.NoopPublisher{}
	}
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &LedgerService{Store: st, Publisher: pub, Clock: clock, Location: loc}
}

func (s *LedgerService) now() time.Time { return dbtime.NowIn(s.Clock, s.Location) }

// Today is the current date in the configured zone.
func (s *LedgerService) Today() string { return dbtime.Today(s.Clock(), s.Location) }

/* ========================== CLOCK ========================== */

// LastAction reads the day record for date; a missing record reads as "out".
func (s *LedgerService) LastAction(ctx context.Context, adminID, workerID, date string) (string, error) {
	rec, err := workerRepo.FindDayRecord(ctx, s.Store, adminID, workerID, date)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.ActionOut, nil
		}
		return "", err
	}
	return GetLastAction(rec), nil
}

// RecordClock stamps now into today's record and flips the bound GPS device.
// A repeated clock-in overwrites the earlier one.
func (s *LedgerService) RecordClock(ctx context.Context, adminID, workerID, action string) (model.ClockEvent, error) {
	field := ""
	switch action {
	case model.ActionIn:
		field = "clock_in"
	case model.ActionOut:
		field = "clock_out"
	default:
		return model.ClockEvent{}, ErrInvalidAction
	}

	if _, err := workerRepo.FindWorker(ctx, s.Store, adminID, workerID); err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidPath) {
			return model.ClockEvent{}, workerService.ErrWorkerNotFound
		}
		return model.ClockEvent{}, err
	}

	now := s.now()
	ev := model.ClockEvent{
		ClockEventAdminID:  adminID,
		ClockEventWorkerID: workerID,
		ClockEventAction:   action,
		ClockEventDate:     now.Format("2006-01-02"),
		ClockEventTime:     dbtime.From(now).String(),
	}

	if err := workerRepo.UpdateDayRecord(ctx, s.Store, adminID, workerID, ev.ClockEventDate, map[string]any{
		field: ev.ClockEventTime,
	}); err != nil {
		return model.ClockEvent{}, fmt.Errorf("write %s: %w", field, err)
	}

	deviceID, err := workerRepo.FindGPSDeviceID(ctx, s.Store, adminID, workerID)
	if err != nil {
		return ev, fmt.Errorf("read gps device: %w", err)
	}
	if deviceID != "" {
		if err := workerRepo.SetGPSDeviceActive(ctx, s.Store, deviceID, action == model.ActionIn); err != nil {
			return ev, fmt.Errorf("toggle gps device %s: %w", deviceID, err)
		}
		ev.ClockEventGPSDeviceID = deviceID
	}

	if err := s.Publisher.PublishClock(ctx, ev); err != nil {
		log.Printf("[ERROR] publish clock event worker=%s action=%s: %v", workerID, action, err)
	}
	log.Printf("[INFO] worker %s clock %s at %s %s", workerID, action, ev.ClockEventDate, ev.ClockEventTime)
	return ev, nil
}

/* ========================== REPORTS ========================== */

// ListAttendance returns one row per worker that has a record on date, in id order.
func (s *LedgerService) ListAttendance(ctx context.Context, adminID, date string) ([]model.AttendanceRow, error) {
	workers, err := workerRepo.ListWorkers(ctx, s.Store, adminID)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	rows := []model.AttendanceRow{}
	for _, id := range workerModel.SortedWorkerIDs(workers) {
		w := workers[id]
		rec, ok := w.DayRecord(date)
		if !ok {
			continue
		}
		rows = append(rows, NewAttendanceRow(w, rec))
	}
	return rows, nil
}

// DashboardStats counts workers with an open or closed record on date.
func (s *LedgerService) DashboardStats(ctx context.Context, adminID, date string) (model.DashboardStats, error) {
	workers, err := workerRepo.ListWorkers(ctx, s.Store, adminID)
	if err != nil {
		return model.DashboardStats{}, err
	}
	stats := model.DashboardStats{TotalWorkers: len(workers)}
	for _, w := range workers {
		rec, ok := w.DayRecord(date)
		if !ok || rec.ClockIn == nil {
			continue
		}
		if rec.ClockOut == nil {
			stats.ClockedIn++
		} else {
			stats.ClockedOut++
		}
	}
	return stats, nil
}
