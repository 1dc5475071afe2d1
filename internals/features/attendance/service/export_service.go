// file: internals/features/attendance/service/export_service.go
package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"

	"worknest_backend/internals/features/attendance/model"

	"github.com/xuri/excelize/v2"
)

// ErrNoAttendanceRows means there is nothing to export for the date.
var ErrNoAttendanceRows = errors.New("no attendance rows for date")

const ExportSheetName = "Attendance"

var ExportHeader = []string{"Worker ID", "Name", "Clock In", "Clock Out", "Status", "Hours Worked"}

func exportRecord(r model.AttendanceRow) []string {
	return []string{
		r.AttendanceWorkerID,
		r.AttendanceName,
		r.AttendanceClockIn,
		r.AttendanceClockOut,
		r.AttendanceStatus,
		r.AttendanceHoursWorked,
	}
}

type ExportService struct {
	Ledger *LedgerService
}

func NewExportService(ledger *LedgerService) *ExportService {
	return &ExportService{Ledger: ledger}
}

func (s *ExportService) rows(ctx context.Context, adminID, date string) ([]model.AttendanceRow, error) {
	rows, err := s.Ledger.ListAttendance(ctx, adminID, date)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoAttendanceRows
	}
	return rows, nil
}

// ExportCSV writes the header plus one line per row, comma separated, UTF-8.
func (s *ExportService) ExportCSV(ctx context.Context, adminID, date string) ([]byte, error) {
	rows, err := s.rows(ctx, adminID, date)
	if err != nil {
		return nil, err
	}
	return EncodeCSV(rows)
}

func EncodeCSV(rows []model.AttendanceRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(ExportHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write(exportRecord(r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv flush: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportXLSX renders the same table into a single "Attendance" sheet.
func (s *ExportService) ExportXLSX(ctx context.Context, adminID, date string) ([]byte, error) {
	rows, err := s.rows(ctx, adminID, date)
	if err != nil {
		return nil, err
	}
	return EncodeXLSX(rows)
}

func EncodeXLSX(rows []model.AttendanceRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		return nil, err
	}
	if err := setRow(f, 1, ExportHeader); err != nil {
		return nil, err
	}
	for i, r := range rows {
		if err := setRow(f, i+2, exportRecord(r)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(ExportSheetName, cell, &cells)
}
