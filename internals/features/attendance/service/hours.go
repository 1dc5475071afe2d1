// file: internals/features/attendance/service/hours.go
package service

import (
	"fmt"

	"worknest_backend/internals/features/attendance/model"
	workerModel "worknest_backend/internals/features/workers/model"
	"worknest_backend/internals/helpers/dbtime"
)

// GetLastAction is "in" only while clock_in is set and clock_out is not.
func GetLastAction(rec *workerModel.DayRecordModel) string {
	if rec != nil && rec.ClockIn != nil && rec.ClockOut == nil {
		return model.ActionIn
	}
	return model.ActionOut
}

// HoursWorked derives the hours column. Empty strings count as unset.
func HoursWorked(clockIn, clockOut string) string {
	if clockIn == "" || clockOut == "" {
		if clockIn != "" {
			return model.HoursInProgress
		}
		return model.HoursNA
	}
	in, err := dbtime.Parse(clockIn)
	if err != nil {
		return model.HoursError
	}
	out, err := dbtime.Parse(clockOut)
	if err != nil {
		return model.HoursError
	}
	return fmt.Sprintf("%.2f", out.HoursSince(in))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NewAttendanceRow projects one worker's record for the listing and exports.
func NewAttendanceRow(w *workerModel.WorkerModel, rec workerModel.DayRecordModel) model.AttendanceRow {
	name := w.WorkerName
	if name == "" {
		name = "Unknown"
	}
	in, out := deref(rec.ClockIn), deref(rec.ClockOut)
	return model.AttendanceRow{
		AttendanceWorkerID:    w.WorkerID,
		AttendanceName:        name,
		AttendanceClockIn:     in,
		AttendanceClockOut:    out,
		AttendanceStatus:      model.StatusPresent,
		AttendanceHoursWorked: HoursWorked(in, out),
	}
}
