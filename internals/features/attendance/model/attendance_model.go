// file: internals/features/attendance/model/attendance_model.go
package model

const (
	ActionIn  = "in"
	ActionOut = "out"

	StatusPresent = "Present"

	HoursInProgress = "In progress"
	HoursNA         = "N/A"
	HoursError      = "Error"
)

// AttendanceRow is one worker's projection for one date.
type AttendanceRow struct {
	AttendanceWorkerID    string `json:"worker_id"`
	AttendanceName        string `json:"name"`
	AttendanceClockIn     string `json:"clock_in"`
	AttendanceClockOut    string `json:"clock_out"`
	AttendanceStatus      string `json:"status"`
	AttendanceHoursWorked string `json:"hours_worked"`
}

// DashboardStats counts today's state across an admin's workers.
type DashboardStats struct {
	TotalWorkers int `json:"total_workers"`
	ClockedIn    int `json:"clocked_in"`
	ClockedOut   int `json:"clocked_out"`
}

// ClockEvent is published after a clock action is stored.
type ClockEvent struct {
	ClockEventAdminID     string `json:"admin_id"`
	ClockEventWorkerID    string `json:"worker_id"`
	ClockEventAction      string `json:"action"`
	ClockEventDate        string `json:"date"`
	ClockEventTime        string `json:"time"`
	ClockEventGPSDeviceID string `json:"gps_device_id,omitempty"`
}
