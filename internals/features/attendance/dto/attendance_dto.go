package dto

// ClockActionRequest is POST /clock_action.
type ClockActionRequest struct {
	AdminID  string `form:"admin_id" validate:"required,excludesall=./$#[]"`
	WorkerID string `form:"worker_id" validate:"required,excludesall=./$#[]"`
	Action   string `form:"action" validate:"required,oneof=in out"`
}

// DateFilter is the ?date= query and the export form field.
type DateFilter struct {
	Date string `query:"date" form:"date" validate:"omitempty,datetime=2006-01-02"`
}
