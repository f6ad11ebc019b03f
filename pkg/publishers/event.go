package publishers

import (
	"time"

	"github.com/hrsync-hq/bamboo-sync/internal/domain"
)

// Event represents the payload published downstream for one exported employee record.
type Event struct {
	ReportID    string                `json:"report_id"`
	ReportTitle string                `json:"report_title"`
	Employee    domain.EmployeeRecord `json:"employee"`
	ExportedAt  time.Time             `json:"exported_at"`
}

// NewEvent constructs an Event for the given report + employee record.
func NewEvent(reportID, reportTitle string, employee domain.EmployeeRecord) Event {
	return Event{
		ReportID:    reportID,
		ReportTitle: reportTitle,
		Employee:    employee,
		ExportedAt:  time.Now().UTC(),
	}
}
