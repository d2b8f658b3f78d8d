package remind

import "time"

// Event statuses as stored by the record-keeping system.
const (
	EventPending   = "Pending"
	EventCompleted = "Completed"
)

// Event is a read-only projection of an activity attached to an MOU.
type Event struct {
	Title   string
	DueDate time.Time
	Status  string
}

// MOU is a read-only projection of a Memorandum of Understanding. The
// engine never mutates these records; they are owned by the CRUD system.
type MOU struct {
	ID                    int64
	Title                 string
	OrganizationName      string
	Status                string
	EndDate               time.Time
	CoordinatorName       string
	CoordinatorEmail      string
	StaffCoordinatorEmail string
	Events                []Event
}

// EventCounts aggregates the MOU's events by status.
func (m MOU) EventCounts() (total, completed, pending int) {
	total = len(m.Events)
	for _, event := range m.Events {
		switch event.Status {
		case EventCompleted:
			completed++
		case EventPending:
			pending++
		}
	}

	return total, completed, pending
}

// PendingEvents returns the events still pending, in stored order.
func (m MOU) PendingEvents() []Event {
	var pending []Event
	for _, event := range m.Events {
		if event.Status == EventPending {
			pending = append(pending, event)
		}
	}

	return pending
}

// DaysRemaining returns the number of calendar days between now and the end
// date. The result is negative once the end date has passed; callers render
// it as-is.
func DaysRemaining(end, now time.Time) int {
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	return int(endDay.Sub(nowDay) / (24 * time.Hour))
}
