package remind

import (
	"fmt"
	"strings"
	"time"
)

const (
	subjectPrefix = "Monthly MOU Update: "
	dateLayout    = "2006-01-02"

	// renewalWarningDays is the threshold under which the renewal warning
	// is appended to the message body.
	renewalWarningDays = 30
	// maxListedPending caps how many pending events are listed by title;
	// beyond that only a remainder count is shown.
	maxListedPending = 5
)

// Message is a composed reminder ready for delivery.
type Message struct {
	// Recipients holds the deduplicated non-empty coordinator addresses.
	// It may be empty, in which case the record cannot be dispatched.
	Recipients []string
	Subject    string
	Body       string
}

// Compose deterministically builds the reminder message for an MOU as of
// now. Addresses are deduplicated exactly as given, with no normalization.
func Compose(m MOU, now time.Time) Message {
	var recipients []string
	if m.CoordinatorEmail != "" {
		recipients = append(recipients, m.CoordinatorEmail)
	}
	if m.StaffCoordinatorEmail != "" && m.StaffCoordinatorEmail != m.CoordinatorEmail {
		recipients = append(recipients, m.StaffCoordinatorEmail)
	}

	return Message{
		Recipients: recipients,
		Subject:    subjectPrefix + m.Title,
		Body:       composeBody(m, now),
	}
}

func composeBody(m MOU, now time.Time) string {
	coordinator := m.CoordinatorName
	if coordinator == "" {
		coordinator = "Coordinator"
	}
	organization := m.OrganizationName
	if organization == "" {
		organization = "N/A"
	}

	days := DaysRemaining(m.EndDate, now)
	total, completed, pending := m.EventCounts()

	lines := []string{
		fmt.Sprintf("Dear %s,", coordinator),
		"",
		fmt.Sprintf("This is your monthly update for the MOU: %s", m.Title),
		"",
		"MOU Details:",
		fmt.Sprintf("  Organization: %s", organization),
		fmt.Sprintf("  Status: %s", strings.ToUpper(m.Status)),
		fmt.Sprintf("  Valid Until: %s", m.EndDate.Format(dateLayout)),
		fmt.Sprintf("  Days Remaining: %d days", days),
		"",
		"Event Summary:",
		fmt.Sprintf("  Total Events: %d", total),
		fmt.Sprintf("  Completed: %d", completed),
		fmt.Sprintf("  Pending: %d", pending),
		"",
	}

	if days <= renewalWarningDays {
		lines = append(lines,
			"⚠️ WARNING: This MOU will expire in less than 30 days!",
			"Please take necessary action to renew if needed.",
			"",
		)
	}

	if pending > 0 {
		lines = append(lines, "Pending Events:")
		listed := 0
		for _, event := range m.PendingEvents() {
			if listed == maxListedPending {
				break
			}
			lines = append(lines, fmt.Sprintf("  - %s (Due: %s)", event.Title, event.DueDate.Format(dateLayout)))
			listed++
		}
		if pending > maxListedPending {
			lines = append(lines, fmt.Sprintf("  ... and %d more", pending-maxListedPending))
		}
		lines = append(lines, "")
	}

	lines = append(lines,
		"For more details, please log in to the MOU Management System.",
		"",
		"Best regards,",
		"MOU Management System",
	)

	return strings.Join(lines, "\n")
}
