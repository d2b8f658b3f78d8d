package remind

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func day(offset int) time.Time {
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func sampleMOU() MOU {
	return MOU{
		ID:                    7,
		Title:                 "Research Collaboration",
		OrganizationName:      "Acme Labs",
		Status:                "active",
		EndDate:               day(10),
		CoordinatorName:       "Dr. Rao",
		CoordinatorEmail:      "rao@example.edu",
		StaffCoordinatorEmail: "staff@example.edu",
		Events: []Event{
			{Title: "Kickoff", DueDate: day(-30), Status: EventCompleted},
			{Title: "Workshop", DueDate: day(5), Status: EventPending},
			{Title: "Site Visit", DueDate: day(8), Status: EventPending},
		},
	}
}

func TestComposeScenario(t *testing.T) {
	msg := Compose(sampleMOU(), day(0))

	if len(msg.Recipients) != 2 {
		t.Fatalf("expected 2 recipients, got %v", msg.Recipients)
	}
	if msg.Subject != "Monthly MOU Update: Research Collaboration" {
		t.Fatalf("unexpected subject: %s", msg.Subject)
	}

	for _, want := range []string{
		"Dear Dr. Rao,",
		"Organization: Acme Labs",
		"Status: ACTIVE",
		"Valid Until: 2026-09-11",
		"Days Remaining: 10 days",
		"Total Events: 3",
		"Completed: 1",
		"Pending: 2",
		"⚠️ WARNING: This MOU will expire in less than 30 days!",
		"- Workshop (Due: 2026-09-06)",
		"- Site Visit (Due: 2026-09-09)",
	} {
		if !strings.Contains(msg.Body, want) {
			t.Fatalf("body missing %q:\n%s", want, msg.Body)
		}
	}
}

func TestComposeRecipientDedup(t *testing.T) {
	mou := sampleMOU()
	mou.StaffCoordinatorEmail = mou.CoordinatorEmail

	msg := Compose(mou, day(0))
	if len(msg.Recipients) != 1 {
		t.Fatalf("expected deduplicated recipients, got %v", msg.Recipients)
	}

	mou.CoordinatorEmail = ""
	mou.StaffCoordinatorEmail = ""
	msg = Compose(mou, day(0))
	if len(msg.Recipients) != 0 {
		t.Fatalf("expected no recipients, got %v", msg.Recipients)
	}
}

func TestComposeCaseSensitiveAddresses(t *testing.T) {
	mou := sampleMOU()
	mou.CoordinatorEmail = "Rao@example.edu"
	mou.StaffCoordinatorEmail = "rao@example.edu"

	msg := Compose(mou, day(0))
	if len(msg.Recipients) != 2 {
		t.Fatalf("addresses must be compared as given, got %v", msg.Recipients)
	}
}

func TestComposeFallbacks(t *testing.T) {
	mou := sampleMOU()
	mou.CoordinatorName = ""
	mou.OrganizationName = ""

	msg := Compose(mou, day(0))
	if !strings.Contains(msg.Body, "Dear Coordinator,") {
		t.Fatalf("expected coordinator fallback:\n%s", msg.Body)
	}
	if !strings.Contains(msg.Body, "Organization: N/A") {
		t.Fatalf("expected organization fallback:\n%s", msg.Body)
	}
}

func TestComposeNegativeDaysRemaining(t *testing.T) {
	mou := sampleMOU()
	mou.EndDate = day(-5)

	msg := Compose(mou, day(0))
	if !strings.Contains(msg.Body, "Days Remaining: -5 days") {
		t.Fatalf("expected negative days rendered as-is:\n%s", msg.Body)
	}
	if !strings.Contains(msg.Body, "WARNING:") {
		t.Fatalf("expected warning for expired MOU:\n%s", msg.Body)
	}
}

func TestComposeWarningThreshold(t *testing.T) {
	mou := sampleMOU()

	mou.EndDate = day(31)
	if msg := Compose(mou, day(0)); strings.Contains(msg.Body, "WARNING:") {
		t.Fatalf("no warning expected at 31 days:\n%s", msg.Body)
	}

	mou.EndDate = day(30)
	if msg := Compose(mou, day(0)); !strings.Contains(msg.Body, "WARNING:") {
		t.Fatalf("warning expected at 30 days:\n%s", msg.Body)
	}
}

func TestComposePendingListTruncation(t *testing.T) {
	mou := sampleMOU()
	mou.Events = nil
	for i := 0; i < 7; i++ {
		mou.Events = append(mou.Events, Event{
			Title:   fmt.Sprintf("Event %d", i),
			DueDate: day(i),
			Status:  EventPending,
		})
	}

	msg := Compose(mou, day(0))
	if !strings.Contains(msg.Body, "- Event 4 (Due:") {
		t.Fatalf("expected the fifth pending event listed:\n%s", msg.Body)
	}
	if strings.Contains(msg.Body, "- Event 5 (Due:") {
		t.Fatalf("expected the sixth pending event omitted:\n%s", msg.Body)
	}
	if !strings.Contains(msg.Body, "... and 2 more") {
		t.Fatalf("expected remainder count:\n%s", msg.Body)
	}
}

func TestComposeNoPendingSection(t *testing.T) {
	mou := sampleMOU()
	mou.Events = []Event{{Title: "Kickoff", DueDate: day(-30), Status: EventCompleted}}

	msg := Compose(mou, day(0))
	if strings.Contains(msg.Body, "Pending Events:") {
		t.Fatalf("no pending section expected:\n%s", msg.Body)
	}
}

func TestDaysRemainingIgnoresTimeOfDay(t *testing.T) {
	end := time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 23, 45, 0, 0, time.UTC)

	if got := DaysRemaining(end, now); got != 10 {
		t.Fatalf("expected 10 days, got %d", got)
	}
}
