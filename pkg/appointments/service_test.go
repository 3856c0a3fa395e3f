package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/caremesh/hospital/pkg/common/models"
)

func TestCreateRejectsBadInput(t *testing.T) {
	service := NewService(nil, nil, nil)

	cases := []models.CreateAppointmentRequest{
		{DoctorID: 1, Date: "2026-05-01", AppointmentTime: "10:30"},
		{PatientID: 1, Date: "2026-05-01", AppointmentTime: "10:30"},
		{PatientID: 1, DoctorID: 1, Date: "01-05-2026", AppointmentTime: "10:30"},
		{PatientID: 1, DoctorID: 1, Date: "2026-05-01"},
	}
	for i, req := range cases {
		if _, err := service.Create(context.Background(), req); !IsValidationError(err) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestUpdateStatusRejectsUnknownTarget(t *testing.T) {
	service := NewService(nil, nil, nil)

	if err := service.UpdateStatus(context.Background(), 1, StatusScheduled); !IsValidationError(err) {
		t.Fatalf("expected validation error for Scheduled target, got %v", err)
	}
	if err := service.UpdateStatus(context.Background(), 1, "Postponed"); !IsValidationError(err) {
		t.Fatalf("expected validation error for unknown target, got %v", err)
	}
}

func TestParseDateLayouts(t *testing.T) {
	parsed, err := parseDate("2026-05-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Year() != 2026 || parsed.Month() != time.May {
		t.Fatalf("unexpected parsed date: %v", parsed)
	}

	if _, err := parseDate("2026-05-01T09:00:00Z"); err != nil {
		t.Fatalf("expected RFC3339 to parse, got %v", err)
	}
	if _, err := parseDate(""); err == nil {
		t.Fatal("expected error for empty date")
	}
	if _, err := parseDate("May 1st"); err == nil {
		t.Fatal("expected error for unparseable date")
	}
}
