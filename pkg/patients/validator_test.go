package patients

import (
	"testing"
	"time"

	"github.com/caremesh/hospital/pkg/common/models"
)

func TestValidateAdmissionInpatient(t *testing.T) {
	req := models.AdmitPatientRequest{
		Name:        "John Smith",
		Age:         42,
		PatientType: TypeInpatient,
		RoomID:      101,
		DoctorID:    7,
	}
	if _, err := validateAdmission(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req.RoomID = 0
	if _, err := validateAdmission(req); !IsValidationError(err) {
		t.Fatalf("expected validation error for missing room, got %v", err)
	}

	req.RoomID = 101
	req.DoctorID = 0
	if _, err := validateAdmission(req); !IsValidationError(err) {
		t.Fatalf("expected validation error for missing doctor, got %v", err)
	}
}

func TestValidateAdmissionOutpatient(t *testing.T) {
	req := models.AdmitPatientRequest{
		Name:        "Jane Doe",
		Age:         30,
		PatientType: TypeOutpatient,
		VisitDate:   "2026-04-12",
	}
	if _, err := validateAdmission(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req.VisitDate = ""
	if _, err := validateAdmission(req); !IsValidationError(err) {
		t.Fatalf("expected validation error for missing visit date, got %v", err)
	}

	req.VisitDate = "12/04/2026"
	if _, err := validateAdmission(req); !IsValidationError(err) {
		t.Fatalf("expected validation error for unparseable visit date, got %v", err)
	}

	req.VisitDate = "2026-04-12"
	req.ConsultationFee = -1
	if _, err := validateAdmission(req); !IsValidationError(err) {
		t.Fatalf("expected validation error for negative fee, got %v", err)
	}
}

func TestValidateAdmissionReturnsNormalizedVisitDate(t *testing.T) {
	req := models.AdmitPatientRequest{
		Name:        "Jane Doe",
		Age:         30,
		PatientType: TypeOutpatient,
		VisitDate:   "2026-04-12T15:30:45Z",
	}
	visitDate, err := validateAdmission(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, time.April, 12, 0, 0, 0, 0, time.UTC)
	if !visitDate.Equal(want) {
		t.Fatalf("expected normalized visit date %v, got %v", want, visitDate)
	}
}

func TestValidateAdmissionRejectsBadBasics(t *testing.T) {
	if _, err := validateAdmission(models.AdmitPatientRequest{Age: 42, PatientType: TypeOutpatient, VisitDate: "2026-04-12"}); !IsValidationError(err) {
		t.Fatalf("expected validation error for missing name, got %v", err)
	}
	if _, err := validateAdmission(models.AdmitPatientRequest{Name: "X", Age: 0, PatientType: TypeOutpatient, VisitDate: "2026-04-12"}); !IsValidationError(err) {
		t.Fatalf("expected validation error for non-positive age, got %v", err)
	}
	if _, err := validateAdmission(models.AdmitPatientRequest{Name: "X", Age: 42, PatientType: "Daycase"}); !IsValidationError(err) {
		t.Fatalf("expected validation error for unknown patient type, got %v", err)
	}
}

func TestNormalizeVisitDateDiscardsTimeOfDay(t *testing.T) {
	normalized, err := normalizeVisitDate("2026-04-12T15:30:45Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, time.April, 12, 0, 0, 0, 0, time.UTC)
	if !normalized.Equal(want) {
		t.Fatalf("expected %v, got %v", want, normalized)
	}
}

func TestNormalizeVisitDatePlainDate(t *testing.T) {
	normalized, err := normalizeVisitDate("2026-04-12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if normalized.Hour() != 0 || normalized.Location() != time.UTC {
		t.Fatalf("expected midnight UTC, got %v", normalized)
	}
}
