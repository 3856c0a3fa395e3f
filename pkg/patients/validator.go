package patients

import (
	"errors"
	"fmt"
	"time"

	"github.com/caremesh/hospital/pkg/common/models"
)

type ValidationError struct {
	reason error
}

func (e ValidationError) Error() string {
	return e.reason.Error()
}

func (e ValidationError) Unwrap() error {
	return e.reason
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

func invalid(format string, args ...interface{}) error {
	return ValidationError{reason: fmt.Errorf(format, args...)}
}

// validateAdmission checks the request and, for outpatients, returns the
// normalized visit date so callers never parse the raw string a second
// time.
func validateAdmission(req models.AdmitPatientRequest) (time.Time, error) {
	if req.Name == "" {
		return time.Time{}, invalid("name is required")
	}
	if req.Age <= 0 {
		return time.Time{}, invalid("age must be positive")
	}

	switch req.PatientType {
	case TypeInpatient:
		if req.RoomID <= 0 {
			return time.Time{}, invalid("room_id is required for inpatient admission")
		}
		if req.DoctorID <= 0 {
			return time.Time{}, invalid("doctor_id is required for inpatient admission")
		}
	case TypeOutpatient:
		if req.VisitDate == "" {
			return time.Time{}, invalid("visit_date is required for outpatient admission")
		}
		visitDate, err := normalizeVisitDate(req.VisitDate)
		if err != nil {
			return time.Time{}, invalid("visit_date %q is not a valid date", req.VisitDate)
		}
		if req.ConsultationFee < 0 {
			return time.Time{}, invalid("consultation_fee must not be negative")
		}
		return visitDate, nil
	default:
		return time.Time{}, invalid("patient_type must be %s or %s", TypeInpatient, TypeOutpatient)
	}

	return time.Time{}, nil
}

// normalizeVisitDate parses a visit date and discards any time-of-day
// component, keeping the calendar date only.
func normalizeVisitDate(value string) (time.Time, error) {
	var parsed time.Time
	var err error
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		parsed, err = time.Parse(layout, value)
		if err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
}
