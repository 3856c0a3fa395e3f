package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/caremesh/hospital/pkg/common/kafka"
	"github.com/caremesh/hospital/pkg/common/logger"
	"github.com/caremesh/hospital/pkg/common/models"
	"github.com/caremesh/hospital/pkg/directory"
)

var (
	ErrUnknownPatient = errors.New("patient does not exist")
	ErrUnknownDoctor  = errors.New("doctor does not exist")
	// ErrInvalidTransition means the appointment is not in a state the
	// requested transition applies to.
	ErrInvalidTransition = errors.New("invalid appointment status transition")
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

const eventSource = "appointments"

type Service struct {
	repo     *Repository
	doctors  *directory.Repository
	producer *kafka.Producer
}

func NewService(repo *Repository, doctors *directory.Repository, producer *kafka.Producer) *Service {
	return &Service{repo: repo, doctors: doctors, producer: producer}
}

func (s *Service) Create(ctx context.Context, req models.CreateAppointmentRequest) (*Appointment, error) {
	if req.PatientID <= 0 {
		return nil, invalid("patient_id is required")
	}
	if req.DoctorID <= 0 {
		return nil, invalid("doctor_id is required")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, invalid("date %q is not a valid date", req.Date)
	}
	if req.AppointmentTime == "" {
		return nil, invalid("appointment_time is required")
	}

	exists, err := s.repo.PatientExists(ctx, req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("checking patient: %w", err)
	}
	if !exists {
		return nil, ErrUnknownPatient
	}

	doctorOK, err := s.doctors.DoctorExists(ctx, req.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("checking doctor: %w", err)
	}
	if !doctorOK {
		return nil, ErrUnknownDoctor
	}

	appt := &Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		Date:            date,
		AppointmentTime: req.AppointmentTime,
		Reason:          req.Reason,
		Status:          StatusScheduled,
	}
	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *Service) List(ctx context.Context) ([]Appointment, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, appointmentID int64) (*Appointment, error) {
	return s.repo.Get(ctx, appointmentID)
}

// UpdateStatus allows only Scheduled -> Completed and Scheduled ->
// Cancelled; completed and cancelled appointments are final.
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, status string) error {
	if status != StatusCompleted && status != StatusCancelled {
		return invalid("status must be %s or %s", StatusCompleted, StatusCancelled)
	}

	err := s.repo.UpdateStatus(ctx, appointmentID, StatusScheduled, status)
	if errors.Is(err, ErrNotFound) {
		// Distinguish a missing appointment from one that is simply no
		// longer Scheduled.
		if _, getErr := s.repo.Get(ctx, appointmentID); getErr == nil {
			return ErrInvalidTransition
		}
		return ErrNotFound
	}
	return err
}

func (s *Service) Delete(ctx context.Context, appointmentID int64) error {
	if err := s.repo.Delete(ctx, appointmentID); err != nil {
		return err
	}

	if s.producer != nil {
		if err := s.producer.PublishEvent(ctx, "appointment.deleted", eventSource, map[string]interface{}{
			"appointment_id": appointmentID,
		}); err != nil {
			logger.Log.WithError(err).Warn("failed to publish event")
		}
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}
