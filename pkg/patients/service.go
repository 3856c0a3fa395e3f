package patients

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/caremesh/hospital/pkg/common/kafka"
	"github.com/caremesh/hospital/pkg/common/logger"
	"github.com/caremesh/hospital/pkg/common/models"
	"github.com/caremesh/hospital/pkg/directory"
	"github.com/caremesh/hospital/pkg/rooms"
)

var (
	// Reference errors: the admission names a doctor or room that does
	// not exist.
	ErrUnknownDoctor = errors.New("doctor does not exist")
	ErrUnknownRoom   = errors.New("room does not exist")

	// ErrRoomConflict means the requested room was not Available.
	ErrRoomConflict = rooms.ErrConflict
)

const eventSource = "patients"

type Service struct {
	repo     *Repository
	alloc    *rooms.Allocator
	doctors  *directory.Repository
	producer *kafka.Producer
	now      func() time.Time
}

func NewService(repo *Repository, alloc *rooms.Allocator, doctors *directory.Repository, producer *kafka.Producer) *Service {
	return &Service{
		repo:     repo,
		alloc:    alloc,
		doctors:  doctors,
		producer: producer,
		now:      time.Now,
	}
}

// Admit creates the patient together with its specialization record. The
// whole admission is one transaction: a room conflict or any later failure
// leaves no patient row behind.
func (s *Service) Admit(ctx context.Context, req models.AdmitPatientRequest) (int64, error) {
	visitDate, err := validateAdmission(req)
	if err != nil {
		return 0, err
	}

	patient := &Patient{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
		Age:         req.Age,
		PatientType: req.PatientType,
	}

	switch req.PatientType {
	case TypeInpatient:
		exists, err := s.doctors.DoctorExists(ctx, req.DoctorID)
		if err != nil {
			return 0, fmt.Errorf("checking doctor: %w", err)
		}
		if !exists {
			return 0, ErrUnknownDoctor
		}
		if err := s.repo.CreateInpatientAdmission(ctx, patient, req.RoomID, req.DoctorID, s.now()); err != nil {
			if errors.Is(err, rooms.ErrNotFound) {
				return 0, ErrUnknownRoom
			}
			return 0, err
		}
	case TypeOutpatient:
		if err := s.repo.CreateOutpatientAdmission(ctx, patient, visitDate, req.ConsultationFee); err != nil {
			return 0, err
		}
	}

	s.publish(ctx, "patient.admitted", map[string]interface{}{
		"patient_id":   patient.PatientID,
		"patient_type": patient.PatientType,
		"room_id":      req.RoomID,
	})

	return patient.PatientID, nil
}

// Discharge stamps the discharge date first and releases the room second.
// If the process dies in between, the patient is correctly discharged and
// the room is merely stale-Occupied until the reconcile job frees it.
func (s *Service) Discharge(ctx context.Context, patientID int64) error {
	roomID, err := s.repo.Discharge(ctx, patientID, s.now())
	if err != nil {
		return err
	}

	if err := s.alloc.Release(ctx, roomID); err != nil {
		// The discharge itself is committed; the reconcile job will
		// free the room.
		logger.Log.WithError(err).WithFields(map[string]interface{}{
			"patient_id": patientID,
			"room_id":    roomID,
		}).Warn("failed to release room after discharge")
	}

	s.publish(ctx, "patient.discharged", map[string]interface{}{
		"patient_id": patientID,
		"room_id":    roomID,
	})
	return nil
}

// Delete removes the patient and every dependent record. An active stay
// has its room released first; the cascade itself is all-or-nothing.
func (s *Service) Delete(ctx context.Context, patientID int64) error {
	stay, err := s.repo.ActiveStay(ctx, patientID)
	if err != nil {
		return err
	}
	if stay != nil {
		if err := s.alloc.Release(ctx, stay.RoomID); err != nil {
			logger.Log.WithError(err).WithFields(map[string]interface{}{
				"patient_id": patientID,
				"room_id":    stay.RoomID,
			}).Warn("failed to release room before deletion")
		}
	}

	if err := s.repo.DeleteCascade(ctx, patientID); err != nil {
		return err
	}

	s.publish(ctx, "patient.deleted", map[string]interface{}{
		"patient_id": patientID,
	})
	return nil
}

func (s *Service) Get(ctx context.Context, patientID int64) (*Patient, error) {
	return s.repo.Get(ctx, patientID)
}

func (s *Service) List(ctx context.Context) ([]Patient, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateDemographics(ctx context.Context, patientID int64, req models.UpdatePatientRequest) error {
	if req.Name == "" {
		return invalid("name is required")
	}
	if req.Age <= 0 {
		return invalid("age must be positive")
	}
	return s.repo.UpdateDemographics(ctx, patientID, req.Name, req.PhoneNumber, req.Gender, req.Age)
}

// publish is best effort: the database commit is the operation, the event
// stream is an audit trail.
func (s *Service) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishEvent(ctx, eventType, eventSource, data); err != nil {
		logger.Log.WithError(err).WithField("event_type", eventType).Warn("failed to publish event")
	}
}
