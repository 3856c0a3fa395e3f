package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/caremesh/hospital/pkg/common/kafka"
	"github.com/caremesh/hospital/pkg/common/logger"
	"github.com/caremesh/hospital/pkg/common/models"
)

// ErrInvalidState means the requested payment transition violates the
// ledger invariant, e.g. Paid with an amount below the total.
var ErrInvalidState = errors.New("payment status violates billing invariant")

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

const eventSource = "billing"

type Service struct {
	repo     *Repository
	policy   Policy
	producer *kafka.Producer
	now      func() time.Time
}

func NewService(repo *Repository, policy Policy, producer *kafka.Producer) *Service {
	return &Service{
		repo:     repo,
		policy:   policy,
		producer: producer,
		now:      time.Now,
	}
}

func (s *Service) Policy() Policy {
	return s.policy
}

// Create aggregates line items and flat charges into a ledger entry.
// TotalAmount = sum(quantity x price) + service charges + room charges +
// consultation fee, where room charges are derived from the active stay's
// room rate.
func (s *Service) Create(ctx context.Context, req models.CreateBillingRequest) (*Billing, error) {
	if err := validateBilling(req); err != nil {
		return nil, err
	}

	bill, err := s.repo.CreateFromProfile(ctx, req.PatientID, func(profile *PatientProfile) (*Billing, error) {
		var roomCharges float64
		if profile.Admitted {
			days := billableDays(req.StayFrom, req.StayTo, s.policy.DefaultBillingDays)
			roomCharges = float64(days) * profile.CostPerDay
		}

		medicationCharges, itemsTotal := sumItems(req.Items)
		total := itemsTotal + req.ServiceCharges + roomCharges + req.ConsultationFee

		status, amountPaid, err := initialPayment(req.PaymentStatus, req.AmountPaid, total)
		if err != nil {
			return nil, err
		}

		itemsJSON, err := json.Marshal(req.Items)
		if err != nil {
			return nil, fmt.Errorf("encoding line items: %w", err)
		}

		return &Billing{
			PatientID:         req.PatientID,
			BillingDate:       s.now(),
			ServiceCharges:    req.ServiceCharges,
			MedicationCharges: medicationCharges,
			RoomCharges:       roomCharges,
			ConsultationFee:   req.ConsultationFee,
			TotalAmount:       total,
			AmountPaid:        amountPaid,
			Status:            status,
			PaymentMethod:     req.PaymentMethod,
			Notes:             req.Notes,
			Items:             itemsJSON,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "billing.created", map[string]interface{}{
		"billing_id":   bill.BillingID,
		"patient_id":   bill.PatientID,
		"total_amount": bill.TotalAmount,
		"status":       bill.Status,
	})

	return bill, nil
}

func (s *Service) UpdateStatus(ctx context.Context, billingID int64, req models.UpdateBillingStatusRequest) error {
	err := s.repo.UpdateStatus(ctx, billingID, func(total float64) (string, float64, error) {
		return nextPayment(req.Status, req.AmountPaid, total)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, "billing.status_updated", map[string]interface{}{
		"billing_id": billingID,
		"status":     req.Status,
	})
	return nil
}

func (s *Service) Delete(ctx context.Context, billingID int64) error {
	return s.repo.Delete(ctx, billingID)
}

func (s *Service) Get(ctx context.Context, billingID int64) (*Billing, error) {
	return s.repo.Get(ctx, billingID)
}

func (s *Service) List(ctx context.Context, patientID int64) ([]Billing, error) {
	if patientID > 0 {
		return s.repo.ListByPatient(ctx, patientID)
	}
	return s.repo.List(ctx)
}

func (s *Service) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishEvent(ctx, eventType, eventSource, data); err != nil {
		logger.Log.WithError(err).WithField("event_type", eventType).Warn("failed to publish event")
	}
}

func validateBilling(req models.CreateBillingRequest) error {
	if req.PatientID <= 0 {
		return invalid("patient_id is required")
	}
	if req.ServiceCharges < 0 {
		return invalid("service_charges must not be negative")
	}
	if req.ConsultationFee < 0 {
		return invalid("consultation_fee must not be negative")
	}
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return invalid("item %d: quantity must be positive", i)
		}
		if item.Price < 0 {
			return invalid("item %d: price must not be negative", i)
		}
	}
	switch req.PaymentStatus {
	case "", StatusUnpaid, StatusPartial, StatusPaid:
	default:
		return invalid("payment_status must be %s, %s or %s", StatusUnpaid, StatusPartial, StatusPaid)
	}
	return nil
}

func sumItems(items []models.BillingLineItem) (medicationCharges, total float64) {
	for _, item := range items {
		line := float64(item.Quantity) * item.Price
		total += line
		if item.Type == "Medication" {
			medicationCharges += line
		}
	}
	return medicationCharges, total
}

// billableDays derives the number of room days from the supplied stay
// window, falling back to the policy default when the window is absent or
// unusable. Partial days round up and a same-day stay still bills one day.
func billableDays(from, to string, policyDays int) int {
	start, err1 := parseDay(from)
	end, err2 := parseDay(to)
	if err1 != nil || err2 != nil || end.Before(start) {
		return policyDays
	}
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

func parseDay(value string) (time.Time, error) {
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

// initialPayment normalizes the requested payment state at creation time.
// Paid forces AmountPaid to the computed total regardless of the supplied
// value; Unpaid forces zero.
func initialPayment(status string, amountPaid, total float64) (string, float64, error) {
	switch status {
	case "", StatusUnpaid:
		return StatusUnpaid, 0, nil
	case StatusPaid:
		return StatusPaid, total, nil
	case StatusPartial:
		if amountPaid < 0 || amountPaid > total {
			return "", 0, invalid("partial amount_paid must be between 0 and the total amount")
		}
		return StatusPartial, amountPaid, nil
	default:
		return "", 0, invalid("unknown payment status %q", status)
	}
}

// nextPayment validates a status transition on an existing entry against
// the stored total before anything is written.
func nextPayment(status string, amountPaid, total float64) (string, float64, error) {
	switch status {
	case StatusUnpaid:
		return StatusUnpaid, 0, nil
	case StatusPaid:
		if amountPaid < total {
			return "", 0, ErrInvalidState
		}
		return StatusPaid, total, nil
	case StatusPartial:
		if amountPaid <= 0 || amountPaid >= total {
			return "", 0, ErrInvalidState
		}
		return StatusPartial, amountPaid, nil
	default:
		return "", 0, ErrInvalidState
	}
}
