package billing

import (
	"errors"
	"testing"

	"github.com/caremesh/hospital/pkg/common/models"
)

func TestSumItemsSeparatesMedicationCharges(t *testing.T) {
	items := []models.BillingLineItem{
		{Description: "Paracetamol", Type: "Medication", Quantity: 2, Price: 10},
		{Description: "X-Ray", Type: "Procedure", Quantity: 1, Price: 5},
	}

	medication, total := sumItems(items)
	if medication != 20 {
		t.Fatalf("expected medication charges 20, got %v", medication)
	}
	if total != 25 {
		t.Fatalf("expected items total 25, got %v", total)
	}
}

func TestSumItemsEmpty(t *testing.T) {
	medication, total := sumItems(nil)
	if medication != 0 || total != 0 {
		t.Fatalf("expected zero charges, got %v and %v", medication, total)
	}
}

func TestBillableDaysFromStayWindow(t *testing.T) {
	if days := billableDays("2026-03-01", "2026-03-05", 3); days != 4 {
		t.Fatalf("expected 4 days, got %d", days)
	}
}

func TestBillableDaysSameDayBillsOneDay(t *testing.T) {
	if days := billableDays("2026-03-01", "2026-03-01", 3); days != 1 {
		t.Fatalf("expected same-day stay to bill 1 day, got %d", days)
	}
}

func TestBillableDaysFallsBackToPolicy(t *testing.T) {
	if days := billableDays("", "", 3); days != 3 {
		t.Fatalf("expected policy default for missing window, got %d", days)
	}
	if days := billableDays("2026-03-05", "2026-03-01", 3); days != 3 {
		t.Fatalf("expected policy default for inverted window, got %d", days)
	}
	if days := billableDays("not-a-date", "2026-03-01", 3); days != 3 {
		t.Fatalf("expected policy default for unparseable window, got %d", days)
	}
}

func TestInitialPaymentPaidForcesFullAmount(t *testing.T) {
	status, amount, err := initialPayment(StatusPaid, 1, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusPaid || amount != 25 {
		t.Fatalf("expected Paid at full total, got %s %v", status, amount)
	}
}

func TestInitialPaymentDefaultsToUnpaid(t *testing.T) {
	status, amount, err := initialPayment("", 50, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusUnpaid || amount != 0 {
		t.Fatalf("expected Unpaid with zero amount, got %s %v", status, amount)
	}
}

func TestInitialPaymentPartialBounds(t *testing.T) {
	if _, _, err := initialPayment(StatusPartial, 150, 100); !IsValidationError(err) {
		t.Fatalf("expected validation error for partial above total, got %v", err)
	}
	if _, _, err := initialPayment(StatusPartial, -1, 100); !IsValidationError(err) {
		t.Fatalf("expected validation error for negative partial, got %v", err)
	}

	status, amount, err := initialPayment(StatusPartial, 40, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusPartial || amount != 40 {
		t.Fatalf("expected Partial 40, got %s %v", status, amount)
	}
}

func TestNextPaymentRejectsShortPaid(t *testing.T) {
	if _, _, err := nextPayment(StatusPaid, 10, 25); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for Paid below total, got %v", err)
	}

	status, amount, err := nextPayment(StatusPaid, 30, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusPaid || amount != 25 {
		t.Fatalf("expected Paid clamped to total, got %s %v", status, amount)
	}
}

func TestNextPaymentPartialMustBeStrictlyBetween(t *testing.T) {
	if _, _, err := nextPayment(StatusPartial, 0, 25); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for zero partial, got %v", err)
	}
	if _, _, err := nextPayment(StatusPartial, 25, 25); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for partial equal to total, got %v", err)
	}

	status, amount, err := nextPayment(StatusPartial, 10, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusPartial || amount != 10 {
		t.Fatalf("expected Partial 10, got %s %v", status, amount)
	}
}

func TestNextPaymentUnknownStatus(t *testing.T) {
	if _, _, err := nextPayment("Settled", 25, 25); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for unknown status, got %v", err)
	}
}

func TestValidateBillingRejectsBadInput(t *testing.T) {
	cases := []models.CreateBillingRequest{
		{PatientID: 0},
		{PatientID: 1, ServiceCharges: -5},
		{PatientID: 1, ConsultationFee: -1},
		{PatientID: 1, Items: []models.BillingLineItem{{Quantity: 0, Price: 10}}},
		{PatientID: 1, Items: []models.BillingLineItem{{Quantity: 1, Price: -10}}},
		{PatientID: 1, PaymentStatus: "Settled"},
	}
	for i, req := range cases {
		if err := validateBilling(req); !IsValidationError(err) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestValidateBillingAcceptsOutpatientVisit(t *testing.T) {
	req := models.CreateBillingRequest{
		PatientID: 2,
		Items: []models.BillingLineItem{
			{Description: "Ibuprofen", Type: "Medication", Quantity: 2, Price: 10},
		},
		ServiceCharges: 5,
		PaymentStatus:  StatusUnpaid,
	}
	if err := validateBilling(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, itemsTotal := sumItems(req.Items)
	total := itemsTotal + req.ServiceCharges + req.ConsultationFee
	if total != 25 {
		t.Fatalf("expected outpatient total 25, got %v", total)
	}
}
