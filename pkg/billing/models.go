package billing

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusUnpaid  = "Unpaid"
	StatusPartial = "Partial"
	StatusPaid    = "Paid"
)

// Billing is one patient's aggregated ledger entry. Invariant: Paid
// implies AmountPaid == TotalAmount, Unpaid implies AmountPaid == 0.
type Billing struct {
	BillingID         int64          `json:"billing_id" gorm:"primaryKey;autoIncrement;column:billing_id"`
	PatientID         int64          `json:"patient_id" gorm:"column:patient_id"`
	BillingDate       time.Time      `json:"billing_date" gorm:"column:billing_date"`
	ServiceCharges    float64        `json:"service_charges" gorm:"column:service_charges"`
	MedicationCharges float64        `json:"medication_charges" gorm:"column:medication_charges"`
	RoomCharges       float64        `json:"room_charges" gorm:"column:room_charges"`
	ConsultationFee   float64        `json:"consultation_fee" gorm:"column:consultation_fee"`
	TotalAmount       float64        `json:"total_amount" gorm:"column:total_amount"`
	AmountPaid        float64        `json:"amount_paid" gorm:"column:amount_paid"`
	Status            string         `json:"status" gorm:"column:status"`
	PaymentMethod     string         `json:"payment_method,omitempty" gorm:"column:payment_method"`
	Notes             string         `json:"notes,omitempty" gorm:"column:notes"`
	Items             datatypes.JSON `json:"items,omitempty" gorm:"column:items"`
}

func (Billing) TableName() string { return "billings" }

// PatientProfile is what the aggregator needs to know about a patient to
// price a bill: whether an inpatient stay is active and, if so, the room
// rate it runs at.
type PatientProfile struct {
	PatientID  int64   `gorm:"column:patient_id"`
	Admitted   bool    `gorm:"column:admitted"`
	CostPerDay float64 `gorm:"column:cost_per_day"`
}
