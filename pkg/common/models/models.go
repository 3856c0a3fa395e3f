package models

import "time"

// Event bus envelope shared by the producer and the audit worker.
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"` // patient.admitted, patient.discharged, patient.deleted, billing.created, billing.status_updated, appointment.deleted
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]string      `json:"metadata,omitempty"`
}

// Admission
type AdmitPatientRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Gender      string `json:"gender"`
	Age         int    `json:"age"`
	PatientType string `json:"patient_type"` // Inpatient or Outpatient

	// Inpatient fields
	RoomID   int64 `json:"room_id,omitempty"`
	DoctorID int64 `json:"doctor_id,omitempty"`

	// Outpatient fields
	VisitDate       string  `json:"visit_date,omitempty"` // YYYY-MM-DD or RFC3339, time-of-day discarded
	ConsultationFee float64 `json:"consultation_fee,omitempty"`
}

type AdmitPatientResponse struct {
	PatientID int64  `json:"patient_id"`
	Status    string `json:"status"`
}

type UpdatePatientRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Gender      string `json:"gender"`
	Age         int    `json:"age"`
}

// Billing
type BillingLineItem struct {
	Type        string  `json:"type"` // Medication, Service, Procedure
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type CreateBillingRequest struct {
	PatientID       int64             `json:"patient_id"`
	Items           []BillingLineItem `json:"items,omitempty"`
	ServiceCharges  float64           `json:"service_charges,omitempty"`
	ConsultationFee float64           `json:"consultation_fee,omitempty"`
	PaymentStatus   string            `json:"payment_status,omitempty"` // Unpaid, Partial, Paid
	AmountPaid      float64           `json:"amount_paid,omitempty"`
	PaymentMethod   string            `json:"payment_method,omitempty"`
	Notes           string            `json:"notes,omitempty"`

	// Optional stay window; when absent the policy default number of
	// billing days is charged for admitted inpatients.
	StayFrom string `json:"stay_from,omitempty"`
	StayTo   string `json:"stay_to,omitempty"`
}

type UpdateBillingStatusRequest struct {
	Status     string  `json:"status"`
	AmountPaid float64 `json:"amount_paid"`
}

// Appointments
type CreateAppointmentRequest struct {
	PatientID       int64  `json:"patient_id"`
	DoctorID        int64  `json:"doctor_id"`
	Date            string `json:"date"`
	AppointmentTime string `json:"appointment_time"`
	Reason          string `json:"reason,omitempty"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status"`
}

// Rooms
type UpdateRoomStatusRequest struct {
	Status string `json:"status"` // Available or Maintenance
}
