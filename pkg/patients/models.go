package patients

import "time"

const (
	TypeInpatient  = "Inpatient"
	TypeOutpatient = "Outpatient"
)

type Patient struct {
	PatientID   int64  `json:"patient_id" gorm:"primaryKey;autoIncrement;column:patient_id"`
	Name        string `json:"name" gorm:"column:name"`
	PhoneNumber string `json:"phone_number" gorm:"column:phone_number"`
	Gender      string `json:"gender" gorm:"column:gender"`
	Age         int    `json:"age" gorm:"column:age"`
	PatientType string `json:"patient_type" gorm:"column:patient_type"`
}

func (Patient) TableName() string { return "patients" }

// Inpatient is the specialization record for an admitted patient. The
// patient is currently admitted iff this row exists with a NULL
// discharge date.
type Inpatient struct {
	PatientID     int64      `json:"patient_id" gorm:"primaryKey;column:patient_id"`
	RoomID        int64      `json:"room_id" gorm:"column:room_id"`
	DoctorID      int64      `json:"doctor_id" gorm:"column:doctor_id"`
	AdmissionDate time.Time  `json:"admission_date" gorm:"column:admission_date"`
	DischargeDate *time.Time `json:"discharge_date,omitempty" gorm:"column:discharge_date"`
}

func (Inpatient) TableName() string { return "inpatients" }

type Outpatient struct {
	PatientID       int64     `json:"patient_id" gorm:"primaryKey;column:patient_id"`
	VisitDate       time.Time `json:"visit_date" gorm:"column:visit_date"`
	ConsultationFee float64   `json:"consultation_fee" gorm:"column:consultation_fee"`
}

func (Outpatient) TableName() string { return "outpatients" }
