package appointments

import "time"

const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

type Appointment struct {
	AppointmentID   int64     `json:"appointment_id" gorm:"primaryKey;autoIncrement;column:appointment_id"`
	PatientID       int64     `json:"patient_id" gorm:"column:patient_id"`
	DoctorID        int64     `json:"doctor_id" gorm:"column:doctor_id"`
	Date            time.Time `json:"date" gorm:"column:date"`
	AppointmentTime string    `json:"appointment_time" gorm:"column:appointment_time"`
	Reason          string    `json:"reason,omitempty" gorm:"column:reason"`
	Status          string    `json:"status" gorm:"column:status"`
}

func (Appointment) TableName() string { return "appointments" }
