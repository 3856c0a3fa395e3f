package appointments

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("appointment not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&Appointment{})
}

func (r *Repository) Create(ctx context.Context, appt *Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

func (r *Repository) Get(ctx context.Context, appointmentID int64) (*Appointment, error) {
	var appt Appointment
	result := r.db.WithContext(ctx).First(&appt, "appointment_id = ?", appointmentID)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &appt, result.Error
}

func (r *Repository) List(ctx context.Context) ([]Appointment, error) {
	var list []Appointment
	err := r.db.WithContext(ctx).Order("appointment_id").Find(&list).Error
	return list, err
}

// UpdateStatus is conditioned on the current status so a concurrent
// transition cannot be overwritten blindly.
func (r *Repository) UpdateStatus(ctx context.Context, appointmentID int64, from, to string) error {
	res := r.db.WithContext(ctx).Model(&Appointment{}).
		Where("appointment_id = ? AND status = ?", appointmentID, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the appointment and reseeds the identifier sequence to
// the maximum remaining ID, so freed IDs are handed out again. This is
// preserved from the legacy system, including the race it creates when a
// concurrent insert lands between the delete and the reseed.
func (r *Repository) Delete(ctx context.Context, appointmentID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&Appointment{}, "appointment_id = ?", appointmentID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		return tx.Exec(`
			SELECT setval(
				pg_get_serial_sequence('appointments', 'appointment_id'),
				COALESCE((SELECT MAX(appointment_id) FROM appointments), 0) + 1,
				false)`).Error
	})
}

func (r *Repository) PatientExists(ctx context.Context, patientID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("patients").
		Where("patient_id = ?", patientID).
		Count(&count).Error
	return count > 0, err
}
