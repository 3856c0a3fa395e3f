package directory

import (
	"context"

	"gorm.io/gorm"
)

const typeDoctor = "Doctor"

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&Employee{}, &Medication{})
}

func (r *Repository) ListDoctors(ctx context.Context) ([]Employee, error) {
	var doctors []Employee
	err := r.db.WithContext(ctx).
		Where("employee_type = ?", typeDoctor).
		Order("employee_id").
		Find(&doctors).Error
	return doctors, err
}

func (r *Repository) DoctorExists(ctx context.Context, doctorID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Employee{}).
		Where("employee_id = ? AND employee_type = ?", doctorID, typeDoctor).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) ListMedications(ctx context.Context) ([]Medication, error) {
	var meds []Medication
	err := r.db.WithContext(ctx).Order("medication_id").Find(&meds).Error
	return meds, err
}
