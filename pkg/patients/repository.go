package patients

import (
	"context"
	"errors"
	"time"

	"github.com/caremesh/hospital/pkg/rooms"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("patient not found")
	// ErrNotAdmitted means the patient has no inpatient stay with a NULL
	// discharge date.
	ErrNotAdmitted = errors.New("patient is not currently admitted")
)

type Repository struct {
	db    *gorm.DB
	alloc *rooms.Allocator
}

func NewRepository(db *gorm.DB, alloc *rooms.Allocator) *Repository {
	return &Repository{db: db, alloc: alloc}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&Patient{}, &Inpatient{}, &Outpatient{})
}

// CreateInpatientAdmission inserts the patient, claims the room and writes
// the inpatient specialization in one transaction. A claim conflict rolls
// the patient insert back: a patient must never exist without a valid
// placement.
func (r *Repository) CreateInpatientAdmission(ctx context.Context, patient *Patient, roomID, doctorID int64, admittedAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(patient).Error; err != nil {
			return err
		}
		if err := r.alloc.ClaimTx(ctx, tx, roomID); err != nil {
			return err
		}
		stay := &Inpatient{
			PatientID:     patient.PatientID,
			RoomID:        roomID,
			DoctorID:      doctorID,
			AdmissionDate: admittedAt,
		}
		return tx.Create(stay).Error
	})
}

func (r *Repository) CreateOutpatientAdmission(ctx context.Context, patient *Patient, visitDate time.Time, consultationFee float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(patient).Error; err != nil {
			return err
		}
		visit := &Outpatient{
			PatientID:       patient.PatientID,
			VisitDate:       visitDate,
			ConsultationFee: consultationFee,
		}
		return tx.Create(visit).Error
	})
}

func (r *Repository) Get(ctx context.Context, patientID int64) (*Patient, error) {
	var patient Patient
	result := r.db.WithContext(ctx).First(&patient, "patient_id = ?", patientID)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &patient, result.Error
}

func (r *Repository) List(ctx context.Context) ([]Patient, error) {
	var list []Patient
	err := r.db.WithContext(ctx).Order("patient_id").Find(&list).Error
	return list, err
}

func (r *Repository) UpdateDemographics(ctx context.Context, patientID int64, name, phone, gender string, age int) error {
	res := r.db.WithContext(ctx).Model(&Patient{}).
		Where("patient_id = ?", patientID).
		Updates(map[string]interface{}{
			"name":         name,
			"phone_number": phone,
			"gender":       gender,
			"age":          age,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ActiveStay returns the inpatient row with a NULL discharge date, or nil
// when the patient is not currently admitted.
func (r *Repository) ActiveStay(ctx context.Context, patientID int64) (*Inpatient, error) {
	var stay Inpatient
	result := r.db.WithContext(ctx).First(&stay, "patient_id = ? AND discharge_date IS NULL", patientID)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &stay, nil
}

// Discharge stamps the discharge date on the active stay. The write is
// conditioned on discharge_date still being NULL, so a concurrent
// discharge or delete makes this a clean ErrNotAdmitted instead of a
// double discharge. Returns the room held by the stay.
func (r *Repository) Discharge(ctx context.Context, patientID int64, dischargedAt time.Time) (int64, error) {
	stay, err := r.ActiveStay(ctx, patientID)
	if err != nil {
		return 0, err
	}
	if stay == nil {
		return 0, ErrNotAdmitted
	}

	res := r.db.WithContext(ctx).Model(&Inpatient{}).
		Where("patient_id = ? AND discharge_date IS NULL", patientID).
		Update("discharge_date", dischargedAt)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrNotAdmitted
	}
	return stay.RoomID, nil
}

// DeleteCascade removes every record owned by the patient and then the
// patient row itself, child tables first. Any failure rolls the whole
// deletion back; a missing patient row aborts it with ErrNotFound.
func (r *Repository) DeleteCascade(ctx context.Context, patientID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range []string{
			"DELETE FROM inpatients WHERE patient_id = ?",
			"DELETE FROM outpatients WHERE patient_id = ?",
			"DELETE FROM appointments WHERE patient_id = ?",
			"DELETE FROM billings WHERE patient_id = ?",
		} {
			if err := tx.Exec(stmt, patientID).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&Patient{}, "patient_id = ?", patientID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
