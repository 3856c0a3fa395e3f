package billing

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("billing record not found")
	ErrUnknownPatient = errors.New("patient does not exist")
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&Billing{})
}

func profileTx(tx *gorm.DB, patientID int64) (*PatientProfile, error) {
	var profiles []PatientProfile
	err := tx.Raw(`
		SELECT p.patient_id,
		       i.patient_id IS NOT NULL AS admitted,
		       COALESCE(r.cost_per_day, 0) AS cost_per_day
		FROM patients p
		LEFT JOIN inpatients i ON i.patient_id = p.patient_id AND i.discharge_date IS NULL
		LEFT JOIN rooms r ON r.room_id = i.room_id
		WHERE p.patient_id = ?`, patientID).
		Scan(&profiles).Error
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, ErrUnknownPatient
	}
	return &profiles[0], nil
}

// CreateFromProfile reads the patient's billing profile and inserts the
// ledger entry built from it inside one transaction.
func (r *Repository) CreateFromProfile(ctx context.Context, patientID int64, build func(profile *PatientProfile) (*Billing, error)) (*Billing, error) {
	var bill *Billing
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := profileTx(tx, patientID)
		if err != nil {
			return err
		}
		bill, err = build(profile)
		if err != nil {
			return err
		}
		return tx.Create(bill).Error
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

func (r *Repository) Get(ctx context.Context, billingID int64) (*Billing, error) {
	var bill Billing
	result := r.db.WithContext(ctx).First(&bill, "billing_id = ?", billingID)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &bill, result.Error
}

func (r *Repository) List(ctx context.Context) ([]Billing, error) {
	var bills []Billing
	err := r.db.WithContext(ctx).Order("billing_id").Find(&bills).Error
	return bills, err
}

func (r *Repository) ListByPatient(ctx context.Context, patientID int64) ([]Billing, error) {
	var bills []Billing
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("billing_id").
		Find(&bills).Error
	return bills, err
}

// UpdateStatus reads the entry, lets the caller validate the transition
// against the stored total, and writes the result, all in one
// transaction.
func (r *Repository) UpdateStatus(ctx context.Context, billingID int64, normalize func(total float64) (string, float64, error)) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bill Billing
		result := tx.First(&bill, "billing_id = ?", billingID)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if result.Error != nil {
			return result.Error
		}

		status, amountPaid, err := normalize(bill.TotalAmount)
		if err != nil {
			return err
		}

		return tx.Model(&Billing{}).
			Where("billing_id = ?", billingID).
			Updates(map[string]interface{}{
				"status":      status,
				"amount_paid": amountPaid,
			}).Error
	})
}

// Delete is unconditional; billing entries are leaves with no dependents.
func (r *Repository) Delete(ctx context.Context, billingID int64) error {
	res := r.db.WithContext(ctx).Delete(&Billing{}, "billing_id = ?", billingID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
