package billing

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/caremesh/hospital/pkg/patients"
	"github.com/caremesh/hospital/pkg/rooms"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) (*gorm.DB, *Repository, *patients.Repository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "billing.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	repo := NewRepository(db)
	patientRepo := patients.NewRepository(db, rooms.NewAllocator(db, nil))
	for _, migrate := range []func() error{
		repo.AutoMigrate,
		patientRepo.AutoMigrate,
		rooms.NewRepository(db).AutoMigrate,
	} {
		if err := migrate(); err != nil {
			t.Fatalf("failed to migrate: %v", err)
		}
	}
	return db, repo, patientRepo
}

func TestCreateFromProfileForAdmittedPatient(t *testing.T) {
	db, repo, patientRepo := openTestDB(t)

	room := &rooms.Room{RoomType: "General", Status: rooms.StatusAvailable, CostPerDay: 200}
	if err := db.Create(room).Error; err != nil {
		t.Fatalf("failed to create room: %v", err)
	}
	patient := &patients.Patient{Name: "John Smith", Age: 42, PatientType: patients.TypeInpatient}
	if err := patientRepo.CreateInpatientAdmission(context.Background(), patient, room.RoomID, 1, time.Now()); err != nil {
		t.Fatalf("admission failed: %v", err)
	}

	bill, err := repo.CreateFromProfile(context.Background(), patient.PatientID, func(profile *PatientProfile) (*Billing, error) {
		if !profile.Admitted {
			t.Fatal("expected profile to report an active stay")
		}
		if profile.CostPerDay != 200 {
			t.Fatalf("expected room rate 200, got %v", profile.CostPerDay)
		}
		return &Billing{
			PatientID:   profile.PatientID,
			BillingDate: time.Now(),
			RoomCharges: 3 * profile.CostPerDay,
			TotalAmount: 3 * profile.CostPerDay,
			Status:      StatusUnpaid,
		}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bill.BillingID == 0 {
		t.Fatal("expected a generated billing id")
	}

	stored, err := repo.Get(context.Background(), bill.BillingID)
	if err != nil {
		t.Fatalf("failed to load billing: %v", err)
	}
	if stored.TotalAmount != 600 {
		t.Fatalf("expected total 600, got %v", stored.TotalAmount)
	}
}

func TestCreateFromProfileForOutpatient(t *testing.T) {
	_, repo, patientRepo := openTestDB(t)

	patient := &patients.Patient{Name: "Jane Doe", Age: 30, PatientType: patients.TypeOutpatient}
	visitDate := time.Date(2026, time.April, 12, 0, 0, 0, 0, time.UTC)
	if err := patientRepo.CreateOutpatientAdmission(context.Background(), patient, visitDate, 75); err != nil {
		t.Fatalf("admission failed: %v", err)
	}

	_, err := repo.CreateFromProfile(context.Background(), patient.PatientID, func(profile *PatientProfile) (*Billing, error) {
		if profile.Admitted {
			t.Fatal("expected no active stay for outpatient")
		}
		if profile.CostPerDay != 0 {
			t.Fatalf("expected zero room rate, got %v", profile.CostPerDay)
		}
		return &Billing{
			PatientID:   profile.PatientID,
			BillingDate: time.Now(),
			TotalAmount: 25,
			Status:      StatusUnpaid,
		}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateFromProfileUnknownPatient(t *testing.T) {
	db, repo, _ := openTestDB(t)

	_, err := repo.CreateFromProfile(context.Background(), 999, func(profile *PatientProfile) (*Billing, error) {
		t.Fatal("build must not run for an unknown patient")
		return nil, nil
	})
	if !errors.Is(err, ErrUnknownPatient) {
		t.Fatalf("expected ErrUnknownPatient, got %v", err)
	}

	var count int64
	if err := db.Model(&Billing{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count billings: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no billing rows, got %d", count)
	}
}
