package billing

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPolicy(t *testing.T) {
	policy := DefaultPolicy()
	if policy.DefaultBillingDays != 3 {
		t.Fatalf("expected 3 default billing days, got %d", policy.DefaultBillingDays)
	}
	if policy.InpatientConsultationFee != 100 || policy.OutpatientConsultationFee != 75 {
		t.Fatalf("unexpected consultation fees: %+v", policy)
	}
}

func TestLoadPolicyEmptyPathUsesDefaults(t *testing.T) {
	policy, err := LoadPolicy("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if policy != DefaultPolicy() {
		t.Fatalf("expected defaults, got %+v", policy)
	}
}

func TestLoadPolicyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := "default_billing_days: 5\ninpatient_consultation_fee: 120\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write policy file: %v", err)
	}

	policy, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if policy.DefaultBillingDays != 5 {
		t.Fatalf("expected 5 billing days, got %d", policy.DefaultBillingDays)
	}
	if policy.InpatientConsultationFee != 120 {
		t.Fatalf("expected inpatient fee 120, got %v", policy.InpatientConsultationFee)
	}
	if policy.OutpatientConsultationFee != 75 {
		t.Fatalf("expected unset outpatient fee to keep default, got %v", policy.OutpatientConsultationFee)
	}
}

func TestLoadPolicyRejectsNonPositiveDays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte("default_billing_days: 0\n"), 0o644); err != nil {
		t.Fatalf("failed to write policy file: %v", err)
	}

	if _, err := LoadPolicy(path); err == nil {
		t.Fatal("expected error for non-positive billing days")
	}
}
