package billing

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Policy carries the billing defaults the admin front end prefills its
// forms with. DefaultBillingDays is the number of room days charged when
// no stay window is supplied.
type Policy struct {
	DefaultBillingDays        int     `yaml:"default_billing_days" json:"default_billing_days"`
	InpatientConsultationFee  float64 `yaml:"inpatient_consultation_fee" json:"inpatient_consultation_fee"`
	OutpatientConsultationFee float64 `yaml:"outpatient_consultation_fee" json:"outpatient_consultation_fee"`
}

func DefaultPolicy() Policy {
	return Policy{
		DefaultBillingDays:        3,
		InpatientConsultationFee:  100,
		OutpatientConsultationFee: 75,
	}
}

func LoadPolicy(path string) (Policy, error) {
	if path == "" {
		return DefaultPolicy(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultPolicy(), err
	}

	policy := DefaultPolicy()
	if err := yaml.Unmarshal(content, &policy); err != nil {
		return Policy{}, err
	}

	if policy.DefaultBillingDays <= 0 {
		return Policy{}, fmt.Errorf("default_billing_days must be positive, got %d", policy.DefaultBillingDays)
	}

	return policy, nil
}
