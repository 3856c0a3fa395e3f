package directory

// Employee covers all hospital staff; doctors are employees with
// employee_type = Doctor, matching the legacy schema.
type Employee struct {
	EmployeeID   int64  `json:"employee_id" gorm:"primaryKey;autoIncrement;column:employee_id"`
	Name         string `json:"name" gorm:"column:name"`
	PhoneNumber  string `json:"phone_number" gorm:"column:phone_number"`
	EmployeeType string `json:"employee_type" gorm:"column:employee_type"`
	Department   string `json:"department,omitempty" gorm:"column:department"`
}

func (Employee) TableName() string { return "employees" }

type Medication struct {
	MedicationID int64   `json:"medication_id" gorm:"primaryKey;autoIncrement;column:medication_id"`
	Name         string  `json:"name" gorm:"column:name"`
	Price        float64 `json:"price" gorm:"column:price"`
	Manufacturer string  `json:"manufacturer,omitempty" gorm:"column:manufacturer"`
}

func (Medication) TableName() string { return "medications" }
