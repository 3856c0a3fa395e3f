package rooms

const (
	StatusAvailable   = "Available"
	StatusOccupied    = "Occupied"
	StatusMaintenance = "Maintenance"
)

type Room struct {
	RoomID      int64   `json:"room_id" gorm:"primaryKey;autoIncrement;column:room_id"`
	RoomType    string  `json:"room_type" gorm:"column:room_type"`
	Status      string  `json:"status" gorm:"column:status"`
	CostPerDay  float64 `json:"cost_per_day" gorm:"column:cost_per_day"`
	Capacity    int     `json:"capacity" gorm:"column:capacity"`
	FloorNumber int     `json:"floor_number" gorm:"column:floor_number"`
}

func (Room) TableName() string { return "rooms" }

// BookedRoom is the occupied-room listing row joined with the patient
// currently admitted to it.
type BookedRoom struct {
	RoomID      int64   `json:"room_id"`
	RoomType    string  `json:"room_type"`
	CostPerDay  float64 `json:"cost_per_day"`
	Status      string  `json:"status"`
	PatientID   int64   `json:"patient_id"`
	PatientName string  `json:"patient_name"`
}
