package db_models

type User struct {
	BaseModel
	Name         string `gorm:"size:100" json:"name"`
	Phone        string `gorm:"size:10;uniqueIndex" json:"phone"`
	Location     string `gorm:"size:200" json:"location"`
	Language     string `gorm:"size:5;default:en" json:"language"`
	PasswordHash string `json:"-"`
	// unix seconds; zero means the user has never logged in
	LastLogin int64 `json:"lastLogin"`

	CropPlans []CropPlan  `json:"-"`
	Diagnoses []Diagnosis `json:"-"`
}
