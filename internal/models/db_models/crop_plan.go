package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// CropPlanInputs is the snapshot of what the farmer submitted; it is
// stored alongside the generated plan so results stay reproducible.
type CropPlanInputs struct {
	SoilType          string  `gorm:"size:10" json:"soilType"`
	LandSize          float64 `json:"landSize"`
	Irrigation        string  `gorm:"size:50" json:"irrigation"`
	Season            string  `gorm:"size:12" json:"season"`
	PreferredLanguage string  `gorm:"size:5" json:"preferredLanguage"`
	AdditionalNotes   string  `gorm:"size:1000" json:"additionalNotes"`
}

type CropPlan struct {
	BaseModel
	// the (user_id, created_at) composite index is created in infra.Migrate
	UserID uuid.UUID `gorm:"type:uuid" json:"userId"`

	PlanText     string `gorm:"type:text" json:"planText"`
	PlanAudioURL string `json:"planAudioURL,omitempty"`
	ImageURL     string `json:"imageURL,omitempty"`
	VideoURL     string `json:"videoURL,omitempty"`

	Inputs    CropPlanInputs                `gorm:"embedded;embeddedPrefix:input_" json:"inputs"`
	FollowUps datatypes.JSONSlice[FollowUp] `gorm:"type:jsonb" json:"followUpQuestions"`
	Tags      pq.StringArray                `gorm:"type:text[]" json:"tags"`
	Embedding pgvector.Vector               `gorm:"type:vector(256)" json:"-"`
}
