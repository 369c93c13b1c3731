package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type Diagnosis struct {
	BaseModel
	// the (user_id, created_at) composite index is created in infra.Migrate
	UserID uuid.UUID `gorm:"type:uuid" json:"userId"`

	ImageURL string `json:"imageURL,omitempty"`
	VideoURL string `json:"videoURL,omitempty"`
	FileType string `gorm:"size:10" json:"fileType"` // image | video
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`

	DiagnosisText string `gorm:"type:text" json:"diagnosisText"`
	Remedy        string `gorm:"type:text" json:"remedy"`
	AudioURL      string `json:"audioURL,omitempty"`

	// Best-effort fields extracted from the model's free text.
	Confidence    *int     `json:"confidence"`
	DiseaseName   string   `gorm:"size:500;index" json:"diseaseName"`
	Severity      string   `gorm:"size:10;default:medium;index" json:"severity"`
	AffectedArea  string   `gorm:"size:20;default:unknown;index" json:"affectedArea"`
	TreatmentType string   `gorm:"size:12;default:organic" json:"treatmentType"`
	EstimatedCost *float64 `json:"estimatedCost"`
	EstimatedTime string   `json:"estimatedTime,omitempty"`

	Tags      pq.StringArray                `gorm:"type:text[]" json:"tags"`
	FollowUps datatypes.JSONSlice[FollowUp] `gorm:"type:jsonb" json:"followUpQuestions"`
	Embedding pgvector.Vector               `gorm:"type:vector(256)" json:"-"`
}
