package response_models

import "github.com/google/uuid"

const (
	HistoryTypeCropPlan  = "crop-plan"
	HistoryTypeDiagnosis = "diagnosis"
)

// HistoryItem is one entry in the merged plan/diagnosis timeline.
type HistoryItem struct {
	ID          uuid.UUID   `json:"id"`
	Type        string      `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Date        int64       `json:"date"`
	Data        interface{} `json:"data"`
}

type PagedHistory struct {
	History    []HistoryItem `json:"history"`
	Pagination Pagination    `json:"pagination"`
}

type HistoryStats struct {
	CropPlans PlanStats      `json:"cropPlans"`
	Diagnoses DiagnosisStats `json:"diagnoses"`
	Total     HistoryTotals  `json:"total"`
}

type HistoryTotals struct {
	Items        int64 `json:"items"`
	LastActivity int64 `json:"lastActivity"`
}
