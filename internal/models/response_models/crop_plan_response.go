package response_models

import "cropgenesis/internal/models/db_models"

type CropPlanResult struct {
	Plan     *db_models.CropPlan `json:"plan"`
	AudioURL string              `json:"audioURL,omitempty"`
}

type FollowUpResult struct {
	Answer        string `json:"answer"`
	AudioURL      string `json:"audioURL,omitempty"`
	FollowUpCount int    `json:"followUpCount"`
}

type PagedCropPlans struct {
	Plans      []db_models.CropPlan `json:"plans"`
	Pagination Pagination           `json:"pagination"`
}

// PlanStats mirrors the DB-side aggregation over a user's plans.
type PlanStats struct {
	TotalPlans      int64    `json:"totalPlans"`
	TotalFollowUps  int64    `json:"totalFollowUps"`
	Seasons         []string `json:"seasons"`
	SoilTypes       []string `json:"soilTypes"`
	IrrigationTypes []string `json:"irrigationTypes"`
}

type AIServiceStatus struct {
	HasAPIKey bool   `json:"hasApiKey"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}
