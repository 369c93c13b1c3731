package response_models

import "cropgenesis/internal/models/db_models"

type DiagnosisResult struct {
	Diagnosis *db_models.Diagnosis `json:"diagnosis"`
	AudioURL  string               `json:"audioURL,omitempty"`
}

type PagedDiagnoses struct {
	Diagnoses  []db_models.Diagnosis `json:"diagnoses"`
	Pagination Pagination            `json:"pagination"`
}

type DiagnosisStats struct {
	TotalDiagnoses   int64   `json:"totalDiagnoses"`
	HighSeverity     int64   `json:"highSeverity"`
	CriticalSeverity int64   `json:"criticalSeverity"`
	AvgConfidence    float64 `json:"avgConfidence"`
}

type DiseaseGroup struct {
	DiseaseName    string `json:"diseaseName"`
	Count          int64  `json:"count"`
	Severity       string `json:"severity"`
	LastOccurrence int64  `json:"lastOccurrence"`
}
