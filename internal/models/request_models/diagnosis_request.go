package request_models

type DiagnosisFollowUpRequest struct {
	DiagnosisID string `json:"diagnosisId" binding:"required,uuid"`
	Question    string `json:"question" binding:"required,min=1,max=1000"`
}
