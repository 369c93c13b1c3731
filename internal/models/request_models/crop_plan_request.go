package request_models

// CropPlanRequest arrives as multipart form data because the generate
// endpoint optionally carries image/video parts alongside the fields.
type CropPlanRequest struct {
	SoilType          string  `form:"soilType" json:"soilType" binding:"required,oneof=clay sandy loamy silty peaty chalky unknown"`
	LandSize          float64 `form:"landSize" json:"landSize" binding:"required,gte=0.1,lte=1000"`
	Irrigation        string  `form:"irrigation" json:"irrigation" binding:"required,oneof=drip sprinkler flood manual rainfed mixed"`
	Season            string  `form:"season" json:"season" binding:"required,oneof=kharif rabi zaid year-round"`
	PreferredLanguage string  `form:"preferredLanguage" json:"preferredLanguage" binding:"omitempty,oneof=en hi te ta bn mr gu kn ml or pa as"`
	AdditionalNotes   string  `form:"additionalNotes" json:"additionalNotes" binding:"omitempty,max=1000"`
}

type PlanFollowUpRequest struct {
	PlanID   string `json:"planId" binding:"required,uuid"`
	Question string `json:"question" binding:"required,min=1,max=500"`
}
