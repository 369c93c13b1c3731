package request_models

// PaginationQuery is shared by every listing endpoint.
type PaginationQuery struct {
	Page  int `form:"page" binding:"omitempty,gte=1"`
	Limit int `form:"limit" binding:"omitempty,gte=1,lte=50"`
}

// Normalize applies the documented defaults for unset values.
func (q *PaginationQuery) Normalize(defaultLimit int) (page, limit int) {
	page, limit = q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

type HistoryQuery struct {
	PaginationQuery
	Type string `form:"type" binding:"omitempty,oneof=crop-plans diagnoses all"`
}

type ClearHistoryRequest struct {
	Type string `json:"type" binding:"omitempty,oneof=crop-plans diagnoses all"`
}
