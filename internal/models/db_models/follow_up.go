package db_models

// FollowUp is one question/answer pair in a record's append-only thread.
type FollowUp struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Timestamp int64  `json:"timestamp"`
}
