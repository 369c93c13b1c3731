package utils

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPhoneAlreadyExists = errors.New("phone number already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrPlanNotFound      = errors.New("crop plan not found")
	ErrDiagnosisNotFound = errors.New("diagnosis not found")

	ErrInvalidPage        = errors.New("invalid page parameter")
	ErrInvalidPageSize    = errors.New("invalid page size parameter")
	ErrInvalidHistoryType = errors.New("invalid history type")

	ErrFileRequired    = errors.New("no file uploaded")
	ErrFileTooLarge    = errors.New("file too large")
	ErrInvalidFileType = errors.New("invalid file type")

	ErrAIServiceNotConfigured = errors.New("gemini api key is not configured")
	ErrAIServiceUnavailable   = errors.New("ai service unavailable")
	ErrEmptyAIResponse        = errors.New("empty ai response")

	ErrDatabaseError = errors.New("database error")
)
