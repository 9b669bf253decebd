package services

import "errors"

var (
	ErrFileRead          = errors.New("file read error")
	ErrFileTooLarge      = errors.New("file too large")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrParse             = errors.New("parsing error")
	ErrValidation        = errors.New("both a resume and a job description are required")
	ErrAIRequest         = errors.New("AI request failed")
	ErrMalformedResponse = errors.New("malformed response from AI service")
	ErrWorkerStopped     = errors.New("analysis worker stopped")
)

// ErrorKind returns a stable identifier for the error class of err, used by
// API clients to pick a message without parsing error text.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrFileRead), errors.Is(err, ErrFileTooLarge):
		return "file_read"
	case errors.Is(err, ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, ErrAIRequest):
		return "ai_request"
	default:
		return "internal"
	}
}
