package dto

import "errors"

// Custom errors
var (
	ErrNoLineItems     = errors.New("no line items found in estimate.")
	ErrNoTextExtracted = errors.New("no text could be extracted from document")
	ErrFileRequired    = errors.New("no file provided")
	ErrUnsupportedFile = errors.New("invalid file type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrInvalidFormat   = errors.New("unknown output format")
	ErrInvalidPassword = errors.New("document could not be decrypted with the supplied password")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ParseResponse is the success envelope around a ParseResult
type ParseResponse struct {
	Success bool `json:"success"`
	*ParseResult
}

// HealthResponse is returned by the health check endpoint
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
