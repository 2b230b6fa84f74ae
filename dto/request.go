package dto

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// Output formats accepted by the parse endpoint
const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// ParseEstimateRequest represents an uploaded estimate document
type ParseEstimateRequest struct {
	File     *multipart.FileHeader `form:"file"`
	Password string                `form:"password"`
	Format   string                `form:"format"`
}

// Validate checks the upload against the allowed extensions and size limit
func (r *ParseEstimateRequest) Validate(allowedExtensions []string, maxSize int64) error {
	if r.File == nil || r.File.Filename == "" {
		return ErrFileRequired
	}

	if !AllowedFile(r.File.Filename, allowedExtensions) {
		return fmt.Errorf("%w: allowed extensions are %s", ErrUnsupportedFile, strings.Join(allowedExtensions, ", "))
	}

	if maxSize > 0 && r.File.Size > maxSize {
		return fmt.Errorf("%w: maximum size is %dMB", ErrFileTooLarge, maxSize/(1024*1024))
	}

	switch r.Format {
	case "", FormatJSON, FormatXLSX:
	default:
		return fmt.Errorf("%w %q", ErrInvalidFormat, r.Format)
	}

	return nil
}

// AllowedFile reports whether filename carries one of the allowed extensions
func AllowedFile(filename string, allowedExtensions []string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return false
	}
	for _, allowed := range allowedExtensions {
		if strings.EqualFold(strings.TrimPrefix(allowed, "."), ext) {
			return true
		}
	}
	return false
}

// ParseTextRequest carries already extracted estimate text
type ParseTextRequest struct {
	Text string `json:"text" binding:"required"`
}
