package dto

import (
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedFile(t *testing.T) {
	allowed := []string{"pdf", ".txt"}

	assert.True(t, AllowedFile("estimate.pdf", allowed))
	assert.True(t, AllowedFile("ESTIMATE.PDF", allowed))
	assert.True(t, AllowedFile("notes.txt", allowed))
	assert.False(t, AllowedFile("photo.jpg", allowed))
	assert.False(t, AllowedFile("noextension", allowed))
}

func TestParseEstimateRequestValidate(t *testing.T) {
	allowed := []string{"pdf"}

	req := &ParseEstimateRequest{}
	assert.True(t, errors.Is(req.Validate(allowed, 0), ErrFileRequired))

	req.File = &multipart.FileHeader{Filename: "scan.png", Size: 10}
	assert.True(t, errors.Is(req.Validate(allowed, 0), ErrUnsupportedFile))

	req.File = &multipart.FileHeader{Filename: "estimate.pdf", Size: 3 * 1024 * 1024}
	assert.True(t, errors.Is(req.Validate(allowed, 1024*1024), ErrFileTooLarge))

	req.File.Size = 100
	assert.NoError(t, req.Validate(allowed, 1024*1024))

	req.Format = "csv"
	assert.ErrorIs(t, req.Validate(allowed, 1024*1024), ErrInvalidFormat)

	req.Format = FormatXLSX
	assert.NoError(t, req.Validate(allowed, 1024*1024))
}
