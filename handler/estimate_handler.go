package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rapestimate/estimate-parser/dto"
	"github.com/rapestimate/estimate-parser/service"
)

const (
	ServiceName     = "RAP Estimate Parser"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type EstimateHandler struct {
	estimateService   *service.EstimateService
	exporter          *service.Exporter
	allowedExtensions []string
	maxFileSize       int64
	version           string
	logger            *slog.Logger
}

type EstimateHandlerOptions struct {
	AllowedExtensions []string
	MaxFileSize       int64
	Version           string
	Logger            *slog.Logger
}

func NewEstimateHandler(estimateService *service.EstimateService, exporter *service.Exporter, opts EstimateHandlerOptions) *EstimateHandler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if exporter == nil {
		exporter = service.NewExporter(opts.Logger)
	}
	if len(opts.AllowedExtensions) == 0 {
		opts.AllowedExtensions = []string{"pdf", "txt"}
	}
	return &EstimateHandler{
		estimateService:   estimateService,
		exporter:          exporter,
		allowedExtensions: opts.AllowedExtensions,
		maxFileSize:       opts.MaxFileSize,
		version:           opts.Version,
		logger:            opts.Logger,
	}
}

// Health handles GET /health
func (h *EstimateHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "healthy",
		Service: ServiceName,
		Version: h.version,
	})
}

// ParseEstimate handles POST /estimates/parse
func (h *EstimateHandler) ParseEstimate(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.sendError(c, fmt.Errorf("%w: maximum size is %dMB", dto.ErrFileTooLarge, h.maxFileSize/(1024*1024)))
			return
		}
		h.sendError(c, dto.ErrFileRequired)
		return
	}

	request := &dto.ParseEstimateRequest{
		File:     file,
		Password: c.PostForm("password"),
		Format:   strings.ToLower(c.DefaultPostForm("format", c.Query("format"))),
	}
	if err := request.Validate(h.allowedExtensions, h.maxFileSize); err != nil {
		h.sendError(c, err)
		return
	}

	data, err := readUpload(request)
	if err != nil {
		h.sendError(c, err)
		return
	}

	h.logger.Info("Received estimate upload",
		"filename", file.Filename,
		"size", len(data),
		"request_id", c.GetString(requestIDKey))

	result, err := h.estimateService.ParseEstimate(c.Request.Context(), file.Filename, data, request.Password)
	if err != nil {
		h.sendError(c, err)
		return
	}

	if request.Format == dto.FormatXLSX {
		h.sendXLSX(c, file.Filename, result)
		return
	}
	c.JSON(http.StatusOK, dto.ParseResponse{Success: true, ParseResult: result})
}

// ParseText handles POST /estimates/parse-text
func (h *EstimateHandler) ParseText(c *gin.Context) {
	var request dto.ParseTextRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	result, err := h.estimateService.ParseText(request.Text)
	if err != nil {
		h.sendError(c, err)
		return
	}

	if strings.EqualFold(c.Query("format"), dto.FormatXLSX) {
		h.sendXLSX(c, "estimate.txt", result)
		return
	}
	c.JSON(http.StatusOK, dto.ParseResponse{Success: true, ParseResult: result})
}

// NotFound answers unknown routes.
func (h *EstimateHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.ErrorResponse{
		Error:   "Endpoint not found",
		Message: c.Request.URL.Path,
		Code:    http.StatusNotFound,
	})
}

func (h *EstimateHandler) sendXLSX(c *gin.Context, filename string, result *dto.ParseResult) {
	data, err := h.exporter.ExportXLSX(result)
	if err != nil {
		h.sendError(c, err)
		return
	}
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)) + ".xlsx"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, data)
}

var errBadRequest = errors.New("invalid request body")

func readUpload(request *dto.ParseEstimateRequest) ([]byte, error) {
	f, err := request.File.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(request.File.Filename), ".pdf") &&
		http.DetectContentType(data) != "application/pdf" {
		return nil, fmt.Errorf("%w: file content is not a PDF", dto.ErrUnsupportedFile)
	}
	return data, nil
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dto.ErrFileRequired),
		errors.Is(err, dto.ErrUnsupportedFile),
		errors.Is(err, dto.ErrInvalidFormat),
		errors.Is(err, dto.ErrInvalidPassword),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, dto.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, dto.ErrNoLineItems),
		errors.Is(err, dto.ErrNoTextExtracted):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// sendError sends a structured error response
func (h *EstimateHandler) sendError(c *gin.Context, err error) {
	statusCode := statusFor(err)
	message := http.StatusText(statusCode)
	if statusCode == http.StatusInternalServerError {
		message = "Internal server error processing estimate"
	}

	level := slog.LevelWarn
	if statusCode >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(c.Request.Context(), level, "Request failed",
		"path", c.Request.URL.Path,
		"status", statusCode,
		"error", err,
		"request_id", c.GetString(requestIDKey))

	c.JSON(statusCode, dto.ErrorResponse{
		Success: false,
		Error:   err.Error(),
		Message: message,
		Code:    statusCode,
	})
}
