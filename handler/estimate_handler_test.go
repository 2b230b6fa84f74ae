package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rapestimate/estimate-parser/client"
	"github.com/rapestimate/estimate-parser/dto"
	"github.com/rapestimate/estimate-parser/service"
)

const estimateText = `Insured: JANE DOE Home: 555-0100
Claim Number: 7788
BATHROOM
1. Vanity - detach & reset
1 1.00 EA 45.00 45.00 (0.00) 45.00
2. Toilet - detach & reset
2 1.00 EA 210.00 210.00 (21.00) 189.00
`

type stubExtractor struct {
	text string
}

func (s stubExtractor) Name() string { return "stub" }

func (s stubExtractor) ExtractText([]byte) (string, error) { return s.text, nil }

type stubProcessor struct {
	text string
}

func (p stubProcessor) Decrypt(data []byte, password string) ([]byte, error) {
	if password == "wrong" {
		return nil, dto.ErrInvalidPassword
	}
	return data, nil
}

func (p stubProcessor) Extractors() []client.TextExtractor {
	return []client.TextExtractor{stubExtractor{text: p.text}}
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, pdfText string, maxFileSize int64) *gin.Engine {
	t.Helper()
	svc := service.NewEstimateService(stubProcessor{text: pdfText}, nil, nil)
	h := NewEstimateHandler(svc, nil, EstimateHandlerOptions{
		AllowedExtensions: []string{"pdf", "txt"},
		MaxFileSize:       maxFileSize,
		Version:           "test",
	})
	return NewRouter(RouterConfig{AllowedOrigins: []string{"*"}}, h, nil)
}

func multipartBody(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func postUpload(t *testing.T, router *gin.Engine, filename string, content []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, filename, content, fields)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/estimates/parse", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, "", 0)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, ServiceName, resp.Service)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestParseEstimatePDF(t *testing.T) {
	router := newTestRouter(t, estimateText, 0)

	rec := postUpload(t, router, "estimate.pdf", []byte("%PDF-1.7\n..."), nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Success   bool             `json:"success"`
		LineItems []dto.LineItem   `json:"line_items"`
		Header    dto.HeaderFields `json:"header"`
		Metadata  dto.Metadata     `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.LineItems, 2)
	assert.Equal(t, "BATHROOM", resp.LineItems[0].Room)
	assert.Equal(t, "CABINETRY", resp.LineItems[0].Category)
	assert.Equal(t, "PLUMBING", resp.LineItems[1].Category)
	assert.Equal(t, "stub", resp.Metadata.TextSource)
	assert.Equal(t, "7788", resp.Header[dto.FieldClaimNumber])
}

func TestParseEstimateTextUpload(t *testing.T) {
	router := newTestRouter(t, "", 0)

	rec := postUpload(t, router, "estimate.txt", []byte(estimateText), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"text_source":"text"`)
}

func TestParseEstimateXLSX(t *testing.T) {
	router := newTestRouter(t, estimateText, 0)

	rec := postUpload(t, router, "claim 42.pdf", []byte("%PDF-1.7"), map[string]string{"format": "xlsx"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="claim 42.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestParseEstimateErrors(t *testing.T) {
	tests := []struct {
		name     string
		pdfText  string
		maxSize  int64
		filename string
		content  string
		fields   map[string]string
		status   int
		errText  string
	}{
		{name: "missing file", status: http.StatusBadRequest, errText: "no file provided"},
		{name: "bad extension", filename: "estimate.docx", content: "x", status: http.StatusBadRequest, errText: "invalid file type"},
		{name: "not a pdf", filename: "estimate.pdf", content: "hello", status: http.StatusBadRequest, errText: "not a PDF"},
		{name: "too large", filename: "estimate.txt", content: strings.Repeat("x", 64), maxSize: 16, status: http.StatusRequestEntityTooLarge, errText: "file too large"},
		{name: "unknown format", filename: "estimate.txt", content: estimateText, fields: map[string]string{"format": "csv"}, status: http.StatusBadRequest, errText: "unknown output format"},
		{name: "wrong password", pdfText: estimateText, filename: "estimate.pdf", content: "%PDF-1.7", fields: map[string]string{"password": "wrong"}, status: http.StatusBadRequest, errText: "decrypted"},
		{name: "no line items", pdfText: "Claim Number: 1\n", filename: "estimate.pdf", content: "%PDF-1.7", status: http.StatusUnprocessableEntity, errText: "no line items found in estimate."},
		{name: "no text", pdfText: "", filename: "scan.pdf", content: "%PDF-1.7", status: http.StatusUnprocessableEntity, errText: "no text could be extracted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, tt.pdfText, tt.maxSize)

			rec := postUpload(t, router, tt.filename, []byte(tt.content), tt.fields)

			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Error, tt.errText)
			assert.Equal(t, tt.status, resp.Code)
		})
	}
}

func TestParseText(t *testing.T) {
	router := newTestRouter(t, "", 0)

	body, _ := json.Marshal(dto.ParseTextRequest{Text: estimateText})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/estimates/parse-text", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.ParseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 255.0, resp.Totals.RCV)
	assert.Equal(t, 234.0, resp.Totals.NetClaim)
}

func TestParseTextErrors(t *testing.T) {
	router := newTestRouter(t, "", 0)

	for body, status := range map[string]int{
		`{}`:                       http.StatusBadRequest,
		`not json`:                 http.StatusBadRequest,
		`{"text":"no items here"}`: http.StatusUnprocessableEntity,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/estimates/parse-text", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, status, rec.Code, body)
	}
}

func TestNotFound(t *testing.T) {
	router := newTestRouter(t, "", 0)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nfip/validate", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Endpoint not found")
}
