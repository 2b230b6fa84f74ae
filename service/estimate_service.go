package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/rapestimate/estimate-parser/dto"
	"github.com/rapestimate/estimate-parser/utils/xactimate"
)

// TextSourcePlain marks results parsed from text supplied directly.
const TextSourcePlain = "text"

type EstimateService struct {
	pdfProcessor PDFProcessor
	parser       *xactimate.Parser
	resultCache  *cache.Cache
	logger       *slog.Logger
}

// NewEstimateService wires the parse pipeline. resultCache may be nil to
// disable caching.
func NewEstimateService(pdfProcessor PDFProcessor, resultCache *cache.Cache, logger *slog.Logger) *EstimateService {
	if logger == nil {
		logger = slog.Default()
	}
	if pdfProcessor == nil {
		pdfProcessor = NewPDFProcessor()
	}
	return &EstimateService{
		pdfProcessor: pdfProcessor,
		parser:       xactimate.NewParser(logger),
		resultCache:  resultCache,
		logger:       logger,
	}
}

// ParseEstimate parses an uploaded estimate. Text files go straight to the
// parser; PDFs are decrypted when a password is given and then run through
// each text provider until one yields line items.
func (s *EstimateService) ParseEstimate(ctx context.Context, filename string, data []byte, password string) (*dto.ParseResult, error) {
	start := time.Now()
	key := cacheKey(data, password)

	if s.resultCache != nil {
		if cached, found := s.resultCache.Get(key); found {
			s.logger.Debug("Serving cached estimate", "filename", filename)
			return cached.(*dto.ParseResult), nil
		}
	}

	var (
		result *dto.ParseResult
		err    error
	)
	if strings.EqualFold(filepath.Ext(filename), ".txt") {
		result, err = s.ParseText(string(data))
	} else {
		result, err = s.parsePDF(ctx, data, password)
	}
	if err != nil {
		return nil, err
	}

	if s.resultCache != nil {
		s.resultCache.SetDefault(key, result)
	}

	s.logger.Info("Parsed estimate",
		"filename", filename,
		"source", result.Metadata.TextSource,
		"line_items", result.Metadata.TotalLineItems,
		"categories", result.Metadata.TotalCategories,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

// ParseText runs the parser over already extracted text.
func (s *EstimateService) ParseText(text string) (*dto.ParseResult, error) {
	result, err := s.parser.Parse(text)
	if err != nil {
		return nil, err
	}
	result.Metadata.TextSource = TextSourcePlain
	return result, nil
}

func (s *EstimateService) parsePDF(ctx context.Context, data []byte, password string) (*dto.ParseResult, error) {
	data, err := s.pdfProcessor.Decrypt(data, password)
	if err != nil {
		return nil, err
	}

	var (
		extractErrs []error
		sawText     bool
	)
	for _, extractor := range s.pdfProcessor.Extractors() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := extractor.ExtractText(data)
		if err != nil {
			s.logger.Warn("Text extraction failed", "source", extractor.Name(), "error", err)
			extractErrs = append(extractErrs, fmt.Errorf("%s: %w", extractor.Name(), err))
			continue
		}
		if strings.TrimSpace(text) == "" {
			s.logger.Debug("Text provider returned no text", "source", extractor.Name())
			continue
		}
		sawText = true

		result, err := s.parser.Parse(text)
		if errors.Is(err, dto.ErrNoLineItems) {
			s.logger.Info("No line items from text provider, trying next", "source", extractor.Name())
			continue
		}
		if err != nil {
			return nil, err
		}

		result.Metadata.TextSource = extractor.Name()
		return result, nil
	}

	if sawText {
		return nil, dto.ErrNoLineItems
	}
	if len(extractErrs) > 0 {
		return nil, fmt.Errorf("%w: %w", dto.ErrNoTextExtracted, errors.Join(extractErrs...))
	}
	return nil, dto.ErrNoTextExtracted
}

// cacheKey digests the document together with its password, so a cached
// decryption is only served to callers holding the same password.
func cacheKey(data []byte, password string) string {
	h := sha256.New()
	h.Write(data)
	h.Write([]byte{0})
	h.Write([]byte(password))
	return hex.EncodeToString(h.Sum(nil))
}
