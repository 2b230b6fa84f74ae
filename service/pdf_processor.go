package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/rapestimate/estimate-parser/client"
	"github.com/rapestimate/estimate-parser/dto"
)

type PDFProcessor interface {
	// Decrypt returns an unencrypted copy of pdfData. Unencrypted input is
	// returned unchanged.
	Decrypt(pdfData []byte, password string) ([]byte, error)
	// Extractors lists the text providers in the order they are tried.
	Extractors() []client.TextExtractor
}

type pdfProcessor struct {
	extractors []client.TextExtractor
}

func NewPDFProcessor(extractors ...client.TextExtractor) PDFProcessor {
	if len(extractors) == 0 {
		extractors = client.DefaultExtractors()
	}
	return &pdfProcessor{extractors: extractors}
}

func (p *pdfProcessor) Extractors() []client.TextExtractor {
	return p.extractors
}

func (p *pdfProcessor) Decrypt(pdfData []byte, password string) ([]byte, error) {
	if password == "" {
		return pdfData, nil
	}

	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password

	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(pdfData), &out, conf); err != nil {
		if strings.Contains(err.Error(), "not encrypted") {
			return pdfData, nil
		}
		return nil, fmt.Errorf("%w: %v", dto.ErrInvalidPassword, err)
	}
	return out.Bytes(), nil
}
