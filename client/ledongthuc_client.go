package client

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// RowTextClient rebuilds lines from the positioned text rows of each page.
type RowTextClient struct{}

func NewRowTextClient() *RowTextClient {
	return &RowTextClient{}
}

func (c *RowTextClient) Name() string { return "pdf-rows" }

func (c *RowTextClient) ExtractText(pdfData []byte) (text string, err error) {
	defer recoverPDF(&err)

	r, err := openPDF(pdfData)
	if err != nil {
		return "", err
	}

	var textBuilder strings.Builder
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}

		rows, err := p.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("page %d: %w", pageIndex, err)
		}
		for _, row := range rows {
			textBuilder.WriteString(joinRow(row.Content))
			textBuilder.WriteString("\n")
		}
	}
	return textBuilder.String(), nil
}

// joinRow joins the text chunks of one row with single spaces. Chunks that
// share an x position belong to the same show operation and are glued.
func joinRow(chunks []pdf.Text) string {
	var b strings.Builder
	for i, chunk := range chunks {
		if i > 0 && chunk.X != chunks[i-1].X {
			b.WriteByte(' ')
		}
		b.WriteString(chunk.S)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// PlainTextClient uses the library's own plain-text rendering of each page.
type PlainTextClient struct{}

func NewPlainTextClient() *PlainTextClient {
	return &PlainTextClient{}
}

func (c *PlainTextClient) Name() string { return "pdf-plain" }

func (c *PlainTextClient) ExtractText(pdfData []byte) (text string, err error) {
	defer recoverPDF(&err)

	r, err := openPDF(pdfData)
	if err != nil {
		return "", err
	}

	var textBuilder strings.Builder
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}

		pageText, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", pageIndex, err)
		}
		textBuilder.WriteString(pageText)
		if !strings.HasSuffix(pageText, "\n") {
			textBuilder.WriteString("\n")
		}
	}
	return textBuilder.String(), nil
}

func openPDF(pdfData []byte) (*pdf.Reader, error) {
	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	return r, nil
}

// recoverPDF converts a panic from the pdf reader into an error.
func recoverPDF(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("pdf reader panic: %v", r)
	}
}
