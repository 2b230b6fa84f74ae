package client

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// kerningSpace is the TJ adjustment (thousandths of an em) past which a gap
// is rendered as a space.
const kerningSpace = -200

// ContentStreamClient decodes the text operators of each page content stream
// with pdfcpu. It copes with files the row reader rejects.
type ContentStreamClient struct {
	read func(io.ReadSeeker, *model.Configuration) (*model.Context, error)
}

func NewContentStreamClient() *ContentStreamClient {
	return &ContentStreamClient{read: api.ReadValidateAndOptimize}
}

func (c *ContentStreamClient) Name() string { return "pdf-content-stream" }

func (c *ContentStreamClient) ExtractText(pdfData []byte) (text string, err error) {
	defer recoverPDF(&err)

	conf := model.NewDefaultConfiguration()
	ctx, err := c.read(bytes.NewReader(pdfData), conf)
	if err != nil {
		return "", fmt.Errorf("pdfcpu read: %w", err)
	}

	var textBuilder strings.Builder
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", pageNr, err)
		}
		if r == nil {
			continue
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", pageNr, err)
		}
		textBuilder.WriteString(decodeContentStream(data))
	}
	return textBuilder.String(), nil
}

// textWriter accumulates shown text and breaks lines only after content.
type textWriter struct {
	b       strings.Builder
	lineLen int
}

func (w *textWriter) write(s string) {
	w.b.WriteString(s)
	w.lineLen += len(s)
}

func (w *textWriter) newline() {
	if w.lineLen == 0 {
		return
	}
	w.b.WriteByte('\n')
	w.lineLen = 0
}

// decodeContentStream renders the text shown by Tj, TJ, ' and " operators.
// Td, TD, T* and ET start a new line.
func decodeContentStream(data []byte) string {
	var (
		w       textWriter
		pending strings.Builder
		inArray bool
	)

	s := contentScanner{data: data}
	for {
		tok, ok := s.next()
		if !ok {
			break
		}

		switch tok.kind {
		case tokString:
			pending.WriteString(tok.text)
		case tokNumber:
			if inArray && tok.number <= kerningSpace {
				pending.WriteByte(' ')
			}
		case tokArrayStart:
			inArray = true
		case tokArrayEnd:
			inArray = false
		case tokOperator:
			switch tok.text {
			case "Tj", "TJ":
				w.write(pending.String())
			case "'", `"`:
				w.newline()
				w.write(pending.String())
			case "Td", "TD", "T*", "ET":
				w.newline()
			}
			pending.Reset()
		}
	}
	w.newline()
	return w.b.String()
}

type tokenKind int

const (
	tokOther tokenKind = iota
	tokString
	tokNumber
	tokArrayStart
	tokArrayEnd
	tokOperator
)

type token struct {
	kind   tokenKind
	text   string
	number float64
}

// contentScanner splits a content stream into operands and operators.
type contentScanner struct {
	data []byte
	pos  int
}

func (s *contentScanner) next() (token, bool) {
	s.skipSpaceAndComments()
	if s.pos >= len(s.data) {
		return token{}, false
	}

	c := s.data[s.pos]
	switch {
	case c == '(':
		return token{kind: tokString, text: s.literalString()}, true
	case c == '<' && s.peek(1) == '<', c == '>' && s.peek(1) == '>':
		s.pos += 2
		return token{kind: tokOther}, true
	case c == '<':
		return token{kind: tokString, text: s.hexString()}, true
	case c == '[':
		s.pos++
		return token{kind: tokArrayStart}, true
	case c == ']':
		s.pos++
		return token{kind: tokArrayEnd}, true
	case c == '/':
		s.pos++
		s.word()
		return token{kind: tokOther}, true
	case c == '{' || c == '}' || c == ')' || c == '>':
		s.pos++
		return token{kind: tokOther}, true
	}

	word := s.word()
	if word == "" {
		s.pos++
		return token{kind: tokOther}, true
	}
	if n, ok := parseNumberToken(word); ok {
		return token{kind: tokNumber, number: n}, true
	}
	return token{kind: tokOperator, text: word}, true
}

func (s *contentScanner) peek(offset int) byte {
	if s.pos+offset < len(s.data) {
		return s.data[s.pos+offset]
	}
	return 0
}

func (s *contentScanner) skipSpaceAndComments() {
	for s.pos < len(s.data) {
		switch c := s.data[s.pos]; {
		case isPDFSpace(c):
			s.pos++
		case c == '%':
			for s.pos < len(s.data) && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}
		default:
			return
		}
	}
}

// word reads a run of regular characters.
func (s *contentScanner) word() string {
	start := s.pos
	for s.pos < len(s.data) && !isPDFSpace(s.data[s.pos]) && !isPDFDelimiter(s.data[s.pos]) {
		s.pos++
	}
	return string(s.data[start:s.pos])
}

// literalString decodes a (...) string with balanced parentheses and
// backslash escapes.
func (s *contentScanner) literalString() string {
	var b strings.Builder
	depth := 0
	s.pos++
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		s.pos++
		switch c {
		case '\\':
			s.escape(&b)
		case '(':
			depth++
			b.WriteByte(c)
		case ')':
			if depth == 0 {
				return b.String()
			}
			depth--
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func (s *contentScanner) escape(b *strings.Builder) {
	if s.pos >= len(s.data) {
		return
	}
	c := s.data[s.pos]
	s.pos++
	switch c {
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case '\r':
		if s.pos < len(s.data) && s.data[s.pos] == '\n' {
			s.pos++
		}
	case '\n':
	default:
		if c >= '0' && c <= '7' {
			val := int(c - '0')
			for i := 0; i < 2 && s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '7'; i++ {
				val = val*8 + int(s.data[s.pos]-'0')
				s.pos++
			}
			b.WriteByte(byte(val))
			return
		}
		b.WriteByte(c)
	}
}

// hexString decodes <48656C6C6F>. An odd trailing digit is padded with 0.
func (s *contentScanner) hexString() string {
	s.pos++
	var digits []byte
	for s.pos < len(s.data) && s.data[s.pos] != '>' {
		if v, ok := hexValue(s.data[s.pos]); ok {
			digits = append(digits, v)
		}
		s.pos++
	}
	s.pos++
	if len(digits)%2 == 1 {
		digits = append(digits, 0)
	}
	out := make([]byte, 0, len(digits)/2)
	for i := 0; i < len(digits); i += 2 {
		out = append(out, digits[i]<<4|digits[i+1])
	}
	return string(out)
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func parseNumberToken(word string) (float64, bool) {
	for _, c := range word {
		if (c < '0' || c > '9') && c != '.' && c != '-' && c != '+' {
			return 0, false
		}
	}
	n, err := strconv.ParseFloat(word, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isPDFSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\f' || c == 0
}

func isPDFDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}
