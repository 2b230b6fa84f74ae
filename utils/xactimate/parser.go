// Package xactimate turns the text of an Xactimate-style insurance estimate
// into header fields, categorised line items, category rollups and totals.
//
// Parsing is a pure function of the input text: no state survives between
// calls and a Parser may be shared across goroutines.
package xactimate

import (
	"log/slog"
	"sort"

	"github.com/rapestimate/estimate-parser/dto"
)

// Parser extracts estimates from plain text.
type Parser struct {
	logger *slog.Logger
}

// NewParser returns a Parser logging to logger, or to slog.Default() when nil.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Parse runs the default Parser over text.
func Parse(text string) (*dto.ParseResult, error) {
	return NewParser(nil).Parse(text)
}

// Parse extracts the estimate held in text. It fails only with
// dto.ErrNoLineItems when no line item survives extraction.
func (p *Parser) Parse(text string) (*dto.ParseResult, error) {
	header := ExtractHeader(text)
	p.logger.Info("Extracted header data", "fields", len(header), "header", map[string]string(header))

	items := ExtractLineItems(SplitLines(text), p.logger)

	unique, removed := Deduplicate(items)
	if removed > 0 {
		p.logger.Info("Removed duplicate line items", "count", removed)
	}

	if len(unique) == 0 {
		return nil, dto.ErrNoLineItems
	}

	return p.Summarize(header, unique, removed), nil
}

// Summarize builds the result for already deduplicated items.
func (p *Parser) Summarize(header dto.HeaderFields, items []dto.LineItem, duplicatesRemoved int) *dto.ParseResult {
	categories := Aggregate(items)

	var rcv, depreciation, acv float64
	rooms := map[string]struct{}{}
	for _, item := range items {
		rcv += item.RCV
		depreciation += item.Depreciation
		acv += item.ACV
		if item.Room != "" {
			rooms[item.Room] = struct{}{}
		}
	}

	deductible := p.deductible(header)

	roomNames := make([]string, 0, len(rooms))
	for room := range rooms {
		roomNames = append(roomNames, room)
	}
	sort.Strings(roomNames)

	return &dto.ParseResult{
		Header:     header,
		LineItems:  items,
		Categories: categories,
		Totals: dto.Totals{
			RCV:          round2(rcv),
			Depreciation: round2(depreciation),
			ACV:          round2(acv),
			Deductible:   deductible,
			NetClaim:     round2(acv - deductible),
		},
		Metadata: dto.Metadata{
			TotalLineItems:    len(items),
			TotalCategories:   len(categories),
			Rooms:             roomNames,
			DuplicatesRemoved: duplicatesRemoved,
		},
	}
}

func (p *Parser) deductible(header dto.HeaderFields) float64 {
	raw, ok := header[dto.FieldDeductible]
	if !ok {
		return 0
	}
	v, err := parseCurrency(raw)
	if err != nil {
		p.logger.Warn("Ignoring unparseable deductible", "value", raw, "error", err)
		return 0
	}
	return v
}
