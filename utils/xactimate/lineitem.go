package xactimate

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/rapestimate/estimate-parser/dto"
)

const (
	// a multi-line block holds at most 14 lines after the item header
	multiLineWindow = 14
	// quantity/unit, unit price, tax, O&P, RCV, depreciation, ACV
	multiLineMinFields = 7
	// positions after the financial fields that may continue the description
	continuationEnd = 10
	minContinuation = 4
)

var (
	itemHeaderRe   = regexp.MustCompile(`^(\d+[a-z]?)\.\s+(.+)`)
	itemBoundaryRe = regexp.MustCompile(`^\d+[a-z]?\.\s+\S`)
	singleLineRe   = regexp.MustCompile(`^\d+\s+[\d,.]+\s+[A-Z]{2,3}\s+[\d,.]+\s+[\d,.]+\s+\([\d,.]+\)\s+[\d,.]+$`)
	unitTokenRe    = regexp.MustCompile(`^[A-Z]{2,3}$`)
	qtyUnitRe      = regexp.MustCompile(`^([\d,.]+)\s+([A-Z]{2,3})`)
	numericOnlyRe  = regexp.MustCompile(`^[\d,.<>]+$`)
)

// continuationSkipWords mark table furniture that must not join a description
var continuationSkipWords = []string{"TOTAL", "DESCRIPTION", "QUANTITY", "CONTINUED"}

type layout int

const (
	layoutMultiLine layout = iota
	layoutSingleLine
)

func (l layout) String() string {
	if l == layoutSingleLine {
		return "single-line"
	}
	return "multi-line"
}

// candidate is an item header found during the scan
type candidate struct {
	index       int
	label       string
	description string
}

// scanState is the running state threaded through the line scan.
type scanState struct {
	room  string
	items []dto.LineItem
}

func (s scanState) nextLineNumber() int {
	return len(s.items) + 1
}

// SplitLines splits raw text into trimmed lines, keeping blank lines so that
// block boundaries survive.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

// ExtractLineItems walks the lines top to bottom and returns every item whose
// financial block could be decoded. Items are stamped with the active room and
// categorised as they are produced.
func ExtractLineItems(lines []string, logger *slog.Logger) []dto.LineItem {
	if logger == nil {
		logger = slog.Default()
	}

	var state scanState
	for i := range lines {
		state = scanLine(state, lines, i, logger)
	}

	logger.Info("Extracted line items", "count", len(state.items))
	return state.items
}

// scanLine advances the scan by one line.
func scanLine(state scanState, lines []string, i int, logger *slog.Logger) scanState {
	line := lines[i]

	if IsRoomHeading(line) {
		state.room = line
		logger.Debug("Found room", "room", line)
	}

	m := itemHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return state
	}

	c := candidate{index: i, label: m[1], description: strings.TrimSpace(m[2])}
	if i+1 >= len(lines) {
		return state
	}

	item, ok := extractCandidate(c, lines, logger)
	if !ok {
		return state
	}

	item.LineNumber = state.nextLineNumber()
	item.Room = state.room
	item.Category = Categorize(item.Description)
	state.items = append(state.items, item)
	return state
}

// extractCandidate decodes the financial block of one candidate. A panic
// while decoding is logged and treated as a skipped item.
func extractCandidate(c candidate, lines []string, logger *slog.Logger) (item dto.LineItem, ok bool) {
	kind := classifyLayout(lines[c.index+1])

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Error parsing line item", "item", c.label, "layout", kind.String(), "panic", fmt.Sprint(r))
			item, ok = dto.LineItem{}, false
		}
	}()

	var err error
	switch kind {
	case layoutSingleLine:
		item, ok, err = parseSingleLine(c, lines[c.index+1])
	default:
		item, ok, err = parseMultiLine(c, lines)
	}

	if err != nil {
		logger.Error("Error parsing line item", "item", c.label, "layout", kind.String(), "error", err)
		return dto.LineItem{}, false
	}
	if !ok {
		logger.Debug("Skipped item header without financial data", "item", c.label, "layout", kind.String())
	}
	return item, ok
}

// classifyLayout inspects the line after an item header.
func classifyLayout(next string) layout {
	if singleLineRe.MatchString(next) {
		return layoutSingleLine
	}
	return layoutMultiLine
}

// parseSingleLine decodes "N qty UNIT price rcv (dep) acv".
func parseSingleLine(c candidate, dataLine string) (dto.LineItem, bool, error) {
	parts := strings.Fields(dataLine)
	if len(parts) < 6 {
		return dto.LineItem{}, false, nil
	}

	unitIdx := -1
	for i, part := range parts {
		if unitTokenRe.MatchString(part) {
			unitIdx = i
			break
		}
	}
	if unitIdx <= 0 || len(parts)-unitIdx-1 < 4 {
		return dto.LineItem{}, false, nil
	}

	quantity, err := parseNumber(parts[unitIdx-1])
	if err != nil {
		return dto.LineItem{}, false, fmt.Errorf("quantity %q: %w", parts[unitIdx-1], err)
	}

	amounts, err := parseAmounts(parts[unitIdx+1 : unitIdx+5])
	if err != nil {
		return dto.LineItem{}, false, err
	}

	return dto.LineItem{
		Description:  c.description,
		Quantity:     quantity,
		Unit:         parts[unitIdx],
		UnitPrice:    amounts[0],
		RCV:          amounts[1],
		Depreciation: amounts[2],
		ACV:          amounts[3],
	}, true, nil
}

// parseMultiLine decodes a block where each financial value sits on its own
// line beneath the header.
func parseMultiLine(c candidate, lines []string) (dto.LineItem, bool, error) {
	data := collectBlock(lines, c.index)
	if len(data) < multiLineMinFields {
		return dto.LineItem{}, false, nil
	}

	m := qtyUnitRe.FindStringSubmatch(data[0])
	if m == nil {
		return dto.LineItem{}, false, nil
	}

	quantity, err := parseNumber(m[1])
	if err != nil {
		return dto.LineItem{}, false, fmt.Errorf("quantity %q: %w", m[1], err)
	}

	amounts, err := parseAmounts(data[1:multiLineMinFields])
	if err != nil {
		return dto.LineItem{}, false, err
	}

	description := c.description
	for idx := multiLineMinFields; idx < len(data) && idx < continuationEnd; idx++ {
		if isContinuation(data[idx]) {
			description += " " + data[idx]
		}
	}

	return dto.LineItem{
		Description:  description,
		Quantity:     quantity,
		Unit:         m[2],
		UnitPrice:    amounts[0],
		Tax:          amounts[1],
		OAndP:        amounts[2],
		RCV:          amounts[3],
		Depreciation: amounts[4],
		ACV:          amounts[5],
	}, true, nil
}

// collectBlock gathers the non-blank lines that follow the header at index,
// stopping at a blank line or the next item header.
func collectBlock(lines []string, index int) []string {
	var data []string
	for j := index + 1; j < len(lines) && j <= index+multiLineWindow; j++ {
		line := lines[j]
		if line == "" || itemBoundaryRe.MatchString(line) {
			break
		}
		data = append(data, line)
	}
	return data
}

func isContinuation(line string) bool {
	if len(line) < minContinuation || numericOnlyRe.MatchString(line) {
		return false
	}
	return !containsAny(strings.ToUpper(line), continuationSkipWords)
}

func parseAmounts(tokens []string) ([]float64, error) {
	amounts := make([]float64, len(tokens))
	for i, tok := range tokens {
		v, err := parseCurrency(tok)
		if err != nil {
			return nil, fmt.Errorf("amount %q: %w", tok, err)
		}
		amounts[i] = v
	}
	return amounts, nil
}
