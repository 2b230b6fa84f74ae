package xactimate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rapestimate/estimate-parser/dto"
)

const (
	addressWindow   = 200
	addressMaxLines = 4
)

var (
	insuredNameRe = regexp.MustCompile(`(?i)Insured:\s*([A-Z][A-Z\s&,.\-']+?)(?:\s+Home:|\s+E-mail:|\n)`)
	propertyRe    = regexp.MustCompile(`(?i)Property:\s*(.+?)(?:\n|\s{2,})`)
	propertyLabel = regexp.MustCompile(`(?i)^\s*Property:`)
	claimNumberRe = regexp.MustCompile(`(?i)Claim Number:\s*(\d+)`)
	policyRe      = regexp.MustCompile(`(?i)Policy Number:\s*([\d-]+)`)
	dateOfLossRe  = regexp.MustCompile(`(?i)Date of Loss:\s*(\d{1,2}/\d{1,2}/\d{2,4})`)
	deductibleRe  = regexp.MustCompile(`(?i)Deductible:\s*\$?\s*(\d[\d,]*(?:\.\d+)?)`)
)

// addressStopWords mark the labels that follow the property address block
var addressStopWords = []string{"claim rep", "business:", "position:", "company:"}

// ExtractHeader scans the whole estimate text for the labelled header fields.
// Every field is optional; a missing label simply leaves the field out.
func ExtractHeader(text string) dto.HeaderFields {
	header := dto.HeaderFields{}

	if m := insuredNameRe.FindStringSubmatch(text); m != nil {
		if name := strings.TrimSpace(m[1]); name != "" {
			header[dto.FieldInsuredName] = name
		}
	}

	if address := extractPropertyAddress(text); address != "" {
		header[dto.FieldPropertyAddress] = address
	}

	if m := claimNumberRe.FindStringSubmatch(text); m != nil {
		header[dto.FieldClaimNumber] = m[1]
	}

	if m := policyRe.FindStringSubmatch(text); m != nil {
		header[dto.FieldPolicyNumber] = m[1]
	}

	if m := dateOfLossRe.FindStringSubmatch(text); m != nil {
		header[dto.FieldDateOfLoss] = m[1]
	}

	if m := deductibleRe.FindStringSubmatch(text); m != nil {
		header[dto.FieldDeductible] = m[1]
	}

	return header
}

// extractPropertyAddress collects up to four lines starting at the
// "Property:" label, stopping at the first blank line or the next field label.
func extractPropertyAddress(text string) string {
	loc := propertyRe.FindStringIndex(text)
	if loc == nil {
		return ""
	}

	// The window is counted in runes so it never splits a character.
	end := loc[0]
	for n := 0; n < addressWindow && end < len(text); n++ {
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
	}
	lines := strings.Split(text[loc[0]:end], "\n")
	if len(lines) > addressMaxLines {
		lines = lines[:addressMaxLines]
	}

	var parts []string
	for i, line := range lines {
		if i == 0 {
			if first := strings.TrimSpace(propertyLabel.ReplaceAllString(line, "")); first != "" {
				parts = append(parts, first)
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || containsAny(strings.ToLower(trimmed), addressStopWords) {
			break
		}
		parts = append(parts, trimmed)
	}

	return strings.Join(parts, " ")
}
