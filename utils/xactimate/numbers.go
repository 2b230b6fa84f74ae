package xactimate

import (
	"math"
	"strconv"
	"strings"
)

var currencyReplacer = strings.NewReplacer("$", "", ",", "", "<", "", ">", "", "(", "", ")", "")

// parseNumber converts a quantity token such as "1,234.50" to a float.
func parseNumber(value string) (float64, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	if cleaned == "" {
		return 0, nil
	}
	return strconv.ParseFloat(cleaned, 64)
}

// parseCurrency converts a money token to a float. Parentheses and angle
// brackets are stripped and do not negate the value.
func parseCurrency(value string) (float64, error) {
	cleaned := strings.TrimSpace(currencyReplacer.Replace(value))
	if cleaned == "" {
		return 0, nil
	}
	return strconv.ParseFloat(cleaned, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
