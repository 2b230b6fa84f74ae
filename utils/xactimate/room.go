package xactimate

import (
	"strings"
	"unicode/utf8"
)

const maxRoomHeadingLength = 50

var roomKeywords = []string{
	"EXTERIOR", "ENTRY", "FOYER", "KITCHEN", "BATHROOM", "BEDROOM",
	"LIVING", "DINING", "GARAGE", "LAUNDRY", "MAIN LEVEL", "BASEMENT",
	"HALLWAY", "OFFICE", "DEN", "CLOSET", "UTILITY", "PANTRY",
	"MASTER", "GUEST", "FAMILY ROOM",
}

// roomExclusions are column and field labels that share words with room names
var roomExclusions = []string{"DESCRIPTION", "QUANTITY", "UNIT", "PRICE", "HEIGHT:"}

// IsRoomHeading reports whether a trimmed line names a room section.
func IsRoomHeading(line string) bool {
	if line == "" || utf8.RuneCountInString(line) > maxRoomHeadingLength {
		return false
	}

	upper := strings.ToUpper(line)
	if !containsAny(upper, roomKeywords) {
		return false
	}
	return !containsAny(upper, roomExclusions)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
