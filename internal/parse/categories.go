package parse

import "strings"

// DefaultCategory is the universal fallback for unclassifiable expenses.
const DefaultCategory = "Others"

// CategoryNames is the closed, insertion-ordered set of canonical expense
// categories. It mirrors the rows seeded by migration; every Draft.Category
// is a member of this list.
var CategoryNames = []string{
	"Food & Dining",
	"Transportation",
	"Housing & Utilities",
	"Health & Fitness",
	"Shopping",
	"Entertainment",
	"Travel",
	"Education",
	"Savings & Investments",
	"Debt & Loans",
	"Personal Care",
	"Others",
}

// ResolveCategory maps a free-text category label onto the canonical set.
// It is total: exact match first, then case-folded match, else "Others".
func ResolveCategory(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return DefaultCategory
	}

	for _, name := range CategoryNames {
		if name == label {
			return name
		}
	}
	for _, name := range CategoryNames {
		if strings.EqualFold(name, label) {
			return name
		}
	}
	return DefaultCategory
}

// DefaultVoiceCategoryID is the voice table's catch-all id ("Other").
const DefaultVoiceCategoryID = 10

// voiceCategoryNames is the 10-way numeric table used only by the voice
// extraction prompt. It is intentionally a different enumeration from
// CategoryNames (e.g. id 3 is "Shopping" here but "Housing & Utilities"
// there); the two mappings must not be unified.
var voiceCategoryNames = map[int]string{
	1:  "Food & Dining",
	2:  "Transportation",
	3:  "Shopping",
	4:  "Entertainment",
	5:  "Healthcare",
	6:  "Education",
	7:  "Utilities",
	8:  "Travel",
	9:  "Business",
	10: "Other",
}

// VoiceCategoryName returns the voice-table name for an id, defaulting to
// "Other" for anything outside [1,10].
func VoiceCategoryName(id int) string {
	if name, ok := voiceCategoryNames[id]; ok {
		return name
	}
	return voiceCategoryNames[DefaultVoiceCategoryID]
}

// NormalizeVoiceCategoryID clamps an extracted category id onto the voice
// table's valid range.
func NormalizeVoiceCategoryID(id int) int {
	if id < 1 || id > 10 {
		return DefaultVoiceCategoryID
	}
	return id
}
