package botwatch

import "strings"

// Rule is a single entry in the classification priority table, pairing a
// matchable substring with the [Category] it resolves to.
type Rule struct {
	// Match is the substring searched for in the label, case-insensitively.
	Match string

	// Category is the result when Match is found.
	Category Category
}

// PriorityTable is the ordered list of classification rules applied by
// [Classify].
//
// The order is the contract: a label containing substrings from two
// different rules resolves to whichever rule appears FIRST in this table,
// never by specificity or alphabetical order. Symbols are checked ahead of
// keywords so that an explicit marker like "✅" overrides any wording that
// follows it. Among keywords, "disconnected" must precede "connected"
// (substring containment) and failure terms precede success terms so that
// a composite label such as "Running with API Errors" reads as a warning
// rather than healthy.
//
// The table is exported for documentation and testing; treat it as
// read-only.
var PriorityTable = []Rule{
	// status symbols, checked before any keyword
	{"✅", CategoryOK},
	{"❌", CategoryError},
	{"⚠️", CategoryWarning},
	{"⚪", CategoryNeutral},
	{"▶️", CategoryInfo},
	{"⏹️", CategoryNeutral},

	// failure keywords
	{"disconnected", CategoryError},
	{"failed", CategoryError},
	{"failure", CategoryError},
	{"error", CategoryError},

	// transient / degraded keywords
	{"connecting", CategoryWarning},
	{"warning", CategoryWarning},
	{"degraded", CategoryWarning},

	// healthy keywords ("connected" only reachable once "disconnected"
	// and "connecting" have been ruled out)
	{"connected", CategoryOK},
	{"success", CategoryOK},
	{"resumed", CategoryOK},
	{"running", CategoryOK},
	{"healthy", CategoryOK},

	// lifecycle keywords
	{"starting", CategoryInfo},
	{"initializing", CategoryInfo},

	// non-events
	{"stopped", CategoryNeutral},
	{"skipped", CategoryNeutral},
}

// Classify maps a free-text status label to a [Category].
//
// Classify is pure and total: every input resolves to exactly one category.
// The label is searched case-insensitively for each [PriorityTable] entry in
// order; the first matching rule wins. Labels matching no rule classify as
// [CategoryUnknown].
//
// Examples:
//
//	Classify("✅ Success")   // CategoryOK (symbol rule)
//	Classify("Connecting")  // CategoryWarning
//	Classify("Disconnected") // CategoryError, despite containing "connected"
//	Classify("gibberish")   // CategoryUnknown
func Classify(label string) Category {
	lower := strings.ToLower(label)
	for _, rule := range PriorityTable {
		if strings.Contains(lower, rule.Match) {
			return rule.Category
		}
	}
	return CategoryUnknown
}
