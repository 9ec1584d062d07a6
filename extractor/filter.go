package extractor

import (
	"regexp"
	"sort"
	"strings"

	"github.com/use-agent/scrapo/patterns"
)

var (
	wsRun = regexp.MustCompile(`\s+`)

	// yearRange matches bare 4-digit ranges like "1990-1999" or "2020 – 2024"
	// which the phone regex happily picks up from page text.
	yearRange = regexp.MustCompile(`^\d{4}\s*[-–]\s*\d{4}$`)

	// digitRun matches three or more single digits each followed by
	// whitespace and then one more digit, e.g. "1 2 3 4" — incidental digit
	// sequences, not phone numbers.
	digitRun = regexp.MustCompile(`^(\d\s+){3,}\d`)

	nonDigit = regexp.MustCompile(`\D`)
)

// FilterPhones removes false positives from raw phone-pattern matches and
// collapses candidates whose digit sequence is contained in a longer
// retained candidate's digits. Empty or all-discarded input yields an empty
// slice, never an error.
func FilterPhones(raw []string) []string {
	retained := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, candidate := range raw {
		cleaned := strings.TrimSpace(wsRun.ReplaceAllString(candidate, " "))
		if cleaned == "" {
			continue
		}
		if patterns.IsDateLike(cleaned) {
			continue
		}
		if yearRange.MatchString(cleaned) {
			continue
		}
		if digitRun.MatchString(cleaned) {
			continue
		}
		if len(digitsOf(cleaned)) < 8 {
			continue
		}
		if _, dup := seen[cleaned]; dup {
			continue
		}
		seen[cleaned] = struct{}{}
		retained = append(retained, cleaned)
	}

	return dedupSubsumed(retained)
}

// dedupSubsumed keeps a candidate only when no longer-digit candidate already
// kept contains its digit string, collapsing a partial number that is a
// prefix or suffix of a fuller one seen on the same page.
func dedupSubsumed(candidates []string) []string {
	sorted := make([]string, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(digitsOf(sorted[i])) > len(digitsOf(sorted[j]))
	})

	kept := make([]string, 0, len(sorted))
	keptDigits := make([]string, 0, len(sorted))
	for _, c := range sorted {
		d := digitsOf(c)
		subsumed := false
		for _, kd := range keptDigits {
			if strings.Contains(kd, d) {
				subsumed = true
				break
			}
		}
		if subsumed {
			continue
		}
		kept = append(kept, c)
		keptDigits = append(keptDigits, d)
	}
	return kept
}

func digitsOf(s string) string {
	return nonDigit.ReplaceAllString(s, "")
}
