// Package patterns holds the compiled regular expressions and classifiers
// shared by the contact extraction pipeline. All patterns are immutable and
// initialized once at process start.
package patterns

import "regexp"

// Email matches a local@domain.tld address with a 2+ letter TLD.
var Email = regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)

// Phone matches an optional leading +, then digits interleaved with spaces,
// parentheses, hyphens and dots. Candidates must start and end on a digit.
// The minimum of 8 raw digits is enforced by extractor.FilterPhones, not here.
var Phone = regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`)

// Social maps platform names to the URL shape of a profile link on that
// platform: the host followed by any run of non-space, non-quote,
// non-angle-bracket characters.
var Social = map[string]*regexp.Regexp{
	"facebook":  regexp.MustCompile(`facebook\.com/[^\s"'<>]+`),
	"instagram": regexp.MustCompile(`instagram\.com/[^\s"'<>]+`),
	"linkedin":  regexp.MustCompile(`linkedin\.com/[^\s"'<>]+`),
}

// Platforms lists the social platform names in the order they appear in
// output rows.
var Platforms = []string{"facebook", "instagram", "linkedin"}

var (
	fullDate  = regexp.MustCompile(`^\d{4}[-/]\d{2}[-/]\d{2}$`)
	yearMonth = regexp.MustCompile(`^\d{4}[-/]\d{2}$`)
	bareYear  = regexp.MustCompile(`^\d{4}$`)
)

// IsDateLike reports whether s, with spaces stripped, looks like a date:
// YYYY-MM-DD, YYYY/MM/DD, YYYY-MM, YYYY/MM or a bare YYYY. Anything longer
// than 10 characters after stripping is never date-like. Used to suppress
// phone-number false positives that are actually dates in page text.
func IsDateLike(s string) bool {
	clean := stripSpaces(s)
	if len(clean) > 10 {
		return false
	}
	return fullDate.MatchString(clean) || yearMonth.MatchString(clean) || bareYear.MatchString(clean)
}

func stripSpaces(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' {
			b = append(b, s[i])
		}
	}
	return string(b)
}
