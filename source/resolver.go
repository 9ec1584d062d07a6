package source

import (
	"strings"

	"github.com/use-agent/scrapo/models"
)

// sampleSize is how many non-empty cells per column are inspected when
// scoring columns.
const sampleSize = 20

var urlLikeHints = []string{".com", ".net", ".org", ".io", ".co"}

// SelectTargetColumn scores every column by how URL/email-like its sampled
// values are and returns the index of the best one. Ties break to the
// first-seen column. Returns NO_TARGET_COLUMN when the table has no columns
// or every column scores zero.
func SelectTargetColumn(t Table) (int, error) {
	best := -1
	maxScore := 0

	for i, col := range t.Columns {
		score := 0
		sampled := 0
		for _, v := range col.Values {
			if strings.TrimSpace(v) == "" {
				continue
			}
			if sampled++; sampled > sampleSize {
				break
			}
			if isURLLike(v) {
				score++
			}
		}
		if score > maxScore {
			maxScore = score
			best = i
		}
	}

	if best < 0 || maxScore == 0 {
		return 0, models.NewScrapeError(
			models.ErrCodeNoTargetColumn,
			"could not identify a column containing URLs or emails",
			nil,
		)
	}
	return best, nil
}

func isURLLike(v string) bool {
	s := strings.ToLower(v)
	if strings.Contains(s, "@") {
		return true
	}
	for _, hint := range urlLikeHints {
		if strings.Contains(s, hint) {
			return true
		}
	}
	return false
}

// ExtractTargets normalizes the selected column's values into a deduplicated
// ordered list of scrape targets. Emails contribute their domain (the part
// after the last @); bare domains are accepted verbatim when they have at
// least two dot-separated parts and no internal whitespace. The seen-set is
// case-sensitive and first-appearance order is preserved. Returns NO_TARGETS
// when nothing qualifies.
func ExtractTargets(values []string) ([]string, error) {
	targets := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))

	add := func(t string) {
		if t == "" {
			return
		}
		if _, dup := seen[t]; dup {
			return
		}
		seen[t] = struct{}{}
		targets = append(targets, t)
	}

	for _, raw := range values {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}

		switch {
		case strings.Contains(v, "@"):
			add(v[strings.LastIndex(v, "@")+1:])

		case strings.Contains(v, ".") && !strings.ContainsAny(v, " \t"):
			parts := strings.Split(v, ".")
			if len(parts) >= 2 && parts[0] != "" {
				add(v)
			}
		}
	}

	if len(targets) == 0 {
		return nil, models.NewScrapeError(
			models.ErrCodeNoTargets,
			"no URLs or emails found in the identified column",
			nil,
		)
	}
	return targets, nil
}

// Resolve runs column selection and target extraction over a table in one
// step. This is the whole spreadsheet path up to the browser session.
func Resolve(t Table) ([]string, error) {
	idx, err := SelectTargetColumn(t)
	if err != nil {
		return nil, err
	}
	return ExtractTargets(t.Columns[idx].Values)
}
