// Package anonymize provides anonymous display names, document names and
// contact handles for candidates whose profiles are shared externally.
package anonymize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-pseudonymizer/internal/pseudonym"
)

const (
	defaultTitle   = "Kandidat"
	maxTitleWords  = 3
	idSuffixLength = 4
)

var (
	salutationPattern = regexp.MustCompile(`(?i)^(Herr|Frau|Mr\.?|Ms\.?|Mrs\.?)\s+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	nonTitlePattern   = regexp.MustCompile(`[^\w\-äöüßÄÖÜ]`)

	umlautReplacer = strings.NewReplacer(
		"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
		"Ä", "Ae", "Ö", "Oe", "Ü", "Ue",
	)

	germanMonths = [...]string{"Jan", "Feb", "Mär", "Apr", "Mai", "Jun", "Jul", "Aug", "Sep", "Okt", "Nov", "Dez"}
)

// DocumentName builds a file-safe name like "Senior-Developer-A1B2-Jan24"
// from a job title, a candidate ID and the upload time. A zero upload time
// means now.
func DocumentName(title, candidateID string, uploadedAt time.Time) string {
	if uploadedAt.IsZero() {
		uploadedAt = time.Now()
	}
	return fmt.Sprintf("%s-%s-%s", normalizeTitle(title), idSuffix(candidateID), dateSuffix(uploadedAt))
}

// DisplayName returns a name for listings. Without a title, a non-negative
// index yields the sequential "Kandidat:in X" label.
func DisplayName(title, candidateID string, index int) string {
	if title == "" && index >= 0 {
		return pseudonym.CandidateLabel(index)
	}
	if title != "" {
		return fmt.Sprintf("%s (%s)", strings.ReplaceAll(normalizeTitle(title), "-", " "), idSuffix(candidateID))
	}
	return fmt.Sprintf("%s (%s)", defaultTitle, idSuffix(candidateID))
}

// Seniority extracts a coarse seniority level from a job title
func Seniority(title string) string {
	lower := strings.ToLower(title)
	switch {
	case lower == "":
		return "Mid-Level"
	case strings.Contains(lower, "senior"), strings.Contains(lower, "lead"), strings.Contains(lower, "principal"):
		return "Senior"
	case strings.Contains(lower, "junior"), strings.Contains(lower, "trainee"), strings.Contains(lower, "intern"):
		return "Junior"
	default:
		return "Mid-Level"
	}
}

// Email returns an internal, non-routable address for a candidate
func Email(candidateID string) string {
	return fmt.Sprintf("kandidat-%s@anonymized.local", strings.ToLower(idSuffix(candidateID)))
}

func normalizeTitle(title string) string {
	if title == "" {
		return defaultTitle
	}

	clean := salutationPattern.ReplaceAllString(title, "")
	clean = whitespacePattern.ReplaceAllString(clean, "-")
	clean = nonTitlePattern.ReplaceAllString(clean, "")
	clean = umlautReplacer.Replace(clean)

	if words := strings.Split(clean, "-"); len(words) > maxTitleWords {
		return strings.Join(words[:maxTitleWords], "-")
	}
	if clean == "" {
		return defaultTitle
	}
	return clean
}

// idSuffix is the last four characters of the ID, a base-36 hash for short
// IDs, or random characters when there is no ID.
func idSuffix(candidateID string) string {
	if candidateID == "" {
		return strings.ToUpper(uuid.NewString()[:idSuffixLength])
	}
	if r := []rune(candidateID); len(r) >= idSuffixLength {
		return strings.ToUpper(string(r[len(r)-idSuffixLength:]))
	}

	var h int32
	for _, c := range candidateID {
		h = h<<5 - h + int32(c)
	}
	n := int64(h)
	if n < 0 {
		n = -n
	}
	s := strconv.FormatInt(n, 36)
	if len(s) > idSuffixLength {
		s = s[:idSuffixLength]
	}
	return strings.ToUpper(s)
}

func dateSuffix(t time.Time) string {
	return fmt.Sprintf("%s%02d", germanMonths[t.Month()-1], t.Year()%100)
}
