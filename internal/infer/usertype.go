package infer

import (
	"sort"
	"strings"
)

// User-type codes of the import platform.
const (
	UserTypeGraduate = "1"
	UserTypeStudent  = "5"
)

// Keyword vocabularies for free-text type labels. Accented and unaccented
// spellings are both listed because the source files mix them.
var (
	graduateKeywords = []string{
		"diplome", "diplôme", "diplomé", "diplômé", "alumni",
		"ancien", "ancienne", "graduate", "sortant", "finissant",
	}
	studentKeywords = []string{
		"etudiant", "étudiant", "etudiante", "étudiante",
		"eleve", "élève", "student", "stagiaire", "apprenant", "inscrit",
	}
)

// SuggestUserType maps a free-text type label to an import code, or ""
// when nothing in the label gives it away.
func SuggestUserType(raw string) string {
	v := strings.ToLower(raw)
	for _, kw := range graduateKeywords {
		if strings.Contains(v, kw) {
			return UserTypeGraduate
		}
	}
	for _, kw := range studentKeywords {
		if strings.Contains(v, kw) {
			return UserTypeStudent
		}
	}
	return ""
}

// UserTypeLabels returns the distinct raw values in a user-type column
// that look like type labels but are not already import codes: the set an
// operator still has to map. Sorted for stable display.
func UserTypeLabels(values []string) []string {
	seen := make(map[string]bool)
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || v == UserTypeGraduate || v == UserTypeStudent {
			continue
		}
		if looksLikeUserType(v) {
			seen[v] = true
		}
	}
	labels := make([]string, 0, len(seen))
	for v := range seen {
		labels = append(labels, v)
	}
	sort.Strings(labels)
	return labels
}

// userTypeColumnSampleSize bounds the content scan per column.
const userTypeColumnSampleSize = 50

// ScoreUserTypeColumn reports the share of non-empty sampled values that
// carry user-type vocabulary. Used to locate the type column by content
// when no header matched.
func ScoreUserTypeColumn(values []string) float64 {
	sampled, hits := 0, 0
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		sampled++
		if looksLikeUserType(v) {
			hits++
		}
		if sampled == userTypeColumnSampleSize {
			break
		}
	}
	if sampled == 0 {
		return 0
	}
	return float64(hits) / float64(sampled)
}

func looksLikeUserType(v string) bool {
	return SuggestUserType(v) != ""
}
