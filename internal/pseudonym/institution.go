package pseudonym

import "strings"

// Institution labels
const (
	LabelTechnicalUniversity = "Technische Universität"
	LabelUniversity          = "Universität"
	LabelAppliedSciences     = "Hochschule für angewandte Wissenschaften"
	LabelBusinessSchool      = "Wirtschaftshochschule"
	LabelEducationFallback   = "Bildungseinrichtung"
)

// institutionRule is one entry of the first-match-wins institution cascade
type institutionRule struct {
	name     string
	keywords []string
	label    func(lowerName string) string
}

// technicalUniversityRegions picks a state-qualified label by embedded city or abbreviation
var technicalUniversityRegions = []struct {
	keywords []string
	label    string
}{
	{[]string{"münchen", "tum"}, "Technische Universität in Bayern"},
	{[]string{"aachen", "rwth"}, "Technische Hochschule in NRW"},
	{[]string{"berlin"}, "Technische Universität in Berlin"},
	{[]string{"dresden"}, "Technische Universität in Sachsen"},
	{[]string{"karlsruhe", "kit"}, "Technische Hochschule in Baden-Württemberg"},
}

var institutionRules = []institutionRule{
	{
		name:     "technical-university",
		keywords: []string{"tu ", "technische universität", "technical university", "rwth", "kit", "tum"},
		label: func(lowerName string) string {
			for _, r := range technicalUniversityRegions {
				if containsAny(lowerName, r.keywords...) {
					return r.label
				}
			}
			return LabelTechnicalUniversity
		},
	},
	{
		name:     "university",
		keywords: []string{"universität", "university", "uni "},
		label:    regionQualified(LabelUniversity),
	},
	{
		name:     "applied-sciences",
		keywords: []string{"hochschule", "fh ", "fachhochschule"},
		label:    regionQualified(LabelAppliedSciences),
	},
	{
		name:     "business-school",
		keywords: []string{"business school", "management", "economic"},
		label:    func(string) string { return LabelBusinessSchool },
	},
}

// CategorizeInstitution replaces an institution name with an
// institution-type label, qualified by region where one can be derived.
func CategorizeInstitution(institutionName string) string {
	if institutionName == "" {
		return LabelEducationFallback
	}

	lower := strings.ToLower(institutionName)
	for _, rule := range institutionRules {
		if containsAny(lower, rule.keywords...) {
			return rule.label(lower)
		}
	}
	return LabelEducationFallback
}

func regionQualified(base string) func(string) string {
	return func(lowerName string) string {
		if state := regionStateIn(lowerName); state != "" {
			return base + " in " + state
		}
		return base
	}
}
