package pseudonym

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// CompanySize is an employee-count bucket
type CompanySize string

// Company size buckets ("MA" = Mitarbeiter)
const (
	SizeStartup    CompanySize = "10-50 MA"
	SizeSmall      CompanySize = "50-250 MA"
	SizeMedium     CompanySize = "250-1.000 MA"
	SizeLarge      CompanySize = "1.000-10.000 MA"
	SizeEnterprise CompanySize = "10.000+ MA"
)

// Industry is an industry category label
type Industry string

// Industry categories
const (
	IndustrySoftware      Industry = "Software-Unternehmen"
	IndustryConsulting    Industry = "Beratungsunternehmen"
	IndustryFinance       Industry = "Finanzdienstleister"
	IndustryAutomotive    Industry = "Automotive-Konzern"
	IndustryHealthcare    Industry = "Gesundheitswesen"
	IndustryRetail        Industry = "Einzelhandel"
	IndustryManufacturing Industry = "Produktionsunternehmen"
	IndustryStartup       Industry = "Tech-Startup"
	IndustryGovernment    Industry = "Öffentlicher Sektor"
	IndustryEducation     Industry = "Bildungseinrichtung"
	IndustryOther         Industry = "Branchenübergreifend"
)

// FallbackCompanyLabel is used when no company name is given
const FallbackCompanyLabel = "Unternehmen"

// companyRule is one entry of the first-match-wins industry cascade.
// Keywords are matched as plain substrings of the lower-cased name.
type companyRule struct {
	name     string
	keywords []string
	classify func(lowerName string) (Industry, CompanySize)
}

// companyRules is evaluated in order; reordering changes output for real names.
var companyRules = []companyRule{
	{
		name:     "software-brand",
		keywords: []string{"sap", "oracle", "microsoft", "ibm", "google", "amazon"},
		classify: fixedCategory(IndustrySoftware, SizeEnterprise),
	},
	{
		name:     "software-keyword",
		keywords: []string{"software", "tech", "digital", "it", "data", "cloud"},
		classify: estimatedCategory(IndustrySoftware),
	},
	{
		name: "consulting",
		keywords: []string{
			"consulting", "beratung", "advisory", "mckinsey", "bcg",
			"deloitte", "pwc", "kpmg", "ey",
		},
		classify: func(lowerName string) (Industry, CompanySize) {
			if containsAny(lowerName, "mckinsey", "bcg") {
				return IndustryConsulting, SizeLarge
			}
			return IndustryConsulting, EstimateCompanySize(lowerName)
		},
	},
	{
		name: "finance",
		keywords: []string{
			"bank", "finance", "invest", "asset", "capital",
			"deutsche bank", "commerzbank", "allianz",
		},
		classify: fixedCategory(IndustryFinance, SizeLarge),
	},
	{
		name:     "automotive",
		keywords: []string{"bmw", "mercedes", "volkswagen", "audi", "porsche", "automotive", "auto"},
		classify: fixedCategory(IndustryAutomotive, SizeEnterprise),
	},
	{
		name:     "startup-legal-form",
		keywords: []string{"gmbh", "ug", "startup"},
		classify: fixedCategory(IndustryStartup, SizeStartup),
	},
	{
		name:     "government",
		keywords: []string{"bundesamt", "ministerium", "behörde", "stadt", "kommune", "öffentlich"},
		classify: fixedCategory(IndustryGovernment, SizeLarge),
	},
	{
		name:     "education",
		keywords: []string{"universität", "hochschule", "uni", "tu", "fh", "akademie"},
		classify: fixedCategory(IndustryEducation, SizeLarge),
	},
}

// sizeCues is evaluated in order; the first bucket with a matching cue wins
var sizeCues = []struct {
	size     CompanySize
	keywords []string
}{
	{SizeEnterprise, []string{"ag", "se", "group", "holding", "international", "global"}},
	{SizeStartup, []string{"ug", "startup", "labs"}},
	{SizeSmall, []string{"gbr", "einzelunternehmen"}},
}

// CategorizeCompany replaces a company name with "<Industry> (<Size>)".
func CategorizeCompany(companyName string) string {
	if companyName == "" {
		return FallbackCompanyLabel
	}

	_, industry, size := classifyCompany(strings.ToLower(companyName))
	return fmt.Sprintf("%s (%s)", industry, size)
}

// classifyCompany returns the matching rule name ("fallback" when none
// matched) together with its classification.
func classifyCompany(lowerName string) (string, Industry, CompanySize) {
	rule, ok := lo.Find(companyRules, func(r companyRule) bool {
		return containsAny(lowerName, r.keywords...)
	})
	if !ok {
		return "fallback", IndustryOther, EstimateCompanySize(lowerName)
	}

	industry, size := rule.classify(lowerName)
	return rule.name, industry, size
}

// EstimateCompanySize guesses a size bucket from legal-form and scale words,
// defaulting to SizeMedium.
func EstimateCompanySize(companyName string) CompanySize {
	name := strings.ToLower(companyName)
	for _, cue := range sizeCues {
		if containsAny(name, cue.keywords...) {
			return cue.size
		}
	}
	return SizeMedium
}

func fixedCategory(industry Industry, size CompanySize) func(string) (Industry, CompanySize) {
	return func(string) (Industry, CompanySize) {
		return industry, size
	}
}

func estimatedCategory(industry Industry) func(string) (Industry, CompanySize) {
	return func(lowerName string) (Industry, CompanySize) {
		return industry, EstimateCompanySize(lowerName)
	}
}

func containsAny(s string, keywords ...string) bool {
	return lo.SomeBy(keywords, func(k string) bool {
		return strings.Contains(s, k)
	})
}
