// Package types provides type definitions for structured data used throughout the resume-pseudonymizer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Profile is a candidate profile as delivered by the resume-parsing service.
// A pseudonymized profile uses the same shape with identifying fields replaced.
type Profile struct {
	ID             string          `json:"id,omitempty"`
	Name           string          `json:"name"`
	Position       string          `json:"position"`
	Salary         string          `json:"salary,omitempty"`
	BaseLocation   string          `json:"base_location,omitempty"`
	Availability   string          `json:"availability,omitempty"`
	Experience     string          `json:"experience,omitempty"`
	Location       Location        `json:"location"`
	Summary        string          `json:"summary,omitempty"`
	Seniority      string          `json:"seniority,omitempty"`
	JobRoles       []string        `json:"job_roles,omitempty"`
	CoreTopics     []string        `json:"core_topics,omitempty"`
	PersonalData   PersonalData    `json:"personal_data"`
	SoftwareSkills []SoftwareSkill `json:"software_skills,omitempty"`
	Work           []Work          `json:"work"`
	Education      []Education     `json:"education"`
	Skills         []string        `json:"skills,omitempty"`
	Languages      []Language      `json:"languages,omitempty"`
	Certificates   []Certificate   `json:"certificates,omitempty"`
}

// Location is the postal location block of a profile
type Location struct {
	Address     string `json:"address"`
	PostalCode  string `json:"postal_code"`
	City        string `json:"city"`
	CountryCode string `json:"country_code"`
	Region      string `json:"region"`
}

// PersonalData holds birth and residence details
type PersonalData struct {
	BirthDate     string `json:"birth_date"`
	BirthPlace    string `json:"birth_place"`
	Residence     string `json:"residence"`
	MaritalStatus string `json:"marital_status"`
}

// Work is a single employment history entry
type Work struct {
	CompanyName  string   `json:"company_name"`
	Role         string   `json:"role"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Summary      string   `json:"summary"`
	Achievements []string `json:"achievements"`
}

// Education is a single education history entry
type Education struct {
	Institution string `json:"institution"`
	Area        string `json:"area"`
	DegreeType  string `json:"degree_type"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	URL         string `json:"url"`
	Note        string `json:"note"`
}

// SoftwareSkill is a named tool with a self-assessed level (0-100)
type SoftwareSkill struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// Language is a spoken language and fluency
type Language struct {
	Language string `json:"language"`
	Fluency  string `json:"fluency"`
}

// Certificate is an earned certification
type Certificate struct {
	Name        string `json:"name"`
	Date        string `json:"date,omitempty"`
	Issuer      string `json:"issuer,omitempty"`
	Description string `json:"description,omitempty"`
}

// Clone returns a deep copy of the profile. No slice in the copy aliases the original.
func (p *Profile) Clone() Profile {
	out := *p
	out.JobRoles = cloneSlice(p.JobRoles)
	out.CoreTopics = cloneSlice(p.CoreTopics)
	out.Skills = cloneSlice(p.Skills)
	out.SoftwareSkills = cloneSlice(p.SoftwareSkills)
	out.Languages = cloneSlice(p.Languages)
	out.Certificates = cloneSlice(p.Certificates)
	out.Education = cloneSlice(p.Education)

	if p.Work != nil {
		out.Work = make([]Work, len(p.Work))
		for i, w := range p.Work {
			w.Achievements = cloneSlice(w.Achievements)
			out.Work[i] = w
		}
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
