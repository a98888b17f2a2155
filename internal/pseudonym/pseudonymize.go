// Package pseudonym converts candidate profiles into pseudonymized profiles.
//
// A run replaces the name with a sequential label, generalizes places to
// regions, replaces employers and institutions with category labels and
// shifts dates by a small random offset. Every run returns metadata listing
// the PII fields it saw and the transformations it applied. Runs share no
// state; the same seed and input always give the same data.
package pseudonym

import (
	"time"

	"github.com/jonathan/resume-pseudonymizer/internal/types"
	"github.com/samber/lo"
)

// Transformation descriptors recorded in Metadata.TransformationsApplied
const (
	TransformName              = "name → sequential identifier"
	TransformLocation          = "location → regionalized"
	TransformDates             = "dates → shifted"
	TransformPersonalLocations = "personal locations → regionalized"
	TransformWorkDates         = "work dates → chronology-preserving shift"
	TransformCompanies         = "companies → categorized"
	TransformEducation         = "education institutions → categorized"
)

// Placeholders for fields that are removed rather than generalized
const (
	AddressPlaceholder    = "Anonymisiert"
	PostalCodePlaceholder = "XXXXX"
	DefaultCountryCode    = "DE"
)

// audit accumulates detected fields and applied transformations
type audit struct {
	detected []string
	applied  []string
}

func (a *audit) detect(field string, present bool) {
	if present {
		a.detected = append(a.detected, field)
	}
}

func (a *audit) apply(descriptor string) {
	if !lo.Contains(a.applied, descriptor) {
		a.applied = append(a.applied, descriptor)
	}
}

// PseudonymizeProfile returns a pseudonymized copy of profile and its audit
// metadata. The input is not modified. Missing fields fall back to defaults;
// the call never fails.
func PseudonymizeProfile(profile *types.Profile, opts Options) types.Result {
	opts = opts.normalized()
	if profile == nil {
		profile = &types.Profile{}
	}

	rng := newRNG(opts.Seed)
	out := profile.Clone()
	var a audit

	// Name
	a.detect("name", profile.Name != "")
	out.Name = CandidateLabel(opts.CandidateIndex)
	a.apply(TransformName)

	// Location
	loc := profile.Location
	a.detect("location.address", loc.Address != "")
	a.detect("location.postal_code", loc.PostalCode != "")
	a.detect("location.city", loc.City != "")
	a.detect("base_location", profile.BaseLocation != "")

	region := ResolveRegion(loc.City)
	out.Location = types.Location{
		Address:     AddressPlaceholder,
		PostalCode:  PostalCodePlaceholder,
		City:        region,
		CountryCode: lo.Ternary(loc.CountryCode != "", loc.CountryCode, DefaultCountryCode),
		Region:      region,
	}
	out.BaseLocation = ResolveRegion(profile.BaseLocation)
	if loc.City != "" || loc.Address != "" || loc.PostalCode != "" || profile.BaseLocation != "" {
		a.apply(TransformLocation)
	}

	// Personal data
	pd := profile.PersonalData
	a.detect("personal_data.birth_date", pd.BirthDate != "")
	a.detect("personal_data.birth_place", pd.BirthPlace != "")
	a.detect("personal_data.residence", pd.Residence != "")

	out.PersonalData = types.PersonalData{
		BirthPlace:    ResolveRegion(pd.BirthPlace),
		Residence:     ResolveRegion(pd.Residence),
		MaritalStatus: pd.MaritalStatus,
	}
	if pd.BirthDate != "" {
		out.PersonalData.BirthDate = shiftDate(pd.BirthDate, ShiftAmount(rng, opts.DateShiftRange), opts.Logger)
		a.apply(TransformDates)
	}
	if pd.BirthPlace != "" || pd.Residence != "" {
		a.apply(TransformPersonalLocations)
	}

	// Employment history. Role, summary and achievements describe skills, not identity.
	out.Work = make([]types.Work, len(profile.Work))
	for i, w := range profile.Work {
		out.Work[i] = types.Work{
			CompanyName:  CategorizeCompany(w.CompanyName),
			Role:         w.Role,
			StartDate:    w.StartDate,
			EndDate:      w.EndDate,
			Summary:      w.Summary,
			Achievements: append([]string{}, w.Achievements...),
		}
	}
	if !opts.SkipChronologyShift && len(out.Work) > 0 {
		// One offset for every entry keeps order and gaps between jobs intact.
		shift := ShiftAmount(rng, opts.DateShiftRange)
		for i := range out.Work {
			out.Work[i].StartDate = shiftDate(out.Work[i].StartDate, shift, opts.Logger)
			out.Work[i].EndDate = shiftDate(out.Work[i].EndDate, shift, opts.Logger)
		}
		a.apply(TransformWorkDates)
	}
	if len(profile.Work) > 0 {
		a.detect("work.companies", true)
		a.apply(TransformCompanies)
	}

	// Education. Start and end get independent offsets.
	out.Education = make([]types.Education, len(profile.Education))
	for i, e := range profile.Education {
		out.Education[i] = types.Education{
			Institution: CategorizeInstitution(e.Institution),
			Area:        e.Area,
			DegreeType:  e.DegreeType,
			StartDate:   shiftDate(e.StartDate, ShiftAmount(rng, opts.DateShiftRange), opts.Logger),
			EndDate:     shiftDate(e.EndDate, ShiftAmount(rng, opts.DateShiftRange), opts.Logger),
			Note:        e.Note,
		}
	}
	if len(profile.Education) > 0 {
		a.detect("education.institutions", true)
		a.apply(TransformEducation)
	}

	result := types.Result{
		Data: out,
		Metadata: types.Metadata{
			OriginalDataDetected:   lo.Ternary(a.detected != nil, a.detected, []string{}),
			TransformationsApplied: a.applied,
			Timestamp:              time.Now().UTC(),
			SeedUsed:               opts.Seed,
		},
	}

	if opts.DevMode {
		opts.Trace.Trace(Trace{
			Entries: []TraceEntry{
				{Field: "name", Original: profile.Name, Pseudonymized: out.Name},
				{Field: "location", Original: loc.City, Pseudonymized: out.Location.City},
				{Field: "base_location", Original: profile.BaseLocation, Pseudonymized: out.BaseLocation},
			},
			TransformationsApplied: result.Metadata.TransformationsApplied,
			OriginalDataDetected:   result.Metadata.OriginalDataDetected,
		})
	}

	return result
}
