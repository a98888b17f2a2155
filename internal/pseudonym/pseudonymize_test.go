package pseudonym

import (
	"sync"
	"testing"

	"github.com/jonathan/resume-pseudonymizer/internal/types"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() types.Profile {
	return types.Profile{
		Name:         "Max Mustermann",
		Position:     "Senior Software Entwickler",
		Salary:       "80.000 - 100.000 EUR",
		BaseLocation: "München",
		Availability: "Sofort",
		Experience:   "8+ Jahre",
		Location: types.Location{
			Address:     "Musterstraße 123",
			PostalCode:  "80331",
			City:        "München",
			CountryCode: "DE",
			Region:      "Bayern",
		},
		Summary:    "Erfahrener Entwickler mit Fokus auf Backend-Technologien",
		Seniority:  "Senior",
		JobRoles:   []string{"Backend Developer", "Full Stack Developer"},
		CoreTopics: []string{"JavaScript", "Node.js", "React", "Docker"},
		PersonalData: types.PersonalData{
			BirthDate:     "1990-05",
			BirthPlace:    "München",
			Residence:     "München",
			MaritalStatus: "Ledig",
		},
		SoftwareSkills: []types.SoftwareSkill{{Name: "JavaScript", Level: 95}},
		Work: []types.Work{
			{
				CompanyName:  "SAP SE",
				Role:         "Senior Developer",
				StartDate:    "2020-01",
				EndDate:      "Present",
				Summary:      "Enterprise software development",
				Achievements: []string{"Led team of 5 developers", "Implemented microservices architecture"},
			},
			{
				CompanyName:  "StartupXY GmbH",
				Role:         "Full Stack Developer",
				StartDate:    "2018-06",
				EndDate:      "2019-12",
				Summary:      "Full stack development for fintech startup",
				Achievements: []string{"Built MVP from scratch"},
			},
		},
		Education: []types.Education{
			{
				Institution: "TU München",
				URL:         "https://www.tum.de",
				Area:        "Informatik",
				DegreeType:  "Master of Science",
				StartDate:   "2012-10",
				EndDate:     "2015-03",
				Note:        "Schwerpunkt Software Engineering",
			},
			{
				Institution: "RWTH Aachen",
				URL:         "https://www.rwth-aachen.de",
				Area:        "Informatik",
				DegreeType:  "Bachelor of Science",
				StartDate:   "2009-10",
				EndDate:     "2012-09",
				Note:        "Abschluss mit Auszeichnung",
			},
		},
		Skills:    []string{"Go", "Docker"},
		Languages: []types.Language{{Language: "Deutsch", Fluency: "Native"}},
		Certificates: []types.Certificate{
			{Name: "AWS Certified Solutions Architect", Date: "2021-03", Issuer: "Amazon Web Services"},
		},
	}
}

func seededOptions(seed string) Options {
	opts := DefaultOptions()
	opts.Seed = seed
	return opts
}

func TestPseudonymizeProfile_Name(t *testing.T) {
	p := testProfile()

	opts := DefaultOptions()
	assert.Equal(t, "Kandidat:in A", PseudonymizeProfile(&p, opts).Data.Name)

	opts.CandidateIndex = 1
	assert.Equal(t, "Kandidat:in B", PseudonymizeProfile(&p, opts).Data.Name)

	opts.CandidateIndex = 26
	assert.Equal(t, "Kandidat:in A", PseudonymizeProfile(&p, opts).Data.Name)
}

func TestPseudonymizeProfile_Location(t *testing.T) {
	p := testProfile()
	result := PseudonymizeProfile(&p, DefaultOptions())

	loc := result.Data.Location
	assert.Equal(t, "Anonymisiert", loc.Address)
	assert.Equal(t, "XXXXX", loc.PostalCode)
	assert.Equal(t, "Bayern, Süddeutschland", loc.City)
	assert.Equal(t, "Bayern, Süddeutschland", loc.Region)
	assert.Equal(t, "DE", loc.CountryCode)
	assert.Equal(t, "Bayern, Süddeutschland", result.Data.BaseLocation)
}

func TestPseudonymizeProfile_PersonalData(t *testing.T) {
	p := testProfile()
	result := PseudonymizeProfile(&p, seededOptions("abc"))

	pd := result.Data.PersonalData
	// First draw for seed "abc" is +2 months.
	assert.Equal(t, "1990-07", pd.BirthDate)
	assert.Equal(t, "Bayern, Süddeutschland", pd.BirthPlace)
	assert.Equal(t, "Bayern, Süddeutschland", pd.Residence)
	assert.Equal(t, "Ledig", pd.MaritalStatus)
}

func TestPseudonymizeProfile_Work(t *testing.T) {
	p := testProfile()
	result := PseudonymizeProfile(&p, seededOptions("abc"))

	require.Len(t, result.Data.Work, 2)
	sap, startup := result.Data.Work[0], result.Data.Work[1]

	assert.Equal(t, "Software-Unternehmen (10.000+ MA)", sap.CompanyName)
	assert.Equal(t, "Tech-Startup (10-50 MA)", startup.CompanyName)

	// Second draw for seed "abc" is +3 months, applied to every work date.
	assert.Equal(t, "2020-04", sap.StartDate)
	assert.Equal(t, "Present", sap.EndDate)
	assert.Equal(t, "2018-09", startup.StartDate)
	assert.Equal(t, "2020-03", startup.EndDate)

	assert.Equal(t, "Senior Developer", sap.Role)
	assert.Equal(t, "Enterprise software development", sap.Summary)
	assert.Equal(t, p.Work[0].Achievements, sap.Achievements)
}

func TestPseudonymizeProfile_WorkChronologyPreserved(t *testing.T) {
	p := testProfile()
	for _, seed := range []string{"a", "b", "c", "chronology", "test-seed-123"} {
		result := PseudonymizeProfile(&p, seededOptions(seed))
		earlier, later := result.Data.Work[1], result.Data.Work[0]
		assert.LessOrEqual(t, earlier.EndDate, later.StartDate, "seed %s", seed)
		assert.Less(t, earlier.StartDate, earlier.EndDate, "seed %s", seed)
	}
}

func TestPseudonymizeProfile_ZeroOptionsShiftWorkDates(t *testing.T) {
	p := testProfile()

	result := PseudonymizeProfile(&p, Options{Seed: "abc"})

	assert.Equal(t, "2020-04", result.Data.Work[0].StartDate)
	assert.Equal(t, "2018-09", result.Data.Work[1].StartDate)
	assert.Equal(t, "2020-03", result.Data.Work[1].EndDate)
	assert.Contains(t, result.Metadata.TransformationsApplied, TransformWorkDates)
}

func TestPseudonymizeProfile_WithoutChronology(t *testing.T) {
	p := testProfile()
	opts := seededOptions("abc")
	opts.SkipChronologyShift = true

	result := PseudonymizeProfile(&p, opts)

	assert.Equal(t, "2020-01", result.Data.Work[0].StartDate)
	assert.Equal(t, "2018-06", result.Data.Work[1].StartDate)
	assert.Equal(t, "2019-12", result.Data.Work[1].EndDate)
	assert.NotContains(t, result.Metadata.TransformationsApplied, TransformWorkDates)
	assert.Contains(t, result.Metadata.TransformationsApplied, TransformCompanies)
}

func TestPseudonymizeProfile_Education(t *testing.T) {
	p := testProfile()
	result := PseudonymizeProfile(&p, seededOptions("abc"))

	require.Len(t, result.Data.Education, 2)
	tum, rwth := result.Data.Education[0], result.Data.Education[1]

	assert.Equal(t, "Technische Universität in Bayern", tum.Institution)
	assert.Equal(t, "Technische Hochschule in NRW", rwth.Institution)
	assert.Empty(t, tum.URL)
	assert.Empty(t, rwth.URL)
	assert.Equal(t, "Informatik", tum.Area)
	assert.Equal(t, "Master of Science", tum.DegreeType)
	assert.Equal(t, "Schwerpunkt Software Engineering", tum.Note)

	// Draws 3-6 for seed "abc": 0, +1, 0, +2.
	assert.Equal(t, "2012-10", tum.StartDate)
	assert.Equal(t, "2015-04", tum.EndDate)
	assert.Equal(t, "2009-10", rwth.StartDate)
	assert.Equal(t, "2012-11", rwth.EndDate)
}

func TestPseudonymizeProfile_DateFormatPreserved(t *testing.T) {
	p := testProfile()
	opts := DefaultOptions()
	opts.DateShiftRange = 1

	result := PseudonymizeProfile(&p, opts)

	assert.Regexp(t, `^\d{4}-\d{2}$`, result.Data.Work[0].StartDate)
	assert.Equal(t, "Present", result.Data.Work[0].EndDate)
	assert.Regexp(t, `^\d{4}-\d{2}$`, result.Data.PersonalData.BirthDate)
}

func TestPseudonymizeProfile_UnseededShiftWithinRange(t *testing.T) {
	p := testProfile()
	allowed := []string{"1990-03", "1990-04", "1990-05", "1990-06", "1990-07"}

	for i := 0; i < 50; i++ {
		result := PseudonymizeProfile(&p, DefaultOptions())
		assert.Contains(t, allowed, result.Data.PersonalData.BirthDate)
		assert.Empty(t, result.Metadata.SeedUsed)
	}
}

func TestPseudonymizeProfile_SeededIsReproducible(t *testing.T) {
	p := testProfile()
	opts := seededOptions("test-seed-123")

	first := PseudonymizeProfile(&p, opts)
	second := PseudonymizeProfile(&p, opts)

	assert.Equal(t, first.Data, second.Data)
	assert.Equal(t, first.Data.PersonalData.BirthDate, second.Data.PersonalData.BirthDate)
	assert.Equal(t, "test-seed-123", first.Metadata.SeedUsed)
	assert.Equal(t, first.Metadata.SeedUsed, second.Metadata.SeedUsed)
}

func TestPseudonymizeProfile_ConcurrentSameSeed(t *testing.T) {
	p := testProfile()
	opts := seededOptions("parallel")
	want := PseudonymizeProfile(&p, opts).Data

	var wg sync.WaitGroup
	results := make([]types.Profile, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = PseudonymizeProfile(&p, opts).Data
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestPseudonymizeProfile_Metadata(t *testing.T) {
	p := testProfile()
	result := PseudonymizeProfile(&p, DefaultOptions())

	assert.Equal(t, []string{
		TransformName,
		TransformLocation,
		TransformDates,
		TransformPersonalLocations,
		TransformWorkDates,
		TransformCompanies,
		TransformEducation,
	}, result.Metadata.TransformationsApplied)

	assert.Equal(t, []string{
		"name",
		"location.address",
		"location.postal_code",
		"location.city",
		"base_location",
		"personal_data.birth_date",
		"personal_data.birth_place",
		"personal_data.residence",
		"work.companies",
		"education.institutions",
	}, result.Metadata.OriginalDataDetected)

	assert.False(t, result.Metadata.Timestamp.IsZero())
}

func TestPseudonymizeProfile_MinimalInput(t *testing.T) {
	p := types.Profile{Name: "Test", Position: "Developer"}

	result := PseudonymizeProfile(&p, DefaultOptions())

	assert.Equal(t, "Kandidat:in A", result.Data.Name)
	assert.Equal(t, "Developer", result.Data.Position)
	assert.Equal(t, "Deutschland", result.Data.Location.City)
	assert.Equal(t, "Deutschland", result.Data.Location.Region)
	assert.Equal(t, "DE", result.Data.Location.CountryCode)
	assert.Empty(t, result.Data.PersonalData.BirthDate)
	assert.NotNil(t, result.Data.Work)
	assert.Len(t, result.Data.Work, 0)
	assert.NotNil(t, result.Data.Education)
	assert.Len(t, result.Data.Education, 0)

	assert.Equal(t, []string{TransformName}, result.Metadata.TransformationsApplied)
	assert.Equal(t, []string{"name"}, result.Metadata.OriginalDataDetected)
}

func TestPseudonymizeProfile_LocationDescriptorsFollowAnyField(t *testing.T) {
	tests := []struct {
		name    string
		profile types.Profile
		want    string
	}{
		{"postal code only", types.Profile{Location: types.Location{PostalCode: "80331"}}, TransformLocation},
		{"address only", types.Profile{Location: types.Location{Address: "Hauptstr. 1"}}, TransformLocation},
		{"base location only", types.Profile{BaseLocation: "Hamburg"}, TransformLocation},
		{"birth place only", types.Profile{PersonalData: types.PersonalData{BirthPlace: "Köln"}}, TransformPersonalLocations},
		{"residence only", types.Profile{PersonalData: types.PersonalData{Residence: "Berlin"}}, TransformPersonalLocations},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PseudonymizeProfile(&tt.profile, seededOptions("abc"))
			assert.Contains(t, result.Metadata.TransformationsApplied, tt.want)
		})
	}
}

func TestPseudonymizeProfile_NilProfile(t *testing.T) {
	assert.NotPanics(t, func() {
		result := PseudonymizeProfile(nil, Options{})
		assert.Equal(t, "Kandidat:in A", result.Data.Name)
		assert.Empty(t, result.Metadata.OriginalDataDetected)
		assert.NotNil(t, result.Metadata.OriginalDataDetected)
	})
}

func TestPseudonymizeProfile_DoesNotMutateInput(t *testing.T) {
	p := testProfile()
	before := p.Clone()

	result := PseudonymizeProfile(&p, seededOptions("abc"))
	assert.Equal(t, before, p)

	result.Data.Skills[0] = "changed"
	result.Data.Work[0].Achievements[0] = "changed"
	assert.Equal(t, "Go", p.Skills[0])
	assert.Equal(t, "Led team of 5 developers", p.Work[0].Achievements[0])
}

func TestPseudonymizeProfile_PassThroughFields(t *testing.T) {
	p := testProfile()
	result := PseudonymizeProfile(&p, DefaultOptions())

	assert.Equal(t, p.Position, result.Data.Position)
	assert.Equal(t, p.Seniority, result.Data.Seniority)
	assert.Equal(t, p.Skills, result.Data.Skills)
	assert.Equal(t, p.Languages, result.Data.Languages)
	assert.Equal(t, p.Certificates, result.Data.Certificates)
	assert.Equal(t, p.SoftwareSkills, result.Data.SoftwareSkills)
}

func TestPseudonymizeProfile_DevModeTrace(t *testing.T) {
	p := testProfile()
	var traces []Trace

	opts := DefaultOptions()
	opts.DevMode = true
	opts.Trace = TraceFunc(func(tr Trace) { traces = append(traces, tr) })

	result := PseudonymizeProfile(&p, opts)

	require.Len(t, traces, 1)
	assert.Equal(t, []TraceEntry{
		{Field: "name", Original: "Max Mustermann", Pseudonymized: "Kandidat:in A"},
		{Field: "location", Original: "München", Pseudonymized: "Bayern, Süddeutschland"},
		{Field: "base_location", Original: "München", Pseudonymized: "Bayern, Süddeutschland"},
	}, traces[0].Entries)
	assert.Equal(t, result.Metadata.TransformationsApplied, traces[0].TransformationsApplied)
}

func TestPseudonymizeProfile_NoTraceOutsideDevMode(t *testing.T) {
	p := testProfile()
	called := false

	opts := DefaultOptions()
	opts.Trace = TraceFunc(func(Trace) { called = true })
	PseudonymizeProfile(&p, opts)

	assert.False(t, called)
}

func TestPseudonymizeProfile_DevModeLogsWithoutSink(t *testing.T) {
	p := testProfile()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	opts := DefaultOptions()
	opts.DevMode = true
	opts.Logger = logger
	PseudonymizeProfile(&p, opts)

	assert.Len(t, hook.AllEntries(), 4)
	assert.Equal(t, "name", hook.AllEntries()[0].Data["field"])
}
