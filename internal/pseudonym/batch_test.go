package pseudonym

import (
	"testing"

	"github.com/jonathan/resume-pseudonymizer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPseudonymizeMultipleProfiles_SequentialLabels(t *testing.T) {
	p := testProfile()
	opts := DefaultOptions()
	opts.CandidateIndex = 7

	results := PseudonymizeMultipleProfiles([]types.Profile{p, p, p}, opts)

	require.Len(t, results, 3)
	assert.Equal(t, "Kandidat:in A", results[0].Data.Name)
	assert.Equal(t, "Kandidat:in B", results[1].Data.Name)
	assert.Equal(t, "Kandidat:in C", results[2].Data.Name)
}

func TestPseudonymizeMultipleProfiles_PreservesOrder(t *testing.T) {
	profiles := make([]types.Profile, 30)
	for i := range profiles {
		profiles[i] = types.Profile{Position: string(rune('a' + i%26))}
	}

	results := PseudonymizeMultipleProfiles(profiles, DefaultOptions())

	require.Len(t, results, 30)
	for i, r := range results {
		assert.Equal(t, CandidateLabel(i), r.Data.Name)
		assert.Equal(t, profiles[i].Position, r.Data.Position)
	}
}

func TestPseudonymizeMultipleProfiles_Empty(t *testing.T) {
	results := PseudonymizeMultipleProfiles(nil, DefaultOptions())
	assert.Empty(t, results)
}

func TestPseudonymizeMultipleProfiles_SeededMatchesSingle(t *testing.T) {
	p := testProfile()
	opts := seededOptions("batch")

	results := PseudonymizeMultipleProfiles([]types.Profile{p, p}, opts)

	opts.CandidateIndex = 1
	single := PseudonymizeProfile(&p, opts)
	assert.Equal(t, single.Data, results[1].Data)
}
