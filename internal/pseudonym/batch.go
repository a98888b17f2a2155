package pseudonym

import (
	"runtime"

	"github.com/jonathan/resume-pseudonymizer/internal/types"
	"golang.org/x/sync/errgroup"
)

// PseudonymizeMultipleProfiles pseudonymizes each profile with its slice
// position as CandidateIndex, overriding opts.CandidateIndex, so labels run
// A, B, C... in input order. Profiles are processed in parallel.
func PseudonymizeMultipleProfiles(profiles []types.Profile, opts Options) []types.Result {
	results := make([]types.Result, len(profiles))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range profiles {
		g.Go(func() error {
			o := opts
			o.CandidateIndex = i
			results[i] = PseudonymizeProfile(&profiles[i], o)
			return nil
		})
	}
	_ = g.Wait() // workers never return an error

	return results
}
