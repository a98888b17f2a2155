package pseudonym

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// DefaultDateShiftRange is the date shift range in months used when none is set
const DefaultDateShiftRange = 2

// Options controls a pseudonymization run. The zero value is usable:
// work dates are shifted and the default range applies.
type Options struct {
	// Seed makes output reproducible. Empty means non-deterministic.
	Seed string `json:"seed,omitempty" validate:"max=256"`
	// CandidateIndex selects the sequential label letter (index mod 26).
	CandidateIndex int `json:"candidate_index" validate:"gte=0"`
	// DevMode enables the field-level trace. Never enable for shared output.
	DevMode bool `json:"dev_mode"`
	// SkipChronologyShift leaves work dates untouched. By default all work
	// dates move by a single offset.
	SkipChronologyShift bool `json:"skip_chronology_shift"`
	// DateShiftRange bounds date shifts in months; zero means DefaultDateShiftRange.
	DateShiftRange int `json:"date_shift_range" validate:"gte=0,lte=120"`

	Logger logrus.FieldLogger `json:"-" validate:"-"`
	Trace  TraceSink          `json:"-" validate:"-"`
}

// DefaultOptions returns options with the default shift range.
func DefaultOptions() Options {
	return Options{DateShiftRange: DefaultDateShiftRange}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	err := validator.New().Struct(o)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{
			Field:   fe.Field(),
			Message: "failed on '" + fe.Tag() + "' constraint",
			Cause:   err,
		}
	}
	return &ValidationError{Message: "invalid options", Cause: err}
}

// normalized fills defaults so that the engine never fails on out-of-range options
func (o Options) normalized() Options {
	if o.DateShiftRange <= 0 {
		o.DateShiftRange = DefaultDateShiftRange
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	if o.DevMode && o.Trace == nil {
		o.Trace = LogTraceSink(o.Logger)
	}
	return o
}
