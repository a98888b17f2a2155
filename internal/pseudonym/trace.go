package pseudonym

import "github.com/sirupsen/logrus"

// TraceEntry is a before/after pair for one field
type TraceEntry struct {
	Field         string
	Original      string
	Pseudonymized string
}

// Trace is the development-only record of what a run changed.
// It contains original PII and must never reach shared output.
type Trace struct {
	Entries                []TraceEntry
	TransformationsApplied []string
	OriginalDataDetected   []string
}

// TraceSink receives dev-mode traces. Sinks used with
// PseudonymizeMultipleProfiles must be safe for concurrent use.
type TraceSink interface {
	Trace(t Trace)
}

// TraceFunc adapts a function to a TraceSink
type TraceFunc func(t Trace)

// Trace calls f(t)
func (f TraceFunc) Trace(t Trace) {
	f(t)
}

// LogTraceSink writes traces to a logger at debug level
func LogTraceSink(log logrus.FieldLogger) TraceSink {
	return TraceFunc(func(t Trace) {
		for _, e := range t.Entries {
			log.WithFields(logrus.Fields{
				"field":         e.Field,
				"original":      e.Original,
				"pseudonymized": e.Pseudonymized,
			}).Debug("pseudonymization applied")
		}
		log.WithFields(logrus.Fields{
			"transformations": t.TransformationsApplied,
			"detected":        t.OriginalDataDetected,
		}).Debug("pseudonymization summary")
	})
}
