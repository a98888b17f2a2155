package types

import "time"

// Result is the output of pseudonymizing a single profile
type Result struct {
	Data     Profile  `json:"data"`
	Metadata Metadata `json:"metadata"`
}

// Metadata is the audit trail of a pseudonymization run.
// OriginalDataDetected is presence-based; TransformationsApplied lists each
// altered field category exactly once, in the order it was applied.
type Metadata struct {
	OriginalDataDetected   []string  `json:"original_data_detected"`
	TransformationsApplied []string  `json:"transformations_applied"`
	Timestamp              time.Time `json:"timestamp"`
	SeedUsed               string    `json:"seed_used,omitempty"`
}
