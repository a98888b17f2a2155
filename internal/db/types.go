package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-pseudonymizer/internal/types"
)

// StoredProfile is an original candidate profile row
type StoredProfile struct {
	ID        uuid.UUID     `json:"id"`
	Profile   types.Profile `json:"data"`
	CreatedAt time.Time     `json:"created_at"`
}

// PseudonymizedRecord is a persisted pseudonymization result
type PseudonymizedRecord struct {
	ID             uuid.UUID    `json:"id"`
	ProfileID      uuid.UUID    `json:"profile_id"`
	CandidateIndex int          `json:"candidate_index"`
	Result         types.Result `json:"result"`
	CreatedAt      time.Time    `json:"created_at"`
}
