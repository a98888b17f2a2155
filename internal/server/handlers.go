package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-pseudonymizer/internal/config"
	"github.com/jonathan/resume-pseudonymizer/internal/pseudonym"
	"github.com/jonathan/resume-pseudonymizer/internal/schemas"
	"github.com/jonathan/resume-pseudonymizer/internal/types"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 4 << 20

// maxBatchSize bounds the number of profiles in one batch request
const maxBatchSize = 500

// OptionsRequest carries per-request overrides of the server defaults.
// Dev mode is never available over HTTP because traces contain original data.
type OptionsRequest struct {
	Seed               *string `json:"seed,omitempty"`
	CandidateIndex     *int    `json:"candidate_index,omitempty"`
	DateShiftRange     *int    `json:"date_shift_range,omitempty"`
	PreserveChronology *bool   `json:"preserve_chronology,omitempty"`
}

// PseudonymizeRequest represents the request body for /v1/pseudonymize
type PseudonymizeRequest struct {
	Profile json.RawMessage `json:"profile"`
	Options OptionsRequest  `json:"options"`
}

// BatchRequest represents the request body for /v1/pseudonymize/batch
type BatchRequest struct {
	Profiles []json.RawMessage `json:"profiles"`
	Options  OptionsRequest    `json:"options"`
}

// BatchResponse represents the response for /v1/pseudonymize/batch
type BatchResponse struct {
	Results []types.Result `json:"results"`
	Count   int            `json:"count"`
}

// PIICheckResponse represents the response for /v1/pii-check
type PIICheckResponse struct {
	ContainsPII bool `json:"contains_pii"`
}

// CategorizeResponse represents the response for /v1/categorize/{kind}
type CategorizeResponse struct {
	Kind  string `json:"kind"`
	Input string `json:"input"`
	Label string `json:"label"`
}

// handlePseudonymize pseudonymizes a single profile
func (s *Server) handlePseudonymize(w http.ResponseWriter, r *http.Request) {
	var req PseudonymizeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.handleError(w, err)
		return
	}

	opts, err := s.resolveOptions(req.Options)
	if err != nil {
		s.handleError(w, err)
		return
	}

	profile, err := decodeProfile(req.Profile)
	if err != nil {
		s.handleError(w, err)
		return
	}

	result := pseudonym.PseudonymizeProfile(profile, opts)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleBatch pseudonymizes profiles labeled by position
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.handleError(w, err)
		return
	}
	if len(req.Profiles) > maxBatchSize {
		s.handleError(w, &ErrValidation{Field: "profiles", Message: fmt.Sprintf("at most %d profiles per batch", maxBatchSize)})
		return
	}

	opts, err := s.resolveOptions(req.Options)
	if err != nil {
		s.handleError(w, err)
		return
	}

	profiles := make([]types.Profile, 0, len(req.Profiles))
	for i, raw := range req.Profiles {
		profile, err := decodeProfile(raw)
		if err != nil {
			var verr *ErrValidation
			if errors.As(err, &verr) {
				verr.Field = fmt.Sprintf("profiles[%d].%s", i, verr.Field)
			}
			s.handleError(w, err)
			return
		}
		profiles = append(profiles, *profile)
	}

	results := pseudonym.PseudonymizeMultipleProfiles(profiles, opts)
	s.jsonResponse(w, http.StatusOK, BatchResponse{Results: results, Count: len(results)})
}

// handlePIICheck reports whether a JSON object carries direct identifiers
func (s *Server) handlePIICheck(w http.ResponseWriter, r *http.Request) {
	var record map[string]any
	if err := decodeBody(w, r, &record); err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, PIICheckResponse{ContainsPII: pseudonym.ContainsPII(record)})
}

// handleCategorize returns the generalized label for ?q=
func (s *Server) handleCategorize(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")
	input := r.URL.Query().Get("q")

	var label string
	switch kind {
	case "company":
		label = pseudonym.CategorizeCompany(input)
	case "institution":
		label = pseudonym.CategorizeInstitution(input)
	case "region":
		label = pseudonym.ResolveRegion(input)
	default:
		s.handleError(w, &ErrValidation{Field: "kind", Message: "must be company, institution or region"})
		return
	}

	s.jsonResponse(w, http.StatusOK, CategorizeResponse{Kind: kind, Input: input, Label: label})
}

// resolveOptions layers request overrides over the server defaults
func (s *Server) resolveOptions(req OptionsRequest) (pseudonym.Options, error) {
	cfg := s.defaults
	if req.Seed != nil {
		cfg.Seed = *req.Seed
	}
	if req.CandidateIndex != nil {
		cfg.CandidateIndex = *req.CandidateIndex
	}
	if req.DateShiftRange != nil {
		cfg.DateShiftRange = *req.DateShiftRange
	}
	if req.PreserveChronology != nil {
		cfg.PreserveChronology = req.PreserveChronology
	}
	return optionsFromConfig(cfg, s)
}

func optionsFromConfig(cfg config.Config, s *Server) (pseudonym.Options, error) {
	opts := cfg.Options()
	opts.DevMode = false
	opts.Trace = nil
	opts.Logger = s.log

	if err := opts.Validate(); err != nil {
		var verr *pseudonym.ValidationError
		if errors.As(err, &verr) {
			return opts, &ErrValidation{Field: verr.Field, Message: verr.Message}
		}
		return opts, &ErrValidation{Message: err.Error()}
	}
	return opts, nil
}

// decodeProfile validates a raw profile against the schema and unmarshals it
func decodeProfile(raw json.RawMessage) (*types.Profile, error) {
	if len(raw) == 0 {
		return nil, &ErrValidation{Field: "profile", Message: "is required"}
	}

	if err := schemas.ValidateProfile(raw); err != nil {
		var schemaErr *schemas.ValidationError
		if errors.As(err, &schemaErr) && len(schemaErr.Errors) > 0 {
			fe := schemaErr.Errors[0]
			return nil, &ErrValidation{Field: fe.Field, Message: fe.Message}
		}
		return nil, &ErrValidation{Field: "profile", Message: err.Error()}
	}

	var profile types.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, &ErrValidation{Field: "profile", Message: err.Error()}
	}
	return &profile, nil
}

// decodeBody decodes a size-limited JSON request body
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Message: "invalid request body: " + err.Error()}
	}
	return nil
}
