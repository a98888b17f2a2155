package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/resume-pseudonymizer/internal/pseudonym"
	"github.com/jonathan/resume-pseudonymizer/internal/types"
)

// CreateProfileResponse represents the response for POST /v1/profiles
type CreateProfileResponse struct {
	ID string `json:"id"`
}

// ListProfilesResponse represents the response for GET /v1/profiles
type ListProfilesResponse struct {
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
}

// StoredResultResponse is a persisted pseudonymization result
type StoredResultResponse struct {
	RecordID       string       `json:"record_id"`
	ProfileID      string       `json:"profile_id"`
	CandidateIndex int          `json:"candidate_index"`
	Result         types.Result `json:"result"`
}

// handleCreateProfile stores an original profile
func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.handleError(w, &ErrStoreUnavailable{})
		return
	}

	var req PseudonymizeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.handleError(w, err)
		return
	}
	profile, err := decodeProfile(req.Profile)
	if err != nil {
		s.handleError(w, err)
		return
	}

	id, err := s.store.InsertProfile(r.Context(), profile)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, CreateProfileResponse{ID: id.String()})
}

// handleListProfiles lists stored profile IDs
func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.handleError(w, &ErrStoreUnavailable{})
		return
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.handleError(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = n
	}

	ids, err := s.store.ListProfileIDs(r.Context(), limit)
	if err != nil {
		s.handleError(w, err)
		return
	}

	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	s.jsonResponse(w, http.StatusOK, ListProfilesResponse{IDs: out, Count: len(out)})
}

// handlePseudonymizeStored pseudonymizes a stored profile and saves the result
func (s *Server) handlePseudonymizeStored(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.handleError(w, &ErrStoreUnavailable{})
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.handleError(w, &ErrValidation{Field: "id", Message: "invalid profile ID"})
		return
	}

	var req OptionsRequest
	if r.ContentLength != 0 {
		if err := decodeBody(w, r, &req); err != nil {
			s.handleError(w, err)
			return
		}
	}
	opts, err := s.resolveOptions(req)
	if err != nil {
		s.handleError(w, err)
		return
	}

	stored, err := s.store.GetProfile(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if stored == nil {
		s.handleError(w, &ErrNotFound{Resource: "profile", ID: id.String()})
		return
	}

	result := pseudonym.PseudonymizeProfile(&stored.Profile, opts)
	recordID, err := s.store.SavePseudonymizedProfile(r.Context(), id, opts.CandidateIndex, &result)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, StoredResultResponse{
		RecordID:       recordID.String(),
		ProfileID:      id.String(),
		CandidateIndex: opts.CandidateIndex,
		Result:         result,
	})
}

// handleGetPseudonymized returns the latest stored result for a profile
func (s *Server) handleGetPseudonymized(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.handleError(w, &ErrStoreUnavailable{})
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.handleError(w, &ErrValidation{Field: "id", Message: "invalid profile ID"})
		return
	}

	rec, err := s.store.GetPseudonymizedProfile(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if rec == nil {
		s.handleError(w, &ErrNotFound{Resource: "pseudonymized profile", ID: id.String()})
		return
	}

	s.jsonResponse(w, http.StatusOK, StoredResultResponse{
		RecordID:       rec.ID.String(),
		ProfileID:      rec.ProfileID.String(),
		CandidateIndex: rec.CandidateIndex,
		Result:         rec.Result,
	})
}
