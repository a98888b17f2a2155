package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-pseudonymizer/internal/types"
)

// InsertProfile stores an original candidate profile and returns its ID.
// A profile without an ID gets a fresh one.
func (db *DB) InsertProfile(ctx context.Context, profile *types.Profile) (uuid.UUID, error) {
	id, err := profileID(profile)
	if err != nil {
		return uuid.Nil, err
	}

	stored := profile.Clone()
	stored.ID = id.String()
	data, err := json.Marshal(stored)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO candidate_profiles (id, data)
		 VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET data = $2`,
		id, data,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert profile: %w", err)
	}
	return id, nil
}

// GetProfile retrieves an original profile by ID. Returns nil when absent.
func (db *DB) GetProfile(ctx context.Context, id uuid.UUID) (*StoredProfile, error) {
	var sp StoredProfile
	var data []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, data, created_at FROM candidate_profiles WHERE id = $1`,
		id,
	).Scan(&sp.ID, &data, &sp.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if err := json.Unmarshal(data, &sp.Profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &sp, nil
}

// ListProfileIDs returns stored profile IDs, oldest first
func (db *DB) ListProfileIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id FROM candidate_profiles ORDER BY created_at, id LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("failed to scan profile ids: %w", err)
	}
	return ids, nil
}

// SavePseudonymizedProfile persists a pseudonymization result for a stored profile
func (db *DB) SavePseudonymizedProfile(ctx context.Context, profileID uuid.UUID, candidateIndex int, result *types.Result) (uuid.UUID, error) {
	if result == nil {
		return uuid.Nil, fmt.Errorf("result is nil")
	}

	data, err := json.Marshal(result.Data)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal pseudonymized data: %w", err)
	}
	metadata, err := json.Marshal(result.Metadata)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	id := uuid.New()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO pseudonymized_profiles (id, profile_id, candidate_index, data, metadata)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, profileID, candidateIndex, data, metadata,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save pseudonymized profile: %w", err)
	}
	return id, nil
}

// GetPseudonymizedProfile retrieves the most recent result for a profile.
// Returns nil when none exists.
func (db *DB) GetPseudonymizedProfile(ctx context.Context, profileID uuid.UUID) (*PseudonymizedRecord, error) {
	var rec PseudonymizedRecord
	var data, metadata []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, profile_id, candidate_index, data, metadata, created_at
		 FROM pseudonymized_profiles
		 WHERE profile_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		profileID,
	).Scan(&rec.ID, &rec.ProfileID, &rec.CandidateIndex, &data, &metadata, &rec.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pseudonymized profile: %w", err)
	}

	if err := json.Unmarshal(data, &rec.Result.Data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pseudonymized data: %w", err)
	}
	if err := json.Unmarshal(metadata, &rec.Result.Metadata); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}
	return &rec, nil
}

func profileID(profile *types.Profile) (uuid.UUID, error) {
	if profile == nil {
		return uuid.Nil, fmt.Errorf("profile is nil")
	}
	if profile.ID == "" {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(profile.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid profile id %q: %w", profile.ID, err)
	}
	return id, nil
}
