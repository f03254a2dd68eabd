package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/talent-search/internal/logging"
	"github.com/jonathan/talent-search/internal/types"
	"github.com/sirupsen/logrus"
)

// DefaultKey is the namespaced key the candidate list lives under.
const DefaultKey = "ai_resume_system_candidates"

// CandidateStore owns the durable candidate list. The list is read and
// rewritten as a whole on every mutation; concurrent writers in other
// processes can overwrite each other (last writer wins).
type CandidateStore struct {
	backend Backend
	key     string
	log     logrus.FieldLogger
}

// Option configures a CandidateStore.
type Option func(*CandidateStore)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *CandidateStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for swallowed read failures.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *CandidateStore) {
		if l != nil {
			s.log = l
		}
	}
}

// NewCandidateStore wraps backend.
func NewCandidateStore(backend Backend, opts ...Option) *CandidateStore {
	s := &CandidateStore{
		backend: backend,
		key:     DefaultKey,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithFields(logrus.Fields{"component": "store", "key": s.key})
	return s
}

// Key returns the storage key in use.
func (s *CandidateStore) Key() string {
	return s.key
}

// GetAll returns the stored list, most recent first. A missing key, a
// backend failure or a malformed payload all yield an empty list.
func (s *CandidateStore) GetAll(ctx context.Context) []types.CandidateProfile {
	data, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.WithError(err).Warn("failed to load candidates")
		}
		return []types.CandidateProfile{}
	}

	var candidates []types.CandidateProfile
	if err := json.Unmarshal(data, &candidates); err != nil {
		s.log.WithError(err).Warn("stored candidate list is malformed, treating as empty")
		return []types.CandidateProfile{}
	}
	if candidates == nil {
		return []types.CandidateProfile{}
	}
	return candidates
}

// Save prepends record to the list. The caller supplies a fresh id.
func (s *CandidateStore) Save(ctx context.Context, record types.CandidateProfile) error {
	current := s.GetAll(ctx)
	updated := make([]types.CandidateProfile, 0, len(current)+1)
	updated = append(updated, record)
	updated = append(updated, current...)
	if err := s.write(ctx, updated); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"candidate_id": record.ID, "count": len(updated)}).Debug("candidate saved")
	return nil
}

// Delete removes every record with id. An unknown id is not an error.
func (s *CandidateStore) Delete(ctx context.Context, id string) error {
	current := s.GetAll(ctx)
	updated := make([]types.CandidateProfile, 0, len(current))
	for _, c := range current {
		if c.ID != id {
			updated = append(updated, c)
		}
	}
	if err := s.write(ctx, updated); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"candidate_id": id, "removed": len(current) - len(updated)}).Debug("candidate deleted")
	return nil
}

// SeedIfEmpty writes the example records when the list is empty and reports
// whether it did. Existing data is never overwritten.
func (s *CandidateStore) SeedIfEmpty(ctx context.Context) (bool, error) {
	if len(s.GetAll(ctx)) > 0 {
		return false, nil
	}
	if err := s.write(ctx, SeedCandidates()); err != nil {
		return false, err
	}
	s.log.Info("seeded example candidates")
	return true, nil
}

func (s *CandidateStore) write(ctx context.Context, candidates []types.CandidateProfile) error {
	data, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("failed to marshal candidates: %w", err)
	}
	if err := s.backend.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to write candidates: %w", err)
	}
	return nil
}
