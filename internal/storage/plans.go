// ABOUTME: PlanStore persists an ordered list of generated plans per kind.
// ABOUTME: Every mutation rewrites the whole sequence under its key.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/harperreed/fitplan/internal/models"
	"github.com/rs/zerolog"
)

// PlanStore holds the saved plans of one kind. Calls on a single instance
// are serialized; separate processes sharing a backend are last-write-wins.
type PlanStore struct {
	kv   KV
	kind models.PlanKind
	key  string
	log  zerolog.Logger
	mu   sync.Mutex
}

// NewPlanStore returns the store for kind backed by kv.
func NewPlanStore(kv KV, kind models.PlanKind, logger zerolog.Logger) (*PlanStore, error) {
	key, err := PlanKey(kind)
	if err != nil {
		return nil, err
	}
	return &PlanStore{
		kv:   kv,
		kind: kind,
		key:  key,
		log:  logger.With().Str("key", key).Logger(),
	}, nil
}

// Kind returns the plan kind this store holds.
func (s *PlanStore) Kind() models.PlanKind {
	return s.kind
}

// LoadAll returns every saved record, oldest first. A missing key yields an
// empty slice.
func (s *PlanStore) LoadAll() ([]models.PlanRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Append saves planText as a new record at the end of the sequence and
// returns it.
func (s *PlanStore) Append(planText string) (models.PlanRecord, error) {
	if strings.TrimSpace(planText) == "" {
		return models.PlanRecord{}, &models.ValidationError{Field: "plan", Reason: "empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return models.PlanRecord{}, err
	}

	rec, err := models.NewPlanRecord(planText)
	if err != nil {
		return models.PlanRecord{}, err
	}
	records = append(records, rec)

	if err := s.write(records); err != nil {
		return models.PlanRecord{}, err
	}
	s.log.Debug().Str("id", rec.ID).Int("count", len(records)).Msg("plan appended")
	return rec, nil
}

// Remove drops the record with id. Removing an unknown id does nothing.
func (s *PlanStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return err
	}

	kept := make([]models.PlanRecord, 0, len(records))
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		s.log.Debug().Str("id", id).Msg("remove: no such plan")
		return nil
	}

	if err := s.write(kept); err != nil {
		return err
	}
	s.log.Debug().Str("id", id).Int("count", len(kept)).Msg("plan removed")
	return nil
}

// Find resolves a full id or a unique id prefix.
func (s *PlanStore) Find(idOrPrefix string) (models.PlanRecord, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return models.PlanRecord{}, fmt.Errorf("find %s plan: %w", s.kind, ErrNotFound)
	}

	records, err := s.LoadAll()
	if err != nil {
		return models.PlanRecord{}, err
	}

	var matches []models.PlanRecord
	for _, r := range records {
		if r.ID == idOrPrefix {
			return r, nil
		}
		if strings.HasPrefix(r.ID, idOrPrefix) {
			matches = append(matches, r)
		}
	}

	switch len(matches) {
	case 0:
		return models.PlanRecord{}, fmt.Errorf("find %s plan %s: %w", s.kind, idOrPrefix, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return models.PlanRecord{}, fmt.Errorf("find %s plan %s: %w (%d matches)", s.kind, idOrPrefix, ErrAmbiguous, len(matches))
	}
}

// merge appends the incoming records whose ids are not already saved and
// returns how many were added. Records with blank ids or blank plan text are
// skipped. The read and the write happen under one lock.
func (s *PlanStore) merge(incoming []models.PlanRecord) (int, error) {
	if len(incoming) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(records))
	for _, r := range records {
		seen[r.ID] = true
	}

	added := 0
	for _, r := range incoming {
		if r.ID == "" || seen[r.ID] || strings.TrimSpace(r.Plan) == "" {
			continue
		}
		seen[r.ID] = true
		records = append(records, r)
		added++
	}
	if added == 0 {
		return 0, nil
	}

	if err := s.write(records); err != nil {
		return 0, err
	}
	s.log.Debug().Int("added", added).Int("count", len(records)).Msg("plans merged")
	return added, nil
}

func (s *PlanStore) read() ([]models.PlanRecord, error) {
	data, err := s.kv.Get(s.key)
	if errors.Is(err, ErrNotFound) {
		return []models.PlanRecord{}, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "load", Key: s.key, Err: err}
	}

	var records []models.PlanRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &StorageError{Op: "decode", Key: s.key, Err: err}
	}
	if records == nil {
		records = []models.PlanRecord{}
	}
	return records, nil
}

func (s *PlanStore) write(records []models.PlanRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return &StorageError{Op: "encode", Key: s.key, Err: err}
	}
	if err := s.kv.Set(s.key, data); err != nil {
		s.log.Error().Err(err).Msg("write plans failed")
		return &StorageError{Op: "save", Key: s.key, Err: err}
	}
	return nil
}
