// ABOUTME: ProfileStore persists the single user profile under userProfile.
// ABOUTME: Save validates before writing; Load reports absence without an error.
package storage

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/harperreed/fitplan/internal/models"
	"github.com/rs/zerolog"
)

// ProfileStore reads and writes the profile record.
type ProfileStore struct {
	kv  KV
	log zerolog.Logger
	mu  sync.Mutex
}

// NewProfileStore returns a store backed by kv.
func NewProfileStore(kv KV, logger zerolog.Logger) *ProfileStore {
	return &ProfileStore{
		kv:  kv,
		log: logger.With().Str("key", KeyProfile).Logger(),
	}
}

// Save validates p and replaces the stored profile. A validation failure
// returns *models.ValidationError and leaves storage untouched.
func (s *ProfileStore) Save(p *models.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return &StorageError{Op: "encode", Key: KeyProfile, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(KeyProfile, data); err != nil {
		s.log.Error().Err(err).Msg("save profile failed")
		return &StorageError{Op: "save", Key: KeyProfile, Err: err}
	}
	s.log.Debug().Int("bytes", len(data)).Msg("profile saved")
	return nil
}

// Load returns the stored profile. found is false when no profile has been
// saved. A non-nil error means the record exists but could not be read.
func (s *ProfileStore) Load() (p *models.Profile, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.kv.Get(KeyProfile)
	if errors.Is(err, ErrNotFound) {
		s.log.Debug().Msg("no profile stored")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &StorageError{Op: "load", Key: KeyProfile, Err: err}
	}

	var profile models.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, false, &StorageError{Op: "decode", Key: KeyProfile, Err: err}
	}
	return &profile, true, nil
}
