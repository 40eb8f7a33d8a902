// ABOUTME: KV interface for fitplan persistence and its error types.
// ABOUTME: Every backend stores opaque JSON values under a few well-known keys.
package storage

import (
	"errors"
	"fmt"

	"github.com/harperreed/fitplan/internal/models"
)

// Well-known keys. Each holds one whole JSON document.
const (
	KeyProfile  = "userProfile"
	KeyDiets    = "savedDiets"
	KeyWorkouts = "savedWorkouts"
)

// AllKeys lists every key fitplan persists.
var AllKeys = []string{KeyProfile, KeyDiets, KeyWorkouts}

var (
	// ErrNotFound is returned by KV.Get for a key that was never set, and by
	// PlanStore.Find when no record matches.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned when an id prefix matches more than one record.
	ErrAmbiguous = errors.New("ambiguous id prefix")
)

// KV is the storage contract shared by all backends. Values are replaced
// wholesale; there are no partial updates.
type KV interface {
	// Get returns the value for key or ErrNotFound.
	Get(key string) ([]byte, error)
	// Set replaces the value for key.
	Set(key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	// Close releases backend resources.
	Close() error
}

// PlanKey returns the storage key for a plan kind.
func PlanKey(kind models.PlanKind) (string, error) {
	switch kind {
	case models.PlanDiet:
		return KeyDiets, nil
	case models.PlanWorkout:
		return KeyWorkouts, nil
	}
	return "", fmt.Errorf("unknown plan kind: %q", kind)
}

// StorageError wraps a failed read or write of a key.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
