// ABOUTME: Stores groups the profile store and both plan stores over one backend.
// ABOUTME: Callers pick a plan store by kind instead of by key.
package storage

import (
	"fmt"

	"github.com/harperreed/fitplan/internal/models"
	"github.com/rs/zerolog"
)

// Stores bundles every store sharing one KV backend.
type Stores struct {
	KV       KV
	Profile  *ProfileStore
	Diets    *PlanStore
	Workouts *PlanStore
}

// NewStores builds the profile and plan stores on kv.
func NewStores(kv KV, logger zerolog.Logger) (*Stores, error) {
	diets, err := NewPlanStore(kv, models.PlanDiet, logger)
	if err != nil {
		return nil, err
	}
	workouts, err := NewPlanStore(kv, models.PlanWorkout, logger)
	if err != nil {
		return nil, err
	}
	return &Stores{
		KV:       kv,
		Profile:  NewProfileStore(kv, logger),
		Diets:    diets,
		Workouts: workouts,
	}, nil
}

// Plans returns the plan store for kind.
func (s *Stores) Plans(kind models.PlanKind) (*PlanStore, error) {
	switch kind {
	case models.PlanDiet:
		return s.Diets, nil
	case models.PlanWorkout:
		return s.Workouts, nil
	}
	return nil, fmt.Errorf("unknown plan kind: %q", kind)
}

// Close closes the underlying backend.
func (s *Stores) Close() error {
	if s.KV == nil {
		return nil
	}
	return s.KV.Close()
}
