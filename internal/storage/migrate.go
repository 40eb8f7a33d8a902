// ABOUTME: Data migration between fitplan storage backends.
// ABOUTME: Copies the profile and plan documents verbatim from source to destination.

package storage

import (
	"errors"
	"fmt"
)

// MigrateSummary lists which keys were copied and which were absent.
type MigrateSummary struct {
	Copied  []string
	Missing []string
}

// MigrateData copies every well-known key from src to dst. Values are
// copied byte for byte. When overwrite is false and dst already holds a key,
// migration stops before writing anything.
func MigrateData(src, dst KV, overwrite bool) (*MigrateSummary, error) {
	values := make(map[string][]byte, len(AllKeys))
	summary := &MigrateSummary{}

	for _, key := range AllKeys {
		v, err := src.Get(key)
		if errors.Is(err, ErrNotFound) {
			summary.Missing = append(summary.Missing, key)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read source %s: %w", key, err)
		}
		values[key] = v

		if overwrite {
			continue
		}
		if _, err := dst.Get(key); err == nil {
			return nil, fmt.Errorf("destination already has %s (use overwrite to replace)", key)
		} else if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("check destination %s: %w", key, err)
		}
	}

	for _, key := range AllKeys {
		v, ok := values[key]
		if !ok {
			continue
		}
		if err := dst.Set(key, v); err != nil {
			return nil, fmt.Errorf("write destination %s: %w", key, err)
		}
		summary.Copied = append(summary.Copied, key)
	}

	return summary, nil
}
