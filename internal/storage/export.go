// ABOUTME: Export and import functionality for fitplan data.
// ABOUTME: Supports JSON and YAML export and merge-style JSON import.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/fitplan/internal/metrics"
	"github.com/harperreed/fitplan/internal/models"
	"gopkg.in/yaml.v3"
)

const exportVersion = "1.0"

// ExportData represents the full export format for fitplan data.
type ExportData struct {
	Version    string              `json:"version" yaml:"version"`
	ExportedAt time.Time           `json:"exported_at" yaml:"exported_at"`
	Tool       string              `json:"tool" yaml:"tool"`
	Profile    *models.Profile     `json:"profile,omitempty" yaml:"profile,omitempty"`
	Metrics    *metrics.Report     `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Diets      []models.PlanRecord `json:"diets" yaml:"diets"`
	Workouts   []models.PlanRecord `json:"workouts" yaml:"workouts"`
}

// ImportSummary counts what ImportData changed.
type ImportSummary struct {
	Profile  bool
	Diets    int
	Workouts int
}

// GetAllData retrieves all data for export.
func (s *Stores) GetAllData() (*ExportData, error) {
	profile, found, err := s.Profile.Load()
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	diets, err := s.Diets.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("list diets: %w", err)
	}

	workouts, err := s.Workouts.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	data := &ExportData{
		Version:    exportVersion,
		ExportedAt: time.Now(),
		Tool:       "fitplan",
		Diets:      diets,
		Workouts:   workouts,
	}
	if found {
		report := metrics.Calculate(profile)
		data.Profile = profile
		data.Metrics = &report
	}
	return data, nil
}

// ImportData merges an export into the stores. A profile in the export
// replaces the stored one. Plans are appended unless a record with the same
// id already exists.
func (s *Stores) ImportData(data *ExportData) (*ImportSummary, error) {
	summary := &ImportSummary{}

	if data.Profile != nil {
		if err := s.Profile.Save(data.Profile); err != nil {
			return nil, fmt.Errorf("import profile: %w", err)
		}
		summary.Profile = true
	}

	n, err := s.Diets.merge(data.Diets)
	if err != nil {
		return nil, fmt.Errorf("import diets: %w", err)
	}
	summary.Diets = n

	n, err = s.Workouts.merge(data.Workouts)
	if err != nil {
		return nil, fmt.Errorf("import workouts: %w", err)
	}
	summary.Workouts = n

	return summary, nil
}

// ExportJSON exports all data as JSON.
func (s *Stores) ExportJSON() ([]byte, error) {
	data, err := s.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func (s *Stores) ExportYAML() ([]byte, error) {
	data, err := s.GetAllData()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ImportJSON imports data from JSON bytes.
func (s *Stores) ImportJSON(raw []byte) (*ImportSummary, error) {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return s.ImportData(&data)
}
