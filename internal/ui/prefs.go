package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SortPref is a persisted sort key. Columns are stored by name so prefs
// survive schema changes.
type SortPref struct {
	Column string `json:"column"`
	Desc   bool   `json:"desc"`
}

// TablePrefs stores per-table UI preferences.
type TablePrefs struct {
	Sort          []SortPref `json:"sort,omitempty"`
	HiddenColumns []string   `json:"hidden_columns,omitempty"`
	ActiveColumn  string     `json:"active_column,omitempty"`
}

// UIPreferences stores persisted preferences keyed by table name.
type UIPreferences struct {
	Tables map[string]TablePrefs `json:"tables"`
}

func defaultUIPreferences() UIPreferences {
	return UIPreferences{Tables: map[string]TablePrefs{}}
}

func prefsPath(configDir string) string {
	return filepath.Join(configDir, "ui_prefs.json")
}

func loadUIPreferences(configDir string) UIPreferences {
	if configDir == "" {
		return defaultUIPreferences()
	}

	data, err := os.ReadFile(prefsPath(configDir))
	if err != nil {
		return defaultUIPreferences()
	}

	var prefs UIPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return defaultUIPreferences()
	}
	if prefs.Tables == nil {
		prefs.Tables = map[string]TablePrefs{}
	}
	return prefs
}

func saveUIPreferences(configDir string, prefs UIPreferences) error {
	if configDir == "" {
		return nil
	}
	path := prefsPath(configDir)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create prefs dir: %w", err)
	}

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write prefs: %w", err)
	}
	return nil
}
