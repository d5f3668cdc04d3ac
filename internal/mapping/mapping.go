package mapping

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Tables maps a column name to its code→label substitution table.
// Lookups are opportunistic: a code with no entry passes through unchanged.
type Tables map[string]map[string]string

// Lookup returns the label for a code in the given column's table.
// The second return is false when no table or no entry exists.
func (t Tables) Lookup(column, code string) (string, bool) {
	table, ok := t[column]
	if !ok {
		return "", false
	}
	label, ok := table[code]
	return label, ok
}

// Defaults returns the built-in substitution tables for the standard
// shot-list column vocabulary.
func Defaults() Tables {
	return Tables{
		"DIURNAL": {
			"GH":    "Golden Hour",
			"MH":    "Magic Hour",
			"BH":    "Blue Hour",
			"DAY":   "Day",
			"NIGHT": "Night",
			"DAWN":  "Dawn",
			"DUSK":  "Dusk",
		},
		"LOC_TYPE": {
			"EXT":     "Exterior",
			"INT":     "Interior",
			"EXT/INT": "Exterior/Interior",
		},
		"MOVE_TYPE": {
			"STATIC":    "Static",
			"PAN":       "Pan",
			"TILT":      "Tilt",
			"DOLLY":     "Dolly",
			"CRANE":     "Crane",
			"STEADICAM": "Steadicam",
			"HANDHELD":  "Handheld",
			"AERIAL":    "Aerial",
		},
		"MOVE_SPEED": {
			"SLOW":     "Slow",
			"MEDIUM":   "Medium",
			"FAST":     "Fast",
			"VARIABLE": "Variable",
		},
		"ANGLE": {
			"WIDE":          "Wide",
			"MEDIUM":        "Medium",
			"CLOSE":         "Close",
			"EXTREME_CLOSE": "Extreme Close",
			"EXTREME_WIDE":  "Extreme Wide",
			"DUTCH":         "Dutch",
			"HIGH":          "High",
			"LOW":           "Low",
			"BIRD_EYE":      "Bird's Eye",
			"WORM_EYE":      "Worm's Eye",
		},
		"PERIOD": {
			"ANCIENT":      "Ancient",
			"MEDIEVAL":     "Medieval",
			"RENAISSANCE":  "Renaissance",
			"VICTORIAN":    "Victorian",
			"EDWARDIAN":    "Edwardian",
			"ART_DECO":     "Art Deco",
			"MODERN":       "Modern",
			"CONTEMPORARY": "Contemporary",
			"FUTURISTIC":   "Futuristic",
		},
		"SEASON": {
			"SPRING": "Spring",
			"SUMMER": "Summer",
			"AUTUMN": "Autumn",
			"WINTER": "Winter",
		},
		"WEATHER": {
			"CLEAR":  "Clear",
			"CLOUDY": "Cloudy",
			"RAINY":  "Rainy",
			"SNOWY":  "Snowy",
			"FOGGY":  "Foggy",
			"STORMY": "Stormy",
			"WINDY":  "Windy",
			"HUMID":  "Humid",
			"DRY":    "Dry",
		},
	}
}

// Categories describes each default table, keyed by column name.
func Categories() map[string]string {
	return map[string]string{
		"DIURNAL":    "Time of day mappings",
		"LOC_TYPE":   "Location type mappings",
		"MOVE_TYPE":  "Camera movement type mappings",
		"MOVE_SPEED": "Camera movement speed mappings",
		"ANGLE":      "Camera angle mappings",
		"PERIOD":     "Historical period mappings",
		"SEASON":     "Seasonal mappings",
		"WEATHER":    "Weather condition mappings",
	}
}

// Load reads substitution tables from a JSON file. A missing file is
// not an error: the defaults are returned instead.
func Load(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return nil, fmt.Errorf("read mappings: %w", err)
	}

	var tables Tables
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("parse mappings %s: %w", path, err)
	}
	if err := Validate(tables); err != nil {
		return nil, fmt.Errorf("invalid mappings %s: %w", path, err)
	}
	return tables, nil
}

// Save writes substitution tables to a JSON file, creating parent
// directories as needed.
func Save(tables Tables, path string) error {
	if err := Validate(tables); err != nil {
		return fmt.Errorf("invalid mappings: %w", err)
	}
	data, err := json.MarshalIndent(tables, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal mappings: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create mappings dir: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write mappings: %w", err)
	}
	return nil
}

// Validate checks the structural shape of a table set: every column
// must carry a non-nil table and every entry must be non-empty.
func Validate(tables Tables) error {
	for column, table := range tables {
		if column == "" {
			return fmt.Errorf("empty column name")
		}
		if table == nil {
			return fmt.Errorf("column %s: nil table", column)
		}
		for code, label := range table {
			if code == "" {
				return fmt.Errorf("column %s: empty code", column)
			}
			if label == "" {
				return fmt.Errorf("column %s: empty label for code %s", column, code)
			}
		}
	}
	return nil
}
