package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/ShapeNest/internal/gcode"
)

// DefaultProfilesPath returns the file holding custom G-code profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.json")
}

// SaveCustomProfiles writes the custom profile store, creating its directory.
func SaveCustomProfiles(path string, profiles []gcode.Profile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomProfiles reads the custom profile store. A missing store holds no
// profiles.
func LoadCustomProfiles(path string) ([]gcode.Profile, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []gcode.Profile{}, nil
	}
	if err != nil {
		return nil, err
	}
	var profiles []gcode.Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse profiles file: %w", err)
	}
	for i := range profiles {
		profiles[i].IsBuiltIn = false
	}
	return profiles, nil
}

// ImportProfile reads one shared controller profile. Missing move words fall
// back to G0 and G1.
func ImportProfile(path string) (gcode.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gcode.Profile{}, err
	}
	var p gcode.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return gcode.Profile{}, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	if p.Name == "" {
		return gcode.Profile{}, fmt.Errorf("profile %s has no name", path)
	}
	if p.RapidMove == "" {
		p.RapidMove = "G0"
	}
	if p.FeedMove == "" {
		p.FeedMove = "G1"
	}
	return p, nil
}

// AddCustomProfile stores p in the profile store at path, replacing a custom
// profile of the same name. Built-in names cannot be overridden. It reports
// whether an existing profile was replaced.
func AddCustomProfile(path string, p gcode.Profile) (bool, error) {
	for _, b := range gcode.Profiles {
		if b.Name == p.Name {
			return false, fmt.Errorf("profile %q is built in", p.Name)
		}
	}
	profiles, err := LoadCustomProfiles(path)
	if err != nil {
		return false, err
	}
	p.IsBuiltIn = false
	replaced := false
	for i := range profiles {
		if profiles[i].Name == p.Name {
			profiles[i] = p
			replaced = true
		}
	}
	if !replaced {
		profiles = append(profiles, p)
	}
	return replaced, SaveCustomProfiles(path, profiles)
}
