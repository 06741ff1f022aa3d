package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"mediarelay/internal/control"
)

// Config holds the persisted application settings: which target receives the
// media keys, the user's custom target descriptors, and a few toggles.
type Config struct {
	UseNotifications bool                       `json:"use_notifications"`
	SelectedTarget   string                     `json:"selected_target"`
	CustomTargets    []control.TargetDescriptor `json:"custom_targets,omitempty"`

	// Non-JSON runtime state
	configPath string
}

// DefaultPath resolves the config location under the XDG config directory,
// falling back to the working directory when that fails.
func DefaultPath() string {
	path, err := xdg.ConfigFile(filepath.Join("mediarelay", "config.json"))
	if err != nil {
		log.Printf("Could not resolve XDG config path: %v. Using working directory.", err)
		return "config.json"
	}
	return path
}

// GetConfigPath returns the path this config was loaded from.
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// Load reads and parses the configuration file, creating a default one when
// it does not exist yet.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Config file '%s' not found. Creating default.", configPath)
			if createErr := CreateDefaultConfig(configPath); createErr != nil {
				return nil, fmt.Errorf("config file not found and failed to create default '%s': %w", configPath, createErr)
			}
			data, err = os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file '%s' after creating default: %w", configPath, err)
			}
		} else {
			return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
		}
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", configPath, err)
	}
	config.configPath = configPath
	config.pruneCustomTargets()
	return &config, nil
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(c.configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file '%s': %w", c.configPath, err)
	}
	return nil
}

// CreateDefaultConfig writes a fresh config selecting the first built-in
// target.
func CreateDefaultConfig(configPath string) error {
	defaults := Config{
		UseNotifications: true,
		SelectedTarget:   control.BuiltinTargets()[0].AppID,
		configPath:       configPath,
	}
	return defaults.Save()
}

// pruneCustomTargets drops invalid custom descriptors and ones whose AppID
// collides with a built-in or an earlier custom entry. AppID is the primary
// key across both sets combined.
func (c *Config) pruneCustomTargets() {
	seen := make(map[string]bool)
	for _, builtin := range control.BuiltinTargets() {
		seen[builtin.AppID] = true
	}

	kept := c.CustomTargets[:0]
	for _, target := range c.CustomTargets {
		if !target.Valid() {
			log.Printf("Ignoring incomplete custom target %q.", target.DisplayName)
			continue
		}
		if seen[target.AppID] {
			log.Printf("Ignoring custom target %q: app id %q already in use.", target.DisplayName, target.AppID)
			continue
		}
		seen[target.AppID] = true
		kept = append(kept, target)
	}
	c.CustomTargets = kept
}

// Targets returns the built-in descriptors followed by the custom ones.
func (c *Config) Targets() []control.TargetDescriptor {
	targets := control.BuiltinTargets()
	return append(targets, c.CustomTargets...)
}

// CurrentTarget returns the selected descriptor, or false when nothing
// usable is selected.
func (c *Config) CurrentTarget() (control.TargetDescriptor, bool) {
	if c.SelectedTarget == "" {
		return control.TargetDescriptor{}, false
	}
	for _, target := range c.Targets() {
		if target.AppID == c.SelectedTarget {
			return target, true
		}
	}
	log.Printf("Selected target %q no longer exists.", c.SelectedTarget)
	return control.TargetDescriptor{}, false
}

// SelectTarget records appID as the active target. The caller saves and
// rebuilds the controller.
func (c *Config) SelectTarget(appID string) {
	c.SelectedTarget = appID
}

// AddCustomTarget appends a custom descriptor, enforcing the AppID
// uniqueness invariant against built-ins and existing customs.
func (c *Config) AddCustomTarget(target control.TargetDescriptor) error {
	if !target.Valid() {
		return fmt.Errorf("custom target %q is incomplete", target.DisplayName)
	}
	for _, existing := range c.Targets() {
		if existing.AppID == target.AppID {
			return fmt.Errorf("app id %q is already in use by %q", target.AppID, existing.DisplayName)
		}
	}
	c.CustomTargets = append(c.CustomTargets, target)
	return nil
}
