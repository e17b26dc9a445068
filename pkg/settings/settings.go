// Package settings manages persistent user settings for the lsrsim CLI.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultRedisAddr is used for export when redis_addr is not set.
const DefaultRedisAddr = "localhost:6379"

// Settings holds persistent user preferences
type Settings struct {
	// DefaultTopology is the topology file to use when -t is not specified
	DefaultTopology string `json:"default_topology,omitempty"`

	// RedisAddr is the export target (host:port)
	RedisAddr string `json:"redis_addr,omitempty"`

	// RedisDB selects the Redis database for export
	RedisDB int `json:"redis_db,omitempty"`

	// AuditLog overrides the audit log location
	AuditLog string `json:"audit_log,omitempty"`
}

// Keys lists the setting names accepted by Get and Set.
var Keys = []string{"default_topology", "redis_addr", "redis_db", "audit_log"}

// DefaultSettingsPath returns the default path for the settings file
func DefaultSettingsPath() string {
	return filepath.Join(configDir(), "settings.json")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lsrsim"
	}
	return filepath.Join(home, ".lsrsim")
}

// Load reads settings from the default location
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty settings if file doesn't exist
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return s, nil
}

// Save writes settings to the default location
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path
func (s *Settings) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetRedisAddr returns the export address (with fallback)
func (s *Settings) GetRedisAddr() string {
	if s.RedisAddr != "" {
		return s.RedisAddr
	}
	return DefaultRedisAddr
}

// GetAuditLog returns the audit log path (with fallback)
func (s *Settings) GetAuditLog() string {
	if s.AuditLog != "" {
		return s.AuditLog
	}
	return filepath.Join(configDir(), "audit.log")
}

// Get returns a setting by name. Unset values are returned empty.
func (s *Settings) Get(name string) (string, error) {
	switch name {
	case "default_topology", "topology":
		return s.DefaultTopology, nil
	case "redis_addr", "redis":
		return s.RedisAddr, nil
	case "redis_db":
		if s.RedisDB == 0 {
			return "", nil
		}
		return strconv.Itoa(s.RedisDB), nil
	case "audit_log", "audit":
		return s.AuditLog, nil
	}
	return "", fmt.Errorf("unknown setting: %s (valid: %v)", name, Keys)
}

// Set assigns a setting by name.
func (s *Settings) Set(name, value string) error {
	switch name {
	case "default_topology", "topology":
		s.DefaultTopology = value
	case "redis_addr", "redis":
		s.RedisAddr = value
	case "redis_db":
		db, err := strconv.Atoi(value)
		if err != nil || db < 0 {
			return fmt.Errorf("redis_db must be a non-negative number, got %q", value)
		}
		s.RedisDB = db
	case "audit_log", "audit":
		s.AuditLog = value
	default:
		return fmt.Errorf("unknown setting: %s (valid: %v)", name, Keys)
	}
	return nil
}

// Clear resets all settings to defaults
func (s *Settings) Clear() {
	*s = Settings{}
}
