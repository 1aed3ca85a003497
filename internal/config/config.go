// Package config provides configuration types, defaults, and
// persistence for uketsuke.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"uketsuke/internal/log"
	"uketsuke/internal/roster"
	"uketsuke/internal/tabular"
)

// ProgramConfig defines one capacity-bounded program slot.
type ProgramConfig struct {
	ID         int    `mapstructure:"id"`
	Name       string `mapstructure:"name"`
	MaxMembers int    `mapstructure:"max_members"`
}

// UIConfig holds user interface options.
type UIConfig struct {
	ShowKana bool `mapstructure:"show_kana"` // show kana beside kanji on cards
}

// Config holds all configuration options for uketsuke.
type Config struct {
	Programs []ProgramConfig `mapstructure:"programs"`

	// NoPreferenceProgram names the sentinel program assigned when an
	// imported row states no first choice. Must name a program above.
	NoPreferenceProgram string `mapstructure:"no_preference_program"`

	// CapacityPolicy is "present" (count checked-in attendees against
	// the limit) or "total" (count everyone assigned).
	CapacityPolicy string `mapstructure:"capacity_policy"`

	// ExportSchema is "standard" (with preference columns) or "legacy".
	ExportSchema string `mapstructure:"export_schema"`

	// Roster optionally points at a file imported at startup.
	Roster string `mapstructure:"roster"`

	// AutoReload re-imports the roster file when it changes on disk.
	AutoReload bool `mapstructure:"auto_reload"`

	UI UIConfig `mapstructure:"ui"`
}

// Defaults returns the configuration for the stock open-house setup:
// the regular four programs plus the no-preference holding slot.
func Defaults() Config {
	return Config{
		Programs: []ProgramConfig{
			{ID: 1, Name: "目指せ、最速ロボット！　～自動走行プログラミングにトライ～", MaxMembers: 8},
			{ID: 2, Name: "電気の不思議を探ろう！　～LEDを回路の工夫で光らせよう～", MaxMembers: 25},
			{ID: 3, Name: "ドローンで植物チェック！　～空から見守る緑の元気～", MaxMembers: 20},
			{ID: 4, Name: "“紙”技エンジニアリング！　～長さと強さの最大化に挑戦～", MaxMembers: 40},
			{ID: 5, Name: "希望なし", MaxMembers: 200},
		},
		NoPreferenceProgram: "希望なし",
		CapacityPolicy:      "present",
		ExportSchema:        "standard",
		AutoReload:          true,
		UI:                  UIConfig{ShowKana: true},
	}
}

// Validate checks the configuration for contradictions.
func (c Config) Validate() error {
	if len(c.Programs) == 0 {
		return fmt.Errorf("at least one program must be configured")
	}
	seen := make(map[string]struct{}, len(c.Programs))
	for _, p := range c.Programs {
		if p.Name == "" {
			return fmt.Errorf("program %d has no name", p.ID)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("duplicate program name %q", p.Name)
		}
		seen[p.Name] = struct{}{}
		if p.MaxMembers < 1 {
			return fmt.Errorf("program %q: max_members must be at least 1", p.Name)
		}
	}
	if _, ok := seen[c.NoPreferenceProgram]; !ok {
		return fmt.Errorf("no_preference_program %q does not name a configured program",
			c.NoPreferenceProgram)
	}
	switch c.CapacityPolicy {
	case "present", "total":
	default:
		return fmt.Errorf("capacity_policy must be %q or %q, got %q",
			"present", "total", c.CapacityPolicy)
	}
	switch c.ExportSchema {
	case "standard", "legacy":
	default:
		return fmt.Errorf("export_schema must be %q or %q, got %q",
			"standard", "legacy", c.ExportSchema)
	}
	return nil
}

// RosterPrograms converts the configured programs to the store's type.
func (c Config) RosterPrograms() []roster.Program {
	out := make([]roster.Program, len(c.Programs))
	for i, p := range c.Programs {
		out[i] = roster.Program{ID: p.ID, Name: p.Name, MaxMembers: p.MaxMembers}
	}
	return out
}

// Policy returns the capacity counting policy as the store's type.
func (c Config) Policy() roster.CountPolicy {
	if c.CapacityPolicy == "total" {
		return roster.ByTotal
	}
	return roster.ByPresent
}

// Schema returns the export column set as the tabular type.
func (c Config) Schema() tabular.Schema {
	if c.ExportSchema == "legacy" {
		return tabular.SchemaLegacy
	}
	return tabular.SchemaStandard
}

// DefaultConfigTemplate returns the commented YAML written when no
// config file exists.
func DefaultConfigTemplate() string {
	return `# uketsuke configuration

# Capacity checks count "present" attendees (checked in) or "total"
# assigned attendees against each program's limit.
capacity_policy: present

# Export column set: "standard" includes the CS preference columns,
# "legacy" is the four-column set.
export_schema: standard

# Re-import the roster file automatically when it changes on disk.
auto_reload: true

# Program assigned to imported rows with a blank first choice.
no_preference_program: 希望なし

ui:
  show_kana: true

programs:
  - id: 1
    name: 目指せ、最速ロボット！　～自動走行プログラミングにトライ～
    max_members: 8
  - id: 2
    name: 電気の不思議を探ろう！　～LEDを回路の工夫で光らせよう～
    max_members: 25
  - id: 3
    name: ドローンで植物チェック！　～空から見守る緑の元気～
    max_members: 20
  - id: 4
    name: “紙”技エンジニアリング！　～長さと強さの最大化に挑戦～
    max_members: 40
  - id: 5
    name: 希望なし
    max_members: 200
`
}

// WriteDefaultConfig creates a config file at the given path with
// default settings and comments. Creates the parent directory if it
// doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
