package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/evanschultz/jot/internal/anim"
	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Animation AnimationConfig `toml:"animation"`
	Logging   LoggingConfig   `toml:"logging"`
	UI        UIConfig        `toml:"ui"`
	Keys      KeyConfig       `toml:"keys"`
}

type AnimationConfig struct {
	AddDuration  string `toml:"add_duration"`
	FadeDuration string `toml:"fade_duration"`
	AddEasing    string `toml:"add_easing"`
	FadeEasing   string `toml:"fade_easing"`
	FrameRate    int    `toml:"frame_rate"`
}

type LoggingConfig struct {
	Level   string        `toml:"level"`
	DevFile DevFileConfig `toml:"dev_file"`
}

type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type UIConfig struct {
	Title       string `toml:"title"`
	Placeholder string `toml:"placeholder"`
}

type KeyConfig struct {
	Toggle string `toml:"toggle"`
	Edit   string `toml:"edit"`
	Delete string `toml:"delete"`
	Copy   string `toml:"copy"`
}

// reservedKeys are bound to fixed list and input actions.
var reservedKeys = []string{"q", "ctrl+c", "?", "enter", "tab", "esc", "j", "k", "up", "down"}

// validate rejects overrides that collide with each other or with a fixed
// binding. Space always toggles, so only keys.toggle may name it.
func (k KeyConfig) validate() error {
	seen := make(map[string]string, len(reservedKeys)+5)
	for _, r := range reservedKeys {
		seen[r] = ""
	}
	seen["space"] = "toggle"

	defaults := Default().Keys
	for _, entry := range []struct{ name, raw, fallback string }{
		{"toggle", k.Toggle, defaults.Toggle},
		{"edit", k.Edit, defaults.Edit},
		{"delete", k.Delete, defaults.Delete},
		{"copy", k.Copy, defaults.Copy},
	} {
		key := normalizeKey(entry.raw, entry.fallback)
		other, taken := seen[key]
		switch {
		case taken && other == "":
			return fmt.Errorf("keys.%s %q is reserved", entry.name, key)
		case taken && other != entry.name:
			return fmt.Errorf("keys.%s and keys.%s both use %q", other, entry.name, key)
		}
		seen[key] = entry.name
	}
	return nil
}

// normalizeKey mirrors how the TUI matches a configured key.
func normalizeKey(raw, fallback string) string {
	key := strings.TrimSpace(raw)
	if key == "" {
		key = fallback
	}
	switch {
	case strings.EqualFold(key, "space"):
		return "space"
	case utf8.RuneCountInString(key) == 1:
		return key
	default:
		return strings.ToLower(key)
	}
}

func Default() Config {
	return Config{
		Animation: AnimationConfig{
			AddDuration:  "300ms",
			FadeDuration: "300ms",
			AddEasing:    "ease-out",
			FadeEasing:   "ease-in-out",
			FrameRate:    60,
		},
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileConfig{
				Enabled: true,
				Dir:     "",
			},
		},
		UI: UIConfig{
			Title:       "Simple To-Do List",
			Placeholder: "Add or edit a task",
		},
		Keys: KeyConfig{
			Toggle: "x",
			Edit:   "e",
			Delete: "d",
			Copy:   "y",
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := parseDuration("animation.add_duration", c.Animation.AddDuration); err != nil {
		return err
	}
	if _, err := parseDuration("animation.fade_duration", c.Animation.FadeDuration); err != nil {
		return err
	}
	if _, err := anim.ParseEasing(c.Animation.AddEasing); err != nil {
		return fmt.Errorf("invalid animation.add_easing: %w", err)
	}
	if _, err := anim.ParseEasing(c.Animation.FadeEasing); err != nil {
		return fmt.Errorf("invalid animation.fade_easing: %w", err)
	}
	if c.Animation.FrameRate < 1 || c.Animation.FrameRate > 240 {
		return fmt.Errorf("animation.frame_rate must be within 1..240, got %d", c.Animation.FrameRate)
	}

	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging.level %q: %w", c.Logging.Level, err)
	}

	if err := c.Keys.validate(); err != nil {
		return err
	}

	return nil
}

// AnimationDurations returns the parsed add and fade durations.
func (c Config) AnimationDurations() (add, fade time.Duration) {
	add, _ = parseDuration("animation.add_duration", c.Animation.AddDuration)
	fade, _ = parseDuration("animation.fade_duration", c.Animation.FadeDuration)
	return add, fade
}

// FrameInterval returns the time between animation frames.
func (c Config) FrameInterval() time.Duration {
	rate := c.Animation.FrameRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

func parseDuration(field, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must be >= 0, got %s", field, d)
	}
	return d, nil
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// WriteFile encodes cfg as TOML at path, creating parent directories.
// An existing file is left untouched unless overwrite is set.
func WriteFile(path string, cfg Config, overwrite bool) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("config path is required")
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config %q already exists", path)
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	encoded, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
