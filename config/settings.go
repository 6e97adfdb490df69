package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Settings are the runtime knobs shared by the window and the headless runner.
type Settings struct {
	Width      int           `yaml:"width"`
	Height     int           `yaml:"height"`
	TimeScale  float64       `yaml:"time_scale"`
	Substeps   int           `yaml:"substeps"`
	MessageTTL time.Duration `yaml:"message_ttl"`
	// Vessel is the body selected at startup.
	Vessel string `yaml:"vessel"`
}

// DefaultSettings returns the settings used when nothing is overridden.
func DefaultSettings() Settings {
	return Settings{
		Width:      1280,
		Height:     720,
		TimeScale:  1,
		Substeps:   100,
		MessageTTL: 10 * time.Second,
		Vessel:     "rocket",
	}
}

// LoadSettings reads a YAML settings file on top of DefaultSettings.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, errors.Wrapf(err, "read settings %s", path)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, errors.Wrapf(err, "parse settings %s", path)
	}
	if err := settings.Validate(); err != nil {
		return settings, errors.Wrapf(err, "invalid settings %s", path)
	}
	return settings, nil
}

// Validate rejects settings the simulation cannot run with.
func (s Settings) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return errors.Errorf("window size %dx%d must be positive", s.Width, s.Height)
	}
	if s.TimeScale <= 0 {
		return errors.Errorf("time scale %g must be positive", s.TimeScale)
	}
	if s.Substeps < 1 {
		return errors.Errorf("substeps %d must be at least 1", s.Substeps)
	}
	if s.MessageTTL <= 0 {
		return errors.Errorf("message ttl %s must be positive", s.MessageTTL)
	}
	return nil
}
