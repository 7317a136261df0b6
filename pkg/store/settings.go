package store

import (
	"context"
	"errors"
	"fmt"

	"stitchgrid/pkg/chart"
)

type Units string

const (
	Metric   Units = "metric"
	Imperial Units = "imperial"
)

type Handedness string

const (
	LeftHanded  Handedness = "left"
	RightHanded Handedness = "right"
)

// AppSettings are the preferences shared by every project.
type AppSettings struct {
	DarkMode          bool       `json:"darkMode"`
	Units             Units      `json:"units"`
	Handedness        Handedness `json:"handedness"`
	DefaultGridWidth  int        `json:"defaultGridWidth"`
	DefaultGridHeight int        `json:"defaultGridHeight"`
	DefaultGaugeH     float64    `json:"defaultGaugeH"`
	DefaultGaugeV     float64    `json:"defaultGaugeV"`
}

func DefaultAppSettings() AppSettings {
	return AppSettings{
		DarkMode:          true,
		Units:             Metric,
		Handedness:        RightHanded,
		DefaultGridWidth:  50,
		DefaultGridHeight: 50,
		DefaultGaugeH:     1,
		DefaultGaugeV:     1,
	}
}

// ChartSettings seeds new project settings from the stored defaults.
func (a AppSettings) ChartSettings() chart.Settings {
	s := chart.DefaultSettings()
	if chart.ValidDimensions(a.DefaultGridWidth, a.DefaultGridHeight) {
		s.Width, s.Height = a.DefaultGridWidth, a.DefaultGridHeight
	}
	if a.DefaultGaugeH > 0 {
		s.GaugeH = a.DefaultGaugeH
	}
	if a.DefaultGaugeV > 0 {
		s.GaugeV = a.DefaultGaugeV
	}
	return s
}

// Settings returns the stored app settings, or the defaults when none
// have been saved.
func (s *Store) Settings(ctx context.Context) (AppSettings, error) {
	key, _ := toKey(settingsBucket, settingsID)
	a := DefaultAppSettings()
	if err := s.read(key, &a); err != nil {
		if errors.Is(err, ErrNotFound) {
			return DefaultAppSettings(), nil
		}
		return DefaultAppSettings(), fmt.Errorf("store: load settings: %w", err)
	}
	return a, nil
}

func (s *Store) SaveSettings(ctx context.Context, a AppSettings) error {
	key, _ := toKey(settingsBucket, settingsID)
	if err := s.write(key, a); err != nil {
		return fmt.Errorf("store: save settings: %w", err)
	}
	return nil
}
