package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/gosuri/uitable"

	"stitchgrid/pkg/chart"
	"stitchgrid/pkg/store"
)

// SettingsPatch holds the app settings to change; nil fields are kept.
type SettingsPatch struct {
	DarkMode   *bool
	Units      *string
	Handedness *string
	Width      *int
	Height     *int
	GaugeH     *float64
	GaugeV     *float64
}

func (p SettingsPatch) empty() bool {
	return p == SettingsPatch{}
}

// Settings prints the app settings after applying Patch.
type Settings struct {
	Store *store.Store
	Patch SettingsPatch
	Out   io.Writer
}

func (s *Settings) Do(ctx context.Context) error {
	if s.Store == nil {
		return fmt.Errorf("can not read settings: %w", errNoStore)
	}
	app, err := s.Store.Settings(ctx)
	if err != nil {
		return err
	}
	if !s.Patch.empty() {
		if err := apply(&app, s.Patch); err != nil {
			return err
		}
		if err := s.Store.SaveSettings(ctx, app); err != nil {
			return err
		}
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Dark mode"), app.DarkMode)
	tbl.AddRow(bold.Sprint("Units"), app.Units)
	tbl.AddRow(bold.Sprint("Handedness"), app.Handedness)
	tbl.AddRow(bold.Sprint("Default size"), fmt.Sprintf("%dx%d", app.DefaultGridWidth, app.DefaultGridHeight))
	tbl.AddRow(bold.Sprint("Default gauge"), fmt.Sprintf("%g x %g", app.DefaultGaugeH, app.DefaultGaugeV))
	_, _ = fmt.Fprintln(output(s.Out), tbl)
	return nil
}

func apply(app *store.AppSettings, p SettingsPatch) error {
	if p.DarkMode != nil {
		app.DarkMode = *p.DarkMode
	}
	if p.Units != nil {
		u := store.Units(*p.Units)
		if u != store.Metric && u != store.Imperial {
			return fmt.Errorf("units must be %s or %s", store.Metric, store.Imperial)
		}
		app.Units = u
	}
	if p.Handedness != nil {
		h := store.Handedness(*p.Handedness)
		if h != store.LeftHanded && h != store.RightHanded {
			return fmt.Errorf("handedness must be %s or %s", store.LeftHanded, store.RightHanded)
		}
		app.Handedness = h
	}
	w, h := app.DefaultGridWidth, app.DefaultGridHeight
	if p.Width != nil {
		w = *p.Width
	}
	if p.Height != nil {
		h = *p.Height
	}
	if !chart.ValidDimensions(w, h) {
		return fmt.Errorf("size %dx%d is out of range (1 to %d)", w, h, chart.MaxDimension)
	}
	app.DefaultGridWidth, app.DefaultGridHeight = w, h
	if p.GaugeH != nil {
		if *p.GaugeH <= 0 {
			return fmt.Errorf("gauge must be positive")
		}
		app.DefaultGaugeH = *p.GaugeH
	}
	if p.GaugeV != nil {
		if *p.GaugeV <= 0 {
			return fmt.Errorf("gauge must be positive")
		}
		app.DefaultGaugeV = *p.GaugeV
	}
	return nil
}
