package widget

import (
	"fmt"
	"io"

	"checkweather/internal/icons"
	"checkweather/internal/models"
)

const (
	loadingText   = "Loading weather..."
	forecastTitle = "7-Day Forecast"
)

// GlyphFormat turns a glyph into the text shown for it.
type GlyphFormat func(icons.Glyph) string

var (
	// SymbolGlyphs draws glyphs as single symbols.
	SymbolGlyphs GlyphFormat = icons.Glyph.Symbol
	// ClassGlyphs prints the icon class name, for terminals without the symbols.
	ClassGlyphs GlyphFormat = icons.Glyph.Class
)

// Render writes the text view of st to w with symbol glyphs. The idle state renders nothing.
func Render(w io.Writer, st QueryState) error {
	return RenderWith(w, st, SymbolGlyphs)
}

// RenderWith is Render with a chosen glyph format.
func RenderWith(w io.Writer, st QueryState, glyph GlyphFormat) error {
	if glyph == nil {
		glyph = SymbolGlyphs
	}
	switch st.Status() {
	case StatusLoading:
		_, err := fmt.Fprintln(w, loadingText)
		return err
	case StatusError:
		_, err := fmt.Fprintln(w, "Error: "+st.Message())
		return err
	case StatusSuccess:
		return renderSnapshot(w, st.Snapshot(), glyph)
	}
	return nil
}

func renderSnapshot(w io.Writer, s *models.WeatherSnapshot, glyph GlyphFormat) error {
	if s == nil {
		return nil
	}

	cur := s.Current
	lines := []string{
		s.Location,
		fmt.Sprintf("%s  %.0f°C  %s", glyph(icons.ForCode(cur.Icon)), cur.Temperature, cur.Condition),
		fmt.Sprintf("Humidity: %d%%  Wind: %.1f km/h", cur.Humidity, cur.WindSpeed),
	}
	if s.HasAlert() {
		lines = append(lines, "Alert: "+s.Alert)
	}
	if len(s.Forecast) > 0 {
		lines = append(lines, "", forecastTitle)
		lines = append(lines, forecastLines(s.Forecast, glyph)...)
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// forecastLines renders one row per day, in the order given.
func forecastLines(days []models.ForecastDay, glyph GlyphFormat) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, fmt.Sprintf("%-3s  %s  %.0f° / %.0f°",
			weekday(d), glyph(icons.ForCode(d.Icon)), d.TempMax, d.TempMin))
	}
	return out
}

func weekday(d models.ForecastDay) string {
	day := d.Day()
	if day.IsZero() {
		return d.Date
	}
	return day.Format("Mon")
}
