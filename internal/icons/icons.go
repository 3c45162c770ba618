// Package icons maps provider condition codes to display glyphs.
package icons

// Glyph identifies a weather symbol independently of how it is drawn.
type Glyph string

const (
	DaySunny     Glyph = "day-sunny"
	NightClear   Glyph = "night-clear"
	DayCloudy    Glyph = "day-cloudy"
	NightCloudy  Glyph = "night-cloudy"
	Cloud        Glyph = "cloud"
	Cloudy       Glyph = "cloudy"
	Showers      Glyph = "showers"
	Rain         Glyph = "rain"
	NightRain    Glyph = "night-rain"
	Thunderstorm Glyph = "thunderstorm"
	Snow         Glyph = "snow"
	Fog          Glyph = "fog"

	// Default is used for codes outside the known set.
	Default = DaySunny
)

const classPrefix = "wi-"

// codes covers the OpenWeatherMap icon code set.
var codes = map[string]Glyph{
	"01d": DaySunny,
	"01n": NightClear,
	"02d": DayCloudy,
	"02n": NightCloudy,
	"03d": Cloud,
	"03n": Cloud,
	"04d": Cloudy,
	"04n": Cloudy,
	"09d": Showers,
	"09n": Showers,
	"10d": Rain,
	"10n": NightRain,
	"11d": Thunderstorm,
	"11n": Thunderstorm,
	"13d": Snow,
	"13n": Snow,
	"50d": Fog,
	"50n": Fog,
}

var symbols = map[Glyph]string{
	DaySunny:     "☀",
	NightClear:   "☾",
	DayCloudy:    "⛅",
	NightCloudy:  "☁",
	Cloud:        "☁",
	Cloudy:       "☁",
	Showers:      "☂",
	Rain:         "☔",
	NightRain:    "☔",
	Thunderstorm: "⚡",
	Snow:         "❄",
	Fog:          "≡",
}

// ForCode returns the glyph for an icon code. Unknown codes map to Default.
func ForCode(code string) Glyph {
	if g, ok := codes[code]; ok {
		return g
	}
	return Default
}

// Class is the icon font class name, e.g. "wi-day-sunny".
func (g Glyph) Class() string {
	return classPrefix + string(g)
}

// Symbol is a single-rune rendering for terminals.
func (g Glyph) Symbol() string {
	if s, ok := symbols[g]; ok {
		return s
	}
	return symbols[Default]
}
