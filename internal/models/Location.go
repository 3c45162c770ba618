package models

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// LocationQuery selects a location either by city name or by coordinates, never both.
type LocationQuery struct {
	city     string
	lat      float64
	lon      float64
	byCoords bool
}

func CityQuery(name string) LocationQuery {
	return LocationQuery{city: strings.TrimSpace(name)}
}

func CoordsQuery(lat, lon float64) LocationQuery {
	return LocationQuery{lat: lat, lon: lon, byCoords: true}
}

func (q LocationQuery) City() string {
	return q.city
}

func (q LocationQuery) Coords() (lat, lon float64, ok bool) {
	return q.lat, q.lon, q.byCoords
}

func (q LocationQuery) ByCoordinates() bool {
	return q.byCoords
}

// IsZero reports a query carrying neither a city nor coordinates.
func (q LocationQuery) IsZero() bool {
	return !q.byCoords && q.city == ""
}

// Values encodes the query as the /weather endpoint parameters.
func (q LocationQuery) Values() url.Values {
	v := url.Values{}
	if q.byCoords {
		v.Set("lat", formatCoord(q.lat))
		v.Set("lon", formatCoord(q.lon))
		return v
	}
	if q.city != "" {
		v.Set("city", q.city)
	}
	return v
}

// CacheKey is the snapshot cache key for the query.
func (q LocationQuery) CacheKey() string {
	if q.byCoords {
		return fmt.Sprintf("weather:%s:%s", formatCoord(q.lat), formatCoord(q.lon))
	}
	return "weather:" + strings.ToLower(q.city)
}

func (q LocationQuery) String() string {
	if q.byCoords {
		return formatCoord(q.lat) + ", " + formatCoord(q.lon)
	}
	return q.city
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Place is a geocoding result.
type Place struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Label formats the place the way snapshots name their location, e.g. "Cairo, EG".
func (p Place) Label() string {
	if p.Country == "" {
		return p.Name
	}
	return p.Name + ", " + p.Country
}

// Position is a device position reported by a geolocation source.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
