package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"checkweather/internal/models"
	"checkweather/internal/services/weather"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Detail string `json:"detail" example:"City 'Atlantis' not found."`
}

// StatusResponse is returned by the root endpoint
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// handleRoot godoc
// @Summary Service status
// @Tags Status
// @Produce json
// @Success 200 {object} StatusResponse
// @Router / [get]
func (r *routes) handleRoot(c *fiber.Ctx) error {
	return c.JSON(StatusResponse{Status: "ok"})
}

// handleWeatherCall godoc
// @Summary Get current weather and forecast
// @Description Looks up current conditions, a 7-day forecast and the active alert for a city or a coordinate pair.
// @Description city takes precedence when both forms are given.
// @Tags Weather
// @Produce json
// @Param city query string false "City name" example(Cairo)
// @Param lat query number false "Latitude (-90 to 90)" minimum(-90) maximum(90) example(30.0444)
// @Param lon query number false "Longitude (-180 to 180)" minimum(-180) maximum(180) example(31.2357)
// @Success 200 {object} models.WeatherSnapshot "Successful response"
// @Failure 404 {object} ErrorResponse "Unknown city or incomplete query"
// @Failure 422 {object} ErrorResponse "Malformed coordinates"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/weather [get]
//
//	curl -X GET "http://localhost:8080/api/v1/weather?city=Cairo"
func (r *routes) handleWeatherCall(c *fiber.Ctx) error {
	query, err := parseQuery(c)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{Detail: err.Error()})
	}

	snapshot, err := r.service.GetWeather(c.UserContext(), query)
	if err != nil {
		var lookupErr *weather.LookupError
		if errors.As(err, &lookupErr) {
			r.l.Info("weather lookup rejected", map[string]any{
				"query":  query.String(),
				"detail": lookupErr.Error(),
			})
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Detail: lookupErr.Error()})
		}

		r.l.Error(err, map[string]any{
			"query":      query.String(),
			"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
		})
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Detail: "An internal error occurred: " + err.Error(),
		})
	}

	return c.JSON(snapshot)
}

// parseQuery builds the location query from request parameters. A city wins over
// coordinates. A half-specified pair yields the zero query, which the service rejects.
func parseQuery(c *fiber.Ctx) (models.LocationQuery, error) {
	if city := strings.TrimSpace(c.Query("city")); city != "" {
		return models.CityQuery(city), nil
	}

	lat, hasLat, err := parseCoord(c.Query("lat"))
	if err != nil {
		return models.LocationQuery{}, errors.New("Invalid latitude format")
	}
	lon, hasLon, err := parseCoord(c.Query("lon"))
	if err != nil {
		return models.LocationQuery{}, errors.New("Invalid longitude format")
	}

	if !hasLat || !hasLon {
		return models.LocationQuery{}, nil
	}
	return models.CoordsQuery(lat, lon), nil
}

func parseCoord(raw string) (float64, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}
