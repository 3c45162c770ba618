package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "checkweather/docs"
	"checkweather/internal/models"
	"checkweather/pkg/logger"
)

// WeatherGetter is the service behind the weather endpoint.
type WeatherGetter interface {
	GetWeather(ctx context.Context, q models.LocationQuery) (*models.WeatherSnapshot, error)
}

type routes struct {
	service WeatherGetter
	l       *logger.Logger
}

func NewRouter(
	app *fiber.App,
	weatherService WeatherGetter,
	l *logger.Logger,
) {
	r := &routes{
		service: weatherService,
		l:       l,
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	app.Get("/", r.handleRoot)

	// API routes
	v1 := app.Group("/api/v1")
	v1.Get("/weather", r.handleWeatherCall)
}
