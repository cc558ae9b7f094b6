// Package openweather looks up current weather through the OpenWeatherMap API.
package openweather

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/weather-search/internal/adapter/transport"
	"github.com/couchcryptid/weather-search/internal/domain"
)

// Gateway turns a query into a CityWeather. Transport errors are returned
// unchanged.
type Gateway struct {
	client      *transport.Client
	endpoint    domain.WeatherEndpoint
	iconBaseURL string
	logger      *slog.Logger
}

// NewGateway creates a gateway for the given endpoint settings.
func NewGateway(client *transport.Client, endpoint domain.WeatherEndpoint, iconBaseURL string, logger *slog.Logger) *Gateway {
	return &Gateway{
		client:      client,
		endpoint:    endpoint,
		iconBaseURL: iconBaseURL,
		logger:      logger,
	}
}

// FetchWeather looks up a city name or postcode. query must already be trimmed.
func (g *Gateway) FetchWeather(ctx context.Context, query string) (domain.CityWeather, error) {
	return g.fetch(ctx, g.endpoint.ByQuery(query))
}

// FetchWeatherByCityID looks up a city by its OpenWeatherMap id.
func (g *Gateway) FetchWeatherByCityID(ctx context.Context, cityID string) (domain.CityWeather, error) {
	return g.fetch(ctx, g.endpoint.ByCityID(cityID))
}

func (g *Gateway) fetch(ctx context.Context, r domain.Resource) (domain.CityWeather, error) {
	wire, err := transport.Execute(ctx, g.client, r, DecodeWeather)
	if err != nil {
		return domain.CityWeather{}, err
	}

	cw := ToCityWeather(wire, g.iconBaseURL)
	g.logger.Debug("weather fetched", "city_id", cw.ID, "city", cw.CityName)
	return cw, nil
}
