//go:build openweather

package openweather

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/couchcryptid/weather-search/internal/adapter/transport"
	"github.com/couchcryptid/weather-search/internal/domain"
	"github.com/couchcryptid/weather-search/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real OpenWeatherMap API and require WEATHER_API_KEY.
// Run with: go test -tags=openweather ./internal/adapter/openweather/ -v -count=1

func smokeGateway(t *testing.T) *Gateway {
	t.Helper()
	key := os.Getenv("WEATHER_API_KEY")
	if key == "" {
		t.Fatal("WEATHER_API_KEY must be set to run smoke tests")
	}
	client := transport.NewClient(10*time.Second, observability.NewMetricsForTesting(), discardLogger())
	endpoint := domain.WeatherEndpoint{BaseURL: "https://api.openweathermap.org/data/2.5/weather", APIKey: key}
	return NewGateway(client, endpoint, "https://openweathermap.org/img/w", discardLogger())
}

func TestSmoke_FetchWeather(t *testing.T) {
	g := smokeGateway(t)

	got, err := g.FetchWeather(context.Background(), "Sydney,au")
	require.NoError(t, err)

	assert.Equal(t, "Sydney", got.CityName)
	assert.NotEmpty(t, got.ID)
	assert.InDelta(t, 50.0, got.Humidity, 50.0)
	require.NotNil(t, got.IconURL)
	assert.Contains(t, got.IconURL.String(), ".png")
}

func TestSmoke_FetchWeatherByCityID(t *testing.T) {
	g := smokeGateway(t)

	got, err := g.FetchWeatherByCityID(context.Background(), "2147714")
	require.NoError(t, err)
	assert.Equal(t, "Sydney", got.CityName)
}

func TestSmoke_UnknownCity(t *testing.T) {
	g := smokeGateway(t)

	_, err := g.FetchWeather(context.Background(), "XYZNONEXISTENT99")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSmoke_BadKey(t *testing.T) {
	client := transport.NewClient(10*time.Second, observability.NewMetricsForTesting(), discardLogger())
	g := NewGateway(client, domain.WeatherEndpoint{BaseURL: "https://api.openweathermap.org/data/2.5/weather", APIKey: "invalid"}, "https://openweathermap.org/img/w", discardLogger())

	_, err := g.FetchWeather(context.Background(), "Sydney")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
