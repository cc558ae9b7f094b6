package console

import (
	"fmt"
	"math"
	"strconv"

	"github.com/couchcryptid/weather-search/internal/domain"
)

// WeatherView holds the display strings for one CityWeather.
type WeatherView struct {
	CityName           string
	Summary            string
	IconURL            string
	AverageTemperature string
	FeelsLike          string
	MinTemperature     string
	MaxTemperature     string
	Humidity           string
	WindSpeed          string
}

// NewWeatherView formats w for display. Whole-degree temperatures are
// truncated, min/max and wind speed keep at most one decimal.
func NewWeatherView(w domain.CityWeather) WeatherView {
	v := WeatherView{
		CityName:           w.CityName,
		AverageTemperature: fmt.Sprintf("%d°", int(w.Temperature)),
		FeelsLike:          fmt.Sprintf("Feels like %d°", int(w.FeelsLikeTemperature)),
		MinTemperature:     oneDecimal(w.MinTemperature),
		MaxTemperature:     oneDecimal(w.MaxTemperature),
		Humidity:           fmt.Sprintf("%.0f%%", w.Humidity),
		WindSpeed:          "0 m/s",
	}
	if w.Description != nil {
		v.Summary = *w.Description
	}
	if w.IconURL != nil {
		v.IconURL = w.IconURL.String()
	}
	if w.WindSpeed != nil {
		v.WindSpeed = oneDecimal(*w.WindSpeed) + " m/s"
	}
	return v
}

func oneDecimal(f float64) string {
	r := math.Round(f*10) / 10
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// ErrorView is the title and message shown for a failed lookup.
type ErrorView struct {
	Title   string
	Message string
}

// NewErrorView picks the copy for a failure kind. Only not-found and offline
// get their own text.
func NewErrorView(kind domain.ErrorKind) ErrorView {
	switch kind {
	case domain.KindNotFound:
		return ErrorView{Title: "City not found!", Message: "Please adjust keyword or postcode."}
	case domain.KindNetworkFailure:
		return ErrorView{Title: "You seem to be offline!", Message: "Please connect to the Internet and try again."}
	default:
		return ErrorView{Title: "Something went wrong!", Message: "Please try again later."}
	}
}
