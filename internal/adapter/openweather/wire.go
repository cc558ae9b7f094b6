package openweather

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/couchcryptid/weather-search/internal/domain"
)

// OpenWeatherMap current-weather response types. Required fields are pointers
// so their absence can be told apart from a zero value.

// WireWeather is the decoded response body.
type WireWeather struct {
	CityID     *int          `json:"id"`
	Name       *string       `json:"name"`
	Main       *MainInfo     `json:"main"`
	Summaries  []SummaryInfo `json:"weather"`
	Wind       *WindInfo     `json:"wind"`
	System     *SystemInfo   `json:"sys"`
	Visibility *float64      `json:"visibility"`
}

// MainInfo holds temperatures (°C), pressure (hPa) and humidity (%).
type MainInfo struct {
	Temperature          *float64 `json:"temp"`
	FeelsLikeTemperature *float64 `json:"feels_like"`
	MinTemperature       *float64 `json:"temp_min"`
	MaxTemperature       *float64 `json:"temp_max"`
	Pressure             *float64 `json:"pressure"`
	Humidity             *float64 `json:"humidity"`
}

type SummaryInfo struct {
	Title       string `json:"main"`
	Description string `json:"description"`
	IconCode    string `json:"icon"`
}

type WindInfo struct {
	Speed  float64 `json:"speed"`
	Degree float64 `json:"deg"`
}

// SystemInfo carries sunrise and sunset as Unix seconds.
type SystemInfo struct {
	Sunrise float64 `json:"sunrise"`
	Sunset  float64 `json:"sunset"`
}

var (
	errMissingID   = errors.New("missing field \"id\"")
	errMissingName = errors.New("missing field \"name\"")
	errMissingMain = errors.New("missing field \"main\"")
)

// DecodeWeather unmarshals body and checks that the required fields are present.
func DecodeWeather(body []byte) (WireWeather, error) {
	var w WireWeather
	if err := json.Unmarshal(body, &w); err != nil {
		return WireWeather{}, err
	}

	switch {
	case w.CityID == nil:
		return WireWeather{}, errMissingID
	case w.Name == nil:
		return WireWeather{}, errMissingName
	case w.Main == nil:
		return WireWeather{}, errMissingMain
	}

	m := w.Main
	for _, f := range []struct {
		name  string
		value *float64
	}{
		{"main.temp", m.Temperature},
		{"main.feels_like", m.FeelsLikeTemperature},
		{"main.temp_min", m.MinTemperature},
		{"main.temp_max", m.MaxTemperature},
		{"main.humidity", m.Humidity},
	} {
		if f.value == nil {
			return WireWeather{}, fmt.Errorf("missing field %q", f.name)
		}
	}
	return w, nil
}

// ToCityWeather flattens a decoded response. Only the first summary is used;
// the icon URL is built only when that summary has an icon code.
// w must have passed DecodeWeather.
func ToCityWeather(w WireWeather, iconBaseURL string) domain.CityWeather {
	cw := domain.CityWeather{
		ID:                   strconv.Itoa(*w.CityID),
		CityName:             *w.Name,
		Temperature:          *w.Main.Temperature,
		FeelsLikeTemperature: *w.Main.FeelsLikeTemperature,
		MinTemperature:       *w.Main.MinTemperature,
		MaxTemperature:       *w.Main.MaxTemperature,
		Humidity:             *w.Main.Humidity,
	}

	if w.Wind != nil {
		speed := w.Wind.Speed
		cw.WindSpeed = &speed
	}

	if len(w.Summaries) > 0 {
		s := w.Summaries[0]
		cw.Title = &s.Title
		cw.Description = &s.Description
		if s.IconCode != "" {
			if u, err := url.Parse(iconBaseURL + "/" + url.PathEscape(s.IconCode) + ".png"); err == nil {
				cw.IconURL = u
			}
		}
	}

	return cw
}
