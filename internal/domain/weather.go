package domain

import (
	"encoding/json"
	"net/url"
	"time"
)

// CityWeather is the flattened current weather for one city. Optional fields
// are pointers, so compare values with Equal rather than ==.
type CityWeather struct {
	ID       string `json:"id"`
	CityName string `json:"city_name"`

	Temperature          float64 `json:"temperature"`
	FeelsLikeTemperature float64 `json:"feels_like_temperature"`
	MinTemperature       float64 `json:"min_temperature"`
	MaxTemperature       float64 `json:"max_temperature"`
	Humidity             float64 `json:"humidity"`

	WindSpeed   *float64 `json:"wind_speed,omitempty"`
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	IconURL     *url.URL `json:"-"`
}

// Equal reports whether w and o describe the same weather, comparing optional
// fields by the values they point to.
func (w CityWeather) Equal(o CityWeather) bool {
	return w.ID == o.ID &&
		w.CityName == o.CityName &&
		w.Temperature == o.Temperature &&
		w.FeelsLikeTemperature == o.FeelsLikeTemperature &&
		w.MinTemperature == o.MinTemperature &&
		w.MaxTemperature == o.MaxTemperature &&
		w.Humidity == o.Humidity &&
		equalPtr(w.WindSpeed, o.WindSpeed) &&
		equalPtr(w.Title, o.Title) &&
		equalPtr(w.Description, o.Description) &&
		equalURL(w.IconURL, o.IconURL)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalURL(a, b *url.URL) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}

// MarshalJSON renders IconURL as a string.
func (w CityWeather) MarshalJSON() ([]byte, error) {
	type plain CityWeather
	out := struct {
		plain
		IconURL string `json:"icon_url,omitempty"`
	}{plain: plain(w)}
	if w.IconURL != nil {
		out.IconURL = w.IconURL.String()
	}
	return json.Marshal(out)
}

// RecentSearch is a successful lookup as remembered by the recent searches list.
type RecentSearch struct {
	ID         string    `json:"id"`
	CityName   string    `json:"city_name"`
	SearchedAt time.Time `json:"searched_at"`
}

// NewRecentSearch stamps a successful lookup with the current time.
func NewRecentSearch(w CityWeather) RecentSearch {
	return RecentSearch{
		ID:         w.ID,
		CityName:   w.CityName,
		SearchedAt: now().UTC(),
	}
}
