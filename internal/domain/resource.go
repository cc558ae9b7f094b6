package domain

import (
	"errors"
	"net/url"
	"strings"
)

// Units requested from the weather API.
const Units = "metric"

// Param is a single query parameter. Order within a Resource is preserved on
// the wire.
type Param struct {
	Key   string
	Value string
}

// Resource describes one HTTP GET: a base URL and an ordered parameter list.
// It is immutable once built.
type Resource struct {
	baseURL string
	params  []Param
}

// NewResource builds a Resource, copying params.
func NewResource(baseURL string, params ...Param) Resource {
	p := make([]Param, len(params))
	copy(p, params)
	return Resource{baseURL: baseURL, params: p}
}

// BaseURL returns the endpoint without query parameters.
func (r Resource) BaseURL() string { return r.baseURL }

// Params returns a copy of the ordered parameter list.
func (r Resource) Params() []Param {
	p := make([]Param, len(r.params))
	copy(p, r.params)
	return p
}

// URL renders the request URL. url.Values is not used because it sorts keys.
func (r Resource) URL() (*url.URL, error) {
	u, err := url.Parse(r.baseURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.New("resource base URL must be absolute")
	}

	var b strings.Builder
	b.WriteString(u.RawQuery)
	for _, p := range r.params {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	u.RawQuery = b.String()
	return u, nil
}

// WeatherEndpoint holds the process-wide API settings used to describe
// weather requests.
type WeatherEndpoint struct {
	BaseURL string
	APIKey  string
}

// ByQuery describes a lookup by city name or postcode. The query must already
// be trimmed.
func (e WeatherEndpoint) ByQuery(query string) Resource {
	return NewResource(e.BaseURL,
		Param{Key: "q", Value: query},
		Param{Key: "appid", Value: e.APIKey},
		Param{Key: "units", Value: Units},
	)
}

// ByCityID describes a lookup by OpenWeatherMap city id.
func (e WeatherEndpoint) ByCityID(cityID string) Resource {
	return NewResource(e.BaseURL,
		Param{Key: "id", Value: cityID},
		Param{Key: "appid", Value: e.APIKey},
		Param{Key: "units", Value: Units},
	)
}
