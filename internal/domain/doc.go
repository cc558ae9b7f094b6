// Package domain models the weather search core: request descriptors for the
// OpenWeatherMap current-weather endpoint, the flattened city weather entity,
// and the closed taxonomy of network failures.
//
// # Data Source
//
// Weather data comes from the OpenWeatherMap "current weather data" API,
// documented at https://openweathermap.org/current. A lookup is a single GET:
//
//	https://api.openweathermap.org/data/2.5/weather?q=Sydney&appid=<key>&units=metric
//	https://api.openweathermap.org/data/2.5/weather?id=2147714&appid=<key>&units=metric
//
// Parameter order is significant for wire compatibility with recorded fixtures,
// so a [Resource] keeps its parameters as an ordered list rather than a map.
//
// # Units
//
// Requests always ask for metric units: temperatures in degrees Celsius, wind
// speed in metres per second, humidity in percent.
//
// # Icons
//
// Each summary block carries an icon code such as "01d". The image lives at
//
//	<icon-base>/<code>.png  →  e.g. https://openweathermap.org/img/w/01d.png
//
// [CityWeather.IconURL] is only set when the payload has an icon code.
//
// # Failures
//
// Every failure surfaced by the transport is a [*NetworkError] whose [ErrorKind]
// is one of a fixed set. Callers branch on the kind with errors.Is against the
// package sentinels (ErrNotFound, ErrNetworkFailure, ...).
package domain
