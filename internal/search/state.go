package search

import (
	"encoding/json"

	"github.com/couchcryptid/weather-search/internal/domain"
)

// Phase identifies which variant a State holds.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailure
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// State is the observable search state. The zero value is Idle. Only this
// package builds non-idle states, so a Success always carries weather and a
// Failure always carries an error.
type State struct {
	phase   Phase
	weather domain.CityWeather
	err     *domain.NetworkError
}

func idleState() State { return State{phase: PhaseIdle} }

func loadingState() State { return State{phase: PhaseLoading} }

func successState(w domain.CityWeather) State {
	return State{phase: PhaseSuccess, weather: w}
}

func failureState(err *domain.NetworkError) State {
	return State{phase: PhaseFailure, err: err}
}

func (s State) Phase() Phase { return s.phase }

// Weather returns the looked-up city when the state is Success.
func (s State) Weather() (domain.CityWeather, bool) {
	return s.weather, s.phase == PhaseSuccess
}

// Err returns the failure when the state is Failure, nil otherwise.
func (s State) Err() *domain.NetworkError {
	return s.err
}

type stateError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (s State) MarshalJSON() ([]byte, error) {
	out := struct {
		Phase   string              `json:"phase"`
		Weather *domain.CityWeather `json:"weather,omitempty"`
		Error   *stateError         `json:"error,omitempty"`
	}{Phase: s.phase.String()}

	switch s.phase {
	case PhaseSuccess:
		w := s.weather
		out.Weather = &w
	case PhaseFailure:
		out.Error = &stateError{Kind: s.err.Kind.String(), Message: s.err.SafeMessage()}
	}
	return json.Marshal(out)
}
