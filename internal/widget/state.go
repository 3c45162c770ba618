// Package widget holds the weather lookup view state and its text rendering.
package widget

import "checkweather/internal/models"

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// QueryState is the single view state of the widget. Only the payload that
// belongs to Status is ever set.
type QueryState struct {
	status   Status
	snapshot *models.WeatherSnapshot
	message  string
}

func IdleState() QueryState {
	return QueryState{status: StatusIdle}
}

func LoadingState() QueryState {
	return QueryState{status: StatusLoading}
}

func SuccessState(snapshot *models.WeatherSnapshot) QueryState {
	return QueryState{status: StatusSuccess, snapshot: snapshot}
}

func ErrorState(message string) QueryState {
	return QueryState{status: StatusError, message: message}
}

func (s QueryState) Status() Status {
	return s.status
}

func (s QueryState) IsLoading() bool {
	return s.status == StatusLoading
}

// Snapshot is the fetched result, nil unless Status is StatusSuccess.
func (s QueryState) Snapshot() *models.WeatherSnapshot {
	return s.snapshot
}

// Message is the error text, empty unless Status is StatusError.
func (s QueryState) Message() string {
	return s.message
}

func (s QueryState) String() string {
	switch s.status {
	case StatusSuccess:
		if s.snapshot != nil {
			return "success(" + s.snapshot.Location + ")"
		}
	case StatusError:
		return "error(" + s.message + ")"
	}
	return s.status.String()
}
