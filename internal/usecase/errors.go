package usecase

// Messages shown to the presentation layer for each routine.
const (
	MsgLoadData     = "Failed to load data"
	MsgLoadProfile  = "Failed to load profile data"
	MsgLoadProjects = "Failed to load repositories"
)

// FetchError is the single failure kind surfaced by the aggregator. It does
// not distinguish network, status or payload failures; Err is kept for logs.
type FetchError struct {
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
