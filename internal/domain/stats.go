package domain

// StarStats summarizes the star distribution over every fetched repository,
// not just the displayed ones.
type StarStats struct {
	Repositories int     `json:"repositories"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	Max          int     `json:"max"`
}
