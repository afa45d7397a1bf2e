// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// Placeholders substituted for nullable repository fields.
const (
	NoDescription   = "No description available"
	UnknownLanguage = "Unknown"
)

// Profile is the account summary shown in the header of the main screen.
// It is sourced verbatim from the remote API.
type Profile struct {
	AvatarURL       string `json:"avatar_url"`
	PublicRepoCount int    `json:"public_repos"`
	FollowerCount   int    `json:"followers"`
}

// SourceRepository is a repository as returned by the remote source.
// Description and Language are nil when the API reports them as null.
type SourceRepository struct {
	ID          int64
	Name        string
	Description *string
	StarCount   int
	Language    *string
	UpdatedAt   time.Time
	URL         string
}

// Repository is a view-ready repository with its placeholders already applied.
type Repository struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StarCount   int       `json:"stars"`
	Language    string    `json:"language"`
	UpdatedAt   time.Time `json:"updated_at"`
	URL         string    `json:"url"`
}

// NewRepository converts a source repository into its view form,
// substituting NoDescription and UnknownLanguage for missing values.
func NewRepository(src SourceRepository) Repository {
	repo := Repository{
		ID:          src.ID,
		Name:        src.Name,
		Description: NoDescription,
		StarCount:   src.StarCount,
		Language:    UnknownLanguage,
		UpdatedAt:   src.UpdatedAt,
		URL:         src.URL,
	}
	if src.Description != nil && *src.Description != "" {
		repo.Description = *src.Description
	}
	if src.Language != nil && *src.Language != "" {
		repo.Language = *src.Language
	}
	return repo
}

// AggregateView is the merged snapshot rendered by the main screen.
// It is built in one piece from a successful paired fetch and never mutated.
type AggregateView struct {
	Profile         Profile      `json:"profile"`
	TopRepositories []Repository `json:"top_repositories"`
	TotalStars      int          `json:"total_stars"`
	StarStats       StarStats    `json:"star_stats"`
}
