// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/devfolio/internal/config"
	"github.com/naka-gawa/devfolio/internal/domain"
)

// repoSort is passed as the sort key of the repository listing.
const repoSort = "stars"

// Source defines the behavior of a gateway for fetching a public profile
// and its repositories.
type Source interface {
	FetchProfile(ctx context.Context, account string) (*domain.Profile, error)
	FetchRepositories(ctx context.Context, account string, perPage int) ([]domain.SourceRepository, error)
}

// RESTGateway is the Source backed by the GitHub REST API.
type RESTGateway struct {
	restClient *github.Client
	logger     *zap.Logger
}

// New returns the Source selected by cfg.Source.
func New(cfg *config.Config, logger *zap.Logger) (Source, error) {
	httpClient, err := NewHTTPClient(cfg, logger)
	if err != nil {
		return nil, err
	}
	if cfg.Source == config.SourceGraphQL {
		return NewGraphQLGateway(cfg.GraphQLURL, httpClient, logger), nil
	}
	return NewRESTGateway(cfg.APIURL, httpClient, logger)
}

// NewHTTPClient builds the transport shared by both gateways: a rate limit
// detector, an optional token source and the configured timeout.
func NewHTTPClient(cfg *config.Config, logger *zap.Logger) (*http.Client, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil,
		github_ratelimit.WithLimitDetectedCallback(func(cbCtx *github_ratelimit.CallbackContext) {
			fields := []zap.Field{}
			if cbCtx.SleepUntil != nil {
				fields = append(fields, zap.Time("reset_at", *cbCtx.SleepUntil))
			}
			logger.Warn("GitHub secondary rate limit detected", fields...)
		}),
		github_ratelimit.WithSingleSleepLimit(cfg.RateLimitSleep, func(cbCtx *github_ratelimit.CallbackContext) {
			logger.Warn("rate limit wait exceeds the allowed sleep, surfacing the failure",
				zap.Duration("sleep_limit", cfg.RateLimitSleep))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	var transport http.RoundTripper = rateLimitWaiter
	if cfg.Token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}),
		}
	}
	return &http.Client{Transport: transport, Timeout: cfg.Timeout}, nil
}

// NewRESTGateway creates a RESTGateway talking to baseURL.
func NewRESTGateway(baseURL string, httpClient *http.Client, logger *zap.Logger) (*RESTGateway, error) {
	restClient := github.NewClient(httpClient)
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse API URL %q: %w", baseURL, err)
		}
		restClient.BaseURL = u
	}
	return &RESTGateway{
		restClient: restClient,
		logger:     logger,
	}, nil
}

// FetchProfile fetches GET /users/{account}.
func (g *RESTGateway) FetchProfile(ctx context.Context, account string) (*domain.Profile, error) {
	g.logger.Debug("fetching profile", zap.String("account", account))
	user, _, err := g.restClient.Users.Get(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile with REST API: %w", err)
	}
	return &domain.Profile{
		AvatarURL:       user.GetAvatarURL(),
		PublicRepoCount: user.GetPublicRepos(),
		FollowerCount:   user.GetFollowers(),
	}, nil
}

// FetchRepositories fetches a single page of GET /users/{account}/repos
// sorted by stars. The source order is preserved.
func (g *RESTGateway) FetchRepositories(ctx context.Context, account string, perPage int) ([]domain.SourceRepository, error) {
	g.logger.Debug("fetching repositories", zap.String("account", account), zap.Int("per_page", perPage))
	opts := &github.RepositoryListByUserOptions{
		Sort:        repoSort,
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	repos, _, err := g.restClient.Repositories.ListByUser(ctx, account, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories with REST API: %w", err)
	}

	result := make([]domain.SourceRepository, 0, len(repos))
	for _, repo := range repos {
		result = append(result, domain.SourceRepository{
			ID:          repo.GetID(),
			Name:        repo.GetName(),
			Description: repo.Description,
			StarCount:   repo.GetStargazersCount(),
			Language:    repo.Language,
			UpdatedAt:   repo.GetUpdatedAt().Time,
			URL:         repo.GetHTMLURL(),
		})
	}
	g.logger.Debug("fetched repositories", zap.Int("count", len(result)))
	return result, nil
}

// compile-time checks
var (
	_ Source = (*RESTGateway)(nil)
	_ Source = (*GraphQLGateway)(nil)
)
