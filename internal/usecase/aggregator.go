// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/devfolio/internal/domain"
	"github.com/naka-gawa/devfolio/internal/gateway"
)

// Options tunes how much data the aggregator requests and keeps.
type Options struct {
	Account         string
	PerPage         int
	TopN            int
	ProjectsPerPage int
}

// Aggregator is the use case that turns the remote profile source into
// view-ready snapshots.
type Aggregator struct {
	source gateway.Source
	opts   Options
	logger *zap.Logger
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(source gateway.Source, opts Options, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		source: source,
		opts:   opts,
		logger: logger.With(zap.String("account", opts.Account)),
	}
}

// Fetch fetches the profile and the repository list concurrently and merges
// them into one AggregateView. Either both fetches succeed or Fetch fails.
func (a *Aggregator) Fetch(ctx context.Context) (*domain.AggregateView, error) {
	a.logger.Debug("starting data aggregation")

	var profile *domain.Profile
	var repos []domain.SourceRepository

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		profile, err = a.source.FetchProfile(egCtx, a.opts.Account)
		return err
	})

	eg.Go(func() error {
		var err error
		repos, err = a.source.FetchRepositories(egCtx, a.opts.Account, a.opts.PerPage)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, a.fail(MsgLoadData, err)
	}
	if err := validateProfile(profile); err != nil {
		return nil, a.fail(MsgLoadData, err)
	}
	if err := validateRepositories(repos); err != nil {
		return nil, a.fail(MsgLoadData, err)
	}

	// Totals cover the whole fetched list, not the truncated view.
	sorted := rankByStars(repos)
	view := &domain.AggregateView{
		Profile:         *profile,
		TopRepositories: slices.Clip(sorted[:min(a.opts.TopN, len(sorted))]),
		TotalStars:      totalStars(repos),
		StarStats:       starStats(repos),
	}

	a.logger.Debug("aggregation complete",
		zap.Int("repositories", len(repos)),
		zap.Int("total_stars", view.TotalStars))
	return view, nil
}

// FetchProfile fetches the profile resource on its own.
func (a *Aggregator) FetchProfile(ctx context.Context) (*domain.Profile, error) {
	profile, err := a.source.FetchProfile(ctx, a.opts.Account)
	if err == nil {
		err = validateProfile(profile)
	}
	if err != nil {
		return nil, a.fail(MsgLoadProfile, err)
	}
	return profile, nil
}

// FetchProjects fetches one page of repositories ranked by stars.
func (a *Aggregator) FetchProjects(ctx context.Context) ([]domain.Repository, error) {
	repos, err := a.source.FetchRepositories(ctx, a.opts.Account, a.opts.ProjectsPerPage)
	if err == nil {
		err = validateRepositories(repos)
	}
	if err != nil {
		return nil, a.fail(MsgLoadProjects, err)
	}
	return rankByStars(repos), nil
}

func (a *Aggregator) fail(message string, err error) *FetchError {
	a.logger.Warn("fetch failed", zap.String("message", message), zap.Error(err))
	return &FetchError{Message: message, Err: err}
}

// rankByStars converts repos to their view form and sorts them by stars,
// descending. Ties keep their source order.
func rankByStars(repos []domain.SourceRepository) []domain.Repository {
	ranked := make([]domain.Repository, 0, len(repos))
	for _, repo := range repos {
		ranked = append(ranked, domain.NewRepository(repo))
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].StarCount > ranked[j].StarCount
	})
	return ranked
}

func totalStars(repos []domain.SourceRepository) int {
	total := 0
	for _, repo := range repos {
		total += repo.StarCount
	}
	return total
}

func starStats(repos []domain.SourceRepository) domain.StarStats {
	summary := domain.StarStats{Repositories: len(repos)}
	if len(repos) == 0 {
		return summary
	}
	data := make(stats.Float64Data, 0, len(repos))
	for _, repo := range repos {
		data = append(data, float64(repo.StarCount))
	}
	// Errors are only returned for empty input, which is handled above.
	summary.Mean, _ = data.Mean()
	summary.Median, _ = data.Median()
	maxStars, _ := data.Max()
	summary.Max = int(maxStars)
	return summary
}

func validateProfile(profile *domain.Profile) error {
	if profile == nil {
		return fmt.Errorf("malformed profile: empty payload")
	}
	if profile.PublicRepoCount < 0 || profile.FollowerCount < 0 {
		return fmt.Errorf("malformed profile: negative counts (repos=%d, followers=%d)", profile.PublicRepoCount, profile.FollowerCount)
	}
	return nil
}

func validateRepositories(repos []domain.SourceRepository) error {
	seen := make(map[int64]struct{}, len(repos))
	for _, repo := range repos {
		if repo.StarCount < 0 {
			return fmt.Errorf("malformed repository %d: negative star count %d", repo.ID, repo.StarCount)
		}
		if _, ok := seen[repo.ID]; ok {
			return fmt.Errorf("malformed repository list: duplicate id %d", repo.ID)
		}
		seen[repo.ID] = struct{}{}
	}
	return nil
}
