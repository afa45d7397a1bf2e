package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/devfolio/internal/domain"
	"github.com/naka-gawa/devfolio/internal/links"
	"github.com/naka-gawa/devfolio/internal/viewstate"
)

const (
	sectionAll      = "all"
	sectionProfile  = "profile"
	sectionProjects = "projects"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Fetches the portfolio once and prints it",
	Long: `Fetches the profile and repositories once and prints the result.
--section selects the combined view (all), the profile only or the
repository list only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cmd)
		defer logger.Sync() //nolint:errcheck

		aggregator, err := newAggregator(cfg, logger)
		if err != nil {
			return err
		}

		section, _ := cmd.Flags().GetString("section")
		asJSON, _ := cmd.Flags().GetBool("json")
		out := cmd.OutOrStdout()
		ctx := cmd.Context()

		switch section {
		case sectionAll:
			holder := viewstate.New(aggregator.Fetch, viewstate.WithLogger[*domain.AggregateView](logger))
			defer holder.Close()
			return render(out, holder.Load(ctx), asJSON, func(v *domain.AggregateView) { printAggregate(out, v) })
		case sectionProfile:
			holder := viewstate.New(aggregator.FetchProfile, viewstate.WithLogger[*domain.Profile](logger))
			defer holder.Close()
			return render(out, holder.Load(ctx), asJSON, func(p *domain.Profile) { printProfile(out, *p) })
		case sectionProjects:
			holder := viewstate.New(aggregator.FetchProjects, viewstate.WithLogger[[]domain.Repository](logger))
			defer holder.Close()
			return render(out, holder.Load(ctx), asJSON, func(r []domain.Repository) { printRepositories(out, r) })
		default:
			return fmt.Errorf("unknown section %q (want %s, %s or %s)", section, sectionAll, sectionProfile, sectionProjects)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringP("section", "s", sectionAll, "What to show: all, profile or projects")
	showCmd.Flags().Bool("json", false, "Print the view state as JSON")
}

// render prints snapshot as JSON or as text. An error state becomes the
// command error.
func render[T any](out io.Writer, snapshot viewstate.Snapshot[T], asJSON bool, text func(T)) error {
	if asJSON {
		// Marshal the results into a pretty-printed JSON string.
		jsonData, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results to JSON: %w", err)
		}
		fmt.Fprintln(out, string(jsonData))
	} else if snapshot.Status == viewstate.StatusReady {
		text(snapshot.View)
	}
	if snapshot.Status == viewstate.StatusError {
		return fmt.Errorf("%s", snapshot.Error)
	}
	return nil
}

func printAggregate(out io.Writer, view *domain.AggregateView) {
	printProfile(out, view.Profile)
	fmt.Fprintf(out, "Total stars:  %s (median %.1f per repository)\n",
		humanize.Comma(int64(view.TotalStars)), view.StarStats.Median)
	fmt.Fprintln(out)
	printRepositories(out, view.TopRepositories)
}

func printProfile(out io.Writer, profile domain.Profile) {
	fmt.Fprintf(out, "%s, %s\n", links.Owner.Name, links.Owner.Role)
	fmt.Fprintf(out, "Avatar:       %s\n", profile.AvatarURL)
	fmt.Fprintf(out, "Repositories: %s\n", humanize.Comma(int64(profile.PublicRepoCount)))
	fmt.Fprintf(out, "Followers:    %s\n", humanize.Comma(int64(profile.FollowerCount)))
}

func printRepositories(out io.Writer, repos []domain.Repository) {
	fmt.Fprintln(out, "Popular Repositories")
	if len(repos) == 0 {
		fmt.Fprintln(out, "  (none)")
		return
	}
	for i, repo := range repos {
		fmt.Fprintf(out, "%2d. %s ★ %s [%s] updated %s\n", i+1, repo.Name,
			humanize.Comma(int64(repo.StarCount)), repo.Language, humanize.Time(repo.UpdatedAt))
		fmt.Fprintf(out, "    %s\n", strings.TrimSpace(repo.Description))
		fmt.Fprintf(out, "    %s\n", repo.URL)
	}
}
