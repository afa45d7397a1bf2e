package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"

	"github.com/naka-gawa/devfolio/internal/domain"
)

// GraphQLGateway is the Source backed by the GitHub GraphQL API.
// Unlike the REST API, it requires an authenticated client.
type GraphQLGateway struct {
	graphqlClient *githubv4.Client
	logger        *zap.Logger
}

// profileQuery mirrors the fields of GET /users/{account}.
type profileQuery struct {
	User struct {
		AvatarURL string `graphql:"avatarUrl"`
		Followers struct {
			TotalCount int
		}
		Repositories struct {
			TotalCount int
		} `graphql:"repositories(privacy: PUBLIC, ownerAffiliations: [OWNER])"`
	} `graphql:"user(login: $login)"`
}

// repositoriesQuery mirrors GET /users/{account}/repos?sort=stars.
type repositoriesQuery struct {
	User struct {
		Repositories struct {
			Nodes []struct {
				DatabaseID      int64 `graphql:"databaseId"`
				Name            string
				Description     *string
				StargazerCount  int
				PrimaryLanguage *struct {
					Name string
				}
				UpdatedAt githubv4.DateTime
				URL       string `graphql:"url"`
			}
		} `graphql:"repositories(first: $first, privacy: PUBLIC, ownerAffiliations: [OWNER], orderBy: {field: STARGAZERS, direction: DESC})"`
	} `graphql:"user(login: $login)"`
}

// NewGraphQLGateway creates a GraphQLGateway. An empty endpoint selects
// the public GitHub API.
func NewGraphQLGateway(endpoint string, httpClient *http.Client, logger *zap.Logger) *GraphQLGateway {
	client := githubv4.NewClient(httpClient)
	if endpoint != "" {
		client = githubv4.NewEnterpriseClient(endpoint, httpClient)
	}
	return &GraphQLGateway{
		graphqlClient: client,
		logger:        logger,
	}
}

func (g *GraphQLGateway) FetchProfile(ctx context.Context, account string) (*domain.Profile, error) {
	g.logger.Debug("fetching profile via GraphQL", zap.String("account", account))
	var q profileQuery
	variables := map[string]interface{}{"login": githubv4.String(account)}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL query for profile: %w", err)
	}
	return &domain.Profile{
		AvatarURL:       q.User.AvatarURL,
		PublicRepoCount: q.User.Repositories.TotalCount,
		FollowerCount:   q.User.Followers.TotalCount,
	}, nil
}

func (g *GraphQLGateway) FetchRepositories(ctx context.Context, account string, perPage int) ([]domain.SourceRepository, error) {
	g.logger.Debug("fetching repositories via GraphQL", zap.String("account", account), zap.Int("first", perPage))
	var q repositoriesQuery
	variables := map[string]interface{}{
		"login": githubv4.String(account),
		"first": githubv4.Int(perPage),
	}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL query for repositories: %w", err)
	}

	result := make([]domain.SourceRepository, 0, len(q.User.Repositories.Nodes))
	for _, node := range q.User.Repositories.Nodes {
		repo := domain.SourceRepository{
			ID:          node.DatabaseID,
			Name:        node.Name,
			Description: node.Description,
			StarCount:   node.StargazerCount,
			UpdatedAt:   node.UpdatedAt.Time,
			URL:         node.URL,
		}
		if node.PrimaryLanguage != nil {
			repo.Language = &node.PrimaryLanguage.Name
		}
		result = append(result, repo)
	}
	return result, nil
}
