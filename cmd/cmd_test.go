package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGitHub serves the two REST resources of the remote profile source.
func fakeGitHub(t *testing.T, failRepos bool) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/betomoedano", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"avatar_url":"a.png","public_repos":42,"followers":7}`)
	})
	mux.HandleFunc("/users/betomoedano/repos", func(w http.ResponseWriter, r *http.Request) {
		if failRepos {
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"message":"API rate limit exceeded"}`)
			return
		}
		fmt.Fprint(w, `[
			{"id":1,"name":"one","stargazers_count":10,"updated_at":"2024-03-01T10:00:00Z","html_url":"https://github.com/betomoedano/one"},
			{"id":2,"name":"two","stargazers_count":50,"description":"second","language":"Go","updated_at":"2024-03-01T10:00:00Z","html_url":"https://github.com/betomoedano/two"},
			{"id":3,"name":"three","stargazers_count":50,"updated_at":"2024-03-01T10:00:00Z","html_url":"https://github.com/betomoedano/three"},
			{"id":4,"name":"four","stargazers_count":5,"updated_at":"2024-03-01T10:00:00Z","html_url":"https://github.com/betomoedano/four"}
		]`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestShowCommand_JSON(t *testing.T) {
	server := fakeGitHub(t, false)
	t.Setenv("DEVFOLIO_API_URL", server.URL)
	t.Setenv("DEVFOLIO_SOURCE", "rest")

	out, err := run(t, "show", "--section", "all", "--json")
	require.NoError(t, err)

	var snapshot struct {
		Status string `json:"status"`
		View   struct {
			TotalStars      int `json:"total_stars"`
			TopRepositories []struct {
				ID          int64  `json:"id"`
				Description string `json:"description"`
				Language    string `json:"language"`
			} `json:"top_repositories"`
		} `json:"view"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &snapshot))
	assert.Equal(t, "ready", snapshot.Status)
	assert.Equal(t, 115, snapshot.View.TotalStars)
	require.Len(t, snapshot.View.TopRepositories, 4)
	assert.Equal(t, int64(2), snapshot.View.TopRepositories[0].ID)
	assert.Equal(t, int64(3), snapshot.View.TopRepositories[1].ID)
	assert.Equal(t, "No description available", snapshot.View.TopRepositories[1].Description)
	assert.Equal(t, "Unknown", snapshot.View.TopRepositories[1].Language)
}

func TestShowCommand_Text(t *testing.T) {
	server := fakeGitHub(t, false)
	t.Setenv("DEVFOLIO_API_URL", server.URL)
	t.Setenv("DEVFOLIO_SOURCE", "rest")

	out, err := run(t, "show", "--section", "projects", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Popular Repositories")
	assert.Contains(t, out, " 1. two ★ 50 [Go]")
}

func TestShowCommand_FailureIsAnError(t *testing.T) {
	server := fakeGitHub(t, true)
	t.Setenv("DEVFOLIO_API_URL", server.URL)
	t.Setenv("DEVFOLIO_SOURCE", "rest")

	_, err := run(t, "show", "--section", "all", "--json=false")
	assert.EqualError(t, err, "Failed to load data")
}

func TestShowCommand_UnknownSection(t *testing.T) {
	t.Setenv("DEVFOLIO_SOURCE", "rest")
	_, err := run(t, "show", "--section", "nope")
	assert.ErrorContains(t, err, "unknown section")
}

func TestLinksCommand(t *testing.T) {
	out, err := run(t, "links")
	require.NoError(t, err)
	assert.Contains(t, out, "https://bsky.app/profile/codewithbeto.dev")
	assert.Contains(t, out, "GitHub")
}

func TestShowCommand_AccountIsFixed(t *testing.T) {
	server := fakeGitHub(t, false)
	t.Setenv("DEVFOLIO_API_URL", server.URL)
	t.Setenv("DEVFOLIO_SOURCE", "rest")
	t.Setenv("DEVFOLIO_ACCOUNT", "octocat")

	// The fake only serves the fixed account, so a successful run proves the
	// environment variable is ignored.
	out, err := run(t, "show", "--section", "profile", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Followers:    7")

	_, err = run(t, "show", "--account", "octocat")
	assert.ErrorContains(t, err, "unknown flag")
}
