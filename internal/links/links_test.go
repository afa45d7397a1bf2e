package links

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockOpener struct {
	mock.Mock
}

func (m *mockOpener) OpenURL(url string) error {
	return m.Called(url).Error(0)
}

func TestLookup(t *testing.T) {
	testCases := []struct {
		name        string
		platform    string
		expectedURL string
		expectError bool
	}{
		{name: "exact", platform: "GitHub", expectedURL: "https://github.com/betomoedano"},
		{name: "case-insensitive", platform: "bluesky", expectedURL: "https://bsky.app/profile/codewithbeto.dev"},
		{name: "x", platform: "X", expectedURL: "https://twitter.com/betomoedano"},
		{name: "unknown", platform: "myspace", expectError: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			link, err := Lookup(tc.platform)
			if tc.expectError {
				assert.ErrorContains(t, err, "unknown platform")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedURL, link.URL)
		})
	}
}

func TestProfileURL(t *testing.T) {
	assert.Equal(t, "https://github.com/octocat", ProfileURL("octocat"))
}

func TestLauncher_Open(t *testing.T) {
	opener := new(mockOpener)
	opener.On("OpenURL", "https://github.com/betomoedano").Return(nil)
	opener.On("OpenURL", "https://broken.example").Return(errors.New("no browser"))

	launcher := NewLauncher(opener, zap.NewNop())
	launcher.Open("https://github.com/betomoedano")
	launcher.Open("https://broken.example")
	launcher.Open("")

	opener.AssertExpectations(t)
	opener.AssertNumberOfCalls(t, "OpenURL", 2)
}
