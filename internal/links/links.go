// Package links holds the fixed identity of the portfolio owner and the
// outbound social links, and hands URLs off to the platform browser.
package links

import (
	"fmt"
	"strings"

	"github.com/pkg/browser"
	"go.uber.org/zap"
)

// Identity is the display name and role shown in the profile header.
type Identity struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Owner is the identity shown for the default account.
var Owner = Identity{Name: "Beto", Role: "Dev Success at Expo"}

// SocialLink is one entry of the connect screen.
type SocialLink struct {
	Platform string `json:"platform"`
	Username string `json:"username"`
	URL      string `json:"url"`
}

// Social lists the owner's profiles in display order.
var Social = []SocialLink{
	{Platform: "GitHub", Username: "betomoedano", URL: "https://github.com/betomoedano"},
	{Platform: "X", Username: "betomoedano", URL: "https://twitter.com/betomoedano"},
	{Platform: "Bluesky", Username: "codewithbeto.dev", URL: "https://bsky.app/profile/codewithbeto.dev"},
}

// Lookup finds a social link by platform name, ignoring case.
func Lookup(platform string) (SocialLink, error) {
	for _, link := range Social {
		if strings.EqualFold(link.Platform, platform) {
			return link, nil
		}
	}
	return SocialLink{}, fmt.Errorf("unknown platform %q", platform)
}

// ProfileURL returns the public GitHub page of account.
func ProfileURL(account string) string {
	return "https://github.com/" + account
}

// Opener hands a URL to an external handler.
type Opener interface {
	OpenURL(url string) error
}

// BrowserOpener opens URLs in the default system browser.
type BrowserOpener struct{}

func (BrowserOpener) OpenURL(url string) error {
	return browser.OpenURL(url)
}

// Launcher opens links fire-and-forget: failures are logged, never returned.
type Launcher struct {
	opener Opener
	logger *zap.Logger
}

// NewLauncher creates a Launcher. A nil opener selects BrowserOpener.
func NewLauncher(opener Opener, logger *zap.Logger) *Launcher {
	if opener == nil {
		opener = BrowserOpener{}
	}
	return &Launcher{opener: opener, logger: logger}
}

// Open hands url to the opener.
func (l *Launcher) Open(url string) {
	if url == "" {
		return
	}
	if err := l.opener.OpenURL(url); err != nil {
		l.logger.Warn("failed to open link", zap.String("url", url), zap.Error(err))
		return
	}
	l.logger.Debug("opened link", zap.String("url", url))
}
