package linkedin

import (
	"strings"

	"github.com/talentloop/linkscout/pkg/config"
)

// LoginOutcome classifies a page URL observed while waiting for the
// post-submit redirect.
type LoginOutcome int

const (
	// LoginPending means the URL matches no terminal pattern yet
	LoginPending LoginOutcome = iota

	// LoginSuccess means the URL matches a post-login destination
	LoginSuccess

	// LoginChallenge means the URL matches a verification/checkpoint page
	LoginChallenge
)

// Classifier is a pure URL classifier built from the configured marker
// lists. Keeping it free of browser state makes the tie-break policy
// directly testable.
type Classifier struct {
	loginURL  string
	success   []string
	challenge []string
	loggedIn  []string
}

// NewClassifier builds a classifier from the LinkedIn section.
func NewClassifier(cfg *config.LinkedInSection) *Classifier {
	return &Classifier{
		loginURL:  cfg.LoginURL,
		success:   append([]string(nil), cfg.SuccessMarkers...),
		challenge: append([]string(nil), cfg.ChallengeMarkers...),
		loggedIn:  append([]string(nil), cfg.LoggedInMarkers...),
	}
}

// Login classifies a URL seen after submitting the login form. A challenge
// match always wins over a success match: landing on a verification page
// means the URL left the login page, and treating that as success would be
// a false positive.
func (c *Classifier) Login(url string) LoginOutcome {
	if matchesAny(url, c.challenge) {
		return LoginChallenge
	}
	if matchesAny(url, c.success) {
		return LoginSuccess
	}
	return LoginPending
}

// Authenticated reports whether a URL indicates an authenticated session.
// Challenge pages never count.
func (c *Classifier) Authenticated(url string) bool {
	if matchesAny(url, c.challenge) {
		return false
	}
	return matchesAny(url, c.loggedIn)
}

// AtLogin reports whether the URL is still the login page.
func (c *Classifier) AtLogin(url string) bool {
	return strings.HasPrefix(url, c.loginURL)
}

func matchesAny(url string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(url, marker) {
			return true
		}
	}
	return false
}
