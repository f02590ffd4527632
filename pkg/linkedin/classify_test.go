package linkedin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talentloop/linkscout/pkg/config"
)

func defaultClassifier() *Classifier {
	return NewClassifier(config.NewLinkedInSection())
}

func TestClassifierLogin(t *testing.T) {
	c := defaultClassifier()

	tests := []struct {
		name string
		url  string
		want LoginOutcome
	}{
		{"feed is success", "https://www.linkedin.com/feed/", LoginSuccess},
		{"login page is pending", "https://www.linkedin.com/login", LoginPending},
		{"checkpoint is challenge", "https://www.linkedin.com/checkpoint/challenge/x", LoginChallenge},
		{"security verification is challenge", "https://www.linkedin.com/security-verification/v2", LoginChallenge},
		{"unknown url is pending", "https://www.linkedin.com/uas/whatever", LoginPending},
		{"blank page is pending", "about:blank", LoginPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Login(tt.url))
		})
	}
}

// A URL matching both marker sets must classify as a challenge; reporting
// success for a verification page would be a false positive.
func TestClassifierChallengeBeatsSuccess(t *testing.T) {
	c := defaultClassifier()

	url := "https://www.linkedin.com/checkpoint/challenge?redirect=/feed/"
	assert.Equal(t, LoginChallenge, c.Login(url))
	assert.False(t, c.Authenticated(url))
}

func TestClassifierAuthenticated(t *testing.T) {
	c := defaultClassifier()

	assert.True(t, c.Authenticated("https://www.linkedin.com/feed/"))
	assert.True(t, c.Authenticated("https://www.linkedin.com/mynetwork/"))
	assert.False(t, c.Authenticated("https://www.linkedin.com/login"))
	assert.False(t, c.Authenticated("about:blank"))
}

func TestClassifierAtLogin(t *testing.T) {
	c := defaultClassifier()

	assert.True(t, c.AtLogin("https://www.linkedin.com/login"))
	assert.True(t, c.AtLogin("https://www.linkedin.com/login?error=wrong_password"))
	assert.False(t, c.AtLogin("https://www.linkedin.com/feed/"))
}

func TestClassifierUsesConfiguredMarkers(t *testing.T) {
	cfg := config.NewLinkedInSection()
	cfg.SuccessMarkers = []string{"/home"}
	cfg.ChallengeMarkers = []string{"/verify"}
	c := NewClassifier(cfg)

	assert.Equal(t, LoginSuccess, c.Login("https://example.com/home"))
	assert.Equal(t, LoginChallenge, c.Login("https://example.com/verify"))
	assert.Equal(t, LoginPending, c.Login("https://www.linkedin.com/feed/"))
}
