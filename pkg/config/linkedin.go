package config

import (
	"fmt"
	"sync"
)

const (
	// SectionIDLinkedIn is the identifier for the LinkedIn flow section
	SectionIDLinkedIn = "linkedin"

	// Default values for LinkedIn flow settings. URL markers are substring
	// matches against the page URL; they track LinkedIn's current routing
	// and are expected to be overridden from the config file when it drifts.
	defaultLoginURL         = "https://www.linkedin.com/login"
	defaultFeedURL          = "https://www.linkedin.com/feed/"
	defaultProfileBaseURL   = "https://www.linkedin.com/in"
	defaultPeopleSearchURL  = "https://www.linkedin.com/search/results/people"
	defaultRedirectWaitMs   = 30000.0
	defaultPollIntervalMs   = 500.0
	defaultEmailSelector    = `input[id="username"]`
	defaultPasswordSelector = `input[id="password"]`
	defaultSubmitSelector   = `button[type="submit"]`
)

// LinkedInSection manages the URLs, selectors, and wait policy for the
// LinkedIn flows.
type LinkedInSection struct {
	LoginURL         string
	FeedURL          string
	ProfileBaseURL   string
	PeopleSearchURL  string
	SuccessMarkers   []string
	ChallengeMarkers []string
	LoggedInMarkers  []string
	RedirectWaitMs   float64
	PollIntervalMs   float64
	EmailSelector    string
	PasswordSelector string
	SubmitSelector   string
	mu               sync.RWMutex
}

// NewLinkedInSection creates a new LinkedIn section with default settings.
func NewLinkedInSection() *LinkedInSection {
	return &LinkedInSection{
		LoginURL:         defaultLoginURL,
		FeedURL:          defaultFeedURL,
		ProfileBaseURL:   defaultProfileBaseURL,
		PeopleSearchURL:  defaultPeopleSearchURL,
		SuccessMarkers:   []string{"/feed"},
		ChallengeMarkers: []string{"checkpoint", "security-verification"},
		LoggedInMarkers:  []string{"/feed", "mynetwork"},
		RedirectWaitMs:   defaultRedirectWaitMs,
		PollIntervalMs:   defaultPollIntervalMs,
		EmailSelector:    defaultEmailSelector,
		PasswordSelector: defaultPasswordSelector,
		SubmitSelector:   defaultSubmitSelector,
	}
}

// ID returns the section identifier.
func (s *LinkedInSection) ID() string {
	return SectionIDLinkedIn
}

// Data returns the current configuration data.
func (s *LinkedInSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"login_url":         s.LoginURL,
		"feed_url":          s.FeedURL,
		"profile_base_url":  s.ProfileBaseURL,
		"people_search_url": s.PeopleSearchURL,
		"success_markers":   append([]string(nil), s.SuccessMarkers...),
		"challenge_markers": append([]string(nil), s.ChallengeMarkers...),
		"logged_in_markers": append([]string(nil), s.LoggedInMarkers...),
		"redirect_wait_ms":  s.RedirectWaitMs,
		"poll_interval_ms":  s.PollIntervalMs,
		"email_selector":    s.EmailSelector,
		"password_selector": s.PasswordSelector,
		"submit_selector":   s.SubmitSelector,
	}
}

// SetData updates the configuration from the provided data.
func (s *LinkedInSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "login_url":
			if err := setString(&s.LoginURL, key, value); err != nil {
				return err
			}
		case "feed_url":
			if err := setString(&s.FeedURL, key, value); err != nil {
				return err
			}
		case "profile_base_url":
			if err := setString(&s.ProfileBaseURL, key, value); err != nil {
				return err
			}
		case "people_search_url":
			if err := setString(&s.PeopleSearchURL, key, value); err != nil {
				return err
			}
		case "success_markers":
			markers, err := asStringSlice(key, value)
			if err != nil {
				return err
			}
			s.SuccessMarkers = markers
		case "challenge_markers":
			markers, err := asStringSlice(key, value)
			if err != nil {
				return err
			}
			s.ChallengeMarkers = markers
		case "logged_in_markers":
			markers, err := asStringSlice(key, value)
			if err != nil {
				return err
			}
			s.LoggedInMarkers = markers
		case "redirect_wait_ms":
			f, err := asFloat(key, value)
			if err != nil {
				return err
			}
			s.RedirectWaitMs = f
		case "poll_interval_ms":
			f, err := asFloat(key, value)
			if err != nil {
				return err
			}
			s.PollIntervalMs = f
		case "email_selector":
			if err := setString(&s.EmailSelector, key, value); err != nil {
				return err
			}
		case "password_selector":
			if err := setString(&s.PasswordSelector, key, value); err != nil {
				return err
			}
		case "submit_selector":
			if err := setString(&s.SubmitSelector, key, value); err != nil {
				return err
			}
		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}

	return nil
}

// Validate validates the current configuration.
func (s *LinkedInSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.LoginURL == "" {
		return fmt.Errorf("login_url must not be empty")
	}

	if len(s.SuccessMarkers) == 0 {
		return fmt.Errorf("success_markers must not be empty")
	}

	if len(s.ChallengeMarkers) == 0 {
		return fmt.Errorf("challenge_markers must not be empty")
	}

	if s.RedirectWaitMs <= 0 {
		return fmt.Errorf("redirect_wait_ms must be positive, got %v", s.RedirectWaitMs)
	}

	if s.PollIntervalMs <= 0 {
		return fmt.Errorf("poll_interval_ms must be positive, got %v", s.PollIntervalMs)
	}

	return nil
}

func setString(dst *string, key string, value interface{}) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("invalid value type for %s: expected string, got %T", key, value)
	}
	*dst = str
	return nil
}

// asStringSlice converts YAML/JSON sequence values to []string.
func asStringSlice(key string, value interface{}) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...), nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("invalid item type in %s: expected string, got %T", key, item)
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("invalid value type for %s: expected list of strings, got %T", key, value)
	}
}
