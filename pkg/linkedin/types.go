package linkedin

// LoginResult is the structured outcome of one login attempt.
type LoginResult struct {
	// Success indicates the browser reached a recognized post-login page
	Success bool `json:"success"`

	// Message is a human-readable description of the terminal state
	Message string `json:"message"`

	// CurrentURL is the page URL when the attempt terminated
	CurrentURL string `json:"current_url,omitempty"`
}

// StatusResult is the structured outcome of one login-status check.
type StatusResult struct {
	// LoggedIn indicates the session holds an authenticated LinkedIn login
	LoggedIn bool `json:"logged_in"`

	// CurrentURL is the page URL the classification was made against
	CurrentURL string `json:"current_url"`
}

// Post is one scraped activity post.
type Post struct {
	ProfileID string `json:"profile_id"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ProfileInfo describes one profile card in people-search results.
type ProfileInfo struct {
	Name       string `json:"name"`
	ProfileURL string `json:"profile_url,omitempty"`
	ProfileID  string `json:"profile_id,omitempty"`
	Title      string `json:"title,omitempty"`
	Location   string `json:"location,omitempty"`
}

// ConnectionResult records the outcome of one connection request.
type ConnectionResult struct {
	Status  string       `json:"status"`
	Error   string       `json:"error,omitempty"`
	Profile *ProfileInfo `json:"profile,omitempty"`
}
