package linkedin

import "errors"

// Error kinds surfaced by the flows. Login converts every one of these
// into a failed LoginResult; the read/scrape flows return them wrapped so
// callers can tell a broken browser from a logged-out session.
var (
	// ErrNavigation indicates a page load failed or timed out
	ErrNavigation = errors.New("navigation error")

	// ErrInteraction indicates an expected page element was missing or
	// not interactable (selector drift, layout change)
	ErrInteraction = errors.New("form interaction error")

	// ErrTimeout indicates the bounded wait for a redirect or marker elapsed
	ErrTimeout = errors.New("timed out waiting for redirect")

	// ErrChallenge indicates a verification/checkpoint page was reached;
	// never classified as success
	ErrChallenge = errors.New("checkpoint required")

	// ErrNotLoggedIn indicates an operation that needs an authenticated
	// session could not obtain one
	ErrNotLoggedIn = errors.New("not logged in")
)
