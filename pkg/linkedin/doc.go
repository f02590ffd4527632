// Package linkedin implements the LinkedIn flows: login, login-status
// checks, activity-post scraping, and connection requests.
//
// # Flow model
//
// Each operation is a short deterministic procedure over the browser
// Driver. The login flow walks four stages: resolve credentials (explicit
// arguments first, environment second), navigate to the login page, fill
// and submit the form, then poll the page URL against the configured
// markers until a terminal outcome or the deadline. Classification is a
// pure function over the URL, with one tie-break rule: a challenge match
// always beats a success match, so a verification page is never reported
// as a successful login.
//
// # Error contract
//
// Login converts every failure into a failed LoginResult; nothing escapes
// as an error. The read and scrape flows return wrapped sentinel errors
// (ErrNavigation, ErrInteraction, ...) so callers can tell a broken
// browser from a logged-out session — a status check never reports
// "logged out" because the driver failed.
//
// Commands are serialized; the single page is not safe for concurrent
// navigation. The session stays open after a failed login so the page a
// command ended on can be inspected by the next one.
package linkedin
