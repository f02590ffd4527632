// Package browser provides the browser-automation backend for the
// LinkedIn flows, built on Playwright.
//
// The package is built around three concepts:
//
//  1. Driver: the capability surface a flow needs from a page
//     (navigate, fill, click, wait, read state)
//  2. Launcher: a factory producing a live Driver; the production
//     launcher installs Playwright and opens Chromium with one
//     context and one page
//  3. SessionManager: owner of the single process-wide session,
//     created lazily on first acquire and reused until release
//
// # Session Lifecycle
//
//  1. Acquire: returns the live driver, launching the browser on first use
//  2. Use: flows borrow the driver for the duration of one command
//  3. Release: closes the page, context, browser, and Playwright runtime
//
// At most one session exists at a time. A failed launch is reported to the
// calling command only; the next Acquire attempts a fresh launch. Release
// is a no-op when no session exists, so it is safe on every exit path.
package browser
