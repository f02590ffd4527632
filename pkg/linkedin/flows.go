package linkedin

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/talentloop/linkscout/pkg/browser"
	"github.com/talentloop/linkscout/pkg/config"
	"github.com/talentloop/linkscout/pkg/logging"
)

// Flows implements the LinkedIn operations over the browser session.
// Commands are serialized: the single page is not safe for concurrent
// navigation, so one command runs to completion before the next starts.
type Flows struct {
	manager    *browser.SessionManager
	cfg        *config.LinkedInSection
	browserCfg *config.BrowserSection
	classifier *Classifier
	log        *logging.Logger
	cmdMu      sync.Mutex
}

// NewFlows creates the flow controller over the given session manager and
// configuration sections.
func NewFlows(manager *browser.SessionManager, cfg *config.LinkedInSection, browserCfg *config.BrowserSection) *Flows {
	log, _ := logging.NewLogger("flows")
	return &Flows{
		manager:    manager,
		cfg:        cfg,
		browserCfg: browserCfg,
		classifier: NewClassifier(cfg),
		log:        log,
	}
}

// Login performs one login attempt. Absent credential arguments fall back
// to the environment. Every failure is reported as a failed LoginResult;
// the session stays open regardless of outcome so its state can be
// inspected afterwards.
func (f *Flows) Login(ctx context.Context, email, password string) LoginResult {
	f.cmdMu.Lock()
	defer f.cmdMu.Unlock()

	return f.login(ctx, email, password)
}

// login runs the attempt. Caller must hold cmdMu.
func (f *Flows) login(ctx context.Context, email, password string) LoginResult {
	// Stage 1: resolve credentials before touching the browser.
	creds, err := config.ResolveCredentials(email, password)
	if err != nil {
		f.log.Warnf("Login aborted: missing credentials")
		return LoginResult{
			Success: false,
			Message: fmt.Sprintf("missing credentials: provide email and password or set %s and %s", config.EnvEmail, config.EnvPassword),
		}
	}

	drv, err := f.manager.Acquire()
	if err != nil {
		f.log.Errorf("Login aborted: %v", err)
		return LoginResult{Success: false, Message: err.Error()}
	}

	// Stage 2: navigate to the login page.
	f.log.Infof("Navigating to login page")
	navOpts := browser.NavigateOptions{
		WaitUntil: "domcontentloaded",
		Timeout:   f.browserCfg.NavigationTimeoutMs,
	}
	if err := drv.Navigate(f.cfg.LoginURL, navOpts); err != nil {
		f.log.Errorf("Login navigation failed: %v", err)
		return LoginResult{
			Success:    false,
			Message:    fmt.Sprintf("navigation error: %v", err),
			CurrentURL: drv.URL(),
		}
	}

	// Stage 3: fill the form and submit.
	fillOpts := browser.FillOptions{Timeout: f.browserCfg.OperationTimeoutMs}
	if err := drv.Fill(f.cfg.EmailSelector, creds.Email, fillOpts); err != nil {
		return f.interactionFailure(drv, "email field", err)
	}
	if err := drv.Fill(f.cfg.PasswordSelector, creds.Password, fillOpts); err != nil {
		return f.interactionFailure(drv, "password field", err)
	}
	clickOpts := browser.ClickOptions{Timeout: f.browserCfg.OperationTimeoutMs}
	if err := drv.Click(f.cfg.SubmitSelector, clickOpts); err != nil {
		return f.interactionFailure(drv, "submit button", err)
	}

	// Stage 4: wait for the redirect, bounded by the configured deadline.
	return f.awaitRedirect(ctx, drv)
}

// interactionFailure converts a form interaction error into a failed
// result. The element name is logged; the credential values never are.
func (f *Flows) interactionFailure(drv browser.Driver, element string, err error) LoginResult {
	f.log.Errorf("Login interaction with %s failed: %v", element, err)
	return LoginResult{
		Success:    false,
		Message:    fmt.Sprintf("form interaction error: %s: %v", element, err),
		CurrentURL: drv.URL(),
	}
}

// awaitRedirect polls the page URL until it classifies as a terminal
// outcome or the deadline elapses. Challenge beats success: a checkpoint
// page has left the login URL but is never a successful login.
func (f *Flows) awaitRedirect(ctx context.Context, drv browser.Driver) LoginResult {
	deadline := time.Now().Add(time.Duration(f.cfg.RedirectWaitMs) * time.Millisecond)
	interval := time.Duration(f.cfg.PollIntervalMs) * time.Millisecond

	for {
		url := drv.URL()

		switch f.classifier.Login(url) {
		case LoginChallenge:
			f.log.Warnf("Login hit a verification challenge at %s", url)
			return LoginResult{
				Success:    false,
				Message:    "checkpoint required: LinkedIn is asking for additional verification",
				CurrentURL: url,
			}
		case LoginSuccess:
			f.log.Infof("Login succeeded, landed on %s", url)
			return LoginResult{
				Success:    true,
				Message:    "logged in",
				CurrentURL: url,
			}
		}

		if time.Now().After(deadline) {
			if f.classifier.AtLogin(url) {
				f.log.Warnf("Login rejected: still on the login page after %s", time.Duration(f.cfg.RedirectWaitMs)*time.Millisecond)
				return LoginResult{
					Success:    false,
					Message:    "login rejected: still on the login page after the redirect wait",
					CurrentURL: url,
				}
			}
			f.log.Warnf("Login timed out at unrecognized URL %s", url)
			return LoginResult{
				Success:    false,
				Message:    "timeout: no recognized destination reached within the redirect wait",
				CurrentURL: url,
			}
		}

		select {
		case <-ctx.Done():
			f.log.Warnf("Login canceled while waiting for redirect: %v", ctx.Err())
			return LoginResult{
				Success:    false,
				Message:    fmt.Sprintf("timeout: %v while waiting for redirect", ctx.Err()),
				CurrentURL: url,
			}
		case <-time.After(interval):
		}
	}
}

// CheckStatus reports whether the session currently holds an authenticated
// login. A session is created if none exists. Driver failures are returned
// as errors, never coerced into a logged-out result.
func (f *Flows) CheckStatus(ctx context.Context) (StatusResult, error) {
	f.cmdMu.Lock()
	defer f.cmdMu.Unlock()

	return f.checkStatus(ctx)
}

// checkStatus runs the check. Caller must hold cmdMu.
func (f *Flows) checkStatus(ctx context.Context) (StatusResult, error) {
	drv, err := f.manager.Acquire()
	if err != nil {
		return StatusResult{}, err
	}

	url := drv.URL()

	// The current page already answers the question when it matches an
	// authenticated marker, the login page, or a challenge page. Probing
	// would clobber a checkpoint page a caller may want to inspect.
	if f.classifier.Authenticated(url) {
		return StatusResult{LoggedIn: true, CurrentURL: url}, nil
	}
	if f.classifier.AtLogin(url) || f.classifier.Login(url) == LoginChallenge {
		return StatusResult{LoggedIn: false, CurrentURL: url}, nil
	}

	// Inconclusive page (fresh session, unrelated site): probe the feed.
	// An unauthenticated session gets redirected away from it.
	f.log.Debugf("Status inconclusive at %s, probing %s", url, f.cfg.FeedURL)
	navOpts := browser.NavigateOptions{
		WaitUntil: "domcontentloaded",
		Timeout:   f.browserCfg.NavigationTimeoutMs,
	}
	if err := drv.Navigate(f.cfg.FeedURL, navOpts); err != nil {
		f.log.Errorf("Status probe navigation failed: %v", err)
		return StatusResult{}, fmt.Errorf("%w: %v", ErrNavigation, err)
	}

	landed := drv.URL()
	return StatusResult{
		LoggedIn:   f.classifier.Authenticated(landed),
		CurrentURL: landed,
	}, nil
}

// ensureLoggedIn verifies the session is authenticated, attempting a login
// with configured credentials when it is not. Caller must hold cmdMu.
func (f *Flows) ensureLoggedIn(ctx context.Context) error {
	status, err := f.checkStatus(ctx)
	if err != nil {
		return err
	}
	if status.LoggedIn {
		return nil
	}

	f.log.Infof("Session not authenticated, attempting login")
	result := f.login(ctx, "", "")
	if !result.Success {
		return fmt.Errorf("%w: %s", ErrNotLoggedIn, result.Message)
	}
	return nil
}
