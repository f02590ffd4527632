package linkedin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentloop/linkscout/pkg/browser"
	"github.com/talentloop/linkscout/pkg/config"
)

// fakeDriver simulates a browser page as a URL state machine: navigation
// lands on a mapped URL, clicking the submit button jumps to a configured
// post-submit URL.
type fakeDriver struct {
	url           string
	navigations   []string
	fills         []string
	clicks        []string
	closed        int
	postSubmitURL string
	landings      map[string]string
	navErr        error
	fillErr       error
	clickErr      error
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		url:      "about:blank",
		landings: make(map[string]string),
	}
}

func (d *fakeDriver) Navigate(url string, opts browser.NavigateOptions) error {
	d.navigations = append(d.navigations, url)
	if d.navErr != nil {
		return d.navErr
	}
	if landed, ok := d.landings[url]; ok {
		d.url = landed
	} else {
		d.url = url
	}
	return nil
}

func (d *fakeDriver) Fill(selector, value string, opts browser.FillOptions) error {
	d.fills = append(d.fills, selector)
	return d.fillErr
}

func (d *fakeDriver) Click(selector string, opts browser.ClickOptions) error {
	d.clicks = append(d.clicks, selector)
	if d.clickErr != nil {
		return d.clickErr
	}
	if selector == `button[type="submit"]` && d.postSubmitURL != "" {
		d.url = d.postSubmitURL
	}
	return nil
}

func (d *fakeDriver) WaitForSelector(selector string, opts browser.WaitOptions) error { return nil }
func (d *fakeDriver) URL() string                                                     { return d.url }
func (d *fakeDriver) Content() (string, error)                                        { return "", nil }
func (d *fakeDriver) Evaluate(expression string) (interface{}, error)                 { return nil, nil }
func (d *fakeDriver) Close() error                                                    { d.closed++; return nil }

// testFlows wires a Flows over a fake driver with short wait policy.
func testFlows(t *testing.T, driver *fakeDriver) (*Flows, *int) {
	t.Helper()

	launches := 0
	manager := browser.NewSessionManager(func() (browser.Driver, error) {
		launches++
		return driver, nil
	})

	cfg := config.NewLinkedInSection()
	cfg.RedirectWaitMs = 30
	cfg.PollIntervalMs = 5

	return NewFlows(manager, cfg, config.NewBrowserSection()), &launches
}

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvEmail, "")
	t.Setenv(config.EnvPassword, "")
}

func TestLogin_MissingCredentialsFailsFast(t *testing.T) {
	clearCredentialEnv(t)

	manager := browser.NewSessionManager(func() (browser.Driver, error) {
		t.Fatal("browser must not launch when credentials are missing")
		return nil, nil
	})
	flows := NewFlows(manager, config.NewLinkedInSection(), config.NewBrowserSection())

	result := flows.Login(context.Background(), "", "")

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "missing credentials")
	assert.False(t, manager.Active())
}

func TestLogin_Success(t *testing.T) {
	driver := newFakeDriver()
	driver.postSubmitURL = "https://www.linkedin.com/feed/"
	flows, _ := testFlows(t, driver)

	result := flows.Login(context.Background(), "user@example.com", "secret")

	require.True(t, result.Success, "message: %s", result.Message)
	assert.Equal(t, "https://www.linkedin.com/feed/", result.CurrentURL)

	// Navigated once to the login page, filled both fields, clicked submit.
	require.Len(t, driver.navigations, 1)
	assert.Len(t, driver.fills, 2)
	assert.Len(t, driver.clicks, 1)
}

func TestLogin_ChallengeNeverSuccess(t *testing.T) {
	driver := newFakeDriver()
	driver.postSubmitURL = "https://www.linkedin.com/checkpoint/challenge/abc"
	flows, _ := testFlows(t, driver)

	result := flows.Login(context.Background(), "user@example.com", "secret")

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "checkpoint required")
	assert.Equal(t, driver.postSubmitURL, result.CurrentURL)
}

func TestLogin_RejectedStaysOnLoginPage(t *testing.T) {
	driver := newFakeDriver()
	// No post-submit URL: the page never leaves the login URL.
	flows, _ := testFlows(t, driver)

	result := flows.Login(context.Background(), "user@example.com", "wrong")

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "login rejected")
}

func TestLogin_TimeoutOnUnrecognizedURL(t *testing.T) {
	driver := newFakeDriver()
	driver.postSubmitURL = "https://www.linkedin.com/uas/consumer-email-challenge-unknown"
	flows, _ := testFlows(t, driver)

	result := flows.Login(context.Background(), "user@example.com", "secret")

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "timeout")
}

func TestLogin_NavigationError(t *testing.T) {
	driver := newFakeDriver()
	driver.navErr = errors.New("net::ERR_NAME_NOT_RESOLVED")
	flows, _ := testFlows(t, driver)

	result := flows.Login(context.Background(), "user@example.com", "secret")

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "navigation error")
	assert.Empty(t, driver.fills, "form must not be touched after failed navigation")
}

func TestLogin_InteractionError(t *testing.T) {
	driver := newFakeDriver()
	driver.fillErr = errors.New("selector not found")
	flows, _ := testFlows(t, driver)

	result := flows.Login(context.Background(), "user@example.com", "secret")

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "form interaction error")
	assert.NotContains(t, result.Message, "secret", "message must not leak the password")
}

func TestLogin_SessionStaysOpenAfterFailure(t *testing.T) {
	driver := newFakeDriver()
	driver.postSubmitURL = "https://www.linkedin.com/checkpoint/challenge/abc"
	flows, _ := testFlows(t, driver)

	result := flows.Login(context.Background(), "user@example.com", "secret")

	require.False(t, result.Success)
	assert.Zero(t, driver.closed, "failed login must not tear down the session")
}

func TestCheckStatus_CreatesExactlyOneSession(t *testing.T) {
	driver := newFakeDriver()
	driver.landings["https://www.linkedin.com/feed/"] = "https://www.linkedin.com/feed/"
	flows, launches := testFlows(t, driver)

	first, err := flows.CheckStatus(context.Background())
	require.NoError(t, err)

	second, err := flows.CheckStatus(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, *launches, "acquire must reuse the session")
	assert.Equal(t, first.LoggedIn, second.LoggedIn, "read-only check must be stable")
	assert.True(t, first.LoggedIn)
}

func TestCheckStatus_LoggedOutRedirect(t *testing.T) {
	driver := newFakeDriver()
	driver.landings["https://www.linkedin.com/feed/"] = "https://www.linkedin.com/login?redirect=feed"
	flows, _ := testFlows(t, driver)

	status, err := flows.CheckStatus(context.Background())
	require.NoError(t, err)

	assert.False(t, status.LoggedIn)
}

func TestCheckStatus_DriverErrorIsNotLoggedOut(t *testing.T) {
	driver := newFakeDriver()
	driver.navErr = errors.New("browser crashed")
	flows, _ := testFlows(t, driver)

	_, err := flows.CheckStatus(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNavigation)
}

func TestCheckStatus_ChallengePageIsLoggedOut(t *testing.T) {
	driver := newFakeDriver()
	driver.url = "https://www.linkedin.com/checkpoint/challenge/abc"
	flows, _ := testFlows(t, driver)

	status, err := flows.CheckStatus(context.Background())
	require.NoError(t, err)

	assert.False(t, status.LoggedIn)
	assert.Empty(t, driver.navigations, "conclusive page must not be clobbered by a probe")
}

func TestShutdown_ClosesBrowserOnce(t *testing.T) {
	driver := newFakeDriver()
	driver.postSubmitURL = "https://www.linkedin.com/checkpoint/challenge/abc"

	launches := 0
	manager := browser.NewSessionManager(func() (browser.Driver, error) {
		launches++
		return driver, nil
	})
	cfg := config.NewLinkedInSection()
	cfg.RedirectWaitMs = 30
	cfg.PollIntervalMs = 5
	flows := NewFlows(manager, cfg, config.NewBrowserSection())

	// Command fails, then the process shuts down.
	result := flows.Login(context.Background(), "user@example.com", "secret")
	require.False(t, result.Success)

	require.NoError(t, manager.Release())
	require.NoError(t, manager.Release())
	assert.Equal(t, 1, driver.closed)
}

func TestScrapePosts_RequiresProfiles(t *testing.T) {
	driver := newFakeDriver()
	flows, _ := testFlows(t, driver)

	_, err := flows.ScrapePosts(context.Background(), nil, 5)
	assert.Error(t, err)
}

func TestScrapePosts_FailsWhenLoginImpossible(t *testing.T) {
	clearCredentialEnv(t)

	driver := newFakeDriver()
	driver.landings["https://www.linkedin.com/feed/"] = "https://www.linkedin.com/login?redirect=feed"
	flows, _ := testFlows(t, driver)

	_, err := flows.ScrapePosts(context.Background(), []string{"someone"}, 5)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestSendConnectionRequests_Validation(t *testing.T) {
	driver := newFakeDriver()
	flows, _ := testFlows(t, driver)

	_, err := flows.SendConnectionRequests(context.Background(), "", 5, "")
	assert.Error(t, err)

	_, err = flows.SendConnectionRequests(context.Background(), "golang", 0, "")
	assert.Error(t, err)
}
