package browser

import (
	"fmt"
	"io"

	"github.com/playwright-community/playwright-go"
)

// playwrightDriver implements Driver over a Playwright Chromium page.
type playwrightDriver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
}

// NewPlaywrightLauncher returns a Launcher that installs and starts
// Playwright, launches Chromium, and opens one context with one page.
// Output from the Playwright runner is discarded so it cannot leak into
// the stdio transport.
func NewPlaywrightLauncher(opts SessionOptions) Launcher {
	return func() (Driver, error) {
		runOpts := &playwright.RunOptions{
			Verbose: false,
			Stdout:  io.Discard,
			Stderr:  io.Discard,
		}

		if err := playwright.Install(runOpts); err != nil {
			return nil, fmt.Errorf("failed to install playwright: %w", err)
		}

		pw, err := playwright.Run(runOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to start playwright: %w", err)
		}

		// Set defaults
		if opts.Viewport == nil {
			opts.Viewport = &Viewport{
				Width:  DefaultViewportWidth,
				Height: DefaultViewportHeight,
			}
		}
		if opts.Timeout == 0 {
			opts.Timeout = DefaultTimeout
		}

		launchOpts := playwright.BrowserTypeLaunchOptions{
			Headless: &opts.Headless,
		}
		if opts.SlowMo > 0 {
			launchOpts.SlowMo = &opts.SlowMo
		}
		browser, err := pw.Chromium.Launch(launchOpts)
		if err != nil {
			pw.Stop()
			return nil, fmt.Errorf("failed to launch browser: %w", err)
		}

		contextOpts := playwright.BrowserNewContextOptions{
			Viewport: &playwright.Size{
				Width:  opts.Viewport.Width,
				Height: opts.Viewport.Height,
			},
		}
		context, err := browser.NewContext(contextOpts)
		if err != nil {
			browser.Close()
			pw.Stop()
			return nil, fmt.Errorf("failed to create context: %w", err)
		}

		page, err := context.NewPage()
		if err != nil {
			context.Close()
			browser.Close()
			pw.Stop()
			return nil, fmt.Errorf("failed to create page: %w", err)
		}

		page.SetDefaultTimeout(opts.Timeout)

		return &playwrightDriver{
			pw:      pw,
			browser: browser,
			context: context,
			page:    page,
		}, nil
	}
}

// Navigate loads the URL in the page.
func (d *playwrightDriver) Navigate(url string, opts NavigateOptions) error {
	playwrightOpts := playwright.PageGotoOptions{}

	if opts.WaitUntil != "" {
		waitUntil := playwright.WaitUntilState(opts.WaitUntil)
		playwrightOpts.WaitUntil = &waitUntil
	}

	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	_, err := d.page.Goto(url, playwrightOpts)
	if err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	return nil
}

// Fill fills an input element with the specified value.
func (d *playwrightDriver) Fill(selector, value string, opts FillOptions) error {
	playwrightOpts := playwright.PageFillOptions{}

	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	if err := d.page.Fill(selector, value, playwrightOpts); err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}

	return nil
}

// Click clicks an element matching the selector.
func (d *playwrightDriver) Click(selector string, opts ClickOptions) error {
	playwrightOpts := playwright.PageClickOptions{}

	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	if err := d.page.Click(selector, playwrightOpts); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}

	return nil
}

// WaitForSelector waits for an element to reach the requested state.
func (d *playwrightDriver) WaitForSelector(selector string, opts WaitOptions) error {
	playwrightOpts := playwright.PageWaitForSelectorOptions{}

	if opts.State != "" {
		state := playwright.WaitForSelectorState(opts.State)
		playwrightOpts.State = &state
	}

	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	if _, err := d.page.WaitForSelector(selector, playwrightOpts); err != nil {
		return fmt.Errorf("wait failed: %w", err)
	}

	return nil
}

// URL returns the current page URL.
func (d *playwrightDriver) URL() string {
	return d.page.URL()
}

// Content returns the full HTML of the current page.
func (d *playwrightDriver) Content() (string, error) {
	content, err := d.page.Content()
	if err != nil {
		return "", fmt.Errorf("content extraction failed: %w", err)
	}
	return content, nil
}

// Evaluate runs a JavaScript expression in the page.
func (d *playwrightDriver) Evaluate(expression string) (interface{}, error) {
	result, err := d.page.Evaluate(expression)
	if err != nil {
		return nil, fmt.Errorf("evaluate failed: %w", err)
	}
	return result, nil
}

// Close releases the page, context, browser, and Playwright runtime.
// Errors from individual closes are ignored so cleanup always completes.
func (d *playwrightDriver) Close() error {
	_ = d.page.Close()
	_ = d.context.Close()
	_ = d.browser.Close()

	if err := d.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	return nil
}
