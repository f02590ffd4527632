package browser

// Driver is the capability surface the flows need from a browser page:
// navigate, fill, click, wait, and read page state. The production
// implementation drives a Playwright page; tests substitute stubs.
//
// Drivers are not safe for concurrent use. The session manager owns the
// single live driver and callers borrow it for one command at a time.
type Driver interface {
	// Navigate loads a URL in the page
	Navigate(url string, opts NavigateOptions) error

	// Fill sets the value of the input matching the selector
	Fill(selector, value string, opts FillOptions) error

	// Click clicks the element matching the selector
	Click(selector string, opts ClickOptions) error

	// WaitForSelector waits for an element to reach the requested state
	WaitForSelector(selector string, opts WaitOptions) error

	// URL returns the current page URL
	URL() string

	// Content returns the full HTML of the current page
	Content() (string, error)

	// Evaluate runs a JavaScript expression in the page and returns its result
	Evaluate(expression string) (interface{}, error)

	// Close releases the browser resources behind this driver
	Close() error
}

// Launcher produces a live Driver. The session manager calls it at most
// once per session; launch failure is reported to the caller, never retried.
type Launcher func() (Driver, error)
