package browser

// SessionOptions configures the browser launched for the process session.
type SessionOptions struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool

	// Viewport sets the initial viewport size
	Viewport *Viewport

	// SlowMo delays each browser operation by this many milliseconds
	SlowMo float64

	// Timeout sets the default timeout for page operations (in milliseconds)
	Timeout float64
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// NavigateOptions configures page navigation behavior.
type NavigateOptions struct {
	// WaitUntil specifies when to consider navigation successful
	// Valid values: "load", "domcontentloaded", "networkidle"
	WaitUntil string

	// Timeout in milliseconds (0 means default)
	Timeout float64
}

// FillOptions configures form input filling.
type FillOptions struct {
	// Timeout in milliseconds
	Timeout float64
}

// ClickOptions configures element clicking behavior.
type ClickOptions struct {
	// Timeout in milliseconds
	Timeout float64
}

// WaitOptions configures waiting for an element.
type WaitOptions struct {
	// State to wait for: "attached", "detached", "visible", "hidden"
	State string

	// Timeout in milliseconds
	Timeout float64
}

// Default values for browser operations
const (
	DefaultTimeout        = 30000.0 // 30 seconds in milliseconds
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
)
