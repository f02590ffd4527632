package config

import (
	"fmt"
	"sync"
)

const (
	// SectionIDBrowser is the identifier for the browser settings section
	SectionIDBrowser = "browser"

	// Default values for browser settings
	defaultHeadless            = true
	defaultViewportWidth       = 1280
	defaultViewportHeight      = 720
	defaultSlowMoMs            = 100.0
	defaultNavigationTimeoutMs = 60000.0
	defaultOperationTimeoutMs  = 30000.0
)

// BrowserSection manages browser launch and timeout settings.
type BrowserSection struct {
	Headless            bool
	ViewportWidth       int
	ViewportHeight      int
	SlowMoMs            float64
	NavigationTimeoutMs float64
	OperationTimeoutMs  float64
	mu                  sync.RWMutex
}

// NewBrowserSection creates a new browser section with default settings.
func NewBrowserSection() *BrowserSection {
	return &BrowserSection{
		Headless:            defaultHeadless,
		ViewportWidth:       defaultViewportWidth,
		ViewportHeight:      defaultViewportHeight,
		SlowMoMs:            defaultSlowMoMs,
		NavigationTimeoutMs: defaultNavigationTimeoutMs,
		OperationTimeoutMs:  defaultOperationTimeoutMs,
	}
}

// ID returns the section identifier.
func (s *BrowserSection) ID() string {
	return SectionIDBrowser
}

// Data returns the current configuration data.
func (s *BrowserSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"headless":              s.Headless,
		"viewport_width":        s.ViewportWidth,
		"viewport_height":       s.ViewportHeight,
		"slow_mo_ms":            s.SlowMoMs,
		"navigation_timeout_ms": s.NavigationTimeoutMs,
		"operation_timeout_ms":  s.OperationTimeoutMs,
	}
}

// SetData updates the configuration from the provided data.
func (s *BrowserSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "headless":
			enabled, ok := value.(bool)
			if !ok {
				return fmt.Errorf("invalid value type for headless: expected bool, got %T", value)
			}
			s.Headless = enabled

		case "viewport_width":
			n, err := asInt(key, value)
			if err != nil {
				return err
			}
			s.ViewportWidth = n

		case "viewport_height":
			n, err := asInt(key, value)
			if err != nil {
				return err
			}
			s.ViewportHeight = n

		case "slow_mo_ms":
			f, err := asFloat(key, value)
			if err != nil {
				return err
			}
			s.SlowMoMs = f

		case "navigation_timeout_ms":
			f, err := asFloat(key, value)
			if err != nil {
				return err
			}
			s.NavigationTimeoutMs = f

		case "operation_timeout_ms":
			f, err := asFloat(key, value)
			if err != nil {
				return err
			}
			s.OperationTimeoutMs = f

		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}

	return nil
}

// Validate validates the current configuration.
func (s *BrowserSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.ViewportWidth <= 0 || s.ViewportHeight <= 0 {
		return fmt.Errorf("viewport dimensions must be positive, got %dx%d", s.ViewportWidth, s.ViewportHeight)
	}

	if s.NavigationTimeoutMs <= 0 {
		return fmt.Errorf("navigation_timeout_ms must be positive, got %v", s.NavigationTimeoutMs)
	}

	if s.OperationTimeoutMs <= 0 {
		return fmt.Errorf("operation_timeout_ms must be positive, got %v", s.OperationTimeoutMs)
	}

	return nil
}

// SetHeadless overrides the headless setting, used by the --headed flag.
func (s *BrowserSection) SetHeadless(headless bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Headless = headless
}

// asInt converts YAML/JSON numeric values to int.
func asInt(key string, value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("invalid value type for %s: expected number, got %T", key, value)
	}
}

// asFloat converts YAML/JSON numeric values to float64.
func asFloat(key string, value interface{}) (float64, error) {
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("invalid value type for %s: expected number, got %T", key, value)
	}
}
