package linkedin

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/talentloop/linkscout/pkg/browser"
)

const (
	// connectButtonSelector matches Connect buttons in search results
	// (Playwright text matching; nth= picks one instance)
	connectButtonSelector = `button:has-text("Connect")`

	// Invitation dialog controls
	addNoteSelector         = `button[aria-label="Add a note"]`
	noteTextareaSelector    = `#custom-message`
	sendNowSelector         = `button[aria-label="Send now"]`
	sendWithoutNoteSelector = `button[aria-label="Send without a note"]`
	nextPageSelector        = `button[aria-label="Next"]`

	// maxSearchPages bounds pagination through search results
	maxSearchPages = 3

	// requestDelay is the pause between connection requests
	requestDelay = time.Second

	// pageSettle is the pause after loading a search results page
	pageSettle = 2 * time.Second
)

// connectButtonsCountJS counts Connect buttons in the page.
const connectButtonsCountJS = `Array.from(document.querySelectorAll('button')).filter(b => (b.textContent || '').trim().startsWith('Connect')).length`

// profileInfoJS extracts the profile card around the i-th Connect button.
const profileInfoJS = `(() => {
	const buttons = Array.from(document.querySelectorAll('button')).filter(b => (b.textContent || '').trim().startsWith('Connect'));
	const button = buttons[%d];
	if (!button) return null;
	const container = button.closest('.entity-result__item');
	if (!container) return null;
	const name = container.querySelector('.entity-result__title-text a');
	const title = container.querySelector('.entity-result__primary-subtitle');
	const location = container.querySelector('.entity-result__secondary-subtitle');
	return {
		name: name ? name.innerText.trim() : 'Unknown Profile',
		profileUrl: name ? name.href : '',
		title: title ? title.innerText.trim() : '',
		location: location ? location.innerText.trim() : ''
	};
})()`

// SendConnectionRequests searches people matching the query and sends up
// to maxConnections connection requests, optionally with a templated note.
// The note may reference {name}, {title}, and {location} from the profile
// card. Per-profile failures are recorded in the results, not fatal.
func (f *Flows) SendConnectionRequests(ctx context.Context, query string, maxConnections int, note string) ([]ConnectionResult, error) {
	f.cmdMu.Lock()
	defer f.cmdMu.Unlock()

	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	if maxConnections <= 0 {
		return nil, fmt.Errorf("max connections must be positive")
	}

	if err := f.ensureLoggedIn(ctx); err != nil {
		return nil, err
	}

	drv, err := f.manager.Acquire()
	if err != nil {
		return nil, err
	}

	searchURL := fmt.Sprintf("%s/?keywords=%s", f.cfg.PeopleSearchURL, url.QueryEscape(query))
	navOpts := browser.NavigateOptions{
		WaitUntil: "domcontentloaded",
		Timeout:   f.browserCfg.NavigationTimeoutMs,
	}
	if err := drv.Navigate(searchURL, navOpts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNavigation, err)
	}
	if err := sleepCtx(ctx, pageSettle); err != nil {
		return nil, err
	}

	var results []ConnectionResult
	for page := 0; page < maxSearchPages && len(results) < maxConnections; page++ {
		count, err := f.countConnectButtons(drv)
		if err != nil {
			return results, err
		}
		f.log.Debugf("Found %d connect buttons on page %d", count, page+1)

		for i := 0; i < count && len(results) < maxConnections; i++ {
			results = append(results, f.sendOneRequest(drv, i, note))
			if err := sleepCtx(ctx, requestDelay); err != nil {
				return results, err
			}
		}

		if len(results) >= maxConnections {
			break
		}

		moved, err := f.nextResultsPage(ctx, drv)
		if err != nil {
			return results, err
		}
		if !moved {
			f.log.Infof("No more search result pages")
			break
		}
	}

	return results, nil
}

// sendOneRequest extracts the i-th profile card and clicks through the
// invitation dialog. Failures become an error-status result.
func (f *Flows) sendOneRequest(drv browser.Driver, index int, note string) ConnectionResult {
	profile := f.extractProfile(drv, index)

	clickOpts := browser.ClickOptions{Timeout: f.browserCfg.OperationTimeoutMs}
	selector := fmt.Sprintf("%s >> nth=%d", connectButtonSelector, index)
	if err := drv.Click(selector, clickOpts); err != nil {
		return ConnectionResult{Status: "error", Error: err.Error(), Profile: profile}
	}

	if note != "" {
		formatted := expandNote(note, profile)
		if err := drv.Click(addNoteSelector, clickOpts); err != nil {
			return ConnectionResult{Status: "error", Error: err.Error(), Profile: profile}
		}
		fillOpts := browser.FillOptions{Timeout: f.browserCfg.OperationTimeoutMs}
		if err := drv.Fill(noteTextareaSelector, formatted, fillOpts); err != nil {
			return ConnectionResult{Status: "error", Error: err.Error(), Profile: profile}
		}
		if err := drv.Click(sendNowSelector, clickOpts); err != nil {
			return ConnectionResult{Status: "error", Error: err.Error(), Profile: profile}
		}
	} else {
		if err := drv.Click(sendWithoutNoteSelector, clickOpts); err != nil {
			return ConnectionResult{Status: "error", Error: err.Error(), Profile: profile}
		}
	}

	return ConnectionResult{Status: "success", Profile: profile}
}

// countConnectButtons counts Connect buttons currently in the page.
func (f *Flows) countConnectButtons(drv browser.Driver) (int, error) {
	raw, err := drv.Evaluate(connectButtonsCountJS)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInteraction, err)
	}
	n, ok := asNumber(raw)
	if !ok {
		return 0, fmt.Errorf("%w: unexpected button count %v", ErrInteraction, raw)
	}
	return int(n), nil
}

// extractProfile reads the profile card around the index-th Connect
// button. A missing card is logged, not fatal; the request proceeds with
// no profile attached.
func (f *Flows) extractProfile(drv browser.Driver, index int) *ProfileInfo {
	raw, err := drv.Evaluate(fmt.Sprintf(profileInfoJS, index))
	if err != nil {
		f.log.Warnf("Profile extraction failed for result %d: %v", index, err)
		return nil
	}

	card, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}

	profile := &ProfileInfo{
		Name:       stringField(card, "name"),
		ProfileURL: stringField(card, "profileUrl"),
		Title:      stringField(card, "title"),
		Location:   stringField(card, "location"),
	}
	profile.ProfileID = profileIDFromURL(profile.ProfileURL)
	return profile
}

// nextResultsPage advances to the next page of search results, returning
// false when there is none.
func (f *Flows) nextResultsPage(ctx context.Context, drv browser.Driver) (bool, error) {
	raw, err := drv.Evaluate(fmt.Sprintf("document.querySelector(%q) !== null", nextPageSelector))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInteraction, err)
	}
	present, _ := raw.(bool)
	if !present {
		return false, nil
	}

	clickOpts := browser.ClickOptions{Timeout: f.browserCfg.OperationTimeoutMs}
	if err := drv.Click(nextPageSelector, clickOpts); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInteraction, err)
	}
	if err := sleepCtx(ctx, pageSettle); err != nil {
		return false, err
	}
	return true, nil
}

// expandNote substitutes {name}, {title}, and {location} placeholders.
// Missing profile fields fall back to bracketed labels rather than
// leaving raw placeholders in the sent note.
func expandNote(note string, profile *ProfileInfo) string {
	name, title, location := "[Name]", "[Title]", "[Location]"
	if profile != nil {
		if profile.Name != "" {
			name = profile.Name
		}
		if profile.Title != "" {
			title = profile.Title
		}
		if profile.Location != "" {
			location = profile.Location
		}
	}

	return strings.NewReplacer(
		"{name}", name,
		"{title}", title,
		"{location}", location,
	).Replace(note)
}

// profileIDFromURL pulls the vanity id out of a /in/ profile URL.
func profileIDFromURL(profileURL string) string {
	_, after, found := strings.Cut(profileURL, "/in/")
	if !found {
		return ""
	}
	id, _, _ := strings.Cut(after, "/")
	return id
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}
