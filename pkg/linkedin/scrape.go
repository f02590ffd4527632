package linkedin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/talentloop/linkscout/pkg/browser"
)

const (
	// postContainerSelector matches one activity post on a profile's
	// recent-activity page
	postContainerSelector = "div.feed-shared-update-v2"

	// postContentSelector matches the text body inside a post container
	postContentSelector = "div.update-components-text"

	// postTimestampSelector matches the post's relative timestamp
	postTimestampSelector = "time.artdeco-entity-lockup__caption"

	// defaultMaxPosts limits posts per profile when the caller passes zero
	defaultMaxPosts = 5

	// profileDelay is the rate-limit pause between profiles
	profileDelay = 3 * time.Second

	// scrollRounds bounds how many times the page is scrolled to trigger
	// lazy loading
	scrollRounds = 2

	// scrollSettle is how long to wait after each scroll for content
	scrollSettle = 2 * time.Second
)

// ScrapePosts collects recent activity posts from the given profiles,
// logging in first when the session is not authenticated. Profiles that
// fail to load are logged and skipped rather than aborting the batch.
func (f *Flows) ScrapePosts(ctx context.Context, profileIDs []string, maxPosts int) ([]Post, error) {
	f.cmdMu.Lock()
	defer f.cmdMu.Unlock()

	if len(profileIDs) == 0 {
		return nil, fmt.Errorf("at least one profile id is required")
	}
	if maxPosts <= 0 {
		maxPosts = defaultMaxPosts
	}

	if err := f.ensureLoggedIn(ctx); err != nil {
		return nil, err
	}

	drv, err := f.manager.Acquire()
	if err != nil {
		return nil, err
	}

	var allPosts []Post
	for i, profileID := range profileIDs {
		if i > 0 {
			if err := sleepCtx(ctx, profileDelay); err != nil {
				return allPosts, err
			}
		}

		posts, err := f.scrapeProfile(ctx, drv, profileID, maxPosts)
		if err != nil {
			f.log.Errorf("Skipping profile %s: %v", profileID, err)
			continue
		}

		allPosts = append(allPosts, posts...)
		f.log.Infof("Scraped %d posts from %s", len(posts), profileID)
	}

	return allPosts, nil
}

// scrapeProfile loads one profile's activity page and parses its posts.
func (f *Flows) scrapeProfile(ctx context.Context, drv browser.Driver, profileID string, maxPosts int) ([]Post, error) {
	activityURL := fmt.Sprintf("%s/%s/recent-activity/all/", f.cfg.ProfileBaseURL, profileID)
	navOpts := browser.NavigateOptions{
		WaitUntil: "domcontentloaded",
		Timeout:   f.browserCfg.NavigationTimeoutMs,
	}
	if err := drv.Navigate(activityURL, navOpts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNavigation, err)
	}

	waitOpts := browser.WaitOptions{
		State:   "visible",
		Timeout: f.browserCfg.OperationTimeoutMs,
	}
	if err := drv.WaitForSelector(postContainerSelector, waitOpts); err != nil {
		return nil, fmt.Errorf("no posts found: %w", err)
	}

	if err := f.scrollPage(ctx, drv); err != nil {
		return nil, err
	}

	html, err := drv.Content()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInteraction, err)
	}

	return parsePosts(html, profileID, maxPosts)
}

// scrollPage scrolls to the bottom a bounded number of times to trigger
// lazy loading, stopping early when the page height stops growing.
func (f *Flows) scrollPage(ctx context.Context, drv browser.Driver) error {
	previousHeight := -1.0
	for i := 0; i < scrollRounds; i++ {
		raw, err := drv.Evaluate("document.body.scrollHeight")
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInteraction, err)
		}
		height, ok := asNumber(raw)
		if !ok {
			return fmt.Errorf("%w: unexpected scroll height %v", ErrInteraction, raw)
		}

		if height == previousHeight {
			break
		}
		previousHeight = height

		if _, err := drv.Evaluate("window.scrollTo(0, document.body.scrollHeight)"); err != nil {
			return fmt.Errorf("%w: %v", ErrInteraction, err)
		}
		if err := sleepCtx(ctx, scrollSettle); err != nil {
			return err
		}
	}
	return nil
}

// parsePosts extracts posts from the activity page HTML. Only containers
// carrying an activity urn with non-empty text are kept.
func parsePosts(html, profileID string, maxPosts int) ([]Post, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	var posts []Post
	doc.Find(postContainerSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.Contains(s.AttrOr("data-urn", ""), "activity") {
			return true
		}

		content := strings.TrimSpace(s.Find(postContentSelector).First().Text())
		if content == "" {
			return true
		}

		posts = append(posts, Post{
			ProfileID: profileID,
			Content:   content,
			Timestamp: strings.TrimSpace(s.Find(postTimestampSelector).First().Text()),
		})
		return len(posts) < maxPosts
	})

	return posts, nil
}

// asNumber converts the numeric types a page evaluation may return.
func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// sleepCtx sleeps for the duration unless the context expires first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
