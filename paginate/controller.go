// Package paginate drives a browsing session through every page of a
// listing: it detects the total item count and the pagination strategy,
// then loops extraction and navigation with deduplication, a fixed
// inter-page delay, and a hard safety ceiling.
package paginate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aluiziolira/go-catalog-sync/browse"
	"github.com/aluiziolira/go-catalog-sync/models"
	"github.com/aluiziolira/go-catalog-sync/title"
)

// Strategy is how a listing advances to its next page.
type Strategy string

const (
	// StrategyButton pages via a clickable next control.
	StrategyButton Strategy = "button"
	// StrategyURLParam pages via URL mutation.
	StrategyURLParam Strategy = "url-param"
)

// ExtractFunc maps the driver's current page into raw entries. It must
// not deduplicate or normalize; the controller and the reconciliation
// engine own those.
type ExtractFunc func(drv browse.Driver) []models.Entry

// Options bound one traversal.
type Options struct {
	// Catalog labels logs and metric series.
	Catalog string
	// MaxPages is the safety ceiling on visited pages (default 50).
	MaxPages int
	// PageSize is the step for offset-style pagination (default 24).
	PageSize int
	// PageDelay is the fixed inter-page delay (default 2s).
	PageDelay time.Duration
	// NavTimeout bounds the wait for a URL change after navigation.
	NavTimeout time.Duration
	// SettleTimeout bounds the network-settled fallback wait.
	SettleTimeout time.Duration
}

func (o *Options) applyDefaults() {
	if o.MaxPages <= 0 {
		o.MaxPages = 50
	}
	if o.PageSize <= 0 {
		o.PageSize = 24
	}
	if o.PageDelay <= 0 {
		o.PageDelay = 2 * time.Second
	}
	if o.NavTimeout <= 0 {
		o.NavTimeout = 10 * time.Second
	}
	if o.SettleTimeout <= 0 {
		o.SettleTimeout = 5 * time.Second
	}
}

// Controller walks a live driver session through all pages of one
// listing. A controller invocation owns its traversal state outright;
// nothing is shared across invocations.
type Controller struct {
	drv     browse.Driver
	opts    Options
	metrics *Metrics
}

// New builds a controller over an already-positioned driver session.
func New(drv browse.Driver, opts Options, metrics *Metrics) *Controller {
	opts.applyDefaults()
	return &Controller{drv: drv, opts: opts, metrics: metrics}
}

// traversalState is threaded through one Run call and discarded after.
// Invariant: len(seen) == len(collected).
type traversalState struct {
	strategy  Strategy
	page      int
	expected  int // 0 = unbounded
	collected []models.Entry
	seen      map[string]struct{}
	warnings  []string
}

// Run traverses the listing the driver is currently positioned on
// (page 1) and returns the complete deduplicated entry sequence.
// Detection misses and per-page navigation faults degrade to warnings
// or early termination with the partial result, and context
// cancellation between steps stops the loop the same way; only
// session-level faults return an error.
func (c *Controller) Run(ctx context.Context, extract ExtractFunc) (*models.TraversalResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	st := &traversalState{
		page: 1,
		seen: make(map[string]struct{}),
	}
	st.expected, st.strategy = c.detect()

	slog.Info("traversal started",
		slog.String("catalog", c.opts.Catalog),
		slog.String("url", c.drv.CurrentURL()),
		slog.String("strategy", string(st.strategy)),
		slog.Int("expected_total", st.expected),
	)

	for {
		c.metrics.IncPage(c.opts.Catalog)
		c.collect(st, extract(c.drv))

		if st.expected > 0 && len(st.collected) >= st.expected {
			break
		}

		moved, err := c.advance(ctx, st)
		if err != nil {
			if ctx.Err() != nil {
				c.cancelStop(st)
				break
			}
			return nil, err
		}
		if !moved {
			break
		}

		st.page++
		if st.page > c.opts.MaxPages {
			st.warn("safety ceiling of %d pages reached, stopping traversal", c.opts.MaxPages)
			c.metrics.IncNavFailure(c.opts.Catalog, "safety_ceiling")
			break
		}
		if err := sleepCtx(ctx, c.opts.PageDelay); err != nil {
			c.cancelStop(st)
			break
		}
	}

	if st.expected > 0 && len(st.collected) != st.expected {
		st.warn("collected %d entries but the page reported %d", len(st.collected), st.expected)
	}

	end := time.Now()
	c.metrics.ObserveTraversal(c.opts.Catalog, end.Sub(start))
	for _, w := range st.warnings {
		slog.Warn("traversal warning", slog.String("catalog", c.opts.Catalog), slog.String("warning", w))
	}
	slog.Info("traversal finished",
		slog.String("catalog", c.opts.Catalog),
		slog.Int("pages", st.page),
		slog.Int("entries", len(st.collected)),
	)

	return &models.TraversalResult{
		Entries:       st.collected,
		PagesVisited:  st.page,
		ExpectedTotal: st.expected,
		Strategy:      string(st.strategy),
		Warnings:      st.warnings,
		StartTime:     start,
		EndTime:       end,
	}, nil
}

// detect runs the total-count probes and classifies the pagination
// strategy. Both fall back silently: unbounded total, button strategy.
func (c *Controller) detect() (int, Strategy) {
	total, probe := detectTotal(c.drv)
	if probe != "" {
		c.metrics.IncProbeHit(probe)
	}

	if HasPageMarker(c.drv.CurrentURL()) {
		return total, StrategyURLParam
	}
	// A visible next control confirms button paging; an ambiguous page
	// defaults to it as well, so the probe only informs the log.
	if _, _, ok := findNextControl(c.drv); !ok {
		slog.Debug("no next control on first page", slog.String("catalog", c.opts.Catalog))
	}
	return total, StrategyButton
}

// collect appends entries whose identity key is unseen.
func (c *Controller) collect(st *traversalState, entries []models.Entry) {
	added := 0
	for _, e := range entries {
		key := identityKey(e)
		if key == "" {
			continue
		}
		if _, dup := st.seen[key]; dup {
			c.metrics.IncDuplicate(c.opts.Catalog)
			continue
		}
		st.seen[key] = struct{}{}
		st.collected = append(st.collected, e)
		added++
	}
	c.metrics.IncEntries(c.opts.Catalog, added)
	slog.Debug("page extracted",
		slog.String("catalog", c.opts.Catalog),
		slog.Int("page", st.page),
		slog.Int("new_entries", added),
		slog.Int("total_entries", len(st.collected)),
	)
}

// advance moves the session to the next page. It returns false when
// pagination has ended; only session faults surface as errors.
func (c *Controller) advance(ctx context.Context, st *traversalState) (bool, error) {
	switch st.strategy {
	case StrategyURLParam:
		return c.advanceByURL(ctx)
	default:
		return c.advanceByClick(ctx)
	}
}

func (c *Controller) advanceByClick(ctx context.Context) (bool, error) {
	selector, element, found := findNextControl(c.drv)
	if !found {
		c.metrics.IncNavFailure(c.opts.Catalog, "no_next_control")
		return false, nil
	}
	if selector != "" {
		if c.drv.IsDisabled(selector) {
			c.metrics.IncNavFailure(c.opts.Catalog, "next_disabled")
			return false, nil
		}
	} else if elementDisabled(element) {
		c.metrics.IncNavFailure(c.opts.Catalog, "next_disabled")
		return false, nil
	}

	var err error
	if selector != "" {
		err = c.drv.Click(selector)
	} else {
		err = element.Click()
	}
	if err != nil {
		if browse.IsSessionFault(err) {
			return false, err
		}
		// Fall through the remaining selector patterns before giving up.
		if !c.clickAnyRemaining(selector) {
			slog.Debug("next control click failed",
				slog.String("catalog", c.opts.Catalog),
				slog.Any("error", err),
			)
			c.metrics.IncNavFailure(c.opts.Catalog, "click_failed")
			return false, nil
		}
	}

	// Resume on whichever completes first: URL change or network settle.
	// The loser is released through the shared context.
	waitCtx, cancelWaits := context.WithCancel(ctx)
	defer cancelWaits()
	waits := make(chan error, 2)
	go func() { waits <- c.drv.WaitForURLChange(waitCtx, c.opts.NavTimeout) }()
	go func() { waits <- c.drv.WaitForNetworkSettled(waitCtx, c.opts.SettleTimeout) }()
	if err := <-waits; err != nil {
		if err := <-waits; err != nil {
			slog.Debug("navigation waits expired, resuming anyway",
				slog.String("catalog", c.opts.Catalog),
			)
		}
	}
	return true, nil
}

// elementDisabled covers controls reached by label scan, which have no
// selector to hand to the driver.
func elementDisabled(el browse.Element) bool {
	if _, ok := el.Attr("disabled"); ok {
		return true
	}
	v, ok := el.Attr("aria-disabled")
	return ok && v == "true"
}

func (c *Controller) clickAnyRemaining(failed string) bool {
	for _, selector := range nextControlSelectors {
		if selector == failed || !c.drv.IsVisible(selector) || c.drv.IsDisabled(selector) {
			continue
		}
		if err := c.drv.Click(selector); err == nil {
			return true
		}
	}
	return false
}

func (c *Controller) advanceByURL(ctx context.Context) (bool, error) {
	next, err := NextURL(c.drv.CurrentURL(), c.opts.PageSize)
	if err != nil {
		c.metrics.IncNavFailure(c.opts.Catalog, "bad_url")
		return false, nil
	}

	opts := browse.LoadOptions{WaitMode: browse.WaitNetworkIdle, Timeout: c.opts.NavTimeout}
	if err := c.drv.Load(ctx, next, opts); err != nil {
		if browse.IsSessionFault(err) {
			return false, err
		}
		// Partial result is kept; a failed page load ends the traversal.
		slog.Debug("next page load failed",
			slog.String("catalog", c.opts.Catalog),
			slog.String("url", next),
			slog.Any("error", err),
		)
		c.metrics.IncNavFailure(c.opts.Catalog, "load_failed")
		return false, nil
	}
	return true, nil
}

// cancelStop records context cancellation; everything collected so far
// stays in the result.
func (c *Controller) cancelStop(st *traversalState) {
	st.warn("canceled after %d pages, keeping %d collected entries", st.page, len(st.collected))
	c.metrics.IncNavFailure(c.opts.Catalog, "canceled")
}

func (st *traversalState) warn(format string, args ...any) {
	st.warnings = append(st.warnings, fmt.Sprintf(format, args...))
}

// identityKey deduplicates entries within one traversal: the source
// URL when present, else the normalized title.
func identityKey(e models.Entry) string {
	if e.SourceURL != "" {
		return e.SourceURL
	}
	return title.Normalize(e.Title)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
