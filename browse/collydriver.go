package browse

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/net/html"
)

const defaultCacheSize = 8

// DriverConfig holds construction options for CollyDriver.
type DriverConfig struct {
	// AllowedURL restricts fetching to that URL's host when set.
	AllowedURL string
	UserAgent  string
	Timeout    time.Duration
	// Transport overrides the HTTP transport, used by tests.
	Transport http.RoundTripper
	// CacheSize bounds the parsed-document cache (default 8).
	CacheSize int
}

type cachedPage struct {
	doc      *goquery.Document
	finalURL string
}

// CollyDriver implements Driver for server-rendered listings. Each
// Load fetches the URL through a synchronous colly collector, parses
// the body with goquery, and keeps the last few documents in an LRU so
// revisits of the current page do not refetch. The wait methods return
// immediately: a fetched document has already settled.
type CollyDriver struct {
	collector *colly.Collector
	cache     *lru.Cache[string, cachedPage]
	timeout   time.Duration

	current    *goquery.Document
	currentURL string

	pendingBody []byte
	pendingURL  string
	pendingErr  error

	loads  int
	closed bool
}

// NewCollyDriver builds a driver session from cfg.
func NewCollyDriver(cfg DriverConfig) (*CollyDriver, error) {
	opts := []colly.CollectorOption{}
	if cfg.UserAgent != "" {
		opts = append(opts, colly.UserAgent(cfg.UserAgent))
	}
	if cfg.AllowedURL != "" {
		parsed, err := url.Parse(cfg.AllowedURL)
		if err != nil {
			return nil, fmt.Errorf("parse allowed url: %w", err)
		}
		if parsed.Host == "" {
			return nil, fmt.Errorf("allowed url must include a host")
		}
		opts = append(opts, colly.AllowedDomains(parsed.Host))
	}

	collector := colly.NewCollector(opts...)
	collector.AllowURLRevisit = true
	collector.IgnoreRobotsTxt = true
	if cfg.Transport != nil {
		collector.WithTransport(cfg.Transport)
	} else {
		collector.WithTransport(&http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   cfg.Timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		})
	}

	size := cfg.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, cachedPage](size)
	if err != nil {
		return nil, fmt.Errorf("create page cache: %w", err)
	}

	d := &CollyDriver{
		collector: collector,
		cache:     cache,
		timeout:   cfg.Timeout,
	}
	collector.OnResponse(func(r *colly.Response) {
		d.pendingBody = r.Body
		d.pendingURL = r.Request.URL.String()
	})
	collector.OnError(func(r *colly.Response, err error) {
		d.pendingErr = err
	})
	return d, nil
}

// Load fetches rawURL and makes it the current page. A positive
// opts.Timeout overrides the session timeout for this fetch; WaitMode
// is ignored because a fetched document has already settled.
func (d *CollyDriver) Load(ctx context.Context, rawURL string, opts LoadOptions) error {
	if d.closed {
		return ErrSessionFault{Err: errors.New("driver is closed")}
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return ErrSessionFault{Err: err}
		}
	}

	if page, ok := d.cache.Get(rawURL); ok {
		d.current = page.doc
		d.currentURL = page.finalURL
		return nil
	}

	d.pendingBody = nil
	d.pendingURL = ""
	d.pendingErr = nil

	timeout := d.timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	d.collector.SetRequestTimeout(timeout)

	err := d.collector.Visit(rawURL)
	if err == nil {
		err = d.pendingErr
	}
	if err == nil && d.pendingBody == nil {
		err = errors.New("empty response")
	}
	if err != nil {
		return d.classifyLoadError(rawURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(d.pendingBody))
	if err != nil {
		return d.classifyLoadError(rawURL, fmt.Errorf("parse document: %w", err))
	}

	finalURL := d.pendingURL
	if finalURL == "" {
		finalURL = rawURL
	}
	d.cache.Add(rawURL, cachedPage{doc: doc, finalURL: finalURL})
	d.current = doc
	d.currentURL = finalURL
	d.loads++
	return nil
}

// A failure before any page ever loaded means the session itself is
// broken; afterwards it is a per-page navigation fault.
func (d *CollyDriver) classifyLoadError(rawURL string, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		err = ErrTimeout{Op: "load", Err: err}
	}
	if d.loads == 0 {
		return ErrSessionFault{Err: err}
	}
	return ErrNavigation{URL: rawURL, Err: err}
}

// CurrentURL returns the URL of the current page, after redirects.
func (d *CollyDriver) CurrentURL() string {
	return d.currentURL
}

// QueryText returns the whitespace-collapsed text of the first element
// matching the selector.
func (d *CollyDriver) QueryText(selector string) (string, bool) {
	if d.current == nil {
		return "", false
	}
	sel := d.current.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return strings.Join(strings.Fields(sel.Text()), " "), true
}

// QueryAll returns handles for every element matching the selector.
func (d *CollyDriver) QueryAll(selector string) []Element {
	if d.current == nil {
		return nil
	}
	var out []Element
	d.current.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		out = append(out, &collyElement{driver: d, sel: sel})
	})
	return out
}

// Click activates the first element matching the selector. Only
// href-carrying controls can navigate on a static document.
func (d *CollyDriver) Click(selector string) error {
	if d.current == nil {
		return ErrNavigation{Err: errors.New("no page loaded")}
	}
	sel := d.current.Find(selector).First()
	if sel.Length() == 0 {
		return ErrNavigation{Err: fmt.Errorf("no element matches %q", selector)}
	}
	return (&collyElement{driver: d, sel: sel}).Click()
}

// IsVisible reports whether the selector matches an element that is
// not hidden by attribute or inline style.
func (d *CollyDriver) IsVisible(selector string) bool {
	if d.current == nil {
		return false
	}
	sel := d.current.Find(selector).First()
	if sel.Length() == 0 {
		return false
	}
	if _, hidden := sel.Attr("hidden"); hidden {
		return false
	}
	if v, ok := sel.Attr("aria-hidden"); ok && v == "true" {
		return false
	}
	style, _ := sel.Attr("style")
	return !strings.Contains(strings.ReplaceAll(style, " ", ""), "display:none")
}

// IsDisabled reports whether the first matching element is disabled.
func (d *CollyDriver) IsDisabled(selector string) bool {
	if d.current == nil {
		return false
	}
	sel := d.current.Find(selector).First()
	if sel.Length() == 0 {
		return false
	}
	if _, ok := sel.Attr("disabled"); ok {
		return true
	}
	if v, ok := sel.Attr("aria-disabled"); ok && v == "true" {
		return true
	}
	class, _ := sel.Attr("class")
	for _, c := range strings.Fields(class) {
		if c == "disabled" || strings.HasSuffix(c, "--disabled") {
			return true
		}
	}
	return false
}

// WaitForNetworkSettled is a no-op for static documents.
func (d *CollyDriver) WaitForNetworkSettled(ctx context.Context, timeout time.Duration) error {
	if ctx != nil {
		return ctx.Err()
	}
	return nil
}

// WaitForURLChange is a no-op for static documents: navigation already
// completed synchronously inside Load or Click.
func (d *CollyDriver) WaitForURLChange(ctx context.Context, timeout time.Duration) error {
	if ctx != nil {
		return ctx.Err()
	}
	return nil
}

// Close releases the session. Further use returns a session fault.
func (d *CollyDriver) Close() error {
	d.closed = true
	d.current = nil
	d.cache.Purge()
	return nil
}

type collyElement struct {
	driver *CollyDriver
	sel    *goquery.Selection
}

// Text renders the element's text with newlines between child blocks,
// mirroring how a browser lays out tile markup line by line.
func (e *collyElement) Text() string {
	var lines []string
	for _, node := range e.sel.Nodes {
		lines = append(lines, nodeLines(node)...)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func nodeLines(n *html.Node) []string {
	if n.Type == html.TextNode {
		if text := strings.Join(strings.Fields(n.Data), " "); text != "" {
			return []string{text}
		}
		return nil
	}
	var lines []string
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		lines = append(lines, nodeLines(child)...)
	}
	return lines
}

func (e *collyElement) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e *collyElement) Find(selector string) []Element {
	var out []Element
	e.sel.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		out = append(out, &collyElement{driver: e.driver, sel: sel})
	})
	return out
}

// Click resolves the element's link target and loads it.
func (e *collyElement) Click() error {
	href, ok := e.sel.Attr("href")
	if !ok || href == "" {
		if anchors := e.Find("a"); len(anchors) > 0 {
			return anchors[0].Click()
		}
		return ErrNavigation{Err: errors.New("element has no link target")}
	}
	target, err := resolveURL(e.driver.currentURL, href)
	if err != nil {
		return ErrNavigation{URL: href, Err: err}
	}
	return e.driver.Load(context.Background(), target, LoadOptions{WaitMode: WaitLoad})
}

func resolveURL(base, href string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parse href: %w", err)
	}
	return baseURL.ResolveReference(ref).String(), nil
}
