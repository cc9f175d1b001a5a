// Package browse defines the page-driving capability the pagination
// controller runs against, plus an implementation for server-rendered
// listings backed by colly and goquery.
package browse

import (
	"context"
	"time"
)

// WaitMode selects what Load waits for before returning.
type WaitMode string

const (
	// WaitLoad returns once the document has been fetched and parsed.
	WaitLoad WaitMode = "load"
	// WaitNetworkIdle additionally waits for in-flight requests to
	// settle. Static drivers treat this the same as WaitLoad.
	WaitNetworkIdle WaitMode = "network-idle"
)

// LoadOptions bound a single page load.
type LoadOptions struct {
	WaitMode WaitMode
	Timeout  time.Duration
}

// Element is a handle onto a rendered page element.
type Element interface {
	// Text returns the element's visible text, trimmed.
	Text() string
	// Attr returns the named attribute and whether it exists.
	Attr(name string) (string, bool)
	// Find returns descendant elements matching the selector.
	Find(selector string) []Element
	// Click activates the element and navigates if it links anywhere.
	Click() error
}

// Driver is a stateful browsing session over one listing. It is not
// safe for concurrent use: one navigation or query at a time.
type Driver interface {
	Load(ctx context.Context, url string, opts LoadOptions) error
	CurrentURL() string
	QueryText(selector string) (string, bool)
	QueryAll(selector string) []Element
	Click(selector string) error
	IsVisible(selector string) bool
	IsDisabled(selector string) bool
	WaitForNetworkSettled(ctx context.Context, timeout time.Duration) error
	WaitForURLChange(ctx context.Context, timeout time.Duration) error
	Close() error
}
