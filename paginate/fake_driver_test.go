package paginate

import (
	"context"
	"errors"
	"time"

	"github.com/aluiziolira/go-catalog-sync/browse"
	"github.com/aluiziolira/go-catalog-sync/models"
)

// fakePage scripts one listing page for the fake driver.
type fakePage struct {
	url          string
	bodyText     string
	entries      []models.Entry
	hasNext      bool
	nextDisabled bool
	// labelNext hides the next control from the selector patterns and
	// exposes it only as a labelled anchor.
	labelNext string
}

// fakeDriver is a scripted browse.Driver for controller tests.
type fakeDriver struct {
	pages    []fakePage
	index    int
	failLoad map[string]error
	clicks   int
	loads    int
	// blockURLWait makes WaitForURLChange hang until its context is
	// canceled, as a browser driver would on a same-URL click.
	blockURLWait bool
}

func (d *fakeDriver) page() fakePage {
	return d.pages[d.index]
}

func (d *fakeDriver) Load(ctx context.Context, url string, opts browse.LoadOptions) error {
	d.loads++
	if err := ctx.Err(); err != nil {
		return browse.ErrSessionFault{Err: err}
	}
	if err, ok := d.failLoad[url]; ok {
		return err
	}
	for i, p := range d.pages {
		if p.url == url {
			d.index = i
			return nil
		}
	}
	return browse.ErrNavigation{URL: url, Err: errors.New("no such page")}
}

func (d *fakeDriver) CurrentURL() string {
	return d.page().url
}

func (d *fakeDriver) QueryText(selector string) (string, bool) {
	if selector == "body" && d.page().bodyText != "" {
		return d.page().bodyText, true
	}
	return "", false
}

func (d *fakeDriver) QueryAll(selector string) []browse.Element {
	if selector == "a, button" && d.page().labelNext != "" {
		el := &fakeElement{driver: d, text: d.page().labelNext}
		if d.page().nextDisabled {
			el.attrs = map[string]string{"aria-disabled": "true"}
		}
		return []browse.Element{el}
	}
	return nil
}

func (d *fakeDriver) Click(selector string) error {
	return d.advanceClick()
}

func (d *fakeDriver) advanceClick() error {
	d.clicks++
	if !d.page().hasNext && d.page().labelNext == "" {
		return browse.ErrNavigation{Err: errors.New("no next control")}
	}
	if d.index+1 >= len(d.pages) {
		return browse.ErrNavigation{Err: errors.New("click led nowhere")}
	}
	d.index++
	return nil
}

func (d *fakeDriver) IsVisible(selector string) bool {
	return selector == "a[rel='next']" && d.page().hasNext
}

func (d *fakeDriver) IsDisabled(selector string) bool {
	return d.page().nextDisabled
}

func (d *fakeDriver) WaitForNetworkSettled(ctx context.Context, timeout time.Duration) error {
	return nil
}

func (d *fakeDriver) WaitForURLChange(ctx context.Context, timeout time.Duration) error {
	if d.blockURLWait {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
			return browse.ErrTimeout{Op: "url-change"}
		}
	}
	return nil
}

func (d *fakeDriver) Close() error {
	return nil
}

type fakeElement struct {
	driver *fakeDriver
	text   string
	attrs  map[string]string
}

func (e *fakeElement) Text() string {
	return e.text
}

func (e *fakeElement) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *fakeElement) Find(selector string) []browse.Element {
	return nil
}

func (e *fakeElement) Click() error {
	return e.driver.advanceClick()
}

// scriptedExtract reads the fake driver's current page entries.
func scriptedExtract(drv browse.Driver) []models.Entry {
	return drv.(*fakeDriver).page().entries
}

func fastOptions(catalog string) Options {
	return Options{
		Catalog:       catalog,
		PageDelay:     time.Millisecond,
		NavTimeout:    50 * time.Millisecond,
		SettleTimeout: 50 * time.Millisecond,
	}
}

func entry(title string) models.Entry {
	return models.Entry{Title: title}
}

func urlEntry(title, url string) models.Entry {
	return models.Entry{Title: title, SourceURL: url}
}
