package paginate

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Page-style parameters advance by one, offset-style ones by the page
// size. Checked in order.
var (
	pageParams   = []string{"page", "p", "pg", "pagina", "seite"}
	offsetParams = []string{"offset", "start", "skip"}
)

// HasPageMarker reports whether the URL already carries a page/offset
// query parameter or a trailing numeric path segment, which classifies
// the listing as URL-driven pagination.
func HasPageMarker(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	query := u.Query()
	for _, key := range pageParams {
		if query.Has(key) {
			return true
		}
	}
	for _, key := range offsetParams {
		if query.Has(key) {
			return true
		}
	}
	_, ok := trailingNumber(u.Path)
	return ok
}

// NextURL computes the URL of the page after raw. Page parameters
// increment by one, offset parameters by pageSize, a trailing numeric
// path segment by one; a URL with none of these gets page=2 appended.
func NextURL(raw string, pageSize int) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}

	query := u.Query()
	for _, key := range pageParams {
		if !query.Has(key) {
			continue
		}
		n, err := strconv.Atoi(query.Get(key))
		if err != nil || n < 1 {
			n = 1
		}
		query.Set(key, strconv.Itoa(n+1))
		u.RawQuery = query.Encode()
		return u.String(), nil
	}
	for _, key := range offsetParams {
		if !query.Has(key) {
			continue
		}
		n, err := strconv.Atoi(query.Get(key))
		if err != nil || n < 0 {
			n = 0
		}
		query.Set(key, strconv.Itoa(n+pageSize))
		u.RawQuery = query.Encode()
		return u.String(), nil
	}

	if n, ok := trailingNumber(u.Path); ok {
		trimmed := strings.TrimSuffix(u.Path, "/")
		idx := strings.LastIndex(trimmed, "/")
		u.Path = trimmed[:idx+1] + strconv.Itoa(n+1)
		return u.String(), nil
	}

	query.Set("page", "2")
	u.RawQuery = query.Encode()
	return u.String(), nil
}

func trailingNumber(path string) (int, bool) {
	trimmed := strings.TrimSuffix(path, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 || idx == len(trimmed)-1 {
		return 0, false
	}
	n, err := strconv.Atoi(trimmed[idx+1:])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
