// Package extract maps source-specific listing markup into raw catalog
// entries. Adapters are pure over a rendered page snapshot: they do not
// deduplicate (the traversal does) and do not normalize titles (the
// reconciliation engine does).
package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minTitleLen = 2
	maxTitleLen = 150
)

// Lines matching any of these are never titles: prices, discount
// percentages, and storefront badge words.
var dropLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[-+]?\s*[$€£¥₹]\s*\d`),
	regexp.MustCompile(`(?i)^\d[\d.,]*\s*(?:usd|eur|gbp|brl|jpy)\b`),
	regexp.MustCompile(`(?i)\bfrom\s+[$€£¥]\s*\d`),
	regexp.MustCompile(`[-+]?\d+(?:[.,]\d+)?\s*%`),
	regexp.MustCompile(`(?i)^(?:new|sale|hot|free|dlc|demo|bundle|pre[- ]?order|early access|add to cart|add to wishlist|wishlist|out of stock|coming soon|in stock|buy now)$`),
}

// CleanTitle reduces a tile's multi-line text block to its title: the
// first line that is neither a price/badge line nor outside the length
// bounds. Returns "" when nothing survives.
func CleanTitle(block string) string {
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if n := utf8.RuneCountInString(line); n < minTitleLen || n > maxTitleLen {
			continue
		}
		if isDroppedLine(line) {
			continue
		}
		return line
	}
	return ""
}

func isDroppedLine(line string) bool {
	for _, pattern := range dropLinePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}
