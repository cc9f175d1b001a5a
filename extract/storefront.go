package extract

import (
	"net/url"
	"strings"

	"github.com/aluiziolira/go-catalog-sync/browse"
	"github.com/aluiziolira/go-catalog-sync/models"
)

// Product tile selectors for the storefront listing, tried in order;
// the first one that matches anything on the page wins.
var storefrontTileSelectors = []string{
	".product-tile",
	".game-card",
	"li.product",
	"article.product",
	".browse-result",
}

var storefrontPlatformSelectors = []string{
	".platform",
	".platform-tag",
	".product-platform",
}

// Storefront extracts raw entries from the current storefront listing
// page. Tile text is cleaned line by line; tiles without a surviving
// title are dropped.
func Storefront(drv browse.Driver) []models.Entry {
	var entries []models.Entry
	for _, selector := range storefrontTileSelectors {
		tiles := drv.QueryAll(selector)
		if len(tiles) == 0 {
			continue
		}
		for _, tile := range tiles {
			entry, ok := storefrontEntry(tile, drv.CurrentURL())
			if !ok {
				continue
			}
			entries = append(entries, entry)
		}
		break
	}
	return entries
}

func storefrontEntry(tile browse.Element, pageURL string) (models.Entry, bool) {
	titleText := CleanTitle(tile.Text())
	if titleText == "" {
		return models.Entry{}, false
	}

	entry := models.Entry{
		Title:       titleText,
		PlatformTag: firstText(tile, storefrontPlatformSelectors),
		SourceURL:   tileLink(tile, pageURL),
	}
	if id, ok := firstAttr(tile, "data-product-id", "data-id", "data-sku"); ok {
		entry.StableID = id
	}
	return entry, true
}

// tileLink resolves the tile's primary anchor against the page URL.
func tileLink(tile browse.Element, pageURL string) string {
	href, ok := tile.Attr("href")
	if !ok || href == "" {
		for _, anchor := range tile.Find("a") {
			if h, ok := anchor.Attr("href"); ok && h != "" {
				href = h
				break
			}
		}
	}
	if href == "" {
		return ""
	}
	return resolveRef(pageURL, href)
}

func resolveRef(base, href string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}

func firstText(el browse.Element, selectors []string) string {
	for _, selector := range selectors {
		for _, child := range el.Find(selector) {
			if text := strings.TrimSpace(child.Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

func firstAttr(el browse.Element, names ...string) (string, bool) {
	for _, name := range names {
		if v, ok := el.Attr(name); ok && v != "" {
			return v, true
		}
	}
	return "", false
}
