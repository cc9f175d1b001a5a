package extract

import (
	"github.com/aluiziolira/go-catalog-sync/browse"
	"github.com/aluiziolira/go-catalog-sync/models"
)

// Row selectors for the public list, tried in order. The list renders
// either as a table or as a flat item list depending on the template.
var listRowSelectors = []string{
	"table.games tbody tr",
	"table.game-list tr.entry",
	"ul.game-list li",
	".list-row",
}

var (
	listTitleSelectors    = []string{".title a", "td.title", ".game-title", "h3"}
	listPlatformSelectors = []string{"td.platform", ".platform", ".platform-tag"}
	listDateSelectors     = []string{"td.release-date", ".release-date", "time"}
)

// ListPage extracts raw entries from the current public-list page.
// Rows without a surviving title are dropped.
func ListPage(drv browse.Driver) []models.Entry {
	var entries []models.Entry
	for _, selector := range listRowSelectors {
		rows := drv.QueryAll(selector)
		if len(rows) == 0 {
			continue
		}
		for _, row := range rows {
			entry, ok := listEntry(row, drv.CurrentURL())
			if !ok {
				continue
			}
			entries = append(entries, entry)
		}
		break
	}
	return entries
}

func listEntry(row browse.Element, pageURL string) (models.Entry, bool) {
	titleText := firstText(row, listTitleSelectors)
	if titleText == "" {
		titleText = CleanTitle(row.Text())
	} else {
		titleText = CleanTitle(titleText)
	}
	if titleText == "" {
		return models.Entry{}, false
	}

	entry := models.Entry{
		Title:       titleText,
		PlatformTag: firstText(row, listPlatformSelectors),
		ReleaseDate: firstText(row, listDateSelectors),
		SourceURL:   tileLink(row, pageURL),
	}
	if id, ok := firstAttr(row, "data-game-id", "data-id"); ok {
		entry.StableID = id
	}
	return entry, true
}
