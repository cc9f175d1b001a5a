package paginate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/aluiziolira/go-catalog-sync/browse"
)

// Total-count probes run in priority order against the rendered page;
// the first probe whose pattern yields a parseable count wins. New site
// patterns are additions to this table, not new branches.
type countProbe struct {
	name     string
	selector string
	// pattern's first capture group holds the count.
	pattern *regexp.Regexp
}

var (
	// "Showing 24 of 50 results", "24 out of 50 items"
	reOfTotal = regexp.MustCompile(`(?i)\b(?:of|out of|von|de|sur)\s+([0-9][0-9.,]*)\s+(?:results?|items?|games?|titles?|products?|ergebnisse[n]?|r[eé]sultats|resultados)\b`)
	// "1–24 of 199"
	reRangeOf = regexp.MustCompile(`(?i)[0-9][0-9.,]*\s*[-–—]\s*[0-9][0-9.,]*\s+(?:of|von|de|sur)\s+([0-9][0-9.,]*)`)
	// "199 Games", "56 Spiele"
	reCountUnit = regexp.MustCompile(`(?i)\b([0-9][0-9.,]*)\s+(?:games?|titles?|items?|results?|products?|spiele|jeux|juegos)\b`)
)

var countProbes = []countProbe{
	{name: "count_container_of", selector: ".results-count", pattern: reOfTotal},
	{name: "count_container_unit", selector: ".results-count", pattern: reCountUnit},
	{name: "body_of_total", selector: "body", pattern: reOfTotal},
	{name: "body_range_of", selector: "body", pattern: reRangeOf},
	{name: "body_count_unit", selector: "body", pattern: reCountUnit},
}

// detectTotal probes the current page for the listing's total item
// count. Returns 0 when no probe matches; the traversal then runs
// unbounded up to the safety ceiling.
func detectTotal(drv browse.Driver) (int, string) {
	for _, probe := range countProbes {
		text, ok := drv.QueryText(probe.selector)
		if !ok || text == "" {
			continue
		}
		match := probe.pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		if n, ok := parseCount(match[1]); ok {
			return n, probe.name
		}
	}
	return 0, ""
}

func parseCount(raw string) (int, bool) {
	cleaned := strings.NewReplacer(",", "", ".", "", " ", "").Replace(raw)
	n, err := strconv.Atoi(cleaned)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Next-control selector patterns, highest confidence first, followed by
// label texts matched against every anchor and button on the page.
var nextControlSelectors = []string{
	"a[rel='next']",
	"li.next a",
	"a.pagination-next",
	".pagination__next a",
	"a.next",
	"button.next",
}

var nextControlLabels = []string{
	"next",
	"next page",
	"weiter",
	"suivant",
	"siguiente",
	"próxima",
	"volgende",
	"»",
	"›",
}

// findNextControl locates a visible next-page control. It returns the
// matched selector, or a label-matched element when no selector hit.
func findNextControl(drv browse.Driver) (string, browse.Element, bool) {
	for _, selector := range nextControlSelectors {
		if drv.IsVisible(selector) {
			return selector, nil, true
		}
	}
	for _, el := range drv.QueryAll("a, button") {
		label := strings.ToLower(strings.Join(strings.Fields(el.Text()), " "))
		for _, want := range nextControlLabels {
			if label == want {
				return "", el, true
			}
		}
	}
	return "", nil, false
}
