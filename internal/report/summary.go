// Package report aggregates inventory records for the summary view.
package report

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/mbenner/invtrack/internal/store"
)

// LocationSummary is one summary group: every inventory item whose location
// has the given name.
type LocationSummary struct {
	Location  string
	ItemCount int
	TotalCost decimal.Decimal
}

// ByLocation groups all inventory items by location name, counting records
// and summing costs (absent cost counts as zero), ordered ascending by
// location name. Zero items yields an empty result, which callers render as
// a "no records" state.
func ByLocation(ctx context.Context, db *sql.DB) ([]LocationSummary, error) {
	costs, err := store.ListItemCosts(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("reading items for summary: %w", err)
	}

	groups := make(map[string]*LocationSummary)
	for _, c := range costs {
		g, ok := groups[c.LocationName]
		if !ok {
			g = &LocationSummary{Location: c.LocationName}
			groups[c.LocationName] = g
		}
		g.ItemCount++
		g.TotalCost = g.TotalCost.Add(c.TotalCost)
	}

	summaries := make([]LocationSummary, 0, len(groups))
	for _, g := range groups {
		summaries = append(summaries, *g)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Location < summaries[j].Location
	})
	return summaries, nil
}

// FormatUSD renders a monetary amount as a dollar string with thousands
// separators and exactly two decimals, e.g. 1234.5 -> "$1,234.50".
func FormatUSD(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	whole, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		// Beyond int64 dollars; fall back to the unseparated form.
		return sign + "$" + whole + "." + frac
	}
	return sign + "$" + humanize.Comma(n) + "." + frac
}

// SeriesPoint is one slice of the chart the summary page renders: a
// location's share of the total item count.
type SeriesPoint struct {
	Label   string
	Value   int
	Percent float64
}

// Series converts summaries into chart-ready points. Percentages are of the
// total item count and rounded to one decimal.
func Series(summaries []LocationSummary) []SeriesPoint {
	total := 0
	for _, s := range summaries {
		total += s.ItemCount
	}
	if total == 0 {
		return nil
	}

	points := make([]SeriesPoint, 0, len(summaries))
	for _, s := range summaries {
		pct := float64(s.ItemCount) / float64(total) * 100
		points = append(points, SeriesPoint{
			Label:   s.Location,
			Value:   s.ItemCount,
			Percent: float64(int(pct*10+0.5)) / 10,
		})
	}
	return points
}
