package dashboard

import (
	"bytes"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/cafemenu/menudash/pkg/backend"
)

const overviewChartHeight = "360px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// OverviewCounts aggregates the catalogue per fixed category.
type OverviewCounts struct {
	Category    string
	Available   int
	Unavailable int
	ChefSpecial int
}

// CatalogueOverview buckets items into the fixed category order. Every
// category appears even when empty, so the chart axis is stable.
func CatalogueOverview(items []backend.MenuItem) []OverviewCounts {
	byCategory := make(map[string]*OverviewCounts, len(Categories))
	out := make([]OverviewCounts, len(Categories))
	for i, name := range Categories {
		out[i] = OverviewCounts{Category: name}
		byCategory[name] = &out[i]
	}
	for _, item := range items {
		counts, ok := byCategory[item.Category]
		if !ok {
			continue
		}
		if item.IsAvailable {
			counts.Available++
		} else {
			counts.Unavailable++
		}
		if item.IsChefSpecial {
			counts.ChefSpecial++
		}
	}
	return out
}

// RenderOverviewChart renders the owner's at-a-glance menu breakdown as a
// self-contained HTML snippet. Results are memoized on the item set.
func RenderOverviewChart(items []backend.MenuItem, cache RenderCache) (string, error) {
	if cache == nil {
		cache = sharedChartCache
	}
	key := cacheKey("menudash.overview", items)
	return cache.GetOrRender(key, func() (string, error) {
		return renderOverview(CatalogueOverview(items))
	})
}

func renderOverview(overview []OverviewCounts) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Height: overviewChartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Menu overview",
			Subtitle: "Dishes per category",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	axis := make([]string, len(overview))
	available := make([]opts.BarData, len(overview))
	unavailable := make([]opts.BarData, len(overview))
	for i, counts := range overview {
		axis[i] = counts.Category
		available[i] = opts.BarData{Value: counts.Available}
		unavailable[i] = opts.BarData{Value: counts.Unavailable}
	}
	bar.SetXAxis(axis).
		AddSeries("Available", available).
		AddSeries("Unavailable", unavailable)

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
