package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafemenu/menudash/pkg/backend"
)

func TestCatalogueOverviewKeepsCategoryOrder(t *testing.T) {
	overview := CatalogueOverview(nil)
	require.Len(t, overview, len(Categories))
	for i, counts := range overview {
		assert.Equal(t, Categories[i], counts.Category)
		assert.Zero(t, counts.Available)
		assert.Zero(t, counts.Unavailable)
	}
}

func TestCatalogueOverviewBucketsItems(t *testing.T) {
	items := []backend.MenuItem{
		{ID: "m1", Category: "Drinks", IsAvailable: true, IsChefSpecial: true},
		{ID: "m2", Category: "Drinks", IsAvailable: false},
		{ID: "m3", Category: "Snacks", IsAvailable: true},
		{ID: "m4", Category: "Unknown Section", IsAvailable: true},
	}
	overview := CatalogueOverview(items)

	byName := map[string]OverviewCounts{}
	for _, counts := range overview {
		byName[counts.Category] = counts
	}
	assert.Equal(t, 1, byName["Drinks"].Available)
	assert.Equal(t, 1, byName["Drinks"].Unavailable)
	assert.Equal(t, 1, byName["Drinks"].ChefSpecial)
	assert.Equal(t, 1, byName["Snacks"].Available)

	total := 0
	for _, counts := range overview {
		total += counts.Available + counts.Unavailable
	}
	assert.Equal(t, 3, total, "items outside the fixed categories are dropped")
}

func TestRenderOverviewChartMemoizes(t *testing.T) {
	items := []backend.MenuItem{{ID: "m1", Category: "Drinks", IsAvailable: true}}
	cache := NewChartCache(time.Minute)

	first, err := RenderOverviewChart(items, cache)
	require.NoError(t, err)
	assert.Contains(t, first, "Menu overview")

	second, err := RenderOverviewChart(items, cache)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderOverviewChartKeyVariesWithItems(t *testing.T) {
	a := cacheKey("menudash.overview", []backend.MenuItem{{ID: "m1"}})
	b := cacheKey("menudash.overview", []backend.MenuItem{{ID: "m2"}})
	assert.NotEqual(t, a, b)
}
