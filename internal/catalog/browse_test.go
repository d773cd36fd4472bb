package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func browseCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New([]Template{
		{ID: "s1", Name: "Open Sign", Category: Category{Main: "Signs", Sub: "Neon"}, Width: 1, Height: 1, Tags: []string{"sale"}},
		{ID: "s2", Name: "Menu Board", Category: Category{Main: "Signs", Sub: "Boards"}, Width: 1, Height: 1},
		{ID: "b1", Name: "Sale Banner", Category: Category{Main: "Banners", Sub: "Vinyl"}, Width: 1, Height: 1},
	})
	require.NoError(t, err)
	return c
}

func TestBrowse_NoFilterReturnsAll(t *testing.T) {
	c := browseCatalog(t)
	var b Browse

	assert.Equal(t, ModeAll, b.Mode())
	assert.Equal(t, []string{"s1", "s2", "b1"}, ids(b.Apply(c)))
}

func TestBrowse_CategoryThenSubCategory(t *testing.T) {
	c := browseCatalog(t)
	var b Browse

	b.SelectCategory("Signs")
	assert.Equal(t, ModeCategory, b.Mode())
	assert.Equal(t, []string{"s1", "s2"}, ids(b.Apply(c)))

	b.SelectSubCategory("Boards")
	assert.Equal(t, ModeSubCategory, b.Mode())
	assert.Equal(t, []string{"s2"}, ids(b.Apply(c)))
}

func TestBrowse_NewCategoryResetsSubCategory(t *testing.T) {
	c := browseCatalog(t)
	var b Browse

	b.SelectCategory("Signs")
	b.SelectSubCategory("Neon")
	b.SelectCategory("Banners")

	assert.Equal(t, "", b.SubCategory())
	assert.Equal(t, ModeCategory, b.Mode())
	assert.Equal(t, []string{"b1"}, ids(b.Apply(c)))
}

func TestBrowse_SubCategoryIgnoredWithoutCategory(t *testing.T) {
	var b Browse
	b.SelectSubCategory("Neon")

	assert.Equal(t, ModeAll, b.Mode())
	assert.Equal(t, "", b.SubCategory())
}

func TestBrowse_SearchSupersedesCategory(t *testing.T) {
	c := browseCatalog(t)
	var b Browse

	b.SelectCategory("Signs")
	b.SelectSubCategory("Boards")
	b.SetSearch("sale")

	assert.Equal(t, ModeSearch, b.Mode())
	assert.Equal(t, []string{"s1", "b1"}, ids(b.Apply(c)))
}

func TestBrowse_ClearSearchReturnsToNoFilter(t *testing.T) {
	c := browseCatalog(t)
	var b Browse

	b.SelectCategory("Signs")
	b.SetSearch("sale")
	b.ClearSearch()

	assert.Equal(t, ModeAll, b.Mode())
	assert.Equal(t, "", b.Category())
	assert.Len(t, b.Apply(c), 3)
}

func TestBrowse_SetSearchEmptyLeavesSearchMode(t *testing.T) {
	var b Browse

	b.SetSearch("  sale ")
	assert.Equal(t, "sale", b.Query())

	b.SetSearch("   ")
	assert.Equal(t, ModeAll, b.Mode())
}

func TestBrowse_SetSearchEmptyKeepsCategoryWhenNotSearching(t *testing.T) {
	var b Browse

	b.SelectCategory("Signs")
	b.SetSearch("")

	assert.Equal(t, ModeCategory, b.Mode())
}

func TestBrowse_SelectCategoryLeavesSearch(t *testing.T) {
	c := browseCatalog(t)
	var b Browse

	b.SetSearch("sale")
	b.SelectCategory("Banners")

	assert.Equal(t, ModeCategory, b.Mode())
	assert.Equal(t, []string{"b1"}, ids(b.Apply(c)))
}

func TestNewBrowse(t *testing.T) {
	tests := []struct {
		name                    string
		category, sub, query    string
		mode                    Mode
		wantCategory, wantSub   string
	}{
		{name: "empty", mode: ModeAll},
		{name: "category", category: "Signs", mode: ModeCategory, wantCategory: "Signs"},
		{name: "subcategory", category: "Signs", sub: "Neon", mode: ModeSubCategory, wantCategory: "Signs", wantSub: "Neon"},
		{name: "orphan subcategory", sub: "Neon", mode: ModeAll},
		{name: "search wins", category: "Signs", sub: "Neon", query: "menu", mode: ModeSearch, wantCategory: "Signs", wantSub: "Neon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBrowse(tt.category, tt.sub, tt.query)
			assert.Equal(t, tt.mode, b.Mode())
			assert.Equal(t, tt.wantCategory, b.Category())
			assert.Equal(t, tt.wantSub, b.SubCategory())
		})
	}
}
