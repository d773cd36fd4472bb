package catalog

import "strings"

type Mode int

const (
	ModeAll Mode = iota
	ModeCategory
	ModeSubCategory
	ModeSearch
)

func (m Mode) String() string {
	switch m {
	case ModeCategory:
		return "category"
	case ModeSubCategory:
		return "subcategory"
	case ModeSearch:
		return "search"
	default:
		return "all"
	}
}

// Browse is the filter state of the template browser. A non-empty search
// query always takes precedence over the category selection; clearing the
// search drops the category selection as well.
type Browse struct {
	category    string
	subCategory string
	query       string
}

// NewBrowse builds the state a browser reaches by picking category, then
// subCategory, then typing query.
func NewBrowse(category, subCategory, query string) Browse {
	var b Browse
	b.SelectCategory(category)
	b.SelectSubCategory(subCategory)
	b.SetSearch(query)
	return b
}

// SelectCategory picks a main category and resets the sub-category, which may
// not exist under the new one. It leaves search mode.
func (b *Browse) SelectCategory(main string) {
	b.category = strings.TrimSpace(main)
	b.subCategory = ""
	b.query = ""
}

// SelectSubCategory is ignored until a main category is selected.
func (b *Browse) SelectSubCategory(sub string) {
	if b.category == "" {
		return
	}
	b.subCategory = strings.TrimSpace(sub)
}

func (b *Browse) SetSearch(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		if b.query != "" {
			b.ClearSearch()
		}
		return
	}
	b.query = query
}

func (b *Browse) ClearSearch() {
	*b = Browse{}
}

func (b Browse) Mode() Mode {
	switch {
	case b.query != "":
		return ModeSearch
	case b.subCategory != "":
		return ModeSubCategory
	case b.category != "":
		return ModeCategory
	default:
		return ModeAll
	}
}

func (b Browse) Category() string    { return b.category }
func (b Browse) SubCategory() string { return b.subCategory }
func (b Browse) Query() string       { return b.query }

func (b Browse) Apply(c *Catalog) []Template {
	switch b.Mode() {
	case ModeSearch:
		return c.Search(b.query)
	case ModeCategory, ModeSubCategory:
		return c.ByCategory(Filter{Main: b.category, Sub: b.subCategory})
	default:
		return c.All()
	}
}
