package catalog

import (
	"fmt"
	"strings"
)

// Filter selects templates by category. An empty Sub matches every
// sub-category of Main, including templates without one.
type Filter struct {
	Main string
	Sub  string
}

// Catalog is a snapshot of the template store together with its category
// index. Every method is safe for concurrent use.
type Catalog struct {
	store *Store
	index *index
}

func New(templates []Template) (*Catalog, error) {
	store, err := NewStore(templates)
	if err != nil {
		return nil, err
	}
	return &Catalog{
		store: store,
		index: newIndex(store.templates),
	}, nil
}

// Empty returns a catalog with no templates.
func Empty() *Catalog {
	c, _ := New(nil)
	return c
}

func (c *Catalog) All() []Template {
	return c.store.All()
}

func (c *Catalog) Len() int {
	return c.store.Len()
}

func (c *Catalog) MainCategories() []string {
	return c.index.mainCategories()
}

func (c *Catalog) SubCategories(main string) []string {
	return c.index.subCategories(main)
}

func (c *Catalog) ByCategory(f Filter) []Template {
	out := []Template{}
	for _, t := range c.store.templates {
		if t.Category.Main != f.Main {
			continue
		}
		if f.Sub != "" && t.Category.Sub != f.Sub {
			continue
		}
		out = append(out, t.clone())
	}
	return out
}

// Search matches query case-insensitively against name, description and
// tags. An empty query matches nothing.
func (c *Catalog) Search(query string) []Template {
	out := []Template{}
	if query == "" {
		return out
	}

	needle := strings.ToLower(query)
	for _, t := range c.store.templates {
		if matches(t, needle) {
			out = append(out, t.clone())
		}
	}
	return out
}

func (c *Catalog) ByID(id string) (Template, error) {
	t, ok := c.store.get(id)
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return t, nil
}

func matches(t Template, needle string) bool {
	if strings.Contains(strings.ToLower(t.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), needle) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
