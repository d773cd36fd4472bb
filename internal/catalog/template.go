// Package catalog holds the read-only template catalog: the store of sign
// templates, the category index derived from it and the queries the browser
// and the editor run against it.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

var (
	ErrNotFound        = errors.New("template not found")
	ErrInvalidTemplate = errors.New("invalid template")
)

type Category struct {
	Main string `json:"main_category"`
	Sub  string `json:"sub_category,omitempty"`
}

// Template is a pre-designed sign layout. Document is the design canvas
// payload; the catalog carries it through untouched.
type Template struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    Category        `json:"category"`
	Thumbnail   string          `json:"thumbnail"`
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	Document    json.RawMessage `json:"document"`
	Description string          `json:"description,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
}

// clone returns a copy that shares no slice memory with t.
func (t Template) clone() Template {
	t.Tags = slices.Clone(t.Tags)
	t.Document = bytes.Clone(t.Document)
	return t
}

func (t Template) validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidTemplate)
	}
	if t.Category.Main == "" {
		return fmt.Errorf("%w: template %q has no main category", ErrInvalidTemplate, t.ID)
	}
	if t.Width <= 0 || t.Height <= 0 {
		return fmt.Errorf("%w: template %q has non-positive dimensions %vx%v", ErrInvalidTemplate, t.ID, t.Width, t.Height)
	}

	seen := make(map[string]struct{}, len(t.Tags))
	for _, tag := range t.Tags {
		if _, dup := seen[tag]; dup {
			return fmt.Errorf("%w: template %q has duplicate tag %q", ErrInvalidTemplate, t.ID, tag)
		}
		seen[tag] = struct{}{}
	}
	return nil
}
