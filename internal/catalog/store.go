package catalog

import "fmt"

// Store is an immutable, ordered collection of templates.
type Store struct {
	templates []Template
	byID      map[string]int
}

// NewStore deep-copies templates into a new store, keeping their order. It
// fails if any template breaks the catalog invariants or an id is repeated.
// Templates leave the store as copies too, so nothing a caller does to a
// result reaches the store.
func NewStore(templates []Template) (*Store, error) {
	s := &Store{
		templates: make([]Template, 0, len(templates)),
		byID:      make(map[string]int, len(templates)),
	}

	for _, in := range templates {
		t := in.clone()
		if err := t.validate(); err != nil {
			return nil, err
		}
		if _, dup := s.byID[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidTemplate, t.ID)
		}
		s.byID[t.ID] = len(s.templates)
		s.templates = append(s.templates, t)
	}

	return s, nil
}

// All returns every template in insertion order.
func (s *Store) All() []Template {
	out := make([]Template, len(s.templates))
	for i, t := range s.templates {
		out[i] = t.clone()
	}
	return out
}

func (s *Store) Len() int {
	return len(s.templates)
}

func (s *Store) get(id string) (Template, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Template{}, false
	}
	return s.templates[i].clone(), true
}
